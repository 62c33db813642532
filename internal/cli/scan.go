package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ppiankov/brandprint/internal/model"
	"github.com/ppiankov/brandprint/internal/pipeline"
	"github.com/ppiankov/brandprint/internal/store"
)

var (
	outJSON       string
	outMD         string
	timeout       time.Duration
	userAgent     string
	noCache       bool
	noFooter      bool
	respectRobots bool
	storePath     string
	httpProxy     string
	httpsProxy    string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Extract a brand profile from a single URL",
	Long: `Scan fetches a page and up to five of its stylesheets, then:
- Extracts colors, typography, spacing, layout and components
- Collects CSS variables and a sanitized markup preview
- Analyzes tone, personality, audience and writing style

Example:
  brandprint scan https://example.com
  brandprint scan https://example.com --json acme.json --md acme.md
  brandprint scan https://example.com --save ~/.brandprint/profiles.db`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Output flags
	scanCmd.Flags().StringVar(&outJSON, "json", "profile.json", "output JSON path")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scanCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	scanCmd.Flags().StringVar(&storePath, "save", "", "save the profile to this SQLite database (overrides store.path)")

	// HTTP flags
	scanCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall scan timeout")
	scanCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (overrides http.user_agent)")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	scanCmd.Flags().BoolVar(&respectRobots, "robots", false, "honor robots.txt before fetching")
	scanCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	scanCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyHTTPFlags(cmd, cfg)

	logger := newLogger(cfg.Output.Verbose)
	extractor := pipeline.NewExtractor(cfg, pipeline.OptionsFromConfig(cfg, logger))

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", target)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n\n", cfg.Cache.Enabled)
	}

	profile, savedID, saveErr, err := extractProfile(ctx, extractor, target, cfg.Store.Path)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(profile, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(profile, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
	}

	if saveErr != nil {
		return saveErr
	}
	if savedID != "" {
		color.New(color.FgGreen).Fprintf(os.Stderr, "✓ Saved profile %s to %s\n", savedID, cfg.Store.Path)
	}

	renderer.RenderSummary(os.Stdout, profile)

	green := color.New(color.FgGreen)
	if outJSON != "" {
		green.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
	}
	if outMD != "" {
		green.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
	}

	return nil
}

// extractProfile extracts target, saving it to the SQLite store at
// storePath when one is configured. A profile that extracted but failed to
// save is returned together with saveErr.
func extractProfile(ctx context.Context, extractor *pipeline.Extractor, target, storePath string) (profile *model.ExtractedProfile, id string, saveErr, err error) {
	if storePath == "" {
		profile, err = extractor.Extract(ctx, target)
		if err != nil {
			return nil, "", nil, describeError(err)
		}
		return profile, "", nil, nil
	}

	st, err := store.OpenSQLite(storePath)
	if err != nil {
		return nil, "", nil, fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	id, profile, err = extractor.ExtractAndSave(ctx, target, st)
	if err != nil {
		if profile == nil {
			return nil, "", nil, describeError(err)
		}
		return profile, "", err, nil
	}
	return profile, id, nil, nil
}

// applyHTTPFlags copies explicitly set command flags over the loaded config
func applyHTTPFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("robots") {
		cfg.HTTP.RespectRobots = respectRobots
	}
	if flags.Changed("http-proxy") {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if flags.Changed("https-proxy") {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	if flags.Changed("save") {
		cfg.Store.Path = storePath
	}
}

// describeError prefixes extraction errors with a message for the user
func describeError(err error) error {
	switch {
	case errors.Is(err, pipeline.ErrMalformedInput):
		return fmt.Errorf("invalid URL: %w", err)
	case errors.Is(err, pipeline.ErrBlockedByTarget):
		// The message already reads "blocked by target site"
		return err
	case errors.Is(err, pipeline.ErrTransientNetwork):
		return fmt.Errorf("extraction failed, try again: %w", err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("scan timed out: %w", err)
	default:
		return fmt.Errorf("extraction failed: %w", err)
	}
}
