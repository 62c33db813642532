package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ppiankov/brandprint/internal/pipeline"
	"github.com/ppiankov/brandprint/internal/store"
	"github.com/ppiankov/brandprint/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// noCache, noFooter, storePath and the proxy flags are shared with scan.go
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Extract brand profiles for many URLs in parallel",
	Long: `Batch processes multiple URLs concurrently:
- Read URLs from input file (one per line, # starts a comment)
- Extract each URL in its own worker, sharing the cache and rate limiter
- Write a JSON and a Markdown profile per URL

Example:
  brandprint batch urls.txt
  brandprint batch urls.txt --concurrency 8 --output-dir ./profiles
  brandprint batch urls.txt --timeout 20m --save profiles.db`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./brandprint-profiles", "output directory for profiles")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared with scan
	batchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (overrides http.user_agent)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().BoolVar(&respectRobots, "robots", false, "honor robots.txt before fetching")
	batchCmd.Flags().StringVar(&storePath, "save", "", "save profiles to this SQLite database (overrides store.path)")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyHTTPFlags(cmd, cfg)
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	cyan.Fprintf(os.Stderr, "\nBrandprint Batch Processing\n")
	cyan.Fprintf(os.Stderr, "===========================\n\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n\n", batchTimeout)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var st *store.SQLiteStore
	if cfg.Store.Path != "" {
		st, err = store.OpenSQLite(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = st.Close() }()
	}

	logger := newLogger(cfg.Output.Verbose)
	extractor := pipeline.NewExtractor(cfg, pipeline.OptionsFromConfig(cfg, logger))
	processor := worker.NewBatchProcessor(extractor, cfg.Concurrency.Workers)
	if st != nil {
		processor.WithStore(st)
	}

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			red.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, describeError(result.Error))
			continue
		}

		slug := worker.Slug(result.Profile.SourceURL)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Profile, jsonPath); err != nil {
			failureCount++
			red.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.URL, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Profile, mdPath); err != nil {
			failureCount++
			red.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.URL, err)
			continue
		}
		if result.SaveError != nil {
			red.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, result.SaveError)
		}

		successCount++
		green.Fprintf(os.Stderr, "✓ %s (tone: %s, %d colors)\n",
			result.URL, result.Profile.VoiceProfile.Tone.Primary, len(result.Profile.DesignTokens.ColorPalette))
	}

	cyan.Fprintf(os.Stderr, "\nBatch Complete\n")
	cyan.Fprintf(os.Stderr, "==============\n\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d URLs\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n\n", outputDir)

	return nil
}
