package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/brandprint/internal/cache"
	"github.com/ppiankov/brandprint/internal/document"
	"github.com/ppiankov/brandprint/internal/model"
	"github.com/ppiankov/brandprint/internal/store"
	"github.com/ppiankov/brandprint/internal/style"
	"github.com/ppiankov/brandprint/internal/tokens"
	"github.com/ppiankov/brandprint/internal/util"
	"github.com/ppiankov/brandprint/internal/voice"
	"github.com/ppiankov/brandprint/internal/worker"
)

// RobotsChecker answers whether a URL may be fetched
type RobotsChecker interface {
	CanFetch(ctx context.Context, rawURL string) (bool, error)
}

// Options carries the collaborators shared by extractions. Every field is
// optional; each must be safe for concurrent use.
type Options struct {
	Logger  *slog.Logger
	Cache   cache.Cache
	Limiter *worker.Limiter
	Robots  RobotsChecker // nil skips the robots.txt check
}

// OptionsFromConfig builds the collaborators described by cfg
func OptionsFromConfig(cfg *model.Config, logger *slog.Logger) Options {
	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	for _, d := range cfg.RateLimiting.Domains {
		if host := strings.TrimSpace(d.Host); host != "" {
			limiter.SetDomainRate(host, d.RequestsPerSecond, d.BurstSize)
		}
	}

	opts := Options{
		Logger:  logger,
		Cache:   cache.FromConfig(cfg.Cache),
		Limiter: limiter,
	}
	if cfg.HTTP.RespectRobots {
		opts.Robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.StylesheetTimeout)
	}
	return opts
}

// Extractor turns a URL into an ExtractedProfile. It holds no per-call
// state, so one Extractor may serve many concurrent extractions.
type Extractor struct {
	fetcher           *Fetcher
	robots            RobotsChecker
	logger            *slog.Logger
	pageTimeout       time.Duration
	stylesheetTimeout time.Duration
	analyze           func(corpus string) model.VoiceProfile
	now               func() time.Time
}

// NewExtractor creates an extractor from cfg and the shared collaborators
func NewExtractor(cfg *model.Config, opts Options) *Extractor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fetcher := NewFetcher(
		cfg.HTTP.PageTimeout,
		cfg.HTTP.UserAgent,
		cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.HTTPProxy,
		cfg.HTTP.HTTPSProxy,
		cfg.HTTP.NoProxy,
		WithRetryPolicy(cfg.HTTP.MaxRetries, cfg.HTTP.InitialBackoff),
		WithCache(opts.Cache, cfg.Cache.MemoryTTL),
		WithLimiter(opts.Limiter),
		WithLogger(logger),
	)

	return &Extractor{
		fetcher:           fetcher,
		robots:            opts.Robots,
		logger:            logger,
		pageTimeout:       cfg.HTTP.PageTimeout,
		stylesheetTimeout: cfg.HTTP.StylesheetTimeout,
		analyze:           voice.NewAnalyzer().Analyze,
		now:               time.Now,
	}
}

// Extract fetches rawURL and its stylesheets and derives the design tokens
// and voice profile. The returned error is one of the typed errors in this
// package or the context's error.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*model.ExtractedProfile, error) {
	// 1. Validate input before any I/O
	target, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}
	log := e.logger.With("url", target)
	log.Debug("extraction started")

	// 2. robots.txt
	if e.robots != nil {
		allowed, err := e.robots.CanFetch(ctx, target)
		if err != nil {
			log.Warn("robots check failed", "stage", "robots", "error", err)
		} else if !allowed {
			return nil, &BlockedError{URL: target}
		}
	}

	// 3. Page
	page, err := e.fetchPage(ctx, target)
	if err != nil {
		return nil, err
	}

	// 4. Document
	doc, err := document.Parse(page.Body, page.FinalURL)
	if err != nil {
		return nil, &FetchFailedError{URL: target, StatusCode: page.StatusCode, Err: fmt.Errorf("parse document: %w", err)}
	}

	// 5. Stylesheets, tolerant of individual failures
	hrefs := doc.StylesheetHrefs(maxStylesheets)
	fetched := e.fetcher.FetchStylesheets(ctx, hrefs, e.stylesheetTimeout)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract %s: %w", target, err)
	}
	log.Debug("stylesheets fetched", "stage", "fetch_styles", "requested", len(hrefs), "fetched", len(fetched))

	// 6. Style tree; sources the parser rejects are salvaged one by one
	sheet, err := style.ParseSources(doc.InlineStyleBlocks(), fetched)
	if err != nil {
		log.Warn("style parse failed, salvaged declarations", "stage", "parse_styles", "error", err)
	}
	log.Debug("styles parsed", "stage", "parse_styles", "rules", sheet.RuleCount())

	// 7. Token extractors, each isolated
	designTokens := tokens.Extract(doc, sheet, func(category string, cause any) {
		log.Warn("partial extraction", "stage", "extract_tokens", "category", category, "error", fmt.Sprint(cause))
	})

	// 8. Voice
	title := doc.Title()
	description := doc.MetaDescription()
	voiceProfile := e.analyzeVoice(log, voice.BuildCorpus(title, description, designTokens))

	// 9. Assemble
	profile := &model.ExtractedProfile{
		SourceURL:    page.FinalURL,
		Title:        title,
		Description:  description,
		FaviconURL:   doc.FaviconURL(),
		DesignTokens: designTokens,
		VoiceProfile: voiceProfile,
		ExtractedAt:  e.now().UTC(),
	}

	log.Info("extraction complete",
		"colors", len(designTokens.ColorPalette),
		"fonts", len(designTokens.FontFamilies),
		"tone", voiceProfile.Tone.Primary,
		"from_cache", page.FromCache,
	)

	return profile, nil
}

// ExtractAndSave extracts rawURL and hands the profile to st unchanged
func (e *Extractor) ExtractAndSave(ctx context.Context, rawURL string, st store.Store) (string, *model.ExtractedProfile, error) {
	profile, err := e.Extract(ctx, rawURL)
	if err != nil {
		return "", nil, err
	}

	id, err := st.Save(ctx, profile)
	if err != nil {
		return "", profile, fmt.Errorf("save profile: %w", err)
	}

	e.logger.Debug("profile saved", "url", profile.SourceURL, "id", id)
	return id, profile, nil
}

// fetchPage fetches the page under the page timeout and maps failures onto
// the typed errors
func (e *Extractor) fetchPage(ctx context.Context, target string) (*FetchResult, error) {
	pageCtx := ctx
	if e.pageTimeout > 0 {
		var cancel context.CancelFunc
		pageCtx, cancel = context.WithTimeout(ctx, e.pageTimeout)
		defer cancel()
	}

	page, err := e.fetcher.FetchWithRetry(pageCtx, target)
	if err != nil {
		// Caller cancellation wins over anything the fetcher reported
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("extract %s: %w", target, ctxErr)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TransientError{URL: target, Err: err}
		}
		return nil, err
	}

	if !page.OK() {
		return nil, &FetchFailedError{URL: target, StatusCode: page.StatusCode}
	}

	return page, nil
}

// analyzeVoice runs the analyzer, falling back to the empty profile on panic
func (e *Extractor) analyzeVoice(log *slog.Logger, corpus string) (profile model.VoiceProfile) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("partial extraction", "stage", "analyze_voice", "category", "voice", "error", fmt.Sprint(r))
			profile = voice.Fallback()
		}
	}()

	return e.analyze(corpus)
}

// ValidateURL checks that rawURL is an absolute http(s) URL with a host and
// returns it trimmed
func ValidateURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", &MalformedInputError{Input: rawURL, Reason: "empty URL"}
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", &MalformedInputError{Input: rawURL, Reason: err.Error()}
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	case "":
		return "", &MalformedInputError{Input: rawURL, Reason: "missing scheme"}
	default:
		return "", &MalformedInputError{Input: rawURL, Reason: fmt.Sprintf("unsupported scheme %q", parsed.Scheme)}
	}

	if parsed.Hostname() == "" {
		return "", &MalformedInputError{Input: rawURL, Reason: "missing host"}
	}

	return trimmed, nil
}
