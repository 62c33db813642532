package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ppiankov/brandprint/internal/cache"
	"github.com/ppiankov/brandprint/internal/util"
	"github.com/ppiankov/brandprint/internal/worker"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = time.Second
	maxRedirects          = 5
	defaultMaxBodyBytes   = 5_000_000
)

// fetchSleepFunc waits between attempts; replaced in tests
var fetchSleepFunc = sleepCtx

// Fetcher fetches pages and stylesheets with bounded retries
type Fetcher struct {
	httpClient     *http.Client
	userAgent      string
	maxBytes       int64
	maxRetries     int
	initialBackoff time.Duration
	cache          cache.Cache
	cacheTTL       time.Duration
	limiter        *worker.Limiter
	logger         *slog.Logger
}

// FetcherOption configures optional Fetcher collaborators
type FetcherOption func(*Fetcher)

// WithRetryPolicy overrides the retry count and the first backoff delay
func WithRetryPolicy(maxRetries int, initialBackoff time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if maxRetries >= 0 {
			f.maxRetries = maxRetries
		}
		if initialBackoff > 0 {
			f.initialBackoff = initialBackoff
		}
	}
}

// WithCache serves repeated 2xx bodies from c
func WithCache(c cache.Cache, ttl time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.cache = c
		f.cacheTTL = ttl
	}
}

// WithLimiter paces every attempt through l
func WithLimiter(l *worker.Limiter) FetcherOption {
	return func(f *Fetcher) { f.limiter = l }
}

// WithLogger sets the logger used for retry and cache diagnostics
func WithLogger(l *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher creates a new Fetcher. timeout bounds a single attempt; callers
// bound the whole fetch (retries included) through the context.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, httpProxy, httpsProxy, noProxy string, opts ...FetcherOption) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBodyBytes
	}

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
				MaxIdleConnsPerHost: maxStylesheets,
				TLSHandshakeTimeout: 10 * time.Second,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent:      userAgent,
		maxBytes:       maxBytes,
		maxRetries:     defaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FetchResult contains a fetched body and its metadata
type FetchResult struct {
	Body        string `json:"body"`
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type,omitempty"`
	FinalURL    string `json:"final_url"`
	Attempts    int    `json:"-"`
	FromCache   bool   `json:"-"`
}

// OK reports whether the response had a 2xx status
func (r *FetchResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// statusError records a response status that triggers classification
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.code, http.StatusText(e.code))
}

// FetchWithRetry fetches a page, retrying 429, 5xx and network failures with
// doubling delays. 401/403 fail at once with a BlockedError. Any other status
// is returned as-is in FetchResult.StatusCode.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	return f.fetch(ctx, rawURL, cache.KindPage)
}

func (f *Fetcher) fetch(ctx context.Context, rawURL, kind string) (*FetchResult, error) {
	key := cache.CacheKey(kind, rawURL)
	if cached, ok := f.fromCache(key); ok {
		f.logger.Debug("cache hit", "url", rawURL, "kind", kind)
		return cached, nil
	}

	delay := f.initialBackoff
	var lastErr error
	lastStatus := 0

	for attempt := 1; ; attempt++ {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		result, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			result.Attempts = attempt
			switch {
			case result.StatusCode == http.StatusUnauthorized || result.StatusCode == http.StatusForbidden:
				return nil, &BlockedError{URL: rawURL, StatusCode: result.StatusCode}
			case isRetryableStatus(result.StatusCode):
				lastStatus = result.StatusCode
				lastErr = &statusError{code: result.StatusCode}
			default:
				if result.OK() {
					f.toCache(key, result)
				}
				return result, nil
			}
		} else {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("fetch %s: %w", rawURL, ctx.Err())
			}
			if !isRetryableFetchError(err) {
				return nil, &FetchFailedError{URL: rawURL, Err: err}
			}
			lastStatus = 0
			lastErr = err
		}

		if attempt > f.maxRetries {
			return nil, &TransientError{URL: rawURL, StatusCode: lastStatus, Attempts: attempt, Err: lastErr}
		}

		f.logger.Debug("retrying fetch",
			"url", rawURL,
			"attempt", attempt,
			"backoff_ms", delay.Milliseconds(),
			"error", lastErr,
		)
		if err := fetchSleepFunc(ctx, delay); err != nil {
			return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
		}
		delay *= 2
	}
}

// fetchOnce performs a single GET. A non-nil error means no usable response.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &requestError{err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/css,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	result := &FetchResult{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}

	if !result.OK() {
		// Drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return result, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	result.Body = string(body)

	return result, nil
}

func (f *Fetcher) fromCache(key string) (*FetchResult, bool) {
	if f.cache == nil {
		return nil, false
	}
	data, ok := f.cache.Get(key)
	if !ok {
		return nil, false
	}
	var result FetchResult
	if err := json.Unmarshal(data, &result); err != nil {
		_ = f.cache.Delete(key)
		return nil, false
	}
	result.FromCache = true
	return &result, true
}

func (f *Fetcher) toCache(key string, result *FetchResult) {
	if f.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := f.cache.Set(key, data, f.cacheTTL); err != nil {
		f.logger.Warn("cache write failed", "url", result.FinalURL, "error", err)
	}
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// isRetryableFetchError reports whether a failed attempt may be retried.
// Transport failures and 429/5xx statuses are retryable; request
// construction errors, access denial and cancellation are not.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var se *statusError
	if errors.As(err, &se) {
		return isRetryableStatus(se.code)
	}

	var blocked *BlockedError
	if errors.As(err, &blocked) {
		return false
	}

	// Transport errors and truncated bodies get another attempt
	var reqErr *requestError
	return !errors.As(err, &reqErr)
}

// requestError marks failures that happen before any network activity
type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
