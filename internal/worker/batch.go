package worker

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ppiankov/brandprint/internal/model"
	"github.com/ppiankov/brandprint/internal/store"
)

// Extractor produces a profile for one URL
type Extractor interface {
	Extract(ctx context.Context, url string) (*model.ExtractedProfile, error)
}

// Saver extracts a URL and hands the profile to a store
type Saver interface {
	ExtractAndSave(ctx context.Context, url string, st store.Store) (string, *model.ExtractedProfile, error)
}

// ExtractJob extracts a single URL, saving the profile when Store is set
type ExtractJob struct {
	Index     int
	URL       string
	Extractor Extractor
	Store     store.Store
}

// Execute runs the extraction
func (j *ExtractJob) Execute(ctx context.Context) Result {
	result := &ExtractResult{Index: j.Index, URL: j.URL}

	if j.Store == nil {
		result.Profile, result.Error = j.Extractor.Extract(ctx, j.URL)
		return result
	}

	var err error
	if saver, ok := j.Extractor.(Saver); ok {
		result.ProfileID, result.Profile, err = saver.ExtractAndSave(ctx, j.URL, j.Store)
	} else if result.Profile, err = j.Extractor.Extract(ctx, j.URL); err == nil {
		result.ProfileID, err = j.Store.Save(ctx, result.Profile)
	}

	// A profile that was extracted but not saved is still a result
	if err != nil && result.Profile != nil {
		result.SaveError = err
	} else {
		result.Error = err
	}
	return result
}

// ExtractResult is the outcome of one ExtractJob
type ExtractResult struct {
	Index     int
	URL       string
	Profile   *model.ExtractedProfile
	ProfileID string // Set when the profile was saved
	Error     error  // Extraction failure; Profile is nil
	SaveError error  // Save failure; Profile is set
}

// GetError returns the extraction error, if any
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchProcessor extracts many URLs concurrently
type BatchProcessor struct {
	extractor   Extractor
	concurrency int
	store       store.Store
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(extractor Extractor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		extractor:   extractor,
		concurrency: concurrency,
	}
}

// WithStore saves every extracted profile to st
func (b *BatchProcessor) WithStore(st store.Store) *BatchProcessor {
	b.store = st
	return b
}

// ProcessURLs extracts every URL and returns results in input order.
// URLs that were never started because ctx ended carry ctx.Err().
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*ExtractResult {
	if len(urls) == 0 {
		return []*ExtractResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		for i, u := range urls {
			if !pool.Submit(&ExtractJob{Index: i, URL: u, Extractor: b.extractor, Store: b.store}) {
				break
			}
		}
		pool.Close()
	}()

	ordered := make([]*ExtractResult, len(urls))
	for result := range pool.Results() {
		r := result.(*ExtractResult)
		ordered[r.Index] = r
	}

	for i, r := range ordered {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			ordered[i] = &ExtractResult{Index: i, URL: urls[i], Error: err}
		}
	}

	return ordered
}

// ProcessFile reads URLs from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ExtractResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads URLs from a file (one per line).
// Blank lines and # comments are skipped; duplicates are dropped.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}

// Slug turns a URL into a file-name friendly identifier
func Slug(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return sanitize(rawURL)
	}
	return sanitize(parsed.Host + strings.TrimSuffix(parsed.Path, "/"))
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), "_")
	if len(out) > 100 {
		out = out[:100]
	}
	if out == "" {
		out = "profile"
	}
	return out
}
