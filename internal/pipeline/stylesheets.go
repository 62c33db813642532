package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/ppiankov/brandprint/internal/cache"
)

// maxStylesheets caps linked stylesheet fetches per page
const maxStylesheets = 5

// FetchStylesheets fetches up to five stylesheets concurrently, each bounded
// by timeout. Failed or non-2xx fetches are logged and dropped; the bodies
// that did arrive are returned in the order of hrefs.
func (f *Fetcher) FetchStylesheets(ctx context.Context, hrefs []string, timeout time.Duration) []string {
	if len(hrefs) > maxStylesheets {
		hrefs = hrefs[:maxStylesheets]
	}

	bodies := make([]string, len(hrefs))
	ok := make([]bool, len(hrefs))

	var wg sync.WaitGroup
	for i, href := range hrefs {
		wg.Add(1)
		go func(i int, href string) {
			defer wg.Done()

			sctx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				sctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			result, err := f.fetch(sctx, href, cache.KindStylesheet)
			if err != nil {
				f.logger.Warn("stylesheet fetch failed", "url", href, "stage", "fetch_styles", "error", err)
				return
			}
			if !result.OK() {
				f.logger.Warn("stylesheet fetch failed", "url", href, "stage", "fetch_styles", "status", result.StatusCode)
				return
			}

			bodies[i] = result.Body
			ok[i] = true
		}(i, href)
	}
	wg.Wait()

	out := make([]string, 0, len(hrefs))
	for i, body := range bodies {
		if ok[i] {
			out = append(out, body)
		}
	}
	return out
}
