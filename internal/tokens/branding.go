package tokens

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/ppiankov/brandprint/internal/document"
)

// previewPolicy strips scripts, handlers and styles from preview markup.
// A bluemonday policy is safe for concurrent use once built.
var previewPolicy = bluemonday.UGCPolicy()

const (
	minMessageRunes = 8
	maxMessageRunes = 200
)

// BrandingTokens is the branding category of a profile
type BrandingTokens struct {
	LogoURL       string
	Messaging     []string
	PreviewMarkup string
}

// Branding finds the logo, hero/tagline copy and a sanitized preview of the
// top of the page
func Branding(doc *document.Document) BrandingTokens {
	return BrandingTokens{
		LogoURL:       logoURL(doc),
		Messaging:     messaging(doc),
		PreviewMarkup: previewMarkup(doc),
	}
}

func logoURL(doc *document.Document) string {
	candidates := []string{
		`img[class*="logo"]`,
		`img[id*="logo"]`,
		`[class*="logo"] img`,
		`[id*="logo"] img`,
		`img[alt*="logo"]`,
		`img[alt*="Logo"]`,
		`header img`,
	}
	for _, sel := range candidates {
		if src, ok := doc.Attr(sel, "src"); ok {
			if abs, ok := doc.ResolveURL(src); ok {
				return abs
			}
		}
	}
	if og, ok := doc.Attr(`meta[property="og:image"]`, "content"); ok {
		if abs, ok := doc.ResolveURL(og); ok {
			return abs
		}
	}
	return ""
}

func messaging(doc *document.Document) []string {
	set := newOrderedSet(MaxMessaging, strings.ToLower)
	sel := `h1, [class*="hero"] h2, [class*="hero"] p, [class*="tagline"], [class*="subtitle"], [class*="headline"], header p`

	doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := document.CleanText(s.Text())
		n := len([]rune(text))
		if n < minMessageRunes || n > maxMessageRunes {
			return true
		}
		set.add(text)
		return !set.full()
	})

	return set.items
}

// previewMarkup renders body children until roughly 1 KB is collected,
// sanitizes the result and cuts it to the byte limit
func previewMarkup(doc *document.Document) string {
	var buf bytes.Buffer
	for _, n := range doc.Body().Children().Nodes {
		if buf.Len() >= MaxPreviewBytes {
			break
		}
		if err := html.Render(&buf, n); err != nil {
			break
		}
	}

	clean := strings.TrimSpace(previewPolicy.Sanitize(buf.String()))
	return truncateBytes(clean, MaxPreviewBytes)
}
