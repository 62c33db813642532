// Package document wraps a parsed HTML page with the read-only queries the
// token extractors need.
package document

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed page bound to the URL it was fetched from.
// It is never mutated after Parse.
type Document struct {
	doc  *goquery.Document
	base *url.URL
}

// Parse builds a Document from raw markup. pageURL is used to resolve
// relative references and must be absolute.
func Parse(markup, pageURL string) (*Document, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page URL: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("page URL %q is not absolute", pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	d := &Document{doc: doc, base: base}

	// <base href> overrides the page URL for relative references
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if resolved, ok := d.ResolveURL(href); ok {
			d.base, _ = url.Parse(resolved)
		}
	}

	return d, nil
}

// Find runs a CSS selector against the whole document.
// An invalid selector matches nothing.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Attr returns an attribute of the first element matching selector
func (d *Document) Attr(selector, name string) (string, bool) {
	return d.doc.Find(selector).First().Attr(name)
}

// Text returns the whitespace-collapsed text of the first element matching selector
func (d *Document) Text(selector string) string {
	return CleanText(d.doc.Find(selector).First().Text())
}

// Body returns the <body> selection (empty when the page has none)
func (d *Document) Body() *goquery.Selection {
	return d.doc.Find("body").First()
}

// ResolveURL resolves href against the page and reports whether the result
// is a fetchable http(s) URL
func (d *Document) ResolveURL(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	abs := d.base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	abs.Fragment = ""
	return abs.String(), true
}

// Title returns the page <title>
func (d *Document) Title() string {
	return d.Text("title")
}

// MetaDescription returns the meta description, falling back to og:description
func (d *Document) MetaDescription() string {
	for _, sel := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
		if content, ok := d.Attr(sel, "content"); ok {
			if content = CleanText(content); content != "" {
				return content
			}
		}
	}
	return ""
}

// FaviconURL returns the absolute favicon URL, defaulting to /favicon.ico
func (d *Document) FaviconURL() string {
	var favicon string
	d.doc.Find("link[rel][href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel := strings.ToLower(s.AttrOr("rel", ""))
		if !hasToken(rel, "icon") && !hasToken(rel, "apple-touch-icon") {
			return true
		}
		if abs, ok := d.ResolveURL(s.AttrOr("href", "")); ok {
			favicon = abs
			return false
		}
		return true
	})
	if favicon != "" {
		return favicon
	}

	fallback, _ := d.ResolveURL("/favicon.ico")
	return fallback
}

// StylesheetHrefs returns up to limit distinct absolute URLs of linked
// stylesheets in document order
func (d *Document) StylesheetHrefs(limit int) []string {
	hrefs := []string{}
	seen := make(map[string]bool)

	d.doc.Find("link[rel][href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(hrefs) >= limit {
			return false
		}
		if !hasToken(strings.ToLower(s.AttrOr("rel", "")), "stylesheet") {
			return true
		}
		abs, ok := d.ResolveURL(s.AttrOr("href", ""))
		if !ok || seen[abs] {
			return true
		}
		seen[abs] = true
		hrefs = append(hrefs, abs)
		return true
	})

	return hrefs
}

// InlineStyleBlocks returns the contents of every <style> element
func (d *Document) InlineStyleBlocks() []string {
	blocks := []string{}
	d.doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	return blocks
}

// StyleAttributes returns the value of every inline style attribute
func (d *Document) StyleAttributes() []string {
	attrs := []string{}
	d.doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		if v := strings.TrimSpace(s.AttrOr("style", "")); v != "" {
			attrs = append(attrs, v)
		}
	})
	return attrs
}

// CleanText collapses runs of whitespace into single spaces
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if f == token {
			return true
		}
	}
	return false
}
