package tokens

import (
	"regexp"
	"strings"

	"github.com/ppiankov/brandprint/internal/document"
	"github.com/ppiankov/brandprint/internal/style"
)

var customPropertyRe = regexp.MustCompile(`(--[A-Za-z0-9_-]+)\s*:\s*([^;{}]+)`)

// Variables unions custom properties from the style tree with those
// declared in inline style attributes. When the tree is missing the raw
// <style> blocks are scanned instead. The first declaration of a name wins.
func Variables(doc *document.Document, sheet *style.Sheet) map[string]string {
	vars := make(map[string]string)
	add := func(name, value string) {
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" || len(vars) >= MaxCSSVariables {
			return
		}
		if _, exists := vars[name]; !exists {
			vars[name] = value
		}
	}

	if sheet != nil {
		for _, p := range sheet.CustomProperties() {
			add(p.Name, p.Value)
		}
	} else {
		for _, block := range doc.InlineStyleBlocks() {
			for _, m := range customPropertyRe.FindAllStringSubmatch(block, -1) {
				add(m[1], m[2])
			}
		}
	}

	for _, attr := range doc.StyleAttributes() {
		for _, m := range customPropertyRe.FindAllStringSubmatch(attr, -1) {
			add(m[1], m[2])
		}
	}

	return vars
}

// RawStyleExcerpt returns the first 10 KB of the page's inline <style> text
func RawStyleExcerpt(doc *document.Document) string {
	return truncateBytes(strings.Join(doc.InlineStyleBlocks(), "\n"), MaxRawStyleBytes)
}
