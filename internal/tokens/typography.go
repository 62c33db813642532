package tokens

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ppiankov/brandprint/internal/document"
	"github.com/ppiankov/brandprint/internal/model"
	"github.com/ppiankov/brandprint/internal/style"
)

// FallbackFontStack seeds FontFamilies when a page declares none
var FallbackFontStack = []string{"-apple-system", "BlinkMacSystemFont", "Segoe UI", "Roboto", "sans-serif"}

var (
	fontFamilyRe = declarationRegexp(`font-family`)
	fontSizeRe   = declarationRegexp(`font-size`)
)

// TypographyTokens is the typography category of a profile
type TypographyTokens struct {
	FontFamilies []string
	FontSizes    []string
	Headings     []model.HeadingSample
	TextSamples  []string
}

// Typography collects font families and sizes from inline attributes and
// the style tree, plus heading and paragraph samples from the document
func Typography(doc *document.Document, sheet *style.Sheet) TypographyTokens {
	attrs := doc.StyleAttributes()

	families := newOrderedSet(MaxFontFamilies, strings.ToLower)
	for _, v := range append(attrDeclarations(attrs, fontFamilyRe), sheet.Values("font-family")...) {
		for _, f := range splitFontFamilies(v) {
			families.add(f)
		}
	}
	if len(families.items) == 0 {
		families.items = append(families.items, FallbackFontStack...)
	}

	sizes := newOrderedSet(MaxFontSizes, normalizeLiteral)
	for _, v := range append(attrDeclarations(attrs, fontSizeRe), sheet.Values("font-size")...) {
		sizes.add(v)
	}

	return TypographyTokens{
		FontFamilies: families.items,
		FontSizes:    sizes.items,
		Headings:     headings(doc),
		TextSamples:  textSamples(doc),
	}
}

// splitFontFamilies splits a font-family value into unquoted family names.
// CSS-wide keywords and var() references are skipped.
func splitFontFamilies(value string) []string {
	value = strings.TrimSuffix(strings.TrimSpace(value), "!important")

	var out []string
	for _, part := range strings.Split(value, ",") {
		name := strings.Trim(strings.TrimSpace(part), `"'`)
		switch strings.ToLower(name) {
		case "", "inherit", "initial", "unset", "revert":
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), "var(") {
			continue
		}
		out = append(out, name)
	}
	return out
}

func headings(doc *document.Document) []model.HeadingSample {
	out := []model.HeadingSample{}
	doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := document.CleanText(s.Text())
		if text == "" {
			return true
		}
		tag := goquery.NodeName(s)
		out = append(out, model.HeadingSample{
			Tag:   tag,
			Text:  truncateRunes(text, MaxTextSampleRunes),
			Level: int(tag[1] - '0'),
		})
		return len(out) < MaxHeadings
	})
	return out
}

func textSamples(doc *document.Document) []string {
	out := []string{}
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := document.CleanText(s.Text())
		if len([]rune(text)) <= MinTextSampleRunes {
			return true
		}
		out = append(out, truncateRunes(text, MaxTextSampleRunes))
		return len(out) < MaxTextSamples
	})
	return out
}
