// Package tokens derives design tokens from a parsed page and its style tree.
//
// Every extractor is a pure function of (*document.Document, *style.Sheet)
// and tolerates a nil sheet. Collections are capped so pathological pages
// cannot inflate the profile.
package tokens

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/brandprint/internal/document"
	"github.com/ppiankov/brandprint/internal/model"
	"github.com/ppiankov/brandprint/internal/style"
)

// Collection caps
const (
	MaxPalette       = 20
	MaxPrimaryColors = 5
	MaxBrandColors   = 3
	MaxFontFamilies  = 10
	MaxFontSizes     = 10
	MaxHeadings      = 10
	MaxTextSamples   = 5
	MaxSpacingValues = 10
	MaxSpacingScale  = 20
	MaxBorderRadii   = 10
	MaxBreakpoints   = 10
	MaxButtons       = 10
	MaxFormFields    = 20
	MaxCards         = 10
	MaxNavGroups     = 5
	MaxNavLinks      = 10
	MaxImages        = 20
	MaxIcons         = 20
	MaxCSSVariables  = 100
	MaxMessaging     = 5

	MaxRawStyleBytes   = 10 * 1024
	MaxPreviewBytes    = 1024
	MaxTextSampleRunes = 200
	MinTextSampleRunes = 20
)

// FailureFunc is told about a category whose extractor panicked.
// The category keeps its empty default.
type FailureFunc func(category string, cause any)

// extractor fills one category of tokens
type extractor struct {
	category string
	run      func(doc *document.Document, sheet *style.Sheet, t *model.DesignTokens)
}

var extractors = []extractor{
	{"colors", func(doc *document.Document, sheet *style.Sheet, t *model.DesignTokens) {
		c := Colors(doc, sheet)
		t.ColorPalette, t.PrimaryColors, t.BrandColors, t.ColorUsageCounts = c.Palette, c.Primary, c.Brand, c.UsageCounts
	}},
	{"typography", func(doc *document.Document, sheet *style.Sheet, t *model.DesignTokens) {
		ty := Typography(doc, sheet)
		t.FontFamilies, t.FontSizes, t.Headings, t.TextSamples = ty.FontFamilies, ty.FontSizes, ty.Headings, ty.TextSamples
	}},
	{"spacing", func(doc *document.Document, sheet *style.Sheet, t *model.DesignTokens) {
		sp := Spacing(doc, sheet)
		t.Margins, t.Paddings, t.SpacingScale, t.BorderRadii = sp.Margins, sp.Paddings, sp.Scale, sp.BorderRadii
	}},
	{"layout", func(doc *document.Document, sheet *style.Sheet, t *model.DesignTokens) {
		l := Layout(doc, sheet)
		t.LayoutStructure, t.GridSystem, t.Breakpoints = l.Structure, l.Grid, l.Breakpoints
	}},
	{"buttons", func(doc *document.Document, _ *style.Sheet, t *model.DesignTokens) {
		t.Buttons = Buttons(doc)
	}},
	{"forms", func(doc *document.Document, _ *style.Sheet, t *model.DesignTokens) {
		t.FormFields = FormFields(doc)
	}},
	{"cards", func(doc *document.Document, _ *style.Sheet, t *model.DesignTokens) {
		t.Cards = Cards(doc)
	}},
	{"navigation", func(doc *document.Document, _ *style.Sheet, t *model.DesignTokens) {
		t.Navigation = Navigation(doc)
	}},
	{"images", func(doc *document.Document, _ *style.Sheet, t *model.DesignTokens) {
		t.Images = Images(doc)
	}},
	{"icons", func(doc *document.Document, _ *style.Sheet, t *model.DesignTokens) {
		t.Icons = Icons(doc)
	}},
	{"variables", func(doc *document.Document, sheet *style.Sheet, t *model.DesignTokens) {
		t.CSSVariables = Variables(doc, sheet)
		t.RawStyleExcerpt = RawStyleExcerpt(doc)
	}},
	{"branding", func(doc *document.Document, _ *style.Sheet, t *model.DesignTokens) {
		b := Branding(doc)
		t.LogoURL, t.Messaging, t.PreviewMarkup = b.LogoURL, b.Messaging, b.PreviewMarkup
	}},
}

// Extract runs every category extractor. A panicking extractor is reported
// through onFailure and leaves its category empty; the rest still run.
func Extract(doc *document.Document, sheet *style.Sheet, onFailure FailureFunc) model.DesignTokens {
	tokens := model.NewDesignTokens()
	if doc == nil {
		return tokens
	}

	for _, e := range extractors {
		runIsolated(e, doc, sheet, &tokens, onFailure)
	}

	return tokens
}

func runIsolated(e extractor, doc *document.Document, sheet *style.Sheet, tokens *model.DesignTokens, onFailure FailureFunc) {
	// Work on a copy so a panic halfway through cannot leave partial values
	scratch := tokens.Clone()
	defer func() {
		if r := recover(); r != nil {
			if onFailure != nil {
				onFailure(e.category, r)
			}
		}
	}()

	e.run(doc, sheet, &scratch)
	*tokens = scratch
}

// orderedSet keeps the first spelling of each distinct value in insertion
// order, up to a cap
type orderedSet struct {
	items []string
	seen  map[string]bool
	max   int
	key   func(string) string
}

func newOrderedSet(max int, key func(string) string) *orderedSet {
	if key == nil {
		key = func(s string) string { return s }
	}
	return &orderedSet{items: []string{}, seen: make(map[string]bool), max: max, key: key}
}

// add inserts v and reports whether it was new and fit under the cap
func (s *orderedSet) add(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || len(s.items) >= s.max {
		return false
	}
	k := s.key(v)
	if s.seen[k] {
		return false
	}
	s.seen[k] = true
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet) full() bool { return len(s.items) >= s.max }

// normalizeLiteral lower-cases a literal and strips all whitespace
func normalizeLiteral(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// attrDeclarations returns the values of property declarations found by
// regex in inline style attributes. re must capture the value in group 1.
func attrDeclarations(attrs []string, re *regexp.Regexp) []string {
	values := []string{}
	for _, attr := range attrs {
		for _, m := range re.FindAllStringSubmatch(attr, -1) {
			if v := strings.TrimSpace(m[1]); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

// declarationRegexp matches `prop: value` for the given property name
// pattern inside a style attribute
func declarationRegexp(prop string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[;{\s])` + prop + `\s*:\s*([^;}]+)`)
}

// truncateRunes cuts s to at most n runes
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// truncateBytes cuts s to at most n bytes without splitting a rune
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
