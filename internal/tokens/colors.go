package tokens

import (
	"regexp"
	"sort"

	"github.com/ppiankov/brandprint/internal/document"
	"github.com/ppiankov/brandprint/internal/style"
)

var (
	hexColorRe  = regexp.MustCompile(`#(?:[0-9a-fA-F]{8}|[0-9a-fA-F]{6}|[0-9a-fA-F]{3,4})\b`)
	funcColorRe = regexp.MustCompile(`(?i)\b(?:rgba?|hsla?)\([^()]*\)`)
)

// ColorTokens is the color category of a profile
type ColorTokens struct {
	Palette     []string
	Primary     []string
	Brand       []string
	UsageCounts map[string]int
}

// Colors unions color literals from inline style attributes with those
// found by walking the style tree. Palette order is discovery order, inline
// attributes first. Primary and brand colors are simply the first five and
// three palette entries.
func Colors(doc *document.Document, sheet *style.Sheet) ColorTokens {
	palette := newOrderedSet(MaxPalette, normalizeLiteral)
	counts := make(map[string]int)

	// Attribute-regex strategy
	for _, attr := range doc.StyleAttributes() {
		for _, c := range scanColorLiterals(attr) {
			palette.add(c)
			counts[normalizeLiteral(c)]++
		}
	}

	// Syntax-tree strategy
	for _, c := range sheet.ColorLiterals() {
		if palette.full() {
			break
		}
		palette.add(c)
	}

	usage := make(map[string]int)
	for _, c := range palette.items {
		if n := counts[normalizeLiteral(c)]; n > 0 {
			usage[c] = n
		}
	}

	return ColorTokens{
		Palette:     palette.items,
		Primary:     head(palette.items, MaxPrimaryColors),
		Brand:       head(palette.items, MaxBrandColors),
		UsageCounts: usage,
	}
}

// scanColorLiterals finds hex and functional color literals in source order
func scanColorLiterals(s string) []string {
	type match struct {
		pos int
		lit string
	}
	var found []match
	for _, loc := range hexColorRe.FindAllStringIndex(s, -1) {
		found = append(found, match{loc[0], s[loc[0]:loc[1]]})
	}
	for _, loc := range funcColorRe.FindAllStringIndex(s, -1) {
		found = append(found, match{loc[0], s[loc[0]:loc[1]]})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	out := make([]string, len(found))
	for i, m := range found {
		out[i] = m.lit
	}
	return out
}

func head(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	return append([]string{}, items[:n]...)
}
