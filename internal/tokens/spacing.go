package tokens

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/brandprint/internal/document"
	"github.com/ppiankov/brandprint/internal/model"
	"github.com/ppiankov/brandprint/internal/style"
)

var (
	marginRe       = declarationRegexp(`margin(?:-(?:top|right|bottom|left|block|inline))?`)
	paddingRe      = declarationRegexp(`padding(?:-(?:top|right|bottom|left|block|inline))?`)
	borderRadiusRe = declarationRegexp(`border-radius`)
	spacingValueRe = regexp.MustCompile(`^(-?(?:\d+\.?\d*|\.\d+))(px|rem|em|%|vh|vw|pt|ch|ex)$`)
)

var marginProps = []string{"margin", "margin-top", "margin-right", "margin-bottom", "margin-left", "margin-block", "margin-inline"}

var paddingProps = []string{"padding", "padding-top", "padding-right", "padding-bottom", "padding-left", "padding-block", "padding-inline"}

// SpacingTokens is the spacing category of a profile
type SpacingTokens struct {
	Margins     []string
	Paddings    []string
	Scale       []model.SpacingValue
	BorderRadii []string
}

// Spacing collects margin, padding and border-radius declarations. The
// scale is built from every margin/padding literal that parses as a number
// with a unit; anything else is skipped.
func Spacing(doc *document.Document, sheet *style.Sheet) SpacingTokens {
	attrs := doc.StyleAttributes()

	marginValues := append(attrDeclarations(attrs, marginRe), sheet.Values(marginProps...)...)
	paddingValues := append(attrDeclarations(attrs, paddingRe), sheet.Values(paddingProps...)...)

	margins := newOrderedSet(MaxSpacingValues, normalizeLiteral)
	for _, v := range marginValues {
		margins.add(v)
	}
	paddings := newOrderedSet(MaxSpacingValues, normalizeLiteral)
	for _, v := range paddingValues {
		paddings.add(v)
	}

	radii := newOrderedSet(MaxBorderRadii, normalizeLiteral)
	for _, v := range append(attrDeclarations(attrs, borderRadiusRe), sheet.Values("border-radius")...) {
		radii.add(v)
	}

	return SpacingTokens{
		Margins:     margins.items,
		Paddings:    paddings.items,
		Scale:       spacingScale(append(marginValues, paddingValues...)),
		BorderRadii: radii.items,
	}
}

// spacingScale parses shorthand values into distinct {value, unit} pairs
// sorted ascending by value, then by unit
func spacingScale(values []string) []model.SpacingValue {
	seen := make(map[model.SpacingValue]bool)
	scale := []model.SpacingValue{}

	for _, v := range values {
		for _, part := range strings.Fields(strings.ToLower(v)) {
			sv, ok := ParseSpacingValue(part)
			if !ok || seen[sv] {
				continue
			}
			seen[sv] = true
			scale = append(scale, sv)
		}
	}

	sort.Slice(scale, func(i, j int) bool {
		if scale[i].Value != scale[j].Value {
			return scale[i].Value < scale[j].Value
		}
		return scale[i].Unit < scale[j].Unit
	})

	if len(scale) > MaxSpacingScale {
		scale = scale[:MaxSpacingScale]
	}
	return scale
}

// ParseSpacingValue parses a literal such as "16px" or "1.5rem"
func ParseSpacingValue(literal string) (model.SpacingValue, bool) {
	m := spacingValueRe.FindStringSubmatch(strings.TrimSpace(literal))
	if m == nil {
		return model.SpacingValue{}, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return model.SpacingValue{}, false
	}
	return model.SpacingValue{Value: f, Unit: m[2]}, true
}
