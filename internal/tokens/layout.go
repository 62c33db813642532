package tokens

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ppiankov/brandprint/internal/document"
	"github.com/ppiankov/brandprint/internal/model"
	"github.com/ppiankov/brandprint/internal/style"
)

var (
	mediaWidthRe = regexp.MustCompile(`(?i)(?:min|max)-width\s*:\s*(\d+(?:\.\d+)?)(px|em|rem)`)
	columnRe     = regexp.MustCompile(`^(?:col|column|columns)(?:-|$)|^grid-cols-|^(?:sm|md|lg|xl|2xl):grid-cols-`)
	flexAttrRe   = regexp.MustCompile(`(?i)display\s*:\s*(?:inline-)?flex\b`)
)

// responsivePrefixes maps utility-class prefixes to their conventional widths
var responsivePrefixes = []struct {
	prefix string
	width  string
}{
	{"sm:", "640px"},
	{"md:", "768px"},
	{"lg:", "1024px"},
	{"xl:", "1280px"},
	{"2xl:", "1536px"},
}

// LayoutTokens is the layout category of a profile
type LayoutTokens struct {
	Structure   model.LayoutStructure
	Grid        model.GridSystem
	Breakpoints []string
}

// Layout reports landmark regions, grid primitives and responsive breakpoints
func Layout(doc *document.Document, sheet *style.Sheet) LayoutTokens {
	return LayoutTokens{
		Structure: model.LayoutStructure{
			HasHeader:    doc.Find(`header, [role="banner"]`).Length() > 0,
			HasFooter:    doc.Find(`footer, [role="contentinfo"]`).Length() > 0,
			HasSidebar:   doc.Find(`aside, [role="complementary"], [class*="sidebar"]`).Length() > 0,
			HasMain:      doc.Find(`main, [role="main"]`).Length() > 0,
			SectionCount: doc.Find("section").Length(),
		},
		Grid:        gridSystem(doc),
		Breakpoints: breakpoints(doc, sheet),
	}
}

func gridSystem(doc *document.Document) model.GridSystem {
	var grid model.GridSystem

	doc.Find("[class], [style]").Each(func(_ int, s *goquery.Selection) {
		classes := strings.Fields(strings.ToLower(s.AttrOr("class", "")))

		container, column, flex := false, false, false
		for _, c := range classes {
			switch {
			case strings.Contains(c, "container") || c == "wrapper":
				container = true
			case columnRe.MatchString(c):
				column = true
			case c == "flex" || c == "d-flex" || c == "inline-flex" || c == "d-inline-flex":
				flex = true
			}
		}
		if flexAttrRe.MatchString(s.AttrOr("style", "")) {
			flex = true
		}

		if container {
			grid.Containers++
		}
		if column {
			grid.Columns++
		}
		if flex {
			grid.FlexElements++
		}
	})

	return grid
}

// breakpoints merges @media widths with responsive class prefixes, sorted
// by pixel width (1em = 16px)
func breakpoints(doc *document.Document, sheet *style.Sheet) []string {
	type bp struct {
		literal string
		px      float64
	}
	seen := make(map[string]bool)
	var found []bp

	add := func(num, unit string) {
		f, err := strconv.ParseFloat(num, 64)
		if err != nil || f <= 0 {
			return
		}
		unit = strings.ToLower(unit)
		literal := strconv.FormatFloat(f, 'f', -1, 64) + unit
		if seen[literal] {
			return
		}
		seen[literal] = true
		px := f
		if unit != "px" {
			px = f * 16
		}
		found = append(found, bp{literal, px})
	}

	for _, prelude := range sheet.MediaPreludes() {
		for _, m := range mediaWidthRe.FindAllStringSubmatch(prelude, -1) {
			add(m[1], m[2])
		}
	}

	used := make(map[string]bool)
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		for _, c := range strings.Fields(s.AttrOr("class", "")) {
			for _, p := range responsivePrefixes {
				if strings.HasPrefix(c, p.prefix) {
					used[p.prefix] = true
				}
			}
		}
	})
	for _, p := range responsivePrefixes {
		if used[p.prefix] {
			add(strings.TrimSuffix(p.width, "px"), "px")
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].px < found[j].px })

	out := []string{}
	for _, b := range found {
		if len(out) >= MaxBreakpoints {
			break
		}
		out = append(out, b.literal)
	}
	return out
}
