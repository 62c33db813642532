package tokens

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ppiankov/brandprint/internal/document"
	"github.com/ppiankov/brandprint/internal/model"
)

const maxComponentText = 100

// Buttons inventories clickable button-like elements
func Buttons(doc *document.Document) []model.Component {
	out := []model.Component{}
	sel := `button, [role="button"], input[type="submit"], input[type="button"], a[class*="btn"], a[class*="button"]`

	doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := document.CleanText(s.Text())
		if text == "" {
			text = s.AttrOr("value", s.AttrOr("aria-label", ""))
		}

		kind := "button"
		switch goquery.NodeName(s) {
		case "a":
			kind = "link"
		case "input":
			kind = "input"
		}

		attrs := pickAttrs(s, "type", "href", "aria-label", "disabled")
		if href, ok := attrs["href"]; ok {
			if abs, ok := doc.ResolveURL(href); ok {
				attrs["href"] = abs
			}
		}

		out = append(out, model.Component{
			Type:       kind,
			Text:       truncateRunes(text, maxComponentText),
			Classes:    classes(s),
			Attributes: attrs,
		})
		return len(out) < MaxButtons
	})

	return out
}

// FormFields inventories user-facing inputs, selects and textareas
func FormFields(doc *document.Document) []model.FormField {
	out := []model.FormField{}

	doc.Find("input, select, textarea").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		tag := goquery.NodeName(s)
		fieldType := tag
		if tag == "input" {
			fieldType = strings.ToLower(s.AttrOr("type", "text"))
			switch fieldType {
			case "hidden", "submit", "button", "reset", "image":
				return true
			}
		}

		_, required := s.Attr("required")
		out = append(out, model.FormField{
			Type:        fieldType,
			Name:        s.AttrOr("name", ""),
			Label:       fieldLabel(doc, s),
			Placeholder: s.AttrOr("placeholder", ""),
			Required:    required,
		})
		return len(out) < MaxFormFields
	})

	return out
}

// fieldLabel finds the visible label of a form control
func fieldLabel(doc *document.Document, s *goquery.Selection) string {
	if id := s.AttrOr("id", ""); id != "" {
		var label string
		doc.Find("label[for]").EachWithBreak(func(_ int, l *goquery.Selection) bool {
			if l.AttrOr("for", "") == id {
				label = document.CleanText(l.Text())
				return false
			}
			return true
		})
		if label != "" {
			return label
		}
	}
	if aria := strings.TrimSpace(s.AttrOr("aria-label", "")); aria != "" {
		return aria
	}
	if parent := s.Closest("label"); parent.Length() > 0 {
		return document.CleanText(parent.Text())
	}
	return ""
}

// Cards inventories card-like containers
func Cards(doc *document.Document) []model.Component {
	out := []model.Component{}

	doc.Find(`[class*="card"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !hasClassContaining(s, "card") {
			return true
		}
		// Only the outermost element of a card counts
		if s.ParentsFiltered(`[class*="card"]`).FilterFunction(func(_ int, p *goquery.Selection) bool {
			return hasClassContaining(p, "card")
		}).Length() > 0 {
			return true
		}

		text := document.CleanText(s.Find("h1, h2, h3, h4, h5, h6").First().Text())
		if text == "" {
			text = document.CleanText(s.Text())
		}

		out = append(out, model.Component{
			Type:       "card",
			Text:       truncateRunes(text, maxComponentText),
			Classes:    classes(s),
			Attributes: pickAttrs(s, "id", "role"),
		})
		return len(out) < MaxCards
	})

	return out
}

// Navigation groups links by their enclosing navigation container
func Navigation(doc *document.Document) []model.NavigationGroup {
	out := []model.NavigationGroup{}
	containers := `nav, [role="navigation"], header ul`

	doc.Find(containers).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		// Nested containers belong to the outer group
		if s.ParentsFiltered(containers).Length() > 0 {
			return true
		}

		group := model.NavigationGroup{
			Label: strings.TrimSpace(s.AttrOr("aria-label", s.AttrOr("id", ""))),
			Links: []model.NavLink{},
		}

		s.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			text := document.CleanText(a.Text())
			if text == "" {
				text = strings.TrimSpace(a.AttrOr("aria-label", ""))
			}
			if text == "" {
				return true
			}
			href := strings.TrimSpace(a.AttrOr("href", ""))
			if abs, ok := doc.ResolveURL(href); ok {
				href = abs
			}
			group.Links = append(group.Links, model.NavLink{Text: truncateRunes(text, maxComponentText), Href: href})
			return len(group.Links) < MaxNavLinks
		})

		if len(group.Links) > 0 {
			out = append(out, group)
		}
		return len(out) < MaxNavGroups
	})

	return out
}

// Images inventories <img> elements with a fetchable source
func Images(doc *document.Document) []model.ImageAsset {
	out := []model.ImageAsset{}

	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src := s.AttrOr("src", "")
		if src == "" || strings.HasPrefix(src, "data:") {
			src = s.AttrOr("data-src", "")
		}
		abs, ok := doc.ResolveURL(src)
		if !ok {
			return true
		}

		out = append(out, model.ImageAsset{
			Src:    abs,
			Alt:    strings.TrimSpace(s.AttrOr("alt", "")),
			Width:  s.AttrOr("width", ""),
			Height: s.AttrOr("height", ""),
		})
		return len(out) < MaxImages
	})

	return out
}

// Icons inventories inline SVGs and icon-font glyphs
func Icons(doc *document.Document) []model.Component {
	out := []model.Component{}
	sel := `svg, i[class*="icon"], i[class*="fa-"], span[class*="icon"], [class*="material-icons"], img[src$=".svg"]`

	doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		// Skip SVGs nested in another matched icon
		if s.ParentsFiltered(sel).Length() > 0 {
			return true
		}

		kind := "icon-font"
		switch goquery.NodeName(s) {
		case "svg":
			kind = "svg"
		case "img":
			kind = "svg-image"
		}

		out = append(out, model.Component{
			Type:       kind,
			Text:       truncateRunes(document.CleanText(s.Text()), maxComponentText),
			Classes:    classes(s),
			Attributes: pickAttrs(s, "aria-label", "role", "viewbox", "src"),
		})
		return len(out) < MaxIcons
	})

	return out
}

func classes(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.AttrOr("class", "")), " ")
}

func hasClassContaining(s *goquery.Selection, fragment string) bool {
	for _, c := range strings.Fields(strings.ToLower(s.AttrOr("class", ""))) {
		if strings.Contains(c, fragment) {
			return true
		}
	}
	return false
}

// pickAttrs copies the named attributes that are present; nil when none are
func pickAttrs(s *goquery.Selection, names ...string) map[string]string {
	var attrs map[string]string
	for _, name := range names {
		v, ok := s.Attr(name)
		if !ok {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]string)
		}
		attrs[name] = v
	}
	return attrs
}
