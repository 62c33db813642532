package voice

import (
	"strings"

	"github.com/ppiankov/brandprint/internal/model"
)

// BuildCorpus joins the textual parts of a page with single spaces: headings,
// text samples, navigation labels, button labels, form labels, then title and
// meta description. Blank parts are skipped.
func BuildCorpus(title, description string, tokens model.DesignTokens) string {
	var parts []string
	add := func(s string) {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			parts = append(parts, s)
		}
	}

	for _, h := range tokens.Headings {
		add(h.Text)
	}
	for _, s := range tokens.TextSamples {
		add(s)
	}
	for _, group := range tokens.Navigation {
		for _, link := range group.Links {
			add(link.Text)
		}
	}
	for _, b := range tokens.Buttons {
		add(b.Text)
	}
	for _, f := range tokens.FormFields {
		add(f.Label)
	}
	add(title)
	add(description)

	return strings.Join(parts, " ")
}
