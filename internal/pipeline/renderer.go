package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/ppiankov/brandprint/internal/model"
)

// Renderer writes profiles as JSON, Markdown or a terminal summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the profile as indented JSON to path
func (r *Renderer) RenderJSON(profile *model.ExtractedProfile, path string) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the Markdown report to path
func (r *Renderer) RenderMarkdown(profile *model.ExtractedProfile, path string) error {
	return writeFile(path, []byte(r.Markdown(profile)))
}

// Markdown renders a human-readable report of the profile
func (r *Renderer) Markdown(profile *model.ExtractedProfile) string {
	var sb strings.Builder
	t := profile.DesignTokens
	v := profile.VoiceProfile

	title := profile.Title
	if title == "" {
		title = profile.SourceURL
	}
	sb.WriteString(fmt.Sprintf("# Brand Profile - %s\n\n", title))
	sb.WriteString(fmt.Sprintf("- **Source:** %s\n", profile.SourceURL))
	if profile.Description != "" {
		sb.WriteString(fmt.Sprintf("- **Description:** %s\n", profile.Description))
	}
	sb.WriteString(fmt.Sprintf("- **Extracted:** %s\n\n", profile.ExtractedAt.Format("2006-01-02 15:04:05 UTC")))

	// Colors
	sb.WriteString("## Colors\n\n")
	if len(t.ColorPalette) == 0 {
		sb.WriteString("_No colors found._\n\n")
	} else {
		sb.WriteString("| Color | Role | Inline uses |\n|---|---|---|\n")
		for i, c := range t.ColorPalette {
			role := ""
			switch {
			case i < len(t.BrandColors):
				role = "brand"
			case i < len(t.PrimaryColors):
				role = "primary"
			}
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %d |\n", c, role, t.ColorUsageCounts[c]))
		}
		sb.WriteString("\n")
	}

	// Typography
	sb.WriteString("## Typography\n\n")
	writeList(&sb, "Font families", t.FontFamilies)
	writeList(&sb, "Font sizes", t.FontSizes)
	if len(t.Headings) > 0 {
		sb.WriteString("**Headings**\n\n")
		for _, h := range t.Headings {
			sb.WriteString(fmt.Sprintf("- `%s` %s\n", h.Tag, h.Text))
		}
		sb.WriteString("\n")
	}

	// Spacing and layout
	sb.WriteString("## Spacing & Layout\n\n")
	scale := make([]string, 0, len(t.SpacingScale))
	for _, s := range t.SpacingScale {
		scale = append(scale, fmt.Sprintf("%g%s", s.Value, s.Unit))
	}
	writeList(&sb, "Spacing scale", scale)
	writeList(&sb, "Border radii", t.BorderRadii)
	writeList(&sb, "Breakpoints", t.Breakpoints)
	sb.WriteString(fmt.Sprintf("Landmarks: header=%t footer=%t sidebar=%t main=%t, %d sections\n\n",
		t.LayoutStructure.HasHeader, t.LayoutStructure.HasFooter, t.LayoutStructure.HasSidebar,
		t.LayoutStructure.HasMain, t.LayoutStructure.SectionCount))

	// Components
	sb.WriteString("## Components\n\n")
	sb.WriteString("| Kind | Count |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Buttons | %d |\n", len(t.Buttons)))
	sb.WriteString(fmt.Sprintf("| Form fields | %d |\n", len(t.FormFields)))
	sb.WriteString(fmt.Sprintf("| Cards | %d |\n", len(t.Cards)))
	sb.WriteString(fmt.Sprintf("| Navigation groups | %d |\n", len(t.Navigation)))
	sb.WriteString(fmt.Sprintf("| Images | %d |\n", len(t.Images)))
	sb.WriteString(fmt.Sprintf("| Icons | %d |\n\n", len(t.Icons)))

	if len(t.CSSVariables) > 0 {
		sb.WriteString("### CSS Variables\n\n```css\n")
		names := make([]string, 0, len(t.CSSVariables))
		for name := range t.CSSVariables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("%s: %s;\n", name, t.CSSVariables[name]))
		}
		sb.WriteString("```\n\n")
	}

	// Branding
	sb.WriteString("## Branding\n\n")
	if t.LogoURL != "" {
		sb.WriteString(fmt.Sprintf("- **Logo:** %s\n", t.LogoURL))
	}
	for _, m := range t.Messaging {
		sb.WriteString(fmt.Sprintf("> %s\n\n", m))
	}
	sb.WriteString("\n")

	// Voice
	sb.WriteString("## Voice\n\n")
	sb.WriteString(fmt.Sprintf("- **Tone:** %s\n", v.Tone.Primary))
	if len(v.PersonalityTraits) > 0 {
		sb.WriteString(fmt.Sprintf("- **Personality:** %s\n", strings.Join(v.PersonalityTraits, ", ")))
	}
	sb.WriteString(fmt.Sprintf("- **Audience:** %s (complexity: %s)\n", v.Audience.Primary, v.Audience.Complexity))
	if len(v.MessagingThemes) > 0 {
		sb.WriteString(fmt.Sprintf("- **Themes:** %s\n", strings.Join(v.MessagingThemes, ", ")))
	}
	if v.ContentStrategySignals != nil {
		sb.WriteString(fmt.Sprintf("- **Content focus:** %s\n", v.ContentStrategySignals.Focus))
	}
	if v.Vocabulary != nil && len(v.Vocabulary.TopWords) > 0 {
		words := make([]string, 0, len(v.Vocabulary.TopWords))
		for _, w := range v.Vocabulary.TopWords {
			words = append(words, fmt.Sprintf("%s (%d)", w.Word, w.Count))
		}
		sb.WriteString(fmt.Sprintf("- **Top words:** %s\n", strings.Join(words, ", ")))
	}
	sb.WriteString("\n")

	if r.includeFooter {
		sb.WriteString("---\n\n")
		sb.WriteString("_Generated by brandprint. Tokens and voice are heuristic readings of public markup, not an official brand guide._\n")
	}

	return sb.String()
}

// RenderSummary prints a short colored summary to w
func (r *Renderer) RenderSummary(w io.Writer, profile *model.ExtractedProfile) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	t := profile.DesignTokens
	v := profile.VoiceProfile

	cyan.Fprintf(w, "\n%s\n", profile.SourceURL)
	if profile.Title != "" {
		fmt.Fprintf(w, "  %s\n", profile.Title)
	}
	fmt.Fprintln(w)

	green.Fprintln(w, "Design tokens")
	fmt.Fprintf(w, "  • Colors:      %d (brand: %s)\n", len(t.ColorPalette), joinOrDash(t.BrandColors))
	fmt.Fprintf(w, "  • Fonts:       %s\n", joinOrDash(t.FontFamilies))
	fmt.Fprintf(w, "  • Spacing:     %d values, %d radii\n", len(t.SpacingScale), len(t.BorderRadii))
	fmt.Fprintf(w, "  • Breakpoints: %s\n", joinOrDash(t.Breakpoints))
	fmt.Fprintf(w, "  • Components:  %d buttons, %d fields, %d cards, %d nav groups\n",
		len(t.Buttons), len(t.FormFields), len(t.Cards), len(t.Navigation))
	fmt.Fprintf(w, "  • Variables:   %d\n", len(t.CSSVariables))
	fmt.Fprintln(w)

	green.Fprintln(w, "Voice")
	fmt.Fprintf(w, "  • Tone:        %s\n", v.Tone.Primary)
	fmt.Fprintf(w, "  • Personality: %s\n", joinOrDash(v.PersonalityTraits))
	fmt.Fprintf(w, "  • Audience:    %s (%s)\n", v.Audience.Primary, v.Audience.Complexity)
	fmt.Fprintln(w)
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("**%s:** %s\n\n", label, strings.Join(items, ", ")))
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
