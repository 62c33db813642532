package tokens

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/brandprint/internal/document"
	"github.com/ppiankov/brandprint/internal/model"
	"github.com/ppiankov/brandprint/internal/style"
)

const fixturePage = `<!DOCTYPE html>
<html>
<head>
<title>Acme Forms</title>
<style>
:root { --brand-primary: #0A84FF; --space-md: 16px; }
body { font-family: "Inter", Arial, sans-serif; color: #222222; }
.btn { padding: 8px 16px; border-radius: 4px; }
@media (min-width: 768px) { .container { margin: 0 auto; } }
</style>
</head>
<body>
<script>alert("x")</script>
<header>
  <img class="site-logo" src="/logo.png" alt="Acme">
  <nav aria-label="Main"><a href="/">Home</a><a href="/pricing">Pricing</a><a href="#x"></a></nav>
</header>
<main>
  <section class="hero">
    <h1>Build forms people love</h1>
    <p>Trusted by teams everywhere to collect feedback.</p>
    <a class="btn btn-primary" href="/signup" style="background:#FF5733;margin: 12px">Start free</a>
  </section>
  <section>
    <div class="card"><h3>Fast</h3><div class="card-body">Quick setup</div></div>
    <div class="container d-flex md:flex" style="padding: 24px; color: #ff5733; --accent: rgb(1, 2, 3)">grid</div>
    <form>
      <label for="email">Email address</label>
      <input id="email" type="email" name="email" placeholder="you@example.com" required>
      <input type="hidden" name="csrf">
      <select name="plan"></select>
      <textarea aria-label="Message"></textarea>
      <button type="submit">Send</button>
    </form>
    <img src="/hero.jpg" alt="Hero" width="600">
    <img src="data:image/png;base64,AAAA">
    <svg viewBox="0 0 10 10"><path d="M0 0"/></svg>
    <i class="fa fa-star"></i>
    <p>Short</p>
    <p>This paragraph is definitely longer than twenty characters.</p>
  </section>
</main>
<footer><ul><li><a href="/terms">Terms</a></li></ul></footer>
</body>
</html>`

func parseFixture(t *testing.T, markup string) (*document.Document, *style.Sheet) {
	t.Helper()
	doc, err := document.Parse(markup, "https://acme.example/")
	if err != nil {
		t.Fatalf("document.Parse: %v", err)
	}
	sheet, err := style.Parse(style.Aggregate(doc.InlineStyleBlocks(), nil))
	if err != nil {
		t.Fatalf("style.Parse: %v", err)
	}
	return doc, sheet
}

func TestColors(t *testing.T) {
	doc, sheet := parseFixture(t, fixturePage)
	c := Colors(doc, sheet)

	wantPalette := []string{"#FF5733", "rgb(1, 2, 3)", "#0A84FF", "#222222"}
	if !reflect.DeepEqual(c.Palette, wantPalette) {
		t.Errorf("Palette = %v, want %v", c.Palette, wantPalette)
	}
	if !reflect.DeepEqual(c.Primary, wantPalette) {
		t.Errorf("Primary = %v, want %v", c.Primary, wantPalette)
	}
	if !reflect.DeepEqual(c.Brand, wantPalette[:3]) {
		t.Errorf("Brand = %v, want %v", c.Brand, wantPalette[:3])
	}

	wantCounts := map[string]int{"#FF5733": 2, "rgb(1, 2, 3)": 1}
	if !reflect.DeepEqual(c.UsageCounts, wantCounts) {
		t.Errorf("UsageCounts = %v, want %v", c.UsageCounts, wantCounts)
	}
}

func TestColors_NilSheetUsesAttributes(t *testing.T) {
	doc, _ := parseFixture(t, fixturePage)
	c := Colors(doc, nil)

	want := []string{"#FF5733", "rgb(1, 2, 3)"}
	if !reflect.DeepEqual(c.Palette, want) {
		t.Errorf("Palette = %v, want %v", c.Palette, want)
	}
}

func TestTypography(t *testing.T) {
	doc, sheet := parseFixture(t, fixturePage)
	ty := Typography(doc, sheet)

	if want := []string{"Inter", "Arial", "sans-serif"}; !reflect.DeepEqual(ty.FontFamilies, want) {
		t.Errorf("FontFamilies = %v, want %v", ty.FontFamilies, want)
	}

	wantHeadings := []model.HeadingSample{
		{Tag: "h1", Text: "Build forms people love", Level: 1},
		{Tag: "h3", Text: "Fast", Level: 3},
	}
	if !reflect.DeepEqual(ty.Headings, wantHeadings) {
		t.Errorf("Headings = %v, want %v", ty.Headings, wantHeadings)
	}

	wantSamples := []string{
		"Trusted by teams everywhere to collect feedback.",
		"This paragraph is definitely longer than twenty characters.",
	}
	if !reflect.DeepEqual(ty.TextSamples, wantSamples) {
		t.Errorf("TextSamples = %v, want %v", ty.TextSamples, wantSamples)
	}
}

func TestTypography_FallbackFonts(t *testing.T) {
	doc, sheet := parseFixture(t, "<p>no fonts here</p>")
	ty := Typography(doc, sheet)
	if !reflect.DeepEqual(ty.FontFamilies, FallbackFontStack) {
		t.Errorf("FontFamilies = %v, want fallback stack", ty.FontFamilies)
	}
}

func TestSpacing(t *testing.T) {
	doc, sheet := parseFixture(t, fixturePage)
	sp := Spacing(doc, sheet)

	if want := []string{"12px", "0 auto"}; !reflect.DeepEqual(sp.Margins, want) {
		t.Errorf("Margins = %v, want %v", sp.Margins, want)
	}
	if want := []string{"24px", "8px 16px"}; !reflect.DeepEqual(sp.Paddings, want) {
		t.Errorf("Paddings = %v, want %v", sp.Paddings, want)
	}
	if want := []string{"4px"}; !reflect.DeepEqual(sp.BorderRadii, want) {
		t.Errorf("BorderRadii = %v, want %v", sp.BorderRadii, want)
	}

	wantScale := []model.SpacingValue{{Value: 8, Unit: "px"}, {Value: 12, Unit: "px"}, {Value: 16, Unit: "px"}, {Value: 24, Unit: "px"}}
	if !reflect.DeepEqual(sp.Scale, wantScale) {
		t.Errorf("Scale = %v, want %v", sp.Scale, wantScale)
	}
}

func TestParseSpacingValue(t *testing.T) {
	tests := []struct {
		in   string
		want model.SpacingValue
		ok   bool
	}{
		{"16px", model.SpacingValue{Value: 16, Unit: "px"}, true},
		{"1.5rem", model.SpacingValue{Value: 1.5, Unit: "rem"}, true},
		{".5em", model.SpacingValue{Value: 0.5, Unit: "em"}, true},
		{"-4px", model.SpacingValue{Value: -4, Unit: "px"}, true},
		{"auto", model.SpacingValue{}, false},
		{"0", model.SpacingValue{}, false},
		{"calc(1px + 2px)", model.SpacingValue{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseSpacingValue(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseSpacingValue(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLayout(t *testing.T) {
	doc, sheet := parseFixture(t, fixturePage)
	l := Layout(doc, sheet)

	wantStructure := model.LayoutStructure{HasHeader: true, HasFooter: true, HasMain: true, SectionCount: 2}
	if l.Structure != wantStructure {
		t.Errorf("Structure = %+v, want %+v", l.Structure, wantStructure)
	}
	if want := (model.GridSystem{Containers: 1, FlexElements: 1}); l.Grid != want {
		t.Errorf("Grid = %+v, want %+v", l.Grid, want)
	}
	if want := []string{"768px"}; !reflect.DeepEqual(l.Breakpoints, want) {
		t.Errorf("Breakpoints = %v, want %v", l.Breakpoints, want)
	}
}

func TestBreakpoints_SortedByWidth(t *testing.T) {
	page := `<style>
@media (max-width: 1200px) { a { color: red; } }
@media (min-width: 40em) { a { color: blue; } }
@media screen and (min-width: 480px) and (max-width: 767px) { a { color: green; } }
</style><div class="lg:grid-cols-3 sm:block"></div>`
	doc, sheet := parseFixture(t, page)

	want := []string{"480px", "40em", "640px", "767px", "1024px", "1200px"}
	if got := Layout(doc, sheet).Breakpoints; !reflect.DeepEqual(got, want) {
		t.Errorf("Breakpoints = %v, want %v", got, want)
	}
}

func TestComponents(t *testing.T) {
	doc, _ := parseFixture(t, fixturePage)

	buttons := Buttons(doc)
	if len(buttons) != 2 {
		t.Fatalf("expected 2 buttons, got %d: %+v", len(buttons), buttons)
	}
	if buttons[0].Type != "link" || buttons[0].Text != "Start free" || buttons[0].Attributes["href"] != "https://acme.example/signup" {
		t.Errorf("unexpected first button %+v", buttons[0])
	}
	if buttons[1].Type != "button" || buttons[1].Text != "Send" {
		t.Errorf("unexpected second button %+v", buttons[1])
	}

	fields := FormFields(doc)
	wantFields := []model.FormField{
		{Type: "email", Name: "email", Label: "Email address", Placeholder: "you@example.com", Required: true},
		{Type: "select", Name: "plan"},
		{Type: "textarea", Label: "Message"},
	}
	if !reflect.DeepEqual(fields, wantFields) {
		t.Errorf("FormFields = %+v, want %+v", fields, wantFields)
	}

	cards := Cards(doc)
	if len(cards) != 1 || cards[0].Text != "Fast" {
		t.Errorf("Cards = %+v, want one card titled Fast", cards)
	}

	nav := Navigation(doc)
	wantNav := []model.NavigationGroup{{
		Label: "Main",
		Links: []model.NavLink{
			{Text: "Home", Href: "https://acme.example/"},
			{Text: "Pricing", Href: "https://acme.example/pricing"},
		},
	}}
	if !reflect.DeepEqual(nav, wantNav) {
		t.Errorf("Navigation = %+v, want %+v", nav, wantNav)
	}

	images := Images(doc)
	if len(images) != 2 || images[1].Src != "https://acme.example/hero.jpg" || images[1].Width != "600" {
		t.Errorf("Images = %+v", images)
	}

	icons := Icons(doc)
	if len(icons) != 2 || icons[0].Type != "svg" || icons[1].Type != "icon-font" {
		t.Errorf("Icons = %+v", icons)
	}
}

func TestVariables(t *testing.T) {
	doc, sheet := parseFixture(t, fixturePage)

	want := map[string]string{
		"--brand-primary": "#0A84FF",
		"--space-md":      "16px",
		"--accent":        "rgb(1, 2, 3)",
	}
	if got := Variables(doc, sheet); !reflect.DeepEqual(got, want) {
		t.Errorf("Variables = %v, want %v", got, want)
	}

	// Without a tree the raw style blocks are scanned
	if got := Variables(doc, nil); !reflect.DeepEqual(got, want) {
		t.Errorf("Variables(nil sheet) = %v, want %v", got, want)
	}
}

func TestBranding(t *testing.T) {
	doc, _ := parseFixture(t, fixturePage)
	b := Branding(doc)

	if b.LogoURL != "https://acme.example/logo.png" {
		t.Errorf("LogoURL = %q", b.LogoURL)
	}

	wantMessaging := []string{"Build forms people love", "Trusted by teams everywhere to collect feedback."}
	if !reflect.DeepEqual(b.Messaging, wantMessaging) {
		t.Errorf("Messaging = %v, want %v", b.Messaging, wantMessaging)
	}

	if b.PreviewMarkup == "" || len(b.PreviewMarkup) > MaxPreviewBytes {
		t.Errorf("PreviewMarkup has %d bytes", len(b.PreviewMarkup))
	}
	if strings.Contains(b.PreviewMarkup, "<script") || strings.Contains(b.PreviewMarkup, "style=") {
		t.Errorf("PreviewMarkup not sanitized: %s", b.PreviewMarkup)
	}
}

func TestRawStyleExcerpt_Capped(t *testing.T) {
	page := "<style>" + strings.Repeat("a{color:red}", 2000) + "</style>"
	doc, _ := parseFixture(t, page)

	if got := RawStyleExcerpt(doc); len(got) != MaxRawStyleBytes {
		t.Errorf("expected %d bytes, got %d", MaxRawStyleBytes, len(got))
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	doc, sheet := parseFixture(t, "<html><body></body></html>")
	tokens := Extract(doc, sheet, nil)

	if tokens.ColorPalette == nil || len(tokens.ColorPalette) != 0 {
		t.Errorf("expected empty palette, got %v", tokens.ColorPalette)
	}
	if tokens.Buttons == nil || tokens.FormFields == nil || tokens.Cards == nil ||
		tokens.Navigation == nil || tokens.Images == nil || tokens.Icons == nil {
		t.Error("inventories must be empty, not nil")
	}
	if tokens.CSSVariables == nil || tokens.ColorUsageCounts == nil {
		t.Error("maps must be empty, not nil")
	}
	if tokens.Headings == nil || tokens.TextSamples == nil || tokens.SpacingScale == nil || tokens.Breakpoints == nil {
		t.Error("typography and layout collections must be empty, not nil")
	}
	if !reflect.DeepEqual(tokens.FontFamilies, FallbackFontStack) {
		t.Errorf("expected fallback fonts, got %v", tokens.FontFamilies)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	doc, sheet := parseFixture(t, fixturePage)
	first := Extract(doc, sheet, nil)

	for i := 0; i < 5; i++ {
		doc, sheet := parseFixture(t, fixturePage)
		if again := Extract(doc, sheet, nil); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced different tokens", i)
		}
	}
}

func TestExtract_IsolatesPanics(t *testing.T) {
	orig := extractors
	extractors = append(append([]extractor{}, orig...), extractor{
		category: "exploding",
		run: func(_ *document.Document, _ *style.Sheet, tok *model.DesignTokens) {
			tok.LogoURL = "corrupted"
			panic("boom")
		},
	})
	defer func() { extractors = orig }()

	var failed []string
	doc, sheet := parseFixture(t, fixturePage)
	tokens := Extract(doc, sheet, func(category string, cause any) {
		failed = append(failed, fmt.Sprintf("%s:%v", category, cause))
	})

	if !reflect.DeepEqual(failed, []string{"exploding:boom"}) {
		t.Errorf("failures = %v", failed)
	}
	if tokens.LogoURL != "https://acme.example/logo.png" {
		t.Errorf("panicking extractor leaked a partial value: %q", tokens.LogoURL)
	}
	if len(tokens.ColorPalette) == 0 {
		t.Error("other categories should still be populated")
	}
}

func TestExtract_CapsHoldOnAdversarialInput(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><head><style>")
	for i := 0; i < 2000; i++ {
		fmt.Fprintf(&b, ".c%d{color:#%06x;margin:%dpx;padding:%dpx;font-family:F%d;font-size:%dpx;border-radius:%dpx;--v%d:%d}", i, i, i, i, i, i, i, i, i)
		fmt.Fprintf(&b, "@media (min-width:%dpx){.m%d{color:red}}", 100+i, i)
	}
	b.WriteString("</style></head><body>")
	for i := 0; i < 2000; i++ {
		fmt.Fprintf(&b, `<div class="card" style="color:#%06x;margin:%dpx">`, 0xffffff-i, i)
		fmt.Fprintf(&b, "<h2>Heading %d</h2><p>Paragraph number %d with enough text</p>", i, i)
		fmt.Fprintf(&b, `<p class="tagline">Tagline number %d</p>`, i)
		fmt.Fprintf(&b, `<button>B%d</button><input name="f%d"><img src="/i%d.png"><svg></svg>`, i, i, i)
		fmt.Fprintf(&b, `<nav>`)
		for j := 0; j < 15; j++ {
			fmt.Fprintf(&b, `<a href="/n%d/%d">L%d</a>`, i, j, j)
		}
		b.WriteString("</nav></div>")
	}
	b.WriteString("</body></html>")

	doc, sheet := parseFixture(t, b.String())
	tokens := Extract(doc, sheet, func(category string, cause any) {
		t.Errorf("category %s panicked: %v", category, cause)
	})

	caps := []struct {
		name string
		got  int
		max  int
	}{
		{"ColorPalette", len(tokens.ColorPalette), MaxPalette},
		{"PrimaryColors", len(tokens.PrimaryColors), MaxPrimaryColors},
		{"BrandColors", len(tokens.BrandColors), MaxBrandColors},
		{"ColorUsageCounts", len(tokens.ColorUsageCounts), MaxPalette},
		{"FontFamilies", len(tokens.FontFamilies), MaxFontFamilies},
		{"FontSizes", len(tokens.FontSizes), MaxFontSizes},
		{"Headings", len(tokens.Headings), MaxHeadings},
		{"TextSamples", len(tokens.TextSamples), MaxTextSamples},
		{"Margins", len(tokens.Margins), MaxSpacingValues},
		{"Paddings", len(tokens.Paddings), MaxSpacingValues},
		{"SpacingScale", len(tokens.SpacingScale), MaxSpacingScale},
		{"BorderRadii", len(tokens.BorderRadii), MaxBorderRadii},
		{"Breakpoints", len(tokens.Breakpoints), MaxBreakpoints},
		{"Buttons", len(tokens.Buttons), MaxButtons},
		{"FormFields", len(tokens.FormFields), MaxFormFields},
		{"Cards", len(tokens.Cards), MaxCards},
		{"Navigation", len(tokens.Navigation), MaxNavGroups},
		{"Images", len(tokens.Images), MaxImages},
		{"Icons", len(tokens.Icons), MaxIcons},
		{"CSSVariables", len(tokens.CSSVariables), MaxCSSVariables},
		{"Messaging", len(tokens.Messaging), MaxMessaging},
	}
	for _, c := range caps {
		if c.got != c.max {
			t.Errorf("%s: expected exactly %d entries on adversarial input, got %d", c.name, c.max, c.got)
		}
	}

	for _, g := range tokens.Navigation {
		if len(g.Links) > MaxNavLinks {
			t.Errorf("navigation group has %d links", len(g.Links))
		}
	}
	if len(tokens.RawStyleExcerpt) > MaxRawStyleBytes {
		t.Errorf("raw style excerpt has %d bytes", len(tokens.RawStyleExcerpt))
	}
	if len(tokens.PreviewMarkup) > MaxPreviewBytes {
		t.Errorf("preview markup has %d bytes", len(tokens.PreviewMarkup))
	}

	seen := make(map[string]bool)
	for _, c := range tokens.ColorPalette {
		if seen[normalizeLiteral(c)] {
			t.Errorf("duplicate palette entry %s", c)
		}
		seen[normalizeLiteral(c)] = true
	}
}
