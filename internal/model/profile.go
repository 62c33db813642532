package model

import "time"

// ExtractedProfile is the complete result of analyzing a single website.
// It is produced in one piece by the extractor and never mutated afterwards.
type ExtractedProfile struct {
	SourceURL    string       `json:"sourceUrl"`             // URL that was analyzed (after redirects)
	Title        string       `json:"title"`                 // <title> text
	Description  string       `json:"description,omitempty"` // meta description
	FaviconURL   string       `json:"faviconUrl,omitempty"`  // Absolute favicon URL
	DesignTokens DesignTokens `json:"designTokens"`          // Visual language of the site
	VoiceProfile VoiceProfile `json:"voiceProfile"`          // Textual tone of the site
	ExtractedAt  time.Time    `json:"extractedAtTimestamp"`  // When the extraction finished
}

// FormInput is the read-only subset of a profile consumed by form generation
type FormInput struct {
	DesignTokens DesignTokens `json:"designTokens"`
	VoiceProfile VoiceProfile `json:"voiceProfile"`
	Messaging    []string     `json:"messaging"`
}

// FormInput returns a copy of the profile parts used downstream.
// Slices and maps are copied so the caller cannot alter the profile.
func (p *ExtractedProfile) FormInput() FormInput {
	tokens := p.DesignTokens.Clone()
	return FormInput{
		DesignTokens: tokens,
		VoiceProfile: p.VoiceProfile,
		Messaging:    append([]string{}, p.DesignTokens.Messaging...),
	}
}

// DesignTokens summarizes the visual language of a page.
// Every field may legitimately be empty; slices and maps are never nil.
type DesignTokens struct {
	// Colors
	ColorPalette     []string       `json:"colorPalette"`     // Distinct literals in discovery order
	PrimaryColors    []string       `json:"primaryColors"`    // First 5 of the palette
	BrandColors      []string       `json:"brandColors"`      // First 3 of the palette
	ColorUsageCounts map[string]int `json:"colorUsageCounts"` // Occurrences in inline declarations

	// Typography
	FontFamilies []string        `json:"fontFamilies"`
	FontSizes    []string        `json:"fontSizes"`
	Headings     []HeadingSample `json:"headings"`
	TextSamples  []string        `json:"textSamples"`

	// Spacing
	Margins      []string       `json:"margins"`
	Paddings     []string       `json:"paddings"`
	SpacingScale []SpacingValue `json:"spacingScale"`
	BorderRadii  []string       `json:"borderRadii"`

	// Layout
	LayoutStructure LayoutStructure `json:"layoutStructure"`
	GridSystem      GridSystem      `json:"gridSystem"`
	Breakpoints     []string        `json:"breakpoints"`

	// Components
	Buttons    []Component       `json:"buttons"`
	FormFields []FormField       `json:"formFields"`
	Cards      []Component       `json:"cards"`
	Navigation []NavigationGroup `json:"navigation"`
	Images     []ImageAsset      `json:"images"`
	Icons      []Component       `json:"icons"`

	// Style sheet data
	CSSVariables    map[string]string `json:"cssVariables"`
	RawStyleExcerpt string            `json:"rawStyleExcerpt"`

	// Branding
	LogoURL       string   `json:"logoUrl,omitempty"`
	Messaging     []string `json:"messaging"`
	PreviewMarkup string   `json:"previewMarkup"`
}

// NewDesignTokens returns tokens with every collection initialized
func NewDesignTokens() DesignTokens {
	return DesignTokens{
		ColorPalette:     []string{},
		PrimaryColors:    []string{},
		BrandColors:      []string{},
		ColorUsageCounts: map[string]int{},
		FontFamilies:     []string{},
		FontSizes:        []string{},
		Headings:         []HeadingSample{},
		TextSamples:      []string{},
		Margins:          []string{},
		Paddings:         []string{},
		SpacingScale:     []SpacingValue{},
		BorderRadii:      []string{},
		Breakpoints:      []string{},
		Buttons:          []Component{},
		FormFields:       []FormField{},
		Cards:            []Component{},
		Navigation:       []NavigationGroup{},
		Images:           []ImageAsset{},
		Icons:            []Component{},
		CSSVariables:     map[string]string{},
		Messaging:        []string{},
	}
}

// Clone returns a deep copy of the tokens
func (t DesignTokens) Clone() DesignTokens {
	c := t
	c.ColorPalette = append([]string{}, t.ColorPalette...)
	c.PrimaryColors = append([]string{}, t.PrimaryColors...)
	c.BrandColors = append([]string{}, t.BrandColors...)
	c.ColorUsageCounts = make(map[string]int, len(t.ColorUsageCounts))
	for k, v := range t.ColorUsageCounts {
		c.ColorUsageCounts[k] = v
	}
	c.FontFamilies = append([]string{}, t.FontFamilies...)
	c.FontSizes = append([]string{}, t.FontSizes...)
	c.Headings = append([]HeadingSample{}, t.Headings...)
	c.TextSamples = append([]string{}, t.TextSamples...)
	c.Margins = append([]string{}, t.Margins...)
	c.Paddings = append([]string{}, t.Paddings...)
	c.SpacingScale = append([]SpacingValue{}, t.SpacingScale...)
	c.BorderRadii = append([]string{}, t.BorderRadii...)
	c.Breakpoints = append([]string{}, t.Breakpoints...)
	c.Buttons = append([]Component{}, t.Buttons...)
	c.FormFields = append([]FormField{}, t.FormFields...)
	c.Cards = append([]Component{}, t.Cards...)
	c.Navigation = make([]NavigationGroup, len(t.Navigation))
	for i, g := range t.Navigation {
		c.Navigation[i] = NavigationGroup{Label: g.Label, Links: append([]NavLink{}, g.Links...)}
	}
	c.Images = append([]ImageAsset{}, t.Images...)
	c.Icons = append([]Component{}, t.Icons...)
	c.CSSVariables = make(map[string]string, len(t.CSSVariables))
	for k, v := range t.CSSVariables {
		c.CSSVariables[k] = v
	}
	c.Messaging = append([]string{}, t.Messaging...)
	return c
}

// HeadingSample is a heading found in the document
type HeadingSample struct {
	Tag   string `json:"tag"`   // h1..h6
	Text  string `json:"text"`
	Level int    `json:"level"` // Numeric heading depth
}

// SpacingValue is a normalized spacing literal such as 16px or 1.5rem
type SpacingValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// LayoutStructure records which landmark regions a page uses
type LayoutStructure struct {
	HasHeader    bool `json:"hasHeader"`
	HasFooter    bool `json:"hasFooter"`
	HasSidebar   bool `json:"hasSidebar"`
	HasMain      bool `json:"hasMain"`
	SectionCount int  `json:"sectionCount"`
}

// GridSystem counts layout primitives
type GridSystem struct {
	Containers   int `json:"containers"`
	Columns      int `json:"columns"`
	FlexElements int `json:"flexElements"`
}

// Component describes a UI element such as a button, card or icon
type Component struct {
	Type       string            `json:"type"`
	Text       string            `json:"text,omitempty"`
	Classes    string            `json:"classes,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// FormField describes an input, select or textarea
type FormField struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Label       string `json:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
}

// NavigationGroup is the set of links inside one navigation container
type NavigationGroup struct {
	Label string    `json:"label,omitempty"` // aria-label or id of the container
	Links []NavLink `json:"links"`
}

// NavLink is a single navigation entry
type NavLink struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// ImageAsset is an <img> reference resolved against the page URL
type ImageAsset struct {
	Src    string `json:"src"`
	Alt    string `json:"alt,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}
