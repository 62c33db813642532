package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/ppiankov/brandprint/internal/model"
	"github.com/ppiankov/brandprint/internal/voice"
)

func sampleProfile() *model.ExtractedProfile {
	tok := model.NewDesignTokens()
	tok.ColorPalette = []string{"#0A84FF", "#222222", "#ffffff", "#000000"}
	tok.PrimaryColors = tok.ColorPalette
	tok.BrandColors = tok.ColorPalette[:3]
	tok.ColorUsageCounts = map[string]int{"#0A84FF": 2}
	tok.FontFamilies = []string{"Inter", "sans-serif"}
	tok.SpacingScale = []model.SpacingValue{{Value: 8, Unit: "px"}, {Value: 1.5, Unit: "rem"}}
	tok.CSSVariables = map[string]string{"--b": "2px", "--a": "#fff"}
	tok.Messaging = []string{"Forms that convert"}

	vp := voice.NewAnalyzer().Analyze("We are the trusted, proven, industry leader")

	return &model.ExtractedProfile{
		SourceURL:    "https://acme.example/",
		Title:        "Acme",
		DesignTokens: tok,
		VoiceProfile: vp,
		ExtractedAt:  fixedNow,
	}
}

func TestRenderer_Markdown(t *testing.T) {
	md := NewRenderer(true).Markdown(sampleProfile())

	for _, want := range []string{
		"# Brand Profile - Acme",
		"| `#0A84FF` | brand | 2 |",
		"| `#000000` | primary | 0 |",
		"**Font families:** Inter, sans-serif",
		"**Spacing scale:** 8px, 1.5rem",
		"--a: #fff;\n--b: 2px;",
		"> Forms that convert",
		"- **Tone:** authoritative",
		"Generated by brandprint",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}

	if strings.Contains(NewRenderer(false).Markdown(sampleProfile()), "Generated by brandprint") {
		t.Error("Expected no footer when disabled")
	}
}

func TestRenderer_RenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "profile.json")
	if err := NewRenderer(false).RenderJSON(sampleProfile(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	for _, key := range []string{"sourceUrl", "designTokens", "voiceProfile", "extractedAtTimestamp"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected key %q in JSON output", key)
		}
	}
}

func TestRenderer_RenderSummary(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	NewRenderer(false).RenderSummary(&buf, sampleProfile())
	out := buf.String()

	for _, want := range []string{"https://acme.example/", "Colors:      4", "Tone:        authoritative", "Personality: reliable"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, out)
		}
	}
}
