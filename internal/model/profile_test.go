package model

import "testing"

func TestFormInputIsDetached(t *testing.T) {
	tokens := NewDesignTokens()
	tokens.ColorPalette = []string{"#ff0000"}
	tokens.CSSVariables["--brand"] = "#ff0000"
	tokens.Navigation = []NavigationGroup{{Links: []NavLink{{Text: "Home"}}}}
	tokens.Messaging = []string{"Build forms fast"}

	profile := &ExtractedProfile{DesignTokens: tokens, VoiceProfile: NewVoiceProfile()}
	in := profile.FormInput()

	in.DesignTokens.ColorPalette[0] = "#000000"
	in.DesignTokens.CSSVariables["--brand"] = "changed"
	in.DesignTokens.Navigation[0].Links[0].Text = "changed"
	in.Messaging[0] = "changed"

	if profile.DesignTokens.ColorPalette[0] != "#ff0000" {
		t.Errorf("palette mutated through FormInput: %v", profile.DesignTokens.ColorPalette)
	}
	if profile.DesignTokens.CSSVariables["--brand"] != "#ff0000" {
		t.Errorf("variables mutated through FormInput: %v", profile.DesignTokens.CSSVariables)
	}
	if profile.DesignTokens.Navigation[0].Links[0].Text != "Home" {
		t.Errorf("navigation mutated through FormInput")
	}
	if profile.DesignTokens.Messaging[0] != "Build forms fast" {
		t.Errorf("messaging mutated through FormInput: %v", profile.DesignTokens.Messaging)
	}
}

func TestCloneKeepsEmptyCollectionsNonNil(t *testing.T) {
	c := NewDesignTokens().Clone()
	if c.ColorPalette == nil || c.CSSVariables == nil || c.Navigation == nil {
		t.Error("expected non-nil collections after Clone")
	}
}
