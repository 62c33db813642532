package voice

import (
	"strings"

	"github.com/ppiankov/brandprint/internal/model"
)

// Content focus values
const (
	FocusBenefits = "benefits"
	FocusFeatures = "features"
	FocusBalanced = "balanced"
)

func (a *Analyzer) brandVoiceSignals(text string, words []string) *model.BrandVoiceSignals {
	we := countKeywords(words, firstPersonPlural)
	you := countKeywords(words, secondPerson)

	return &model.BrandVoiceSignals{
		FirstPersonPlural: we,
		SecondPerson:      you,
		ReaderFocusRatio:  ratio(you, we+you),
		CallsToAction:     countKeywords(words, callToActionPhrases),
		Questions:         strings.Count(text, "?"),
	}
}

func (a *Analyzer) contentStrategySignals(words []string) *model.ContentStrategySignals {
	signals := &model.ContentStrategySignals{
		BenefitMentions: countKeywords(words, benefitKeywords),
		FeatureMentions: countKeywords(words, featureKeywords),
		SocialProof:     countKeywords(words, socialProofKeywords),
		UrgencyCues:     countKeywords(words, urgencyKeywords),
	}

	switch {
	case signals.BenefitMentions > signals.FeatureMentions:
		signals.Focus = FocusBenefits
	case signals.FeatureMentions > signals.BenefitMentions:
		signals.Focus = FocusFeatures
	default:
		signals.Focus = FocusBalanced
	}

	return signals
}
