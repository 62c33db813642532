package model

// VoiceProfile summarizes the textual voice of a site.
// Tone, PersonalityTraits and Audience are always present; the remaining
// fields are nil when the page had no usable text.
type VoiceProfile struct {
	Tone              Tone     `json:"tone"`
	PersonalityTraits []string `json:"personalityTraits"`
	Audience          Audience `json:"audienceAnalysis"`

	WritingStyle           *WritingStyle           `json:"writingStyle,omitempty"`
	Vocabulary             *Vocabulary             `json:"vocabulary,omitempty"`
	MessagingThemes        []string                `json:"messagingThemes,omitempty"`
	BrandVoiceSignals      *BrandVoiceSignals      `json:"brandVoiceSignals,omitempty"`
	ContentStrategySignals *ContentStrategySignals `json:"contentStrategySignals,omitempty"`
}

// NewVoiceProfile returns the minimal profile used when no text is available
func NewVoiceProfile() VoiceProfile {
	return VoiceProfile{
		Tone:              Tone{Scores: []CategoryScore{}},
		PersonalityTraits: []string{},
		Audience:          Audience{Complexity: ComplexityLow, Scores: []CategoryScore{}},
	}
}

// Tone is the dominant register of the copy
type Tone struct {
	Primary string          `json:"primary"`
	Scores  []CategoryScore `json:"scores"` // Every category in declaration order
}

// CategoryScore is the keyword hit count of one category
type CategoryScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// Complexity levels derived from vocabulary diversity
const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// Audience is the inferred reader of the copy
type Audience struct {
	Primary    string          `json:"primary"`
	Complexity string          `json:"complexity"` // low, medium, high
	Scores     []CategoryScore `json:"scores,omitempty"`
}

// WritingStyle holds sentence and punctuation statistics
type WritingStyle struct {
	SentenceCount      int     `json:"sentenceCount"`
	AvgSentenceLength  float64 `json:"avgSentenceLength"` // words per sentence
	ShortSentenceRatio float64 `json:"shortSentenceRatio"`
	LongSentenceRatio  float64 `json:"longSentenceRatio"`
	AvgWordLength      float64 `json:"avgWordLength"`
	CommaFrequency     float64 `json:"commaFrequency"` // per sentence
	SemicolonFrequency float64 `json:"semicolonFrequency"`
	DashFrequency      float64 `json:"dashFrequency"`
	ExclamationRatio   float64 `json:"exclamationRatio"`
	QuestionRatio      float64 `json:"questionRatio"`
}

// Vocabulary holds word frequency statistics
type Vocabulary struct {
	TotalWords  int         `json:"totalWords"`
	UniqueWords int         `json:"uniqueWords"`
	Diversity   float64     `json:"diversity"` // unique / total
	TopWords    []WordCount `json:"topWords"`
}

// WordCount is one row of the frequency table
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// BrandVoiceSignals describes how the brand addresses the reader
type BrandVoiceSignals struct {
	FirstPersonPlural int     `json:"firstPersonPlural"` // we, our, us
	SecondPerson      int     `json:"secondPerson"`      // you, your
	ReaderFocusRatio  float64 `json:"readerFocusRatio"`  // second / (first + second)
	CallsToAction     int     `json:"callsToAction"`
	Questions         int     `json:"questions"`
}

// ContentStrategySignals describes what the copy emphasizes
type ContentStrategySignals struct {
	BenefitMentions int    `json:"benefitMentions"`
	FeatureMentions int    `json:"featureMentions"`
	SocialProof     int    `json:"socialProof"`
	UrgencyCues     int    `json:"urgencyCues"`
	Focus           string `json:"focus"` // benefits, features, balanced
}
