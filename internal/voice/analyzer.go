package voice

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ppiankov/brandprint/internal/model"
)

const (
	maxTraits   = 3
	maxThemes   = 5
	maxTopWords = 20
)

// Analyzer derives a voice profile from page copy. It is deterministic and
// makes no external calls.
type Analyzer struct{}

// NewAnalyzer creates a new analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze scores the corpus. An empty corpus yields the minimal profile with
// the first tone category and low complexity.
func (a *Analyzer) Analyze(corpus string) model.VoiceProfile {
	text := normalizeQuotes(corpus)
	words := tokenize(text)

	if len(words) == 0 {
		return Fallback()
	}

	profile := model.NewVoiceProfile()

	// 1. Tone over every category, in declaration order
	profile.Tone.Scores = scoreCategories(words, toneCategories)
	profile.Tone.Primary = primary(profile.Tone.Scores, toneCategories[0].name)

	// 2. Personality traits: nonzero only, never padded
	profile.PersonalityTraits = topNonZero(scoreCategories(words, traitCategories), maxTraits)

	// 3. Audience and complexity
	vocab := a.vocabulary(words)
	profile.Audience.Scores = scoreCategories(words, audienceCategories)
	profile.Audience.Primary = primary(profile.Audience.Scores, AudienceUnknown)
	profile.Audience.Complexity = complexity(vocab.Diversity)

	// 4. Extensions
	profile.WritingStyle = a.writingStyle(text)
	profile.Vocabulary = vocab
	profile.MessagingThemes = topNonZero(scoreCategories(words, themeCategories), maxThemes)
	profile.BrandVoiceSignals = a.brandVoiceSignals(text, words)
	profile.ContentStrategySignals = a.contentStrategySignals(words)

	return profile
}

// Fallback is the profile of a page without usable text: zero scores, the
// first tone category, an unknown audience and no extensions
func Fallback() model.VoiceProfile {
	profile := model.NewVoiceProfile()
	profile.Tone.Scores = scoreCategories(nil, toneCategories)
	profile.Tone.Primary = toneCategories[0].name
	profile.Audience.Primary = AudienceUnknown
	profile.Audience.Scores = scoreCategories(nil, audienceCategories)
	return profile
}

// scoreCategories counts keyword hits per category, keeping declaration order
func scoreCategories(words []string, categories []category) []model.CategoryScore {
	scores := make([]model.CategoryScore, 0, len(categories))
	for _, c := range categories {
		scores = append(scores, model.CategoryScore{
			Category: c.name,
			Score:    countKeywords(words, c.keywords),
		})
	}
	return scores
}

// primary returns the highest scoring category. Ties keep the earlier one;
// fallback is returned when every score is zero.
func primary(scores []model.CategoryScore, fallback string) string {
	best, bestScore := fallback, 0
	for _, s := range scores {
		if s.Score > bestScore {
			best, bestScore = s.Category, s.Score
		}
	}
	return best
}

// topNonZero returns up to n category names by descending score
func topNonZero(scores []model.CategoryScore, n int) []string {
	ranked := make([]model.CategoryScore, 0, len(scores))
	for _, s := range scores {
		if s.Score > 0 {
			ranked = append(ranked, s)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	names := make([]string, 0, n)
	for i := 0; i < len(ranked) && i < n; i++ {
		names = append(names, ranked[i].Category)
	}
	return names
}

func complexity(diversity float64) string {
	switch {
	case diversity > 0.7:
		return model.ComplexityHigh
	case diversity > 0.4:
		return model.ComplexityMedium
	default:
		return model.ComplexityLow
	}
}

// countKeywords counts whole-word occurrences of every keyword. Multi-word
// keywords match consecutive words.
func countKeywords(words []string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += countPhrase(words, tokenize(kw))
	}
	return total
}

func countPhrase(words, phrase []string) int {
	if len(phrase) == 0 || len(phrase) > len(words) {
		return 0
	}
	count := 0
	for i := 0; i+len(phrase) <= len(words); i++ {
		match := true
		for j, p := range phrase {
			if words[i+j] != p {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return count
}

// tokenize lower-cases text and splits it into words of letters, digits and
// inner apostrophes. A possessive 's is dropped so "leader's" counts as
// "leader"; contractions such as "don't" stay whole.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		f = strings.TrimSuffix(f, "'s")
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}

func normalizeQuotes(s string) string {
	return strings.NewReplacer("’", "'", "‘", "'").Replace(s)
}

func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
