package voice

import (
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/brandprint/internal/model"
)

const (
	shortSentenceWords = 10
	longSentenceWords  = 25
)

type sentence struct {
	text       string
	terminator rune
}

// splitSentences splits on runs of . ! ? and keeps the first terminator.
// Trailing text without a terminator counts as a sentence.
func splitSentences(text string) []sentence {
	var (
		out []sentence
		buf strings.Builder
	)
	flush := func(term rune) {
		s := strings.TrimSpace(buf.String())
		buf.Reset()
		if s != "" {
			out = append(out, sentence{text: s, terminator: term})
		}
	}

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if buf.Len() == 0 || strings.TrimSpace(buf.String()) == "" {
				buf.Reset()
				continue
			}
			flush(r)
		default:
			buf.WriteRune(r)
		}
	}
	flush(0)

	return out
}

func (a *Analyzer) writingStyle(text string) *model.WritingStyle {
	sentences := splitSentences(text)
	style := &model.WritingStyle{SentenceCount: len(sentences)}
	if len(sentences) == 0 {
		return style
	}

	var words, letters, short, long, exclaims, questions int
	for _, s := range sentences {
		w := tokenize(s.text)
		words += len(w)
		for _, word := range w {
			letters += utf8.RuneCountInString(word)
		}
		switch {
		case len(w) < shortSentenceWords:
			short++
		case len(w) > longSentenceWords:
			long++
		}
		switch s.terminator {
		case '!':
			exclaims++
		case '?':
			questions++
		}
	}

	n := len(sentences)
	style.AvgSentenceLength = ratio(words, n)
	style.ShortSentenceRatio = ratio(short, n)
	style.LongSentenceRatio = ratio(long, n)
	style.AvgWordLength = ratio(letters, words)
	style.CommaFrequency = ratio(strings.Count(text, ","), n)
	style.SemicolonFrequency = ratio(strings.Count(text, ";"), n)
	style.DashFrequency = ratio(countDashes(text), n)
	style.ExclamationRatio = ratio(exclaims, n)
	style.QuestionRatio = ratio(questions, n)

	return style
}

// countDashes counts em and en dashes plus spaced hyphens
func countDashes(text string) int {
	return strings.Count(text, "—") + strings.Count(text, "–") + strings.Count(text, " - ")
}
