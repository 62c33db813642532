package voice

import (
	"sort"
	"unicode/utf8"

	"github.com/ppiankov/brandprint/internal/model"
)

const minVocabularyRunes = 4

// vocabulary computes diversity over every word and the frequency table over
// content words only
func (a *Analyzer) vocabulary(words []string) *model.Vocabulary {
	unique := make(map[string]bool, len(words))
	freq := make(map[string]int)

	for _, w := range words {
		unique[w] = true
		if utf8.RuneCountInString(w) < minVocabularyRunes || stopWords[w] {
			continue
		}
		freq[w]++
	}

	top := make([]model.WordCount, 0, len(freq))
	for w, c := range freq {
		top = append(top, model.WordCount{Word: w, Count: c})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Word < top[j].Word
	})
	if len(top) > maxTopWords {
		top = top[:maxTopWords]
	}

	return &model.Vocabulary{
		TotalWords:  len(words),
		UniqueWords: len(unique),
		Diversity:   ratio(len(unique), len(words)),
		TopWords:    top,
	}
}
