// Package aggregate turns stored submissions into per-question statistics:
// option distributions for choice questions, raw text plus word frequencies
// for free-text questions.
package aggregate

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dmaretti/quick-forms/model"
)

// minWordLength filters noise words out of frequency counts; tokens of this
// many characters or fewer are discarded.
const minWordLength = 2

type Stats struct {
	Question model.Question `json:"question"`

	// TotalResponses counts submissions that answered this question with a
	// non-empty value. A checkbox submission counts once no matter how many
	// options it selected.
	TotalResponses int `json:"total_responses"`

	// Distribution maps option to selection count for choice questions.
	// Every declared option is present, so zero-pick options stay visible.
	Distribution map[string]int `json:"distribution,omitempty"`

	// Texts holds the raw short_answer strings in submission order.
	Texts []string `json:"texts,omitempty"`

	WordFrequency map[string]int `json:"word_frequency,omitempty"`

	// wordOrder remembers first occurrence, the tie-break for TopWords
	wordOrder []string
}

// Aggregate computes statistics for every question over the given
// submissions. Answers referencing questions outside the list are skipped.
func Aggregate(questions []model.Question, responses []model.Response) map[int]*Stats {
	stats := make(map[int]*Stats, len(questions))
	for _, q := range questions {
		s := &Stats{Question: q}
		if q.Type.RequiresOptions() {
			s.Distribution = make(map[string]int, len(q.Options))
			for _, opt := range q.Options {
				s.Distribution[opt] = 0
			}
		} else {
			s.WordFrequency = make(map[string]int)
		}
		stats[q.ID] = s
	}

	for _, resp := range responses {
		for _, a := range resp.Answers {
			s, ok := stats[a.QuestionID]
			if !ok || a.Value.Empty() {
				continue
			}

			switch s.Question.Type {
			case model.MultipleChoice, model.Dropdown:
				s.Distribution[a.Value.Scalar()]++
				s.TotalResponses++
			case model.Checkbox:
				for _, sel := range a.Value.Selections() {
					s.Distribution[sel]++
				}
				s.TotalResponses++
			case model.ShortAnswer:
				s.addText(a.Value.Scalar())
				s.TotalResponses++
			}
		}
	}

	return stats
}

func (s *Stats) addText(text string) {
	s.Texts = append(s.Texts, text)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(word) <= minWordLength {
			continue
		}
		if _, seen := s.WordFrequency[word]; !seen {
			s.wordOrder = append(s.wordOrder, word)
		}
		s.WordFrequency[word]++
	}
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopWords returns the n most frequent words, descending by count, ties
// broken by first occurrence across the submissions. n < 0 returns all.
func (s *Stats) TopWords(n int) []WordCount {
	out := make([]WordCount, 0, len(s.wordOrder))
	for _, word := range s.wordOrder {
		out = append(out, WordCount{Word: word, Count: s.WordFrequency[word]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
