package validate

import (
	"fmt"

	"github.com/dmaretti/quick-forms/model"
)

// Submission validates a full answer set against the form's questions.
//
// It does not short-circuit: every structural, value and missing-required
// problem is collected so one attempt surfaces everything at once. On
// success it returns the answers to persist; empty answers to optional
// questions are validated but dropped, so only answers with a genuine value
// (or for required questions) become rows.
func Submission(questions []model.Question, raw []model.RawAnswer) ([]model.NormalizedAnswer, *ValidationError) {
	if len(raw) > 0 && len(questions) == 0 {
		return nil, &ValidationError{Problems: []Problem{{
			Index:   -1,
			Kind:    Structural,
			Message: "form has no questions, cannot accept submission",
		}}}
	}

	byID := make(map[int]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	c := &collector{}
	answered := make(map[int]bool, len(raw))
	normalized := make([]model.NormalizedAnswer, 0, len(raw))

	for i, ra := range raw {
		if ra.QuestionID == 0 {
			c.add(Problem{Index: i, Kind: Structural, Message: "missing question_id"})
			continue
		}
		q, ok := byID[ra.QuestionID]
		if !ok {
			c.add(Problem{
				Index:      i,
				QuestionID: ra.QuestionID,
				Kind:       Structural,
				Message:    "question does not belong to this form",
			})
			continue
		}
		if answered[q.ID] {
			c.add(Problem{
				Index:      i,
				QuestionID: q.ID,
				Question:   q.Title,
				Kind:       Structural,
				Message:    fmt.Sprintf("duplicate answer for question %d", q.ID),
			})
			continue
		}
		answered[q.ID] = true

		value, p := Answer(q, ra.Value)
		if p != nil {
			p.Index = i
			c.add(*p)
			continue
		}
		if value.Empty() && !q.Required {
			continue
		}
		normalized = append(normalized, model.NormalizedAnswer{QuestionID: q.ID, Value: value})
	}

	// missing-required checks run last so they show up alongside any value
	// problems on other answers
	for _, q := range questions {
		if q.Required && !answered[q.ID] {
			c.add(Problem{
				Index:      -1,
				QuestionID: q.ID,
				Question:   q.Title,
				Kind:       Required,
				Message:    "required question unanswered",
			})
		}
	}

	if err := c.result(); err != nil {
		return nil, err
	}
	return normalized, nil
}
