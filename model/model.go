package model

import (
	"time"

	"github.com/gofrs/uuid"
)

type FormStatus string

const (
	StatusDraft     FormStatus = "draft"
	StatusPublished FormStatus = "published"
	StatusClosed    FormStatus = "closed"
)

func (s FormStatus) Known() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusClosed:
		return true
	}
	return false
}

type Form struct {
	ID          int        `json:"id,omitempty"`
	Version     int        `json:"version,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      FormStatus `json:"status,omitempty"`
	Questions   []Question `json:"questions"`
}

type Question struct {
	ID         int          `json:"id,omitempty"`
	FormID     int          `json:"-"`
	Type       QuestionType `json:"type"`
	Title      string       `json:"title"`
	Options    []string     `json:"options,omitempty"`
	Required   bool         `json:"required"`
	OrderIndex int          `json:"order_index"`
}

// HasOption reports whether value matches one of the declared options.
// Comparison is exact and case-sensitive.
func (q Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// RawAnswer is one entry of a respondent's submission body, before any
// validation. Value carries whatever JSON shape the client sent.
type RawAnswer struct {
	QuestionID int `json:"question_id"`
	Value      any `json:"value"`
}

// NormalizedAnswer is a validated (question, value) pair ready to be
// persisted.
type NormalizedAnswer struct {
	QuestionID int
	Value      AnswerValue
}

type Answer struct {
	ResponseID uuid.UUID   `json:"-"`
	QuestionID int         `json:"question_id"`
	Value      AnswerValue `json:"value"`
}

type Response struct {
	ID           uuid.UUID `json:"id"`
	FormID       int       `json:"form_id"`
	RespondentID *int      `json:"respondent_id,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Answers      []Answer  `json:"answers,omitempty"`
}
