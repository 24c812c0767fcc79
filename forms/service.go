// Package forms composes the submission pipeline: form state check,
// schema-driven validation, then atomic persistence. It is the surface the
// HTTP layer calls into.
package forms

import (
	"context"
	"errors"

	"github.com/dmaretti/quick-forms/aggregate"
	"github.com/dmaretti/quick-forms/model"
	"github.com/dmaretti/quick-forms/validate"
)

// Domain-state failures: detected before any per-answer work, since
// validating answers against a closed or empty form is meaningless.
var (
	ErrFormNotPublished   = errors.New("form is not accepting submissions")
	ErrFormHasNoQuestions = errors.New("form has no questions")
)

// QuestionSource supplies a form's live question schema, in order.
type QuestionSource interface {
	QuestionsForForm(ctx context.Context, formID int) ([]model.Question, error)
}

// FormStateSource reports a form's lifecycle status.
type FormStateSource interface {
	FormStatus(ctx context.Context, formID int) (model.FormStatus, error)
}

// ResponseStore persists and reads back submissions. CreateWithAnswers must
// be atomic: either the response and every answer land, or nothing does.
type ResponseStore interface {
	CreateWithAnswers(ctx context.Context, formID int, respondentID *int, answers []model.NormalizedAnswer) (model.Response, error)
	ResponsesForForm(ctx context.Context, formID int) ([]model.Response, error)
}

type Service struct {
	Questions QuestionSource
	State     FormStateSource
	Responses ResponseStore
}

// SubmitResponse validates raw against the form's question schema and, if it
// is clean, persists the response atomically.
//
// Failure modes, in check order: ErrFormNotPublished / ErrFormHasNoQuestions
// for bad form state, a *validate.ValidationError carrying every problem
// found, or a persistence error after full rollback. Validation never
// reaches the store; a store failure never leaves partial rows.
func (s Service) SubmitResponse(ctx context.Context, formID int, respondentID *int, raw []model.RawAnswer) (model.Response, error) {
	status, err := s.State.FormStatus(ctx, formID)
	if err != nil {
		return model.Response{}, err
	}
	if status != model.StatusPublished {
		return model.Response{}, ErrFormNotPublished
	}

	questions, err := s.Questions.QuestionsForForm(ctx, formID)
	if err != nil {
		return model.Response{}, err
	}
	if len(questions) == 0 {
		return model.Response{}, ErrFormHasNoQuestions
	}

	normalized, verr := validate.Submission(questions, raw)
	if verr != nil {
		return model.Response{}, verr
	}

	return s.Responses.CreateWithAnswers(ctx, formID, respondentID, normalized)
}

// ComputeStatistics aggregates all of a form's submissions against its
// current question set.
//
// Recomputed from raw rows on every call; fine at moderate submission
// counts. Past that, move to incremental counts or a read-model table
// instead of widening this query.
func (s Service) ComputeStatistics(ctx context.Context, formID int) (map[int]*aggregate.Stats, error) {
	questions, err := s.Questions.QuestionsForForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	responses, err := s.Responses.ResponsesForForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	return aggregate.Aggregate(questions, responses), nil
}
