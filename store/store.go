// Package store is the persistence layer for forms, questions and
// responses. It owns the one transactional operation of the service,
// response creation, and backs the schema/state reads the submission
// pipeline depends on.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/lib/pq"

	"github.com/dmaretti/quick-forms/model"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// QuestionsForForm returns the form's questions in builder order.
func (s *Store) QuestionsForForm(ctx context.Context, formID int) ([]model.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, form_id, type, title, options, required, order_index
		FROM question
		WHERE form_id = $1
		ORDER BY order_index, id`,
		formID,
	)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var options pq.StringArray
		err = rows.Scan(&q.ID, &q.FormID, &q.Type, &q.Title, &options, &q.Required, &q.OrderIndex)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Options = options
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// FormStatus returns the lifecycle status of a form, or ErrNotFound.
func (s *Store) FormStatus(ctx context.Context, formID int) (model.FormStatus, error) {
	var status model.FormStatus
	err := s.db.
		QueryRowContext(ctx, `SELECT status FROM form WHERE id = $1`, formID).
		Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query form status: %w", err)
	}
	return status, nil
}

// HasSubmissions reports whether any response exists for the form. The form
// builder uses it to decide when the freeze rules kick in.
func (s *Store) HasSubmissions(ctx context.Context, formID int) (bool, error) {
	var one int
	err := s.db.
		QueryRowContext(ctx, `SELECT 1 FROM response WHERE form_id = $1 LIMIT 1`, formID).
		Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query submissions: %w", err)
	}
	return true, nil
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on failure. A rollback that itself fails is reported together with
// the original cause.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = multierror.Append(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
