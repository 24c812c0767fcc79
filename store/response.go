package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/lib/pq"

	"github.com/dmaretti/quick-forms/model"
)

// ErrDuplicateAnswer surfaces the (response_id, question_id) uniqueness
// constraint, the store-level safety net behind the validator's own
// duplicate check.
var ErrDuplicateAnswer = errors.New("duplicate answer for question")

const pgUniqueViolation = "23505"

// CreateWithAnswers persists one response and its answers atomically, in
// input order. Any failure rolls the whole submission back; no response row
// ever survives with a partial answer set.
func (s *Store) CreateWithAnswers(ctx context.Context, formID int, respondentID *int, answers []model.NormalizedAnswer) (model.Response, error) {
	resp := model.Response{
		ID:           uuid.Must(uuid.NewV4()),
		FormID:       formID,
		RespondentID: respondentID,
		SubmittedAt:  time.Now().UTC(),
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO response (id, form_id, respondent_id, submitted_at)
			VALUES ($1, $2, $3, $4)`,
			resp.ID, resp.FormID, resp.RespondentID, resp.SubmittedAt,
		)
		if err != nil {
			return fmt.Errorf("insert response: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO answer (response_id, question_id, value)
			VALUES ($1, $2, $3)`)
		if err != nil {
			return fmt.Errorf("prepare answer insert: %w", err)
		}
		defer stmt.Close()

		for _, a := range answers {
			value, err := json.Marshal(a.Value)
			if err != nil {
				return fmt.Errorf("encode answer value: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, resp.ID, a.QuestionID, value); err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("question %d: %w", a.QuestionID, ErrDuplicateAnswer)
				}
				return fmt.Errorf("insert answer: %w", err)
			}
			resp.Answers = append(resp.Answers, model.Answer{
				ResponseID: resp.ID,
				QuestionID: a.QuestionID,
				Value:      a.Value,
			})
		}
		return nil
	})
	if err != nil {
		return model.Response{}, err
	}
	return resp, nil
}

// ResponsesForForm loads every submission for a form together with its
// answers, decoded according to each question's type.
func (s *Store) ResponsesForForm(ctx context.Context, formID int) ([]model.Response, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			r.id, r.form_id, r.respondent_id, r.submitted_at,
			a.question_id, q.type, a.value
		FROM response r
		LEFT OUTER JOIN answer a ON (a.response_id = r.id)
		LEFT OUTER JOIN question q ON (q.id = a.question_id)
		WHERE r.form_id = $1
		ORDER BY r.submitted_at, r.id`,
		formID,
	)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var responses []model.Response
	for rows.Next() {
		var (
			r            model.Response
			questionID   sql.NullInt64
			questionType sql.NullString
			value        []byte
		)
		err = rows.Scan(&r.ID, &r.FormID, &r.RespondentID, &r.SubmittedAt, &questionID, &questionType, &value)
		if err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}

		last := len(responses) - 1
		if last < 0 || responses[last].ID != r.ID {
			responses = append(responses, r)
			last++
		}
		if !questionID.Valid {
			continue
		}

		av, err := model.DecodeValue(model.QuestionType(questionType.String), value)
		if err != nil {
			return nil, fmt.Errorf("decode answer value: %w", err)
		}
		responses[last].Answers = append(responses[last].Answers, model.Answer{
			ResponseID: r.ID,
			QuestionID: int(questionID.Int64),
			Value:      av,
		})
	}
	return responses, rows.Err()
}

// DeleteResponse removes one submission and its answers. Answers go with the
// response via ON DELETE CASCADE.
func (s *Store) DeleteResponse(ctx context.Context, formID int, responseID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM response
		WHERE id = $1 AND form_id = $2`,
		responseID, formID,
	)
	if err != nil {
		return fmt.Errorf("delete response: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete response: %w", err)
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
