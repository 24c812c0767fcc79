package routes

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"
	"github.com/lib/pq"

	"github.com/dmaretti/quick-forms/app"
	"github.com/dmaretti/quick-forms/httpx"
	"github.com/dmaretti/quick-forms/log"
	"github.com/dmaretti/quick-forms/model"
	"github.com/dmaretti/quick-forms/store"
	"github.com/dmaretti/quick-forms/validate"
)

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.Form{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if form.Status == "" {
			form.Status = model.StatusDraft
		}
		if !form.Status.Known() {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "create_form.status",
				"unknown form status %q", form.Status)
			return
		}
		if verr := validate.Questions(form.Questions); verr != nil {
			httpx.LogProblems(w, http.StatusBadRequest, "create_form.questions", verr)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		var formId int
		err = tx.QueryRowContext(r.Context(), `
			INSERT INTO form (title, description, status) VALUES ($1, $2, $3)
			RETURNING id`,
			form.Title,
			form.Description,
			form.Status,
		).Scan(&formId)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form", err)
			return
		}

		stmt, err := tx.PrepareContext(r.Context(), `
			INSERT INTO question (form_id, type, title, options, required, order_index)
			VALUES ($1, $2, $3, $4, $5, $6)`)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form.questions.prepare", err)
			return
		}
		defer stmt.Close()

		for i, q := range form.Questions {
			_, err := stmt.ExecContext(r.Context(),
				formId, q.Type, q.Title, pq.StringArray(q.Options), q.Required, i)
			if err != nil {
				httpx.LogInternalError(w, "db.insert_form.questions.insert", err)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form.commit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": formId,
		})
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT id, version, title, description, status
			FROM form
			ORDER BY id`)
		if err != nil {
			httpx.LogInternalError(w, "db.get_forms", err)
			return
		}
		defer rows.Close()

		forms := []model.Form{}
		for rows.Next() {
			f := model.Form{}
			err = rows.Scan(&f.ID, &f.Version, &f.Title, &f.Description, &f.Status)
			if err != nil {
				httpx.LogInternalError(w, "db.get_forms.scan", err)
				return
			}

			forms = append(forms, f)
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form, found, err := loadForm(app, r, formId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}
		if !found {
			httpx.LogNotFound(w, "get_form", formId)
			return
		}

		render.JSON(w, r, form)
	}
}

// UpdateForm rewrites a form's definition under an optimistic version lock.
// While the form has no submissions the question set is replaced wholesale;
// once submissions exist the freeze rules apply: questions cannot be removed,
// types cannot change and options may only be appended.
func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form := model.Form{}
		err = render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if form.Status != "" && !form.Status.Known() {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "update_form.status",
				"unknown form status %q", form.Status)
			return
		}
		if verr := validate.Questions(form.Questions); verr != nil {
			httpx.LogProblems(w, http.StatusBadRequest, "update_form.questions", verr)
			return
		}

		frozen, err := app.Store.HasSubmissions(r.Context(), formId)
		if err != nil {
			httpx.LogInternalError(w, "db.update_form.has_submissions", err)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		if frozen {
			existing, err := app.Store.QuestionsForForm(r.Context(), formId)
			if err != nil {
				httpx.LogInternalError(w, "db.update_form.questions", err)
				return
			}
			if verr := validate.QuestionEdits(existing, form.Questions); verr != nil {
				httpx.LogProblems(w, http.StatusConflict, "update_form.frozen", verr)
				return
			}

			for i, q := range form.Questions {
				if q.ID == 0 {
					_, err = tx.ExecContext(r.Context(), `
						INSERT INTO question (form_id, type, title, options, required, order_index)
						VALUES ($1, $2, $3, $4, $5, $6)`,
						formId, q.Type, q.Title, pq.StringArray(q.Options), q.Required, i)
				} else {
					_, err = tx.ExecContext(r.Context(), `
						UPDATE question
						SET title = $1, options = $2, required = $3, order_index = $4
						WHERE id = $5 AND form_id = $6`,
						q.Title, pq.StringArray(q.Options), q.Required, i, q.ID, formId)
				}
				if err != nil {
					httpx.LogInternalError(w, "db.update_form.questions.upsert", err)
					return
				}
			}
		} else {
			// no submissions yet: replace the question set wholesale
			_, err = tx.ExecContext(r.Context(), `
				DELETE FROM question
				WHERE form_id = $1`,
				formId,
			)
			if err != nil {
				httpx.LogInternalError(w, "db.update_form.delete_questions", err)
				return
			}

			stmt, err := tx.PrepareContext(r.Context(), `
				INSERT INTO question (form_id, type, title, options, required, order_index)
				VALUES ($1, $2, $3, $4, $5, $6)`)
			if err != nil {
				httpx.LogInternalError(w, "db.update_form.questions.prepare", err)
				return
			}
			defer stmt.Close()

			for i, q := range form.Questions {
				_, err := stmt.ExecContext(r.Context(),
					formId, q.Type, q.Title, pq.StringArray(q.Options), q.Required, i)
				if err != nil {
					httpx.LogInternalError(w, "db.update_form.questions.insert", err)
					return
				}
			}
		}

		res, err := tx.ExecContext(r.Context(), `
			UPDATE form
			SET
				title = $1,
				description = $2,
				status = COALESCE(NULLIF($3, ''), status),
				version = version + 1
			WHERE	id = $4
				AND version = $5`,
			form.Title,
			form.Description,
			string(form.Status),
			formId,
			form.Version,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_form", err)
			return
		}
		// optimistic lock
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.update_form.verify", err)
			return
		}
		if n < 1 {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "db.update_form.verify.conflict")
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.update_form.commit", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		// questions, responses and answers go with the form via cascade
		res, err := app.ExecContext(r.Context(), `
			DELETE FROM form WHERE id = $1`,
			formId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_form", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_form.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, "delete_form", formId)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		_, found, err := loadForm(app, r, formId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}
		if !found {
			httpx.LogNotFound(w, "get_responses", formId)
			return
		}

		responses, err := app.Store.ResponsesForForm(r.Context(), formId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses.scan", err)
			return
		}
		if responses == nil {
			responses = []model.Response{}
		}

		render.JSON(w, r, map[string]any{
			"responses": responses,
		})
	}
}

func DeleteFormResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}
		responseId, err := uuid.FromString(chi.URLParam(r, "responseId"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.response_id")
			return
		}

		err = app.Store.DeleteResponse(r.Context(), formId, responseId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "delete_response", responseId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.delete_response", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetFormStatistics(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		_, found, err := loadForm(app, r, formId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_statistics", err)
			return
		}
		if !found {
			httpx.LogNotFound(w, "get_statistics", formId)
			return
		}

		stats, err := app.Forms.ComputeStatistics(r.Context(), formId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_statistics.aggregate", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"statistics": stats,
		})
	}
}

func loadForm(app app.App, r *http.Request, formId int) (model.Form, bool, error) {
	form := model.Form{}
	err := app.QueryRowContext(r.Context(), `
		SELECT id, version, title, description, status
		FROM form
		WHERE id = $1`,
		formId,
	).Scan(&form.ID, &form.Version, &form.Title, &form.Description, &form.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Form{}, false, nil
	}
	if err != nil {
		return model.Form{}, false, err
	}

	form.Questions, err = app.Store.QuestionsForForm(r.Context(), formId)
	if err != nil {
		return model.Form{}, false, err
	}
	return form, true, nil
}
