package routes

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/dmaretti/quick-forms/app"
	"github.com/dmaretti/quick-forms/forms"
	"github.com/dmaretti/quick-forms/httpx"
	"github.com/dmaretti/quick-forms/log"
	"github.com/dmaretti/quick-forms/model"
	"github.com/dmaretti/quick-forms/store"
	"github.com/dmaretti/quick-forms/validate"
)

// PublicGetFormById serves a published form's definition to respondents.
// Draft and closed forms are indistinguishable from missing ones out here.
func PublicGetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form := model.Form{}
		err = app.QueryRowContext(r.Context(), `
			SELECT id, title, description
			FROM form
			WHERE id = $1 AND status = $2`,
			formId, model.StatusPublished,
		).Scan(&form.ID, &form.Title, &form.Description)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "get_form", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}

		form.Questions, err = app.Store.QuestionsForForm(r.Context(), formId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_form.questions", err)
			return
		}

		render.JSON(w, r, form)
	}
}

type submitRequest struct {
	Answers []model.RawAnswer `json:"answers"`
}

// PublicSubmitResponse validates and persists one respondent's answer set.
// A validation failure returns 400 with the full field-tagged problem list;
// form-state failures return 409 before any answer is inspected.
func PublicSubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		req := submitRequest{}
		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		resp, err := app.Forms.SubmitResponse(r.Context(), formId, nil, req.Answers)
		if err != nil {
			var verr *validate.ValidationError
			switch {
			case errors.As(err, &verr):
				httpx.LogProblems(w, http.StatusBadRequest, "submit_response.validate", verr)
			case errors.Is(err, store.ErrNotFound):
				httpx.LogNotFound(w, "submit_response", formId)
			case errors.Is(err, forms.ErrFormNotPublished),
				errors.Is(err, forms.ErrFormHasNoQuestions):
				httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "submit_response.state", "%s", err)
			default:
				httpx.LogInternalError(w, "db.submit_response", err)
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, resp)
	}
}
