package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/PradSharma554/forms/app"
	"github.com/PradSharma554/forms/httpx"
	"github.com/PradSharma554/forms/log"
	"github.com/PradSharma554/forms/model"
	"github.com/PradSharma554/forms/store"
)

func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		answers := model.Answers{}
		err := render.DecodeJSON(r.Body, &answers)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form, err := app.FindForm(r.Context(), formId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "submit_response", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}

		violations := model.Validate(form, answers)
		if len(violations) > 0 {
			log.Debugf("submit_response.validate: %d violation(s)", len(violations))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{
				"message":    "validation failed",
				"violations": violations,
			})
			return
		}

		response := model.NewResponse(form, answers)
		err = app.SaveResponse(r.Context(), response)
		if errors.Is(err, store.ErrNotFound) {
			// form was deleted between validation and the write
			httpx.LogNotFound(w, "submit_response.save", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, response)
	}
}

func GetFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		_, err := app.FindForm(r.Context(), formId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "get_responses", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}

		responses, err := app.FindResponses(r.Context(), formId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"responses": responses,
		})
	}
}

func GetFormSummary(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		form, err := app.FindForm(r.Context(), formId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "get_summary", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}

		responses, err := app.FindResponses(r.Context(), formId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"totalResponses": len(responses),
			"questions":      model.Summarize(form, responses),
		})
	}
}
