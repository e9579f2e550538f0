package routes

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/PradSharma554/forms/app"
	"github.com/PradSharma554/forms/httpx"
	"github.com/PradSharma554/forms/log"
	"github.com/PradSharma554/forms/model"
	"github.com/PradSharma554/forms/store"
)

type formPayload struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Questions   []model.Question `json:"questions"`
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := formPayload{}
		err := render.DecodeJSON(r.Body, &payload)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form := model.NewForm(payload.Title, payload.Description, payload.Questions)
		if err = form.Check(); err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "create_form.check", "%s", err)
			return
		}

		err = app.SaveForm(r.Context(), form)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, form)
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", 9)

		forms, total, err := app.ListForms(r.Context(), page, limit)
		if err != nil {
			httpx.LogInternalError(w, "db.get_forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms":       forms,
			"totalForms":  total,
			"totalPages":  int(math.Ceil(float64(total) / float64(limit))),
			"currentPage": page,
		})
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func GetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		form, err := app.FindForm(r.Context(), formId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "get_form", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}

		render.JSON(w, r, form)
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		patch := model.FormPatch{}
		err := render.DecodeJSON(r.Body, &patch)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form, err := app.FindForm(r.Context(), formId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "update_form", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}

		form = form.Merge(patch)
		if err = form.Check(); err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "update_form.check", "%s", err)
			return
		}

		err = app.SaveForm(r.Context(), form)
		if err != nil {
			httpx.LogInternalError(w, "db.update_form", err)
			return
		}

		render.JSON(w, r, form)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		err := app.Store.DeleteForm(r.Context(), formId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "delete_form", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.delete_form", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
