package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/PradSharma554/forms/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	// CRUD forms
	api.Post("/forms", CreateForm(app))
	api.Get("/forms", ListForms(app))
	api.Get("/forms/{id}", GetFormById(app))
	api.Put("/forms/{id}", UpdateForm(app))
	api.Delete("/forms/{id}", DeleteForm(app))

	// responses
	api.Post("/forms/{id}/responses", SubmitResponse(app))
	api.Get("/forms/{id}/responses", GetFormResponses(app))
	api.Get("/forms/{id}/summary", GetFormSummary(app))

	return api
}
