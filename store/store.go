package store

import (
	"context"
	"errors"

	"github.com/PradSharma554/forms/model"
)

// ErrNotFound is returned when a referenced form or response does not
// exist, including a submit that races a concurrent form deletion.
var ErrNotFound = errors.New("not found")

// Store is the persistence collaborator the controllers are wired
// against. Implementations must guarantee that deleting a form
// cascades to its responses and that SaveResponse never persists a
// response for a form that is already gone.
type Store interface {
	// ListForms returns one page of forms, newest first, plus the
	// total number of forms. Pages are 1-based.
	ListForms(ctx context.Context, page, limit int) ([]model.Form, int, error)
	FindForm(ctx context.Context, id string) (model.Form, error)
	// SaveForm inserts the form or replaces it wholesale when the id
	// already exists.
	SaveForm(ctx context.Context, form model.Form) error
	DeleteForm(ctx context.Context, id string) error
	FindResponses(ctx context.Context, formID string) ([]model.Response, error)
	SaveResponse(ctx context.Context, resp model.Response) error
}
