package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PradSharma554/forms/app"
	"github.com/PradSharma554/forms/config"
	"github.com/PradSharma554/forms/database"
	"github.com/PradSharma554/forms/model"
	"github.com/PradSharma554/forms/store"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "forms.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv := httptest.NewServer(Wire(app.App{
		Store:  store.New(db),
		Config: config.Config{},
	}))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createTestForm(t *testing.T, srv *httptest.Server) model.Form {
	t.Helper()

	var form model.Form
	resp := doJSON(t, "POST", srv.URL+"/api/forms", map[string]any{
		"title":       "Customer Feedback",
		"description": "Tell us things",
		"questions": []map[string]any{
			{"id": "q1", "title": "Satisfaction", "type": "single-choice", "options": []string{"A", "B"}, "required": true},
			{"id": "q2", "title": "Comments", "type": "paragraph", "required": false},
		},
	}, &form)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return form
}

func TestCreateAndGetForm(t *testing.T) {
	srv := testServer(t)

	form := createTestForm(t, srv)
	assert.NotEmpty(t, form.ID)
	assert.False(t, form.CreatedAt.IsZero())

	var got model.Form
	resp := doJSON(t, "GET", srv.URL+"/api/forms/"+form.ID, nil, &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, form.ID, got.ID)
	assert.Equal(t, "Customer Feedback", got.Title)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, model.TypeSingleChoice, got.Questions[0].Type)
}

func TestCreateForm_BadQuestionType(t *testing.T) {
	srv := testServer(t)

	resp := doJSON(t, "POST", srv.URL+"/api/forms", map[string]any{
		"title":     "Broken",
		"questions": []map[string]any{{"id": "q1", "type": "checkbox"}},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetForm_NotFound(t *testing.T) {
	srv := testServer(t)

	resp := doJSON(t, "GET", srv.URL+"/api/forms/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListForms_Pagination(t *testing.T) {
	srv := testServer(t)

	for i := 0; i < 3; i++ {
		createTestForm(t, srv)
	}

	var page struct {
		Forms       []model.Form `json:"forms"`
		TotalForms  int          `json:"totalForms"`
		TotalPages  int          `json:"totalPages"`
		CurrentPage int          `json:"currentPage"`
	}
	resp := doJSON(t, "GET", srv.URL+"/api/forms?page=2&limit=2", nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, page.TotalForms)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Len(t, page.Forms, 1)
}

func TestUpdateForm(t *testing.T) {
	srv := testServer(t)
	form := createTestForm(t, srv)

	var updated model.Form
	resp := doJSON(t, "PUT", srv.URL+"/api/forms/"+form.ID, map[string]any{
		"title": "Renamed",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, form.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Tell us things", updated.Description)
	assert.Len(t, updated.Questions, 2, "questions untouched by partial update")

	resp = doJSON(t, "PUT", srv.URL+"/api/forms/nope", map[string]any{"title": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitResponse_Validation(t *testing.T) {
	srv := testServer(t)
	form := createTestForm(t, srv)

	var failure struct {
		Message    string            `json:"message"`
		Violations map[string]string `json:"violations"`
	}
	resp := doJSON(t, "POST", srv.URL+"/api/forms/"+form.ID+"/responses", map[string]any{
		"q1": "   ",
	}, &failure)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, map[string]string{"q1": model.RequiredMessage}, failure.Violations)
}

func TestSubmitAndSummarize(t *testing.T) {
	srv := testServer(t)
	form := createTestForm(t, srv)

	for _, answer := range []string{"A", "A", "B"} {
		var created model.Response
		resp := doJSON(t, "POST", srv.URL+"/api/forms/"+form.ID+"/responses", map[string]any{
			"q1": answer,
		}, &created)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, form.ID, created.FormID)
	}

	var listing struct {
		Responses []model.Response `json:"responses"`
	}
	resp := doJSON(t, "GET", srv.URL+"/api/forms/"+form.ID+"/responses", nil, &listing)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, listing.Responses, 3)

	var summary struct {
		TotalResponses int                         `json:"totalResponses"`
		Questions      map[string]*model.Statistic `json:"questions"`
	}
	resp = doJSON(t, "GET", srv.URL+"/api/forms/"+form.ID+"/summary", nil, &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, summary.TotalResponses)
	require.NotNil(t, summary.Questions["q1"])
	assert.Equal(t, []model.OptionCount{
		{Option: "A", Count: 2, Percent: 67},
		{Option: "B", Count: 1, Percent: 33},
	}, summary.Questions["q1"].Options)
	assert.Nil(t, summary.Questions["q2"], "no aggregation for paragraph questions")
}

func TestSubmitResponse_FormNotFound(t *testing.T) {
	srv := testServer(t)

	resp := doJSON(t, "POST", srv.URL+"/api/forms/nope/responses", map[string]any{"q1": "A"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteForm_CascadesResponses(t *testing.T) {
	srv := testServer(t)
	form := createTestForm(t, srv)

	resp := doJSON(t, "POST", srv.URL+"/api/forms/"+form.ID+"/responses", map[string]any{"q1": "A"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, "DELETE", srv.URL+"/api/forms/"+form.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, "GET", srv.URL+"/api/forms/"+form.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, "GET", srv.URL+"/api/forms/"+form.ID+"/responses", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, "DELETE", srv.URL+"/api/forms/"+form.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
