package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BoualamHamza/InterviewSim/internal/jobdesc"
	"github.com/BoualamHamza/InterviewSim/internal/middleware"
	"github.com/BoualamHamza/InterviewSim/internal/models"
)

func newJobDescEndpoint(t *testing.T) http.Handler {
	t.Helper()
	handler := NewJobDescriptionHandler(jobdesc.NewCleaner(), zap.NewNop())
	return middleware.ValidateRequest[*models.JobDescriptionRequest]()(http.HandlerFunc(handler.CleanHandler))
}

func postJobDesc(t *testing.T, endpoint http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/job-description", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	endpoint.ServeHTTP(rec, req)
	return rec
}

func TestCleanHandlerText(t *testing.T) {
	endpoint := newJobDescEndpoint(t)

	rec := postJobDesc(t, endpoint, `{"text":"  Backend   engineer\n\n3 yrs  "}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.JobDescriptionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Backend engineer 3 yrs", resp.CleanedDescription)
}

func TestCleanHandlerMissingSource(t *testing.T) {
	endpoint := newJobDescEndpoint(t)

	rec := postJobDesc(t, endpoint, `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "missing_source", resp.Code)
}

func TestCleanHandlerWhitespaceOnlyText(t *testing.T) {
	endpoint := newJobDescEndpoint(t)

	rec := postJobDesc(t, endpoint, `{"text":"   \n\t "}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "missing_source", resp.Code)
}

func TestCleanHandlerTextCleansToNothing(t *testing.T) {
	endpoint := newJobDescEndpoint(t)

	// text wins over url, and whitespace-only text cleans down to nothing
	rec := postJobDesc(t, endpoint, `{"text":" \n ","url":"http://example.invalid"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "empty_description", resp.Code)
}

func TestCleanHandlerFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Platform   team, Go</p></body></html>"))
	}))
	defer srv.Close()

	endpoint := newJobDescEndpoint(t)
	rec := postJobDesc(t, endpoint, `{"url":"`+srv.URL+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.JobDescriptionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Platform team, Go", resp.CleanedDescription)
}

func TestCleanHandlerFetchFailure(t *testing.T) {
	endpoint := newJobDescEndpoint(t)

	rec := postJobDesc(t, endpoint, `{"url":"http://127.0.0.1:1/nope"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "fetch_failed", resp.Code)
}
