package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httptransport "judgebox/internal/transport/http"

	"judgebox/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	result *model.Result
}

func (f *fakeExecutor) Execute(ctx context.Context, req *model.Request) *model.Result {
	return f.result
}

type alwaysKnownStore struct{}

func (alwaysKnownStore) Exists(ctx context.Context, key string) (bool, error) { return true, nil }

func newTestRouter(exec *fakeExecutor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	httptransport.RegisterRoutes(router, alwaysKnownStore{}, exec)
	return router
}

func doExecute(router *gin.Engine, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/execute", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "connect.sid", Value: "s%3Aabc123.sig"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestExecuteHandlerReturnsResultOnSuccess(t *testing.T) {
	exec := &fakeExecutor{result: model.NewResult(model.StatePassed)}
	router := newTestRouter(exec)

	body, _ := json.Marshal(model.Request{Language: "python", Code: "print(1)"})
	rec := doExecute(router, body)

	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, model.StatePassed, got.State)
}

func TestExecuteHandlerRejectsMissingRequiredFields(t *testing.T) {
	exec := &fakeExecutor{result: model.NewResult(model.StatePassed)}
	router := newTestRouter(exec)

	rec := doExecute(router, []byte(`{}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExecuteHandlerRejectsRunTestsWithoutTestCode(t *testing.T) {
	exec := &fakeExecutor{result: model.NewResult(model.StatePassed)}
	router := newTestRouter(exec)

	body, _ := json.Marshal(model.Request{Language: "python", Code: "print(1)", RunTests: true})
	rec := doExecute(router, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExecuteHandlerRejectsUnauthenticatedRequest(t *testing.T) {
	exec := &fakeExecutor{result: model.NewResult(model.StatePassed)}
	router := newTestRouter(exec)

	body, _ := json.Marshal(model.Request{Language: "python", Code: "print(1)"})
	req := httptest.NewRequest(http.MethodPost, "/execute", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
