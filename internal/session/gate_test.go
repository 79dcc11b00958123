package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"judgebox/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	known map[string]bool
	err   error
}

func (f *fakeStore) Exists(ctx context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.known[key], nil
}

func runGate(t *testing.T, store session.Store, cookie *http.Cookie) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(session.Gate(store))
	router.GET("/execute", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/execute", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec.Code
}

func TestGateRejectsMissingCookie(t *testing.T) {
	store := &fakeStore{known: map[string]bool{}}
	code := runGate(t, store, nil)
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestGateAcceptsKnownSession(t *testing.T) {
	store := &fakeStore{known: map[string]bool{"abc123": true}}
	code := runGate(t, store, &http.Cookie{Name: "connect.sid", Value: "s%3Aabc123.signature"})
	require.Equal(t, http.StatusOK, code)
}

func TestGateRejectsUnknownSession(t *testing.T) {
	store := &fakeStore{known: map[string]bool{}}
	code := runGate(t, store, &http.Cookie{Name: "connect.sid", Value: "s%3Aunknown.signature"})
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestGateSurfacesStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("redis unavailable")}
	code := runGate(t, store, &http.Cookie{Name: "connect.sid", Value: "s%3Aabc123.signature"})
	require.Equal(t, http.StatusInternalServerError, code)
}
