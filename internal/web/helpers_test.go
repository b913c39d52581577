package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func send(t testing.TB, h http.Handler, method, path string, wantStatus int) string {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	if rec.Code != wantStatus {
		t.Fatalf("%s %s: want response code %d, got %d", method, path, wantStatus, rec.Code)
	}

	return rec.Body.String()
}
