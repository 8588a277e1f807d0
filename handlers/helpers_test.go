package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/prediction-league/services"
)

func TestReadJSONRejectsBadBodies(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed", `{"action":`},
		{"unknown field", `{"nonsense": true}`},
		{"trailing garbage", `{"action": "get_matches"} {}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader(c.body))
			w := httptest.NewRecorder()
			var dst struct {
				Action string `json:"action"`
			}
			if err := readJSON(w, r, &dst); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrMatchNotFound, http.StatusNotFound},
		{services.ErrPredictionNotFound, http.StatusNotFound},
		{services.ErrInvalidScore, http.StatusBadRequest},
		{services.ErrUserIDRequired, http.StatusBadRequest},
		{services.ErrMatchLocked, http.StatusConflict},
		{services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
	}
	for _, c := range cases {
		t.Run(c.err.Error(), func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()
			mapServiceErrorToHTTP(w, r, c.err)
			if w.Code != c.status {
				t.Fatalf("status = %d, want %d", w.Code, c.status)
			}
		})
	}
}
