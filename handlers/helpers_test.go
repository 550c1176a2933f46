package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/torvix-arena/assist"
	"github.com/Dosada05/torvix-arena/repositories"
	"github.com/Dosada05/torvix-arena/services"
	"github.com/Dosada05/torvix-arena/session"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{services.ErrTournamentNotFound, http.StatusNotFound},
		{fmt.Errorf("load: %w", services.ErrTeamNotFound), http.StatusNotFound},
		{&services.ValidationError{Fields: map[string]string{"title": "must not be empty"}}, http.StatusBadRequest},
		{services.ErrTeamsNotAllowed, http.StatusBadRequest},
		{services.ErrTournamentClosed, http.StatusBadRequest},
		{services.ErrTournamentFull, http.StatusConflict},
		{fmt.Errorf("%w: retries exhausted", services.ErrConflict), http.StatusConflict},
		{services.ErrAlreadyInTeam, http.StatusConflict},
		{session.ErrSessionEnded, http.StatusUnauthorized},
		{services.ErrForbiddenOperation, http.StatusForbidden},
		{fmt.Errorf("get: %w", repositories.ErrUnavailable), http.StatusServiceUnavailable},
		{assist.ErrAssistUnavailable, http.StatusServiceUnavailable},
		{services.ErrAvatarStorageDisabled, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
		if rec.Code != tt.status {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.status)
		}
		if !strings.Contains(rec.Body.String(), `"error"`) {
			t.Errorf("%v: body has no error envelope: %s", tt.err, rec.Body.String())
		}
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"ok", `{"email":"a@b.c"}`, ""},
		{"empty", ``, "must not be empty"},
		{"unknown field", `{"mail":"x"}`, "unknown key"},
		{"two values", `{"email":"a"}{"email":"b"}`, "single JSON value"},
		{"wrong type", `{"email":1}`, "incorrect JSON type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst loginInput
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := readJSON(rec, req, &dst)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://arena.gg"})
	req := httptest.NewRequest(http.MethodGet, "/ws/tournaments", nil)
	if !check(req) {
		t.Fatal("requests without Origin are allowed")
	}
	req.Header.Set("Origin", "https://evil.example")
	if check(req) {
		t.Fatal("unknown origin must be rejected")
	}
	req.Header.Set("Origin", "https://arena.gg")
	if !check(req) {
		t.Fatal("listed origin must be accepted")
	}
}
