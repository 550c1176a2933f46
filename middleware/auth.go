package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/torvix-arena/repositories"
	"github.com/Dosada05/torvix-arena/session"
)

// SessionResolver turns a bearer token into the acting session.
type SessionResolver interface {
	Resume(ctx context.Context, token string) (*session.Session, error)
}

// Authenticate attaches the session when a token is presented. Requests without
// a token pass through anonymously; a bad token is rejected with 401, while a
// storage outage answers 503 so the client keeps its token and retries.
func Authenticate(resolver SessionResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := resolver.Resume(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, session.ErrInvalidToken),
				errors.Is(err, session.ErrSessionEnded),
				errors.Is(err, repositories.ErrUserNotFound):
				logger.Debug("session rejected", slog.String("path", r.URL.Path), slog.Any("error", err))
				writeError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			case errors.Is(err, repositories.ErrUnavailable):
				logger.Warn("session store unavailable", slog.String("path", r.URL.Path), slog.Any("error", err))
				writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable, try again later")
				return
			default:
				logger.Error("failed to resume session", slog.String("path", r.URL.Path), slog.Any("error", err))
				writeError(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
		})
	}
}

// RequireSession rejects anonymous requests.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !SessionFromContext(r.Context()).Active() {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// tokenFromRequest reads "Authorization: Bearer <token>"; websocket clients
// cannot set headers, so ?token= is accepted as well.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}
