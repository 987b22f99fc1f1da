package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/metrics"
	"campus-community-backend/internal/security"
	"campus-community-backend/internal/service"
)

type contextKey string

const userContextKey contextKey = "authenticated-user"

// actorFrom returns the authenticated user stored by the auth middleware.
func actorFrom(ctx context.Context) (*domain.User, error) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, apperr.New(apperr.CodeNeedSignIn, apperr.MsgNeedSignIn)
	}
	return user, nil
}

// authMiddleware validates the bearer token and loads the full user row into
// the request context. Handlers always see current roles and state, not the
// snapshot baked into the token.
func authMiddleware(tokens security.TokenManager, users service.UserService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, apperr.New(apperr.CodeNeedSignIn, apperr.MsgNeedSignIn))
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil || claims.Type != security.TokenTypeAccess {
				writeError(w, apperr.New(apperr.CodeNeedSignIn, apperr.MsgNeedSignIn))
				return
			}

			user, err := users.GetProfile(r.Context(), claims.UserID)
			if err != nil {
				writeError(w, apperr.New(apperr.CodeNeedSignIn, apperr.MsgNeedSignIn))
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// metricsMiddleware records request counts and latency per route template.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}
		metrics.ObserveRequest(route, r.Method, rec.status, time.Since(start))
	})
}
