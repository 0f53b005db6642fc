package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/jdormont/trainingsmart/internal/auth"
	"github.com/jdormont/trainingsmart/internal/telemetry/tracing"
	"github.com/jdormont/trainingsmart/pkg"
)

//go:generate mockgen -source=auth.go -destination=auth_mocks_test.go -package=middleware_test

type loginChecker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
}

type keyResolver interface {
	UserIDForKey(ctx context.Context, apiKey string) (int, error)
}

type AuthMiddlewareHandler struct {
	ownerID      int
	loginChecker loginChecker
	keyResolver  keyResolver
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(
	ownerID int,
	loginChecker loginChecker,
	keyResolver keyResolver,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		ownerID:      ownerID,
		loginChecker: loginChecker,
		keyResolver:  keyResolver,
		allowedPaths: map[string]bool{
			"/":        true,
			"/version": true,

			// login-logout:
			"/a/login":  true,
			"/a/logout": true,
		},
	}
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			// wearable sync agents authenticate with a per-device API key
			if apiKey := r.Header.Get("X-Api-Key"); apiKey != "" {
				userID, err := h.keyResolver.UserIDForKey(ctx, apiKey)
				if err != nil {
					if errors.Is(err, auth.ErrUnknownAPIKey) {
						reqIP, _ := pkg.ReadUserIP(r)
						log.Tracef("[invalid api key] unauthorized => %s from %s", r.URL.Path, reqIP)
						pkg.WriteJSONError(w, http.StatusForbidden, "forbidden", "invalid api key")
						span.SetStatus(codes.Error, "invalid-api-key")
						return
					}
					log.Errorf("[failed api key check] => %s: %s", r.URL.Path, err)
					pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error", "")
					span.SetStatus(codes.Error, "check-api-key-err")
					span.RecordError(err)
					return
				}

				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r.WithContext(auth.ContextWithUserID(ctx, userID)))
				return
			}

			authToken := bearerToken(r)
			if authToken == "" {
				log.Tracef("[missing credentials] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "missing credentials")
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			isLogged, err := h.loginChecker.IsLogged(ctx, authToken)
			if err != nil {
				log.Tracef("[failed login check] => %s: %s", r.URL.Path, err)
				pkg.WriteJSONError(w, http.StatusForbidden, "forbidden", "invalid credentials")
				span.SetStatus(codes.Error, "check-logged-err")
				span.RecordError(err)
				return
			}
			if !isLogged {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONError(w, http.StatusForbidden, "forbidden", "invalid credentials")
				span.SetStatus(codes.Error, "not-logged")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.ContextWithUserID(ctx, h.ownerID)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
