// Package auth provides JWT bearer authentication and role based authorization
// for the HTTP API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"game-history/internal/handler/http/respond"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ctxUser ctxKey = "user"

var (
	errMissingToken  = errors.New("missing bearer token")
	errInvalidToken  = errors.New("invalid token")
	errTokenExpired  = errors.New("token expired")
	errInvalidClaims = errors.New("invalid claims")
)

// Config controls the Authz middleware.
type Config struct {
	// Secret is the HS256 signing key shared with the token issuer.
	Secret []byte
	// ProtectReads requires a token for history reads as well. When false only
	// writes are protected.
	ProtectReads bool
}

// Authz is an authorization middleware that requires a JWT bearer token on
// protected endpoints.
//
// 1. Public endpoints (probes, metrics) pass through.
// 2. History reads pass through unless cfg.ProtectReads is set.
// 3. Every other request needs a valid HS256 token whose role grants the
//    method and path. The subject is stored in the request context.
func Authz(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicEndpoint(r.URL.Path) || (!cfg.ProtectReads && IsReadEndpoint(r)) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			claims, err := validateJWT(r.Header.Get("Authorization"), cfg.Secret)
			if err != nil {
				RecordAuthFailure(failureReason(err))
				slog.Default().Warn("authentication failed",
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()))
				respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}

			allowed := checkRolePermission(claims.Role, r.Method, r.URL.Path)
			RecordAuthzCheckDuration(time.Since(start).Seconds())
			if !allowed {
				RecordForbiddenAttempt(claims.Role, r.Method)
				respond.SafeError(w, http.StatusForbidden, errors.New("forbidden"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUser, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated subject, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(ctxUser).(string)
	return user, ok && user != ""
}

func validateJWT(authz string, secret []byte) (*Claims, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return nil, errMissingToken
	}
	tokenString := strings.TrimPrefix(authz, prefix)

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, errTokenExpired
	case err != nil || !tok.Valid:
		return nil, errInvalidToken
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, errInvalidClaims
	}
	return claims, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, errMissingToken):
		return "missing_token"
	case errors.Is(err, errTokenExpired):
		return "expired"
	case errors.Is(err, errInvalidClaims):
		return "invalid_claims"
	default:
		return "invalid_token"
	}
}
