// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/collegecrew/collegecrew/internal/auth"
)

type contextKey string

const claimsContextKey contextKey = "session_claims"

// claimsFrom returns the session claims the middleware stored for this
// request. The second return is false only if requireToken did not run.
func claimsFrom(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(auth.Claims)
	return claims, ok
}

// requireToken gates a handler behind a bearer session token. The
// token must validate (signature and structure) and must not be past
// its embedded expiry; the two checks are separate operations on the
// token service and both must pass here.
func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.countTokenValidation("missing")
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		if !s.tokens.Validate(token) {
			s.countTokenValidation("invalid")
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		expired, err := s.tokens.IsExpired(token)
		if err != nil {
			s.countTokenValidation("invalid")
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}
		if expired {
			s.countTokenValidation("expired")
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "token expired"})
			return
		}

		claims, err := s.tokens.Claims(token)
		if err != nil {
			s.countTokenValidation("invalid")
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		s.countTokenValidation("ok")
		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
