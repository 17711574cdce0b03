package middleware

import (
	"context"
	"net/http"
	"strings"

	"harvestharmony/auth"
	"harvestharmony/globals"
	"harvestharmony/utils"

	"github.com/julienschmidt/httprouter"
)

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func withClaims(r *http.Request, claims *auth.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, globals.UsernameKey, claims.Username)
	ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
	return r.WithContext(ctx)
}

// Authenticate rejects requests without a valid session token.
func Authenticate(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := tokenFromRequest(r)
		if token == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		claims, err := auth.ParseToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}
		h(w, withClaims(r, claims), ps)
	}
}

// OptionalAuth attaches identity when present but never rejects.
func OptionalAuth(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if token := tokenFromRequest(r); token != "" {
			if claims, err := auth.ParseToken(token); err == nil {
				r = withClaims(r, claims)
			}
		}
		h(w, r, ps)
	}
}
