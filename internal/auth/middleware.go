package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"

	"quizmaster/internal/apperr"
)

// TokenCookie is the session cookie set at login. A bearer Authorization
// header is accepted as an alternative transport.
const TokenCookie = "quizmaster_token"

// Identity is the request-scoped caller identity every gated operation
// receives. It is derived from the token once, in middleware, and carried
// on the request context; no global session state exists.
type Identity struct {
	UserID  uint
	IsAdmin bool
}

type contextKey struct{}

func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
		return ""
	}
	return bearerToken[1]
}

func parseIdentity(r *http.Request, jwtSecret string) (Identity, error) {
	tokenString := tokenFromRequest(r)
	if tokenString == "" {
		return Identity{}, apperr.ErrUnauthenticated
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return Identity{}, apperr.ErrUnauthenticated
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, apperr.ErrUnauthenticated
	}

	userID, ok := (*claims)["user_id"].(float64)
	if !ok {
		return Identity{}, apperr.ErrUnauthenticated
	}
	isAdmin, _ := (*claims)["is_admin"].(bool)

	return Identity{UserID: uint(userID), IsAdmin: isAdmin}, nil
}

// RequireUser admits any authenticated caller.
func RequireUser(jwtSecret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := parseIdentity(r, jwtSecret)
			if err != nil {
				http.Error(w, apperr.Message(err), apperr.HTTPStatus(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin admits only authenticated callers whose admin flag is set.
// A valid non-admin token is a Forbidden, not an Unauthenticated.
func RequireAdmin(jwtSecret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := parseIdentity(r, jwtSecret)
			if err != nil {
				http.Error(w, apperr.Message(err), apperr.HTTPStatus(err))
				return
			}
			if !identity.IsAdmin {
				http.Error(w, apperr.Message(apperr.ErrForbidden), apperr.HTTPStatus(apperr.ErrForbidden))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
		})
	}
}
