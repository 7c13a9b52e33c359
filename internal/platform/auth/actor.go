// Package auth extracts the acting operator's identity from requests.
// Authentication itself (login, sessions, token issuance) lives in an
// external service; this package only recovers the actor name that ledger
// entries record as assigned_by.
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// ActorKey is the echo context key holding the resolved actor name.
	ActorKey = "actor"

	// HeaderActor is honored in development mode only.
	HeaderActor = "X-Actor"
)

// Claims carries the subset of token claims this service reads.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

// ActorMiddleware resolves the actor for each request. With a secret
// configured, a Bearer token is verified (HS256) and its name/subject claim
// becomes the actor; a malformed or forged token is rejected. Without a
// secret (development), the X-Actor header is trusted as-is. Requests with
// no identity at all still pass — the ledger's assigned_by column is
// nullable.
func ActorMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			if header == "" {
				if secret == "" {
					if actor := c.Request().Header.Get(HeaderActor); actor != "" {
						c.Set(ActorKey, actor)
					}
				}
				return next(c)
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			if tokenStr == header {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			if secret == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "bearer tokens are not accepted without AUTH_SECRET")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			actor := claims.Name
			if actor == "" {
				actor = claims.Subject
			}
			if actor != "" {
				c.Set(ActorKey, actor)
			}
			return next(c)
		}
	}
}

// ActorFromContext returns the resolved actor name, or "" when the request
// carried no identity.
func ActorFromContext(c echo.Context) string {
	actor, _ := c.Get(ActorKey).(string)
	return actor
}
