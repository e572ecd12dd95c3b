package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"goflare.io/merchant/token"
)

// ContextUserIDKey is where the auth gate stores the verified user id on the
// echo context.
const ContextUserIDKey = "user_id"

const accessCookieName = "accessToken"

// AccessParser is satisfied by *token.Manager.
type AccessParser interface {
	ParseAccess(tokenStr string) (*token.Claims, error)
}

// AuthGate guards protected routes. It accepts the access token from the
// accessToken cookie or an Authorization bearer header, and injects the
// verified user id into the request context before the handler runs.
func AuthGate(tokens AccessParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := accessTokenFrom(c)
			if tokenStr == "" {
				return respondError(c, http.StatusUnauthorized, "unauthorized request")
			}

			claims, err := tokens.ParseAccess(tokenStr)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, "invalid access token")
			}

			c.Set(ContextUserIDKey, claims.UserID)
			return next(c)
		}
	}
}

func accessTokenFrom(c echo.Context) string {
	if cookie, err := c.Cookie(accessCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}

	return ""
}
