package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/university/admin-system/internal/core/ports"
)

// Context keys set by the Auth middleware.
const (
	CtxUsername    = "username"
	CtxRole        = "role"
	CtxUserID      = "user_id"
	CtxToken       = "token"
	CtxTokenExpiry = "token_expiry"
)

// Auth validates the bearer JWT, rejects revoked tokens, and injects the
// claims into context. The blacklist may be nil (revocation disabled).
func Auth(jwtSecret string, blacklist ports.TokenBlacklist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if blacklist != nil {
				revoked, err := blacklist.IsRevoked(c.Request().Context(), parts[1])
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "token validation unavailable")
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set(CtxUsername, claims["sub"])
			c.Set(CtxRole, claims["role"])
			c.Set(CtxUserID, claims["user_id"])
			c.Set(CtxToken, parts[1])
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set(CtxTokenExpiry, exp.Time)
			} else {
				c.Set(CtxTokenExpiry, time.Time{})
			}

			return next(c)
		}
	}
}
