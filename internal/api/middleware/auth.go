package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/resourcehub/resource-api/internal/api/metrics"
)

// Auth is the identity resolver: it turns the bearer credential into an
// authenticated identity injected into the request context. Absent, malformed,
// or expired credentials fail with 401 before any authorization decision runs.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_credential").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("malformed_header").Inc()
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
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// Refresh tokens must never authenticate a request.
			if typ, _ := claims["typ"].(string); typ != "access" {
				metrics.AuthFailuresTotal.WithLabelValues("wrong_token_type").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if active, _ := claims["active"].(bool); !active {
				metrics.AuthFailuresTotal.WithLabelValues("inactive_account").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "account disabled")
			}

			c.Set("user_id", claims["sub"])
			c.Set("username", claims["username"])
			c.Set("role", claims["role"])

			return next(c)
		}
	}
}
