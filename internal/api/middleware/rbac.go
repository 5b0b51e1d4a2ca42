package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resourcehub/resource-api/internal/api/metrics"
	"github.com/resourcehub/resource-api/internal/core/authz"
	"github.com/resourcehub/resource-api/internal/core/domain"
)

// Authorize gates a route on the decision table for the given action. It
// runs after Auth, so a missing role means the resolver was skipped and the
// request is unauthenticated rather than forbidden. Denies surface only as
// "forbidden"; the reason code stays in logs and metrics.
func Authorize(action authz.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			decision := authz.Authorize(domain.Role(role), action)
			if !decision.Allowed {
				metrics.AuthzDecisionsTotal.WithLabelValues(string(action), role, "deny").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			metrics.AuthzDecisionsTotal.WithLabelValues(string(action), role, "allow").Inc()
			return next(c)
		}
	}
}
