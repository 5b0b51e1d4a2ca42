package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resourcehub/resource-api/internal/core/domain"
	"github.com/resourcehub/resource-api/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the Auth middleware. A
// missing role or subject means the resolver did not run or the token lacks
// the claims we need; either way the request is unauthenticated.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}

	username, _ := c.Get("username").(string)
	return ports.Identity{ID: userID, Username: username, Role: domain.Role(role)}, nil
}
