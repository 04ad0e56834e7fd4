package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-management-api/internal/api/middleware"
	"github.com/userhub/user-management-api/internal/core/domain"
	"github.com/userhub/user-management-api/internal/core/ports"
)

// claimsActor builds the acting identity from the token claims injected by
// the Auth middleware. It does not require the account to still exist, so
// it suits routes without an ownership check.
func claimsActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	if id == "" || role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{ID: id, Role: role, IP: c.RealIP()}, nil
}

// requireActor builds the acting identity from the loaded user record.
// Ownership-checked routes must not proceed on claims alone: a valid token
// whose subject was deleted is rejected here.
func requireActor(c echo.Context) (ports.Actor, error) {
	user, _ := c.Get(middleware.CtxActor).(*domain.User)
	if user == nil {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{ID: user.ID, Role: user.Role, IP: c.RealIP()}, nil
}
