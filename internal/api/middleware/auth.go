package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-management-api/internal/metrics"
	"github.com/userhub/user-management-api/internal/core/domain"
	"github.com/userhub/user-management-api/internal/core/ports"
	"github.com/userhub/user-management-api/internal/core/service"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
	CtxActor  = "actor"
)

// Auth gates protected routes: it extracts the bearer token, verifies it,
// and loads the acting user (password hash excluded by the domain type's
// serialization). A token whose subject no longer exists is tolerated here;
// routes that need an ownership check fail later when no actor is attached.
func Auth(tokens *service.TokenService, repo ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrNoToken
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrNoToken
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return domain.ErrTokenInvalid
			}
			metrics.TokenVerificationsTotal.WithLabelValues("accepted").Inc()

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)

			actor, err := repo.FindByID(c.Request().Context(), claims.UserID)
			if err == nil {
				c.Set(CtxActor, actor)
			} else if !errors.Is(err, domain.ErrUserNotFound) {
				return err
			}

			return next(c)
		}
	}
}
