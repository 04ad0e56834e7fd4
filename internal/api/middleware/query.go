package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/userhub/user-management-api/internal/core/validation"
)

// ValidateQuery screens the list endpoint's query parameters before the
// handler runs. Violations never reach the store layer.
func ValidateQuery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := validation.Page(c.QueryParam("page")); err != nil {
				return err
			}
			if err := validation.Search(c.QueryParam("search")); err != nil {
				return err
			}
			return next(c)
		}
	}
}
