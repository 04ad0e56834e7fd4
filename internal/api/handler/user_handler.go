package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-management-api/internal/core/domain"
	"github.com/userhub/user-management-api/internal/core/ports"
	"github.com/userhub/user-management-api/internal/core/validation"
)

// UserHandler handles the CRUD endpoints over user records.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// pathUserID returns the userId path segment percent-decoded, so an encoded
// hostile id is screened the same as a literal one.
func pathUserID(c echo.Context) string {
	raw := c.Param("userId")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

type listUsersResponse struct {
	Users []*domain.User `json:"users"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type userMessageResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// updateUserRequest is the fixed allow-list of updatable fields. Unknown
// fields (including "_id") are dropped at decode time and never persisted.
// Password is bound only so its presence can be rejected explicitly.
type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// List returns all users matching the optional filters.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role    query     string  false  "Filter by role (user or admin)"
// @Param        page    query     int     false  "Page number (1-based, 20 per page)"
// @Param        search  query     string  false  "Case-insensitive name/email substring"
// @Param        sort    query     string  false  "Sort field: name, email, created_at; prefix - for descending"
// @Success      200     {object}  listUsersResponse
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := claimsActor(c)
	if err != nil {
		return err
	}

	// page was already screened by the query middleware
	page, err := validation.Page(c.QueryParam("page"))
	if err != nil {
		return err
	}

	users, err := h.users.List(c.Request().Context(), actor, ports.ListUsersInput{
		Role:   c.QueryParam("role"),
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
		Page:   page,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listUsersResponse{Users: users})
}

// Get returns a single user by id. Self-or-admin only.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  userResponse
// @Failure      400     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/users/{userId} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), actor, pathUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Update mutates the allow-listed fields of a user. Self-or-admin only;
// password changes are rejected on this endpoint.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string             true  "User id"
// @Param        body    body      updateUserRequest  true  "Fields to update"
// @Success      200     {object}  userMessageResponse
// @Failure      400     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/users/{userId} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Update(c.Request().Context(), actor, pathUserID(c), ports.UpdateUserInput{
		Name:             req.Name,
		Email:            req.Email,
		Role:             req.Role,
		PasswordSupplied: req.Password != nil,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userMessageResponse{
		Message: "User updated successfully",
		User:    user,
	})
}

// Delete removes a user account. Self-or-admin only. The confirmation
// message distinguishes self-deletion from an admin removing another
// account.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  map[string]string
// @Failure      400     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/users/{userId} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	result, err := h.users.Delete(c.Request().Context(), actor, pathUserID(c))
	if err != nil {
		return err
	}

	message := "User deleted successfully"
	if result.SelfDelete {
		message = "Your account has been deleted"
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}
