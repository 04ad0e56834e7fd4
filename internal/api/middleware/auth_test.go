package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-management-api/internal/core/domain"
	"github.com/userhub/user-management-api/internal/core/ports"
	"github.com/userhub/user-management-api/internal/core/service"
)

type stubRepo struct {
	users map[string]*domain.User
}

func (r *stubRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) List(context.Context, ports.ListFilter) ([]*domain.User, error) {
	return nil, nil
}

func (r *stubRepo) Update(context.Context, string, ports.UserUpdate) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) Delete(context.Context, string) error {
	return domain.ErrUserNotFound
}

const testUserID = "a64a1f2e9b3c4d5e6f7a8b9c"

func testContext(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	user := &domain.User{ID: testUserID, Name: "Alice", Role: domain.RoleAdmin}
	repo := &stubRepo{users: map[string]*domain.User{user.ID: user}}

	signed, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, rec := testContext(t, "Bearer "+signed)

	called := false
	handler := Auth(tokens, repo)(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != user.ID {
			t.Fatalf("userID not set")
		}
		if c.Get(CtxRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		actor, ok := c.Get(CtxActor).(*domain.User)
		if !ok || actor.ID != user.ID {
			t.Fatalf("actor not loaded")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	c, _ := testContext(t, "")

	handler := Auth(tokens, &stubRepo{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != domain.ErrNoToken {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestAuth_WrongScheme(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	c, _ := testContext(t, "Token abc")

	handler := Auth(tokens, &stubRepo{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != domain.ErrNoToken {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	c, _ := testContext(t, "Bearer not-a-token")

	handler := Auth(tokens, &stubRepo{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	issuer := service.NewTokenService("other-secret", time.Hour)
	verifier := service.NewTokenService("secret", time.Hour)

	signed, err := issuer.Issue(&domain.User{ID: testUserID, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := testContext(t, "Bearer "+signed)
	handler := Auth(verifier, &stubRepo{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuth_DeletedSubjectTolerated(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	signed, err := tokens.Issue(&domain.User{ID: testUserID, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	// subject no longer exists in the store
	c, _ := testContext(t, "Bearer "+signed)

	called := false
	handler := Auth(tokens, &stubRepo{})(func(c echo.Context) error {
		called = true
		if c.Get(CtxActor) != nil {
			t.Fatalf("actor should be absent")
		}
		if c.Get(CtxUserID) != testUserID {
			t.Fatalf("claims should still be attached")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}
