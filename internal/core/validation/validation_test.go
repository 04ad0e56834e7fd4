package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/user-management-api/internal/core/domain"
)

func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Messages
}

func TestRegistration_AllMissingFieldsReported(t *testing.T) {
	err := Registration("", "", "")
	msgs := validationMessages(t, err)
	assert.Equal(t, []string{"Name is required", "Email is required", "Password is required"}, msgs)
}

func TestRegistration_PartialMissingFields(t *testing.T) {
	err := Registration("Alice", "", "")
	msgs := validationMessages(t, err)
	assert.Equal(t, []string{"Email is required", "Password is required"}, msgs)
}

func TestRegistration_Valid(t *testing.T) {
	assert.NoError(t, Registration("Alice", "alice@example.com", "Abcdef1!"))
	// 72 characters is the longest password bcrypt hashes in full
	assert.NoError(t, Registration("Alice", "alice@example.com", "Ab1!"+strings.Repeat("a", 68)))
}

func TestRegistration_PasswordRules(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     string
	}{
		{"too short", "Ab1!", "Password must be at least 8 characters long"},
		{"no uppercase", "abcdef1!", "Password must have at least one uppercase letter, one lowercase letter, one number, and one special character."},
		{"no lowercase", "ABCDEF1!", "Password must have at least one uppercase letter, one lowercase letter, one number, and one special character."},
		{"no digit", "Abcdefg!", "Password must have at least one uppercase letter, one lowercase letter, one number, and one special character."},
		{"no symbol", "Abcdefg1", "Password must have at least one uppercase letter, one lowercase letter, one number, and one special character."},
		{"symbol outside allowed set", "Abcdef1#", "Password must have at least one uppercase letter, one lowercase letter, one number, and one special character."},
		{"over the bcrypt limit", "Ab1!" + strings.Repeat("a", 69), "Password must be at most 72 characters long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Registration("Alice", "alice@example.com", tt.password)
			msgs := validationMessages(t, err)
			assert.Contains(t, msgs, tt.want)
		})
	}
}

func TestRegistration_EmailRules(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"no at sign", "aliceexample.com"},
		{"no tld", "alice@example"},
		{"whitespace", "al ice@example.com"},
		{"consecutive dots", "alice..smith@example.com"},
		{"emoji", "alice\U0001F600@example.com"},
		{"too long", strings.Repeat("a", 250) + "@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Registration("Alice", tt.email, "Abcdef1!")
			assert.Error(t, err)
		})
	}
}

func TestRegistration_NameTooLong(t *testing.T) {
	err := Registration(strings.Repeat("x", 256), "alice@example.com", "Abcdef1!")
	msgs := validationMessages(t, err)
	assert.Contains(t, msgs, "Name must be at most 255 characters long")
}

func TestLogin_JoinsAllFailures(t *testing.T) {
	err := Login("not-an-email", "")
	msgs := validationMessages(t, err)
	assert.Contains(t, msgs, "Password is required")
	assert.Contains(t, msgs, "Please enter a valid email address")
}

func TestLogin_TrimsBeforeFormatCheck(t *testing.T) {
	assert.NoError(t, Login("  alice@example.com  ", "whatever"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}

func TestRole(t *testing.T) {
	assert.NoError(t, Role("user"))
	assert.NoError(t, Role("admin"))
	assert.ErrorIs(t, Role("superuser"), domain.ErrInvalidRole)
	assert.ErrorIs(t, Role(""), domain.ErrInvalidRole)
}

func TestPage(t *testing.T) {
	n, err := Page("")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = Page("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, raw := range []string{"0", "-1", "abc", "1.5"} {
		_, err := Page(raw)
		assert.Error(t, err, "page=%q", raw)
	}
}

func TestSearch(t *testing.T) {
	assert.NoError(t, Search("alice"))
	for _, raw := range []string{"<img", "a>b", "drop;table"} {
		assert.Error(t, Search(raw), "search=%q", raw)
	}
}

func TestSort(t *testing.T) {
	field, desc, err := Sort("")
	require.NoError(t, err)
	assert.Equal(t, "created_at", field)
	assert.True(t, desc)

	field, desc, err = Sort("name")
	require.NoError(t, err)
	assert.Equal(t, "name", field)
	assert.False(t, desc)

	field, desc, err = Sort("-email")
	require.NoError(t, err)
	assert.Equal(t, "email", field)
	assert.True(t, desc)

	_, _, err = Sort("password_hash")
	assert.Error(t, err)
}

func TestUserID(t *testing.T) {
	valid := "64a1f2e9b3c4d5e6f7a8b9c0"
	assert.NoError(t, UserID(valid))

	var ve *domain.ValidationError
	err := UserID("<script>alert(1)</script>")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Invalid user ID", ve.Error())

	err = UserID("<SCRIPT>x</SCRIPT>")
	assert.ErrorAs(t, err, &ve)

	// malformed identifiers fold into not-found
	for _, id := range []string{"short", "123456789012345678901234", strings.Repeat("a", 25), "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		assert.True(t, errors.Is(UserID(id), domain.ErrUserNotFound), "id=%q", id)
	}
}
