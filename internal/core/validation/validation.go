// Package validation holds the pure input checks applied before any store
// access. Functions here have no side effects and collect every failure in
// a request rather than stopping at the first.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/userhub/user-management-api/internal/core/domain"
)

const maxFieldLength = 255

// maxPasswordLength matches the bcrypt input limit.
const maxPasswordLength = 72

// emailPattern is intentionally loose: one @, no whitespace, a dotted domain.
// Stricter rules (length, consecutive dots, emoji) are layered on top so each
// produces its own message.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var scriptTagPattern = regexp.MustCompile(`(?i)<script>|</script>`)

// passwordSymbols is the fixed set of symbols a password may (and must) use.
const passwordSymbols = "@$!%*?&"

// NormalizeEmail trims and case-folds an email for storage and lookup.
// Uniqueness is case-insensitive, so folding happens at write time.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Registration checks a signup payload. Missing fields are reported jointly;
// when all three are present the model-level constraints are checked too.
func Registration(name, email, password string) error {
	var msgs []string

	if name == "" {
		msgs = append(msgs, "Name is required")
	}
	if email == "" {
		msgs = append(msgs, "Email is required")
	}
	if password == "" {
		msgs = append(msgs, "Password is required")
	}
	if len(msgs) > 0 {
		return domain.NewValidationError(msgs)
	}

	if len(strings.TrimSpace(name)) > maxFieldLength {
		msgs = append(msgs, "Name must be at most 255 characters long")
	}
	msgs = append(msgs, emailMessages(email)...)
	msgs = append(msgs, passwordMessages(password)...)

	return domain.NewValidationError(msgs)
}

// Login checks a signin payload, joining every failure among missing fields
// and malformed email.
func Login(email, password string) error {
	var msgs []string

	if email == "" {
		msgs = append(msgs, "Email is required")
	}
	if password == "" {
		msgs = append(msgs, "Password is required")
	}
	if email != "" {
		msgs = append(msgs, emailMessages(email)...)
	}

	return domain.NewValidationError(msgs)
}

// Email checks a single email value against the model constraints.
func Email(email string) error {
	return domain.NewValidationError(emailMessages(email))
}

// Name checks a single name value against the model constraints.
func Name(name string) error {
	var msgs []string
	if strings.TrimSpace(name) == "" {
		msgs = append(msgs, "Name is required")
	} else if len(strings.TrimSpace(name)) > maxFieldLength {
		msgs = append(msgs, "Name must be at most 255 characters long")
	}
	return domain.NewValidationError(msgs)
}

// Role checks an explicitly supplied role against the fixed enum.
func Role(role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	return nil
}

func emailMessages(email string) []string {
	var msgs []string
	trimmed := strings.TrimSpace(email)

	if !emailPattern.MatchString(trimmed) {
		msgs = append(msgs, "Please enter a valid email address")
	}
	if len(trimmed) > maxFieldLength {
		msgs = append(msgs, "Email must be at most 255 characters long")
	}
	if containsEmoji(email) {
		msgs = append(msgs, "Please enter a valid email address")
	}
	if strings.Contains(email, "..") {
		msgs = append(msgs, "Please enter a valid email address")
	}
	return msgs
}

func passwordMessages(password string) []string {
	if len(password) < 8 {
		return []string{"Password must be at least 8 characters long"}
	}
	// bcrypt only consumes the first 72 bytes; reject instead of silently
	// hashing a truncated secret.
	if len(password) > maxPasswordLength {
		return []string{"Password must be at most 72 characters long"}
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			// characters outside the allowed set fail the rule outright
			return []string{complexityMessage}
		}
	}
	if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		return []string{complexityMessage}
	}
	return nil
}

const complexityMessage = "Password must have at least one uppercase letter, one lowercase letter, one number, and one special character."

// containsEmoji reports whether s contains a code point from the emoticons
// block (U+1F600–U+1F64F).
func containsEmoji(s string) bool {
	for _, r := range s {
		if r >= 0x1F600 && r <= 0x1F64F {
			return true
		}
	}
	return false
}

// Page parses the page query parameter. An absent value defaults to 1.
func Page(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.NewValidationError([]string{"Invalid page number"})
	}
	return n, nil
}

// Search rejects search terms carrying characters that could smuggle markup
// or query operators past the store layer.
func Search(raw string) error {
	if strings.ContainsAny(raw, "<>;") {
		return domain.NewValidationError([]string{"Invalid input"})
	}
	return nil
}

// sortFields is the allow-list of sortable columns.
var sortFields = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

// Sort parses the sort query parameter into a field and direction. A leading
// "-" requests descending order. The default is newest-first.
func Sort(raw string) (field string, desc bool, err error) {
	if raw == "" {
		return "created_at", true, nil
	}
	if strings.HasPrefix(raw, "-") {
		desc = true
		raw = raw[1:]
	}
	field, ok := sortFields[raw]
	if !ok {
		return "", false, domain.NewValidationError([]string{"Invalid sort field"})
	}
	return field, desc, nil
}

// UserID screens a path identifier before it can reach the store. Script
// tags are rejected loudly; any other malformed identifier is folded into
// "not found" so the identifier format is not leaked.
func UserID(id string) error {
	if scriptTagPattern.MatchString(id) {
		return domain.NewValidationError([]string{"Invalid user ID"})
	}
	if !validObjectID(id) {
		return domain.ErrUserNotFound
	}
	return nil
}

// validObjectID reports whether id looks like a store identifier: exactly
// 24 hex characters and not purely numeric.
func validObjectID(id string) bool {
	if len(id) != 24 {
		return false
	}
	allDigits := true
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
			allDigits = false
		default:
			return false
		}
	}
	return !allDigits
}
