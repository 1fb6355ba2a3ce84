package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// identifierRegex matches catalog identifiers: lower snake case, starting with a letter.
var identifierRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateIdentifier validates a catalog identifier (item type or space type id).
//
// The rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 64 characters
//   - Lower case letters, digits and underscores only, starting with a letter
func ValidateIdentifier(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidCatalog, "%s id cannot be empty", kind)
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidCatalog, "%s id too long (max 64 characters)", kind)
	}
	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidCatalog, "invalid %s id: %q", kind, id)
	}
	return nil
}

// ValidateDimension checks that a length in metres is finite and strictly positive.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidRoomSpec, "%s must be a finite number", name)
	}
	if v <= 0 {
		return New(ErrCodeInvalidRoomSpec, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
