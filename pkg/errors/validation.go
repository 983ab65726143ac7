package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a path stored inside a layout document, such as a
// sprite sheet reference. Such paths are resolved against the document's
// directory, so they must stay below it.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	return nil
}

// elementIDRegex matches ids usable as CSS id selectors without escaping.
var elementIDRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateElementID validates an element id. Ids end up in `#id` selectors
// of exported stylesheets.
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidLayout, "element id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidLayout, "element id too long (max 128 characters)")
	}
	if !elementIDRegex.MatchString(id) {
		return New(ErrCodeInvalidLayout, "invalid element id: %q", id)
	}
	return nil
}

// propertyRegex matches lowercase CSS property names.
var propertyRegex = regexp.MustCompile(`^-?[a-z][a-z0-9-]*$`)

// ValidateProperty validates a CSS property name from a style map.
func ValidateProperty(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProperty, "property name cannot be empty")
	}
	if !propertyRegex.MatchString(name) {
		return New(ErrCodeInvalidProperty, "invalid property name: %q", name)
	}
	return nil
}
