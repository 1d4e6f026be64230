package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// ValidatePath validates an output file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path names a directory: %s", path)
	}

	return nil
}

// ValidateExtension checks that path ends in one of the allowed extensions
// (compared case-insensitively, leading dot included) and returns the
// lower-cased extension.
func ValidateExtension(path string, allowed ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", New(ErrCodeInvalidFormat, "%s has no file extension (want one of %s)", path, strings.Join(allowed, ", "))
	}
	if !slices.Contains(allowed, ext) {
		return "", New(ErrCodeInvalidFormat, "unsupported file extension %q (want one of %s)", ext, strings.Join(allowed, ", "))
	}
	return ext, nil
}
