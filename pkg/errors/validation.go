package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxNodes bounds the number of nodes a single document may declare.
// Layout is linear in the node count, but documents arrive over HTTP too.
const MaxNodes = 65535

// ValidateNodeCount rejects documents with no nodes or more than MaxNodes.
func ValidateNodeCount(n int) error {
	if n == 0 {
		return New(ErrCodeInvalidDocument, "document has no root node")
	}
	if n > MaxNodes {
		return New(ErrCodeInvalidDocument, "document has %d nodes (max %d)", n, MaxNodes)
	}
	return nil
}

// ValidateDimension checks that a size, padding or spacing value is finite
// and non-negative. The field name is used in the error message.
func ValidateDimension(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidSize, "%s must be finite, got %v", field, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidSize, "%s must be non-negative, got %v", field, v)
	}
	return nil
}

// ValidateRange checks that min <= max for a clamped size.
func ValidateRange(field string, lo, hi float64) error {
	if err := ValidateDimension(field+".min", lo); err != nil {
		return err
	}
	if err := ValidateDimension(field+".max", hi); err != nil {
		return err
	}
	if lo > hi {
		return New(ErrCodeInvalidSize, "%s min (%v) exceeds max (%v)", field, lo, hi)
	}
	return nil
}

// ValidatePath validates a file path for safety.
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

// ValidateName validates a node name from a document.
// Names are optional labels; they only need to be printable and short.
func ValidateName(name string) error {
	if len(name) > 256 {
		return New(ErrCodeInvalidDocument, "node name too long (max 256 characters)")
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return New(ErrCodeInvalidDocument, "node name contains control characters: %q", name)
	}
	return nil
}
