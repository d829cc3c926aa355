package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxCommandLength bounds a single command line accepted from a control channel.
const MaxCommandLength = 1024

// MaxWindows bounds the window count of a single layout request.
const MaxWindows = 4096

// ValidateCommandLine validates a raw command line before tokenizing.
// It rejects input that could not have come from a well-behaved control client.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only lines
//   - No control characters other than tab
//   - Maximum length of MaxCommandLength bytes
func ValidateCommandLine(line string) error {
	if strings.TrimSpace(line) == "" {
		return New(ErrCodeInvalidCommand, "command cannot be empty")
	}

	if len(line) > MaxCommandLength {
		return New(ErrCodeInvalidCommand, "command too long (max %d characters)", MaxCommandLength)
	}

	for _, r := range line {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidCommand, "command contains invalid control characters")
		}
	}

	return nil
}

// ValidateFraction checks that v lies strictly inside (0,1).
// name identifies the setting in the error message.
func ValidateFraction(name string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v >= 1 {
		return New(ErrCodeInvalidValue, "%s must be greater than 0 and less than 1, got %v", name, v)
	}
	return nil
}

// ValidateFinite checks that v is neither NaN nor infinite.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidValue, "%s must be a finite number, got %v", name, v)
	}
	return nil
}

// ValidateWindowCount checks a layout request's window count.
func ValidateWindowCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidRequest, "window count cannot be negative, got %d", n)
	}
	if n > MaxWindows {
		return New(ErrCodeInvalidRequest, "window count too large (max %d), got %d", MaxWindows, n)
	}
	return nil
}
