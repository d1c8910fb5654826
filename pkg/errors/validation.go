package errors

import (
	"strings"
	"unicode"
)

// maxCallsignLength bounds callsigns well above any issued prefix/suffix combination.
const maxCallsignLength = 32

// ValidateCallsign checks that a callsign can be used as a registry id and as
// a directory name under data/cards.
//
// Rules:
//   - not empty or whitespace only
//   - at most 32 characters
//   - no control characters or whitespace
//   - no path separators or traversal sequences
func ValidateCallsign(callsign string) error {
	if strings.TrimSpace(callsign) == "" {
		return New(ErrCodeInvalidCallsign, "callsign cannot be empty")
	}

	if len(callsign) > maxCallsignLength {
		return New(ErrCodeInvalidCallsign, "callsign too long (max %d characters)", maxCallsignLength)
	}

	for _, r := range callsign {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidCallsign, "callsign %q contains whitespace or control characters", callsign)
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Would nest directories under data/cards
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(callsign, pattern) {
			return New(ErrCodeInvalidCallsign, "callsign contains invalid characters: %q", pattern)
		}
	}

	return nil
}
