package errors

import (
	"testing"
)

func TestValidateCallsign(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "OE8KKS", false},
		{"valid lowercase", "dl1abc", false},
		{"valid with dash", "OE8KKS-1", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", true},
		{"portable suffix", "OE8KKS/P", true},
		{"path traversal", "..", true},
		{"backslash", "OE8\\KKS", true},
		{"null byte", "OE8\x00KKS", true},
		{"inner space", "OE8 KKS", true},
		{"newline", "OE8KKS\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCallsign(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCallsign(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCallsign) {
				t.Errorf("ValidateCallsign(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidCallsign)
			}
		})
	}
}
