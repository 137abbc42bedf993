package errors

import (
	"strings"
	"testing"
)

func TestValidateListName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Biologie", false},
		{"valid with spaces", "Englisch Vokabeln", false},
		{"valid umlaut", "Übungen", false},
		{"valid dash", "abc-list-1", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", MaxListNameLength+1), true},
		{"slash", "a/b", true},
		{"traversal", "..", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateListName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidListName) {
				t.Errorf("ValidateListName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidListName)
			}
		})
	}
}

func TestValidateWord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Apfel", false},
		{"phrase", "auf Wiedersehen", false},
		{"empty", "", true},
		{"blank", "  ", true},
		{"control", "a\tb", true},
		{"too long", strings.Repeat("x", MaxWordLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateWord(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidateWord(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateKawaWord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "LERNEN", false},
		{"umlaut", "Grün", false},
		{"empty", "", true},
		{"space", "LE RN", true},
		{"digit", "R2D2", true},
		{"too long", strings.Repeat("a", MaxKawaWordLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateKawaWord(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidateKawaWord(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/list.csv", false},
		{"absolute", "/tmp/list.pdf", false},
		{"empty", "", true},
		{"null byte", "a\x00b", true},
		{"too long", strings.Repeat("a", 2000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePath(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
