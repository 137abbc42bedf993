package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Length limits for user-supplied names.
const (
	MaxListNameLength = 128
	MaxWordLength     = 256
	MaxKawaWordLength = 64
)

// ValidateListName validates a word-list name for safety and correctness.
// List names end up in storage keys and export filenames, so the rules are
// conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of MaxListNameLength runes
func ValidateListName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidListName, "list name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxListNameLength {
		return New(ErrCodeInvalidListName, "list name too long (max %d characters)", MaxListNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidListName, "list name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidListName, "list name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateWord validates the text of a word entry.
func ValidateWord(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidWord, "word cannot be empty")
	}
	if utf8.RuneCountInString(text) > MaxWordLength {
		return New(ErrCodeInvalidWord, "word too long (max %d characters)", MaxWordLength)
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWord, "word contains invalid control characters")
		}
	}
	return nil
}

// ValidateKawaWord validates the target word of a KaWa. Only letters are
// allowed because every position becomes one letter node.
func ValidateKawaWord(word string) error {
	if word == "" {
		return New(ErrCodeInvalidWord, "kawa word cannot be empty")
	}
	if utf8.RuneCountInString(word) > MaxKawaWordLength {
		return New(ErrCodeInvalidWord, "kawa word too long (max %d letters)", MaxKawaWordLength)
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return New(ErrCodeInvalidWord, "kawa word may only contain letters: %q", word)
		}
	}
	return nil
}

// ValidatePath validates an output or import file path.
// It rejects empty paths, null bytes and control characters.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
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
