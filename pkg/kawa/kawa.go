// Package kawa models KaWa exercises: one free-text association per letter
// position of a target word.
//
// Associations are stored by position, so a word with repeated letters
// ("TEST") keeps a separate association for every occurrence. The
// letter-keyed map form used by older data and by the mind-map contract is
// still supported through [FromAssociations] and [Kawa.Associations]; in that
// form repeated letters collapse with last-write-wins, which
// [DuplicateLetters] reports so callers can warn instead of losing text
// silently.
package kawa

import (
	"strings"

	"github.com/matzehuels/abclisten/pkg/errors"
)

// Kawa is a target word with one association slot per letter position.
type Kawa struct {
	Word    string   `json:"word" yaml:"word"`
	Entries []string `json:"entries" yaml:"entries"`
}

// New creates a KaWa with empty association slots.
func New(word string) (Kawa, error) {
	if err := errors.ValidateKawaWord(word); err != nil {
		return Kawa{}, err
	}
	return Kawa{Word: word, Entries: make([]string, len([]rune(word)))}, nil
}

// Letters returns the letters of the word, one string per position.
func (k Kawa) Letters() []string {
	runes := []rune(k.Word)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

// At returns the association at pos, or "" when the slot is empty or
// out of range.
func (k Kawa) At(pos int) string {
	if pos < 0 || pos >= len(k.Entries) {
		return ""
	}
	return k.Entries[pos]
}

// Set returns a copy of k with the association at pos replaced.
func (k Kawa) Set(pos int, text string) (Kawa, error) {
	n := len([]rune(k.Word))
	if pos < 0 || pos >= n {
		return k, errors.New(errors.ErrCodeInvalidInput, "position %d out of range for %q (0-%d)", pos, k.Word, n-1)
	}
	out := Kawa{Word: k.Word, Entries: make([]string, n)}
	copy(out.Entries, k.Entries)
	out.Entries[pos] = strings.TrimSpace(text)
	return out, nil
}

// Filled returns the number of positions with a non-empty association.
func (k Kawa) Filled() int {
	n := 0
	for _, e := range k.Entries {
		if e != "" {
			n++
		}
	}
	return n
}

// Associations returns the letter-keyed view of k. Letters are keyed as they
// appear in the word; for repeated letters the last position wins.
func (k Kawa) Associations() map[string]string {
	out := make(map[string]string, len(k.Entries))
	for i, l := range k.Letters() {
		if text := k.At(i); text != "" {
			out[l] = text
		}
	}
	return out
}

// FromAssociations builds a positional KaWa from a letter-keyed map. Every
// occurrence of a letter receives the same text. Lookups fall back to the
// lowercase and then uppercase form of the letter.
func FromAssociations(word string, assoc map[string]string) (Kawa, error) {
	k, err := New(word)
	if err != nil {
		return Kawa{}, err
	}
	for i, l := range k.Letters() {
		k.Entries[i] = Lookup(assoc, l)
	}
	return k, nil
}

// Lookup finds the association for letter l, trying l as written, then its
// lowercase and uppercase forms.
func Lookup(assoc map[string]string, l string) string {
	if v, ok := assoc[l]; ok {
		return v
	}
	if v, ok := assoc[strings.ToLower(l)]; ok {
		return v
	}
	return assoc[strings.ToUpper(l)]
}

// DuplicateLetters returns the letters that occur more than once in word
// (case-insensitive, uppercased, in order of first repetition). These are
// the letters whose associations collide in the letter-keyed form.
func DuplicateLetters(word string) []string {
	seen := make(map[string]int)
	var dups []string
	for _, r := range word {
		l := strings.ToUpper(string(r))
		seen[l]++
		if seen[l] == 2 {
			dups = append(dups, l)
		}
	}
	return dups
}
