// Package wordlist models ABC-Lists: vocabulary collections organized by
// starting letter, A to Z.
//
// A [List] owns one ordered bucket of [Entry] values per lowercase letter.
// Entries are values: editing an entry replaces it in its slot with a new
// [Entry] whose Version is incremented, and every operation on a [List]
// returns a new List instead of mutating the receiver. This keeps lists safe
// to share between goroutines (for example, an HTTP handler rendering a mind
// map while the CLI saves a new word) without locking.
//
// # Buckets
//
// [Buckets] distinguishes an absent letter from a present-but-empty one:
//
//	b := wordlist.Buckets{"a": {}}   // "a" present, empty
//	_, ok := b["b"]                  // "b" absent
//
// Consumers that only care about content use [Buckets.Letters], which
// treats both cases identically and returns the letters holding at least
// one entry in alphabetical order.
package wordlist

import (
	"slices"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/abclisten/pkg/errors"
)

// Alphabet lists the 26 bucket letters in display order.
var Alphabet = []string{
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
}

// Entry is a single word in a letter bucket.
type Entry struct {
	Text        string `json:"text" yaml:"text"`
	Explanation string `json:"explanation" yaml:"explanation"`
	Version     int    `json:"version" yaml:"version"`
	Imported    bool   `json:"imported" yaml:"imported"`
	Timestamp   *int64 `json:"timestamp,omitempty" yaml:"timestamp,omitempty"` // Unix milliseconds
}

// NewEntry creates a first-version entry stamped with the given time.
func NewEntry(text, explanation string, at time.Time) Entry {
	ts := at.UnixMilli()
	return Entry{
		Text:        strings.TrimSpace(text),
		Explanation: strings.TrimSpace(explanation),
		Version:     1,
		Timestamp:   &ts,
	}
}

// Buckets maps a lowercase letter to its ordered entries.
type Buckets map[string][]Entry

// Letters returns the letters that hold at least one entry, in a–z order.
// Keys outside the alphabet are ignored.
func (b Buckets) Letters() []string {
	var out []string
	for _, l := range Alphabet {
		if len(b[l]) > 0 {
			out = append(out, l)
		}
	}
	return out
}

// Count returns the total number of entries across all letters.
func (b Buckets) Count() int {
	n := 0
	for _, entries := range b {
		n += len(entries)
	}
	return n
}

// Clone returns a deep copy of the buckets, preserving empty buckets.
func (b Buckets) Clone() Buckets {
	if b == nil {
		return nil
	}
	out := make(Buckets, len(b))
	for l, entries := range b {
		out[l] = slices.Clone(entries)
		if out[l] == nil {
			out[l] = []Entry{}
		}
	}
	return out
}

// List is a named ABC-List.
type List struct {
	Name    string  `json:"name" yaml:"name"`
	Buckets Buckets `json:"buckets" yaml:"buckets"`
}

// New creates an empty list after validating its name.
func New(name string) (List, error) {
	if err := errors.ValidateListName(name); err != nil {
		return List{}, err
	}
	return List{Name: name, Buckets: Buckets{}}, nil
}

// Letters returns the non-empty letters of the list in a–z order.
func (l List) Letters() []string { return l.Buckets.Letters() }

// Count returns the number of entries in the list.
func (l List) Count() int { return l.Buckets.Count() }

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	return List{Name: l.Name, Buckets: l.Buckets.Clone()}
}

// Entries returns the entries stored under letter (nil when absent).
func (l List) Entries(letter string) []Entry {
	return l.Buckets[letter]
}

// Add appends e to the bucket of letter. An empty letter is derived from
// the entry text with [LetterOf].
func (l List) Add(letter string, e Entry) (List, error) {
	if err := errors.ValidateWord(e.Text); err != nil {
		return l, err
	}
	letter, err := resolveLetter(letter, e.Text)
	if err != nil {
		return l, err
	}
	if e.Version == 0 {
		e.Version = 1
	}
	out := l.Clone()
	if out.Buckets == nil {
		out.Buckets = Buckets{}
	}
	out.Buckets[letter] = append(out.Buckets[letter], e)
	return out, nil
}

// Replace swaps the entry at index in letter's bucket for e. The stored
// version becomes the previous version plus one.
func (l List) Replace(letter string, index int, e Entry) (List, error) {
	if err := errors.ValidateWord(e.Text); err != nil {
		return l, err
	}
	letter, entries, err := l.bucket(letter, index)
	if err != nil {
		return l, err
	}
	e.Version = entries[index].Version + 1
	out := l.Clone()
	out.Buckets[letter][index] = e
	return out, nil
}

// Remove deletes the entry at index in letter's bucket. The bucket stays
// present (possibly empty) so callers can tell it was once used.
func (l List) Remove(letter string, index int) (List, error) {
	letter, _, err := l.bucket(letter, index)
	if err != nil {
		return l, err
	}
	out := l.Clone()
	out.Buckets[letter] = slices.Delete(out.Buckets[letter], index, index+1)
	return out, nil
}

// Find locates the first entry whose text equals text (case-insensitive).
func (l List) Find(text string) (letter string, index int, ok bool) {
	for _, lt := range Alphabet {
		for i, e := range l.Buckets[lt] {
			if strings.EqualFold(e.Text, text) {
				return lt, i, true
			}
		}
	}
	return "", -1, false
}

func (l List) bucket(letter string, index int) (string, []Entry, error) {
	lt, ok := NormalizeLetter(letter)
	if !ok {
		return "", nil, errors.New(errors.ErrCodeInvalidLetter, "not a letter a-z: %q", letter)
	}
	letter = lt
	entries := l.Buckets[letter]
	if index < 0 || index >= len(entries) {
		return "", nil, errors.New(errors.ErrCodeNotFound, "no entry %d under letter %q", index, letter)
	}
	return letter, entries, nil
}

func resolveLetter(letter, text string) (string, error) {
	if letter == "" {
		l, ok := LetterOf(text)
		if !ok {
			return "", errors.New(errors.ErrCodeInvalidLetter, "cannot derive a letter from %q", text)
		}
		return l, nil
	}
	l, ok := NormalizeLetter(letter)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidLetter, "not a letter a-z: %q", letter)
	}
	return l, nil
}

// NormalizeLetter folds s to one lowercase bucket letter. Accented letters
// fold to their base letter (Ä → a); ß folds to s.
func NormalizeLetter(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	r := []rune(s)
	if len(r) != 1 {
		return "", false
	}
	return foldRune(r[0])
}

// LetterOf returns the bucket letter for the first letter in text, skipping
// leading punctuation and digits.
func LetterOf(text string) (string, bool) {
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		return foldRune(r)
	}
	return "", false
}

func foldRune(r rune) (string, bool) {
	if r == 'ß' || r == 'ẞ' {
		return "s", true
	}
	base := []rune(norm.NFD.String(string(unicode.ToLower(r))))
	if len(base) == 0 || base[0] < 'a' || base[0] > 'z' {
		return "", false
	}
	return string(base[0]), true
}
