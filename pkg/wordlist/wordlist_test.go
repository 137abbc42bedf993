package wordlist

import (
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/abclisten/pkg/errors"
)

func mustAdd(t *testing.T, l List, letter, text string) List {
	t.Helper()
	out, err := l.Add(letter, Entry{Text: text})
	if err != nil {
		t.Fatalf("Add(%q, %q): %v", letter, text, err)
	}
	return out
}

func TestNew(t *testing.T) {
	l, err := New("Biologie")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.Name != "Biologie" || l.Buckets == nil || l.Count() != 0 {
		t.Errorf("New() = %+v", l)
	}

	if _, err := New(""); !errors.Is(err, errors.ErrCodeInvalidListName) {
		t.Errorf("New(\"\") error = %v, want INVALID_LIST_NAME", err)
	}
}

func TestAddDerivesLetter(t *testing.T) {
	l, _ := New("test")
	l = mustAdd(t, l, "", "Äpfel")
	l = mustAdd(t, l, "", "„Zebra“")
	l = mustAdd(t, l, "B", "Baum")

	if got := l.Letters(); !slices.Equal(got, []string{"a", "b", "z"}) {
		t.Errorf("Letters() = %v, want [a b z]", got)
	}
	if v := l.Entries("a")[0].Version; v != 1 {
		t.Errorf("Version = %d, want 1", v)
	}
}

func TestAddDoesNotMutate(t *testing.T) {
	l, _ := New("test")
	l = mustAdd(t, l, "a", "Apfel")
	l2 := mustAdd(t, l, "a", "Ameise")

	if len(l.Entries("a")) != 1 {
		t.Errorf("original list mutated: %d entries", len(l.Entries("a")))
	}
	if len(l2.Entries("a")) != 2 {
		t.Errorf("new list has %d entries, want 2", len(l2.Entries("a")))
	}
}

func TestAddRejects(t *testing.T) {
	l, _ := New("test")
	tests := []struct {
		name   string
		letter string
		text   string
		code   errors.Code
	}{
		{"empty text", "a", "", errors.ErrCodeInvalidWord},
		{"bad letter", "1", "eins", errors.ErrCodeInvalidLetter},
		{"underivable", "", "123", errors.ErrCodeInvalidLetter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Add(tt.letter, Entry{Text: tt.text})
			if !errors.Is(err, tt.code) {
				t.Errorf("Add() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReplaceBumpsVersion(t *testing.T) {
	l, _ := New("test")
	l = mustAdd(t, l, "a", "Apfel")

	l2, err := l.Replace("A", 0, Entry{Text: "Apfelbaum", Explanation: "tree"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got := l2.Entries("a")[0]
	if got.Text != "Apfelbaum" || got.Version != 2 {
		t.Errorf("Replace() entry = %+v, want Apfelbaum v2", got)
	}
	if l.Entries("a")[0].Text != "Apfel" {
		t.Error("Replace mutated the original list")
	}

	if _, err := l.Replace("a", 5, Entry{Text: "x"}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Replace out of range error = %v", err)
	}
}

func TestRemoveKeepsBucket(t *testing.T) {
	l, _ := New("test")
	l = mustAdd(t, l, "a", "Apfel")

	l2, err := l.Remove("a", 0)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	entries, present := l2.Buckets["a"]
	if !present || len(entries) != 0 {
		t.Errorf("bucket a present=%v len=%d, want present and empty", present, len(entries))
	}
	if len(l2.Letters()) != 0 {
		t.Errorf("Letters() = %v, want none", l2.Letters())
	}
}

func TestFind(t *testing.T) {
	l, _ := New("test")
	l = mustAdd(t, l, "b", "Baum")
	l = mustAdd(t, l, "b", "Birne")

	letter, idx, ok := l.Find("birne")
	if !ok || letter != "b" || idx != 1 {
		t.Errorf("Find() = %q, %d, %v", letter, idx, ok)
	}
	if _, _, ok := l.Find("Kiwi"); ok {
		t.Error("Find(Kiwi) found a missing word")
	}
}

func TestNormalizeLetter(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"a", "a", true},
		{"Q", "q", true},
		{"Ü", "u", true},
		{"é", "e", true},
		{"ß", "s", true},
		{" b ", "b", true},
		{"", "", false},
		{"ab", "", false},
		{"7", "", false},
		{"ж", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeLetter(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeLetter(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewEntry(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	e := NewEntry("  Haus ", " house ", at)
	if e.Text != "Haus" || e.Explanation != "house" || e.Version != 1 {
		t.Errorf("NewEntry() = %+v", e)
	}
	if e.Timestamp == nil || *e.Timestamp != 1700000000000 {
		t.Errorf("Timestamp = %v", e.Timestamp)
	}
}

func TestBucketsLettersIgnoresForeignKeys(t *testing.T) {
	b := Buckets{"a": {{Text: "x"}}, "ä": {{Text: "y"}}, "A": {{Text: "z"}}}
	if got := b.Letters(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Letters() = %v, want [a]", got)
	}
	if b.Count() != 3 {
		t.Errorf("Count() = %d, want 3", b.Count())
	}
}

func TestEditFoldsLetter(t *testing.T) {
	l, _ := New("test")
	l = mustAdd(t, l, "ä", "Ärger")
	l = mustAdd(t, l, "", "Affe")

	tests := []struct {
		letter string
		want   string
	}{
		{"ä", "a"},
		{"Ä", "a"},
		{" a ", "a"},
		{"A", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.letter, func(t *testing.T) {
			l2, err := l.Replace(tt.letter, 1, Entry{Text: "Ameise"})
			if err != nil {
				t.Fatalf("Replace(%q): %v", tt.letter, err)
			}
			if got := l2.Entries(tt.want)[1].Text; got != "Ameise" {
				t.Errorf("Replace(%q) stored %q", tt.letter, got)
			}
			l3, err := l.Remove(tt.letter, 0)
			if err != nil {
				t.Fatalf("Remove(%q): %v", tt.letter, err)
			}
			if got := l3.Entries(tt.want); len(got) != 1 || got[0].Text != "Affe" {
				t.Errorf("Remove(%q) left %+v", tt.letter, got)
			}
		})
	}

	for _, bad := range []string{"", "ab", "1", "-"} {
		if _, err := l.Remove(bad, 0); !errors.Is(err, errors.ErrCodeInvalidLetter) {
			t.Errorf("Remove(%q) error = %v, want INVALID_LETTER", bad, err)
		}
	}
}
