package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/abclisten/pkg/wordlist"
)

func browseList(t *testing.T) wordlist.List {
	t.Helper()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l, _ := wordlist.New("Tiere")
	for _, w := range []string{"Affe", "Ameise", "Bär", "Zebra"} {
		var err error
		if l, err = l.Add("", wordlist.NewEntry(w, "", at)); err != nil {
			t.Fatal(err)
		}
	}
	return l
}

func press(m BrowseModel, keys ...tea.KeyMsg) BrowseModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(BrowseModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseModelNavigation(t *testing.T) {
	m := NewBrowseModel(browseList(t))
	if m.CurrentLetter() != "a" {
		t.Fatalf("start letter = %q, want a", m.CurrentLetter())
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1 (clamped to bucket size)", m.Cursor)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.CurrentLetter() != "b" || m.Cursor != 0 {
		t.Errorf("after right: letter %q cursor %d", m.CurrentLetter(), m.Cursor)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if m.CurrentLetter() != "z" {
		t.Errorf("right past the end: letter %q, want z", m.CurrentLetter())
	}

	m = press(m, runes("b"))
	if m.CurrentLetter() != "b" {
		t.Errorf("jump: letter %q, want b", m.CurrentLetter())
	}

	// Letters without words are not selectable.
	m = press(m, runes("x"))
	if m.CurrentLetter() != "b" {
		t.Errorf("jump to empty letter moved to %q", m.CurrentLetter())
	}
}

func TestBrowseModelQuit(t *testing.T) {
	m := NewBrowseModel(browseList(t))
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestBrowseModelView(t *testing.T) {
	m := NewBrowseModel(browseList(t))
	m.Now = func() time.Time { return time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC) }

	view := m.View()
	for _, want := range []string{"Tiere", "[A]", "Affe", "Ameise", "2h ago", "4 words total"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Zebra") {
		t.Error("view shows words of another letter")
	}

	empty, _ := wordlist.New("Leer")
	if view := NewBrowseModel(empty).View(); !strings.Contains(view, "(empty list)") {
		t.Errorf("empty view:\n%s", view)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{30 * 24 * time.Hour, "Feb 8, 2025"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("formatRelativeTime(-%s) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}
