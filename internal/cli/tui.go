package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/abclisten/pkg/wordlist"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BrowseModel - Interactive letter/word browser
// =============================================================================

// BrowseModel is the bubbletea model for browsing an ABC-List. The letter
// strip moves with left/right, the word table with up/down.
type BrowseModel struct {
	List    wordlist.List
	Letters []string // letters holding at least one word
	Letter  int      // index into Letters
	Cursor  int      // index into the current letter's words
	Height  int
	Offset  int
	Now     func() time.Time
}

// NewBrowseModel creates a browser positioned on the first filled letter.
func NewBrowseModel(list wordlist.List) BrowseModel {
	return BrowseModel{
		List:    list,
		Letters: list.Letters(),
		Height:  15,
		Now:     time.Now,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Letter > 0 {
				m.Letter--
				m.Cursor, m.Offset = 0, 0
			}
		case "right", "l":
			if m.Letter < len(m.Letters)-1 {
				m.Letter++
				m.Cursor, m.Offset = 0, 0
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.entries())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		default:
			// Typing a letter jumps to its bucket.
			if l, ok := wordlist.NormalizeLetter(msg.String()); ok {
				for i, have := range m.Letters {
					if have == l {
						m.Letter, m.Cursor, m.Offset = i, 0, 0
					}
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// CurrentLetter returns the selected letter, or "" for an empty list.
func (m BrowseModel) CurrentLetter() string {
	if len(m.Letters) == 0 {
		return ""
	}
	return m.Letters[m.Letter]
}

func (m BrowseModel) entries() []wordlist.Entry {
	return m.List.Entries(m.CurrentLetter())
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.List.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ letter  ↑/↓ word  type a letter to jump  q quit"))
	b.WriteString("\n\n")

	if len(m.Letters) == 0 {
		b.WriteString(listDimStyle.Render("  (empty list)"))
		b.WriteString("\n")
		return b.String()
	}

	// Letter strip: every letter of the alphabet, filled ones bright.
	filled := make(map[string]bool, len(m.Letters))
	for _, l := range m.Letters {
		filled[l] = true
	}
	for _, l := range wordlist.Alphabet {
		up := strings.ToUpper(l)
		switch {
		case l == m.CurrentLetter():
			b.WriteString(listSelectedStyle.Render("[" + up + "]"))
		case filled[l]:
			b.WriteString(listNormalStyle.Render(" " + up + " "))
		default:
			b.WriteString(listDimStyle.Render(" " + up + " "))
		}
	}
	b.WriteString("\n\n")

	entries := m.entries()
	end := m.Offset + m.Height
	if end > len(entries) {
		end = len(entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		added := "—"
		if e.Timestamp != nil {
			added = formatRelativeTime(time.UnixMilli(*e.Timestamp), m.Now())
		}
		rows = append(rows, []string{cursor, e.Text, e.Explanation, fmt.Sprintf("v%d", e.Version), added})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Word", "Explanation", "Ver", "Added").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			isCurrent := m.Offset+row == m.Cursor
			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				if col < 2 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorGray)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s [%d/%d] · %d words total",
		strings.ToUpper(m.CurrentLetter()), m.Cursor+1, len(entries), m.List.Count())))

	return b.String()
}

// runBrowser runs the browser on the command's streams.
func runBrowser(cmd *cobra.Command, list wordlist.List) error {
	p := tea.NewProgram(NewBrowseModel(list),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithContext(cmd.Context()),
	)
	_, err := p.Run()
	return err
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
