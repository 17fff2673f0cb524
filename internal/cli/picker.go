package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// themeEntry is one row of the interactive theme list.
type themeEntry struct {
	Name        string
	Display     string
	Mode        string
	Description string
}

// ThemeListModel is the bubbletea model for interactive theme selection.
type ThemeListModel struct {
	Themes   []themeEntry
	Cursor   int
	Selected *themeEntry
	Height   int
	Offset   int
}

// NewThemeListModel creates a new theme list model.
func NewThemeListModel(themes []themeEntry) ThemeListModel {
	return ThemeListModel{
		Themes: themes,
		Height: 15,
	}
}

func (m ThemeListModel) Init() tea.Cmd {
	return nil
}

func (m ThemeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Themes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Themes[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ThemeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Theme"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Themes) {
		end = len(m.Themes)
	}

	for i := m.Offset; i < end; i++ {
		t := m.Themes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		display := t.Display
		if display == "" {
			display = t.Name
		}
		line := fmt.Sprintf("%s%-24s %-14s %s", cursor, display,
			listDimStyle.Render(t.Mode), listDimStyle.Render(t.Description))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Themes))))

	return b.String()
}
