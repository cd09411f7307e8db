package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nickpending/psyquotes/internal/catalog"
	"github.com/nickpending/psyquotes/internal/db"
	"github.com/nickpending/psyquotes/internal/ui/operations"
)

// historyLimit caps how many saved shorts the modal lists
const historyLimit = 50

// HistoryModal lists previously saved shorts, newest first
type HistoryModal struct {
	Modal
	shorts   []db.SavedShort
	cursor   int
	err      error
	loading  bool
	viewport viewport.Model
}

// NewHistoryModal creates a new HistoryModal instance
func NewHistoryModal() HistoryModal {
	return HistoryModal{
		Modal:    NewModal("HISTORIAL", 60, 20),
		viewport: viewport.New(0, 0),
	}
}

// SetSize updates the modal size based on terminal dimensions
func (m *HistoryModal) SetSize(width, height int) {
	m.fitSize(width, height, 0.7, 50, 12)
	m.viewport.Width = m.width - 4
	// Title, blank line, footer
	m.viewport.Height = max(m.height-6, 1)
}

// Open shows the modal and starts loading the history
func (m *HistoryModal) Open() tea.Cmd {
	m.Show()
	m.loading = true
	m.err = nil
	return operations.LoadHistory(historyLimit)
}

// SetShorts stores loaded history
func (m *HistoryModal) SetShorts(shorts []db.SavedShort, err error) {
	m.loading = false
	m.shorts = shorts
	m.err = err
	if m.cursor >= len(m.shorts) {
		m.cursor = max(len(m.shorts)-1, 0)
	}
}

// Selected returns the short under the cursor
func (m HistoryModal) Selected() (db.SavedShort, bool) {
	if m.cursor < 0 || m.cursor >= len(m.shorts) {
		return db.SavedShort{}, false
	}
	return m.shorts[m.cursor], true
}

// Update handles input for the history modal
func (m HistoryModal) Update(msg tea.Msg) (HistoryModal, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "q", "H":
		m.Hide()
	case "j", "down":
		if m.cursor < len(m.shorts)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = max(len(m.shorts)-1, 0)
	case "enter", "o":
		if s, ok := m.Selected(); ok {
			return m, operations.OpenFile(s.Path)
		}
	case "y":
		if s, ok := m.Selected(); ok {
			return m, operations.CopyText("path", s.Path)
		}
	}
	return m, nil
}

func (m HistoryModal) renderRows(theme StyleTheme) []string {
	width := m.width - 4
	rows := make([]string, 0, len(m.shorts))
	for i, s := range m.shorts {
		accent := theme.MutedStyle()
		if c, err := catalog.ParseCategory(s.Category); err == nil && c != catalog.All {
			accent = theme.AccentStyle(c)
		}

		when := humanize.Time(s.CreatedAt)
		size := humanize.Bytes(uint64(s.Bytes))
		left := fmt.Sprintf("%-6s %s", s.QuoteID, truncateString(s.Author, 22))
		right := fmt.Sprintf("%s  %s", size, when)
		gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)

		line := accent.Render(left) + strings.Repeat(" ", gap) + theme.MutedStyle().Render(right)
		file := "  " + theme.MutedStyle().Render(truncateString(filepath.Base(s.Path), width-2))

		prefix := "  "
		if i == m.cursor {
			prefix = theme.SelectedStyle().Render("▸ ")
		}
		rows = append(rows, prefix+line, file)
	}
	return rows
}

// View renders the history modal
func (m HistoryModal) View(theme StyleTheme) string {
	if !m.visible {
		return ""
	}

	var body string
	switch {
	case m.loading:
		body = theme.MutedStyle().Render("Cargando...")
	case m.err != nil:
		body = theme.ErrorStyle().Render("No se pudo leer el historial: " + m.err.Error())
	case len(m.shorts) == 0:
		body = theme.MutedStyle().Render("Todavía no has guardado ningún short.")
	default:
		rows := m.renderRows(theme)
		vp := m.viewport
		vp.SetContent(strings.Join(rows, "\n"))
		// Two lines per entry; keep the cursor in view
		top := m.cursor * 2
		if top < vp.YOffset {
			vp.SetYOffset(top)
		} else if top+2 > vp.YOffset+vp.Height {
			vp.SetYOffset(top + 2 - vp.Height)
		}
		body = vp.View()
	}

	footer := theme.MutedStyle().Italic(true).
		Render(centerLine("enter: abrir  y: copiar ruta  esc: cerrar", m.width-4))
	return m.frame(body+"\n"+footer, theme)
}

// ViewWithOverlay renders the modal over a cleared background
func (m HistoryModal) ViewWithOverlay(backgroundView string, width, height int, theme StyleTheme) string {
	if !m.visible {
		return backgroundView
	}
	return overlayCenter(backgroundView, m.View(theme), width, height)
}
