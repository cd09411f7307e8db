package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nickpending/psyquotes/internal/catalog"
	"github.com/nickpending/psyquotes/internal/shorts"
)

// ShortModal shows one generation session: progress, failure or the finished short
type ShortModal struct {
	Modal
	spinner spinner.Model
	session shorts.Session

	// Rendering of the completed image is cached per attempt
	rendered  uint64
	thumbnail string
	thumbErr  error
	caption   string

	savedPath string
}

// NewShortModal creates a new ShortModal instance
func NewShortModal() ShortModal {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	return ShortModal{
		Modal:   NewModal("CREAR SHORT", 70, 24),
		spinner: s,
	}
}

// SetSize updates the modal size based on terminal dimensions
func (m *ShortModal) SetSize(width, height int) {
	m.fitSize(width, height, 0.8, 40, 16)
}

// Open shows the modal for a new session and starts the spinner
func (m *ShortModal) Open(session shorts.Session, theme StyleTheme) tea.Cmd {
	m.Show()
	m.savedPath = ""
	m.SetSession(session, theme)
	return m.spinner.Tick
}

// Close hides the modal and drops everything cached for the session
func (m *ShortModal) Close() {
	m.Hide()
	m.session = shorts.Session{}
	m.rendered = 0
	m.thumbnail = ""
	m.thumbErr = nil
	m.caption = ""
	m.savedPath = ""
}

// SetSession syncs the modal with the controller's snapshot
func (m *ShortModal) SetSession(session shorts.Session, theme StyleTheme) {
	if session.Attempt != m.session.Attempt {
		m.savedPath = ""
	}
	m.session = session

	if session.Status == shorts.StatusCompleted && session.Attempt != m.rendered {
		m.renderResult(theme)
	}
}

// Refresh re-renders the cached result, after a resize or theme change
func (m *ShortModal) Refresh(theme StyleTheme) {
	m.rendered = 0
	m.SetSession(m.session, theme)
}

// SetSaved records where the current result was written
func (m *ShortModal) SetSaved(path string) {
	m.savedPath = path
}

// SavedPath returns the file the current result was saved to, if any
func (m ShortModal) SavedPath() string {
	return m.savedPath
}

// Session returns the snapshot the modal is showing
func (m ShortModal) Session() shorts.Session {
	return m.session
}

// Update advances the spinner while a request is in flight
func (m ShortModal) Update(msg tea.Msg) (ShortModal, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return m, nil
	}
	if !m.visible || m.session.Status != shorts.StatusGenerating {
		// Let the tick chain die; Open restarts it
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *ShortModal) thumbnailSize() (cols, rows int) {
	rows = min(m.height-6, 22)
	rows = max(rows, 4)
	// Half blocks are roughly square, so a 9:16 image needs 9 columns per 8 rows
	cols = max(rows*9/8, 4)
	return cols, rows
}

func (m *ShortModal) renderResult(theme StyleTheme) {
	m.rendered = m.session.Attempt
	m.thumbnail, m.thumbErr = "", nil
	m.caption = ""

	if m.session.Result != nil {
		cols, rows := m.thumbnailSize()
		m.thumbnail, m.thumbErr = renderThumbnail(m.session.Result.Data, cols, rows)
	}
	if m.session.Quote != nil {
		m.caption = renderCaption(*m.session.Quote, m.captionWidth(), theme)
	}
}

func (m *ShortModal) captionWidth() int {
	cols, _ := m.thumbnailSize()
	return max(m.width-cols-10, 20)
}

// renderCaption lays the quote out as markdown: blockquote, author, book
func renderCaption(q catalog.Quote, width int, theme StyleTheme) string {
	md := fmt.Sprintf("> %s\n\n**%s**\n\n*%s*\n", q.Text, q.Author, q.Book)

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(theme.ToGlamourStyle(q.Category.Palette().Accent)),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, err := r.Render(md); err == nil {
			return strings.Trim(out, "\n")
		}
	}

	// Plain fallback
	return wrapText("“"+q.Text+"”", width) + "\n\n" + q.Author + "\n" + q.Book
}

// View renders the modal for the current status
func (m ShortModal) View(theme StyleTheme) string {
	if !m.visible {
		return ""
	}

	var body string
	switch m.session.Status {
	case shorts.StatusGenerating:
		body = m.viewGenerating(theme)
	case shorts.StatusError:
		body = m.viewError(theme)
	case shorts.StatusCompleted:
		body = m.viewCompleted(theme)
	default:
		body = theme.MutedStyle().Render("Sin contenido.")
	}

	return m.frame(body, theme)
}

// ViewWithOverlay renders the modal over a cleared background
func (m ShortModal) ViewWithOverlay(backgroundView string, width, height int, theme StyleTheme) string {
	if !m.visible {
		return backgroundView
	}
	return overlayCenter(backgroundView, m.View(theme), width, height)
}

func (m ShortModal) quoteLine(theme StyleTheme) string {
	if m.session.Quote == nil {
		return ""
	}
	q := m.session.Quote
	return theme.AccentStyle(q.Category).Render(q.Category.Label()) +
		theme.MutedStyle().Render("  ·  "+q.Author)
}

func (m ShortModal) viewGenerating(theme StyleTheme) string {
	inner := m.width - 4
	var b strings.Builder
	b.WriteString(centerLine(m.quoteLine(theme), inner))
	b.WriteString("\n\n\n")
	line := m.spinner.View() + " " + theme.TextStyle().Render(m.session.ProgressMessage)
	b.WriteString(centerLine(line, inner))
	b.WriteString("\n\n\n")
	b.WriteString(centerLine(theme.MutedStyle().Render("esc: cancelar"), inner))
	return b.String()
}

func (m ShortModal) viewError(theme StyleTheme) string {
	inner := m.width - 4
	var b strings.Builder
	b.WriteString(centerLine(m.quoteLine(theme), inner))
	b.WriteString("\n\n\n")
	b.WriteString(centerLine(theme.ErrorStyle().Render("✗ "+shorts.ErrorMessage), inner))
	b.WriteString("\n\n\n")
	b.WriteString(centerLine(theme.MutedStyle().Render("r: reintentar  esc: cerrar"), inner))
	return b.String()
}

func (m ShortModal) viewCompleted(theme StyleTheme) string {
	thumb := m.thumbnail
	if m.thumbErr != nil || thumb == "" {
		cols, rows := m.thumbnailSize()
		thumb = lipgloss.NewStyle().
			Width(cols).
			Height(rows).
			Foreground(theme.Gray).
			Render("(vista previa no disponible)")
	}

	var info strings.Builder
	info.WriteString(m.caption)
	info.WriteString("\n\n")

	if img := m.session.Result; img != nil {
		meta := fmt.Sprintf("%s · %s · %s",
			strings.TrimPrefix(img.Extension(), "."),
			humanize.Bytes(uint64(len(img.Data))),
			m.session.Elapsed.Round(100*time.Millisecond))
		info.WriteString(theme.MutedStyle().Render(meta))
		info.WriteString("\n")
	}
	if m.savedPath != "" {
		info.WriteString(theme.SuccessStyle().Render("✓ " + m.savedPath))
		info.WriteString("\n")
	}
	info.WriteString("\n")

	keyStyle := lipgloss.NewStyle().Foreground(theme.Purple).Bold(true)
	actions := []struct{ key, label string }{
		{"s", "guardar"},
		{"o", "abrir"},
		{"y", "copiar cita"},
		{"r", "regenerar"},
		{"esc", "cerrar"},
	}
	for _, a := range actions {
		info.WriteString(keyStyle.Render(a.key))
		info.WriteString(" " + theme.TextStyle().Render(a.label) + "\n")
	}

	cols, _ := m.thumbnailSize()
	if m.width-4 < cols+24 {
		// Narrow terminal: stack
		return thumb + "\n\n" + info.String()
	}

	infoStyle := lipgloss.NewStyle().
		Width(m.captionWidth()).
		PaddingLeft(3)
	return lipgloss.JoinHorizontal(lipgloss.Top, thumb, infoStyle.Render(info.String()))
}
