package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nickpending/psyquotes/internal/catalog"
	"github.com/nickpending/psyquotes/internal/db"
)

// segment is a run of text drawn with one style on a card line
type segment struct {
	text  string
	style lipgloss.Style
}

// RenderFeed renders the header, the card feed and the status bar
func RenderFeed(m Model) string {
	if m.width == 0 {
		return "Cargando..."
	}

	theme := m.theme

	sections := []string{
		renderHeader(m, theme),
		renderTabs(m, theme),
		renderSearchLine(m, theme),
		renderCards(m, theme),
		renderStatusBar(m, theme),
	}
	return strings.Join(sections, "\n")
}

func renderHeader(m Model, theme StyleTheme) string {
	title := " " + strings.ToUpper(catalog.AppName)

	right := fmt.Sprintf("%d citas  ◆ %s ", len(m.filtered), time.Now().Format("15:04"))
	spacing := m.width - lipgloss.Width(title) - lipgloss.Width(right)
	if spacing < 2 {
		spacing = 2
	}

	content := title + strings.Repeat(" ", spacing) + right
	return RenderWithGradientBackground(content, m.width, string(theme.Cyan), string(theme.VibrantPurple))
}

func renderTabs(m Model, theme StyleTheme) string {
	tabs := append([]catalog.Category{catalog.All}, catalog.Categories()...)

	parts := make([]string, 0, len(tabs))
	for i, c := range tabs {
		label := fmt.Sprintf("%d %s", i, c.ShortLabel())
		if c == m.category {
			style := theme.ActiveTabStyle()
			if c != catalog.All {
				style = style.Background(lipgloss.Color(c.Palette().Accent))
			}
			parts = append(parts, style.Render(label))
		} else {
			parts = append(parts, theme.TabStyle().Render(label))
		}
	}

	line := " " + strings.Join(parts, " ")
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func renderSearchLine(m Model, theme StyleTheme) string {
	var line string
	switch {
	case m.searching:
		line = m.search.View()
	case m.query != "":
		line = theme.SelectedStyle().Render("/ "+m.query) +
			theme.MutedStyle().Render(fmt.Sprintf("  (%d resultados, esc para limpiar)", len(m.filtered)))
	default:
		line = theme.MutedStyle().Render("/ buscar por texto o autor")
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(" " + line)
}

// renderCards draws every card at full feed height and shows the slice at the pager offset
func renderCards(m Model, theme StyleTheme) string {
	height := m.feedHeight()
	if height == 0 {
		return ""
	}

	if len(m.filtered) == 0 {
		return renderEmpty(m.width, height, theme)
	}

	cards := make([]string, len(m.filtered))
	for i, q := range m.filtered {
		saved, ok := m.saved[q.ID]
		var marker *db.SavedShort
		if ok {
			marker = &saved
		}
		cards[i] = renderCard(q, i, len(m.filtered), m.width, height, theme, marker)
	}

	vp := viewport.New(m.width, height)
	vp.SetContent(strings.Join(cards, "\n"))
	vp.SetYOffset(m.pager.Offset())
	return vp.View()
}

func renderEmpty(width, height int, theme StyleTheme) string {
	msg := theme.MutedStyle().Render("No se encontraron citas.")
	hint := theme.MutedStyle().Italic(true).Render("esc: limpiar filtros")
	body := centerLine(msg, width) + "\n\n" + centerLine(hint, width)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxHeight(height).
		PaddingTop(max(height/2-2, 0)).
		Render(body)
}

// renderCard draws one quote filling exactly width x height, over the category gradient
func renderCard(q catalog.Quote, index, total, width, height int, theme StyleTheme, saved *db.SavedShort) string {
	palette := q.Category.Palette()
	accent := lipgloss.Color(palette.Accent)

	text := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	muted := lipgloss.NewStyle().Foreground(theme.Gray)
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	textWidth := min(max(width-8, 10), 64)

	var body [][]segment
	body = append(body, []segment{{"● " + strings.ToUpper(q.Category.Label()), accentStyle}})
	body = append(body, nil)
	for _, line := range strings.Split(wrapText("“"+q.Text+"”", textWidth), "\n") {
		body = append(body, []segment{{line, text}})
	}
	body = append(body, nil)
	body = append(body, []segment{{"— " + q.Author, accentStyle}})
	body = append(body, []segment{{q.Book, muted.Italic(true)}})
	body = append(body, nil)
	if saved != nil {
		body = append(body, []segment{{"✓ Short guardado " + humanize.Time(saved.CreatedAt), lipgloss.NewStyle().Foreground(theme.Green)}})
	}
	body = append(body, []segment{
		{"enter ", lipgloss.NewStyle().Foreground(theme.Purple).Bold(true)},
		{"Crear Short con IA", text},
	})

	footer := []segment{
		{fmt.Sprintf("◇ %s   %d / %d", q.VisualID, index+1, total), muted},
	}

	lines := make([][]segment, height)
	top := max((height-len(body))/2, 0)
	for i, l := range body {
		if top+i < height-1 {
			lines[top+i] = l
		}
	}
	if height > 1 {
		lines[height-1] = footer
	}

	out := make([]string, height)
	for row := range lines {
		pos := float64(row) / float64(max(height-1, 1))
		bg := lipgloss.Color(InterpolateColor(palette.GradientTop, palette.GradientBase, pos))
		out[row] = paintLine(lines[row], width, bg)
	}
	return strings.Join(out, "\n")
}

// paintLine centers segments on a full-width line with background bg
func paintLine(segs []segment, width int, bg lipgloss.Color) string {
	fill := lipgloss.NewStyle().Background(bg)

	used := 0
	for _, s := range segs {
		used += lipgloss.Width(s.text)
	}
	if used > width {
		// Too narrow to center; truncate the run
		return fill.Render(truncateString(joinSegments(segs), width))
	}

	left := (width - used) / 2
	var b strings.Builder
	b.WriteString(fill.Render(strings.Repeat(" ", left)))
	for _, s := range segs {
		b.WriteString(s.style.Background(bg).Render(s.text))
	}
	b.WriteString(fill.Render(strings.Repeat(" ", width-used-left)))
	return b.String()
}

func joinSegments(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.text)
	}
	return b.String()
}

func renderStatusBar(m Model, theme StyleTheme) string {
	if m.commandMode.IsActive() {
		return m.commandMode.View(theme)
	}

	statusStyle := lipgloss.NewStyle().
		Background(theme.DarkGray).
		Foreground(theme.Gray).
		Width(m.width).
		MaxWidth(m.width).
		Padding(0, 1)

	var statusText string
	if m.statusMessage != "" {
		statusText = lipgloss.NewStyle().
			Foreground(theme.Cyan).
			Background(theme.DarkGray).
			Bold(true).
			Render(m.statusMessage)
	} else {
		statusText = "j/k:citas  enter:crear short  tab:categoría  /:buscar  y:copiar  H:historial  ?:ayuda  q:salir"
	}
	return statusStyle.Render(statusText)
}
