package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Modal represents a generic modal overlay component
type Modal struct {
	title   string
	width   int
	height  int
	content string
	visible bool
}

// NewModal creates a new Modal instance
func NewModal(title string, width, height int) Modal {
	return Modal{
		title:  title,
		width:  width,
		height: height,
	}
}

// Show makes the modal visible
func (m *Modal) Show() {
	m.visible = true
}

// Hide makes the modal invisible
func (m *Modal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is currently visible
func (m Modal) IsVisible() bool {
	return m.visible
}

// SetContent updates the modal content
func (m *Modal) SetContent(content string) {
	m.content = content
}

// fitSize sizes the modal to a fraction of the terminal, within bounds
func (m *Modal) fitSize(termWidth, termHeight int, widthRatio float64, minWidth, minHeight int) {
	width := int(float64(termWidth) * widthRatio)
	height := termHeight - 8

	width = max(width, minWidth)
	height = max(height, minHeight)
	if width > termWidth-4 && termWidth > 4 {
		width = termWidth - 4
	}

	m.width = width
	m.height = height
}

// frame wraps body in the modal border, with the title centered on top
func (m Modal) frame(body string, theme StyleTheme) string {
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Cyan).
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height + 2).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Cyan)

	var full strings.Builder
	if m.title != "" {
		full.WriteString(titleStyle.Render(centerLine(m.title, m.width-4)))
		full.WriteString("\n\n")
	}
	full.WriteString(body)

	return modalStyle.Render(full.String())
}

// View renders the modal if visible
func (m Modal) View(theme StyleTheme) string {
	if !m.visible {
		return ""
	}
	return m.frame(m.content, theme)
}

// ViewWithOverlay renders the modal over a cleared background
func (m Modal) ViewWithOverlay(backgroundView string, termWidth, termHeight int, theme StyleTheme) string {
	if !m.visible {
		return backgroundView
	}
	return overlayCenter(backgroundView, m.View(theme), termWidth, termHeight)
}
