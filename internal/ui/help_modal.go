package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModal represents the help/keyboard shortcuts modal
type HelpModal struct {
	Modal // Embed base modal
}

// NewHelpModal creates a new HelpModal instance
func NewHelpModal() HelpModal {
	return HelpModal{
		Modal: NewModal("", 80, 30), // Will be sized dynamically
	}
}

// SetSize updates the modal size based on terminal dimensions
func (m *HelpModal) SetSize(width, height int) {
	m.fitSize(width, height, 0.75, 50, 20)
}

// Update handles input for the help modal
func (m HelpModal) Update(msg tea.Msg) (HelpModal, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "?":
			m.Hide()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	return m, nil
}

// View renders the help modal
func (m HelpModal) View(theme StyleTheme) string {
	if !m.visible {
		return ""
	}

	var content strings.Builder
	inner := m.width - 4

	titleStyle := lipgloss.NewStyle().
		Foreground(theme.Cyan).
		Bold(true)
	content.WriteString(titleStyle.Render(centerLine("ATAJOS DE TECLADO", inner)))
	content.WriteString("\n\n")

	introStyle := lipgloss.NewStyle().
		Foreground(theme.Gray).
		Italic(true)
	content.WriteString(introStyle.Render(centerLine("Pulsa : para el modo comando (:write, :history, :theme...)", inner)))
	content.WriteString("\n\n")

	sectionStyle := lipgloss.NewStyle().
		Foreground(theme.Cyan).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(theme.Purple).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(theme.White)

	// Helper function to format a command row
	formatCmd := func(key, desc string) string {
		keyCol := keyStyle.Render(key)
		descCol := descStyle.Render(desc)
		keyPadded := keyCol + strings.Repeat(" ", max(0, 12-lipgloss.Width(key)))
		return "  " + keyPadded + descCol
	}

	// Two columns when the modal is wide enough
	format2Col := func(key1, desc1, key2, desc2 string) string {
		if m.width > 70 {
			col1 := formatCmd(key1, desc1)
			spacing := max(2, (m.width/2)-lipgloss.Width(col1))
			return col1 + strings.Repeat(" ", spacing) + formatCmd(key2, desc2)
		}
		return formatCmd(key1, desc1) + "\n" + formatCmd(key2, desc2)
	}

	sectionHeader := func(title string) string {
		headerText := "── " + title + " "
		remainingWidth := max(m.width-8-lipgloss.Width(headerText), 0)
		return sectionStyle.Render(headerText + strings.Repeat("─", remainingWidth))
	}

	content.WriteString(sectionHeader("FEED"))
	content.WriteString("\n")
	content.WriteString(format2Col("j/↓", "Siguiente cita", "g", "Primera cita"))
	content.WriteString("\n")
	content.WriteString(format2Col("k/↑", "Cita anterior", "G", "Última cita"))
	content.WriteString("\n")
	content.WriteString(format2Col("rueda", "Desplazar", "y", "Copiar cita"))
	content.WriteString("\n\n")

	content.WriteString(sectionHeader("FILTROS"))
	content.WriteString("\n")
	content.WriteString(format2Col("tab", "Siguiente categoría", "/", "Buscar"))
	content.WriteString("\n")
	content.WriteString(format2Col("0", "Todo", "1-3", "Categoría"))
	content.WriteString("\n\n")

	content.WriteString(sectionHeader("SHORTS"))
	content.WriteString("\n")
	content.WriteString(format2Col("enter/c", "Crear short", "r", "Reintentar"))
	content.WriteString("\n")
	content.WriteString(format2Col("s", "Guardar imagen", "o", "Abrir imagen"))
	content.WriteString("\n")
	content.WriteString(format2Col("H", "Historial", "esc", "Cerrar"))
	content.WriteString("\n\n")

	content.WriteString(sectionHeader("MODO COMANDO (:)"))
	content.WriteString("\n")
	content.WriteString(format2Col(":category <c>", "Filtrar", ":search <q>", "Buscar"))
	content.WriteString("\n")
	content.WriteString(format2Col(":goto <n|id>", "Ir a cita", ":write [dir]", "Guardar"))
	content.WriteString("\n")
	content.WriteString(format2Col(":yank path", "Copiar ruta", ":theme", "Cambiar tema"))
	content.WriteString("\n")
	content.WriteString(format2Col(":help", "Esta ayuda", ":quit", "Salir"))
	content.WriteString("\n\n")

	footerStyle := lipgloss.NewStyle().
		Foreground(theme.Gray).
		Italic(true)
	content.WriteString(footerStyle.Render(centerLine("Pulsa ESC o ? para cerrar", inner)))

	return m.frame(content.String(), theme)
}

// ViewWithOverlay renders the modal over a cleared background
func (m HelpModal) ViewWithOverlay(backgroundView string, width, height int, theme StyleTheme) string {
	if !m.visible {
		return backgroundView
	}
	return overlayCenter(backgroundView, m.View(theme), width, height)
}
