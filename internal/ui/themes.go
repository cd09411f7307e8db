package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/nickpending/psyquotes/internal/catalog"
)

// StyleTheme defines the chrome colors of the TUI. Card colors come from the category palette.
type StyleTheme struct {
	Name          string
	Cyan          lipgloss.Color // Primary UI accent #00D9FF
	Purple        lipgloss.Color // Tags and metadata #E6CCFF
	VibrantPurple lipgloss.Color // Errors and gradient accent #9F4DFF
	Green         lipgloss.Color // Success/online indicators #00FF88
	Red           lipgloss.Color // High priority #FF0066
	Orange        lipgloss.Color // Medium priority #FF8800
	Gray          lipgloss.Color // Muted text/low priority #666666
	DarkGray      lipgloss.Color // Borders and backgrounds #333333
	White         lipgloss.Color // Main text #EEEEEE
}

// CleanCyberTheme provides the exact colors used in clean_cyber.go
var CleanCyberTheme = StyleTheme{
	Name:          "clean_cyber",
	Cyan:          lipgloss.Color("#00D9FF"),
	Purple:        lipgloss.Color("#E6CCFF"),
	VibrantPurple: lipgloss.Color("#9F4DFF"),
	Green:         lipgloss.Color("#00FF88"),
	Red:           lipgloss.Color("#FF0066"),
	Orange:        lipgloss.Color("#FF8800"),
	Gray:          lipgloss.Color("#666666"),
	DarkGray:      lipgloss.Color("#333333"),
	White:         lipgloss.Color("#EEEEEE"),
}

// MonokaiProTheme provides warm dark colors inspired by Monokai Pro
var MonokaiProTheme = StyleTheme{
	Name:          "monokai_pro",
	Cyan:          lipgloss.Color("#78DCE8"),
	Purple:        lipgloss.Color("#AB9DF2"),
	VibrantPurple: lipgloss.Color("#FF6188"),
	Green:         lipgloss.Color("#A9DC76"),
	Red:           lipgloss.Color("#FF6188"),
	Orange:        lipgloss.Color("#FC9867"),
	Gray:          lipgloss.Color("#727072"),
	DarkGray:      lipgloss.Color("#403E41"),
	White:         lipgloss.Color("#FCFCFA"),
}

// LightTheme provides a warm, natural color scheme distinct from cyber aesthetic
// Softer tones that still maintain readability on dark terminal backgrounds
var LightTheme = StyleTheme{
	Name:          "light",
	Cyan:          lipgloss.Color("#06B6D4"), // Soft cyan/turquoise (vs neon cyan)
	Purple:        lipgloss.Color("#8B5CF6"), // Deep violet (vs light lavender)
	VibrantPurple: lipgloss.Color("#EC4899"), // Rose pink accent (vs neon purple)
	Green:         lipgloss.Color("#22C55E"), // Grass green (vs electric green)
	Red:           lipgloss.Color("#F43F5E"), // Rose red (vs hot pink)
	Orange:        lipgloss.Color("#FB923C"), // Warm peach (vs bright orange)
	Gray:          lipgloss.Color("#64748B"), // Slate gray (vs neutral gray)
	DarkGray:      lipgloss.Color("#475569"), // Dark slate (vs charcoal)
	White:         lipgloss.Color("#F1F5F9"), // Slate white (vs stark white)
}

// AvailableThemes is a list of all available themes for cycling
var AvailableThemes = []StyleTheme{
	CleanCyberTheme,
	MonokaiProTheme,
	LightTheme,
}

// ThemeByName returns the theme called name, or the default when unknown
func ThemeByName(name string) StyleTheme {
	for _, t := range AvailableThemes {
		if t.Name == name {
			return t
		}
	}
	return CleanCyberTheme
}

// NextTheme returns the theme after current, wrapping around
func NextTheme(current StyleTheme) StyleTheme {
	for i, t := range AvailableThemes {
		if t.Name == current.Name {
			return AvailableThemes[(i+1)%len(AvailableThemes)]
		}
	}
	return AvailableThemes[0]
}

func (t StyleTheme) BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.DarkGray)
}

func (t StyleTheme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(t.DarkGray).
		Foreground(t.Cyan).
		Bold(true)
}

// TabStyle is an unselected category tab
func (t StyleTheme) TabStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.White).
		Padding(0, 1)
}

// ActiveTabStyle is the selected category tab, inverted like a pill
func (t StyleTheme) ActiveTabStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(t.White).
		Bold(true).
		Padding(0, 1)
}

// AccentStyle colours text with the category accent
func (t StyleTheme) AccentStyle(c catalog.Category) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Palette().Accent)).
		Bold(true)
}

func (t StyleTheme) TagStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Purple)
}

func (t StyleTheme) SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Green)
}

func (t StyleTheme) TextStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.White)
}

func (t StyleTheme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Gray)
}

func (t StyleTheme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Red).
		Bold(true)
}

func (t StyleTheme) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Cyan).
		Bold(true)
}

// ToGlamourStyle converts the theme to a glamour style for the short caption.
// Captions are a blockquote, a strong author line and an emphasised book title.
func (t StyleTheme) ToGlamourStyle(accent string) ansi.StyleConfig {
	style := styles.DraculaStyleConfig

	// Remove document margin so the caption sits flush in the modal
	style.Document.Margin = uintPtr(0)
	style.Document.StylePrimitive.Color = stringPtr(string(t.White))

	style.Heading.StylePrimitive.Color = stringPtr(string(t.Cyan))
	style.Heading.StylePrimitive.Bold = boolPtr(true)
	style.H1.Prefix = "▸ "
	style.H1.Suffix = ""
	style.H1.Format = ""
	style.H2.Prefix = "▸ "
	style.H2.Suffix = ""
	style.H2.Format = ""

	style.Strong.Color = stringPtr(accent)
	style.Emph.Color = stringPtr(string(t.Gray))

	style.BlockQuote.StylePrimitive.Color = stringPtr(string(t.White))
	style.BlockQuote.StylePrimitive.Italic = boolPtr(false)
	style.BlockQuote.StylePrimitive.Bold = boolPtr(true)
	style.BlockQuote.Indent = uintPtr(1)
	style.BlockQuote.IndentToken = stringPtr("│ ")

	return style
}

// Helper functions for creating pointers
func stringPtr(s string) *string { return &s }
func uintPtr(u uint) *uint       { return &u }
func boolPtr(b bool) *bool       { return &b }

// RenderWithGradientBackground renders text with a gradient background
func RenderWithGradientBackground(text string, width int, startColor, endColor string) string {
	// Ensure text is exactly the width specified
	var paddedText string
	textRunes := []rune(text)
	if len(textRunes) < width {
		// Pad with spaces to reach full width
		paddedText = string(textRunes) + strings.Repeat(" ", width-len(textRunes))
	} else {
		// Truncate if too long
		paddedText = string(textRunes[:width])
	}

	// Split into characters for individual background colors
	runes := []rune(paddedText)
	var result strings.Builder

	for i, r := range runes {
		// Calculate position along gradient (0.0 to 1.0)
		position := float64(i) / float64(max(width-1, 1))

		// Interpolate background color at this position
		bgColor := InterpolateColor(startColor, endColor, position)

		// Apply gradient background with white/bright foreground for readability
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(bgColor)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}

// InterpolateColor blends two hex colors in Lab space at the given position
func InterpolateColor(startColor, endColor string, position float64) string {
	start, err := colorful.Hex(startColor)
	if err != nil {
		return startColor
	}
	end, err := colorful.Hex(endColor)
	if err != nil {
		return startColor
	}

	position = math.Max(0, math.Min(1, position))
	return start.BlendLab(end, position).Clamped().Hex()
}

// RenderGradientText renders text with a gradient from startColor to endColor
func RenderGradientText(text string, startColor, endColor string) string {
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) == 1 {
		// Single character - use start color
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(startColor))
		return style.Render(text)
	}

	var result strings.Builder
	for i, r := range runes {
		// Calculate position along gradient (0.0 to 1.0)
		position := float64(i) / float64(len(runes)-1)

		// Interpolate color at this position
		color := InterpolateColor(startColor, endColor, position)

		// Apply color to this character
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
