package ui

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/wordwrap"
)

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(strings.Join(strings.Fields(text), " "), width)
}

// truncateString shortens s to maxLen runes, ending in an ellipsis
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// centerLine pads s on the left so it sits in the middle of width
func centerLine(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// renderThumbnail draws encoded image data with half-block characters,
// two pixel rows per terminal line. Undecodable data yields an error.
func renderThumbnail(data []byte, cols, rows int) (string, error) {
	if cols <= 0 || rows <= 0 {
		return "", fmt.Errorf("thumbnail needs a positive size")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return "", fmt.Errorf("image has no pixels")
	}

	sample := func(x, y int) string {
		sx := b.Min.X + x*b.Dx()/cols
		sy := b.Min.Y + y*b.Dy()/(rows*2)
		c, _ := colorful.MakeColor(img.At(sx, sy))
		return c.Hex()
	}

	var out strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := sample(col, row*2)
			bottom := sample(col, row*2+1)
			out.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		if row < rows-1 {
			out.WriteString("\n")
		}
	}
	return out.String(), nil
}

// overlayCenter places a modal over a cleared background, keeping the
// first line (the header bar) intact.
func overlayCenter(backgroundView, modalView string, width, height int) string {
	bgLines := strings.Split(backgroundView, "\n")
	for i := range bgLines {
		if i == 0 {
			continue
		}
		bgLines[i] = strings.Repeat(" ", max(width, 0))
	}

	modalLines := strings.Split(modalView, "\n")
	modalWidth := lipgloss.Width(modalView)

	startY := max(0, (height-len(modalLines))/2)
	startX := max(0, (width-modalWidth)/2)
	if startY == 0 && len(bgLines) > 1 {
		// Never cover the header
		startY = 1
	}

	result := make([]string, max(len(bgLines), startY+len(modalLines)))
	copy(result, bgLines)

	padding := strings.Repeat(" ", startX)
	for i, line := range modalLines {
		result[startY+i] = padding + line
	}
	return strings.Join(result, "\n")
}
