package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		maxWidth int
	}{
		{"short text untouched", "hola", 20, 4},
		{"wraps at word boundaries", "el encuentro de dos personalidades es como el contacto", 20, 20},
		{"collapses whitespace", "uno   dos\n\ttres", 40, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			for _, line := range strings.Split(got, "\n") {
				if lipgloss.Width(line) > tt.maxWidth {
					t.Errorf("Line %q wider than %d", line, tt.maxWidth)
				}
			}
		})
	}

	if got := wrapText("sin ancho", 0); got != "sin ancho" {
		t.Errorf("Expected text unchanged for zero width, got %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in       string
		max      int
		expected string
	}{
		{"Sigmund Freud", 20, "Sigmund Freud"},
		{"Sigmund Freud", 10, "Sigmund..."},
		{"Frankl", 2, "Fr"},
		{"inconsciente", 12, "inconsciente"},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.expected {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.expected)
		}
	}
}

func TestRenderThumbnail(t *testing.T) {
	out, err := renderThumbnail(pngBytes(t), 9, 8)
	if err != nil {
		t.Fatalf("renderThumbnail failed: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Errorf("Expected 8 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 9 {
			t.Errorf("Row %d is %d cells wide, want 9", i, w)
		}
	}

	if _, err := renderThumbnail([]byte("not an image"), 9, 8); err == nil {
		t.Error("Expected decode error for garbage data")
	}
	if _, err := renderThumbnail(pngBytes(t), 0, 8); err == nil {
		t.Error("Expected error for zero width")
	}
}

// INVARIANT: Overlays keep the header line of the background
// BREAKS: Gradient bar disappears whenever a modal opens
func TestOverlayCenterKeepsHeader(t *testing.T) {
	bg := "HEADER\nline one\nline two\nline three\nline four"
	out := overlayCenter(bg, "[modal]", 20, 5)
	lines := strings.Split(out, "\n")

	if lines[0] != "HEADER" {
		t.Errorf("Expected header preserved, got %q", lines[0])
	}
	if !strings.Contains(out, "[modal]") {
		t.Error("Expected modal content in output")
	}
	if strings.Contains(out, "line one") {
		t.Error("Expected background body cleared")
	}
}
