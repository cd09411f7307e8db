package ui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nickpending/psyquotes/internal/catalog"
	"github.com/nickpending/psyquotes/internal/commands"
)

func TestCommandModeComplete(t *testing.T) {
	c := NewCommandMode()

	tests := []struct {
		prefix   string
		expected []string
	}{
		{"th", []string{"theme"}},
		{"s", []string{"search", "short"}},
		{"category m", []string{"category motivation"}},
		{"category ", []string{"category all", "category motivation", "category behavior", "category unconscious"}},
		{"yank p", []string{"yank path"}},
		{"goto 1", nil},
		{"zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := c.Complete(tt.prefix); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.expected)
			}
		})
	}
}

func TestCommandModeHistory(t *testing.T) {
	c := NewCommandMode()
	c.Show()
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("theme")})
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if c.IsActive() {
		t.Fatal("Expected command mode closed after enter")
	}

	c.Show()
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyUp})
	if c.input.Value() != "theme" {
		t.Errorf("Expected history recall, got %q", c.input.Value())
	}
}

func TestCommandModeTabCycles(t *testing.T) {
	c := NewCommandMode()
	c.Show()
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	var seen []string
	for range 3 {
		c, _ = c.Update(tea.KeyMsg{Type: tea.KeyTab})
		seen = append(seen, c.input.Value())
	}

	expected := []string{"search", "short", "search"}
	if !reflect.DeepEqual(seen, expected) {
		t.Errorf("Tab cycle = %v, want %v", seen, expected)
	}
}

func TestCommandModeExecuteJoinsWords(t *testing.T) {
	tests := []struct {
		line     string
		expected tea.Msg
	}{
		{"search carl   jung", commands.SearchMsg{Query: "carl jung"}},
		{"category motivation", commands.CategoryMsg{Category: catalog.Motivation}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c := NewCommandMode()
			c.Show()
			c, _ = c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.line)})
			c, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("Expected a command")
			}
			if got := cmd(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got %#v, want %#v", got, tt.expected)
			}
			if c.IsActive() {
				t.Error("Expected command mode closed after enter")
			}
		})
	}
}

func TestCommandModeErrorClearsOnKey(t *testing.T) {
	c := NewCommandMode()
	c.Show()
	if cmd := c.SetError("boom"); cmd == nil {
		t.Fatal("Expected a clear timer")
	}
	if !c.IsActive() {
		t.Fatal("Expected error to keep command mode visible")
	}

	c, _ = c.Update(key('x'))
	if c.IsActive() || c.error != "" {
		t.Error("Expected any key to dismiss the error")
	}
}
