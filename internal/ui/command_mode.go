package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nickpending/psyquotes/internal/catalog"
	"github.com/nickpending/psyquotes/internal/commands"
)

const (
	commandHistorySize = 100
	commandErrorDelay  = 2 * time.Second
)

// argumentCompletions lists the fixed argument values offered after a command name
var argumentCompletions = map[string][]string{
	"yank": {"quote", "path"},
}

func init() {
	keys := []string{"all"}
	for _, c := range catalog.Categories() {
		keys = append(keys, c.Key())
	}
	argumentCompletions["category"] = keys
}

// CommandMode is the ":" prompt in the status bar
type CommandMode struct {
	active   bool
	input    textinput.Model
	registry *commands.Registry
	width    int
	error    string

	history    []string
	historyIdx int

	// Tab cycles through suggestions; next is the index the following tab shows
	suggestions []string
	next        int
}

// clearErrorMsg hides a command error after commandErrorDelay
type clearErrorMsg struct{}

// NewCommandMode creates a new command mode instance
func NewCommandMode() CommandMode {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	ti.Prompt = ":"

	return CommandMode{
		input:      ti,
		registry:   commands.NewRegistry(),
		width:      80,
		historyIdx: -1,
	}
}

// SetWidth updates the width of the command mode display
func (c *CommandMode) SetWidth(width int) {
	c.width = width
	c.input.Width = width - 4
}

// Show activates command mode with an empty prompt
func (c *CommandMode) Show() {
	c.reset()
	c.active = true
	c.input.Focus()
	c.historyIdx = len(c.history)
}

// Hide deactivates command mode
func (c *CommandMode) Hide() {
	c.reset()
	c.active = false
	c.input.Blur()
	c.historyIdx = -1
}

func (c *CommandMode) reset() {
	c.input.SetValue("")
	c.error = ""
	c.suggestions = nil
	c.next = 0
}

// IsActive returns whether command mode is currently active
func (c CommandMode) IsActive() bool {
	return c.active
}

// SetError shows err in place of the prompt until a key is pressed or the delay passes
func (c *CommandMode) SetError(err string) tea.Cmd {
	c.error = err
	c.active = true
	c.input.Blur()
	return tea.Tick(commandErrorDelay, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

// Update handles input events for command mode
func (c *CommandMode) Update(msg tea.Msg) (CommandMode, tea.Cmd) {
	if !c.active {
		return *c, nil
	}

	switch msg := msg.(type) {
	case clearErrorMsg:
		c.Hide()
		return *c, nil

	case tea.KeyMsg:
		if c.error != "" {
			c.Hide()
			return *c, nil
		}

		switch msg.Type {
		case tea.KeyEscape, tea.KeyCtrlC:
			c.Hide()
			return *c, nil
		case tea.KeyEnter:
			return *c, c.execute()
		case tea.KeyUp:
			c.recall(-1)
			return *c, nil
		case tea.KeyDown:
			c.recall(1)
			return *c, nil
		case tea.KeyTab:
			c.cycle()
			return *c, nil
		case tea.KeyBackspace:
			if c.input.Value() == "" {
				c.Hide()
				return *c, nil
			}
		}
	}

	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	if c.input.Value() != before {
		c.suggestions = nil
		c.next = 0
	}
	return *c, cmd
}

// execute runs the typed line through the registry and closes the prompt
func (c *CommandMode) execute() tea.Cmd {
	line := strings.TrimSpace(c.input.Value())
	c.Hide()
	if line == "" {
		return nil
	}
	c.remember(line)

	fields := strings.Fields(line)
	return c.registry.Execute(fields[0], fields[1:])
}

// recall steps through history; stepping past the newest entry clears the prompt
func (c *CommandMode) recall(step int) {
	idx := c.historyIdx + step
	switch {
	case idx < 0 || idx > len(c.history):
		return
	case idx == len(c.history):
		c.input.SetValue("")
	default:
		c.input.SetValue(c.history[idx])
		c.input.CursorEnd()
	}
	c.historyIdx = idx
}

func (c *CommandMode) remember(line string) {
	if n := len(c.history); n > 0 && c.history[n-1] == line {
		return
	}
	if len(c.history) >= commandHistorySize {
		c.history = c.history[1:]
	}
	c.history = append(c.history, line)
}

// cycle fills the prompt with the next completion of what was typed
func (c *CommandMode) cycle() {
	if c.suggestions == nil {
		current := c.input.Value()
		if current == "" {
			return
		}
		c.suggestions = c.Complete(current)
		c.next = 0
		if len(c.suggestions) == 0 {
			c.suggestions = nil
			return
		}
	}

	c.input.SetValue(c.suggestions[c.next])
	c.input.CursorEnd()
	c.next = (c.next + 1) % len(c.suggestions)
}

// View renders the prompt, or the pending error
func (c CommandMode) View(theme StyleTheme) string {
	if !c.active {
		return ""
	}

	style := lipgloss.NewStyle().Width(c.width).Padding(0, 1)
	if c.error != "" {
		return style.Foreground(theme.VibrantPurple).Render(c.error)
	}

	content := c.input.View()
	if n := len(c.suggestions); n > 1 {
		shown := c.next
		if shown == 0 {
			shown = n
		}
		content += fmt.Sprintf(" [%d/%d]", shown, n)
	}
	return style.Foreground(theme.Cyan).Render(content)
}

// Complete returns completions for prefix: command names, or after a
// command name and a space, that command's argument values.
func (c *CommandMode) Complete(prefix string) []string {
	if c.registry == nil {
		return nil
	}

	if name, arg, found := strings.Cut(prefix, " "); found {
		var matches []string
		arg = strings.ToLower(strings.TrimSpace(arg))
		for _, v := range argumentCompletions[strings.ToLower(name)] {
			if strings.HasPrefix(v, arg) {
				matches = append(matches, name+" "+v)
			}
		}
		return matches
	}

	var matches []string
	lower := strings.ToLower(prefix)
	for _, name := range c.registry.GetCommands() {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			matches = append(matches, name)
		}
	}
	return matches
}
