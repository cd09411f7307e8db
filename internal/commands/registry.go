package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nickpending/psyquotes/internal/catalog"
)

// CommandFunc is a function that executes a command
type CommandFunc func(args []string) tea.Cmd

// Registry holds all available commands
type Registry struct {
	commands map[string]CommandFunc
}

// NewRegistry creates a new command registry with built-in commands
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]CommandFunc),
	}

	// Register built-in commands (vim-style: full names only, completion handles prefixes)
	r.Register("quit", cmdQuit)
	r.Register("help", cmdHelp)

	// Feed
	r.Register("category", cmdCategory)
	r.Register("search", cmdSearch)
	r.Register("goto", cmdGoto)

	// Shorts
	r.Register("short", cmdShort)
	r.Register("retry", cmdRetry)
	r.Register("write", cmdWrite)
	r.Register("open", cmdOpen)
	r.Register("yank", cmdYank)
	r.Register("history", cmdHistory)

	// Theme switching
	r.Register("theme", cmdTheme)

	return r
}

// Register adds a command to the registry
func (r *Registry) Register(name string, fn CommandFunc) {
	r.commands[name] = fn
}

// Execute runs a command by name with arguments
func (r *Registry) Execute(name string, args []string) tea.Cmd {
	// First try exact match
	if fn, ok := r.commands[name]; ok {
		return fn(args)
	}

	// Then try prefix matching (vim-style)
	var matches []string
	var matchedFn CommandFunc
	lowerName := strings.ToLower(name)

	for cmdName, fn := range r.commands {
		if strings.HasPrefix(strings.ToLower(cmdName), lowerName) {
			matches = append(matches, cmdName)
			matchedFn = fn
		}
	}

	// If exactly one match, execute it
	if len(matches) == 1 {
		return matchedFn(args)
	}

	// If multiple matches, show ambiguous command error
	if len(matches) > 1 {
		sort.Strings(matches)
		return showError(fmt.Sprintf("Ambiguous command '%s': %s", name, strings.Join(matches, ", ")))
	}

	// No matches
	return showError(fmt.Sprintf("Unknown command: %s", name))
}

// GetCommands returns all registered command names, sorted
func (r *Registry) GetCommands() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse splits a command line into name and arguments
func Parse(line string) (string, []string) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// Built-in command implementations

// cmdQuit exits the application
func cmdQuit(args []string) tea.Cmd {
	return tea.Quit
}

// cmdHelp shows available commands
func cmdHelp(args []string) tea.Cmd {
	return func() tea.Msg {
		return HelpMsg{}
	}
}

// cmdCategory selects a category filter, or cycles when called without arguments
func cmdCategory(args []string) tea.Cmd {
	return func() tea.Msg {
		if len(args) == 0 {
			return CategoryMsg{Cycle: true}
		}
		c, err := catalog.ParseCategory(strings.Join(args, " "))
		if err != nil {
			return ErrorMsg{Message: fmt.Sprintf("category: %v", err)}
		}
		return CategoryMsg{Category: c}
	}
}

// cmdSearch sets the author/text search; no arguments clears it
func cmdSearch(args []string) tea.Cmd {
	return func() tea.Msg {
		return SearchMsg{Query: strings.Join(args, " ")}
	}
}

// cmdGoto jumps to a card by 1-based position or quote id
func cmdGoto(args []string) tea.Cmd {
	return func() tea.Msg {
		if len(args) == 0 {
			return ErrorMsg{Message: "goto: position or quote id required"}
		}
		if n, err := strconv.Atoi(args[0]); err == nil {
			if n < 1 {
				return ErrorMsg{Message: fmt.Sprintf("goto: invalid position %d", n)}
			}
			return GotoMsg{Index: n - 1}
		}
		return GotoMsg{Index: -1, QuoteID: strings.ToUpper(args[0])}
	}
}

// cmdShort creates a short for the active card
func cmdShort(args []string) tea.Cmd {
	return func() tea.Msg {
		return ShortMsg{}
	}
}

// cmdRetry regenerates the current short
func cmdRetry(args []string) tea.Cmd {
	return func() tea.Msg {
		return RetryMsg{}
	}
}

// cmdWrite saves the completed short, optionally into a different directory
func cmdWrite(args []string) tea.Cmd {
	return func() tea.Msg {
		dir := ""
		if len(args) > 0 {
			dir = strings.Join(args, " ")
		}
		return SaveMsg{Dir: dir}
	}
}

// cmdOpen opens the saved short with the system viewer
func cmdOpen(args []string) tea.Cmd {
	return func() tea.Msg {
		return OpenMsg{}
	}
}

// cmdYank copies the active quote (default) or the last saved path
func cmdYank(args []string) tea.Cmd {
	return func() tea.Msg {
		target := "quote"
		if len(args) > 0 {
			target = args[0]
		}
		switch target {
		case "quote", "path":
			return YankMsg{Target: target}
		default:
			return ErrorMsg{Message: fmt.Sprintf("yank: unknown target '%s' (available: quote, path)", target)}
		}
	}
}

// cmdHistory shows saved shorts
func cmdHistory(args []string) tea.Cmd {
	return func() tea.Msg {
		return HistoryMsg{}
	}
}

// cmdTheme cycles through available themes
func cmdTheme(args []string) tea.Cmd {
	return func() tea.Msg {
		return ThemeMsg{}
	}
}

// showError returns a command that shows an error message
func showError(msg string) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Message: msg}
	}
}

// Message types for commands

// ErrorMsg contains an error message to display
type ErrorMsg struct {
	Message string
}

// HelpMsg signals to show the help modal
type HelpMsg struct{}

// CategoryMsg selects a category filter
type CategoryMsg struct {
	Category catalog.Category
	Cycle    bool // If true, ignore Category and move to the next tab
}

// SearchMsg sets the search query
type SearchMsg struct {
	Query string
}

// GotoMsg jumps to a card. Index is -1 when QuoteID is set.
type GotoMsg struct {
	Index   int
	QuoteID string
}

// ShortMsg signals to create a short for the active card
type ShortMsg struct{}

// RetryMsg signals to regenerate the current short
type RetryMsg struct{}

// SaveMsg signals to save the completed short
type SaveMsg struct {
	Dir string // Empty means the configured output directory
}

// OpenMsg signals to open the saved file
type OpenMsg struct{}

// YankMsg signals to copy to clipboard
type YankMsg struct {
	Target string // "quote" or "path"
}

// HistoryMsg signals to show the saved shorts history
type HistoryMsg struct{}

// ThemeMsg signals to cycle to the next theme
type ThemeMsg struct{}
