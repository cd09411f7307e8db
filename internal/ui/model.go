package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/nickpending/psyquotes/internal/catalog"
	"github.com/nickpending/psyquotes/internal/commands"
	"github.com/nickpending/psyquotes/internal/config"
	"github.com/nickpending/psyquotes/internal/db"
	"github.com/nickpending/psyquotes/internal/feed"
	"github.com/nickpending/psyquotes/internal/imagegen"
	"github.com/nickpending/psyquotes/internal/logging"
	"github.com/nickpending/psyquotes/internal/shorts"
	"github.com/nickpending/psyquotes/internal/ui/operations"
)

// Lines taken by chrome around the feed: gradient bar, tabs, search line, status bar
const chromeHeight = 4

// wheelStep is how many lines one mouse wheel notch scrolls
const wheelStep = 3

// Model represents the application state for the TUI
type Model struct {
	catalog  *catalog.Catalog
	category catalog.Category
	query    string
	filtered []catalog.Quote

	// Feed scroll surface and the tracker deriving the active card from it
	pager   *feed.Pager
	tracker *feed.Tracker

	shorts    *shorts.Controller
	modelName string // Generator model recorded with saved shorts
	outputDir string

	theme  StyleTheme
	width  int
	height int

	// Search box (/)
	search    textinput.Model
	searching bool

	// Saved markers per quote id, refreshed after every save
	saved map[string]db.SavedShort

	// Status message for user feedback
	statusMessage string

	// Modal state
	shortModal   ShortModal
	historyModal HistoryModal
	helpModal    HelpModal
	commandMode  CommandMode
}

// clearStatusMsg is sent to clear the status message after a delay
type clearStatusMsg struct{}

// savedLoadedMsg carries the latest saved short for each quote in the catalog
type savedLoadedMsg struct {
	saved map[string]db.SavedShort
	err   error
}

// NewModel creates a new Model instance
func NewModel(cfg *config.Config, cat *catalog.Catalog, gen imagegen.Generator, modelName string) Model {
	if cfg == nil {
		cfg = config.Defaults()
	}
	if cat == nil {
		cat = catalog.Default()
	}

	search := textinput.New()
	search.Placeholder = "Buscar por texto o autor..."
	search.Prompt = "/ "
	search.CharLimit = 80

	m := Model{
		catalog:      cat,
		category:     catalog.All,
		tracker:      feed.NewTracker(func(i int) { logging.Debug("active card changed", "index", i) }),
		shorts:       shorts.NewController(gen, shorts.WithProgressInterval(cfg.GetProgressInterval())),
		modelName:    modelName,
		outputDir:    cfg.Shorts.OutputDir,
		theme:        ThemeByName(cfg.TUI.Theme),
		search:       search,
		saved:        map[string]db.SavedShort{},
		shortModal:   NewShortModal(),
		historyModal: NewHistoryModal(),
		helpModal:    NewHelpModal(),
		commandMode:  NewCommandMode(),
	}
	m.applyFilter()
	return m
}

// Init initializes the model and returns a command to load saved markers
func (m Model) Init() tea.Cmd {
	return fetchSaved(m.catalog)
}

// Filtered returns the quotes currently in the feed
func (m Model) Filtered() []catalog.Quote {
	return m.filtered
}

// ActiveIndex returns the card the tracker reports as in view
func (m Model) ActiveIndex() int {
	return m.tracker.Active()
}

// ActiveQuote returns the quote under the tracker, if the feed is not empty
func (m Model) ActiveQuote() (catalog.Quote, bool) {
	i := m.tracker.Active()
	if i < 0 || i >= len(m.filtered) {
		return catalog.Quote{}, false
	}
	return m.filtered[i], true
}

// feedHeight is the number of lines each card occupies
func (m Model) feedHeight() int {
	return max(m.height-chromeHeight, 0)
}

// applyFilter recomputes the feed for the current category and query.
// The feed returns to the first card and the tracker moves to the new surface.
func (m *Model) applyFilter() {
	m.filtered = m.catalog.Filter(m.category, m.query)
	m.pager = feed.NewPager(len(m.filtered), m.feedHeight())
	m.tracker.Attach(m.pager)
	m.tracker.Reset()
}

func (m *Model) setCategory(c catalog.Category) {
	if c == m.category {
		return
	}
	m.category = c
	m.applyFilter()
}

func (m *Model) setQuery(q string) {
	if q == m.query {
		return
	}
	m.query = q
	m.applyFilter()
}

// nextCategory cycles All → each category → All
func nextCategory(c catalog.Category) catalog.Category {
	tabs := append([]catalog.Category{catalog.All}, catalog.Categories()...)
	for i, t := range tabs {
		if t == c {
			return tabs[(i+1)%len(tabs)]
		}
	}
	return catalog.All
}

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.pager.SetHeight(m.feedHeight())
		m.search.Width = max(msg.Width-6, 10)
		m.shortModal.SetSize(msg.Width, msg.Height)
		m.shortModal.Refresh(m.theme)
		m.historyModal.SetSize(msg.Width, msg.Height)
		m.helpModal.SetSize(msg.Width, msg.Height)
		m.commandMode.SetWidth(msg.Width)
		return m, nil
	}

	// Generation lifecycle messages are routed regardless of which layer has focus
	if cmd, ok := m.shorts.Update(msg); ok {
		m.shortModal.SetSession(m.shorts.Session(), m.theme)
		return m, cmd
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		m.shortModal, cmd = m.shortModal.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m.handleMessage(msg)
}

// handleKey routes keys to whichever layer has focus
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		m.shorts.Close()
		return m, tea.Quit
	}

	// Command mode has the highest priority
	if m.commandMode.IsActive() {
		m.commandMode, cmd = m.commandMode.Update(msg)
		return m, cmd
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.helpModal.IsVisible() {
		m.helpModal, cmd = m.helpModal.Update(msg)
		return m, cmd
	}

	if m.historyModal.IsVisible() {
		m.historyModal, cmd = m.historyModal.Update(msg)
		return m, cmd
	}

	if m.shortModal.IsVisible() {
		return m.handleShortKey(msg)
	}

	return m.handleFeedKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEscape:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.setQuery("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Filter as the user types
	m.setQuery(strings.TrimSpace(m.search.Value()))
	return m, cmd
}

func (m Model) handleShortKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m.closeShort()
	case "r":
		return m.retryShort()
	case "s":
		return m.saveShort(m.outputDir)
	case "o":
		return m.openSaved()
	case "y":
		return m.yank("quote")
	case ":":
		m.commandMode.Show()
	}
	return m, nil
}

func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case ":":
		m.commandMode.Show()
	case "q":
		return m, tea.Quit
	case "?":
		m.helpModal.SetSize(m.width, m.height)
		m.helpModal.Show()
	case "/":
		m.searching = true
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "esc":
		// Clear filters
		m.search.SetValue("")
		m.query = ""
		m.category = catalog.All
		m.applyFilter()

	case "j", "down", "pgdown", " ":
		m.pager.NextCard()
	case "k", "up", "pgup":
		m.pager.PrevCard()
	case "g", "home":
		m.pager.GotoCard(0)
	case "G", "end":
		m.pager.GotoCard(len(m.filtered) - 1)

	case "tab":
		m.setCategory(nextCategory(m.category))
	case "shift+tab":
		prev := m.category
		for next := nextCategory(prev); next != m.category; next = nextCategory(next) {
			prev = next
		}
		m.setCategory(prev)
	case "0":
		m.setCategory(catalog.All)
	case "1", "2", "3":
		cats := catalog.Categories()
		m.setCategory(cats[int(msg.Runes[0]-'1')])

	case "enter", "c":
		return m.requestShort()
	case "y":
		return m.yank("quote")
	case "H":
		m.historyModal.SetSize(m.width, m.height)
		return m, m.historyModal.Open()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.shortModal.IsVisible() || m.historyModal.IsVisible() || m.helpModal.IsVisible() {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.pager.ScrollBy(wheelStep)
	case tea.MouseButtonWheelUp:
		m.pager.ScrollBy(-wheelStep)
	}
	return m, nil
}

// handleMessage applies command and operation results
func (m Model) handleMessage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case clearErrorMsg:
		m.commandMode, cmd = m.commandMode.Update(msg)
		return m, cmd

	case commands.ErrorMsg:
		// Show error in command line instead of status
		return m, m.commandMode.SetError(msg.Message)

	case commands.HelpMsg:
		m.helpModal.SetSize(m.width, m.height)
		m.helpModal.Show()

	case commands.CategoryMsg:
		if msg.Cycle {
			m.setCategory(nextCategory(m.category))
		} else {
			m.setCategory(msg.Category)
		}

	case commands.SearchMsg:
		m.search.SetValue(msg.Query)
		m.setQuery(msg.Query)

	case commands.GotoMsg:
		return m.gotoQuote(msg)

	case commands.ShortMsg:
		return m.requestShort()

	case commands.RetryMsg:
		return m.retryShort()

	case commands.SaveMsg:
		dir := msg.Dir
		if dir == "" {
			dir = m.outputDir
		}
		return m.saveShort(dir)

	case commands.OpenMsg:
		return m.openSaved()

	case commands.YankMsg:
		return m.yank(msg.Target)

	case commands.HistoryMsg:
		m.historyModal.SetSize(m.width, m.height)
		return m, m.historyModal.Open()

	case commands.ThemeMsg:
		m.theme = NextTheme(m.theme)
		m.shortModal.Refresh(m.theme)
		return m.flash("Tema: " + m.theme.Name)

	case savedLoadedMsg:
		if msg.err != nil {
			logging.Warn("failed to load saved markers", "error", msg.err)
			return m, nil
		}
		m.saved = msg.saved

	case operations.ShortSavedMsg:
		if !msg.Success {
			return m.flash(fmt.Sprintf("✗ No se pudo guardar: %v", msg.Error))
		}
		// Only the attempt that produced the file owns it
		if s := m.shorts.Session(); s.Status == shorts.StatusCompleted && s.Attempt == msg.Attempt {
			m.shortModal.SetSaved(msg.Path)
		}
		m.statusMessage = fmt.Sprintf("✓ Guardado en %s (%s)", msg.Path, humanize.Bytes(uint64(msg.Bytes)))
		return m, tea.Batch(fetchSaved(m.catalog), clearStatusAfterDelay(3*time.Second))

	case operations.HistoryLoadedMsg:
		m.historyModal.SetShorts(msg.Shorts, msg.Error)

	case operations.FileOpenedMsg:
		if !msg.Success {
			return m.flash(fmt.Sprintf("✗ No se pudo abrir: %v", msg.Error))
		}
		return m.flash("Abriendo " + msg.Path)

	case operations.CopiedMsg:
		if !msg.Success {
			return m.flash(fmt.Sprintf("✗ No se pudo copiar: %v", msg.Error))
		}
		if msg.What == "path" {
			return m.flash("Ruta copiada al portapapeles")
		}
		return m.flash("Cita copiada al portapapeles")

	case clearStatusMsg:
		m.statusMessage = ""
	}

	return m, nil
}

// requestShort opens the modal and starts a generation for the active card
func (m Model) requestShort() (tea.Model, tea.Cmd) {
	q, ok := m.ActiveQuote()
	if !ok {
		return m.flash("No hay ninguna cita seleccionada")
	}
	generate := m.shorts.Request(q)
	m.shortModal.SetSize(m.width, m.height)
	spin := m.shortModal.Open(m.shorts.Session(), m.theme)
	return m, tea.Batch(generate, spin)
}

func (m Model) retryShort() (tea.Model, tea.Cmd) {
	generate := m.shorts.Retry()
	if generate == nil {
		return m.flash("No hay ningún short que reintentar")
	}
	m.shortModal.SetSize(m.width, m.height)
	spin := m.shortModal.Open(m.shorts.Session(), m.theme)
	return m, tea.Batch(generate, spin)
}

func (m Model) closeShort() (tea.Model, tea.Cmd) {
	m.shorts.Close()
	m.shortModal.Close()
	return m, nil
}

func (m Model) saveShort(dir string) (tea.Model, tea.Cmd) {
	session := m.shorts.Session()
	if session.Status != shorts.StatusCompleted || session.Quote == nil {
		return m.flash("Crea un short antes de guardarlo")
	}
	return m, operations.SaveShort(dir, *session.Quote, session.Result, m.modelName, session.Attempt)
}

func (m Model) openSaved() (tea.Model, tea.Cmd) {
	path := m.shortModal.SavedPath()
	if path == "" {
		if q, ok := m.ActiveQuote(); ok {
			path = m.saved[q.ID].Path
		}
	}
	if path == "" {
		return m.flash("Guarda el short primero (s)")
	}
	return m, operations.OpenFile(path)
}

func (m Model) yank(target string) (tea.Model, tea.Cmd) {
	if target == "path" {
		path := m.shortModal.SavedPath()
		if path == "" {
			if q, ok := m.ActiveQuote(); ok {
				path = m.saved[q.ID].Path
			}
		}
		return m, operations.CopyText("path", path)
	}

	q, ok := m.ActiveQuote()
	if s := m.shorts.Session(); m.shortModal.IsVisible() && s.Quote != nil {
		q, ok = *s.Quote, true
	}
	if !ok {
		return m.flash("No hay ninguna cita seleccionada")
	}
	return m, operations.CopyText("quote", fmt.Sprintf("“%s” — %s, %s", q.Text, q.Author, q.Book))
}

func (m Model) gotoQuote(msg commands.GotoMsg) (tea.Model, tea.Cmd) {
	index := msg.Index
	if msg.QuoteID != "" {
		index = -1
		for i, q := range m.filtered {
			if strings.EqualFold(q.ID, msg.QuoteID) {
				index = i
				break
			}
		}
		if index < 0 {
			return m, m.commandMode.SetError("Quote not in feed: " + msg.QuoteID)
		}
	}
	if index < 0 || index >= len(m.filtered) {
		return m, m.commandMode.SetError(fmt.Sprintf("No card %d (feed has %d)", index+1, len(m.filtered)))
	}
	m.pager.GotoCard(index)
	return m, nil
}

// Shutdown cancels any in-flight generation. Called once the program exits.
func (m Model) Shutdown() {
	m.shorts.Close()
}

// flash shows a transient status message
func (m Model) flash(text string) (tea.Model, tea.Cmd) {
	m.statusMessage = text
	return m, clearStatusAfterDelay(3 * time.Second)
}

// View renders the current model state
func (m Model) View() string {
	baseView := RenderFeed(m)

	if m.helpModal.IsVisible() {
		return m.helpModal.ViewWithOverlay(baseView, m.width, m.height, m.theme)
	}
	if m.historyModal.IsVisible() {
		return m.historyModal.ViewWithOverlay(baseView, m.width, m.height, m.theme)
	}
	if m.shortModal.IsVisible() {
		return m.shortModal.ViewWithOverlay(baseView, m.width, m.height, m.theme)
	}
	return baseView
}

// fetchSaved loads the latest saved short for every quote
func fetchSaved(cat *catalog.Catalog) tea.Cmd {
	return func() tea.Msg {
		saved := map[string]db.SavedShort{}
		for _, q := range cat.All() {
			s, ok, err := db.LatestForQuote(q.ID)
			if err != nil {
				return savedLoadedMsg{err: err}
			}
			if ok {
				saved[q.ID] = s
			}
		}
		return savedLoadedMsg{saved: saved}
	}
}

// clearStatusAfterDelay returns a command that clears the status message after a delay
func clearStatusAfterDelay(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
