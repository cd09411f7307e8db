package operations

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nickpending/psyquotes/internal/catalog"
	"github.com/nickpending/psyquotes/internal/db"
	"github.com/nickpending/psyquotes/internal/export"
	"github.com/nickpending/psyquotes/internal/imagegen"
	"github.com/nickpending/psyquotes/internal/logging"
)

// Short operation result messages

// ShortSavedMsg reports the outcome of writing a short to disk
type ShortSavedMsg struct {
	QuoteID string
	// Attempt is the generation attempt the image came from
	Attempt uint64
	Path    string
	Bytes   int64
	Success bool
	Error   error
}

// HistoryLoadedMsg carries the saved shorts history
type HistoryLoadedMsg struct {
	Shorts []db.SavedShort
	Error  error
}

// FileOpenedMsg reports whether the system viewer was launched
type FileOpenedMsg struct {
	Path    string
	Success bool
	Error   error
}

// CopiedMsg reports a clipboard write
type CopiedMsg struct {
	What    string
	Success bool
	Error   error
}

// SaveShort writes img for q into dir and records it in the history.
// A history failure is logged but does not fail the save.
func SaveShort(dir string, q catalog.Quote, img *imagegen.Image, model string, attempt uint64) tea.Cmd {
	return func() tea.Msg {
		path, err := export.Save(dir, q.ID, img)
		if err != nil {
			logging.Error("save short failed", "quote", q.ID, "error", err)
			return ShortSavedMsg{QuoteID: q.ID, Attempt: attempt, Success: false, Error: err}
		}

		size := int64(len(img.Data))
		if _, err := db.RecordShort(db.SavedShort{
			QuoteID:  q.ID,
			Author:   q.Author,
			Category: q.Category.Key(),
			Path:     path,
			MIMEType: img.MIMEType,
			Bytes:    size,
			Model:    model,
		}); err != nil {
			logging.Warn("failed to record short in history", "quote", q.ID, "error", err)
		}

		logging.Info("short saved", "quote", q.ID, "path", path, "bytes", size)
		return ShortSavedMsg{QuoteID: q.ID, Attempt: attempt, Path: path, Bytes: size, Success: true}
	}
}

// LoadHistory fetches the most recent saved shorts
func LoadHistory(limit int) tea.Cmd {
	return func() tea.Msg {
		shorts, err := db.ListShorts(limit)
		return HistoryLoadedMsg{Shorts: shorts, Error: err}
	}
}

// OpenFile opens path with the platform's default viewer
func OpenFile(path string) tea.Cmd {
	return func() tea.Msg {
		err := openFile(path)
		return FileOpenedMsg{Path: path, Success: err == nil, Error: err}
	}
}

// CopyText puts text on the clipboard; what names it in the status line
func CopyText(what, text string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return CopiedMsg{What: what, Error: fmt.Errorf("nothing to copy")}
		}
		err := clipboard.WriteAll(text)
		return CopiedMsg{What: what, Success: err == nil, Error: err}
	}
}

// openFile launches the default viewer without waiting for it
func openFile(path string) error {
	if path == "" {
		return fmt.Errorf("cannot open empty path")
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	if err := startDetached(cmd, func(err error) {
		if err != nil {
			logging.Debug("viewer exited", "path", path, "error", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

// startDetached starts cmd without blocking and reaps it in the background,
// reporting the exit to onExit.
func startDetached(cmd *exec.Cmd, onExit func(error)) error {
	// Start() rather than Run() so the TUI doesn't block on the viewer
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		onExit(cmd.Wait())
	}()
	return nil
}
