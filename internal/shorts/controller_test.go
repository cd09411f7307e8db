package shorts

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nickpending/psyquotes/internal/catalog"
	"github.com/nickpending/psyquotes/internal/imagegen"
)

// fakeGenerator returns a fixed answer and records every call
type fakeGenerator struct {
	mu    sync.Mutex
	img   *imagegen.Image
	err   error
	calls []imagegen.Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req imagegen.Request) (*imagegen.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.img, f.err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func quote(t *testing.T, id string) catalog.Quote {
	t.Helper()
	q, ok := catalog.Default().Lookup(id)
	if !ok {
		t.Fatalf("quote %s missing from catalog", id)
	}
	return q
}

func newTestController(gen imagegen.Generator) *Controller {
	return NewController(gen,
		WithProgressInterval(time.Millisecond),
		WithRand(func(int) int { return 1 }),
	)
}

// resultFrom runs cmd (unwrapping batches) and returns the ResultMsg it produces
func resultFrom(t *testing.T, cmd tea.Cmd) ResultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	switch msg := cmd().(type) {
	case ResultMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if r, ok := c().(ResultMsg); ok {
				return r
			}
		}
	}
	t.Fatal("command produced no ResultMsg")
	return ResultMsg{}
}

func TestInitialState(t *testing.T) {
	c := newTestController(&fakeGenerator{})
	s := c.Session()
	if s.Status != StatusIdle || s.Quote != nil || s.Result != nil {
		t.Errorf("Expected empty idle session, got %+v", s)
	}
	if c.Active() {
		t.Error("Expected controller to be inactive")
	}
}

func TestCompletedScenario(t *testing.T) {
	img := &imagegen.Image{Data: []byte("png-bytes"), MIMEType: "image/png"}
	gen := &fakeGenerator{img: img}
	c := newTestController(gen)

	cmd := c.Request(quote(t, "F-001"))

	s := c.Session()
	if s.Status != StatusGenerating {
		t.Fatalf("Expected generating immediately after Request, got %s", s.Status)
	}
	if s.Quote == nil || s.Quote.ID != "F-001" {
		t.Fatalf("Expected quote F-001 recorded, got %+v", s.Quote)
	}
	if s.ProgressMessage == "" {
		t.Error("Expected an initial progress message")
	}

	c.Update(resultFrom(t, cmd))

	s = c.Session()
	if s.Status != StatusCompleted {
		t.Fatalf("Expected completed, got %s", s.Status)
	}
	if s.Result != img {
		t.Error("Expected the generated image to be referenced")
	}
	if gen.callCount() != 1 {
		t.Errorf("Expected exactly one collaborator call, got %d", gen.callCount())
	}

	c.Close()
	s = c.Session()
	if s.Status != StatusIdle || s.Quote != nil || s.Result != nil {
		t.Errorf("Expected reset idle session after Close, got %+v", s)
	}
}

func TestFailuresBecomeError(t *testing.T) {
	tests := []struct {
		name    string
		gen     *fakeGenerator
		wantErr error
	}{
		{name: "transport error", gen: &fakeGenerator{err: errors.New("quota exceeded")}},
		{name: "nil image", gen: &fakeGenerator{}, wantErr: imagegen.ErrEmptyResult},
		{name: "empty payload", gen: &fakeGenerator{img: &imagegen.Image{MIMEType: "image/png"}}, wantErr: imagegen.ErrEmptyResult},
		{
			name: "image with error",
			gen: &fakeGenerator{
				img: &imagegen.Image{Data: []byte{1}},
				err: errors.New("partial"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(tt.gen)
			cmd := c.Request(quote(t, "F-003"))
			c.Update(resultFrom(t, cmd))

			s := c.Session()
			if s.Status != StatusError {
				t.Fatalf("Expected error status, got %s", s.Status)
			}
			if s.Result != nil {
				t.Error("Expected no result retained on error")
			}
			if s.Err == nil {
				t.Error("Expected error recorded for logging")
			}
			if tt.wantErr != nil && !errors.Is(s.Err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, s.Err)
			}
			if s.Quote == nil || s.Quote.ID != "F-003" {
				t.Error("Expected quote kept for retry")
			}
		})
	}
}

func TestRetryFromError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("network down")}
	c := newTestController(gen)

	c.Update(resultFrom(t, c.Request(quote(t, "F-004"))))
	if c.Status() != StatusError {
		t.Fatalf("Expected error, got %s", c.Status())
	}
	first := c.Session().Attempt

	gen.err = nil
	gen.img = &imagegen.Image{Data: []byte{7}, MIMEType: "image/jpeg"}
	cmd := c.Retry()

	s := c.Session()
	if s.Status != StatusGenerating {
		t.Fatalf("Expected generating after retry, got %s", s.Status)
	}
	if s.Err != nil || s.Result != nil {
		t.Error("Expected retry to clear previous error and result")
	}
	if s.Attempt == first {
		t.Error("Expected retry to be a new attempt")
	}

	c.Update(resultFrom(t, cmd))
	if c.Status() != StatusCompleted {
		t.Errorf("Expected completed after retry, got %s", c.Status())
	}
	if gen.callCount() != 2 {
		t.Errorf("Expected two collaborator calls, got %d", gen.callCount())
	}
}

func TestRetryWhileIdleIsNoop(t *testing.T) {
	gen := &fakeGenerator{}
	c := newTestController(gen)
	if cmd := c.Retry(); cmd != nil {
		t.Error("Expected nil command from idle retry")
	}
	if c.Status() != StatusIdle {
		t.Errorf("Expected idle, got %s", c.Status())
	}
}

func TestLateResultAfterRetryIsIgnored(t *testing.T) {
	gen := &fakeGenerator{img: &imagegen.Image{Data: []byte("A"), MIMEType: "image/png"}}
	c := newTestController(gen)

	stale := c.Request(quote(t, "F-001"))
	// Retry before the first request resolves
	current := c.Retry()

	staleMsg := resultFrom(t, stale)
	c.Update(staleMsg)
	if c.Status() != StatusGenerating {
		t.Fatalf("Stale result changed status to %s", c.Status())
	}
	if c.Session().Result != nil {
		t.Fatal("Stale result was applied")
	}

	gen.img = &imagegen.Image{Data: []byte("B"), MIMEType: "image/png"}
	c.Update(resultFrom(t, current))
	if got := string(c.Session().Result.Data); got != "B" {
		t.Errorf("Expected result from the current attempt, got %q", got)
	}
}

func TestLateResultAfterCloseIsIgnored(t *testing.T) {
	gen := &fakeGenerator{img: &imagegen.Image{Data: []byte("A")}}
	c := newTestController(gen)

	cmd := c.Request(quote(t, "F-002"))
	c.Close()
	c.Update(resultFrom(t, cmd))

	s := c.Session()
	if s.Status != StatusIdle || s.Quote != nil || s.Result != nil {
		t.Errorf("Expected idle session untouched by late result, got %+v", s)
	}
}

func TestLateResultAfterNewQuoteIsIgnored(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	c := newTestController(gen)

	first := c.Request(quote(t, "F-001"))
	c.Close()
	c.Request(quote(t, "F-005"))

	c.Update(resultFrom(t, first))
	s := c.Session()
	if s.Status != StatusGenerating || s.Quote.ID != "F-005" {
		t.Errorf("Expected F-005 still generating, got %s for %s", s.Status, s.Quote.ID)
	}
}

func TestRequestCancelsPreviousContext(t *testing.T) {
	var ctxs []context.Context
	gen := imagegen.GeneratorFunc(func(ctx context.Context, req imagegen.Request) (*imagegen.Image, error) {
		ctxs = append(ctxs, ctx)
		return nil, ctx.Err()
	})
	c := newTestController(gen)

	first := c.Request(quote(t, "F-001"))
	c.Retry()
	resultFrom(t, first)

	if len(ctxs) != 1 || ctxs[0].Err() == nil {
		t.Error("Expected the superseded request context to be cancelled")
	}
}

func TestProgressRotation(t *testing.T) {
	c := newTestController(&fakeGenerator{img: &imagegen.Image{Data: []byte{1}}})
	cmd := c.Request(quote(t, "F-006"))
	token := c.Session().Attempt

	next, handled := c.Update(ProgressMsg{Token: token})
	if !handled {
		t.Fatal("Expected ProgressMsg to be handled")
	}
	if next == nil {
		t.Error("Expected another tick while generating")
	}
	if c.Session().ProgressMessage != progressMessages[1] {
		t.Errorf("Expected rotated message %q, got %q", progressMessages[1], c.Session().ProgressMessage)
	}

	// A tick from an older attempt stops without touching the message
	if next, _ := c.Update(ProgressMsg{Token: token - 1}); next != nil {
		t.Error("Expected stale tick to stop")
	}

	c.Update(resultFrom(t, cmd))
	if next, _ := c.Update(ProgressMsg{Token: token}); next != nil {
		t.Error("Expected rotation to stop once completed")
	}
	if c.Session().ProgressMessage != "" {
		t.Error("Expected progress message cleared after completion")
	}
}

func TestUpdateIgnoresForeignMessages(t *testing.T) {
	c := newTestController(&fakeGenerator{})
	if _, handled := c.Update(tea.KeyMsg{}); handled {
		t.Error("Expected KeyMsg not to be handled")
	}
}

func TestRun(t *testing.T) {
	gen := &fakeGenerator{img: &imagegen.Image{Data: []byte{1, 2, 3}, MIMEType: "image/png"}}
	c := newTestController(gen)

	s := c.Run(context.Background(), quote(t, "F-008"))
	if s.Status != StatusCompleted || len(s.Result.Data) != 3 {
		t.Errorf("Expected completed session with result, got %+v", s)
	}
	if gen.calls[0].Seed != "iceberg-profundo-oceano" || gen.calls[0].AspectRatio != "9:16" {
		t.Errorf("Unexpected request %+v", gen.calls[0])
	}

	nilGen := NewController(nil)
	s = nilGen.Run(context.Background(), quote(t, "F-008"))
	if s.Status != StatusError || !errors.Is(s.Err, imagegen.ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey error session, got %s %v", s.Status, s.Err)
	}
}

func TestBuildPrompt(t *testing.T) {
	q := quote(t, "F-001")
	p := BuildPrompt(q)

	if p != BuildPrompt(q) {
		t.Error("Expected deterministic prompt")
	}
	for _, want := range []string{"9:16", "Theme: " + string(catalog.Unconscious), "Visual keywords: quimica-transformacion", "No text overlays"} {
		if !strings.Contains(p, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
	if strings.Contains(p, q.Text) {
		t.Error("Prompt must not embed the quote text")
	}
}

func TestStatusString(t *testing.T) {
	if StatusGenerating.String() != "generating" || Status(99).String() != "unknown" {
		t.Error("Unexpected status strings")
	}
}
