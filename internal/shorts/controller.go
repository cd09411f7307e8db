// Package shorts owns the lifecycle of a single "create short" request:
// idle, generating, then completed or error, with retry and close.
//
// The Controller is not safe for concurrent use. It is meant to be driven
// from a Bubble Tea Update loop: the commands it returns run elsewhere, but
// their messages come back through Update and only Update mutates state.
package shorts

import (
	"context"
	"errors"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nickpending/psyquotes/internal/catalog"
	"github.com/nickpending/psyquotes/internal/imagegen"
	"github.com/nickpending/psyquotes/internal/logging"
)

// Status is the state of the generation session
type Status int

const (
	StatusIdle Status = iota
	StatusGenerating
	StatusCompleted
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusGenerating:
		return "generating"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// DefaultProgressInterval is how often the progress message rotates
const DefaultProgressInterval = 2 * time.Second

// Session is a snapshot of the current generation attempt
type Session struct {
	Quote           *catalog.Quote
	Status          Status
	Result          *imagegen.Image
	ProgressMessage string
	Prompt          string
	// Attempt identifies the current request; stale messages carry an older value
	Attempt   uint64
	Err       error
	StartedAt time.Time
	Elapsed   time.Duration
}

// ResultMsg is delivered when a generation request resolves
type ResultMsg struct {
	Token uint64
	Image *imagegen.Image
	Err   error
}

// ProgressMsg is the periodic tick that rotates the progress message
type ProgressMsg struct {
	Token uint64
}

// Controller drives one generation session at a time
type Controller struct {
	gen      imagegen.Generator
	session  Session
	token    uint64
	cancel   context.CancelFunc
	interval time.Duration
	pick     func(n int) int
	now      func() time.Time
}

// Option configures a Controller
type Option func(*Controller)

// WithProgressInterval sets the progress rotation interval
func WithProgressInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithRand replaces the progress message picker
func WithRand(pick func(n int) int) Option {
	return func(c *Controller) {
		if pick != nil {
			c.pick = pick
		}
	}
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates an idle controller
func NewController(gen imagegen.Generator, opts ...Option) *Controller {
	c := &Controller{
		gen:      gen,
		interval: DefaultProgressInterval,
		pick:     rand.Intn,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetGenerator swaps the collaborator. The current attempt is unaffected.
func (c *Controller) SetGenerator(gen imagegen.Generator) {
	c.gen = gen
}

// Session returns a copy of the current session
func (c *Controller) Session() Session {
	return c.session
}

// Status returns the current status
func (c *Controller) Status() Status {
	return c.session.Status
}

// Active reports whether a session is open (any status but idle)
func (c *Controller) Active() bool {
	return c.session.Status != StatusIdle
}

// Request starts a fresh attempt for q, invalidating any previous one.
// The status is generating by the time Request returns.
func (c *Controller) Request(q catalog.Quote) tea.Cmd {
	generate, progress := c.begin(q)
	return tea.Batch(generate, progress)
}

// Retry starts a fresh attempt for the current quote. It is a no-op while idle.
func (c *Controller) Retry() tea.Cmd {
	if c.session.Status == StatusIdle || c.session.Quote == nil {
		return nil
	}
	q := *c.session.Quote
	logging.Info("short retry", "quote", q.ID, "from", c.session.Status.String())
	return c.Request(q)
}

// Close discards the session and ignores whatever the in-flight request returns
func (c *Controller) Close() {
	if c.session.Status == StatusIdle {
		return
	}
	quoteID := ""
	if c.session.Quote != nil {
		quoteID = c.session.Quote.ID
	}
	logging.Info("short closed", "quote", quoteID, "status", c.session.Status.String())
	c.invalidate()
	c.session = Session{Status: StatusIdle}
}

// Update applies a lifecycle message. It returns the follow-up command and
// whether msg belonged to the controller.
func (c *Controller) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ResultMsg:
		c.resolve(msg)
		return nil, true
	case ProgressMsg:
		return c.rotate(msg), true
	}
	return nil, false
}

// Run executes one full attempt synchronously. Used by the headless CLI.
func (c *Controller) Run(ctx context.Context, q catalog.Quote) Session {
	c.begin(q)
	token := c.token
	req := c.request()

	msg := generateCmd(ctx, c.gen, token, req)().(ResultMsg)
	c.resolve(msg)
	return c.session
}

func (c *Controller) begin(q catalog.Quote) (generate, progress tea.Cmd) {
	c.invalidate()
	c.token++

	quote := q
	c.session = Session{
		Quote:           &quote,
		Status:          StatusGenerating,
		ProgressMessage: initialProgress,
		Prompt:          BuildPrompt(q),
		Attempt:         c.token,
		StartedAt:       c.now(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	logging.Info("short requested", "quote", q.ID, "attempt", c.token)

	return generateCmd(ctx, c.gen, c.token, c.request()), c.tick(c.token)
}

func (c *Controller) request() imagegen.Request {
	seed := ""
	if c.session.Quote != nil {
		seed = c.session.Quote.VisualID
	}
	return imagegen.Request{
		Prompt:      c.session.Prompt,
		AspectRatio: imagegen.AspectPortrait,
		Seed:        seed,
	}
}

// invalidate cancels the in-flight request context. The token bump in begin
// or the reset in Close is what actually makes its result stale.
func (c *Controller) invalidate() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) current(token uint64) bool {
	return token == c.token && c.session.Status == StatusGenerating
}

func (c *Controller) resolve(msg ResultMsg) {
	if !c.current(msg.Token) {
		logging.Debug("stale result discarded", "token", msg.Token, "current", c.token)
		return
	}

	c.invalidate()
	c.session.Elapsed = c.now().Sub(c.session.StartedAt)
	c.session.ProgressMessage = ""

	err := msg.Err
	if err == nil && msg.Image.Empty() {
		err = imagegen.ErrEmptyResult
	}
	if err != nil {
		c.session.Status = StatusError
		c.session.Result = nil
		c.session.Err = err
		logging.Error("short failed", "quote", c.session.Quote.ID, "attempt", msg.Token,
			"duration", c.session.Elapsed, "empty", errors.Is(err, imagegen.ErrEmptyResult), "error", err)
		return
	}

	c.session.Status = StatusCompleted
	c.session.Result = msg.Image
	c.session.Err = nil
	logging.Info("short completed", "quote", c.session.Quote.ID, "attempt", msg.Token,
		"duration", c.session.Elapsed, "mime", msg.Image.MIMEType, "bytes", len(msg.Image.Data))
}

func (c *Controller) rotate(msg ProgressMsg) tea.Cmd {
	if !c.current(msg.Token) {
		return nil
	}
	c.session.ProgressMessage = progressMessages[c.pick(len(progressMessages))]
	return c.tick(msg.Token)
}

func (c *Controller) tick(token uint64) tea.Cmd {
	return tea.Tick(c.interval, func(time.Time) tea.Msg {
		return ProgressMsg{Token: token}
	})
}

// generateCmd issues exactly one request to the collaborator
func generateCmd(ctx context.Context, gen imagegen.Generator, token uint64, req imagegen.Request) tea.Cmd {
	return func() tea.Msg {
		if gen == nil {
			return ResultMsg{Token: token, Err: imagegen.ErrNoAPIKey}
		}
		img, err := gen.Generate(ctx, req)
		return ResultMsg{Token: token, Image: img, Err: err}
	}
}
