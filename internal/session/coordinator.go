package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Zuo-Peng/zip/internal/chat"
	"github.com/Zuo-Peng/zip/internal/engine"
	"github.com/Zuo-Peng/zip/internal/metrics"
	"github.com/Zuo-Peng/zip/internal/prompt"
)

const timestampLayout = "15:04"

// Coordinator owns the message log and the summary state machine.
//
// Every method must be called from the same goroutine (the UI loop). Only
// Task.Run may execute elsewhere; its Outcome comes back through Complete.
type Coordinator struct {
	id      string
	log     *chat.Log
	builder *prompt.Builder
	engine  engine.Summarizer
	initErr error
	logger  zerolog.Logger
	now     func() time.Time
	author  string

	state   State
	lastID  uint64
	pending *Task
	subs    []func(State)
}

type Option func(*Coordinator)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithEngineError marks the engine as unavailable for the whole session.
func WithEngineError(err error) Option {
	return func(c *Coordinator) { c.initErr = err }
}

// WithLocalAuthor overrides the author used by Append.
func WithLocalAuthor(name string) Option {
	return func(c *Coordinator) {
		if strings.TrimSpace(name) != "" {
			c.author = name
		}
	}
}

// New returns a coordinator in the chat screen with no summary. eng may be
// nil when the engine could not be initialized.
func New(log *chat.Log, builder *prompt.Builder, eng engine.Summarizer, opts ...Option) *Coordinator {
	c := &Coordinator{
		id:      uuid.NewString(),
		log:     log,
		builder: builder,
		engine:  eng,
		logger:  zerolog.Nop(),
		now:     time.Now,
		author:  chat.LocalAuthor,
		state:   State{Screen: ScreenChat},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = chat.NewLog()
	}
	if c.builder == nil {
		c.builder = prompt.Default()
	}
	c.logger = c.logger.With().Str("session", c.id).Logger()
	return c
}

// ID identifies this session in logs and the summary journal.
func (c *Coordinator) ID() string {
	return c.id
}

func (c *Coordinator) State() State {
	return c.state
}

// Subscribe registers fn to receive the state after every transition.
func (c *Coordinator) Subscribe(fn func(State)) {
	c.subs = append(c.subs, fn)
}

func (c *Coordinator) Messages() []chat.Message {
	return c.log.Snapshot()
}

// Append adds a message from the local user, stamped with the current time.
func (c *Coordinator) Append(content string) chat.Message {
	m := c.log.Append(chat.Message{
		Timestamp: c.now().Format(timestampLayout),
		Author:    c.author,
		Content:   content,
	})
	metrics.MessagesAppended.Inc()
	c.logger.Debug().Uint64("message_id", m.ID).Int("len", len(content)).Msg("message appended")
	return m
}

func (c *Coordinator) RequestSummaryScreen() {
	if c.state.Screen == ScreenSummary {
		return
	}
	c.state.Screen = ScreenSummary
	c.logger.Debug().Bool("in_flight", c.state.InFlight).Msg("summary screen")
	c.publish()
}

// ReturnToChat leaves the summary screen. An in-flight request keeps running.
func (c *Coordinator) ReturnToChat() {
	if c.state.Screen == ScreenChat {
		return
	}
	c.state.Screen = ScreenChat
	c.logger.Debug().Bool("in_flight", c.state.InFlight).Msg("chat screen")
	c.publish()
}

// SubmitSummarization parses raw as a message count and, if valid, marks a
// summary as in flight and returns the task to run in the background.
// Nothing is dispatched when an error is returned.
func (c *Coordinator) SubmitSummarization(raw string) (*Task, error) {
	if c.state.InFlight {
		metrics.SummariesRejected.WithLabelValues("busy").Inc()
		c.logger.Debug().Uint64("pending", c.state.PendingID).Msg("submission ignored while in flight")
		return nil, ErrBusy
	}

	n, err := ParseWindowSize(raw)
	if err != nil {
		metrics.SummariesRejected.WithLabelValues("parse").Inc()
		c.reject(err)
		return nil, err
	}

	if c.engine == nil {
		metrics.SummariesRejected.WithLabelValues("no_engine").Inc()
		err := ErrNoEngine
		if c.initErr != nil {
			err = fmt.Errorf("%w: %v", ErrNoEngine, c.initErr)
		}
		c.reject(err)
		return nil, err
	}

	window := chat.SelectLast(c.log.Snapshot(), n)
	if len(window) == 0 {
		metrics.SummariesRejected.WithLabelValues("empty").Inc()
		c.reject(ErrEmptyWindow)
		return nil, ErrEmptyWindow
	}

	text, err := c.builder.Build(window)
	if err != nil {
		c.reject(err)
		return nil, err
	}

	c.lastID++
	task := &Task{
		ID:         c.lastID,
		WindowSize: n,
		Window:     window,
		Prompt:     text,
		StartedAt:  c.now(),
		engine:     c.engine,
		now:        c.now,
	}
	c.pending = task

	c.state.InFlight = true
	c.state.PendingID = task.ID
	c.state.WindowInput = strings.TrimSpace(raw)
	c.state.LastError = ""

	metrics.SummariesRequested.Inc()
	c.logger.Info().
		Uint64("task", task.ID).
		Int("window", n).
		Int("messages", len(window)).
		Msg("summary dispatched")
	c.publish()
	return task, nil
}

// Complete applies o if it belongs to the in-flight task. It returns false,
// without touching state, for stale or repeated outcomes.
func (c *Coordinator) Complete(o Outcome) bool {
	if c.pending == nil || c.pending.ID != o.TaskID {
		c.logger.Warn().Uint64("task", o.TaskID).Msg("ignoring outcome for unknown task")
		return false
	}
	c.pending = nil
	c.state.InFlight = false
	c.state.PendingID = 0

	metrics.InferenceDuration.Observe(o.Duration.Seconds())
	if o.Err != nil {
		metrics.SummariesCompleted.WithLabelValues("error").Inc()
		c.state.LastError = o.Err.Error()
		c.logger.Error().Err(o.Err).Uint64("task", o.TaskID).Dur("duration", o.Duration).Msg("summary failed")
		c.publish()
		return true
	}

	metrics.SummariesCompleted.WithLabelValues("ok").Inc()
	c.state.Summary = o.Summary
	c.state.HasSummary = true
	c.state.LastError = ""
	c.logger.Info().Uint64("task", o.TaskID).Dur("duration", o.Duration).Int("len", len(o.Summary)).Msg("summary ready")
	c.publish()
	return true
}

func (c *Coordinator) reject(err error) {
	c.state.LastError = err.Error()
	c.logger.Debug().Err(err).Msg("summary rejected")
	c.publish()
}

func (c *Coordinator) publish() {
	s := c.state
	for _, fn := range c.subs {
		fn(s)
	}
}

// ParseWindowSize parses a user-typed message count. Only positive integers
// are accepted; surrounding whitespace is ignored.
func ParseWindowSize(raw string) (int, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, &ParseError{Input: raw}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &ParseError{Input: raw, Err: err}
	}
	if n <= 0 {
		return 0, &ParseError{Input: raw}
	}
	return n, nil
}
