package session

import (
	"context"
	"time"

	"github.com/Zuo-Peng/zip/internal/chat"
	"github.com/Zuo-Peng/zip/internal/engine"
)

// Task is one dispatched summarization. Run is safe to call from any
// goroutine; it only touches the task's own copy of the window.
type Task struct {
	ID         uint64
	WindowSize int
	Window     []chat.Message
	Prompt     string
	StartedAt  time.Time

	engine engine.Summarizer
	now    func() time.Time
}

// Outcome is the result of running a Task, to be handed back to
// Coordinator.Complete on the owning goroutine.
type Outcome struct {
	TaskID       uint64
	WindowSize   int
	MessageCount int
	Prompt       string
	Summary      string
	Err          error
	StartedAt    time.Time
	Duration     time.Duration
}

// Run calls the engine and blocks until it answers.
func (t *Task) Run(ctx context.Context) Outcome {
	summary, err := t.engine.Summarize(ctx, t.Prompt)
	return Outcome{
		TaskID:       t.ID,
		WindowSize:   t.WindowSize,
		MessageCount: len(t.Window),
		Prompt:       t.Prompt,
		Summary:      summary,
		Err:          err,
		StartedAt:    t.StartedAt,
		Duration:     t.now().Sub(t.StartedAt),
	}
}
