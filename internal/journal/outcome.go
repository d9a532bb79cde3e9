package journal

import "github.com/Zuo-Peng/zip/internal/session"

// FromOutcome converts a finished summarization into a journal entry.
func FromOutcome(sessionID, model string, o session.Outcome) Entry {
	e := Entry{
		SessionID:    sessionID,
		TaskID:       o.TaskID,
		Model:        model,
		WindowSize:   o.WindowSize,
		MessageCount: o.MessageCount,
		Prompt:       o.Prompt,
		Result:       o.Summary,
		StartedAt:    o.StartedAt,
		Duration:     o.Duration,
	}
	if o.Err != nil {
		e.Result = ""
		e.Error = o.Err.Error()
	}
	return e
}
