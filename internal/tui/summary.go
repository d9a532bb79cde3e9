package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/Zuo-Peng/zip/internal/journal"
	"github.com/Zuo-Peng/zip/internal/session"
)

// summaryDoneMsg carries a finished task back to the UI loop.
type summaryDoneMsg struct {
	outcome session.Outcome
}

type journalRecordedMsg struct {
	id  int64
	err error
}

type clipboardMsg struct {
	err error
}

// runTaskCmd runs the summarization off the UI loop. bubbletea executes
// commands on their own goroutine.
func runTaskCmd(ctx context.Context, task *session.Task) tea.Cmd {
	return func() tea.Msg {
		return summaryDoneMsg{outcome: task.Run(ctx)}
	}
}

func recordCmd(db *journal.DB, e journal.Entry) tea.Cmd {
	return func() tea.Msg {
		id, err := db.Record(e)
		return journalRecordedMsg{id: id, err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(text)}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}

// newMarkdownRenderer returns nil when glamour cannot build a renderer; the
// summary is then shown as plain text.
func newMarkdownRenderer(style string, width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(width))
	if err != nil {
		return nil
	}
	return r
}

// renderSummary formats the current state for the summary viewport.
func renderSummary(r *glamour.TermRenderer, s session.State) string {
	if !s.HasSummary {
		return styleTitle.Render("Nenhum resumo ainda. Escolha quantas mensagens resumir e tecle enter.")
	}
	if r == nil {
		return s.Summary
	}
	out, err := r.Render(s.Summary)
	if err != nil {
		return s.Summary
	}
	return strings.TrimRight(out, "\n")
}
