package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/Zuo-Peng/zip/internal/journal"
	"github.com/Zuo-Peng/zip/internal/session"
)

// Options configures the chat TUI.
type Options struct {
	Coordinator   *session.Coordinator
	Journal       *journal.DB // optional
	Model         string      // engine model name, for the journal
	DefaultWindow int
	Logger        zerolog.Logger

	// MarkdownStyle is a glamour standard style; empty picks one from the
	// terminal background.
	MarkdownStyle string
}

// model

type model struct {
	ctx     context.Context
	coord   *session.Coordinator
	journal *journal.DB
	engine  string
	logger  zerolog.Logger

	input       textinput.Model
	count       textinput.Model
	chatView    viewport.Model
	summaryView viewport.Model
	spinner     spinner.Model

	mdStyle string
	md      *glamour.TermRenderer
	mdWidth int

	status   string
	width    int
	height   int
	ready    bool
	quitting bool
}

func newModel(ctx context.Context, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Digite uma mensagem..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 4096

	window := opts.DefaultWindow
	if window <= 0 {
		window = 100
	}
	ci := textinput.New()
	ci.Placeholder = "Número"
	ci.SetValue(strconv.Itoa(window))
	ci.Prompt = "# "
	ci.PromptStyle = styleInputPrompt
	ci.TextStyle = styleInput
	ci.CharLimit = 9

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSpinner

	return model{
		ctx:         ctx,
		coord:       opts.Coordinator,
		journal:     opts.Journal,
		engine:      opts.Model,
		logger:      opts.Logger,
		input:       ti,
		count:       ci,
		chatView:    viewport.New(0, 0),
		summaryView: viewport.New(0, 0),
		spinner:     sp,
		mdStyle:     opts.MarkdownStyle,
	}
}

// Run starts the TUI and blocks until the user leaves the chat screen.
func Run(ctx context.Context, opts Options) error {
	if opts.Coordinator == nil {
		return errors.New("tui: nil coordinator")
	}
	m := newModel(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. It is the only place coordinator state changes.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.chatView = viewport.New(m.panelWidth(), m.panelHeight())
		m.summaryView = newViewport(m.panelWidth(), m.summaryHeight())
		m.refreshChat()
		m.refreshSummary()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.coord.State().Screen == session.ScreenSummary {
			return m.handleSummaryKey(msg)
		}
		return m.handleChatKey(msg)

	case spinner.TickMsg:
		if !m.coord.State().InFlight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case summaryDoneMsg:
		if !m.coord.Complete(msg.outcome) {
			return m, nil
		}
		s := m.coord.State()
		if msg.outcome.Err != nil {
			m.status = "Falha ao resumir: " + s.LastError
		} else {
			m.status = fmt.Sprintf("Resumo de %d mensagens pronto em %s", msg.outcome.MessageCount, msg.outcome.Duration.Round(100*time.Millisecond))
		}
		m.refreshSummary()
		if m.journal != nil {
			cmds = append(cmds, recordCmd(m.journal, journal.FromOutcome(m.coord.ID(), m.engine, msg.outcome)))
		}
		return m, tea.Batch(cmds...)

	case journalRecordedMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("record summary")
		} else {
			m.logger.Debug().Int64("id", msg.id).Msg("summary recorded")
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.status = "Não foi possível copiar: " + msg.err.Error()
		} else {
			m.status = "Resumo copiado"
		}
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

func (m model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Summarize):
		m.coord.RequestSummaryScreen()
		m.input.Blur()
		m.status = ""
		m.refreshSummary()
		cmds := []tea.Cmd{m.count.Focus()}
		if m.coord.State().InFlight {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, keys.Send):
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.coord.Append(text)
		m.input.Reset()
		m.refreshChat()
		return m, nil

	case key.Matches(msg, keys.PageUp):
		m.chatView.LineUp(m.panelHeight() / 2)
		return m, nil

	case key.Matches(msg, keys.PageDown):
		m.chatView.LineDown(m.panelHeight() / 2)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.coord.ReturnToChat()
		m.count.Blur()
		m.status = ""
		m.refreshChat()
		return m, m.input.Focus()

	case key.Matches(msg, keys.Send):
		task, err := m.coord.SubmitSummarization(m.count.Value())
		switch {
		case errors.Is(err, session.ErrBusy):
			m.status = "Aguarde, o resumo anterior ainda está sendo gerado"
			return m, nil
		case err != nil:
			m.status = err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Resumindo %d mensagens...", len(task.Window))
		return m, tea.Batch(runTaskCmd(m.ctx, task), m.spinner.Tick)

	case key.Matches(msg, keys.Copy):
		s := m.coord.State()
		if !s.HasSummary {
			return m, nil
		}
		return m, copyCmd(s.Summary)

	case key.Matches(msg, keys.PageUp):
		m.summaryView.LineUp(m.summaryHeight() / 2)
		return m, nil

	case key.Matches(msg, keys.PageDown):
		m.summaryView.LineDown(m.summaryHeight() / 2)
		return m, nil
	}

	var cmd tea.Cmd
	m.count, cmd = m.count.Update(msg)
	return m, cmd
}

// View renders the active screen.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}
	if m.coord.State().Screen == session.ScreenSummary {
		return m.viewSummary()
	}
	return m.viewChat()
}

func (m model) viewChat() string {
	title := styleTitle.Render(fmt.Sprintf("zip · %d mensagens", len(m.coord.Messages())))
	panel := styleActiveBorder.
		Width(m.panelWidth()).
		Height(m.panelHeight()).
		Render(m.chatView.View())
	return lipgloss.JoinVertical(lipgloss.Left, title, panel, m.input.View(), m.statusBar())
}

func (m model) viewSummary() string {
	s := m.coord.State()

	title := styleTitle.Render("Resumo")
	lines := []string{title, m.summaryView.View()}

	if s.InFlight {
		lines = append(lines, m.spinner.View()+" gerando resumo...")
	} else if s.LastError != "" {
		lines = append(lines, styleError.Render(s.LastError))
	} else {
		lines = append(lines, "")
	}

	label := styleLabel.Render(fmt.Sprintf("Resumir as últimas %s mensagens", strings.TrimSpace(m.count.Value())))
	lines = append(lines, label, m.count.View(), m.statusBar())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// helper methods

func (m *model) refreshChat() {
	m.chatView.SetContent(renderMessages(m.coord.Messages(), m.panelWidth()))
	m.chatView.GotoBottom()
}

func (m *model) refreshSummary() {
	width := m.panelWidth() - 2
	if m.md == nil || m.mdWidth != width {
		m.md = newMarkdownRenderer(m.mdStyle, width)
		m.mdWidth = width
	}
	m.summaryView.SetContent(renderSummary(m.md, m.coord.State()))
	m.summaryView.GotoTop()
}

func (m model) panelWidth() int {
	if m.width <= 0 {
		return 80
	}
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// title (1) + input (1) + status bar (1) + borders (2)
	h := m.height - 5
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) summaryHeight() int {
	if m.height <= 0 {
		return 15
	}
	// title, progress, label, input, status (5) + borders (2)
	h := m.height - 7
	if h < 3 {
		h = 3
	}
	return h
}

func (m model) statusBar() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.coord.State().Screen == session.ScreenSummary {
		parts = append(parts, "enter resumir", "C-y copiar", "pgup/pgdn rolar", "esc voltar")
	} else {
		parts = append(parts, "enter enviar", "C-s resumir", "pgup/pgdn rolar", "esc sair")
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
