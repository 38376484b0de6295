// Package tui implements the interactive chat surface on Bubble Tea.
//
// Answers stream token by token: a command pumps deltas from the
// assistant onto a channel and the update loop re-arms a reader command
// after every event, so the transcript grows while the model talks.
// Esc cancels the in-flight answer without leaving the session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/hawker-labs/hawker/internal/assistant"
	"github.com/hawker-labs/hawker/internal/llm"
	"github.com/hawker-labs/hawker/internal/store"
)

// Answerer is the TUI-facing subset of the assistant.
type Answerer interface {
	AnswerStream(ctx context.Context, question string, history *assistant.History) (llm.Stream, []store.Match, error)
}

// streamEvent carries one step of an in-flight answer into the update
// loop. Exactly one event with done set closes every stream.
type streamEvent struct {
	delta   string
	matches []store.Match
	err     error
	done    bool
}

// Model is the Bubble Tea model for a chat session.
type Model struct {
	assistant Answerer
	history   *assistant.History
	sessionID string

	input    textinput.Model
	viewport viewport.Model
	ready    bool

	turns    []assistant.Turn
	question string
	pending  string

	streaming bool
	cancel    context.CancelFunc
	events    chan streamEvent

	status string
}

// New creates a chat model. historyTurns bounds the sliding window of
// past turns replayed into each prompt; <= 0 uses the default.
func New(a Answerer, historyTurns int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the catalog and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		assistant: a,
		history:   assistant.NewHistory(historyTurns),
		sessionID: uuid.New().String(),
		input:     ti,
		viewport:  vp,
		status:    "Ready. Esc cancels an answer, Ctrl+C quits.",
	}
}

// SessionID returns the identifier stamped on exported transcripts.
func (m Model) SessionID() string { return m.sessionID }

// Transcript returns the full unstyled conversation for export.
// Unlike the prompt history it is never windowed.
func (m Model) Transcript() string {
	var b strings.Builder
	for _, t := range m.turns {
		b.WriteString("## You\n\n")
		b.WriteString(t.Question)
		b.WriteString("\n\n## Assistant\n\n")
		b.WriteString(t.Answer)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and stream events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		tw, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + 1 + ih // header + status + input line + input frame
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-tw)
		m.viewport.Height = vh
		m.input.Width = maxInt(20, msg.Width-6)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			return m.submit()
		case "esc":
			if m.streaming && m.cancel != nil {
				m.cancel()
				m.status = "Cancelling..."
			}
			return m, nil
		case "pgup":
			m.viewport.LineUp(3)
			return m, nil
		case "pgdown":
			m.viewport.LineDown(3)
			return m, nil
		}

	case streamEvent:
		return m.applyStreamEvent(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("hawker chat")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.streaming {
		return m, nil
	}
	question := strings.TrimSpace(m.input.Value())
	if question == "" {
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.question = question
	m.pending = ""
	m.streaming = true
	m.cancel = cancel
	m.events = make(chan streamEvent)
	m.status = "Thinking..."
	m.input.SetValue("")
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()

	return m, tea.Batch(
		startStream(ctx, m.assistant, question, m.history, m.events),
		waitForEvent(m.events),
	)
}

func (m Model) applyStreamEvent(ev streamEvent) (tea.Model, tea.Cmd) {
	if !m.streaming {
		return m, nil
	}

	if ev.done {
		answer := m.pending
		switch {
		case ev.err != nil && errors.Is(ev.err, context.Canceled):
			answer += "\n\n*(cancelled)*"
			m.status = "Answer cancelled."
		case ev.err != nil:
			if answer == "" {
				answer = fmt.Sprintf("*(error: %v)*", ev.err)
			} else {
				answer += fmt.Sprintf("\n\n*(error: %v)*", ev.err)
			}
			m.status = "Error: " + ev.err.Error()
		default:
			m.history.Add(m.question, answer)
			m.status = "Ready."
		}
		m.turns = append(m.turns, assistant.Turn{Question: m.question, Answer: answer})
		m.question = ""
		m.pending = ""
		m.streaming = false
		m.cancel = nil
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	}

	if len(ev.matches) > 0 {
		m.status = fmt.Sprintf("Answering from %d matching products...", len(ev.matches))
	}
	if ev.delta != "" {
		m.pending += ev.delta
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
	}
	return m, waitForEvent(m.events)
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	for _, t := range m.turns {
		b.WriteString(questionStyle.Render("You: ") + t.Question + "\n\n")
		b.WriteString(t.Answer + "\n\n")
	}
	if m.question != "" {
		b.WriteString(questionStyle.Render("You: ") + m.question + "\n\n")
		if m.pending != "" {
			b.WriteString(m.pending)
		}
	}
	if b.Len() == 0 {
		return statusStyle.Render("Ask about the catalog to get started.")
	}
	if m.viewport.Width > 0 {
		return lipgloss.NewStyle().Width(m.viewport.Width).Render(b.String())
	}
	return b.String()
}

// startStream runs the assistant call and pumps every event, terminal
// one included, onto ch. The update loop keeps a reader armed until the
// done event arrives, so sends never strand.
func startStream(ctx context.Context, a Answerer, question string, history *assistant.History, ch chan<- streamEvent) tea.Cmd {
	return func() tea.Msg {
		stream, matches, err := a.AnswerStream(ctx, question, history)
		if err != nil {
			ch <- streamEvent{err: err, done: true}
			return nil
		}
		defer stream.Close()
		ch <- streamEvent{matches: matches}
		for stream.Next() {
			ch <- streamEvent{delta: stream.Current()}
		}
		ch <- streamEvent{err: stream.Err(), done: true}
		return nil
	}
}

// waitForEvent relays the next streamed event into the update loop.
func waitForEvent(ch <-chan streamEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

var (
	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F780FF"))
	questionStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD"))
	statusStyle        = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6272A4"))
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
