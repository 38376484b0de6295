package assistant

import "github.com/hawker-labs/hawker/internal/llm"

// DefaultMaxTurns bounds the chat history window. Older turns fall off the
// front so session memory cannot grow without bound.
const DefaultMaxTurns = 12

// Turn is one completed question/answer exchange.
type Turn struct {
	Question string
	Answer   string
}

// History is a caller-owned sliding window of completed turns, prepended
// verbatim to each request.
type History struct {
	maxTurns int
	turns    []Turn
}

// NewHistory creates a history bounded to maxTurns exchanges
// (DefaultMaxTurns when maxTurns <= 0).
func NewHistory(maxTurns int) *History {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &History{maxTurns: maxTurns}
}

// Add records a completed turn, evicting the oldest once the window is full.
func (h *History) Add(question, answer string) {
	h.turns = append(h.turns, Turn{Question: question, Answer: answer})
	if len(h.turns) > h.maxTurns {
		h.turns = h.turns[len(h.turns)-h.maxTurns:]
	}
}

// Len returns the number of retained turns.
func (h *History) Len() int {
	return len(h.turns)
}

// Turns returns the retained turns, oldest first.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Messages renders the retained turns as alternating user/assistant
// messages, oldest first.
func (h *History) Messages() []llm.Message {
	messages := make([]llm.Message, 0, 2*len(h.turns))
	for _, turn := range h.turns {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: turn.Question},
			llm.Message{Role: llm.RoleAssistant, Content: turn.Answer},
		)
	}
	return messages
}
