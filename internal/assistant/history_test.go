package assistant

import (
	"fmt"
	"testing"

	"github.com/hawker-labs/hawker/internal/llm"
)

func TestHistory_AddAndMessages(t *testing.T) {
	history := NewHistory(12)
	history.Add("Any good guitar strings?", "Yes, try the phosphor bronze set.")
	history.Add("Do they rust?", "They are corrosion resistant.")

	messages := history.Messages()

	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0].Role != llm.RoleUser || messages[0].Content != "Any good guitar strings?" {
		t.Errorf("unexpected first message: %+v", messages[0])
	}
	if messages[1].Role != llm.RoleAssistant {
		t.Errorf("expected assistant reply second, got %s", messages[1].Role)
	}
	if messages[3].Content != "They are corrosion resistant." {
		t.Errorf("unexpected last message: %+v", messages[3])
	}
}

func TestHistory_SlidingWindow(t *testing.T) {
	history := NewHistory(3)
	for i := 1; i <= 5; i++ {
		history.Add(fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i))
	}

	if history.Len() != 3 {
		t.Fatalf("expected window of 3 turns, got %d", history.Len())
	}

	turns := history.Turns()
	if turns[0].Question != "question 3" {
		t.Errorf("expected oldest retained turn to be question 3, got %s", turns[0].Question)
	}
	if turns[2].Question != "question 5" {
		t.Errorf("expected newest turn to be question 5, got %s", turns[2].Question)
	}
}

func TestHistory_DefaultWindow(t *testing.T) {
	history := NewHistory(0)
	for i := 0; i < DefaultMaxTurns+5; i++ {
		history.Add("q", "a")
	}

	if history.Len() != DefaultMaxTurns {
		t.Errorf("expected default window of %d, got %d", DefaultMaxTurns, history.Len())
	}
}

func TestHistory_TurnsCopy(t *testing.T) {
	history := NewHistory(5)
	history.Add("q", "a")

	turns := history.Turns()
	turns[0].Question = "mutated"

	if history.Turns()[0].Question != "q" {
		t.Error("Turns should return a copy, not the backing slice")
	}
}

func TestHistory_Empty(t *testing.T) {
	history := NewHistory(5)

	if history.Len() != 0 {
		t.Errorf("expected empty history, got %d turns", history.Len())
	}
	if len(history.Messages()) != 0 {
		t.Error("expected no messages for empty history")
	}
}
