package ai

import (
	"reflect"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/aurachat/aura/backend/internal/model/chat"
)

func sampleTranscript() []Turn {
	return []Turn{
		{Role: chat.RoleUser, Content: "I failed my exam"},
		{Role: chat.RoleAssistant, Content: "That sounds really hard."},
		{Role: chat.RoleUser, Content: "everything feels heavy"},
	}
}

func TestAssembleHistoryPreservesOrderAndRoles(t *testing.T) {
	history := AssembleHistory(sampleTranscript(), 10)

	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	wantRoles := []schema.RoleType{schema.User, schema.Assistant, schema.User}
	for i, msg := range history {
		if msg.Role != wantRoles[i] {
			t.Fatalf("turn %d role = %s, want %s", i, msg.Role, wantRoles[i])
		}
	}
	if history[0].Content != "I failed my exam" {
		t.Fatalf("unexpected first turn: %q", history[0].Content)
	}
}

func TestAssembleHistoryIdempotent(t *testing.T) {
	first := AssembleHistory(sampleTranscript(), 10)
	second := AssembleHistory(sampleTranscript(), 10)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different assemblies")
	}
}

func TestAssembleHistoryClampsWindow(t *testing.T) {
	transcript := make([]Turn, 0, 30)
	for i := 0; i < 15; i++ {
		transcript = append(transcript,
			Turn{Role: chat.RoleUser, Content: "user turn"},
			Turn{Role: chat.RoleAssistant, Content: "assistant turn"},
		)
	}

	history := AssembleHistory(transcript, 10)
	if len(history) != 10 {
		t.Fatalf("history length = %d, want 10", len(history))
	}
}

func TestAssembleHistorySkipsUnknownRoles(t *testing.T) {
	history := AssembleHistory([]Turn{
		{Role: "system", Content: "should not pass through"},
		{Role: chat.RoleUser, Content: "hello"},
	}, 10)

	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
}

func TestAssembleHistoryEmptyTranscript(t *testing.T) {
	if got := AssembleHistory(nil, 10); got != nil {
		t.Fatalf("empty transcript assembled to %v", got)
	}
}

func TestTurnsFromMessages(t *testing.T) {
	turns := TurnsFromMessages([]chat.Message{
		{Role: chat.RoleUser, Content: "hi"},
		{Role: chat.RoleAssistant, Content: "hello"},
	})

	if len(turns) != 2 || turns[0].Content != "hi" || turns[1].Role != chat.RoleAssistant {
		t.Fatalf("unexpected turns: %+v", turns)
	}
}
