package dummy

import (
	"context"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

func TestCall(t *testing.T) {
	b := NewBackend()
	b.GenerateText = func(string) string { return "SCRIPTED" }

	got, err := b.Call(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got != "SCRIPTED" {
		t.Errorf("Expected 'SCRIPTED', got %q", got)
	}
	if b.LastPrompt != "hello" {
		t.Errorf("Expected LastPrompt 'hello', got %q", b.LastPrompt)
	}
	if b.Calls != 1 {
		t.Errorf("Expected 1 call, got %d", b.Calls)
	}
}

func TestStreamingMatchesContent(t *testing.T) {
	b := NewBackend()
	b.GenerateText = func(string) string { return "one two three" }

	var streamed strings.Builder
	got, err := b.Call(context.Background(), "hi", llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
		streamed.Write(chunk)
		return nil
	}))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if streamed.String() != got {
		t.Errorf("Streamed content %q does not match returned content %q", streamed.String(), got)
	}
}
