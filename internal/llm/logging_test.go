package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/qian20010413/xinyunxuexi/internal/store"
)

// captureLog records AI request entries in memory.
type captureLog struct {
	entries []store.AIRequest
}

func (c *captureLog) LogAIRequest(_ context.Context, r store.AIRequest) error {
	c.entries = append(c.entries, r)
	return nil
}

func TestLoggingRecordsSuccess(t *testing.T) {
	log := &captureLog{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{}`),
		Usage:   Usage{InputTokens: 100, OutputTokens: 500},
	})
	p := WithLogging(mock, log)

	ctx := WithPurpose(context.Background(), "question-gen")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(log.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(log.entries))
	}
	e := log.entries[0]
	if !e.Success || e.Purpose != "question-gen" {
		t.Errorf("entry = %+v", e)
	}
	if e.InputTokens != 100 || e.OutputTokens != 500 {
		t.Errorf("tokens = %d/%d", e.InputTokens, e.OutputTokens)
	}
}

func TestLoggingRecordsFailure(t *testing.T) {
	log := &captureLog{}
	p := WithLogging(NewMockProvider(), log) // empty queue fails

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected provider error")
	}
	if len(log.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(log.entries))
	}
	e := log.entries[0]
	if e.Success || e.ErrorMessage == "" {
		t.Errorf("entry = %+v, want recorded failure", e)
	}
	if e.Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown default", e.Purpose)
	}
}

func TestProviderNameHeuristics(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"gemini-2.0-flash", "gemini"},
		{"gpt-4o-mini", "openai"},
		{"o3-mini", "openai"},
		{"claude-haiku-4-5-20251001", "anthropic"},
		{"google/gemini-2.0-flash-exp", "openrouter"},
		{"mock", "mock"},
	}
	for _, tt := range tests {
		if got := providerName(tt.model); got != tt.want {
			t.Errorf("providerName(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("known model has no pricing")
	}
	got := c.Cost(1_000_000, 1_000_000)
	if got != 0.75 {
		t.Errorf("cost = %v, want 0.75", got)
	}
	if LookupCost("some-unknown-model") != nil {
		t.Error("unknown model should have nil pricing")
	}
}
