package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/qian20010413/xinyunxuexi/internal/store"
)

// RequestLog receives one record per provider call. *store.Store
// implements it.
type RequestLog interface {
	LogAIRequest(ctx context.Context, r store.AIRequest) error
}

// loggingProvider decorates a Provider so every call, successful or not,
// lands in the request log.
type loggingProvider struct {
	inner Provider
	log   RequestLog
}

// WithLogging wraps p so calls are recorded in log.
func WithLogging(p Provider, log RequestLog) Provider {
	return &loggingProvider{inner: p, log: log}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	rec := store.AIRequest{
		Provider:  providerName(l.inner.ModelID()),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		rec.Model = resp.Model
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// A failed log entry must not fail the generation itself.
	if logErr := l.log.LogAIRequest(ctx, rec); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log AI request: %v\n", logErr)
	}

	return resp, err
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// providerName guesses the provider family from a model ID for the log.
func providerName(modelID string) string {
	switch {
	case strings.Contains(modelID, "/"):
		return "openrouter"
	case strings.HasPrefix(modelID, "gemini"):
		return "gemini"
	case strings.HasPrefix(modelID, "claude"):
		return "anthropic"
	case strings.HasPrefix(modelID, "gpt"), strings.HasPrefix(modelID, "o1"),
		strings.HasPrefix(modelID, "o3"), strings.HasPrefix(modelID, "o4"):
		return "openai"
	case modelID == "mock":
		return "mock"
	}
	return modelID
}
