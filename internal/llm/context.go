package llm

import "context"

type contextKey string

const purposeKey contextKey = "ai_purpose"

// WithPurpose labels the context so the request log records what a call
// was for (e.g. "question-gen").
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label, "unknown" when absent.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
