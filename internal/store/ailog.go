package store

import (
	"context"
	"fmt"
	"time"
)

// AIRequest is one logged call to an AI provider.
type AIRequest struct {
	ID           int64
	CreatedAt    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LogAIRequest appends one provider call to the ai_requests log.
func (s *Store) LogAIRequest(ctx context.Context, r AIRequest) error {
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ai_requests
			(created_at, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.Unix(), r.Provider, r.Model, r.Purpose,
		r.InputTokens, r.OutputTokens, r.LatencyMs, boolToInt(r.Success), r.ErrorMessage)
	if err != nil {
		return fmt.Errorf("log ai request: %w", err)
	}
	return nil
}

// ListAIRequests returns the most recent provider calls, newest first.
func (s *Store) ListAIRequests(ctx context.Context, limit int) ([]AIRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, provider, model, purpose,
		       input_tokens, output_tokens, latency_ms, success, error_message
		FROM ai_requests ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list ai requests: %w", err)
	}
	defer rows.Close()

	var out []AIRequest
	for rows.Next() {
		var r AIRequest
		var created int64
		var success int
		if err := rows.Scan(&r.ID, &created, &r.Provider, &r.Model, &r.Purpose,
			&r.InputTokens, &r.OutputTokens, &r.LatencyMs, &success, &r.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan ai request: %w", err)
		}
		r.CreatedAt = time.Unix(created, 0)
		r.Success = success != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
