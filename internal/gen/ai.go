package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qian20010413/xinyunxuexi/internal/llm"
	"github.com/qian20010413/xinyunxuexi/internal/quiz"
)

// AI generation defaults. One batch covers a full session, so the token
// budget is generous.
const (
	aiMaxTokens   = 8192
	aiTemperature = 0.7
	aiTimeout     = 60 * time.Second
)

// AISource authors questions through an AI provider. It satisfies the
// same source interface as the Synthesizer so the session engine cannot
// tell them apart.
type AISource struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewAISource wraps provider as a question source.
func NewAISource(provider llm.Provider) *AISource {
	return &AISource{provider: provider, timeout: aiTimeout}
}

// aiQuestion is the shape each generated question must take on the wire.
type aiQuestion struct {
	Topic         string   `json:"topic"`
	Content       string   `json:"content"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

var aiQuestionsSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "为七年级学生生成的一组练习题",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"topic", "content", "correct_answer", "explanation"},
					"properties": map[string]any{
						"topic":   map[string]any{"type": "string", "description": "知识点名称"},
						"content": map[string]any{"type": "string", "description": "题目正文"},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "选择题提供 4 个选项（如 A. xxx），填空题提供空数组",
						},
						"correct_answer": map[string]any{"type": "string", "description": "正确答案：选择题为选项字母，填空题为数值或文字"},
						"explanation":    map[string]any{"type": "string", "description": "详细的解题思路和知识点解析"},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"concept", "easy", "medium", "challenge"},
						},
					},
				},
			},
		},
	},
}

const aiSystemPrompt = "你是一位经验丰富的初中教师，为七年级学生出题。" +
	"题目需要符合人教版教材标准，表述准确，答案唯一，侧重能力提优。" +
	"选择题的 correct_answer 必须是选项字母（如 A），不要写选项内容。"

// Questions generates count questions for subject. The excluded set is
// ignored; every AI question is fresh. A nil provider fails fast with
// llm.ErrNotConfigured.
func (a *AISource) Questions(ctx context.Context, subject quiz.Subject, count int, _ map[string]bool) ([]quiz.Question, error) {
	if a.provider == nil {
		return nil, llm.ErrNotConfigured
	}
	if !subject.Valid() {
		return nil, fmt.Errorf("unknown subject %q", subject)
	}
	if count <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", count)
	}

	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, "question-gen"), a.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"为七年级学生生成 %d 道%s学科的练习题。难度从基础概念逐步提升到综合挑战。"+
			"题型以选择题为主，可以穿插少量填空题。",
		count, subject.Label())

	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      aiSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      aiQuestionsSchema,
		MaxTokens:   aiMaxTokens,
		Temperature: aiTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	raw, err := unwrapQuestions(resp.Content)
	if err != nil {
		return nil, err
	}

	questions := make([]quiz.Question, 0, len(raw))
	for i, ai := range raw {
		q, ok := coerceQuestion(subject, ai, difficultyFor(i, len(raw)))
		if !ok {
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("no usable questions in response"),
		}
	}
	return questions, nil
}

// unwrapQuestions accepts either the schema's wrapped object or a bare
// array; models occasionally drop the wrapper.
func unwrapQuestions(content json.RawMessage) ([]aiQuestion, error) {
	var wrapped struct {
		Questions []aiQuestion `json:"questions"`
	}
	if err := json.Unmarshal(content, &wrapped); err == nil && len(wrapped.Questions) > 0 {
		return wrapped.Questions, nil
	}

	var bare []aiQuestion
	if err := json.Unmarshal(content, &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}

	return nil, &llm.ErrInvalidResponse{
		Content: content,
		Err:     fmt.Errorf("response is neither a questions object nor an array"),
	}
}

// coerceQuestion turns one wire question into the domain type, dropping
// entries that lack the essentials.
func coerceQuestion(subject quiz.Subject, ai aiQuestion, fallback quiz.Difficulty) (quiz.Question, bool) {
	if ai.Content == "" || ai.CorrectAnswer == "" {
		return quiz.Question{}, false
	}
	topic := ai.Topic
	if topic == "" {
		topic = "综合练习"
	}
	difficulty := quiz.Difficulty(ai.Difficulty)
	switch difficulty {
	case quiz.DifficultyConcept, quiz.DifficultyEasy, quiz.DifficultyMedium, quiz.DifficultyChallenge:
	default:
		difficulty = fallback
	}
	return quiz.Question{
		ID:            "ai-" + uuid.NewString(),
		Subject:       subject,
		Topic:         topic,
		Difficulty:    difficulty,
		Content:       ai.Content,
		Options:       ai.Options,
		CorrectAnswer: ai.CorrectAnswer,
		Explanation:   ai.Explanation,
	}, true
}
