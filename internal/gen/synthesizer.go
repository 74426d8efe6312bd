package gen

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/qian20010413/xinyunxuexi/internal/quiz"
)

// Synthesizer produces questions locally: math by template synthesis,
// other subjects by sampling the built-in banks. It is not safe for
// concurrent use; the app drives it from a single update loop.
type Synthesizer struct {
	rng Rand
}

// NewSynthesizer returns a Synthesizer drawing from rng.
func NewSynthesizer(rng Rand) *Synthesizer {
	return &Synthesizer{rng: rng}
}

// Questions produces count questions for subject. For bank-backed subjects
// the excluded set filters out already-served bank IDs; when nothing is
// left it returns ErrBankExhausted and no questions. Math ignores excluded
// because every synthesized question is fresh.
func (s *Synthesizer) Questions(ctx context.Context, subject quiz.Subject, count int, excluded map[string]bool) ([]quiz.Question, error) {
	if !subject.Valid() {
		return nil, fmt.Errorf("unknown subject %q", subject)
	}
	if count <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", count)
	}
	if subject == quiz.SubjectMath {
		return s.synthesizeMath(count), nil
	}
	return s.sampleBank(subject, count, excluded)
}

func (s *Synthesizer) synthesizeMath(count int) []quiz.Question {
	questions := make([]quiz.Question, 0, count)
	for i := 0; i < count; i++ {
		difficulty := difficultyFor(i, count)
		pool := mathTemplates[difficulty]
		tpl := pool[s.rng.IntN(len(pool))]
		d := tpl.build(s.rng)
		questions = append(questions, quiz.Question{
			ID:            "math-" + uuid.NewString(),
			Subject:       quiz.SubjectMath,
			Topic:         tpl.topic,
			Difficulty:    difficulty,
			Content:       d.content,
			CorrectAnswer: d.answer,
			Explanation:   d.explanation,
			Diagram:       d.diagram,
		})
	}
	return questions
}

func (s *Synthesizer) sampleBank(subject quiz.Subject, count int, excluded map[string]bool) ([]quiz.Question, error) {
	bank := builtinBanks[subject]
	available := make([]quiz.Question, 0, len(bank))
	for _, q := range bank {
		if !excluded[q.ID] {
			available = append(available, q)
		}
	}
	if len(available) == 0 {
		return nil, ErrBankExhausted
	}
	// Fisher-Yates over the available entries, then take the prefix.
	for i := len(available) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		available[i], available[j] = available[j], available[i]
	}
	if count < len(available) {
		available = available[:count]
	}
	return available, nil
}

// difficultyFor ramps the tier with the question's position: the first
// quarter is concept work, up to 60% easy application, up to 85% medium,
// and the tail is challenge material.
func difficultyFor(index, total int) quiz.Difficulty {
	p := index * 100 / total
	switch {
	case p < 25:
		return quiz.DifficultyConcept
	case p < 60:
		return quiz.DifficultyEasy
	case p < 85:
		return quiz.DifficultyMedium
	default:
		return quiz.DifficultyChallenge
	}
}
