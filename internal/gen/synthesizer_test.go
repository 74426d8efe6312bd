package gen

import (
	"context"
	"errors"
	mathrand "math/rand/v2"
	"strings"
	"testing"

	"github.com/qian20010413/xinyunxuexi/internal/quiz"
)

// scriptedRand replays a fixed sequence so template parameters are exact.
type scriptedRand struct {
	vals []int
	pos  int
}

func (s *scriptedRand) IntN(n int) int {
	if s.pos >= len(s.vals) {
		return 0
	}
	v := s.vals[s.pos] % n
	s.pos++
	return v
}

func testRand() *mathrand.Rand {
	return mathrand.New(mathrand.NewPCG(7, 11))
}

func TestSynthesizeMathSession(t *testing.T) {
	s := NewSynthesizer(testRand())
	qs, err := s.Questions(context.Background(), quiz.SubjectMath, 20, nil)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(qs) != 20 {
		t.Fatalf("got %d questions, want 20", len(qs))
	}
	seen := map[string]bool{}
	for i, q := range qs {
		if q.Subject != quiz.SubjectMath {
			t.Errorf("question %d: subject %q", i, q.Subject)
		}
		if q.Content == "" || q.CorrectAnswer == "" || q.Explanation == "" {
			t.Errorf("question %d: incomplete fields: %+v", i, q)
		}
		if !strings.HasPrefix(q.ID, "math-") {
			t.Errorf("question %d: id %q lacks math- prefix", i, q.ID)
		}
		if seen[q.ID] {
			t.Errorf("question %d: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = true
		// Every synthesized question must grade its own answer correct.
		if !quiz.Grade(&q, q.CorrectAnswer) {
			t.Errorf("question %d: own answer %q does not grade correct", i, q.CorrectAnswer)
		}
	}
}

func TestDifficultyBanding(t *testing.T) {
	s := NewSynthesizer(testRand())
	qs, err := s.Questions(context.Background(), quiz.SubjectMath, 20, nil)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	wantAt := []struct {
		index int
		want  quiz.Difficulty
	}{
		{0, quiz.DifficultyConcept},
		{4, quiz.DifficultyConcept},
		{5, quiz.DifficultyEasy},
		{11, quiz.DifficultyEasy},
		{12, quiz.DifficultyMedium},
		{16, quiz.DifficultyMedium},
		{17, quiz.DifficultyChallenge},
		{19, quiz.DifficultyChallenge},
	}
	for _, w := range wantAt {
		if got := qs[w.index].Difficulty; got != w.want {
			t.Errorf("question %d difficulty = %q, want %q", w.index, got, w.want)
		}
	}
}

func TestAllTemplatesSelfGrade(t *testing.T) {
	rng := testRand()
	for difficulty, pool := range mathTemplates {
		for _, tpl := range pool {
			for i := 0; i < 50; i++ {
				d := tpl.build(rng)
				q := quiz.Question{
					Subject:       quiz.SubjectMath,
					Difficulty:    difficulty,
					Content:       d.content,
					CorrectAnswer: d.answer,
					Explanation:   d.explanation,
				}
				if d.answer == "" || quiz.Normalize(d.answer) == "" {
					t.Fatalf("template %q produced empty answer", tpl.topic)
				}
				if !quiz.Grade(&q, d.answer) {
					t.Fatalf("template %q: answer %q does not self-grade", tpl.topic, d.answer)
				}
			}
		}
	}
}

func TestDoubleMidpointDerivation(t *testing.T) {
	// IntN(5) -> 2 makes AM = 6, so MN = 3 and AN = 9.
	d := doubleMidpoint(&scriptedRand{vals: []int{2}})
	if !strings.Contains(d.content, "AM = 6cm") {
		t.Errorf("content %q does not state AM = 6cm", d.content)
	}
	if d.answer != "9" {
		t.Errorf("answer = %q, want 9", d.answer)
	}
	if d.diagram == nil || d.diagram.Kind != quiz.DiagramSegment {
		t.Fatalf("diagram = %+v, want segment", d.diagram)
	}
	positions := map[string]int{}
	for _, p := range d.diagram.Segment.Points {
		positions[p.Label] = p.Position
	}
	want := map[string]int{"A": 0, "M": 50, "N": 75, "B": 100}
	for label, pos := range want {
		if positions[label] != pos {
			t.Errorf("point %s at %d, want %d", label, positions[label], pos)
		}
	}
}

func TestSampleBankExhausted(t *testing.T) {
	s := NewSynthesizer(testRand())
	excluded := map[string]bool{}
	for _, q := range builtinBanks[quiz.SubjectChinese] {
		excluded[q.ID] = true
	}
	qs, err := s.Questions(context.Background(), quiz.SubjectChinese, 20, excluded)
	if !errors.Is(err, ErrBankExhausted) {
		t.Fatalf("err = %v, want ErrBankExhausted", err)
	}
	if len(qs) != 0 {
		t.Errorf("got %d questions alongside exhaustion error", len(qs))
	}
}

func TestSampleBankExcludesUsed(t *testing.T) {
	s := NewSynthesizer(testRand())
	excluded := map[string]bool{"e1": true, "e2": true, "e3": true, "e4": true}
	qs, err := s.Questions(context.Background(), quiz.SubjectEnglish, 20, excluded)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(qs) != 1 || qs[0].ID != "e5" {
		t.Fatalf("got %+v, want the single remaining question e5", qs)
	}
}

func TestSampleBankCapsAtAvailable(t *testing.T) {
	s := NewSynthesizer(testRand())
	qs, err := s.Questions(context.Background(), quiz.SubjectChinese, 20, nil)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(qs) != BankSize(quiz.SubjectChinese) {
		t.Errorf("got %d questions, want full bank of %d", len(qs), BankSize(quiz.SubjectChinese))
	}
	seen := map[string]bool{}
	for _, q := range qs {
		if seen[q.ID] {
			t.Errorf("duplicate bank question %q in one session", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestQuestionsRejectsBadInput(t *testing.T) {
	s := NewSynthesizer(testRand())
	if _, err := s.Questions(context.Background(), quiz.Subject("history"), 5, nil); err == nil {
		t.Error("unknown subject accepted")
	}
	if _, err := s.Questions(context.Background(), quiz.SubjectMath, 0, nil); err == nil {
		t.Error("zero count accepted")
	}
}
