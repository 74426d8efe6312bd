// Package session runs one practice session at a time: fetch questions
// from a source, collect and grade answers one by one with an explanation
// step after each, and commit the finished session to the ledger.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/qian20010413/xinyunxuexi/internal/ledger"
	"github.com/qian20010413/xinyunxuexi/internal/quiz"
)

// DefaultSize is the number of questions in a standard session.
const DefaultSize = 20

// Source supplies questions for a session. Both the local synthesizer and
// the AI-backed source implement it.
type Source interface {
	Questions(ctx context.Context, subject quiz.Subject, count int, excluded map[string]bool) ([]quiz.Question, error)
}

var (
	// ErrNotActive signals an operation that needs a running session.
	ErrNotActive = errors.New("no active session")
	// ErrEmptyAnswer rejects a submission that normalizes to nothing.
	ErrEmptyAnswer = errors.New("answer is empty")
	// ErrNotAnswered rejects advancing past a question never answered.
	ErrNotAnswered = errors.New("current question not answered")
	// ErrNoMistakes signals an attempted retry run with an empty mistake book.
	ErrNoMistakes = errors.New("mistake book is empty")
)

// Result is the feedback shown right after a submission.
type Result struct {
	Correct       bool
	CorrectAnswer string
	Explanation   string
}

// QuestionResult pairs one question with the answer it finally received.
type QuestionResult struct {
	Question quiz.Question
	Answer   string
	Correct  bool
}

// Report summarizes a completed session.
type Report struct {
	Subject    quiz.Subject
	MistakeRun bool
	Total      int
	Correct    int
	Results    []QuestionResult
}

// Accuracy returns the correct ratio in percent, 0 for an empty report.
func (r *Report) Accuracy() int {
	if r.Total == 0 {
		return 0
	}
	return r.Correct * 100 / r.Total
}

// Engine drives the session state machine. It is single-threaded; the TUI
// calls it from its update loop only.
type Engine struct {
	source Source
	ledger *ledger.Ledger
	size   int
	now    func() time.Time

	active     bool
	mistakeRun bool
	subject    quiz.Subject
	questions  []quiz.Question
	answers    []string
	answered   []bool
	index      int
	reviewing  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSize overrides the session length.
func WithSize(n int) Option {
	return func(e *Engine) { e.size = n }
}

// WithNow overrides the clock used for daily records.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns an idle Engine drawing questions from source and committing
// history to led.
func New(source Source, led *ledger.Ledger, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		ledger: led,
		size:   DefaultSize,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins a fresh session for subject, superseding any session in
// progress. It passes the subject's served bank IDs to the source, so an
// exhausted bank surfaces as the source's exhaustion error untouched.
func (e *Engine) Start(ctx context.Context, subject quiz.Subject) error {
	if !subject.Valid() {
		return fmt.Errorf("unknown subject %q", subject)
	}
	questions, err := e.source.Questions(ctx, subject, e.size, e.ledger.UsedIDs(subject))
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("source produced no questions for %s", subject)
	}
	e.begin(subject, questions, false)
	return nil
}

// StartMistakePractice begins a retry run over the current mistake book.
// The run grades and records answers like any session (so conquered
// questions leave the book) but never touches daily records or used IDs.
func (e *Engine) StartMistakePractice() error {
	mistakes := e.ledger.Mistakes()
	if len(mistakes) == 0 {
		return ErrNoMistakes
	}
	questions := make([]quiz.Question, len(mistakes))
	for i, m := range mistakes {
		questions[i] = m.Question
	}
	subject := questions[0].Subject
	e.begin(subject, questions, true)
	return nil
}

func (e *Engine) begin(subject quiz.Subject, questions []quiz.Question, mistakeRun bool) {
	e.active = true
	e.mistakeRun = mistakeRun
	e.subject = subject
	e.questions = questions
	e.answers = make([]string, len(questions))
	e.answered = make([]bool, len(questions))
	e.index = 0
	e.reviewing = false
}

// Active reports whether a session is in progress.
func (e *Engine) Active() bool { return e.active }

// MistakeRun reports whether the active session is a mistake retry run.
func (e *Engine) MistakeRun() bool { return e.mistakeRun }

// Subject returns the active session's subject.
func (e *Engine) Subject() quiz.Subject { return e.subject }

// Total returns the number of questions in the active session.
func (e *Engine) Total() int { return len(e.questions) }

// Index returns the zero-based position of the current question.
func (e *Engine) Index() int { return e.index }

// Current returns the question awaiting an answer or review, nil when idle.
func (e *Engine) Current() *quiz.Question {
	if !e.active {
		return nil
	}
	return &e.questions[e.index]
}

// Reviewing reports whether the current question is locked and its
// explanation is on display.
func (e *Engine) Reviewing() bool { return e.active && e.reviewing }

// Submit grades the answer for the current question, records it in the
// ledger, retires a bank question from rotation and moves the question
// into review. Submitting again while the question is locked returns
// the original result unchanged.
func (e *Engine) Submit(answer string) (Result, error) {
	if !e.active {
		return Result{}, ErrNotActive
	}
	q := &e.questions[e.index]
	if e.reviewing {
		return e.resultFor(e.index), nil
	}
	if quiz.Normalize(answer) == "" {
		return Result{}, ErrEmptyAnswer
	}

	correct := quiz.Grade(q, answer)
	e.answers[e.index] = answer
	e.answered[e.index] = true
	e.reviewing = true

	if err := e.ledger.RecordAnswer(*q, answer, correct); err != nil {
		return Result{}, fmt.Errorf("record answer: %w", err)
	}
	if !e.mistakeRun && isBankID(q.ID) {
		if err := e.ledger.MarkUsed(e.subject, q.ID); err != nil {
			return Result{}, fmt.Errorf("mark used question: %w", err)
		}
	}
	return e.resultFor(e.index), nil
}

func (e *Engine) resultFor(i int) Result {
	q := &e.questions[i]
	return Result{
		Correct:       quiz.Grade(q, e.answers[i]),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	}
}

// Advance moves past a reviewed question. On the last question it closes
// the session and returns its Report; otherwise the report is nil.
func (e *Engine) Advance() (*Report, error) {
	if !e.active {
		return nil, ErrNotActive
	}
	if !e.reviewing {
		return nil, ErrNotAnswered
	}
	if e.index < len(e.questions)-1 {
		e.index++
		e.reviewing = false
		return nil, nil
	}
	return e.finish()
}

// finish re-derives every per-question verdict from the stored answers so
// the report can never drift from what grading would say today.
func (e *Engine) finish() (*Report, error) {
	report := &Report{
		Subject:    e.subject,
		MistakeRun: e.mistakeRun,
		Total:      len(e.questions),
	}
	for i := range e.questions {
		correct := e.answered[i] && quiz.Grade(&e.questions[i], e.answers[i])
		if correct {
			report.Correct++
		}
		report.Results = append(report.Results, QuestionResult{
			Question: e.questions[i],
			Answer:   e.answers[i],
			Correct:  correct,
		})
	}

	if !e.mistakeRun {
		day := e.now().Format("2006-01-02")
		if err := e.ledger.CommitDaily(e.subject, day, report.Total, report.Correct); err != nil {
			return nil, fmt.Errorf("commit daily record: %w", err)
		}
	}

	e.active = false
	e.reviewing = false
	return report, nil
}

// Abort drops the session without committing a daily record. Answers
// already submitted stay recorded and their bank questions stay retired.
func (e *Engine) Abort() {
	e.active = false
	e.reviewing = false
}

// isBankID reports whether id names a stable bank question. Synthesized
// and AI question IDs are one-shot and stay out of the used set.
func isBankID(id string) bool {
	return !strings.HasPrefix(id, "math-") && !strings.HasPrefix(id, "ai-")
}
