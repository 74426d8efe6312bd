package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/qian20010413/xinyunxuexi/internal/ledger"
	"github.com/qian20010413/xinyunxuexi/internal/quiz"
)

// stubSource serves a fixed question list or a fixed error.
type stubSource struct {
	questions []quiz.Question
	err       error

	lastExcluded map[string]bool
}

func (s *stubSource) Questions(_ context.Context, _ quiz.Subject, count int, excluded map[string]bool) ([]quiz.Question, error) {
	s.lastExcluded = excluded
	if s.err != nil {
		return nil, s.err
	}
	if count < len(s.questions) {
		return s.questions[:count], nil
	}
	return s.questions, nil
}

// memStore is the in-memory ledger store used across engine tests.
type memStore struct {
	data map[string]string
}

func (m *memStore) Load(key string) (string, bool, error) { v, ok := m.data[key]; return v, ok, nil }
func (m *memStore) Save(key, value string) error          { m.data[key] = value; return nil }

func testLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l, err := ledger.Open(&memStore{data: map[string]string{}})
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	return l
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 29, 15, 0, 0, 0, time.Local)
}

func mathQuestions(n int) []quiz.Question {
	qs := make([]quiz.Question, n)
	for i := range qs {
		qs[i] = quiz.Question{
			ID:            fmt.Sprintf("math-%d", i),
			Subject:       quiz.SubjectMath,
			Content:       fmt.Sprintf("%d + 1 = ?", i),
			CorrectAnswer: fmt.Sprintf("%d", i+1),
			Explanation:   "加一即可。",
		}
	}
	return qs
}

func TestSessionLifecycle(t *testing.T) {
	led := testLedger(t)
	e := New(&stubSource{questions: mathQuestions(3)}, led, WithSize(3), WithNow(fixedNow))

	if e.Active() {
		t.Fatal("engine active before Start")
	}
	if err := e.Start(context.Background(), quiz.SubjectMath); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !e.Active() || e.Total() != 3 || e.Index() != 0 {
		t.Fatalf("after Start: active %v total %d index %d", e.Active(), e.Total(), e.Index())
	}

	// q0 right, q1 wrong, q2 right.
	answers := []struct {
		answer string
		want   bool
	}{
		{"1", true},
		{"999", false},
		{"3", true},
	}
	var report *Report
	for i, a := range answers {
		res, err := e.Submit(a.answer)
		if err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		if res.Correct != a.want {
			t.Errorf("Submit %d correct = %v, want %v", i, res.Correct, a.want)
		}
		if !e.Reviewing() {
			t.Fatalf("not reviewing after Submit %d", i)
		}
		report, err = e.Advance()
		if err != nil {
			t.Fatalf("Advance %d: %v", i, err)
		}
	}

	if report == nil {
		t.Fatal("no report after final Advance")
	}
	if report.Total != 3 || report.Correct != 2 {
		t.Errorf("report = %d/%d, want 2/3", report.Correct, report.Total)
	}
	if report.Accuracy() != 66 {
		t.Errorf("accuracy = %d", report.Accuracy())
	}
	if e.Active() {
		t.Error("engine still active after completion")
	}

	// Completed session committed a daily record for the engine's day,
	// attributed to its subject.
	daily := led.Daily()
	if len(daily) != 1 || daily[0].Date != "2026-08-29" || daily[0].Answered != 3 || daily[0].Correct != 2 {
		t.Errorf("daily = %+v", daily)
	}
	if daily[0].Subjects[quiz.SubjectMath] != 3 {
		t.Errorf("daily subjects = %v, want math 3", daily[0].Subjects)
	}
	// The wrong answer landed in the mistake book.
	mistakes := led.Mistakes()
	if len(mistakes) != 1 || mistakes[0].Question.ID != "math-1" {
		t.Errorf("mistakes = %+v", mistakes)
	}
}

func TestSubmitEmptyAnswerRejected(t *testing.T) {
	e := New(&stubSource{questions: mathQuestions(2)}, testLedger(t), WithSize(2))
	if err := e.Start(context.Background(), quiz.SubjectMath); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, answer := range []string{"", "   ", " 。 "} {
		if _, err := e.Submit(answer); !errors.Is(err, ErrEmptyAnswer) {
			t.Errorf("Submit(%q) err = %v, want ErrEmptyAnswer", answer, err)
		}
	}
	if e.Reviewing() {
		t.Error("rejected submission locked the question")
	}
}

func TestSubmitWhileLockedIsNoOp(t *testing.T) {
	led := testLedger(t)
	e := New(&stubSource{questions: mathQuestions(2)}, led, WithSize(2))
	if err := e.Start(context.Background(), quiz.SubjectMath); err != nil {
		t.Fatalf("Start: %v", err)
	}
	first, err := e.Submit("1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	second, err := e.Submit("999")
	if err != nil {
		t.Fatalf("locked Submit: %v", err)
	}
	if second != first {
		t.Errorf("locked Submit changed result: %+v vs %+v", second, first)
	}
	if got := led.Totals().Answered; got != 1 {
		t.Errorf("ledger answered = %d, want 1 (no double record)", got)
	}
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	e := New(&stubSource{questions: mathQuestions(2)}, testLedger(t), WithSize(2))
	if err := e.Start(context.Background(), quiz.SubjectMath); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := e.Advance(); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("Advance before Submit err = %v, want ErrNotAnswered", err)
	}
}

func TestIdleEngineRejectsOperations(t *testing.T) {
	e := New(&stubSource{questions: mathQuestions(1)}, testLedger(t))
	if _, err := e.Submit("1"); !errors.Is(err, ErrNotActive) {
		t.Errorf("Submit err = %v, want ErrNotActive", err)
	}
	if _, err := e.Advance(); !errors.Is(err, ErrNotActive) {
		t.Errorf("Advance err = %v, want ErrNotActive", err)
	}
	if e.Current() != nil {
		t.Error("Current on idle engine should be nil")
	}
}

func TestStartSupersedesActiveSession(t *testing.T) {
	e := New(&stubSource{questions: mathQuestions(3)}, testLedger(t), WithSize(3))
	ctx := context.Background()
	if err := e.Start(ctx, quiz.SubjectMath); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := e.Submit("1"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := e.Start(ctx, quiz.SubjectMath); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if e.Index() != 0 || e.Reviewing() {
		t.Errorf("second Start did not reset: index %d reviewing %v", e.Index(), e.Reviewing())
	}
}

func TestStartPropagatesSourceError(t *testing.T) {
	sentinel := errors.New("bank exhausted")
	e := New(&stubSource{err: sentinel}, testLedger(t))
	if err := e.Start(context.Background(), quiz.SubjectChinese); !errors.Is(err, sentinel) {
		t.Errorf("Start err = %v, want sentinel untouched", err)
	}
	if e.Active() {
		t.Error("engine active after failed Start")
	}
}

func TestStartPassesUsedIDs(t *testing.T) {
	led := testLedger(t)
	if err := led.MarkUsed(quiz.SubjectChinese, "c1", "c2"); err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}
	src := &stubSource{questions: []quiz.Question{{
		ID: "c3", Subject: quiz.SubjectChinese, Content: "?", CorrectAnswer: "A",
		Options: []string{"A. 对", "B. 错"},
	}}}
	e := New(src, led)
	if err := e.Start(context.Background(), quiz.SubjectChinese); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !src.lastExcluded["c1"] || !src.lastExcluded["c2"] {
		t.Errorf("excluded = %v, want served ids passed through", src.lastExcluded)
	}
}

func TestSubmitMarksBankQuestionUsed(t *testing.T) {
	led := testLedger(t)
	src := &stubSource{questions: []quiz.Question{
		{ID: "c1", Subject: quiz.SubjectChinese, Content: "?", CorrectAnswer: "A", Options: []string{"A. 对", "B. 错"}},
		{ID: "ai-f3d2", Subject: quiz.SubjectChinese, Content: "?", CorrectAnswer: "B", Options: []string{"A. 对", "B. 错"}},
	}}
	e := New(src, led, WithSize(2), WithNow(fixedNow))
	if err := e.Start(context.Background(), quiz.SubjectChinese); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := e.Submit("A"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// Retired from rotation as soon as it is answered, not at completion.
	if used := led.UsedIDs(quiz.SubjectChinese); !used["c1"] {
		t.Errorf("used = %v, want c1 marked after submit", used)
	}
	if _, err := e.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if _, err := e.Submit("B"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// Generated questions carry no bank slot to retire.
	if used := led.UsedIDs(quiz.SubjectChinese); used["ai-f3d2"] {
		t.Errorf("used = %v, generated id should not be marked", used)
	}
	// Aborting does not un-retire questions already served.
	e.Abort()
	if used := led.UsedIDs(quiz.SubjectChinese); !used["c1"] {
		t.Errorf("used = %v, want c1 still marked after abort", used)
	}
}

func TestAbortCommitsNothing(t *testing.T) {
	led := testLedger(t)
	e := New(&stubSource{questions: mathQuestions(3)}, led, WithSize(3), WithNow(fixedNow))
	if err := e.Start(context.Background(), quiz.SubjectMath); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := e.Submit("1"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	e.Abort()
	if e.Active() {
		t.Error("active after Abort")
	}
	if daily := led.Daily(); len(daily) != 0 {
		t.Errorf("aborted session committed daily record: %v", daily)
	}
	// The submitted answer itself stays recorded.
	if got := led.Totals().Answered; got != 1 {
		t.Errorf("answered = %d, want 1", got)
	}
}

func TestMistakePractice(t *testing.T) {
	led := testLedger(t)
	wrong := quiz.Question{ID: "c9", Subject: quiz.SubjectChinese, Content: "二加二等于？", CorrectAnswer: "4"}
	if err := led.RecordAnswer(wrong, "5", false); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	e := New(&stubSource{}, led, WithNow(fixedNow))
	if err := e.StartMistakePractice(); err != nil {
		t.Fatalf("StartMistakePractice: %v", err)
	}
	if !e.MistakeRun() || e.Total() != 1 {
		t.Fatalf("mistake run state: run %v total %d", e.MistakeRun(), e.Total())
	}

	res, err := e.Submit("4")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !res.Correct {
		t.Error("corrected retry graded wrong")
	}
	report, err := e.Advance()
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if report == nil || !report.MistakeRun || report.Correct != 1 {
		t.Fatalf("report = %+v", report)
	}

	// Conquered question left the book; no daily record for retry runs.
	if m := led.Mistakes(); len(m) != 0 {
		t.Errorf("mistakes after corrected retry = %v", m)
	}
	if daily := led.Daily(); len(daily) != 0 {
		t.Errorf("mistake run committed daily record: %v", daily)
	}
	// Retry runs never touch the bank rotation.
	if used := led.UsedIDs(quiz.SubjectChinese); len(used) != 0 {
		t.Errorf("mistake run marked ids used: %v", used)
	}
}

func TestMistakePracticeEmptyBook(t *testing.T) {
	e := New(&stubSource{}, testLedger(t))
	if err := e.StartMistakePractice(); !errors.Is(err, ErrNoMistakes) {
		t.Errorf("err = %v, want ErrNoMistakes", err)
	}
}

func TestReportRegradesStoredAnswers(t *testing.T) {
	// The final report is re-derived from stored answers, so its counts
	// always agree with what Grade says question by question.
	led := testLedger(t)
	qs := []quiz.Question{
		{ID: "c1", Subject: quiz.SubjectChinese, Content: "?", CorrectAnswer: "B", Options: []string{"A. 一", "B. 二"}},
		{ID: "math-0", Subject: quiz.SubjectMath, Content: "?", CorrectAnswer: "x+3"},
	}
	e := New(&stubSource{questions: qs}, led, WithSize(2), WithNow(fixedNow))
	if err := e.Start(context.Background(), quiz.SubjectChinese); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// Answer with equivalent spellings rather than canonical forms.
	if _, err := e.Submit("二"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := e.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if _, err := e.Submit("1x + 3。"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	report, err := e.Advance()
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if report.Correct != 2 {
		t.Fatalf("report = %+v, want both equivalent spellings correct", report)
	}
	for i, r := range report.Results {
		if !r.Correct {
			t.Errorf("result %d regraded wrong: %+v", i, r)
		}
	}
}
