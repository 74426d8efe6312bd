package ledger

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/qian20010413/xinyunxuexi/internal/quiz"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Load(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Save(key, value string) error {
	m.data[key] = value
	return nil
}

func openTestLedger(t *testing.T, st Store) *Ledger {
	t.Helper()
	l, err := Open(st)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	l.now = func() time.Time { return time.UnixMilli(1756400000000) }
	return l
}

func mathQuestion(id string) quiz.Question {
	return quiz.Question{
		ID:            id,
		Subject:       quiz.SubjectMath,
		Content:       "1 + 1 = ?",
		CorrectAnswer: "2",
	}
}

func TestOpenEmptyStore(t *testing.T) {
	l := openTestLedger(t, newMemStore())
	if tot := l.Totals(); tot.Answered != 0 || tot.Correct != 0 {
		t.Errorf("fresh totals = %+v", tot)
	}
	if got := l.Mistakes(); len(got) != 0 {
		t.Errorf("fresh mistakes = %v", got)
	}
	if got := l.Daily(); len(got) != 0 {
		t.Errorf("fresh daily = %v", got)
	}
}

func TestRecordAnswerTotals(t *testing.T) {
	st := newMemStore()
	l := openTestLedger(t, st)

	if err := l.RecordAnswer(mathQuestion("q1"), "2", true); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if err := l.RecordAnswer(mathQuestion("q2"), "3", false); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	tot := l.Totals()
	if tot.Answered != 2 || tot.Correct != 1 {
		t.Errorf("totals = %+v, want 2 answered 1 correct", tot)
	}
	if st := tot.Subjects[quiz.SubjectMath]; st.Answered != 2 || st.Correct != 1 {
		t.Errorf("math totals = %+v", st)
	}

	// Reload from the same store: state must survive.
	l2 := openTestLedger(t, st)
	if tot := l2.Totals(); tot.Answered != 2 || tot.Correct != 1 {
		t.Errorf("reloaded totals = %+v", tot)
	}
}

func TestMistakeBookDedupAndRemoval(t *testing.T) {
	l := openTestLedger(t, newMemStore())
	q := mathQuestion("q1")

	if err := l.RecordAnswer(q, "3", false); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if err := l.RecordAnswer(q, "4", false); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	got := l.Mistakes()
	if len(got) != 1 {
		t.Fatalf("mistakes = %d entries, want 1 (deduped)", len(got))
	}
	if got[0].UserAnswer != "3" {
		t.Errorf("kept answer %q, want first wrong answer", got[0].UserAnswer)
	}

	// A later correct answer clears the entry.
	if err := l.RecordAnswer(q, "2", true); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if got := l.Mistakes(); len(got) != 0 {
		t.Errorf("mistakes after corrected retry = %v, want empty", got)
	}
}

func TestClearMistakes(t *testing.T) {
	st := newMemStore()
	l := openTestLedger(t, st)
	if err := l.RecordAnswer(mathQuestion("q1"), "0", false); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if err := l.ClearMistakes(); err != nil {
		t.Fatalf("ClearMistakes: %v", err)
	}
	if got := l.Mistakes(); len(got) != 0 {
		t.Errorf("mistakes = %v, want empty", got)
	}
	if st.data["mistakes"] != "[]" {
		t.Errorf("stored mistakes = %q, want []", st.data["mistakes"])
	}
}

func TestCommitDailyUpserts(t *testing.T) {
	st := newMemStore()
	l := openTestLedger(t, st)

	if err := l.CommitDaily(quiz.SubjectMath, "2026-08-29", 8, 5); err != nil {
		t.Fatalf("CommitDaily: %v", err)
	}
	if err := l.CommitDaily(quiz.SubjectEnglish, "2026-08-29", 6, 4); err != nil {
		t.Fatalf("CommitDaily: %v", err)
	}
	if err := l.CommitDaily(quiz.SubjectMath, "2026-08-30", 20, 18); err != nil {
		t.Fatalf("CommitDaily: %v", err)
	}

	daily := l.Daily()
	if len(daily) != 2 {
		t.Fatalf("daily = %v, want two dates", daily)
	}
	if daily[0].Date != "2026-08-29" || daily[0].Answered != 14 || daily[0].Correct != 9 {
		t.Errorf("day 0 = %+v, want 14 answered 9 correct", daily[0])
	}
	// Same-day sessions in different subjects stay differentiated.
	if daily[0].Subjects[quiz.SubjectMath] != 8 || daily[0].Subjects[quiz.SubjectEnglish] != 6 {
		t.Errorf("day 0 subjects = %v, want math 8 english 6", daily[0].Subjects)
	}
	if daily[1].Date != "2026-08-30" || daily[1].Answered != 20 {
		t.Errorf("day 1 = %+v", daily[1])
	}
	if daily[1].Subjects[quiz.SubjectMath] != 20 {
		t.Errorf("day 1 subjects = %v", daily[1].Subjects)
	}

	// The breakdown survives reload.
	l2 := openTestLedger(t, st)
	if got := l2.Daily(); got[0].Subjects[quiz.SubjectEnglish] != 6 {
		t.Errorf("reloaded day 0 subjects = %v", got[0].Subjects)
	}
}

func TestCommitDailyMergesLegacyRecords(t *testing.T) {
	// Records stored before the per-subject breakdown have no subjects map.
	st := newMemStore()
	st.data["daily"] = `[{"date":"2026-08-29","answered":10,"correct":7}]`

	l := openTestLedger(t, st)
	if err := l.CommitDaily(quiz.SubjectChinese, "2026-08-29", 5, 3); err != nil {
		t.Fatalf("CommitDaily: %v", err)
	}

	daily := l.Daily()
	if daily[0].Answered != 15 || daily[0].Correct != 10 {
		t.Errorf("merged day = %+v", daily[0])
	}
	if daily[0].Subjects[quiz.SubjectChinese] != 5 {
		t.Errorf("subjects = %v, want chinese 5", daily[0].Subjects)
	}
}

func TestUsedIDs(t *testing.T) {
	st := newMemStore()
	l := openTestLedger(t, st)

	if err := l.MarkUsed(quiz.SubjectChinese, "c1", "c3"); err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}
	used := l.UsedIDs(quiz.SubjectChinese)
	if !used["c1"] || !used["c3"] || used["c2"] {
		t.Errorf("used = %v", used)
	}
	if len(l.UsedIDs(quiz.SubjectEnglish)) != 0 {
		t.Error("english used ids should be empty")
	}

	// Survives reload.
	l2 := openTestLedger(t, st)
	if used := l2.UsedIDs(quiz.SubjectChinese); !used["c1"] || !used["c3"] {
		t.Errorf("reloaded used = %v", used)
	}

	if err := l2.ResetUsedIDs(quiz.SubjectChinese); err != nil {
		t.Fatalf("ResetUsedIDs: %v", err)
	}
	if used := l2.UsedIDs(quiz.SubjectChinese); len(used) != 0 {
		t.Errorf("used after reset = %v", used)
	}
}

func TestCorruptDatasetStartsFresh(t *testing.T) {
	st := newMemStore()
	st.data["stats"] = "{not json"
	st.data["mistakes"] = "also not json"
	st.data["daily"] = `[{"date":"2026-08-29","answered":3,"correct":2}]`

	l := openTestLedger(t, st)
	if tot := l.Totals(); tot.Answered != 0 {
		t.Errorf("corrupt stats should reset, got %+v", tot)
	}
	if got := l.Mistakes(); len(got) != 0 {
		t.Errorf("corrupt mistakes should reset, got %v", got)
	}
	// The intact dataset still loads.
	daily := l.Daily()
	if len(daily) != 1 || daily[0].Answered != 3 {
		t.Errorf("intact daily dataset lost: %v", daily)
	}
}

func TestMistakeSerializationShape(t *testing.T) {
	st := newMemStore()
	l := openTestLedger(t, st)
	q := mathQuestion("q1")
	q.Diagram = &quiz.Diagram{
		Kind:       quiz.DiagramNumberLine,
		NumberLine: &quiz.NumberLine{Value: -3, Label: "A"},
	}
	if err := l.RecordAnswer(q, "5", false); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	var stored []quiz.Mistake
	if err := json.Unmarshal([]byte(st.data["mistakes"]), &stored); err != nil {
		t.Fatalf("stored mistakes not valid JSON: %v", err)
	}
	if len(stored) != 1 || stored[0].Question.ID != "q1" || stored[0].UserAnswer != "5" {
		t.Fatalf("stored = %+v", stored)
	}
	if stored[0].Question.Diagram == nil || stored[0].Question.Diagram.NumberLine.Value != -3 {
		t.Error("diagram did not round-trip through the mistake book")
	}
	if stored[0].Timestamp == 0 {
		t.Error("timestamp not recorded")
	}
	// retryCount is reserved but must be written on insert.
	if !strings.Contains(st.data["mistakes"], `"retryCount":0`) {
		t.Errorf("stored mistakes missing retryCount field: %s", st.data["mistakes"])
	}
}
