// Package ledger tracks the student's learning history: lifetime answer
// totals, the mistake book, per-day counts and which bank questions have
// already been served. State lives in memory and is written back through
// an injected Store after every mutation, so a crash loses at most the
// operation in flight.
package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/qian20010413/xinyunxuexi/internal/quiz"
)

// Store is the durable keyspace the ledger persists into.
type Store interface {
	Load(key string) (string, bool, error)
	Save(key, value string) error
}

// Dataset keys. Each dataset serializes independently so corruption in
// one never takes down the others.
const (
	keyStats    = "stats"
	keyMistakes = "mistakes"
	keyDaily    = "daily"
	keyUsedIDs  = "used_ids"
)

// SubjectTotals is the per-subject slice of lifetime totals.
type SubjectTotals struct {
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}

// Totals is the lifetime answer count across all sessions.
type Totals struct {
	Answered int                            `json:"answered"`
	Correct  int                            `json:"correct"`
	Subjects map[quiz.Subject]SubjectTotals `json:"subjects"`
}

// Ledger is the in-memory view of the learning history. It is not safe
// for concurrent use.
type Ledger struct {
	store Store

	totals   Totals
	mistakes []quiz.Mistake
	daily    []quiz.DailyRecord
	used     map[quiz.Subject]map[string]bool

	now func() time.Time
}

// Open loads every dataset from st. A dataset that is missing or fails to
// parse starts over empty; only store I/O errors are fatal. Practice
// history is not worth refusing to start the app over.
func Open(st Store) (*Ledger, error) {
	l := &Ledger{
		store: st,
		totals: Totals{
			Subjects: map[quiz.Subject]SubjectTotals{},
		},
		used: map[quiz.Subject]map[string]bool{},
		now:  time.Now,
	}

	if err := loadInto(st, keyStats, &l.totals); err != nil {
		return nil, err
	}
	if l.totals.Subjects == nil {
		l.totals.Subjects = map[quiz.Subject]SubjectTotals{}
	}
	if err := loadInto(st, keyMistakes, &l.mistakes); err != nil {
		return nil, err
	}
	if err := loadInto(st, keyDaily, &l.daily); err != nil {
		return nil, err
	}

	var used map[quiz.Subject][]string
	if err := loadInto(st, keyUsedIDs, &used); err != nil {
		return nil, err
	}
	for subject, ids := range used {
		set := map[string]bool{}
		for _, id := range ids {
			set[id] = true
		}
		l.used[subject] = set
	}

	return l, nil
}

// loadInto unmarshals the dataset at key into v. Parse failures leave v
// untouched; store errors propagate.
func loadInto(st Store, key string, v any) error {
	raw, ok, err := st.Load(key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		// Corrupt dataset: start fresh rather than wedge the app.
		return nil
	}
	return nil
}

// Totals returns a copy of the lifetime totals.
func (l *Ledger) Totals() Totals {
	out := Totals{
		Answered: l.totals.Answered,
		Correct:  l.totals.Correct,
		Subjects: make(map[quiz.Subject]SubjectTotals, len(l.totals.Subjects)),
	}
	for s, t := range l.totals.Subjects {
		out.Subjects[s] = t
	}
	return out
}

// Mistakes returns a copy of the mistake book, oldest first.
func (l *Ledger) Mistakes() []quiz.Mistake {
	out := make([]quiz.Mistake, len(l.mistakes))
	copy(out, l.mistakes)
	return out
}

// Daily returns the per-day records sorted by date ascending.
func (l *Ledger) Daily() []quiz.DailyRecord {
	out := make([]quiz.DailyRecord, len(l.daily))
	for i, d := range l.daily {
		out[i] = d
		if d.Subjects != nil {
			out[i].Subjects = make(map[quiz.Subject]int, len(d.Subjects))
			for s, n := range d.Subjects {
				out[i].Subjects[s] = n
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// UsedIDs returns a copy of the served bank IDs for subject.
func (l *Ledger) UsedIDs(subject quiz.Subject) map[string]bool {
	out := make(map[string]bool, len(l.used[subject]))
	for id := range l.used[subject] {
		out[id] = true
	}
	return out
}

// RecordAnswer folds one graded answer into the history: totals always
// move, a wrong answer enters the mistake book (once per question ID),
// and a correct answer removes any mistake entry for the same question
// so a conquered retry stops haunting the student.
func (l *Ledger) RecordAnswer(q quiz.Question, userAnswer string, correct bool) error {
	l.totals.Answered++
	st := l.totals.Subjects[q.Subject]
	st.Answered++
	if correct {
		l.totals.Correct++
		st.Correct++
	}
	l.totals.Subjects[q.Subject] = st
	if err := l.saveStats(); err != nil {
		return err
	}

	if correct {
		return l.removeMistake(q.ID)
	}
	return l.addMistake(q, userAnswer)
}

func (l *Ledger) addMistake(q quiz.Question, userAnswer string) error {
	for _, m := range l.mistakes {
		if m.Question.ID == q.ID {
			return nil
		}
	}
	l.mistakes = append(l.mistakes, quiz.Mistake{
		Question:   q,
		UserAnswer: userAnswer,
		Timestamp:  l.now().UnixMilli(),
		RetryCount: 0,
	})
	return l.saveMistakes()
}

func (l *Ledger) removeMistake(questionID string) error {
	kept := l.mistakes[:0]
	removed := false
	for _, m := range l.mistakes {
		if m.Question.ID == questionID {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	l.mistakes = kept
	if !removed {
		return nil
	}
	return l.saveMistakes()
}

// ClearMistakes empties the mistake book.
func (l *Ledger) ClearMistakes() error {
	l.mistakes = nil
	return l.saveMistakes()
}

// CommitDaily adds a finished session's counts to the record for date
// (YYYY-MM-DD). Same-day sessions accumulate into one record, with the
// answered count also attributed to its subject.
func (l *Ledger) CommitDaily(subject quiz.Subject, date string, answered, correct int) error {
	for i := range l.daily {
		if l.daily[i].Date == date {
			l.daily[i].Answered += answered
			l.daily[i].Correct += correct
			if l.daily[i].Subjects == nil {
				l.daily[i].Subjects = map[quiz.Subject]int{}
			}
			l.daily[i].Subjects[subject] += answered
			return l.saveDaily()
		}
	}
	l.daily = append(l.daily, quiz.DailyRecord{
		Date:     date,
		Answered: answered,
		Correct:  correct,
		Subjects: map[quiz.Subject]int{subject: answered},
	})
	return l.saveDaily()
}

// MarkUsed records bank question IDs as served for subject.
func (l *Ledger) MarkUsed(subject quiz.Subject, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	set := l.used[subject]
	if set == nil {
		set = map[string]bool{}
		l.used[subject] = set
	}
	for _, id := range ids {
		set[id] = true
	}
	return l.saveUsed()
}

// ResetUsedIDs forgets which bank questions were served for subject,
// letting an exhausted bank be replayed.
func (l *Ledger) ResetUsedIDs(subject quiz.Subject) error {
	delete(l.used, subject)
	return l.saveUsed()
}

func (l *Ledger) saveStats() error {
	return l.save(keyStats, l.totals)
}

func (l *Ledger) saveMistakes() error {
	// Marshal nil as [] so the stored form is always a list.
	if l.mistakes == nil {
		return l.store.Save(keyMistakes, "[]")
	}
	return l.save(keyMistakes, l.mistakes)
}

func (l *Ledger) saveDaily() error {
	return l.save(keyDaily, l.daily)
}

func (l *Ledger) saveUsed() error {
	flat := make(map[quiz.Subject][]string, len(l.used))
	for subject, set := range l.used {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		flat[subject] = ids
	}
	return l.save(keyUsedIDs, flat)
}

func (l *Ledger) save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := l.store.Save(key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
