// Package quiz defines the core question model shared by the generators,
// the session engine and the ledger: subjects, difficulty tiers, questions
// with optional diagram descriptors, mistake entries and daily records.
package quiz

// Subject identifies one of the three practice tracks.
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectChinese Subject = "chinese"
	SubjectEnglish Subject = "english"
)

// AllSubjects lists the subjects in menu order.
var AllSubjects = []Subject{SubjectMath, SubjectChinese, SubjectEnglish}

// Valid reports whether s is one of the known subjects.
func (s Subject) Valid() bool {
	switch s {
	case SubjectMath, SubjectChinese, SubjectEnglish:
		return true
	}
	return false
}

// Label returns the display name shown in the UI.
func (s Subject) Label() string {
	switch s {
	case SubjectMath:
		return "数学"
	case SubjectChinese:
		return "语文"
	case SubjectEnglish:
		return "英语"
	}
	return string(s)
}

// Difficulty is the tier a question is pitched at. Sessions ramp from
// Concept up to Challenge as the question index grows.
type Difficulty string

const (
	DifficultyConcept   Difficulty = "concept"
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyChallenge Difficulty = "challenge"
)

// Label returns the display name shown in the UI.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyConcept:
		return "基础概念"
	case DifficultyEasy:
		return "简单应用"
	case DifficultyMedium:
		return "进阶练习"
	case DifficultyChallenge:
		return "综合挑战"
	}
	return string(d)
}

// Question is a single practice item. Options is empty for free-response
// questions; when present, CorrectAnswer holds the bare option letter
// ("A".."D"), never the option text.
type Question struct {
	ID            string     `json:"id"`
	Subject       Subject    `json:"subject"`
	Topic         string     `json:"topic"`
	Difficulty    Difficulty `json:"difficulty"`
	Content       string     `json:"content"`
	Options       []string   `json:"options,omitempty"`
	CorrectAnswer string     `json:"correctAnswer"`
	Explanation   string     `json:"explanation"`
	Diagram       *Diagram   `json:"diagram,omitempty"`
}

// IsChoice reports whether the question offers fixed options.
func (q *Question) IsChoice() bool {
	return len(q.Options) > 0
}

// Mistake is a wrong answer kept for later retry practice. RetryCount
// is written once at insert and reserved for retry bookkeeping.
type Mistake struct {
	Question   Question `json:"question"`
	UserAnswer string   `json:"userAnswer"`
	Timestamp  int64    `json:"timestamp"`
	RetryCount int      `json:"retryCount"`
}

// DailyRecord accumulates one calendar day's answered and correct counts,
// with the answered share of each subject. Date is formatted as
// YYYY-MM-DD in local time.
type DailyRecord struct {
	Date     string          `json:"date"`
	Answered int             `json:"answered"`
	Correct  int             `json:"correct"`
	Subjects map[Subject]int `json:"subjects,omitempty"`
}
