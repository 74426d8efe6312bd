package practice

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/qian20010413/xinyunxuexi/internal/gen"
	"github.com/qian20010413/xinyunxuexi/internal/ledger"
	"github.com/qian20010413/xinyunxuexi/internal/quiz"
	"github.com/qian20010413/xinyunxuexi/internal/router"
	"github.com/qian20010413/xinyunxuexi/internal/screen"
	"github.com/qian20010413/xinyunxuexi/internal/screens/report"
	"github.com/qian20010413/xinyunxuexi/internal/session"
	"github.com/qian20010413/xinyunxuexi/internal/ui/components"
	"github.com/qian20010413/xinyunxuexi/internal/ui/layout"
)

// phase tracks where the screen is in the answer loop.
type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseReview
	phaseExhausted
	phaseEmptyBook
	phaseFailed
)

// Model runs one practice session: a sequence of questions with
// immediate feedback and an explanation gate between questions.
type Model struct {
	engine     *session.Engine
	led        *ledger.Ledger
	subject    quiz.Subject
	mistakeRun bool

	phase  phase
	err    error
	hint   string
	input  components.TextInput
	picker components.OptionPicker
	result session.Result
}

var _ screen.Screen = (*Model)(nil)

// New creates a practice screen for a fresh session in the given subject.
func New(engine *session.Engine, led *ledger.Ledger, subject quiz.Subject) *Model {
	return &Model{
		engine:  engine,
		led:     led,
		subject: subject,
	}
}

// NewMistakeRun creates a practice screen that replays the mistake book.
func NewMistakeRun(engine *session.Engine, led *ledger.Ledger) *Model {
	return &Model{
		engine:     engine,
		led:        led,
		mistakeRun: true,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.startCmd()
}

// startCmd kicks off question generation. The engine is only touched
// from Update once sessionStartedMsg lands, so the command goroutine
// has exclusive access until then.
func (m *Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		if m.mistakeRun {
			return sessionStartedMsg{Err: m.engine.StartMistakePractice()}
		}
		return sessionStartedMsg{Err: m.engine.Start(context.Background(), m.subject)}
	}
}

func (m *Model) resetBankCmd() tea.Cmd {
	return func() tea.Msg {
		return bankResetMsg{Err: m.led.ResetUsedIDs(m.subject)}
	}
}

func (m *Model) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		if msg.Err != nil {
			switch {
			case errors.Is(msg.Err, gen.ErrBankExhausted):
				m.phase = phaseExhausted
			case errors.Is(msg.Err, session.ErrNoMistakes):
				m.phase = phaseEmptyBook
			default:
				m.phase = phaseFailed
				m.err = msg.Err
			}
			return m, nil
		}
		return m, m.presentCurrent()

	case bankResetMsg:
		if msg.Err != nil {
			m.phase = phaseFailed
			m.err = msg.Err
			return m, nil
		}
		m.phase = phaseLoading
		return m, m.startCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch m.phase {
	case phaseExhausted:
		if key == "y" || key == "r" {
			m.phase = phaseLoading
			return m, m.resetBankCmd()
		}
		if key == "n" {
			return m, popCmd()
		}
		return m, nil

	case phaseFailed:
		if key == "r" {
			m.phase = phaseLoading
			return m, m.startCmd()
		}
		return m, nil

	case phaseEmptyBook:
		if key == "enter" {
			return m, popCmd()
		}
		return m, nil

	case phaseQuestion:
		if key == "enter" {
			return m.submit()
		}
		return m.forward(msg)

	case phaseReview:
		if key == "enter" || key == "n" {
			return m.advance()
		}
		return m, nil
	}

	return m, nil
}

// submit grades the current answer and moves into review.
func (m *Model) submit() (screen.Screen, tea.Cmd) {
	q := m.engine.Current()
	if q == nil {
		return m, nil
	}

	var answer string
	if q.IsChoice() {
		answer = m.picker.Letter()
	} else {
		answer = m.input.Value()
	}

	result, err := m.engine.Submit(answer)
	if err != nil {
		if errors.Is(err, session.ErrEmptyAnswer) {
			m.hint = "请先输入答案"
			return m, nil
		}
		m.phase = phaseFailed
		m.err = err
		return m, nil
	}

	m.hint = ""
	m.result = result
	if q.IsChoice() {
		m.picker.Reveal(correctIndex(q))
	} else {
		m.input.Submit(result.Correct)
	}
	m.phase = phaseReview
	return m, nil
}

// advance moves to the next question, or replaces this screen with the
// session report when the run is complete.
func (m *Model) advance() (screen.Screen, tea.Cmd) {
	rep, err := m.engine.Advance()
	if err != nil {
		m.phase = phaseFailed
		m.err = err
		return m, nil
	}
	if rep != nil {
		done := rep
		return m, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: report.New(done)}
		}
	}
	return m, m.presentCurrent()
}

// presentCurrent builds the input widget for the question under the cursor.
func (m *Model) presentCurrent() tea.Cmd {
	q := m.engine.Current()
	if q == nil {
		m.phase = phaseFailed
		m.err = session.ErrNotActive
		return nil
	}

	m.phase = phaseQuestion
	m.hint = ""
	if q.IsChoice() {
		m.picker = components.NewOptionPicker(q.Options)
		return nil
	}
	m.input = components.NewTextInput("输入答案后按回车", 64)
	return m.input.Init()
}

// forward routes a message to the active input widget.
func (m *Model) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m.phase != phaseQuestion {
		return m, nil
	}
	q := m.engine.Current()
	if q == nil {
		return m, nil
	}

	var cmd tea.Cmd
	if q.IsChoice() {
		m.picker, cmd = m.picker.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) Title() string {
	if m.mistakeRun {
		return "错题重练"
	}
	return m.subject.Label() + "挑战"
}

func (m *Model) KeyHints() []layout.KeyHint {
	switch m.phase {
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "Enter", Description: "提交"},
			{Key: "Esc", Description: "放弃本次练习"},
		}
	case phaseReview:
		return []layout.KeyHint{
			{Key: "Enter", Description: "下一题"},
			{Key: "Esc", Description: "放弃本次练习"},
		}
	case phaseExhausted:
		return []layout.KeyHint{
			{Key: "Y", Description: "重置题库"},
			{Key: "N", Description: "返回"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "返回"},
			{Key: "Ctrl+C", Description: "退出"},
		}
	}
}

// Abandoned tells the engine to drop session state. The app calls this
// when the user backs out mid-session.
func (m *Model) Abandoned() {
	m.engine.Abort()
}

func popCmd() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}

// correctIndex finds which option position the canonical answer names.
func correctIndex(q *quiz.Question) int {
	for i := range q.Options {
		if quiz.Grade(q, string(rune('A'+i))) {
			return i
		}
	}
	return -1
}
