// Package mistakes shows the mistake book: every question the learner
// has answered wrong and not yet redeemed, with retry and clear actions.
package mistakes

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/qian20010413/xinyunxuexi/internal/ledger"
	"github.com/qian20010413/xinyunxuexi/internal/quiz"
	"github.com/qian20010413/xinyunxuexi/internal/router"
	"github.com/qian20010413/xinyunxuexi/internal/screen"
	"github.com/qian20010413/xinyunxuexi/internal/screens/practice"
	"github.com/qian20010413/xinyunxuexi/internal/session"
	"github.com/qian20010413/xinyunxuexi/internal/ui/layout"
	"github.com/qian20010413/xinyunxuexi/internal/ui/theme"
)

// Model lists the mistake book entries.
type Model struct {
	engine  *session.Engine
	led     *ledger.Ledger
	entries []quiz.Mistake
	cursor  int

	confirmClear bool
	err          error
}

var _ screen.Screen = (*Model)(nil)

// New creates the mistake book screen.
func New(engine *session.Engine, led *ledger.Ledger) *Model {
	return &Model{
		engine:  engine,
		led:     led,
		entries: led.Mistakes(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	key := kmsg.String()

	if m.confirmClear {
		switch key {
		case "y":
			m.confirmClear = false
			if err := m.led.ClearMistakes(); err != nil {
				m.err = err
				return m, nil
			}
			m.entries = nil
			m.cursor = 0
		case "n", "esc":
			m.confirmClear = false
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "r", "enter":
		if len(m.entries) == 0 {
			return m, nil
		}
		return m, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: practice.NewMistakeRun(m.engine, m.led),
			}
		}
	case "c":
		if len(m.entries) > 0 {
			m.confirmClear = true
		}
	}

	return m, nil
}

func (m *Model) View(width, height int) string {
	// Reload each frame so a finished retry run is reflected on return.
	m.entries = m.led.Mistakes()
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	cardWidth := width - 8
	if cardWidth > 76 {
		cardWidth = 76
	}
	if cardWidth < 40 {
		cardWidth = 40
	}

	var b strings.Builder

	if len(m.entries) == 0 {
		b.WriteString(theme.Body.Render("错题本是空的，继续保持！"))
	} else {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("共 %d 道错题", len(m.entries))) + "\n\n")
		b.WriteString(m.viewList(cardWidth))
	}

	if m.confirmClear {
		b.WriteString("\n\n" + theme.Incorrect.Render("确定清空错题本吗？ (Y/N)"))
	}
	if m.err != nil {
		b.WriteString("\n\n" + theme.Incorrect.Render("保存失败："+m.err.Error()))
	}

	card := theme.Card.Width(cardWidth + 4).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

// viewList renders a window of entries around the cursor so long books
// stay on screen.
func (m *Model) viewList(width int) string {
	const window = 6

	start := 0
	if m.cursor >= window {
		start = m.cursor - window + 1
	}
	end := start + window
	if end > len(m.entries) {
		end = len(m.entries)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		e := m.entries[i]
		when := time.UnixMilli(e.Timestamp).Format("01-02")

		head := fmt.Sprintf("%d. [%s·%s] %s", i+1, e.Question.Subject.Label(), when, e.Question.Topic)
		if i == m.cursor {
			b.WriteString(theme.Selected.Render("▸ "+head) + "\n")
			content := lipgloss.NewStyle().
				Foreground(theme.Text).
				Width(width - 4).
				Render(e.Question.Content)
			b.WriteString("   " + strings.ReplaceAll(content, "\n", "\n   ") + "\n")
			b.WriteString("   " + theme.Incorrect.Render("你的答案："+e.UserAnswer) +
				"  " + theme.Correct.Render("正确答案："+e.Question.CorrectAnswer) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+head) + "\n")
		}
	}
	if end < len(m.entries) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("… 还有 %d 道", len(m.entries)-end)))
	}
	return b.String()
}

func (m *Model) Title() string {
	return "错题本"
}

func (m *Model) KeyHints() []layout.KeyHint {
	if m.confirmClear {
		return []layout.KeyHint{
			{Key: "Y", Description: "清空"},
			{Key: "N", Description: "取消"},
		}
	}
	if len(m.entries) == 0 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "返回"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "浏览"},
		{Key: "R", Description: "重练错题"},
		{Key: "C", Description: "清空"},
		{Key: "Esc", Description: "返回"},
	}
}
