// Package stats renders the learning report: lifetime totals per
// subject and a recent daily activity table.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/qian20010413/xinyunxuexi/internal/ledger"
	"github.com/qian20010413/xinyunxuexi/internal/quiz"
	"github.com/qian20010413/xinyunxuexi/internal/screen"
	"github.com/qian20010413/xinyunxuexi/internal/ui/components"
	"github.com/qian20010413/xinyunxuexi/internal/ui/layout"
	"github.com/qian20010413/xinyunxuexi/internal/ui/theme"
)

const recentDays = 14

// Model is the learning report screen.
type Model struct {
	totals ledger.Totals
	daily  []quiz.DailyRecord
}

var _ screen.Screen = (*Model)(nil)

// New creates the learning report screen from the current ledger state.
func New(led *ledger.Ledger) *Model {
	return &Model{
		totals: led.Totals(),
		daily:  led.Daily(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return m, nil
}

func (m *Model) View(width, height int) string {
	cardWidth := width - 8
	if cardWidth > 72 {
		cardWidth = 72
	}
	if cardWidth < 40 {
		cardWidth = 40
	}

	var b strings.Builder
	b.WriteString(m.viewTotals(cardWidth))
	b.WriteString("\n\n")
	b.WriteString(m.viewDaily(cardWidth))

	card := theme.Card.Width(cardWidth + 4).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func (m *Model) viewTotals(width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("累计成绩") + "\n\n")

	if m.totals.Answered == 0 {
		b.WriteString(theme.Hint.Render("还没有练习记录，去首页开始一次挑战吧！"))
		return b.String()
	}

	accuracy := float64(m.totals.Correct) / float64(m.totals.Answered)
	b.WriteString(theme.Body.Render(fmt.Sprintf(
		"共练习 %d 题，答对 %d 题", m.totals.Answered, m.totals.Correct)) + "\n")
	bar := components.NewProgressBar("总正确率", accuracy, true, width-6)
	b.WriteString(bar.View() + "\n\n")

	for _, subject := range quiz.AllSubjects {
		st, ok := m.totals.Subjects[subject]
		if !ok || st.Answered == 0 {
			continue
		}
		pct := float64(st.Correct) / float64(st.Answered)
		row := components.NewProgressBar(subject.Label(), pct, true, width-6)
		b.WriteString(row.View() + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) viewDaily(width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("每日记录") + "\n\n")

	daily := m.daily
	if len(daily) > recentDays {
		daily = daily[len(daily)-recentDays:]
	}
	if len(daily) == 0 {
		b.WriteString(theme.Hint.Render("暂无记录"))
		return b.String()
	}

	// Newest first for reading.
	for i := len(daily) - 1; i >= 0; i-- {
		d := daily[i]
		accuracy := 0
		if d.Answered > 0 {
			accuracy = d.Correct * 100 / d.Answered
		}
		line := fmt.Sprintf("%s   %3d 题   正确率 %3d%%", d.Date, d.Answered, accuracy)
		b.WriteString(theme.Body.Render(line) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) Title() string {
	return "学习报告"
}

func (m *Model) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "返回"},
	}
}
