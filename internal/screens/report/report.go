// Package report shows the end-of-session summary: per-question
// outcomes re-derived from the finished run, plus overall accuracy.
package report

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/qian20010413/xinyunxuexi/internal/router"
	"github.com/qian20010413/xinyunxuexi/internal/screen"
	"github.com/qian20010413/xinyunxuexi/internal/session"
	"github.com/qian20010413/xinyunxuexi/internal/ui/components"
	"github.com/qian20010413/xinyunxuexi/internal/ui/layout"
	"github.com/qian20010413/xinyunxuexi/internal/ui/theme"
)

// Model displays a finished session report.
type Model struct {
	report *session.Report
	cursor int
}

var _ screen.Screen = (*Model)(nil)

// New creates a report screen for the given finished session.
func New(rep *session.Report) *Model {
	return &Model{report: rep}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.report.Results)-1 {
			m.cursor++
		}
	case "enter":
		return m, func() tea.Msg { return router.PopScreenMsg{} }
	}

	return m, nil
}

func (m *Model) View(width, height int) string {
	rep := m.report

	cardWidth := width - 8
	if cardWidth > 76 {
		cardWidth = 76
	}
	if cardWidth < 40 {
		cardWidth = 40
	}

	var b strings.Builder

	heading := "练习完成！"
	if rep.MistakeRun {
		heading = "错题重练完成！"
	}
	b.WriteString(theme.Title.Width(cardWidth).Render(heading) + "\n\n")

	b.WriteString(theme.Body.Render(fmt.Sprintf(
		"答对 %d / %d 题", rep.Correct, rep.Total)) + "\n")
	bar := components.NewProgressBar("正确率", float64(rep.Accuracy())/100, true, cardWidth-8)
	b.WriteString(bar.View() + "\n\n")

	b.WriteString(m.viewGrid() + "\n")
	b.WriteString(m.viewDetail(cardWidth))

	card := theme.Card.Width(cardWidth + 4).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

// viewGrid renders one cell per question, ✓ or ✗, ten to a row.
func (m *Model) viewGrid() string {
	var rows []string
	var row []string
	for i, r := range m.report.Results {
		mark := "✗"
		style := lipgloss.NewStyle().Foreground(theme.Error)
		if r.Correct {
			mark = "✓"
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		cell := fmt.Sprintf("%2d%s", i+1, mark)
		if i == m.cursor {
			cell = lipgloss.NewStyle().Bold(true).Underline(true).Render(cell)
		} else {
			cell = style.Render(cell)
		}
		row = append(row, cell)
		if len(row) == 10 {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n")
}

// viewDetail shows the question under the cursor with both answers.
func (m *Model) viewDetail(width int) string {
	if m.cursor < 0 || m.cursor >= len(m.report.Results) {
		return ""
	}
	r := m.report.Results[m.cursor]

	var b strings.Builder
	b.WriteString("\n" + lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(width).
		Render(r.Question.Content) + "\n")
	b.WriteString(theme.Body.Render("你的答案："+r.Answer) + "\n")
	if !r.Correct {
		b.WriteString(theme.Correct.Render("正确答案："+r.Question.CorrectAnswer) + "\n")
	}
	return b.String()
}

func (m *Model) Title() string {
	return "练习报告"
}

func (m *Model) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "查看题目"},
		{Key: "Enter", Description: "返回首页"},
	}
}
