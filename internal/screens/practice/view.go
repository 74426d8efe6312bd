package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/qian20010413/xinyunxuexi/internal/ui/components"
	"github.com/qian20010413/xinyunxuexi/internal/ui/theme"
)

func (m *Model) View(width, height int) string {
	var content string
	switch m.phase {
	case phaseLoading:
		content = theme.Hint.Render("正在出题，请稍候…")
	case phaseExhausted:
		content = m.viewExhausted()
	case phaseEmptyBook:
		content = theme.Body.Render("错题本是空的，太棒了！") + "\n\n" +
			theme.Hint.Render("按 Enter 返回")
	case phaseFailed:
		content = theme.Incorrect.Render("出题失败") + "\n\n" +
			theme.Body.Render(errText(m.err)) + "\n\n" +
			theme.Hint.Render("按 R 重试，Esc 返回")
	default:
		content = m.viewQuestion(width)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (m *Model) viewExhausted() string {
	return theme.Body.Render(fmt.Sprintf("%s题库已全部练完！", m.subject.Label())) + "\n\n" +
		theme.Hint.Render("要重置题库再来一轮吗？ (Y/N)")
}

func (m *Model) viewQuestion(width int) string {
	q := m.engine.Current()
	if q == nil {
		return ""
	}

	cardWidth := width - 8
	if cardWidth > 72 {
		cardWidth = 72
	}
	if cardWidth < 40 {
		cardWidth = 40
	}

	var b strings.Builder

	progress := fmt.Sprintf("第 %d / %d 题", m.engine.Index()+1, m.engine.Total())
	meta := progress + "  ·  " + q.Topic + "  ·  " + q.Difficulty.Label()
	b.WriteString(theme.Subtitle.Render(meta) + "\n\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(cardWidth).
		Render(q.Content) + "\n\n")

	if art := components.RenderDiagram(q.Diagram); art != "" {
		b.WriteString(art + "\n\n")
	}

	if q.IsChoice() {
		b.WriteString(m.picker.View())
	} else {
		b.WriteString(m.input.View() + "\n")
	}

	if m.hint != "" {
		b.WriteString("\n" + theme.Hint.Render(m.hint))
	}

	if m.phase == phaseReview {
		b.WriteString("\n" + m.viewFeedback(cardWidth))
	}

	return theme.Card.Width(cardWidth + 4).Render(b.String())
}

func (m *Model) viewFeedback(width int) string {
	var b strings.Builder

	if m.result.Correct {
		b.WriteString(theme.Correct.Render("✓ 回答正确！") + "\n")
	} else {
		b.WriteString(theme.Incorrect.Render("✗ 回答错误") + "\n")
		b.WriteString(theme.Body.Render("正确答案："+m.result.CorrectAnswer) + "\n")
	}

	if m.result.Explanation != "" {
		b.WriteString("\n" + lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Width(width).
			Render("解析："+m.result.Explanation))
	}

	return b.String()
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
