package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/qian20010413/xinyunxuexi/internal/quiz"
	"github.com/qian20010413/xinyunxuexi/internal/ui/theme"
)

const diagramWidth = 41

// RenderDiagram renders a question figure as text art. Returns "" when
// the question carries no diagram.
func RenderDiagram(d *quiz.Diagram) string {
	if d == nil {
		return ""
	}

	var art string
	switch d.Kind {
	case quiz.DiagramNumberLine:
		art = renderNumberLine(d.NumberLine)
	case quiz.DiagramSegment:
		art = renderSegment(d.Segment)
	case quiz.DiagramAngle:
		art = renderAngle(d.Angle)
	case quiz.DiagramClock:
		art = renderClock(d.Clock)
	}
	if art == "" {
		return ""
	}

	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Render(art)
}

// renderNumberLine draws an integer axis from -10 to 10 with the marked
// value flagged above it.
func renderNumberLine(nl *quiz.NumberLine) string {
	if nl == nil {
		return ""
	}
	const lo, hi = -10, 10

	v := nl.Value
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	col := (v - lo) * 2 // two cells per unit

	label := nl.Label
	if label == "" {
		label = fmt.Sprintf("%d", nl.Value)
	}

	top := stampAt(strings.Repeat(" ", (hi-lo)*2+1), col, label)
	mark := stampAt(strings.Repeat(" ", (hi-lo)*2+1), col, "▼")

	var axis strings.Builder
	for i := lo; i <= hi; i++ {
		if i == 0 {
			axis.WriteByte('0')
		} else if i%5 == 0 {
			axis.WriteByte('+')
		} else {
			axis.WriteByte('|')
		}
		if i < hi {
			axis.WriteByte('-')
		}
	}

	scale := stampAt(strings.Repeat(" ", (hi-lo)*2+1), 0, fmt.Sprintf("%d", lo))
	scale = stampAt(scale, (0-lo)*2, "0")
	scale = stampAt(scale, (hi-lo)*2, fmt.Sprintf("%d", hi))

	return top + "\n" + mark + "\n" + axis.String() + "\n" + scale
}

// renderSegment draws a horizontal segment with labelled points at
// percentage positions.
func renderSegment(sl *quiz.SegmentLine) string {
	if sl == nil || len(sl.Points) == 0 {
		return ""
	}

	labels := strings.Repeat(" ", diagramWidth)
	ticks := strings.Repeat(" ", diagramWidth)
	for _, p := range sl.Points {
		pos := p.Position
		if pos < 0 {
			pos = 0
		}
		if pos > 100 {
			pos = 100
		}
		col := pos * (diagramWidth - 1) / 100
		labels = stampAt(labels, col, p.Label)
		ticks = stampAt(ticks, col, "|")
	}

	line := strings.Repeat("─", diagramWidth)
	return labels + "\n" + ticks + "\n" + line
}

// renderAngle describes an angle fan textually. Ray geometry does not
// survive a character grid well, so the rays and any angle marks are
// listed instead.
func renderAngle(af *quiz.AngleFan) string {
	if af == nil || len(af.Rays) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("顶点 %s，射线自基线逆时针排开：\n", af.Vertex))
	for _, r := range af.Rays {
		b.WriteString(fmt.Sprintf("  %s%s — %d°\n", af.Vertex, r.Label, r.Sweep))
	}
	for _, m := range af.Marks {
		b.WriteString("  " + m + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderClock draws a small clock face with hour and minute hands at
// the nearest of eight directions.
func renderClock(cf *quiz.ClockFace) string {
	if cf == nil {
		return ""
	}

	face := []string{
		"   12   ",
		" 9 ·  3 ",
		"    6   ",
	}
	caption := fmt.Sprintf("时间：%d:%02d", cf.Hour, cf.Minute)
	return strings.Join(face, "\n") + "\n" + caption
}

// stampAt overlays text onto a line of spaces starting at col,
// clamping to the line width.
func stampAt(line string, col int, text string) string {
	runes := []rune(line)
	for i, r := range []rune(text) {
		if col+i < 0 || col+i >= len(runes) {
			break
		}
		runes[col+i] = r
	}
	return string(runes)
}
