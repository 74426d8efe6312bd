package gen

import (
	"fmt"

	"github.com/qian20010413/xinyunxuexi/internal/quiz"
)

// A mathTemplate builds one concrete question from random parameters.
// Templates are grouped by difficulty tier; the synthesizer picks a tier
// from the question's position in the session and a template within the
// tier uniformly.
type mathTemplate struct {
	topic string
	build func(r Rand) drawn
}

type drawn struct {
	content     string
	answer      string
	explanation string
	diagram     *quiz.Diagram
}

var mathTemplates = map[quiz.Difficulty][]mathTemplate{
	quiz.DifficultyConcept: {
		{topic: "有理数·数轴", build: numberLineDistance},
		{topic: "有理数·相反数", build: oppositeNumber},
		{topic: "有理数·绝对值", build: absoluteValue},
		{topic: "有理数·比较", build: compareNegatives},
	},
	quiz.DifficultyEasy: {
		{topic: "有理数·科学记数法", build: scientificNotation},
		{topic: "整式·化简", build: simplifyExpression},
		{topic: "整式·求值", build: evaluateExpression},
		{topic: "几何初步·线段中点", build: segmentMidpoint},
	},
	quiz.DifficultyMedium: {
		{topic: "一元一次方程·解法", build: solveLinear},
		{topic: "一元一次方程·去括号", build: solveDistributive},
		{topic: "几何初步·余角", build: complementaryAngle},
		{topic: "几何初步·对顶角", build: verticalAngles},
		{topic: "几何初步·钟面角", build: clockAngle},
	},
	quiz.DifficultyChallenge: {
		{topic: "一元一次方程·应用", build: profitWordProblem},
		{topic: "几何初步·线段中点", build: doubleMidpoint},
		{topic: "几何初步·角度计算", build: straightAngleSplit},
	},
}

func numberLineDistance(r Rand) drawn {
	val := r.IntN(9) - 4
	for val == 0 {
		val = r.IntN(9) - 4
	}
	return drawn{
		content: fmt.Sprintf("观察数轴，点 A 表示的数是 %d，则点 A 到原点的距离是多少？", val),
		answer:  fmt.Sprintf("%d", abs(val)),
		explanation: fmt.Sprintf("数轴上一个数到原点的距离等于这个数的绝对值。|%d| = %d。",
			val, abs(val)),
		diagram: &quiz.Diagram{
			Kind:       quiz.DiagramNumberLine,
			NumberLine: &quiz.NumberLine{Value: val, Label: "A"},
		},
	}
}

func oppositeNumber(r Rand) drawn {
	val := r.IntN(19) - 9
	for val == 0 {
		val = r.IntN(19) - 9
	}
	return drawn{
		content:     fmt.Sprintf("数 %d 的相反数是多少？", val),
		answer:      fmt.Sprintf("%d", -val),
		explanation: fmt.Sprintf("只有符号不同的两个数互为相反数。%d 的相反数是 %d。", val, -val),
	}
}

func absoluteValue(r Rand) drawn {
	val := r.IntN(9) + 1
	return drawn{
		content: fmt.Sprintf("若 |x| = %d，且 x < 0，则 x 的值是？", val),
		answer:  fmt.Sprintf("%d", -val),
		explanation: fmt.Sprintf("绝对值等于 %d 的数有两个，分别是 %d 和 %d。因为题目要求 x < 0，所以 x = %d。",
			val, val, -val, -val),
	}
}

func compareNegatives(r Rand) drawn {
	a := -(r.IntN(10) + 1)
	b := -(r.IntN(10) + 1)
	for a == b {
		b = -(r.IntN(10) + 1)
	}
	answer := "<"
	if a > b {
		answer = ">"
	}
	return drawn{
		content: fmt.Sprintf("比较有理数的大小：%d ____ %d (填写 > 或 <)", a, b),
		answer:  answer,
		explanation: fmt.Sprintf("两个负数比较大小，绝对值大的反而小。|%d| = %d，|%d| = %d。",
			a, abs(a), b, abs(b)),
	}
}

func scientificNotation(r Rand) drawn {
	// mantissa d.ff with 1 <= d <= 8, exponent 4..7; the displayed number
	// is mantissa*10^exp, always an integer since exp >= 2
	whole := r.IntN(8) + 1
	frac := r.IntN(100)
	exp := r.IntN(4) + 4
	original := (int64(whole)*100 + int64(frac)) * pow10(exp-2)
	return drawn{
		content: fmt.Sprintf("将数字 %d 用科学记数法表示为 a × 10ⁿ 的形式，则 n 的值是？", original),
		answer:  fmt.Sprintf("%d", exp),
		explanation: fmt.Sprintf("科学记数法格式为 a × 10ⁿ (1≤|a|<10)。%d 相当于将小数点向左移动了 %d 位，故 n = %d。",
			original, exp, exp),
	}
}

func simplifyExpression(r Rand) drawn {
	a := r.IntN(5) + 2
	b := r.IntN(5) + 2
	for a == b {
		b = r.IntN(5) + 2
	}
	return drawn{
		content: fmt.Sprintf("化简整式：%dx - (%dx - 3) 的结果是？", a, b),
		answer:  fmt.Sprintf("%dx+3", a-b),
		explanation: fmt.Sprintf("去括号法则：括号前是负号，去掉括号后里面各项都要变号。原式 = %dx - %dx + 3 = (%d)x + 3。",
			a, b, a-b),
	}
}

func evaluateExpression(r Rand) drawn {
	a := r.IntN(4) + 2
	x := r.IntN(6) + 1
	b := r.IntN(9) + 1
	return drawn{
		content: fmt.Sprintf("当 x = %d 时，代数式 %dx + %d 的值是多少？", x, a, b),
		answer:  fmt.Sprintf("%d", a*x+b),
		explanation: fmt.Sprintf("把 x = %d 代入：%d × %d + %d = %d + %d = %d。",
			x, a, x, b, a*x, b, a*x+b),
	}
}

func segmentMidpoint(r Rand) drawn {
	ab := (r.IntN(5) + 5) * 2
	return drawn{
		content: fmt.Sprintf("如图，点 M 是线段 AB 的中点。若 AB = %dcm，则 AM 的长度是多少 cm？", ab),
		answer:  fmt.Sprintf("%d", ab/2),
		explanation: fmt.Sprintf("线段中点将线段平分为两段相等的线段。AM = 1/2 AB = %d ÷ 2 = %dcm。",
			ab, ab/2),
		diagram: segmentDiagram(
			quiz.SegmentPoint{Label: "A", Position: 0},
			quiz.SegmentPoint{Label: "M", Position: 50},
			quiz.SegmentPoint{Label: "B", Position: 100},
		),
	}
}

// doubleMidpoint nests two midpoints: M halves AB, N halves MB. Given an
// even AM, AN = AM + MN = AM + AM/2.
func doubleMidpoint(r Rand) drawn {
	am := (r.IntN(5) + 1) * 2
	mn := am / 2
	an := am + mn
	return drawn{
		content: fmt.Sprintf("如图，点 M 是线段 AB 的中点，点 N 是线段 MB 的中点。若 AM = %dcm，则 AN 的长度是多少 cm？", am),
		answer:  fmt.Sprintf("%d", an),
		explanation: fmt.Sprintf("M 是 AB 的中点，所以 MB = AM = %dcm；N 是 MB 的中点，所以 MN = %d ÷ 2 = %dcm。AN = AM + MN = %d + %d = %dcm。",
			am, am, mn, am, mn, an),
		diagram: segmentDiagram(
			quiz.SegmentPoint{Label: "A", Position: 0},
			quiz.SegmentPoint{Label: "M", Position: 50},
			quiz.SegmentPoint{Label: "N", Position: 75},
			quiz.SegmentPoint{Label: "B", Position: 100},
		),
	}
}

func solveLinear(r Rand) drawn {
	x := r.IntN(10) + 1
	a := r.IntN(5) + 2
	b := r.IntN(10) + 1
	res := a*x + b
	return drawn{
		content: fmt.Sprintf("解方程：%dx + %d = %d，则 x = ？", a, b, res),
		answer:  fmt.Sprintf("%d", x),
		explanation: fmt.Sprintf("1. 移项得 %dx = %d - %d = %d； 2. 系数化为1得 x = %d。",
			a, res, b, a*x, x),
	}
}

func solveDistributive(r Rand) drawn {
	x := r.IntN(8) + 2
	c := r.IntN(x-1) + 1
	a := r.IntN(4) + 2
	res := a * (x - c)
	return drawn{
		content: fmt.Sprintf("解方程：%d(x - %d) = %d，则 x = ？", a, c, res),
		answer:  fmt.Sprintf("%d", x),
		explanation: fmt.Sprintf("1. 两边同除以 %d 得 x - %d = %d； 2. 移项得 x = %d + %d = %d。",
			a, c, x-c, x-c, c, x),
	}
}

func complementaryAngle(r Rand) drawn {
	ang := r.IntN(40) + 20
	return drawn{
		content: fmt.Sprintf("如果 ∠1 = %d°，且 ∠1 与 ∠2 互为余角（和为90°），那么 ∠2 的度数是多少？", ang),
		answer:  fmt.Sprintf("%d", 90-ang),
		explanation: fmt.Sprintf("互余的两个角之和为 90°。∠2 = 90° - ∠1 = 90° - %d° = %d°。",
			ang, 90-ang),
	}
}

func verticalAngles(r Rand) drawn {
	ang := r.IntN(100) + 30
	return drawn{
		content: fmt.Sprintf("直线 AB 与直线 CD 相交于点 O，∠AOC = %d°。则 ∠BOD 的度数是？", ang),
		answer:  fmt.Sprintf("%d", ang),
		explanation: fmt.Sprintf("∠AOC 与 ∠BOD 是对顶角，对顶角相等，所以 ∠BOD = %d°。",
			ang),
	}
}

func clockAngle(r Rand) drawn {
	h := r.IntN(11) + 1
	angle := 30 * h
	if angle > 180 {
		angle = 360 - angle
	}
	return drawn{
		content: fmt.Sprintf("钟面上 %d 点整，时针与分针所成的角（取不大于平角的一个）是多少度？", h),
		answer:  fmt.Sprintf("%d", angle),
		explanation: fmt.Sprintf("钟面共 360°，每相邻两个数字之间是 30°。%d 点整两针相隔的角是 %d°。",
			h, angle),
		diagram: &quiz.Diagram{
			Kind:  quiz.DiagramClock,
			Clock: &quiz.ClockFace{Hour: h, Minute: 0},
		},
	}
}

func profitWordProblem(r Rand) drawn {
	price := (r.IntN(20) + 10) * 10
	count := r.IntN(3) + 2
	total := price * count
	cost := price * 8 / 10
	return drawn{
		content: fmt.Sprintf("某商店售出 %d 件相同的商品，共收入 %d 元。若每件商品的成本价是其售价的 80%%，则每件商品的利润是多少元？",
			count, total),
		answer: fmt.Sprintf("%d", price-cost),
		explanation: fmt.Sprintf("1. 售价 = %d ÷ %d = %d元； 2. 成本 = %d × 80%% = %d元； 3. 利润 = 售价 - 成本 = %d元。",
			total, count, price, price, cost, price-cost),
	}
}

func straightAngleSplit(r Rand) drawn {
	boc := r.IntN(50) + 40
	return drawn{
		content: fmt.Sprintf("已知 A, O, C 三点在同一直线上（即 ∠AOC = 180°），OB 是一条射线，且 ∠BOC = %d°。则 ∠AOB 的度数是？", boc),
		answer:  fmt.Sprintf("%d", 180-boc),
		explanation: fmt.Sprintf("平角等于 180°。∠AOB = ∠AOC - ∠BOC = 180° - %d° = %d°。",
			boc, 180-boc),
		diagram: &quiz.Diagram{
			Kind: quiz.DiagramAngle,
			Angle: &quiz.AngleFan{
				Vertex: "O",
				Rays: []quiz.Ray{
					{Label: "C", Sweep: 0},
					{Label: "B", Sweep: boc},
					{Label: "A", Sweep: 180},
				},
			},
		},
	}
}

func segmentDiagram(points ...quiz.SegmentPoint) *quiz.Diagram {
	return &quiz.Diagram{
		Kind:    quiz.DiagramSegment,
		Segment: &quiz.SegmentLine{Points: points},
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
