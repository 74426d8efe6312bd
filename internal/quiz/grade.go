package quiz

// Grade reports whether answer matches q's correct answer after
// normalization. For choice questions the canonical correct answer is the
// bare option letter, so three spellings of the same choice are accepted:
// the letter itself ("b"), the full labelled option ("B、光合作用"), and
// the option text with the label dropped ("光合作用"). Free-response
// questions compare normalized text directly. An empty normalized answer
// never grades correct.
func Grade(q *Question, answer string) bool {
	user := Normalize(answer)
	if user == "" {
		return false
	}
	correct := Normalize(q.CorrectAnswer)
	if user == correct {
		return true
	}
	if !q.IsChoice() {
		return false
	}
	idx := letterIndex(correct)
	if idx < 0 || idx >= len(q.Options) {
		return false
	}
	optText := Normalize(StripOptionLabel(q.Options[idx]))
	if optText == "" {
		return false
	}
	if user == optText {
		return true
	}
	return Normalize(StripOptionLabel(answer)) == optText
}

// letterIndex maps a normalized bare letter to its option index ("A" -> 0).
// Anything longer than one letter is not a label.
func letterIndex(s string) int {
	if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
		return -1
	}
	return int(s[0] - 'A')
}
