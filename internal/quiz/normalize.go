package quiz

import (
	"regexp"
	"strings"
)

// Answer comparison is always done on normalized text. Normalization is an
// ordered pipeline of named rules so individual rules stay testable and the
// order is explicit; the whole pipeline is idempotent.

type normalizeRule struct {
	name  string
	apply func(string) string
}

var (
	whitespaceRe          = regexp.MustCompile(`\s+`)
	punctuationRe         = regexp.MustCompile(`[.．。,，、]`)
	implicitCoefficientRe = regexp.MustCompile(`^1([A-Z])`)
	optionLabelRe         = regexp.MustCompile(`^\s*([A-Za-z])\s*[.．。、]\s*`)
)

var normalizeRules = []normalizeRule{
	{
		// Leading, trailing and interior whitespace all go: "x + 3" and
		// "x+3" are the same answer.
		name:  "strip-whitespace",
		apply: func(s string) string { return whitespaceRe.ReplaceAllString(s, "") },
	},
	{
		// Sentence punctuation, ASCII and full-width. Students closing an
		// answer with 。 or picking "A." instead of "A" are not wrong.
		name:  "strip-punctuation",
		apply: func(s string) string { return punctuationRe.ReplaceAllString(s, "") },
	},
	{
		name:  "uppercase",
		apply: strings.ToUpper,
	},
	{
		// "1x+3" means "x+3". Only a leading coefficient of exactly 1
		// directly before a variable letter is dropped; "12x" is untouched.
		name:  "implicit-coefficient",
		apply: func(s string) string { return implicitCoefficientRe.ReplaceAllString(s, "$1") },
	},
}

// Normalize canonicalizes an answer string for comparison. Empty input
// stays empty; so does input that is nothing but whitespace and punctuation.
func Normalize(s string) string {
	for _, r := range normalizeRules {
		s = r.apply(s)
	}
	return s
}

// StripOptionLabel removes a leading option label such as "A. " or "B、"
// from a choice answer, returning the bare option text. Input without a
// label is returned unchanged.
func StripOptionLabel(s string) string {
	return optionLabelRe.ReplaceAllString(s, "")
}

// OptionLetter extracts the label letter of a formatted option string
// ("B、某选项" yields "B"). It returns "" when no label is present.
func OptionLetter(s string) string {
	m := optionLabelRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}
