// Package gen produces practice questions. Math questions are synthesized
// from parameterized templates covering the grade-7 first-semester syllabus;
// Chinese and English questions are sampled from built-in banks. An
// AI-backed source with the same interface lives in ai.go.
package gen

import "errors"

// ErrBankExhausted is returned when every question in a subject's static
// bank has already been served to the student. Callers can offer to reset
// the used-question history and retry.
var ErrBankExhausted = errors.New("question bank exhausted")

// Rand is the source of randomness the synthesizer draws from. *rand.Rand
// from math/rand/v2 satisfies it; tests substitute a scripted source.
type Rand interface {
	IntN(n int) int
}
