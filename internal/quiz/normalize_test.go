package quiz

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"trims whitespace", "  9  ", "9"},
		{"removes interior whitespace", "x + 3", "X+3"},
		{"strips ascii period", "A.", "A"},
		{"strips fullwidth period", "A．", "A"},
		{"strips ideographic period", "9。", "9"},
		{"strips commas", "1,000，000", "1000000"},
		{"uppercases", "abc", "ABC"},
		{"implicit coefficient dropped", "1x+3", "X+3"},
		{"coefficient 12 kept", "12x", "12X"},
		{"coefficient mid-string kept", "x+1y", "X+1Y"},
		{"negative expression", "-2x + 3", "-2X+3"},
		{"whitespace and punctuation only", " 。 ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  A.  ", "1x+3", "x + 3", "B、细胞", "9。", "  12x  "}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeLetterForms(t *testing.T) {
	// "A." and "a" must canonicalize identically so either grades the same.
	if Normalize("A.") != Normalize("a") {
		t.Errorf("Normalize(%q) = %q, Normalize(%q) = %q; want equal",
			"A.", Normalize("A."), "a", Normalize("a"))
	}
}

func TestStripOptionLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A. 选项文本", "选项文本"},
		{"B、光合作用", "光合作用"},
		{"C．midpoint", "midpoint"},
		{"D。四", "四"},
		{"no label here", "no label here"},
		{"AB、not a label", "AB、not a label"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripOptionLabel(tt.in); got != tt.want {
			t.Errorf("StripOptionLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOptionLetter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A、选项", "A"},
		{"b. text", "B"},
		{"plain", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := OptionLetter(tt.in); got != tt.want {
			t.Errorf("OptionLetter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
