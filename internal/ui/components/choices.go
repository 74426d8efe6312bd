package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/qian20010413/xinyunxuexi/internal/ui/theme"
)

// OptionPicker is a selector over already-labelled choice options
// ("A. 拟人", "B. 比喻", ...). The picker does not grade; callers
// reveal the outcome after grading.
type OptionPicker struct {
	Options      []string
	Selected     int
	Locked       bool
	ChosenIndex  int
	CorrectIndex int
}

// NewOptionPicker creates a picker over the given options.
func NewOptionPicker(options []string) OptionPicker {
	return OptionPicker{
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Init returns nil.
func (p OptionPicker) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. Selection is frozen once locked.
func (p OptionPicker) Update(msg tea.Msg) (OptionPicker, tea.Cmd) {
	if p.Locked {
		return p, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.Selected > 0 {
			p.Selected--
		}
	case "down", "j":
		if p.Selected < len(p.Options)-1 {
			p.Selected++
		}
	}

	return p, nil
}

// Letter returns the bare option letter for the current selection.
func (p OptionPicker) Letter() string {
	return string(rune('A' + p.Selected))
}

// Reveal locks the picker and marks the chosen and correct options.
func (p *OptionPicker) Reveal(correctIndex int) {
	p.Locked = true
	p.ChosenIndex = p.Selected
	p.CorrectIndex = correctIndex
}

// View renders the option list.
func (p OptionPicker) View() string {
	var s string
	for i, opt := range p.Options {
		prefix := "  "
		if i == p.Selected && !p.Locked {
			prefix = "▸ "
		}
		line := prefix + opt

		if p.Locked {
			switch {
			case i == p.CorrectIndex:
				s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
			case i == p.ChosenIndex:
				s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
			continue
		}

		if i == p.Selected {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
