package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/qian20010413/xinyunxuexi/internal/ledger"
	"github.com/qian20010413/xinyunxuexi/internal/router"
	"github.com/qian20010413/xinyunxuexi/internal/screen"
	"github.com/qian20010413/xinyunxuexi/internal/screens/home"
	"github.com/qian20010413/xinyunxuexi/internal/session"
	"github.com/qian20010413/xinyunxuexi/internal/ui/layout"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Engine *session.Engine
	Ledger *ledger.Ledger
	AIMode bool
}

// abandoner is implemented by screens that hold a live session and
// need to discard it when the user backs out.
type abandoner interface {
	Abandoned()
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	led    *ledger.Ledger
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Engine, opts.Ledger, opts.AIMode)
	return AppModel{
		router: router.New(homeScreen),
		led:    opts.Ledger,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				if a, ok := m.router.Active().(abandoner); ok {
					a.Abandoned()
				}
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	answered, correct := m.todayTotals()
	header := layout.RenderHeader(title, answered, correct, m.width)

	footerHints := m.footerHints(active)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// footerHints asks the active screen for hints, falling back to stack
// position defaults.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "返回"},
			{Key: "Ctrl+C", Description: "退出"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Enter", Description: "确认"},
		{Key: "Ctrl+C", Description: "退出"},
	}
}

// todayTotals finds today's daily record for the header.
func (m AppModel) todayTotals() (answered, correct int) {
	today := time.Now().Format("2006-01-02")
	for _, d := range m.led.Daily() {
		if d.Date == today {
			return d.Answered, d.Correct
		}
	}
	return 0, 0
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
