// Package home is the landing screen: subject challenges, the mistake
// book, the learning report and exit.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/qian20010413/xinyunxuexi/internal/ledger"
	"github.com/qian20010413/xinyunxuexi/internal/quiz"
	"github.com/qian20010413/xinyunxuexi/internal/router"
	"github.com/qian20010413/xinyunxuexi/internal/screen"
	"github.com/qian20010413/xinyunxuexi/internal/screens/mistakes"
	"github.com/qian20010413/xinyunxuexi/internal/screens/practice"
	"github.com/qian20010413/xinyunxuexi/internal/screens/stats"
	"github.com/qian20010413/xinyunxuexi/internal/session"
	"github.com/qian20010413/xinyunxuexi/internal/ui/components"
	"github.com/qian20010413/xinyunxuexi/internal/ui/theme"
)

// HomeScreen is the main landing screen of the application.
type HomeScreen struct {
	menu   components.Menu
	led    *ledger.Ledger
	aiMode bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. aiMode flags whether questions come from
// the AI source rather than the built-in synthesizer.
func New(engine *session.Engine, led *ledger.Ledger, aiMode bool) *HomeScreen {
	items := make([]components.MenuItem, 0, len(quiz.AllSubjects)+3)

	for _, subject := range quiz.AllSubjects {
		subject := subject
		items = append(items, components.MenuItem{
			Label: subject.Label() + "挑战",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: practice.New(engine, led, subject),
					}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{
			Label: "错题本",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: mistakes.New(engine, led)}
				}
			},
		},
		components.MenuItem{
			Label: "学习报告",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: stats.New(led)}
				}
			},
		},
		components.MenuItem{
			Label: "退出",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	)

	return &HomeScreen{
		menu:   components.NewMenu(items),
		led:    led,
		aiMode: aiMode,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Render("心芸学习"))
	sections = append(sections, theme.Subtitle.Render("初一同步练习 · 数学 / 语文 / 英语"))
	sections = append(sections, h.viewStats())
	sections = append(sections, h.menu.View())

	if h.aiMode {
		sections = append(sections, theme.Hint.Render("AI 出题模式已开启"))
	}

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// viewStats is the one-line summary between the title and the menu.
func (h *HomeScreen) viewStats() string {
	totals := h.led.Totals()
	mistakeCount := len(h.led.Mistakes())

	if totals.Answered == 0 && mistakeCount == 0 {
		return theme.Hint.Render("欢迎！选择一个科目开始练习")
	}

	accuracy := 0
	if totals.Answered > 0 {
		accuracy = totals.Correct * 100 / totals.Answered
	}
	return theme.Subtitle.Render(fmt.Sprintf(
		"共练习 %d 题 · 正确率 %d%% · 错题 %d 道",
		totals.Answered, accuracy, mistakeCount))
}

func (h *HomeScreen) Title() string {
	return "首页"
}
