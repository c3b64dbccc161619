package unified

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/libdesk/internal/dashboard"
	"github.com/blackwell-systems/libdesk/internal/session"
	"github.com/blackwell-systems/libdesk/internal/tui"
)

// DashboardModel shows the role overview in a scrollable pane.
type DashboardModel struct {
	viewport  viewport.Model
	data      dashboard.Dashboard
	activeCmd string
}

// NewDashboardModel starts from the empty dashboard for role until the
// fetch completes.
func NewDashboardModel(role session.Role) DashboardModel {
	m := DashboardModel{viewport: viewport.New(80, 20)}
	return m.SetDashboard(dashboard.Default(role))
}

// SetDashboard replaces the data shown.
func (m DashboardModel) SetDashboard(d dashboard.Dashboard) DashboardModel {
	m.data = d
	m.viewport.SetContent(tui.RenderDashboard(d))
	return m
}

func (m DashboardModel) SetSize(width, height int) DashboardModel {
	h, v := tui.StyleBorder.GetFrameSize()
	m.viewport.Width = width - h
	m.viewport.Height = height - v - 3
	return m
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, stdKeys.Back):
			return m, func() tea.Msg { return NavigateMsg{Target: ViewHub} }
		case key.Matches(msg, stdKeys.Refresh):
			m.activeCmd = "r"
			return m, tea.Batch(func() tea.Msg { return refreshMsg{target: ViewDashboard} }, tui.HighlightCmd())
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m DashboardModel) View() string {
	return tui.RenderWithFooter(m.viewport.View(), []tui.ShortcutEntry{
		{Key: "", Label: "↑↓ scroll"},
		{Key: "r", Label: "r refresh"},
		{Key: "", Label: "esc back"},
	}, m.activeCmd, "")
}
