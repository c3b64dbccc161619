package unified

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/libdesk/internal/tui"
)

// HubModel is the main menu shown after sign-in.
type HubModel struct {
	list    list.Model
	context tui.HubContext
}

type hubKeys struct {
	quit       key.Binding
	selectItem key.Binding
}

var hubKeyMap = hubKeys{
	quit: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q", "quit"),
	),
	selectItem: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
}

// NewHubModel creates the hub menu for the signed-in role.
func NewHubModel(ctx tui.HubContext) HubModel {
	l := tui.NewMenuList(ctx.Role)
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{hubKeyMap.selectItem}
	}
	return HubModel{list: l, context: ctx}
}

// SetContext updates the counts shown under the header.
func (m HubModel) SetContext(ctx tui.HubContext) HubModel {
	m.context = ctx
	return m
}

// SetSize fits the menu inside the bordered frame.
func (m HubModel) SetSize(width, height int) HubModel {
	const outerPaddingH = 4 * 2
	const outerPaddingV = 2 * 2
	const innerPaddingH = 1 + 2
	const headerLines = 4
	h, v := tui.StyleBorder.GetFrameSize()

	listWidth := width - outerPaddingH - innerPaddingH - h
	listHeight := height - outerPaddingV - v - headerLines
	if listWidth < 40 {
		listWidth = 40
	}
	if listHeight < 5 {
		listHeight = 5
	}
	m.list.SetSize(listWidth, listHeight)
	return m
}

func (m HubModel) Update(msg tea.Msg) (HubModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, hubKeyMap.quit):
			return m, func() tea.Msg { return QuitAppMsg{} }

		case key.Matches(msg, hubKeyMap.selectItem):
			item, ok := m.list.SelectedItem().(tui.MenuItem)
			if !ok {
				return m, nil
			}
			switch item.Key {
			case "quit":
				return m, func() tea.Msg { return QuitAppMsg{} }
			case "logout":
				return m, func() tea.Msg { return logoutMsg{} }
			case "add-book":
				return m, func() tea.Msg { return editBookMsg{} }
			default:
				target := View(item.Key)
				return m, func() tea.Msg { return NavigateMsg{Target: target} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m HubModel) View() string {
	outerStyle := lipgloss.NewStyle().Padding(2, 4)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Padding(0, 1).
		Render("libdesk - Library Desk")

	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("  " + tui.HubStatus(m.context))

	content := lipgloss.JoinVertical(lipgloss.Left, header, status, m.list.View())

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return outerStyle.Render(tui.StyleBorder.Render(innerPadding.Render(content)))
}
