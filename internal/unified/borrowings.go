package unified

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/libdesk/internal/circulation"
	"github.com/blackwell-systems/libdesk/internal/session"
	"github.com/blackwell-systems/libdesk/internal/tui"
)

// BorrowingsModel lists loans. Librarians can mark active ones returned.
type BorrowingsModel struct {
	list          list.Model
	role          session.Role
	confirmReturn *circulation.Borrowing
	activeCmd     string
}

// NewBorrowingsModel creates the loan list for role, with overdue markers
// computed against now.
func NewBorrowingsModel(borrowings []circulation.Borrowing, role session.Role, now time.Time) BorrowingsModel {
	l := tui.NewBorrowingList(borrowings, now)
	l.KeyMap.Quit.SetEnabled(false)
	if role == session.RoleLibrarian {
		l.AdditionalShortHelpKeys = func() []key.Binding {
			return []key.Binding{tui.ReturnKey}
		}
	}
	return BorrowingsModel{list: l, role: role}
}

// SetBorrowings replaces the list contents.
func (m BorrowingsModel) SetBorrowings(borrowings []circulation.Borrowing, now time.Time) BorrowingsModel {
	m.list.SetItems(tui.BorrowingItems(borrowings, now))
	return m
}

func (m BorrowingsModel) SetSize(width, height int) BorrowingsModel {
	h, v := tui.StyleBorder.GetFrameSize()
	m.list.SetSize(width-h, height-v-3)
	return m
}

func (m BorrowingsModel) Update(msg tea.Msg) (BorrowingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		if m.confirmReturn != nil {
			id := m.confirmReturn.ID
			m.confirmReturn = nil
			if msg.String() == "y" || msg.String() == "Y" {
				return m, func() tea.Msg { return returnMsg{borrowingID: id} }
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, stdKeys.Back) && m.list.FilterState() != list.FilterApplied:
			return m, func() tea.Msg { return NavigateMsg{Target: ViewHub} }

		case key.Matches(msg, stdKeys.Refresh):
			m.activeCmd = "r"
			return m, tea.Batch(func() tea.Msg { return refreshMsg{target: ViewBorrowings} }, tui.HighlightCmd())

		case key.Matches(msg, tui.ReturnKey) && m.role == session.RoleLibrarian:
			item, ok := m.list.SelectedItem().(tui.BorrowingItem)
			if ok && item.Borrowing.Active() {
				b := item.Borrowing
				m.confirmReturn = &b
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BorrowingsModel) View() string {
	shortcuts := []tui.ShortcutEntry{
		{Key: "", Label: "/ filter"},
		{Key: "r", Label: "r refresh"},
		{Key: "", Label: "esc back"},
	}
	if m.role == session.RoleLibrarian {
		shortcuts = append([]tui.ShortcutEntry{{Key: "", Label: "x return"}}, shortcuts...)
	}
	status := ""
	if m.confirmReturn != nil {
		status = tui.StyleHighlight.Render(fmt.Sprintf("Mark %q returned? ", m.confirmReturn.Book.Title)) + tui.StyleHelp.Render("y/N")
	}
	return tui.RenderWithFooter(m.list.View(), shortcuts, m.activeCmd, status)
}
