package unified

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/libdesk/internal/catalog"
	"github.com/blackwell-systems/libdesk/internal/session"
	"github.com/blackwell-systems/libdesk/internal/tui"
)

var (
	stdKeys  = tui.NewStandardKeys()
	bookKeys = tui.NewBookKeys()
)

// BooksModel lists the catalog. Actions offered depend on the role.
type BooksModel struct {
	list        list.Model
	role        session.Role
	showDetails bool
	confirmDel  *catalog.Book
	activeCmd   string
}

// NewBooksModel creates the book list for role.
func NewBooksModel(books []catalog.Book, role session.Role) BooksModel {
	l := tui.NewBookList(books)
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		if role == session.RoleLibrarian {
			return []key.Binding{bookKeys.Add, bookKeys.Edit, bookKeys.Delete}
		}
		return []key.Binding{bookKeys.Borrow}
	}
	return BooksModel{list: l, role: role}
}

// SetBooks replaces the list contents, keeping the cursor and filter.
func (m BooksModel) SetBooks(books []catalog.Book) BooksModel {
	m.list.SetItems(tui.BookItems(books))
	return m
}

func (m BooksModel) SetSize(width, height int) BooksModel {
	h, v := tui.StyleBorder.GetFrameSize()
	m.list.SetSize(width-h, height-v-3)
	return m
}

func (m BooksModel) selected() (catalog.Book, bool) {
	item, ok := m.list.SelectedItem().(tui.BookItem)
	return item.Book, ok
}

func (m BooksModel) Update(msg tea.Msg) (BooksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		if m.confirmDel != nil {
			id := m.confirmDel.ID
			m.confirmDel = nil
			if msg.String() == "y" || msg.String() == "Y" {
				return m, func() tea.Msg { return deleteBookMsg{id: id} }
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, stdKeys.Back) && m.list.FilterState() != list.FilterApplied:
			if m.showDetails {
				m.showDetails = false
				return m, nil
			}
			return m, func() tea.Msg { return NavigateMsg{Target: ViewHub} }

		case key.Matches(msg, stdKeys.Select):
			m.showDetails = !m.showDetails
			return m, nil

		case key.Matches(msg, stdKeys.Refresh):
			m.activeCmd = "r"
			return m, tea.Batch(func() tea.Msg { return refreshMsg{target: ViewBooks} }, tui.HighlightCmd())

		case key.Matches(msg, bookKeys.Borrow) && m.role == session.RoleMember:
			if b, ok := m.selected(); ok {
				m.activeCmd = "b"
				id := b.ID
				return m, tea.Batch(func() tea.Msg { return borrowMsg{bookID: id} }, tui.HighlightCmd())
			}

		case key.Matches(msg, bookKeys.Add) && m.role == session.RoleLibrarian:
			return m, func() tea.Msg { return editBookMsg{} }

		case key.Matches(msg, bookKeys.Edit) && m.role == session.RoleLibrarian:
			if b, ok := m.selected(); ok {
				return m, func() tea.Msg { return editBookMsg{book: &b} }
			}

		case key.Matches(msg, bookKeys.Delete) && m.role == session.RoleLibrarian:
			if b, ok := m.selected(); ok {
				m.confirmDel = &b
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BooksModel) shortcuts() []tui.ShortcutEntry {
	if m.role == session.RoleLibrarian {
		return []tui.ShortcutEntry{
			{Key: "", Label: "enter details"},
			{Key: "", Label: "a add"},
			{Key: "", Label: "e edit"},
			{Key: "", Label: "d delete"},
			{Key: "r", Label: "r refresh"},
			{Key: "", Label: "esc back"},
		}
	}
	return []tui.ShortcutEntry{
		{Key: "", Label: "enter details"},
		{Key: "b", Label: "b borrow"},
		{Key: "r", Label: "r refresh"},
		{Key: "", Label: "esc back"},
	}
}

func (m BooksModel) View() string {
	body := m.list.View()
	if m.showDetails {
		if b, ok := m.selected(); ok {
			body = tui.RenderBookDetails(b)
		}
	}
	status := ""
	if m.confirmDel != nil {
		status = tui.StyleHighlight.Render(fmt.Sprintf("Delete %q? ", m.confirmDel.Title)) + tui.StyleHelp.Render("y/N")
	}
	return tui.RenderWithFooter(body, m.shortcuts(), m.activeCmd, status)
}
