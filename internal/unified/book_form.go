package unified

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/libdesk/internal/catalog"
	"github.com/blackwell-systems/libdesk/internal/tui"
)

// BookFormModel adds or edits a book.
type BookFormModel struct {
	form tui.Form
	id   int64 // 0 for a new book
}

// NewBookFormModel edits book, or adds a new one when book is nil.
func NewBookFormModel(book *catalog.Book) BookFormModel {
	if book == nil {
		return BookFormModel{form: tui.NewBookForm("Add Book", "", catalog.BookInput{TotalCopies: 1})}
	}
	subtitle := fmt.Sprintf("#%d · %s", book.ID, book.Title)
	return BookFormModel{
		form: tui.NewBookForm("Edit Book", subtitle, catalog.InputFrom(*book)),
		id:   book.ID,
	}
}

// SetError shows a failed save and reopens the form.
func (m BookFormModel) SetError(err error) BookFormModel {
	m.form.SetError(err)
	return m
}

func (m BookFormModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m BookFormModel) Update(msg tea.Msg) (BookFormModel, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	if m.form.Canceled() {
		return m, func() tea.Msg { return NavigateMsg{Target: ViewBooks} }
	}
	if m.form.Submitted() {
		m.form.Reset()
		in, err := tui.BookInputFromValues(m.form.Values())
		if err != nil {
			m.form.SetError(err)
			return m, cmd
		}
		id := m.id
		return m, tea.Batch(cmd, func() tea.Msg { return saveBookMsg{id: id, in: in} })
	}
	return m, cmd
}

func (m BookFormModel) View() string {
	return m.form.View()
}
