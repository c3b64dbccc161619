package unified

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/libdesk/internal/catalog"
	"github.com/blackwell-systems/libdesk/internal/tui"
)

// Service calls run off the Update loop; each reports back with one message.

func (m Model) doLogin(email, password string) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		sess, err := svc.Login(ctx, email, password)
		return loginDoneMsg{sess: sess, err: err}
	}
}

func (m Model) logout() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return loggedOutMsg{err: svc.Logout(ctx)}
	}
}

// load fetches what target shows.
func (m Model) load(target View) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	switch target {
	case ViewBooks:
		return func() tea.Msg {
			books, err := svc.RefreshBooks(ctx, "")
			return opDoneMsg{status: fmt.Sprintf("%d books", len(books)), err: err}
		}
	case ViewBorrowings:
		return func() tea.Msg {
			out, err := svc.RefreshBorrowings(ctx)
			return opDoneMsg{status: fmt.Sprintf("%d borrowings", len(out)), err: err}
		}
	case ViewDashboard:
		return func() tea.Msg {
			d, err := svc.Dashboard(ctx)
			return dashboardDoneMsg{d: d, err: err}
		}
	}
	return nil
}

func (m Model) borrow(bookID int64) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		b, err := svc.Borrow(ctx, bookID)
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: fmt.Sprintf("Borrowed %q, due %s", b.Book.Title, tui.Date(b.DueAt))}
	}
}

func (m Model) returnBook(id int64) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		b, err := svc.Return(ctx, id)
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: fmt.Sprintf("Returned %q", b.Book.Title)}
	}
}

func (m Model) deleteBook(id int64) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		if err := svc.DeleteBook(ctx, id); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: fmt.Sprintf("Deleted book %d", id)}
	}
}

func (m Model) saveBook(id int64, in catalog.BookInput) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		var (
			book catalog.Book
			err  error
		)
		if id == 0 {
			book, err = svc.CreateBook(ctx, in)
		} else {
			book, err = svc.UpdateBook(ctx, id, in)
		}
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: fmt.Sprintf("Saved %q", book.Title), next: ViewBooks}
	}
}
