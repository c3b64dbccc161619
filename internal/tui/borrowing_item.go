package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/blackwell-systems/libdesk/internal/circulation"
	"github.com/blackwell-systems/libdesk/internal/tui/delegate"
	"github.com/charmbracelet/bubbles/list"
)

// BorrowingItem represents a loan in the list. Now fixes the instant the
// overdue marker is computed against.
type BorrowingItem struct {
	Borrowing circulation.Borrowing
	Now       time.Time
}

// FilterValue returns a string used for filtering in the list
func (b BorrowingItem) FilterValue() string {
	return strings.Join([]string{b.Borrowing.Book.Title, b.Borrowing.User.Name, b.Borrowing.User.Email}, " ")
}

// LoanStatus renders the state of a loan: returned, overdue or due.
func LoanStatus(b circulation.Borrowing, now time.Time) string {
	switch {
	case !b.Active():
		return StyleHelp.Render("returned " + Date(b.ReturnedAt))
	case b.Overdue(now):
		return StyleOverdue.Render("OVERDUE since " + Date(b.DueAt))
	default:
		return StyleAvailable.Render("due " + Date(b.DueAt))
	}
}

func renderBorrowing(w io.Writer, m list.Model, index int, item list.Item) {
	bi, ok := item.(BorrowingItem)
	if !ok {
		return
	}
	b := bi.Borrowing

	first := fmt.Sprintf("%-5d %s", b.ID, truncateText(b.Book.Title, 40))
	second := fmt.Sprintf("      %s · borrowed %s · ", truncateText(b.User.Name, 24), Date(b.BorrowedAt))

	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+first)+"\n"+StyleHelp.Render(second)+LoanStatus(b, bi.Now))
	} else {
		_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(first)+"\n"+StyleHelp.Render(second)+LoanStatus(b, bi.Now))
	}
}

// NewBorrowingList builds a filterable two-line list of loans.
func NewBorrowingList(borrowings []circulation.Borrowing, now time.Time) list.Model {
	l := list.New(BorrowingItems(borrowings, now), delegate.NewMultiline(renderBorrowing, 2, 1), 0, 0)
	l.Title = "Borrowings"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = StyleHeader
	l.Styles.PaginationStyle = StyleHelp
	l.Styles.HelpStyle = StyleHelp
	return l
}

// BorrowingItems wraps loans as list items.
func BorrowingItems(borrowings []circulation.Borrowing, now time.Time) []list.Item {
	items := make([]list.Item, len(borrowings))
	for i, b := range borrowings {
		items[i] = BorrowingItem{Borrowing: b, Now: now}
	}
	return items
}
