package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/libdesk/internal/catalog"
	"github.com/blackwell-systems/libdesk/internal/tui/delegate"
	"github.com/charmbracelet/bubbles/list"
	xansi "github.com/charmbracelet/x/ansi"
)

// BookItem represents a book in the list.
type BookItem struct {
	Book catalog.Book
}

// FilterValue returns a string used for filtering in the list
func (b BookItem) FilterValue() string {
	return strings.Join([]string{b.Book.Title, b.Book.Author, b.Book.Genre, b.Book.ISBN}, " ")
}

// truncateText truncates a string to maxWidth terminal cells with ellipsis.
func truncateText(s string, maxWidth int) string {
	if xansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return "…"
	}
	return xansi.Truncate(s, maxWidth, "…")
}

// Copies renders "available/total", green when a copy can be borrowed.
func Copies(b catalog.Book) string {
	s := fmt.Sprintf("%d/%d", b.AvailableCopies, b.TotalCopies)
	if b.Borrowable() {
		return StyleAvailable.Render(s + " ✓")
	}
	return StyleHelp.Render(s)
}

func renderBook(w io.Writer, m list.Model, index int, item list.Item) {
	bookItem, ok := item.(BookItem)
	if !ok {
		return
	}
	b := bookItem.Book

	idStr := fmt.Sprintf("%-5d", b.ID)
	title := truncateText(b.Title, 40)
	author := truncateText(b.Author, 24)
	genre := ""
	if b.Genre != "" {
		genre = " " + StyleTag.Render("["+b.Genre+"]")
	}
	line := fmt.Sprintf("%s %-40s %-24s", idStr, title, author)

	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+line)+genre+" "+Copies(b))
	} else {
		_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(line)+genre+" "+Copies(b))
	}
}

// NewBookList builds a filterable list of books.
func NewBookList(books []catalog.Book) list.Model {
	l := list.New(BookItems(books), delegate.New(renderBook), 0, 0)
	l.Title = "Books"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = StyleHeader
	l.Styles.PaginationStyle = StyleHelp
	l.Styles.HelpStyle = StyleHelp
	return l
}

// BookItems wraps books as list items.
func BookItems(books []catalog.Book) []list.Item {
	items := make([]list.Item, len(books))
	for i, b := range books {
		items[i] = BookItem{Book: b}
	}
	return items
}

// RenderBookDetails renders every field of a book for the details pane.
func RenderBookDetails(b catalog.Book) string {
	var s strings.Builder
	s.WriteString(StyleHeader.Render(b.Title) + "\n")
	s.WriteString(StyleHelp.Render("by ") + b.Author + "\n\n")
	rows := [][2]string{
		{"ID", fmt.Sprint(b.ID)},
		{"Genre", b.Genre},
		{"ISBN", b.ISBN},
		{"Copies", Copies(b)},
	}
	for _, r := range rows {
		s.WriteString(fmt.Sprintf("%s %s\n", StyleHelp.Render(fmt.Sprintf("%-8s", r[0])), r[1]))
	}
	return s.String()
}
