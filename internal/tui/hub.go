package tui

import (
	"fmt"
	"io"

	"github.com/blackwell-systems/libdesk/internal/session"
	"github.com/blackwell-systems/libdesk/internal/tui/delegate"
	"github.com/charmbracelet/bubbles/list"
)

// MenuItem represents an action in the hub menu
type MenuItem struct {
	Key         string
	Label       string
	Description string
	Role        session.Role // only shown to this role; empty means everyone
}

// FilterValue implements list.Item
func (m MenuItem) FilterValue() string {
	return m.Label + " " + m.Description
}

// HubContext holds the signed-in user and store counts shown in the hub.
type HubContext struct {
	Name           string
	Role           session.Role
	BookCount      int
	BorrowingCount int
}

// menuItems defines the menu in logical order
var menuItems = []MenuItem{
	{Key: "dashboard", Label: "Dashboard", Description: "Overview for your role"},
	{Key: "books", Label: "Browse Books", Description: "Search the catalog"},
	{Key: "borrowings", Label: "Borrowings", Description: "Loans you can see"},
	{Key: "add-book", Label: "Add Book", Description: "Add a title to the catalog", Role: session.RoleLibrarian},
	{Key: "logout", Label: "Log Out", Description: "Sign out and forget the token"},
	{Key: "quit", Label: "Quit", Description: "Exit libdesk"},
}

// MenuItems returns the hub entries visible to role.
func MenuItems(role session.Role) []MenuItem {
	var out []MenuItem
	for _, item := range menuItems {
		if item.Role != "" && item.Role != role {
			continue
		}
		out = append(out, item)
	}
	return out
}

// renderMenuItem renders a menu item in the hub
func renderMenuItem(w io.Writer, m list.Model, index int, item list.Item) {
	menuItem, ok := item.(MenuItem)
	if !ok {
		return
	}

	display := fmt.Sprintf("%-16s %s", menuItem.Label, StyleHelp.Render(menuItem.Description))

	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+display))
	} else {
		_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(display))
	}
}

// NewMenuList builds the hub list for role.
func NewMenuList(role session.Role) list.Model {
	entries := MenuItems(role)
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = e
	}

	l := list.New(items, delegate.NewWithSpacing(renderMenuItem, 1), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.HelpStyle = StyleHelp
	return l
}

// HubStatus is the one-line summary under the hub header.
func HubStatus(ctx HubContext) string {
	s := fmt.Sprintf("%s · %s", ctx.Name, StyleTag.Render(string(ctx.Role)))
	if ctx.BookCount > 0 {
		s += fmt.Sprintf(" · %d books", ctx.BookCount)
	}
	if ctx.BorrowingCount > 0 {
		s += fmt.Sprintf(" · %d borrowings", ctx.BorrowingCount)
	}
	return s
}
