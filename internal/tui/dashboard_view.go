package tui

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/libdesk/internal/dashboard"
)

// RenderDashboard renders either dashboard shape as a text panel.
func RenderDashboard(d dashboard.Dashboard) string {
	switch d := d.(type) {
	case *dashboard.Librarian:
		return renderLibrarian(d)
	case *dashboard.Member:
		return renderMember(d)
	default:
		return StyleHelp.Render("No dashboard data")
	}
}

func stat(label string, n int64) string {
	return fmt.Sprintf("%s %s", StyleHelp.Render(fmt.Sprintf("%-18s", label)), StyleHeader.Render(fmt.Sprint(n)))
}

func renderLibrarian(d *dashboard.Librarian) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Library overview") + "\n\n")
	b.WriteString(stat("Books", d.TotalBooks) + "\n")
	b.WriteString(stat("Members", d.TotalMembers) + "\n")
	b.WriteString(stat("Borrowed", d.TotalBorrowedBooks) + "\n")
	overdue := stat("Overdue", d.TotalOverdueBooks)
	if d.TotalOverdueBooks > 0 {
		overdue = fmt.Sprintf("%s %s", StyleHelp.Render(fmt.Sprintf("%-18s", "Overdue")), StyleOverdue.Render(fmt.Sprint(d.TotalOverdueBooks)))
	}
	b.WriteString(overdue + "\n\n")

	b.WriteString(StyleHeader.Render("Recent borrowings") + "\n")
	if len(d.RecentBorrowings) == 0 {
		b.WriteString(StyleHelp.Render("  none") + "\n")
	}
	for _, r := range d.RecentBorrowings {
		line := fmt.Sprintf("  %-30s %-20s due %s", truncateText(r.Book.Title, 30), truncateText(r.User.Name, 20), Date(r.DueAt))
		if r.IsOverdue {
			line += " " + StyleOverdue.Render("overdue")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + StyleHeader.Render("Popular books") + "\n")
	if len(d.PopularBooks) == 0 {
		b.WriteString(StyleHelp.Render("  none") + "\n")
	}
	for i, p := range d.PopularBooks {
		b.WriteString(fmt.Sprintf("  %d. %-30s %s %s\n", i+1, truncateText(p.Title, 30),
			StyleHelp.Render(truncateText(p.Author, 20)), StyleTag.Render(fmt.Sprintf("×%d", p.BorrowingCount))))
	}
	return b.String()
}

func renderMember(d *dashboard.Member) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("My library") + "\n\n")
	b.WriteString(stat("Books borrowed", d.TotalBooksBorrowed) + "\n")
	overdue := stat("Overdue", d.OverdueCount)
	if d.OverdueCount > 0 {
		overdue = fmt.Sprintf("%s %s", StyleHelp.Render(fmt.Sprintf("%-18s", "Overdue")), StyleOverdue.Render(fmt.Sprint(d.OverdueCount)))
	}
	b.WriteString(overdue + "\n\n")

	b.WriteString(StyleHeader.Render("On loan") + "\n")
	if len(d.ActiveBorrowings) == 0 {
		b.WriteString(StyleHelp.Render("  nothing on loan") + "\n")
	}
	for _, a := range d.ActiveBorrowings {
		line := fmt.Sprintf("  %-30s due %s", truncateText(a.Book.Title, 30), Date(a.DueAt))
		if a.DaysUntilDue != nil {
			line += " " + StyleHelp.Render("("+*a.DaysUntilDue+")")
		}
		if a.IsOverdue {
			line += " " + StyleOverdue.Render("overdue")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + StyleHeader.Render("History") + "\n")
	if len(d.BorrowingHistory) == 0 {
		b.WriteString(StyleHelp.Render("  no returned books") + "\n")
	}
	for _, h := range d.BorrowingHistory {
		b.WriteString(fmt.Sprintf("  %-30s %s → %s\n", truncateText(h.Book.Title, 30), Date(h.BorrowedAt), Date(h.ReturnedAt)))
	}
	return b.String()
}
