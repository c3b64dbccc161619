package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/libdesk/internal/dashboard"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the overview for your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := svc.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(d)
			}

			switch d := d.(type) {
			case *dashboard.Librarian:
				printLibrarianDashboard(d)
			case *dashboard.Member:
				printMemberDashboard(d)
			}
			return nil
		},
	}
}

func printLibrarianDashboard(d *dashboard.Librarian) {
	header("Library overview")
	printField("Books", fmt.Sprintf("%d", d.TotalBooks))
	printField("Members", fmt.Sprintf("%d", d.TotalMembers))
	printField("On loan", fmt.Sprintf("%d", d.TotalBorrowedBooks))
	overdue := fmt.Sprintf("%d", d.TotalOverdueBooks)
	if d.TotalOverdueBooks > 0 {
		overdue = color.RedString(overdue)
	}
	printField("Overdue", overdue)

	fmt.Fprintln(stdout)
	header("Recent borrowings")
	if len(d.RecentBorrowings) == 0 {
		fmt.Fprintln(stdout, "  none")
	}
	for _, r := range d.RecentBorrowings {
		due := "due " + dateOf(r.DueAt)
		if r.IsOverdue {
			due = color.RedString("OVERDUE since %s", dateOf(r.DueAt))
		}
		fmt.Fprintf(stdout, "  %-6s  %s  %s  %s\n",
			color.WhiteString("#%d", r.ID), r.Book.Title,
			color.New(color.Faint).Sprint(r.User.Name), due)
	}

	fmt.Fprintln(stdout)
	header("Popular books")
	if len(d.PopularBooks) == 0 {
		fmt.Fprintln(stdout, "  none")
	}
	for i, p := range d.PopularBooks {
		fmt.Fprintf(stdout, "  %d. %s  %s  %s\n", i+1, p.Title,
			color.New(color.Faint).Sprintf("by %s", p.Author),
			color.CyanString("%d loans", p.BorrowingCount))
	}
}

func printMemberDashboard(d *dashboard.Member) {
	header("My library")
	printField("Borrowed", fmt.Sprintf("%d", d.TotalBooksBorrowed))
	overdue := fmt.Sprintf("%d", d.OverdueCount)
	if d.OverdueCount > 0 {
		overdue = color.RedString(overdue)
	}
	printField("Overdue", overdue)

	fmt.Fprintln(stdout)
	header("On loan")
	if len(d.ActiveBorrowings) == 0 {
		fmt.Fprintln(stdout, "  none")
	}
	for _, a := range d.ActiveBorrowings {
		due := color.GreenString("due %s", dateOf(a.DueAt))
		if a.IsOverdue {
			due = color.RedString("OVERDUE since %s", dateOf(a.DueAt))
		}
		fmt.Fprintf(stdout, "  %-6s  %s  %s\n", color.WhiteString("#%d", a.ID), a.Book.Title, due)
	}

	fmt.Fprintln(stdout)
	header("History")
	if len(d.BorrowingHistory) == 0 {
		fmt.Fprintln(stdout, "  none")
	}
	for _, h := range d.BorrowingHistory {
		fmt.Fprintf(stdout, "  %s  %s\n", h.Book.Title,
			color.New(color.Faint).Sprintf("%s to %s", dateOf(h.BorrowedAt), dateOf(h.ReturnedAt)))
	}
}
