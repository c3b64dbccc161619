package app

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/libdesk/internal/circulation"
	"github.com/blackwell-systems/libdesk/internal/tui"
)

// now is replaced in tests.
var now = time.Now

func dateOf(s string) string { return tui.Date(s) }

func newBorrowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "borrow <book-id>",
		Short: "Borrow a book (members)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, err := svc.Borrow(cmd.Context(), bookID)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(b)
			}
			title := b.Book.Title
			if title == "" {
				title = fmt.Sprintf("book #%d", bookID)
			}
			ok("Borrowed %s, due %s", title, dateOf(b.DueAt))
			return nil
		},
	}
}

func newReturnCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "return <borrowing-id>",
		Short: "Mark a loan as returned (librarians)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			proceed, err := confirm(fmt.Sprintf("Mark borrowing #%d as returned?", id), yes)
			if err != nil {
				return err
			}
			if !proceed {
				fmt.Fprintln(stdout, "Canceled.")
				return nil
			}
			b, err := svc.Return(cmd.Context(), id)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(b)
			}
			ok("Returned borrowing #%d", b.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newBorrowingsCmd() *cobra.Command {
	var active, overdue bool

	cmd := &cobra.Command{
		Use:     "borrowings",
		Aliases: []string{"loans"},
		Short:   "List loans",
		Long: `List loans. Members see their own, librarians see every loan.`,
		Example: `  libdesk borrowings
  libdesk borrowings --overdue
  libdesk borrowings show 31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := svc.RefreshBorrowings(cmd.Context())
			if err != nil {
				return err
			}

			t := now()
			loans := []circulation.Borrowing{}
			for _, b := range all {
				if active && !b.Active() {
					continue
				}
				if overdue && !b.Overdue(t) {
					continue
				}
				loans = append(loans, b)
			}

			if flagJSON {
				return printJSON(loans)
			}
			if len(loans) == 0 {
				fmt.Fprintln(stdout, "No borrowings found.")
				return nil
			}
			for _, b := range loans {
				fmt.Fprintf(stdout, "  %-6s  %s  %s  %s\n",
					color.WhiteString("#%d", b.ID),
					b.Book.Title,
					color.New(color.Faint).Sprint(borrowerOf(b)),
					loanStatus(b, t),
				)
			}
			fmt.Fprintf(stdout, "\n%d borrowing(s)\n", len(loans))
			return nil
		},
	}

	cmd.Flags().BoolVar(&active, "active", false, "Only loans not yet returned")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only overdue loans")

	cmd.AddCommand(newBorrowingShowCmd())
	return cmd
}

func newBorrowingShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, err := svc.Borrowing(cmd.Context(), id)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(b)
			}

			header("Borrowing #%d", b.ID)
			printField("Book", fmt.Sprintf("%s (#%d)", b.Book.Title, b.BookID))
			printField("Borrower", borrowerOf(b))
			printField("Borrowed", dateOf(b.BorrowedAt))
			printField("Due", dateOf(b.DueAt))
			if !b.Active() {
				printField("Returned", dateOf(b.ReturnedAt))
			}
			printField("Status", loanStatus(b, now()))
			return nil
		},
	}
}

func borrowerOf(b circulation.Borrowing) string {
	switch {
	case b.User.Name != "" && b.User.Email != "":
		return fmt.Sprintf("%s <%s>", b.User.Name, b.User.Email)
	case b.User.Name != "":
		return b.User.Name
	case b.User.Email != "":
		return b.User.Email
	}
	return fmt.Sprintf("user #%d", b.UserID)
}

func loanStatus(b circulation.Borrowing, t time.Time) string {
	switch {
	case !b.Active():
		return color.New(color.Faint).Sprintf("returned %s", dateOf(b.ReturnedAt))
	case b.Overdue(t):
		return color.RedString("OVERDUE since %s", dateOf(b.DueAt))
	default:
		return color.GreenString("due %s", dateOf(b.DueAt))
	}
}
