package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/libdesk/internal/catalog"
	"github.com/blackwell-systems/libdesk/internal/tui"
)

func newBooksCmd() *cobra.Command {
	var (
		genre     string
		available bool
	)

	cmd := &cobra.Command{
		Use:   "books [search]",
		Short: "List and search the catalog",
		Long: `List the catalog, optionally searched by the server.

The search term matches title, author, genre or ISBN. --genre and
--available narrow the result further.`,
		Example: `  libdesk books
  libdesk books "le guin"
  libdesk books --genre Fantasy --available
  libdesk books --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			search := ""
			if len(args) == 1 {
				search = args[0]
			}

			books, err := svc.RefreshBooks(cmd.Context(), search)
			if err != nil {
				return err
			}
			books = catalog.Filter{Genre: genre, BorrowableOnly: available}.Apply(books)

			if flagJSON {
				if books == nil {
					books = []catalog.Book{}
				}
				return printJSON(books)
			}

			if len(books) == 0 {
				fmt.Fprintln(stdout, "No books found.")
				return nil
			}
			for _, b := range books {
				printBookLine(b)
			}
			fmt.Fprintf(stdout, "\n%d book(s)\n", len(books))
			return nil
		},
	}

	cmd.Flags().StringVar(&genre, "genre", "", "Only books in this genre")
	cmd.Flags().BoolVar(&available, "available", false, "Only books with a copy to borrow")

	cmd.AddCommand(
		newBookShowCmd(),
		newBookAddCmd(),
		newBookEditCmd(),
		newBookDeleteCmd(),
	)
	return cmd
}

func printBookLine(b catalog.Book) {
	mark := ""
	if b.Borrowable() {
		mark = color.GreenString(" ✓")
	}
	fmt.Fprintf(stdout, "  %-6s  %s  %s  %s%s\n",
		color.WhiteString("#%d", b.ID),
		b.Title,
		color.New(color.Faint).Sprintf("by %s", b.Author),
		color.CyanString("[%d/%d]", b.AvailableCopies, b.TotalCopies),
		mark,
	)
}

func printBook(b catalog.Book) {
	header("%s", b.Title)
	printField("ID", fmt.Sprintf("%d", b.ID))
	printField("Author", b.Author)
	printField("Genre", b.Genre)
	printField("ISBN", b.ISBN)
	copies := fmt.Sprintf("%d of %d available", b.AvailableCopies, b.TotalCopies)
	if b.Borrowable() {
		copies = color.GreenString(copies)
	} else {
		copies = color.YellowString(copies)
	}
	printField("Copies", copies)
	if b.CreatedAt != "" {
		printField("Added", dateOf(b.CreatedAt))
	}
	if b.UpdatedAt != "" {
		printField("Updated", dateOf(b.UpdatedAt))
	}
}

func newBookShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, err := svc.Book(cmd.Context(), id)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(b)
			}
			printBook(b)
			return nil
		},
	}
}

// bookFlags binds the editable book fields to a command.
type bookFlags struct {
	title, author, genre, isbn string
	copies                     int64
}

func (f *bookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Book title")
	cmd.Flags().StringVar(&f.author, "author", "", "Author")
	cmd.Flags().StringVar(&f.genre, "genre", "", "Genre")
	cmd.Flags().StringVar(&f.isbn, "isbn", "", "ISBN")
	cmd.Flags().Int64Var(&f.copies, "copies", 1, "Total copies")
}

// apply overlays the flags the user set onto in.
func (f *bookFlags) apply(cmd *cobra.Command, in catalog.BookInput) catalog.BookInput {
	if cmd.Flags().Changed("title") {
		in.Title = f.title
	}
	if cmd.Flags().Changed("author") {
		in.Author = f.author
	}
	if cmd.Flags().Changed("genre") {
		in.Genre = f.genre
	}
	if cmd.Flags().Changed("isbn") {
		in.ISBN = f.isbn
	}
	if cmd.Flags().Changed("copies") {
		in.TotalCopies = f.copies
	}
	return in
}

// anySet reports whether any book field flag was given.
func (f *bookFlags) anySet(cmd *cobra.Command) bool {
	for _, name := range []string{"title", "author", "genre", "isbn", "copies"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func newBookAddCmd() *cobra.Command {
	var flags bookFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog (librarians)",
		Long: `Add a book to the catalog.

In a terminal without field flags an interactive form opens. Otherwise
--title, --author, --genre and --isbn are required.`,
		Example: `  libdesk books add
  libdesk books add --title Dune --author "Frank Herbert" --genre SF --isbn 9780441013593 --copies 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := catalog.BookInput{TotalCopies: 1}
			if !flags.anySet(cmd) && tui.ShouldUseTUI(cmd) {
				var err error
				in, err = tui.RunBookForm("libdesk - Add book", "New catalog entry", in)
				if err != nil {
					return err
				}
			} else {
				in = flags.apply(cmd, in)
			}

			b, err := svc.CreateBook(cmd.Context(), in)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(b)
			}
			ok("Added #%d %s", b.ID, b.Title)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newBookEditCmd() *cobra.Command {
	var flags bookFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a book (librarians)",
		Long: `Edit a book. Only the fields given as flags change.

In a terminal without field flags an interactive form opens, prefilled
with the current values.`,
		Example: `  libdesk books edit 12
  libdesk books edit 12 --copies 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := svc.Book(cmd.Context(), id)
			if err != nil {
				return err
			}

			in := catalog.InputFrom(current)
			switch {
			case flags.anySet(cmd):
				in = flags.apply(cmd, in)
			case tui.ShouldUseTUI(cmd):
				in, err = tui.RunBookForm("libdesk - Edit book", fmt.Sprintf("#%d", id), in)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("nothing to change, pass --title, --author, --genre, --isbn or --copies")
			}

			b, err := svc.UpdateBook(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(b)
			}
			ok("Updated #%d %s", b.ID, b.Title)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newBookDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a book (librarians)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			proceed, err := confirm(fmt.Sprintf("Delete book #%d?", id), yes)
			if err != nil {
				return err
			}
			if !proceed {
				fmt.Fprintln(stdout, "Canceled.")
				return nil
			}
			if err := svc.DeleteBook(cmd.Context(), id); err != nil {
				return err
			}
			ok("Deleted book #%d", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
