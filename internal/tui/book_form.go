package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blackwell-systems/libdesk/internal/catalog"
)

const (
	bookFieldTitle = iota
	bookFieldAuthor
	bookFieldGenre
	bookFieldISBN
	bookFieldCopies
	bookFieldCount
)

// NewBookForm builds the add/edit form seeded with in.
func NewBookForm(title, subtitle string, in catalog.BookInput) Form {
	copies := ""
	if in.TotalCopies > 0 {
		copies = strconv.FormatInt(in.TotalCopies, 10)
	}
	return NewForm(title, subtitle, []FormField{
		{Label: "Title", Placeholder: "Book title", Value: in.Title},
		{Label: "Author", Placeholder: "Author name", Value: in.Author},
		{Label: "Genre", Placeholder: "Fiction", Value: in.Genre, CharLimit: 100},
		{Label: "ISBN", Placeholder: "978-…", Value: in.ISBN, CharLimit: 20, Width: 22},
		{Label: "Copies", Placeholder: "1", Value: copies, CharLimit: 6, Width: 8},
	}, "Save book?")
}

// BookInputFromValues parses the values of a book form and validates them.
func BookInputFromValues(values []string) (catalog.BookInput, error) {
	if len(values) != bookFieldCount {
		return catalog.BookInput{}, fmt.Errorf("expected %d fields, got %d", bookFieldCount, len(values))
	}
	in := catalog.BookInput{
		Title:  values[bookFieldTitle],
		Author: values[bookFieldAuthor],
		Genre:  values[bookFieldGenre],
		ISBN:   values[bookFieldISBN],
	}
	copies := strings.TrimSpace(values[bookFieldCopies])
	if copies != "" {
		n, err := strconv.ParseInt(copies, 10, 64)
		if err != nil {
			return catalog.BookInput{}, fmt.Errorf("copies must be a whole number")
		}
		in.TotalCopies = n
	}
	if err := in.Validate(); err != nil {
		return catalog.BookInput{}, err
	}
	return in, nil
}

// RunBookForm runs the book form full screen until it validates or is
// canceled.
func RunBookForm(title, subtitle string, in catalog.BookInput) (catalog.BookInput, error) {
	values, err := RunForm(NewBookForm(title, subtitle, in), func(v []string) error {
		_, err := BookInputFromValues(v)
		return err
	})
	if err != nil {
		return catalog.BookInput{}, err
	}
	return BookInputFromValues(values)
}

// NewLoginForm builds the sign-in form, prefilled with the last email.
func NewLoginForm(lastEmail string) Form {
	f := NewForm("libdesk - Sign in", "Library account", []FormField{
		{Label: "Email", Placeholder: "you@example.com", Value: lastEmail},
		{Label: "Password", Placeholder: "password", Secret: true},
	}, "")
	if lastEmail != "" {
		f.Focus(1)
	}
	return f
}
