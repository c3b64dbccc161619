package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BookInput is the request body for creating or replacing a book.
type BookInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Author      string `json:"author" validate:"required,max=255"`
	Genre       string `json:"genre" validate:"required,max=100"`
	ISBN        string `json:"isbn" validate:"required,max=20"`
	TotalCopies int64  `json:"total_copies" validate:"gte=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate trims the text fields and checks them before they go to the API.
func (in *BookInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Genre = strings.TrimSpace(in.Genre)
	in.ISBN = strings.TrimSpace(in.ISBN)

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid book: %s", describe(verrs[0]))
		}
		return fmt.Errorf("invalid book: %w", err)
	}
	return nil
}

// InputFrom seeds an input with the current values of b, for edit forms.
func InputFrom(b Book) BookInput {
	return BookInput{
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		ISBN:        b.ISBN,
		TotalCopies: b.TotalCopies,
	}
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	if field == "totalcopies" {
		field = "total copies"
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
