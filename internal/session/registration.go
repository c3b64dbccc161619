package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingCredentials is returned for a sign-in attempt with an empty
// email or password.
var ErrMissingCredentials = errors.New("please fill in all fields")

// Registration is the request body for creating an account.
type Registration struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"`
	Role                 Role   `json:"role" validate:"oneof=librarian member"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate trims the name and email and checks the form locally.
func (r *Registration) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)

	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid registration: %s", describe(verrs[0]))
		}
		return fmt.Errorf("invalid registration: %w", err)
	}
	return nil
}

// CheckCredentials rejects blank sign-in fields before any request is made.
func CheckCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingCredentials
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Field() {
	case "PasswordConfirmation":
		return "passwords do not match"
	case "Role":
		return "role must be librarian or member"
	}
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " is not a valid address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
