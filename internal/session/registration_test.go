package session

import (
	"errors"
	"strings"
	"testing"
)

func validRegistration() Registration {
	return Registration{
		Name:                 " Ana Ruiz ",
		Email:                "ana@example.com",
		Password:             "correct-horse",
		PasswordConfirmation: "correct-horse",
		Role:                 RoleMember,
	}
}

func TestRegistrationValidate(t *testing.T) {
	r := validRegistration()
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if r.Name != "Ana Ruiz" {
		t.Errorf("Name = %q, want trimmed", r.Name)
	}
}

func TestRegistrationValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Registration)
		want   string
	}{
		{"blank name", func(r *Registration) { r.Name = "  " }, "name is required"},
		{"bad email", func(r *Registration) { r.Email = "ana" }, "email is not a valid address"},
		{"short password", func(r *Registration) { r.Password, r.PasswordConfirmation = "abc", "abc" }, "password must be at least 8"},
		{"mismatch", func(r *Registration) { r.PasswordConfirmation = "other-horse" }, "passwords do not match"},
		{"bad role", func(r *Registration) { r.Role = "admin" }, "role must be librarian or member"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := validRegistration()
			c.mutate(&r)
			err := r.Validate()
			if err == nil {
				t.Fatal("Validate returned nil error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("error = %q, want it to contain %q", err, c.want)
			}
		})
	}
}

func TestCheckCredentials(t *testing.T) {
	if err := CheckCredentials("ana@example.com", "pw"); err != nil {
		t.Errorf("CheckCredentials: %v", err)
	}
	for _, c := range [][2]string{{"", "pw"}, {"  ", "pw"}, {"ana@example.com", ""}} {
		if err := CheckCredentials(c[0], c[1]); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("CheckCredentials(%q, %q) = %v, want ErrMissingCredentials", c[0], c[1], err)
		}
	}
}
