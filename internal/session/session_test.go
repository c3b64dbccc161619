package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestRoleValid(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleLibrarian, true},
		{RoleMember, true},
		{"", false},
		{"admin", false},
	}
	for _, c := range cases {
		if got := c.role.Valid(); got != c.want {
			t.Errorf("Role(%q).Valid() = %v, want %v", c.role, got, c.want)
		}
	}
}

func TestTokenExpiry_JWT(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	s := Session{Token: signed}
	got, ok := s.TokenExpiry()
	if !ok {
		t.Fatal("TokenExpiry ok = false, want true")
	}
	if !got.Equal(exp) {
		t.Errorf("TokenExpiry = %v, want %v", got, exp)
	}
}

func TestTokenExpiry_OpaqueToken(t *testing.T) {
	s := Session{Token: "12|plain-sanctum-token"}
	if _, ok := s.TokenExpiry(); ok {
		t.Error("TokenExpiry ok = true for an opaque token")
	}
	if _, ok := (Session{}).TokenExpiry(); ok {
		t.Error("TokenExpiry ok = true for an empty token")
	}
}
