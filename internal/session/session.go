package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the library role attached to an account.
type Role string

const (
	RoleLibrarian Role = "librarian"
	RoleMember    Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleLibrarian || r == RoleMember
}

// Session is the authenticated identity plus its bearer token.
// It is persisted as JSON so it survives restarts.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// IsLibrarian reports whether the session belongs to a librarian.
func (s Session) IsLibrarian() bool { return s.Role == RoleLibrarian }

// IsMember reports whether the session belongs to a member.
func (s Session) IsMember() bool { return s.Role == RoleMember }

// TokenExpiry returns the exp claim of the access token when the token is a
// JWT. The signature is not checked; the server stays the authority.
func (s Session) TokenExpiry() (time.Time, bool) {
	if s.Token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
