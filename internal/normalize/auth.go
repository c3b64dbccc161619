package normalize

import (
	"fmt"

	"github.com/blackwell-systems/libdesk/internal/session"
)

// Session maps a login or register response into a session. The numeric
// user id is kept as its string form.
func Session(v any) (session.Session, error) {
	obj := object(Unwrap(v))
	user := object(obj["user"])
	s := session.Session{
		ID:    str(user["id"]),
		Name:  str(user["name"]),
		Email: str(user["email"]),
		Token: str(obj["access_token"]),
		Role:  session.Role(str(user["role"])),
	}
	if s.Token == "" {
		return session.Session{}, fmt.Errorf("%w: auth response has no access token", ErrMalformed)
	}
	if !s.Role.Valid() {
		return session.Session{}, fmt.Errorf("%w: unknown role %q", ErrMalformed, s.Role)
	}
	return s, nil
}

// User maps a /me response. The result carries no token.
func User(v any) session.Session {
	obj := object(Unwrap(v))
	user := obj
	if u, ok := obj["user"].(map[string]any); ok {
		user = u
	}
	return session.Session{
		ID:    str(user["id"]),
		Name:  str(user["name"]),
		Email: str(user["email"]),
		Role:  session.Role(str(user["role"])),
	}
}
