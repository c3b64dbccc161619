// Package library runs the screen-level flows: check the session, raise
// the loading flag, call the API, normalize the answer and update the
// store. The CLI and the TUI both go through a Service.
package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blackwell-systems/libdesk/internal/api"
	"github.com/blackwell-systems/libdesk/internal/catalog"
	"github.com/blackwell-systems/libdesk/internal/circulation"
	"github.com/blackwell-systems/libdesk/internal/dashboard"
	"github.com/blackwell-systems/libdesk/internal/normalize"
	"github.com/blackwell-systems/libdesk/internal/session"
	"github.com/blackwell-systems/libdesk/internal/state"
)

var (
	// ErrNotLoggedIn is returned when an operation needs a session and
	// there is none.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrSessionExpired is returned after the API rejected the token. The
	// session has already been cleared.
	ErrSessionExpired = errors.New("session expired, log in again")
	// ErrRole is returned when the signed-in role may not perform the
	// operation. No request is sent.
	ErrRole = errors.New("not permitted for your role")
)

// Service ties an API client to a store.
type Service struct {
	client *api.Client
	store  *state.Store

	mu         sync.Mutex
	lastSearch string
}

func New(client *api.Client, store *state.Store) *Service {
	return &Service{client: client, store: store}
}

// Store returns the store the service mutates.
func (s *Service) Store() *state.Store { return s.store }

// Login signs in and installs the new session.
func (s *Service) Login(ctx context.Context, email, password string) (session.Session, error) {
	if err := session.CheckCredentials(email, password); err != nil {
		return session.Session{}, err
	}
	var sess session.Session
	err := s.store.WithLoading(func() error {
		v, err := s.client.Login(ctx, email, password)
		if err != nil {
			return err
		}
		sess, err = normalize.Session(v)
		return err
	})
	if err != nil {
		return session.Session{}, fmt.Errorf("login: %w", err)
	}
	s.store.SetUser(sess)
	return sess, nil
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, reg session.Registration) (session.Session, error) {
	if err := reg.Validate(); err != nil {
		return session.Session{}, err
	}
	var sess session.Session
	err := s.store.WithLoading(func() error {
		v, err := s.client.Register(ctx, reg)
		if err != nil {
			return err
		}
		sess, err = normalize.Session(v)
		return err
	})
	if err != nil {
		return session.Session{}, fmt.Errorf("register: %w", err)
	}
	s.store.SetUser(sess)
	return sess, nil
}

// Logout revokes the token remotely and always clears the local session.
// A failed remote call is returned after the local sign-out.
func (s *Service) Logout(ctx context.Context) error {
	sess, ok := s.store.Session()
	if !ok {
		return nil
	}
	err := s.store.WithLoading(func() error {
		_, err := s.client.Logout(ctx, sess.Token)
		return err
	})
	s.store.ClearUser()
	if err != nil && !errors.Is(err, api.ErrUnauthorized) {
		return fmt.Errorf("remote logout: %w", err)
	}
	return nil
}

// WhoAmI returns the local session, or the server's view of it when remote
// is set. The returned session keeps the local token.
func (s *Service) WhoAmI(ctx context.Context, remote bool) (session.Session, error) {
	sess, ok := s.store.Session()
	if !ok {
		return session.Session{}, ErrNotLoggedIn
	}
	if !remote {
		return sess, nil
	}
	var user session.Session
	err := s.run(sess, func() error {
		v, err := s.client.Me(ctx, sess.Token)
		if err != nil {
			return err
		}
		user = normalize.User(v)
		return nil
	})
	if err != nil {
		return session.Session{}, err
	}
	user.Token = sess.Token
	return user, nil
}

// RefreshBooks loads the catalog, optionally searched, into the store.
// The search term is remembered for the refresh that follows a borrow.
func (s *Service) RefreshBooks(ctx context.Context, search string) ([]catalog.Book, error) {
	sess, err := s.session("")
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.lastSearch = search
	s.mu.Unlock()

	var books []catalog.Book
	err = s.run(sess, func() error {
		v, err := s.client.Books(ctx, sess.Token, search)
		if err != nil {
			return err
		}
		books = normalize.Books(normalize.Unwrap(v))
		s.store.SetBooks(books)
		return nil
	})
	return books, err
}

// Book fetches one book and refreshes its copy in the store, if loaded.
func (s *Service) Book(ctx context.Context, id int64) (catalog.Book, error) {
	sess, err := s.session("")
	if err != nil {
		return catalog.Book{}, err
	}
	var book catalog.Book
	err = s.run(sess, func() error {
		v, err := s.client.Book(ctx, sess.Token, id)
		if err != nil {
			return err
		}
		book = normalize.Book(normalize.Unwrap(v))
		s.store.UpdateBook(id, catalog.PatchFrom(book))
		return nil
	})
	return book, err
}

// CreateBook validates in, creates the book and appends it to the store.
func (s *Service) CreateBook(ctx context.Context, in catalog.BookInput) (catalog.Book, error) {
	sess, err := s.session(session.RoleLibrarian)
	if err != nil {
		return catalog.Book{}, err
	}
	if err := in.Validate(); err != nil {
		return catalog.Book{}, err
	}
	var book catalog.Book
	err = s.run(sess, func() error {
		v, err := s.client.CreateBook(ctx, sess.Token, in)
		if err != nil {
			return err
		}
		book = normalize.Book(normalize.Unwrap(v))
		s.store.AddBook(book)
		return nil
	})
	return book, err
}

// UpdateBook replaces the book's fields and merges the result into the store.
func (s *Service) UpdateBook(ctx context.Context, id int64, in catalog.BookInput) (catalog.Book, error) {
	sess, err := s.session(session.RoleLibrarian)
	if err != nil {
		return catalog.Book{}, err
	}
	if err := in.Validate(); err != nil {
		return catalog.Book{}, err
	}
	var book catalog.Book
	err = s.run(sess, func() error {
		v, err := s.client.UpdateBook(ctx, sess.Token, id, in)
		if err != nil {
			return err
		}
		book = normalize.Book(normalize.Unwrap(v))
		s.store.UpdateBook(id, catalog.PatchFrom(book))
		return nil
	})
	return book, err
}

// DeleteBook deletes the book and drops it from the store.
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	sess, err := s.session(session.RoleLibrarian)
	if err != nil {
		return err
	}
	return s.run(sess, func() error {
		if _, err := s.client.DeleteBook(ctx, sess.Token, id); err != nil {
			return err
		}
		s.store.RemoveBook(id)
		return nil
	})
}

// RefreshBorrowings loads the visible loans into the store.
func (s *Service) RefreshBorrowings(ctx context.Context) ([]circulation.Borrowing, error) {
	sess, err := s.session("")
	if err != nil {
		return nil, err
	}
	var out []circulation.Borrowing
	err = s.run(sess, func() error {
		v, err := s.client.Borrowings(ctx, sess.Token)
		if err != nil {
			return err
		}
		out = normalize.Borrowings(normalize.Unwrap(v))
		s.store.SetBorrowings(out)
		return nil
	})
	return out, err
}

// Borrowing fetches one loan and refreshes its copy in the store, if loaded.
func (s *Service) Borrowing(ctx context.Context, id int64) (circulation.Borrowing, error) {
	sess, err := s.session("")
	if err != nil {
		return circulation.Borrowing{}, err
	}
	var b circulation.Borrowing
	err = s.run(sess, func() error {
		v, err := s.client.Borrowing(ctx, sess.Token, id)
		if err != nil {
			return err
		}
		b = normalize.Borrowing(normalize.Unwrap(v))
		s.store.UpdateBorrowing(id, circulation.PatchFrom(b))
		return nil
	})
	return b, err
}

// Borrow checks out a book for the signed-in member, then reloads the
// catalog with the last search so available copies are current.
func (s *Service) Borrow(ctx context.Context, bookID int64) (circulation.Borrowing, error) {
	sess, err := s.session(session.RoleMember)
	if err != nil {
		return circulation.Borrowing{}, err
	}
	var b circulation.Borrowing
	err = s.run(sess, func() error {
		v, err := s.client.Borrow(ctx, sess.Token, bookID)
		if err != nil {
			return err
		}
		b = normalize.Borrowing(normalize.Unwrap(v))
		s.store.AddBorrowing(b)
		return nil
	})
	if err != nil {
		return circulation.Borrowing{}, err
	}

	s.mu.Lock()
	search := s.lastSearch
	s.mu.Unlock()
	if _, err := s.RefreshBooks(ctx, search); err != nil {
		slog.Warn("refreshing books after borrow", "err", err)
	}
	return b, nil
}

// Return marks a loan as returned and merges the result into the store.
func (s *Service) Return(ctx context.Context, id int64) (circulation.Borrowing, error) {
	sess, err := s.session(session.RoleLibrarian)
	if err != nil {
		return circulation.Borrowing{}, err
	}
	var b circulation.Borrowing
	err = s.run(sess, func() error {
		v, err := s.client.Return(ctx, sess.Token, id)
		if err != nil {
			return err
		}
		b = normalize.Borrowing(normalize.Unwrap(v))
		s.store.UpdateBorrowing(id, circulation.PatchFrom(b))
		return nil
	})
	return b, err
}

// Dashboard fetches the overview for the signed-in role. A malformed
// payload yields the empty dashboard, not an error.
func (s *Service) Dashboard(ctx context.Context) (dashboard.Dashboard, error) {
	sess, err := s.session("")
	if err != nil {
		return nil, err
	}
	var d dashboard.Dashboard
	err = s.run(sess, func() error {
		v, err := s.client.Dashboard(ctx, sess.Token, sess.Role)
		if err != nil {
			return err
		}
		d = normalize.Dashboard(v, sess.Role)
		return nil
	})
	return d, err
}

// session returns the current session, requiring role when it is set.
func (s *Service) session(role session.Role) (session.Session, error) {
	sess, ok := s.store.Session()
	if !ok {
		return session.Session{}, ErrNotLoggedIn
	}
	if role != "" && sess.Role != role {
		return session.Session{}, fmt.Errorf("%w: requires %s, signed in as %s", ErrRole, role, sess.Role)
	}
	return sess, nil
}

// run wraps fn in the loading flag. A 401 clears the session.
func (s *Service) run(sess session.Session, fn func() error) error {
	err := s.store.WithLoading(fn)
	if errors.Is(err, api.ErrUnauthorized) {
		slog.Info("token rejected, clearing session", "user", sess.Email)
		s.store.ClearUser()
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	return err
}
