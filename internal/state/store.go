// Package state holds the client-side source of truth: the signed-in
// session, the loaded books and borrowings, and the loading flag. Screens
// read through a Store and re-render when it publishes.
package state

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/blackwell-systems/libdesk/internal/catalog"
	"github.com/blackwell-systems/libdesk/internal/circulation"
	"github.com/blackwell-systems/libdesk/internal/localstore"
	"github.com/blackwell-systems/libdesk/internal/session"
)

// SessionKey is the storage key the session is persisted under.
const SessionKey = "user"

// Snapshot is a point-in-time copy of the store. Mutating it does not
// affect the store.
type Snapshot struct {
	Session    *session.Session
	Books      []catalog.Book
	Borrowings []circulation.Borrowing
	Loading    bool
}

// LoggedIn reports whether the snapshot carries a session.
func (s Snapshot) LoggedIn() bool { return s.Session != nil }

// Role returns the signed-in role, or "" when logged out.
func (s Snapshot) Role() session.Role {
	if s.Session == nil {
		return ""
	}
	return s.Session.Role
}

// SessionEmail returns the signed-in email, or "" when logged out.
func (s Snapshot) SessionEmail() string {
	if s.Session == nil {
		return ""
	}
	return s.Session.Email
}

// Store coordinates concurrent reads and mutations. None of its mutations
// fail; storage errors are logged and the in-memory change still applies.
type Store struct {
	storage localstore.Storage

	mu         sync.RWMutex
	session    *session.Session
	books      []catalog.Book
	borrowings []circulation.Borrowing
	loading    bool

	subs   map[int]func(Snapshot)
	nextID int
}

// New builds a Store on storage and restores any persisted session. A
// missing, unreadable, corrupt or incomplete entry leaves the store signed
// out. A nil storage keeps everything in memory.
func New(storage localstore.Storage) *Store {
	if storage == nil {
		storage = localstore.NewMemory()
	}
	s := &Store{storage: storage, subs: make(map[int]func(Snapshot))}
	s.session = s.hydrate()
	return s
}

func (s *Store) hydrate() *session.Session {
	raw, ok, err := s.storage.GetItem(SessionKey)
	if err != nil {
		slog.Warn("reading stored session", "err", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var sess *session.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		slog.Warn("discarding corrupt stored session", "err", err)
		return nil
	}
	if sess == nil {
		return nil
	}
	if sess.Token == "" || !sess.Role.Valid() {
		slog.Warn("discarding incomplete stored session", "role", sess.Role)
		return nil
	}
	return sess
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Session returns the current session and whether one is installed.
func (s *Store) Session() (session.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return session.Session{}, false
	}
	return *s.session, true
}

// Books returns a copy of the loaded books.
func (s *Store) Books() []catalog.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBooks(s.books)
}

// Borrowings returns a copy of the loaded borrowings.
func (s *Store) Borrowings() []circulation.Borrowing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBorrowings(s.borrowings)
}

// Loading reports whether a request is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe registers fn to receive a snapshot after every mutation. fn is
// called synchronously on the mutating goroutine with no lock held. The
// returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// SetBooks replaces the book collection.
func (s *Store) SetBooks(books []catalog.Book) {
	s.mutate(func() { s.books = cloneBooks(books) })
}

// AddBook appends book after the existing ones.
func (s *Store) AddBook(book catalog.Book) {
	s.mutate(func() { s.books = append(cloneBooks(s.books), book) })
}

// UpdateBook merges patch into the book with the given id. Unknown ids are
// ignored.
func (s *Store) UpdateBook(id int64, patch catalog.BookPatch) {
	s.mutate(func() {
		books := cloneBooks(s.books)
		for i := range books {
			if books[i].ID == id {
				books[i] = patch.Apply(books[i])
			}
		}
		s.books = books
	})
}

// RemoveBook drops the book with the given id, if present.
func (s *Store) RemoveBook(id int64) {
	s.mutate(func() {
		out := make([]catalog.Book, 0, len(s.books))
		for _, b := range s.books {
			if b.ID != id {
				out = append(out, b)
			}
		}
		s.books = out
	})
}

// SetBorrowings replaces the borrowing collection.
func (s *Store) SetBorrowings(borrowings []circulation.Borrowing) {
	s.mutate(func() { s.borrowings = cloneBorrowings(borrowings) })
}

// AddBorrowing appends borrowing after the existing ones.
func (s *Store) AddBorrowing(b circulation.Borrowing) {
	s.mutate(func() { s.borrowings = append(cloneBorrowings(s.borrowings), b) })
}

// UpdateBorrowing merges patch into the borrowing with the given id.
// Unknown ids are ignored.
func (s *Store) UpdateBorrowing(id int64, patch circulation.BorrowingPatch) {
	s.mutate(func() {
		out := cloneBorrowings(s.borrowings)
		for i := range out {
			if out[i].ID == id {
				out[i] = patch.Apply(out[i])
			}
		}
		s.borrowings = out
	})
}

// SetUser installs sess and persists it, replacing any earlier session.
func (s *Store) SetUser(sess session.Session) {
	s.mutate(func() {
		s.session = &sess
		data, err := json.Marshal(sess)
		if err != nil {
			slog.Error("encoding session", "err", err)
			return
		}
		if err := s.storage.SetItem(SessionKey, string(data)); err != nil {
			slog.Error("persisting session", "err", err)
		}
	})
}

// ClearUser signs out locally, in memory and in storage.
func (s *Store) ClearUser() {
	s.mutate(func() {
		s.session = nil
		if err := s.storage.RemoveItem(SessionKey); err != nil {
			slog.Error("removing stored session", "err", err)
		}
	})
}

// SetLoading sets the shared loading flag. There is one flag for all
// requests; the last call wins.
func (s *Store) SetLoading(loading bool) {
	s.mutate(func() { s.loading = loading })
}

// WithLoading raises the loading flag around fn and lowers it when fn
// returns or panics.
func (s *Store) WithLoading(fn func() error) error {
	s.SetLoading(true)
	defer s.SetLoading(false)
	return fn()
}

// Close drops all subscribers and closes the underlying storage.
func (s *Store) Close() error {
	s.mu.Lock()
	s.subs = make(map[int]func(Snapshot))
	s.mu.Unlock()
	return s.storage.Close()
}

func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	fn()
	type delivery struct {
		fn   func(Snapshot)
		snap Snapshot
	}
	out := make([]delivery, 0, len(s.subs))
	for _, sub := range s.subs {
		out = append(out, delivery{sub, s.snapshotLocked()})
	}
	s.mu.Unlock()

	for _, d := range out {
		d.fn(d.snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Books:      cloneBooks(s.books),
		Borrowings: cloneBorrowings(s.borrowings),
		Loading:    s.loading,
	}
	if s.session != nil {
		sess := *s.session
		snap.Session = &sess
	}
	return snap
}

func cloneBooks(items []catalog.Book) []catalog.Book {
	if len(items) == 0 {
		return nil
	}
	dup := make([]catalog.Book, len(items))
	copy(dup, items)
	return dup
}

func cloneBorrowings(items []circulation.Borrowing) []circulation.Borrowing {
	if len(items) == 0 {
		return nil
	}
	dup := make([]circulation.Borrowing, len(items))
	copy(dup, items)
	return dup
}
