package state

import (
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/blackwell-systems/libdesk/internal/catalog"
	"github.com/blackwell-systems/libdesk/internal/circulation"
	"github.com/blackwell-systems/libdesk/internal/localstore"
	"github.com/blackwell-systems/libdesk/internal/session"
)

var ana = session.Session{ID: "7", Name: "Ana", Email: "ana@example.com", Token: "tok", Role: session.RoleMember}

type brokenStorage struct{}

var errBroken = errors.New("disk on fire")

func (brokenStorage) GetItem(string) (string, bool, error) { return "", false, errBroken }
func (brokenStorage) SetItem(string, string) error         { return errBroken }
func (brokenStorage) RemoveItem(string) error              { return errBroken }
func (brokenStorage) Close() error                         { return nil }

func TestSetUserSurvivesReload(t *testing.T) {
	storage := localstore.NewFileStorage(filepath.Join(t.TempDir(), "storage.yml"))

	New(storage).SetUser(ana)

	got, ok := New(storage).Session()
	if !ok {
		t.Fatal("reloaded store has no session")
	}
	if got != ana {
		t.Errorf("reloaded session = %+v, want %+v", got, ana)
	}
}

func TestClearUserSurvivesReload(t *testing.T) {
	storage := localstore.NewMemory()
	s := New(storage)
	s.SetUser(ana)
	s.ClearUser()

	if _, ok := s.Session(); ok {
		t.Error("session still set after ClearUser")
	}
	if _, ok := New(storage).Session(); ok {
		t.Error("reloaded store has a session after ClearUser")
	}
}

func TestSetUserOverwrites(t *testing.T) {
	storage := localstore.NewMemory()
	s := New(storage)
	s.SetUser(ana)
	bob := session.Session{ID: "8", Name: "Bob", Token: "tok-b", Role: session.RoleLibrarian}
	s.SetUser(bob)

	got, _ := New(storage).Session()
	if got != bob {
		t.Errorf("session = %+v, want %+v", got, bob)
	}
}

func TestHydrateIgnoresBadStorage(t *testing.T) {
	corrupt := localstore.NewMemory()
	_ = corrupt.SetItem(SessionKey, "{not json")
	null := localstore.NewMemory()
	_ = null.SetItem(SessionKey, "null")
	noToken := localstore.NewMemory()
	_ = noToken.SetItem(SessionKey, `{"id":"1","role":"member"}`)
	badRole := localstore.NewMemory()
	_ = badRole.SetItem(SessionKey, `{"id":"1","token":"t","role":"admin"}`)

	for name, storage := range map[string]localstore.Storage{
		"empty":    localstore.NewMemory(),
		"corrupt":  corrupt,
		"broken":   brokenStorage{},
		"null":     null,
		"no token": noToken,
		"bad role": badRole,
	} {
		if _, ok := New(storage).Session(); ok {
			t.Errorf("%s: expected no session", name)
		}
	}
}

func TestStorageFailureStillMutatesMemory(t *testing.T) {
	s := New(brokenStorage{})
	s.SetUser(ana)
	if _, ok := s.Session(); !ok {
		t.Fatal("SetUser did not install session when storage failed")
	}
	s.ClearUser()
	if _, ok := s.Session(); ok {
		t.Fatal("ClearUser did not clear session when storage failed")
	}
}

func TestAddThenRemoveBookRestoresCollection(t *testing.T) {
	s := New(nil)
	s.SetBooks([]catalog.Book{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}})
	before := s.Books()

	s.AddBook(catalog.Book{ID: 3, Title: "C"})
	if got := len(s.Books()); got != 3 {
		t.Fatalf("after AddBook len = %d, want 3", got)
	}
	s.RemoveBook(3)

	if !reflect.DeepEqual(s.Books(), before) {
		t.Errorf("books = %+v, want %+v", s.Books(), before)
	}
}

func TestAddBookPreservesOrder(t *testing.T) {
	s := New(nil)
	s.AddBook(catalog.Book{ID: 5})
	s.AddBook(catalog.Book{ID: 1})
	s.AddBook(catalog.Book{ID: 3})
	books := s.Books()
	for i, want := range []int64{5, 1, 3} {
		if books[i].ID != want {
			t.Errorf("books[%d].ID = %d, want %d", i, books[i].ID, want)
		}
	}
}

func TestUpdateBook(t *testing.T) {
	s := New(nil)
	s.SetBooks([]catalog.Book{{ID: 1, Title: "A", AvailableCopies: 2}, {ID: 2, Title: "B"}})

	avail := int64(1)
	s.UpdateBook(1, catalog.BookPatch{AvailableCopies: &avail})
	books := s.Books()
	if books[0].AvailableCopies != 1 || books[0].Title != "A" {
		t.Errorf("book 1 = %+v", books[0])
	}

	before := s.Books()
	s.UpdateBook(99, catalog.BookPatch{AvailableCopies: &avail})
	if !reflect.DeepEqual(s.Books(), before) {
		t.Error("UpdateBook on unknown id changed the collection")
	}
}

func TestRemoveBookMissingIsNoop(t *testing.T) {
	s := New(nil)
	s.SetBooks([]catalog.Book{{ID: 1}})
	s.RemoveBook(42)
	if len(s.Books()) != 1 {
		t.Error("RemoveBook on unknown id removed something")
	}
}

func TestUpdateBorrowingMissingIsNoop(t *testing.T) {
	s := New(nil)
	s.SetBorrowings([]circulation.Borrowing{{ID: 1, DueAt: "2025-01-01"}})
	before := s.Borrowings()

	returned := "2025-01-02"
	s.UpdateBorrowing(404, circulation.BorrowingPatch{ReturnedAt: &returned})

	if !reflect.DeepEqual(s.Borrowings(), before) {
		t.Errorf("borrowings = %+v, want %+v", s.Borrowings(), before)
	}
}

func TestUpdateAndAddBorrowing(t *testing.T) {
	s := New(nil)
	s.AddBorrowing(circulation.Borrowing{ID: 1})
	s.AddBorrowing(circulation.Borrowing{ID: 2})

	returned := "2025-01-02"
	s.UpdateBorrowing(2, circulation.BorrowingPatch{ReturnedAt: &returned})

	got := s.Borrowings()
	if len(got) != 2 || got[1].ReturnedAt != returned || got[0].ReturnedAt != "" {
		t.Errorf("borrowings = %+v", got)
	}
}

func TestSnapshotIsDefensiveCopy(t *testing.T) {
	s := New(nil)
	s.SetUser(ana)
	s.SetBooks([]catalog.Book{{ID: 1, Title: "A"}})

	snap := s.Snapshot()
	snap.Books[0].Title = "mutated"
	snap.Session.Name = "mutated"

	if s.Books()[0].Title != "A" {
		t.Error("mutating snapshot books changed the store")
	}
	if got, _ := s.Session(); got.Name != "Ana" {
		t.Error("mutating snapshot session changed the store")
	}
}

func TestSetBooksCopiesInput(t *testing.T) {
	in := []catalog.Book{{ID: 1, Title: "A"}}
	s := New(nil)
	s.SetBooks(in)
	in[0].Title = "mutated"
	if s.Books()[0].Title != "A" {
		t.Error("SetBooks kept a reference to the caller's slice")
	}
}

func TestLoadingLastWriteWins(t *testing.T) {
	s := New(nil)
	s.SetLoading(true)
	s.SetLoading(true)
	s.SetLoading(false)
	if s.Loading() {
		t.Error("Loading() = true after final SetLoading(false)")
	}
}

func TestWithLoadingResetsOnError(t *testing.T) {
	s := New(nil)
	var during bool
	err := s.WithLoading(func() error {
		during = s.Loading()
		return errBroken
	})
	if !errors.Is(err, errBroken) {
		t.Errorf("err = %v, want errBroken", err)
	}
	if !during {
		t.Error("loading flag not set while fn ran")
	}
	if s.Loading() {
		t.Error("loading flag still set after fn failed")
	}
}

func TestWithLoadingResetsOnPanic(t *testing.T) {
	s := New(nil)
	func() {
		defer func() { _ = recover() }()
		_ = s.WithLoading(func() error { panic("boom") })
	}()
	if s.Loading() {
		t.Error("loading flag still set after panic")
	}
}

func TestSubscribe(t *testing.T) {
	s := New(nil)

	var mu sync.Mutex
	var snaps []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		snaps = append(snaps, snap)
	})

	s.SetLoading(true)
	s.AddBook(catalog.Book{ID: 1})
	s.SetUser(ana)

	mu.Lock()
	if len(snaps) != 3 {
		t.Fatalf("got %d notifications, want 3", len(snaps))
	}
	if !snaps[0].Loading || len(snaps[1].Books) != 1 || !snaps[2].LoggedIn() {
		t.Errorf("unexpected snapshots: %+v", snaps)
	}
	mu.Unlock()

	unsubscribe()
	s.SetLoading(false)
	mu.Lock()
	defer mu.Unlock()
	if len(snaps) != 3 {
		t.Errorf("notified after unsubscribe: %d", len(snaps))
	}
}

func TestSubscriberMayReadStore(t *testing.T) {
	s := New(nil)
	var seen int
	s.Subscribe(func(Snapshot) { seen = len(s.Books()) })
	s.AddBook(catalog.Book{ID: 1})
	if seen != 1 {
		t.Errorf("subscriber saw %d books, want 1", seen)
	}
}

func TestCloseDropsSubscribers(t *testing.T) {
	s := New(nil)
	called := false
	s.Subscribe(func(Snapshot) { called = true })
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	s.SetLoading(true)
	if called {
		t.Error("subscriber notified after Close")
	}
}

func TestConcurrentMutations(t *testing.T) {
	s := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.AddBook(catalog.Book{ID: id})
			_ = s.Snapshot()
		}(int64(i))
	}
	wg.Wait()
	if got := len(s.Books()); got != 50 {
		t.Errorf("len(books) = %d, want 50", got)
	}
}

func TestSnapshotSessionAccessors(t *testing.T) {
	var empty Snapshot
	if empty.Role() != "" || empty.SessionEmail() != "" {
		t.Error("logged-out snapshot reports a session")
	}
	s := New(nil)
	s.SetUser(session.Session{Email: "ana@example.com", Role: session.RoleMember, Token: "t"})
	snap := s.Snapshot()
	if snap.Role() != session.RoleMember || snap.SessionEmail() != "ana@example.com" {
		t.Errorf("snapshot = %+v", snap.Session)
	}
}
