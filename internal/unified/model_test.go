package unified

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/libdesk/internal/api"
	"github.com/blackwell-systems/libdesk/internal/catalog"
	"github.com/blackwell-systems/libdesk/internal/library"
	"github.com/blackwell-systems/libdesk/internal/localstore"
	"github.com/blackwell-systems/libdesk/internal/prefs"
	"github.com/blackwell-systems/libdesk/internal/session"
	"github.com/blackwell-systems/libdesk/internal/state"
)

var (
	member    = session.Session{ID: "1", Name: "Ana", Email: "ana@example.com", Token: "tok", Role: session.RoleMember}
	librarian = session.Session{ID: "2", Name: "Lia", Email: "lia@example.com", Token: "tok", Role: session.RoleLibrarian}
)

// routes maps "METHOD /path" to a status and body.
type routes map[string]struct {
	status int
	body   string
}

func newTestModel(t *testing.T, r routes, sess *session.Session) (Model, *state.Store, string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		route, ok := r[req.Method+" "+strings.TrimPrefix(req.URL.Path, "/api")]
		if !ok {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(route.status)
		_, _ = io.WriteString(w, route.body)
	}))
	t.Cleanup(server.Close)

	client, err := api.New(server.URL+"/api", 0)
	if err != nil {
		t.Fatal(err)
	}
	store := state.New(localstore.NewMemory())
	if sess != nil {
		store.SetUser(*sess)
	}
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	m := New(context.Background(), library.New(client, store), Options{
		PrefsPath: prefsPath,
		Now:       func() time.Time { return now },
	})
	t.Cleanup(m.Close)
	return m, store, prefsPath
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// firstMsg runs cmd and, for a batch, its first command.
func firstMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		return batch[0]()
	}
	return msg
}

func TestStartsAtLoginWithoutSession(t *testing.T) {
	m, _, _ := newTestModel(t, nil, nil)
	if m.currentView != ViewLogin {
		t.Fatalf("view = %q, want login", m.currentView)
	}
}

func TestStartsAtStartViewWithSession(t *testing.T) {
	m, _, _ := newTestModel(t, nil, &member)
	if m.currentView != ViewDashboard {
		t.Fatalf("view = %q, want dashboard", m.currentView)
	}
}

func TestLoginSuccessRemembersEmail(t *testing.T) {
	m, store, prefsPath := newTestModel(t, routes{
		"POST /login": {200, `{"user":{"id":1,"name":"Ana","email":"ana@example.com","role":"member"},"access_token":"tok"}`},
	}, nil)

	m, _ = update(t, m, m.doLogin("ana@example.com", "secret123")())
	if m.currentView != ViewDashboard {
		t.Fatalf("view = %q, want dashboard", m.currentView)
	}
	if _, ok := store.Session(); !ok {
		t.Fatal("store has no session after login")
	}
	p, _ := prefs.Load(prefsPath)
	if p.LastEmail != "ana@example.com" {
		t.Errorf("LastEmail = %q", p.LastEmail)
	}
}

func TestLoginFailureStaysOnForm(t *testing.T) {
	m, _, _ := newTestModel(t, routes{
		"POST /login": {401, `{"message":"Invalid credentials"}`},
	}, nil)

	m, _ = update(t, m, m.doLogin("ana@example.com", "wrong")())
	if m.currentView != ViewLogin {
		t.Fatalf("view = %q, want login", m.currentView)
	}
	if !strings.Contains(m.View(), "Invalid credentials") {
		t.Errorf("login view does not show the error:\n%s", m.View())
	}
}

func TestClearedSessionReturnsToLogin(t *testing.T) {
	m, store, _ := newTestModel(t, nil, &member)
	store.ClearUser()

	m, _ = update(t, m, waitForStore(m.updates)())
	if m.currentView != ViewLogin {
		t.Fatalf("view = %q, want login", m.currentView)
	}
}

func TestUnauthorizedFetchReturnsToLogin(t *testing.T) {
	m, store, _ := newTestModel(t, routes{
		"GET /books": {401, `{"message":"Unauthenticated."}`},
	}, &member)

	m, _ = update(t, m, NavigateMsg{Target: ViewBooks})
	m, _ = update(t, m, m.load(ViewBooks)())
	if m.currentView != ViewLogin {
		t.Fatalf("view = %q, want login", m.currentView)
	}
	if _, ok := store.Session(); ok {
		t.Error("session survived a 401")
	}
}

func TestStoreUpdatesReachBookList(t *testing.T) {
	m, store, _ := newTestModel(t, nil, &member)
	m, _ = update(t, m, NavigateMsg{Target: ViewBooks})
	store.SetBooks([]catalog.Book{{ID: 1, Title: "Dune", AvailableCopies: 1, TotalCopies: 1}})

	m, _ = update(t, m, waitForStore(m.updates)())
	if got := len(m.books.list.Items()); got != 1 {
		t.Fatalf("book list has %d items, want 1", got)
	}
}

func TestHubNavigates(t *testing.T) {
	m, _, _ := newTestModel(t, nil, &librarian)
	m, _ = update(t, m, NavigateMsg{Target: ViewHub})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	_, cmd := update(t, m, keyMsg("enter"))
	msg, ok := firstMsg(t, cmd).(NavigateMsg)
	if !ok || msg.Target != ViewDashboard {
		t.Fatalf("hub enter produced %#v", msg)
	}

	_, cmd = update(t, m, keyMsg("q"))
	if _, ok := firstMsg(t, cmd).(QuitAppMsg); !ok {
		t.Fatal("q in hub did not quit")
	}
}

func TestMemberBorrowKey(t *testing.T) {
	m, store, _ := newTestModel(t, nil, &member)
	store.SetBooks([]catalog.Book{{ID: 4, Title: "Dune", AvailableCopies: 1, TotalCopies: 1}})
	m, _ = update(t, m, waitForStore(m.updates)())
	m, _ = update(t, m, NavigateMsg{Target: ViewBooks})

	_, cmd := update(t, m, keyMsg("b"))
	msg, ok := firstMsg(t, cmd).(borrowMsg)
	if !ok || msg.bookID != 4 {
		t.Fatalf("b produced %#v", msg)
	}

	_, cmd = update(t, m, keyMsg("d"))
	if cmd != nil {
		if _, isDelete := cmd().(deleteBookMsg); isDelete {
			t.Fatal("member could request a delete")
		}
	}
}

func TestLibrarianDeleteNeedsConfirmation(t *testing.T) {
	m, store, _ := newTestModel(t, nil, &librarian)
	store.SetBooks([]catalog.Book{{ID: 9, Title: "Emma"}})
	m, _ = update(t, m, waitForStore(m.updates)())
	m, _ = update(t, m, NavigateMsg{Target: ViewBooks})

	m, cmd := update(t, m, keyMsg("d"))
	if cmd != nil {
		t.Fatal("delete ran without confirmation")
	}
	if !strings.Contains(m.View(), `Delete "Emma"?`) {
		t.Errorf("confirmation not shown:\n%s", m.View())
	}
	_, cmd = update(t, m, keyMsg("y"))
	msg, ok := firstMsg(t, cmd).(deleteBookMsg)
	if !ok || msg.id != 9 {
		t.Fatalf("y produced %#v", msg)
	}
}

func TestBookFormValidatesBeforeSaving(t *testing.T) {
	m, _, _ := newTestModel(t, nil, &librarian)
	m, _ = update(t, m, editBookMsg{book: &catalog.Book{ID: 3, Title: "", Author: "A", Genre: "G", ISBN: "1", TotalCopies: 1}})
	if m.currentView != ViewBookForm {
		t.Fatalf("view = %q, want book form", m.currentView)
	}

	// Walk to the last field, then confirm.
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, keyMsg("enter"))
	}
	m, cmd := update(t, m, keyMsg("y"))
	if cmd != nil {
		if _, isSave := firstMsg(t, cmd).(saveBookMsg); isSave {
			t.Fatal("saved a book without a title")
		}
	}
	if !strings.Contains(m.View(), "title is required") {
		t.Errorf("validation error not shown:\n%s", m.View())
	}
}

func TestSaveSuccessReturnsToBooks(t *testing.T) {
	m, store, _ := newTestModel(t, routes{
		"PUT /books/3": {200, `{"data":{"id":3,"title":"Dune","author":"Herbert","genre":"SF","isbn":"1","total_copies":2,"available_copies":2}}`},
	}, &librarian)
	store.SetBooks([]catalog.Book{{ID: 3, Title: "Old"}})

	in := catalog.BookInput{Title: "Dune", Author: "Herbert", Genre: "SF", ISBN: "1", TotalCopies: 2}
	m, _ = update(t, m, editBookMsg{book: &catalog.Book{ID: 3}})
	m, _ = update(t, m, m.saveBook(3, in)())
	if m.currentView != ViewBooks {
		t.Fatalf("view = %q, want books", m.currentView)
	}
	if got := store.Books()[0].Title; got != "Dune" {
		t.Errorf("store title = %q", got)
	}
}
