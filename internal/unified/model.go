// Package unified is the single-program TUI: one Bubble Tea model that
// switches between the login form, the hub and the library views, driven
// by a library.Service and the store it mutates.
package unified

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/libdesk/internal/library"
	"github.com/blackwell-systems/libdesk/internal/prefs"
	"github.com/blackwell-systems/libdesk/internal/state"
	"github.com/blackwell-systems/libdesk/internal/tui"
)

// View represents the current active view
type View string

const (
	ViewLogin      View = "login"
	ViewHub        View = "hub"
	ViewBooks      View = "books"
	ViewBorrowings View = "borrowings"
	ViewDashboard  View = "dashboard"
	ViewBookForm   View = "book-form"
)

// Options tune a Model.
type Options struct {
	PrefsPath string
	StartView View
	Now       func() time.Time
}

// Model is the unified TUI orchestrator that manages view switching
type Model struct {
	ctx  context.Context
	svc  *library.Service
	opts Options

	currentView View
	width       int
	height      int

	snap    state.Snapshot
	updates chan state.Snapshot
	unsub   func()

	spinner   spinner.Model
	status    string
	err       error
	lastEmail string

	login      tui.Form
	hub        HubModel
	books      BooksModel
	borrowings BorrowingsModel
	dash       DashboardModel
	form       BookFormModel
}

// New creates a model over svc. It subscribes to the service's store;
// Close releases the subscription.
func New(ctx context.Context, svc *library.Service, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.StartView == "" {
		opts.StartView = ViewDashboard
	}

	updates := make(chan state.Snapshot, 1)
	unsub := svc.Store().Subscribe(func(s state.Snapshot) {
		for {
			select {
			case updates <- s:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(tui.ColorYellow)

	p, _ := prefs.Load(opts.PrefsPath)

	m := Model{
		ctx:       ctx,
		svc:       svc,
		opts:      opts,
		snap:      svc.Store().Snapshot(),
		updates:   updates,
		unsub:     unsub,
		spinner:   sp,
		lastEmail: p.LastEmail,
	}
	if m.lastEmail == "" {
		m.lastEmail = m.snap.SessionEmail()
	}
	role := m.snap.Role()
	m.hub = NewHubModel(hubContext(m.snap))
	m.books = NewBooksModel(m.snap.Books, role)
	m.borrowings = NewBorrowingsModel(m.snap.Borrowings, role, opts.Now())
	m.dash = NewDashboardModel(role)
	m.currentView = ViewLogin
	if m.snap.LoggedIn() {
		m.currentView = opts.StartView
	}
	m = m.enter(m.currentView)
	return m
}

// Close drops the store subscription.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForStore(m.updates), m.spinner.Tick}
	if m.currentView == ViewLogin {
		cmds = append(cmds, m.login.Init())
	} else {
		cmds = append(cmds, m.load(m.currentView))
	}
	return tea.Batch(cmds...)
}

func waitForStore(ch <-chan state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{snap: s}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.hub = m.hub.SetSize(msg.Width, msg.Height)
		m.books = m.books.SetSize(msg.Width, msg.Height)
		m.borrowings = m.borrowings.SetSize(msg.Width, msg.Height)
		m.dash = m.dash.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case storeChangedMsg:
		return m.applySnapshot(msg.snap)

	case NavigateMsg:
		m.status, m.err = "", nil
		m = m.enter(msg.Target)
		return m, m.load(msg.Target)

	case QuitAppMsg:
		return m, tea.Quit

	case refreshMsg:
		return m, m.load(msg.target)

	case borrowMsg:
		return m, m.borrow(msg.bookID)

	case returnMsg:
		return m, m.returnBook(msg.borrowingID)

	case deleteBookMsg:
		return m, m.deleteBook(msg.id)

	case editBookMsg:
		m.form = NewBookFormModel(msg.book)
		m.currentView = ViewBookForm
		return m, m.form.Init()

	case saveBookMsg:
		return m, m.saveBook(msg.id, msg.in)

	case logoutMsg:
		return m, m.logout()

	case loginDoneMsg:
		if msg.err != nil {
			m.login.SetError(msg.err)
			return m, nil
		}
		m.lastEmail = msg.sess.Email
		if err := prefs.Remember(m.opts.PrefsPath, msg.sess.Email); err != nil {
			slog.Warn("saving last email", "err", err)
		}
		m.snap = m.svc.Store().Snapshot()
		m = m.enter(m.opts.StartView)
		return m, m.load(m.opts.StartView)

	case dashboardDoneMsg:
		if m.handleErr(msg.err) {
			return m, nil
		}
		m.dash = m.dash.SetDashboard(msg.d)
		return m, nil

	case opDoneMsg:
		if m.handleErr(msg.err) {
			if m.currentView == ViewBookForm {
				m.form = m.form.SetError(msg.err)
			}
			return m, nil
		}
		m.status = msg.status
		if msg.next != "" && msg.next != m.currentView {
			m = m.enter(msg.next)
		}
		return m, nil

	case loggedOutMsg:
		m.status, m.err = "", nil
		m.login = tui.NewLoginForm(m.lastEmail)
		if msg.err != nil {
			m.login.SetError(msg.err)
		}
		m.currentView = ViewLogin
		return m, m.login.Init()
	}

	return m.updateCurrentView(msg)
}

// handleErr records err for the status line. It reports whether there was
// an error.
func (m *Model) handleErr(err error) bool {
	if err == nil {
		return false
	}
	m.status = ""
	m.err = err
	if errors.Is(err, library.ErrSessionExpired) || errors.Is(err, library.ErrNotLoggedIn) {
		m.login = tui.NewLoginForm(m.lastEmail)
		m.login.SetError(err)
		m.currentView = ViewLogin
	}
	return true
}

// applySnapshot refreshes every view from the store. Losing the session
// returns to the login form.
func (m Model) applySnapshot(s state.Snapshot) (tea.Model, tea.Cmd) {
	wasLoggedIn := m.snap.LoggedIn()
	m.snap = s
	next := waitForStore(m.updates)

	if !s.LoggedIn() {
		if wasLoggedIn && m.currentView != ViewLogin {
			m.login = tui.NewLoginForm(m.lastEmail)
			m.currentView = ViewLogin
			return m, tea.Batch(next, m.login.Init())
		}
		return m, next
	}

	now := m.opts.Now()
	m.books = m.books.SetBooks(s.Books)
	m.borrowings = m.borrowings.SetBorrowings(s.Borrowings, now)
	m.hub = m.hub.SetContext(hubContext(s))
	return m, next
}

func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.login, cmd = m.login.Update(msg)
		if m.login.Canceled() {
			return m, tea.Quit
		}
		if m.login.Submitted() {
			m.login.Reset()
			values := m.login.Values()
			return m, tea.Batch(cmd, m.doLogin(values[0], values[1]))
		}
	case ViewHub:
		m.hub, cmd = m.hub.Update(msg)
	case ViewBooks:
		m.books, cmd = m.books.Update(msg)
	case ViewBorrowings:
		m.borrowings, cmd = m.borrowings.Update(msg)
	case ViewDashboard:
		m.dash, cmd = m.dash.Update(msg)
	case ViewBookForm:
		m.form, cmd = m.form.Update(msg)
	}

	return m, cmd
}

// enter switches to target and rebuilds its view model from the snapshot.
func (m Model) enter(target View) Model {
	role := m.snap.Role()
	now := m.opts.Now()
	switch target {
	case ViewHub:
		m.hub = NewHubModel(hubContext(m.snap))
	case ViewBooks:
		m.books = NewBooksModel(m.snap.Books, role)
	case ViewBorrowings:
		m.borrowings = NewBorrowingsModel(m.snap.Borrowings, role, now)
	case ViewDashboard:
		m.dash = NewDashboardModel(role)
	case ViewLogin:
		m.login = tui.NewLoginForm(m.lastEmail)
	}
	m.currentView = target
	if m.width > 0 {
		m.hub = m.hub.SetSize(m.width, m.height)
		m.books = m.books.SetSize(m.width, m.height)
		m.borrowings = m.borrowings.SetSize(m.width, m.height)
		m.dash = m.dash.SetSize(m.width, m.height)
	}
	return m
}

func (m Model) View() string {
	var body string
	switch m.currentView {
	case ViewLogin:
		body = m.login.View()
	case ViewHub:
		body = m.hub.View()
	case ViewBooks:
		body = m.books.View()
	case ViewBorrowings:
		body = m.borrowings.View()
	case ViewDashboard:
		body = m.dash.View()
	case ViewBookForm:
		body = m.form.View()
	default:
		body = "Unknown view"
	}
	return body + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	switch {
	case m.snap.Loading:
		return " " + m.spinner.View() + tui.StyleHelp.Render(" loading…")
	case m.err != nil && m.currentView != ViewLogin:
		return " " + tui.StyleError.Render(fmt.Sprintf("error: %v", m.err))
	case m.status != "":
		return " " + tui.StyleAvailable.Render(m.status)
	}
	return ""
}

func hubContext(s state.Snapshot) tui.HubContext {
	ctx := tui.HubContext{BookCount: len(s.Books), BorrowingCount: len(s.Borrowings)}
	if s.Session != nil {
		ctx.Name = s.Session.Name
		ctx.Role = s.Session.Role
	}
	return ctx
}

// Run starts the TUI full screen and blocks until the user quits.
func Run(ctx context.Context, svc *library.Service, opts Options) error {
	m := New(ctx, svc, opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
