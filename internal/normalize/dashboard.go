package normalize

import (
	"fmt"
	"log/slog"

	"github.com/blackwell-systems/libdesk/internal/dashboard"
	"github.com/blackwell-systems/libdesk/internal/session"
)

// LibrarianDashboard maps the librarian overview. Counts come from the
// nested stats object, where the overdue total is keyed "overdue_books".
func LibrarianDashboard(v any) (dashboard.Librarian, error) {
	obj, stats, err := withStats(v)
	if err != nil {
		return dashboard.Librarian{}, err
	}

	recent, err := list(obj, "recent_borrowings")
	if err != nil {
		return dashboard.Librarian{}, err
	}
	out := dashboard.Librarian{
		TotalBooks:         num(stats["total_books"]),
		TotalMembers:       num(stats["total_members"]),
		TotalBorrowedBooks: num(stats["total_borrowed_books"]),
		TotalOverdueBooks:  num(stats["overdue_books"]),
		RecentBorrowings:   make([]dashboard.RecentBorrowing, 0, len(recent)),
	}
	for i, item := range recent {
		e, err := entry(item, "recent_borrowings", i)
		if err != nil {
			return dashboard.Librarian{}, err
		}
		user, book := object(e["user"]), object(e["book"])
		out.RecentBorrowings = append(out.RecentBorrowings, dashboard.RecentBorrowing{
			ID:         num(e["id"]),
			User:       dashboard.Borrower{ID: num(user["id"]), Name: str(user["name"]), Email: str(user["email"])},
			Book:       dashboard.BookSummary{ID: num(book["id"]), Title: str(book["title"]), Author: str(book["author"])},
			BorrowedAt: str(e["borrowed_at"]),
			DueAt:      str(e["due_at"]),
			IsOverdue:  boolean(e["is_overdue"]),
		})
	}

	popular, err := list(obj, "popular_books")
	if err != nil {
		return dashboard.Librarian{}, err
	}
	out.PopularBooks = make([]dashboard.PopularBook, 0, len(popular))
	for i, item := range popular {
		e, err := entry(item, "popular_books", i)
		if err != nil {
			return dashboard.Librarian{}, err
		}
		out.PopularBooks = append(out.PopularBooks, dashboard.PopularBook{
			ID:             num(e["id"]),
			Title:          str(e["title"]),
			Author:         str(e["author"]),
			BorrowingCount: num(e["borrowing_count"]),
		})
	}
	return out, nil
}

// MemberDashboard maps the member overview. DaysUntilDue stays nil when
// the server sends nothing usable for it.
func MemberDashboard(v any) (dashboard.Member, error) {
	obj, stats, err := withStats(v)
	if err != nil {
		return dashboard.Member{}, err
	}

	active, err := list(obj, "active_borrowings")
	if err != nil {
		return dashboard.Member{}, err
	}
	out := dashboard.Member{
		ActiveBorrowings:   make([]dashboard.ActiveBorrowing, 0, len(active)),
		TotalBooksBorrowed: num(stats["total_books_borrowed"]),
		OverdueCount:       num(stats["overdue_count"]),
	}
	for i, item := range active {
		e, err := entry(item, "active_borrowings", i)
		if err != nil {
			return dashboard.Member{}, err
		}
		book := object(e["book"])
		out.ActiveBorrowings = append(out.ActiveBorrowings, dashboard.ActiveBorrowing{
			ID: num(e["id"]),
			Book: dashboard.BookSummary{
				ID:     num(book["id"]),
				Title:  str(book["title"]),
				Author: str(book["author"]),
				Genre:  str(book["genre"]),
			},
			BorrowedAt:   str(e["borrowed_at"]),
			DueAt:        str(e["due_at"]),
			IsOverdue:    boolean(e["is_overdue"]),
			DaysUntilDue: optionalStr(e["days_until_due"]),
		})
	}

	history, err := list(obj, "borrowing_history")
	if err != nil {
		return dashboard.Member{}, err
	}
	out.BorrowingHistory = make([]dashboard.HistoryEntry, 0, len(history))
	for i, item := range history {
		e, err := entry(item, "borrowing_history", i)
		if err != nil {
			return dashboard.Member{}, err
		}
		book := object(e["book"])
		out.BorrowingHistory = append(out.BorrowingHistory, dashboard.HistoryEntry{
			ID:         num(e["id"]),
			Book:       dashboard.BookSummary{ID: num(book["id"]), Title: str(book["title"]), Author: str(book["author"])},
			BorrowedAt: str(e["borrowed_at"]),
			ReturnedAt: str(e["returned_at"]),
		})
	}
	return out, nil
}

// Dashboard unwraps v and maps it for the given role. The role decides the
// shape, not the payload. Any mapping failure is logged and replaced with
// the empty dashboard for that role, so callers always get something they
// can render.
func Dashboard(v any, role session.Role) (d dashboard.Dashboard) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("mapping dashboard data", "role", role, "panic", r)
			d = dashboard.Default(role)
		}
	}()

	data := Unwrap(v)
	if role == session.RoleLibrarian {
		lib, err := LibrarianDashboard(data)
		if err != nil {
			slog.Error("mapping dashboard data", "role", role, "err", err)
			return dashboard.Default(role)
		}
		return &lib
	}

	m, err := MemberDashboard(data)
	if err != nil {
		slog.Error("mapping dashboard data", "role", role, "err", err)
		return dashboard.Default(role)
	}
	return &m
}

func withStats(v any) (obj, stats map[string]any, err error) {
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return nil, nil, fmt.Errorf("%w: dashboard is %T, not an object", ErrMalformed, v)
	}
	stats, ok = obj["stats"].(map[string]any)
	if !ok || stats == nil {
		return nil, nil, fmt.Errorf("%w: dashboard has no stats object", ErrMalformed)
	}
	return obj, stats, nil
}

// entry rejects null list elements. Other non-objects map to defaults.
func entry(v any, list string, i int) (map[string]any, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: %s[%d] is null", ErrMalformed, list, i)
	}
	return object(v), nil
}
