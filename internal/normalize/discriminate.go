package normalize

import (
	"encoding/json"

	"github.com/blackwell-systems/libdesk/internal/dashboard"
)

// IsLibrarianDashboard reports whether v looks like a mapped librarian
// dashboard. It checks structure only and may agree with
// IsMemberDashboard on odd inputs.
func IsLibrarianDashboard(v any) bool {
	obj, ok := asObject(v)
	if !ok {
		return false
	}
	return present(obj, "total_books") &&
		present(obj, "total_members") &&
		isArray(obj["recent_borrowings"]) &&
		isArray(obj["popular_books"])
}

// IsMemberDashboard reports whether v looks like a mapped member dashboard.
func IsMemberDashboard(v any) bool {
	obj, ok := asObject(v)
	if !ok {
		return false
	}
	return isArray(obj["active_borrowings"]) &&
		isArray(obj["borrowing_history"]) &&
		present(obj, "total_books_borrowed")
}

// asObject accepts decoded JSON objects as-is and converts typed values,
// such as *dashboard.Librarian, through their JSON encoding. Typed
// dashboards get their nil lists replaced with empty ones first, since a
// nil slice encodes as null.
func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return t, t != nil
	case *dashboard.Librarian:
		if t == nil {
			return nil, false
		}
		v = withLists(*t)
	case dashboard.Librarian:
		v = withLists(t)
	case *dashboard.Member:
		if t == nil {
			return nil, false
		}
		v = withMemberLists(*t)
	case dashboard.Member:
		v = withMemberLists(t)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	obj, ok := Decode(raw).(map[string]any)
	return obj, ok && obj != nil
}

// present is true for any key that exists, including one set to null.
func present(obj map[string]any, key string) bool {
	_, ok := obj[key]
	return ok
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

func withLists(d dashboard.Librarian) dashboard.Librarian {
	if d.RecentBorrowings == nil {
		d.RecentBorrowings = []dashboard.RecentBorrowing{}
	}
	if d.PopularBooks == nil {
		d.PopularBooks = []dashboard.PopularBook{}
	}
	return d
}

func withMemberLists(d dashboard.Member) dashboard.Member {
	if d.ActiveBorrowings == nil {
		d.ActiveBorrowings = []dashboard.ActiveBorrowing{}
	}
	if d.BorrowingHistory == nil {
		d.BorrowingHistory = []dashboard.HistoryEntry{}
	}
	return d
}
