// Package dashboard holds the role-specific summary views served by the
// library API.
package dashboard

import "github.com/blackwell-systems/libdesk/internal/session"

// Dashboard is either a *Librarian or a *Member.
type Dashboard interface {
	Role() session.Role
}

// BookSummary is the trimmed book shape embedded in dashboard entries.
type BookSummary struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre,omitempty"`
}

// Borrower is the member attached to a recent borrowing.
type Borrower struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RecentBorrowing is one row of the librarian's recent activity list.
type RecentBorrowing struct {
	ID         int64       `json:"id"`
	User       Borrower    `json:"user"`
	Book       BookSummary `json:"book"`
	BorrowedAt string      `json:"borrowed_at"`
	DueAt      string      `json:"due_at"`
	IsOverdue  bool        `json:"is_overdue"`
}

// PopularBook is a book ranked by how often it has been borrowed.
type PopularBook struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	BorrowingCount int64  `json:"borrowing_count"`
}

// Librarian is the library-wide overview.
type Librarian struct {
	TotalBooks         int64             `json:"total_books"`
	TotalMembers       int64             `json:"total_members"`
	TotalBorrowedBooks int64             `json:"total_borrowed_books"`
	TotalOverdueBooks  int64             `json:"total_overdue_books"`
	RecentBorrowings   []RecentBorrowing `json:"recent_borrowings"`
	PopularBooks       []PopularBook     `json:"popular_books"`
}

func (*Librarian) Role() session.Role { return session.RoleLibrarian }

// ActiveBorrowing is a loan the member still holds. DaysUntilDue is the
// server's human-readable countdown and is nil when the server sent none.
type ActiveBorrowing struct {
	ID           int64       `json:"id"`
	Book         BookSummary `json:"book"`
	BorrowedAt   string      `json:"borrowed_at"`
	DueAt        string      `json:"due_at"`
	IsOverdue    bool        `json:"is_overdue"`
	DaysUntilDue *string     `json:"days_until_due"`
}

// HistoryEntry is a returned loan.
type HistoryEntry struct {
	ID         int64       `json:"id"`
	Book       BookSummary `json:"book"`
	BorrowedAt string      `json:"borrowed_at"`
	ReturnedAt string      `json:"returned_at"`
}

// Member is the signed-in member's own overview.
type Member struct {
	ActiveBorrowings   []ActiveBorrowing `json:"active_borrowings"`
	BorrowingHistory   []HistoryEntry    `json:"borrowing_history"`
	TotalBooksBorrowed int64             `json:"total_books_borrowed"`
	OverdueCount       int64             `json:"overdue_count"`
}

func (*Member) Role() session.Role { return session.RoleMember }

// Default returns the empty dashboard for role: all counts zero and all
// lists empty but non-nil. Any role other than librarian gets the member
// view.
func Default(role session.Role) Dashboard {
	if role == session.RoleLibrarian {
		return &Librarian{
			RecentBorrowings: []RecentBorrowing{},
			PopularBooks:     []PopularBook{},
		}
	}
	return &Member{
		ActiveBorrowings: []ActiveBorrowing{},
		BorrowingHistory: []HistoryEntry{},
	}
}
