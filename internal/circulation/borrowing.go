// Package circulation models loans of catalog books to library members.
package circulation

import (
	"time"

	"github.com/blackwell-systems/libdesk/internal/catalog"
)

const apiTimestampLayout = "2006-01-02 15:04:05"

// UserSummary is the borrower as embedded in loan payloads.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Borrowing is a single loan. An empty ReturnedAt means the loan is active.
type Borrowing struct {
	ID         int64        `json:"id"`
	BookID     int64        `json:"book_id"`
	UserID     int64        `json:"user_id"`
	BorrowedAt string       `json:"borrowed_at"`
	DueAt      string       `json:"due_at"`
	ReturnedAt string       `json:"returned_at,omitempty"`
	Book       catalog.Book `json:"book"`
	User       UserSummary  `json:"user"`
}

// Active reports whether the book has not been returned yet.
func (b Borrowing) Active() bool {
	return b.ReturnedAt == ""
}

// Overdue reports whether the loan is active and its due date is strictly
// before now. It is derived on every call and never stored.
func (b Borrowing) Overdue(now time.Time) bool {
	if !b.Active() {
		return false
	}
	due := ParseTime(b.DueAt)
	if due.IsZero() {
		return false
	}
	return due.Before(now)
}

// BorrowingPatch carries a partial update; nil fields are left untouched.
type BorrowingPatch struct {
	BookID     *int64
	UserID     *int64
	BorrowedAt *string
	DueAt      *string
	ReturnedAt *string
	Book       *catalog.Book
	User       *UserSummary
}

// Apply returns b with every non-nil field of p merged in.
func (p BorrowingPatch) Apply(b Borrowing) Borrowing {
	if p.BookID != nil {
		b.BookID = *p.BookID
	}
	if p.UserID != nil {
		b.UserID = *p.UserID
	}
	if p.BorrowedAt != nil {
		b.BorrowedAt = *p.BorrowedAt
	}
	if p.DueAt != nil {
		b.DueAt = *p.DueAt
	}
	if p.ReturnedAt != nil {
		b.ReturnedAt = *p.ReturnedAt
	}
	if p.Book != nil {
		b.Book = *p.Book
	}
	if p.User != nil {
		b.User = *p.User
	}
	return b
}

// PatchFrom builds a patch that overwrites every field except the ID, the
// way a fresh server copy replaces the local one.
func PatchFrom(b Borrowing) BorrowingPatch {
	return BorrowingPatch{
		BookID:     &b.BookID,
		UserID:     &b.UserID,
		BorrowedAt: &b.BorrowedAt,
		DueAt:      &b.DueAt,
		ReturnedAt: &b.ReturnedAt,
		Book:       &b.Book,
		User:       &b.User,
	}
}

// ParseTime accepts the timestamp layouts the API is known to emit and
// returns the zero time for anything else.
func ParseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	for _, layout := range []string{apiTimestampLayout, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
