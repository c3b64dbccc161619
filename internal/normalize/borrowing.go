package normalize

import "github.com/blackwell-systems/libdesk/internal/circulation"

// Borrowing maps one loan object. The embedded book and user are always
// populated, with defaults when the payload omits them.
func Borrowing(v any) circulation.Borrowing {
	obj := object(v)
	user := object(obj["user"])
	return circulation.Borrowing{
		ID:         num(obj["id"]),
		BookID:     num(obj["book_id"]),
		UserID:     num(obj["user_id"]),
		BorrowedAt: str(obj["borrowed_at"]),
		DueAt:      str(obj["due_at"]),
		ReturnedAt: str(obj["returned_at"]),
		Book:       Book(obj["book"]),
		User: circulation.UserSummary{
			ID:    num(user["id"]),
			Name:  str(user["name"]),
			Email: str(user["email"]),
		},
	}
}

// Borrowings maps a loan array. The result is never nil.
func Borrowings(v any) []circulation.Borrowing {
	arr := array(v)
	out := make([]circulation.Borrowing, 0, len(arr))
	for _, item := range arr {
		out = append(out, Borrowing(item))
	}
	return out
}
