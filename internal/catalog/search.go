package catalog

import "strings"

// Filter narrows an already-loaded book list without another API round trip.
type Filter struct {
	Search         string // matches title, author, genre or ISBN
	Genre          string
	BorrowableOnly bool
}

// Apply returns the subset of books matching all non-empty filter fields.
func (f Filter) Apply(books []Book) []Book {
	var out []Book
	for _, b := range books {
		if f.Genre != "" && !strings.EqualFold(b.Genre, f.Genre) {
			continue
		}
		if f.BorrowableOnly && !b.Borrowable() {
			continue
		}
		if f.Search != "" && !matchesSearch(b, f.Search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// ByID returns the first book with the given ID, or nil.
func ByID(books []Book, id int64) *Book {
	for i := range books {
		if books[i].ID == id {
			return &books[i]
		}
	}
	return nil
}

// Remove removes a book by ID. Returns the updated slice and whether a book
// was actually removed. The input slice is not modified.
func Remove(books []Book, id int64) ([]Book, bool) {
	for i, b := range books {
		if b.ID == id {
			out := make([]Book, 0, len(books)-1)
			out = append(out, books[:i]...)
			return append(out, books[i+1:]...), true
		}
	}
	return books, false
}

func matchesSearch(b Book, q string) bool {
	q = strings.ToLower(q)
	for _, field := range []string{b.Title, b.Author, b.Genre, b.ISBN} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
