package catalog_test

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/libdesk/internal/catalog"
)

var sampleBooks = []catalog.Book{
	{ID: 1, Title: "Structure and Interpretation of Computer Programs", Author: "Abelson & Sussman", Genre: "Programming", ISBN: "9780262510875", TotalCopies: 3, AvailableCopies: 2, IsAvailable: true},
	{ID: 2, Title: "Operating Systems: Three Easy Pieces", Author: "Arpaci-Dusseau", Genre: "Systems", ISBN: "9781985086593", TotalCopies: 1, AvailableCopies: 0, IsAvailable: true},
}

func ids(books []catalog.Book) []int64 {
	out := make([]int64, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

// --- Borrowable ---

func TestBorrowable_CopiesWinOverFlag(t *testing.T) {
	b := catalog.Book{AvailableCopies: 0, IsAvailable: true}
	if b.Borrowable() {
		t.Error("Borrowable = true with zero copies and is_available=true")
	}
	b = catalog.Book{AvailableCopies: 2, IsAvailable: false}
	if !b.Borrowable() {
		t.Error("Borrowable = false with copies left and is_available=false")
	}
	b = catalog.Book{AvailableCopies: -1}
	if b.Borrowable() {
		t.Error("Borrowable = true with negative copies")
	}
}

// --- Patch ---

func TestBookPatch_MergesOnlySetFields(t *testing.T) {
	title := "SICP, 2nd ed."
	copies := int64(5)
	got := catalog.BookPatch{Title: &title, TotalCopies: &copies}.Apply(sampleBooks[0])

	if got.Title != title || got.TotalCopies != 5 {
		t.Errorf("patched fields not applied: %+v", got)
	}
	if got.Author != sampleBooks[0].Author || got.AvailableCopies != 2 || got.ID != 1 {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestPatchFrom_KeepsTargetID(t *testing.T) {
	src := catalog.Book{ID: 99, Title: "New", AvailableCopies: 4}
	got := catalog.PatchFrom(src).Apply(sampleBooks[0])
	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
	if got.Title != "New" || got.AvailableCopies != 4 || got.Author != "" {
		t.Errorf("PatchFrom did not overwrite fields: %+v", got)
	}
}

// --- Input ---

func TestBookInput_Validate(t *testing.T) {
	in := catalog.BookInput{Title: "  Dune ", Author: "Herbert", Genre: "SF", ISBN: "978-0441013593", TotalCopies: 2}
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if in.Title != "Dune" {
		t.Errorf("Title = %q, want trimmed", in.Title)
	}
}

func TestBookInput_ValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		in   catalog.BookInput
		want string
	}{
		{"missing title", catalog.BookInput{Author: "a", Genre: "g", ISBN: "i", TotalCopies: 1}, "title is required"},
		{"blank author", catalog.BookInput{Title: "t", Author: "   ", Genre: "g", ISBN: "i", TotalCopies: 1}, "author is required"},
		{"zero copies", catalog.BookInput{Title: "t", Author: "a", Genre: "g", ISBN: "i"}, "total copies must be at least 1"},
		{"long isbn", catalog.BookInput{Title: "t", Author: "a", Genre: "g", ISBN: strings.Repeat("9", 21), TotalCopies: 1}, "isbn must be at most 20"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.in.Validate()
			if err == nil {
				t.Fatal("Validate returned nil error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("error = %q, want it to contain %q", err, c.want)
			}
		})
	}
}

func TestInputFrom(t *testing.T) {
	in := catalog.InputFrom(sampleBooks[1])
	if in.Title != sampleBooks[1].Title || in.TotalCopies != 1 || in.ISBN != sampleBooks[1].ISBN {
		t.Errorf("InputFrom = %+v", in)
	}
}

// --- ByID / Remove ---

func TestByID(t *testing.T) {
	if b := catalog.ByID(sampleBooks, 2); b == nil || b.ID != 2 {
		t.Fatalf("ByID(2) = %v", b)
	}
	if b := catalog.ByID(sampleBooks, 42); b != nil {
		t.Errorf("ByID(42) = %v, want nil", b)
	}
}

func TestRemove_Existing(t *testing.T) {
	books := append([]catalog.Book(nil), sampleBooks...)
	out, ok := catalog.Remove(books, 1)
	if !ok {
		t.Fatal("Remove returned ok=false for existing book")
	}
	if len(out) != 1 || out[0].ID != 2 {
		t.Errorf("remaining = %v, want [2]", ids(out))
	}
	if books[0].ID != 1 {
		t.Error("Remove modified its input slice")
	}
}

func TestRemove_Missing(t *testing.T) {
	out, ok := catalog.Remove(sampleBooks, 7)
	if ok {
		t.Error("Remove returned ok=true for missing book")
	}
	if len(out) != 2 {
		t.Errorf("expected 2 books after no-op remove, got %d", len(out))
	}
}

// --- Filter ---

func TestFilter_BySearch(t *testing.T) {
	cases := []struct {
		query string
		want  []int64
	}{
		{"operating systems", []int64{2}},
		{"abelson", []int64{1}},
		{"programming", []int64{1}},
		{"9781985", []int64{2}},
		{"zzznomatch", []int64{}},
	}
	for _, c := range cases {
		got := ids(catalog.Filter{Search: c.query}.Apply(sampleBooks))
		if len(got) != len(c.want) {
			t.Errorf("search %q: got %v, want %v", c.query, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("search %q: got %v, want %v", c.query, got, c.want)
			}
		}
	}
}

func TestFilter_GenreCaseInsensitive(t *testing.T) {
	got := catalog.Filter{Genre: "SYSTEMS"}.Apply(sampleBooks)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("genre filter: got %v", ids(got))
	}
}

func TestFilter_BorrowableOnly(t *testing.T) {
	got := catalog.Filter{BorrowableOnly: true}.Apply(sampleBooks)
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("borrowable filter: got %v", ids(got))
	}
}

func TestFilter_Empty(t *testing.T) {
	if got := (catalog.Filter{}).Apply(sampleBooks); len(got) != 2 {
		t.Errorf("empty filter should return all books, got %d", len(got))
	}
}
