package catalog

// Book is one title in the library catalog as served by the API.
type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	ISBN            string `json:"isbn"`
	TotalCopies     int64  `json:"total_copies"`
	AvailableCopies int64  `json:"available_copies"`
	IsAvailable     bool   `json:"is_available"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// Borrowable reports whether a copy can be lent out. The copy count wins
// over the server's is_available flag when the two disagree.
func (b Book) Borrowable() bool {
	return b.AvailableCopies > 0
}

// BookPatch carries a partial update; nil fields are left untouched.
type BookPatch struct {
	Title           *string
	Author          *string
	Genre           *string
	ISBN            *string
	TotalCopies     *int64
	AvailableCopies *int64
	IsAvailable     *bool
	CreatedAt       *string
	UpdatedAt       *string
}

// Apply returns b with every non-nil field of p merged in.
func (p BookPatch) Apply(b Book) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.TotalCopies != nil {
		b.TotalCopies = *p.TotalCopies
	}
	if p.AvailableCopies != nil {
		b.AvailableCopies = *p.AvailableCopies
	}
	if p.IsAvailable != nil {
		b.IsAvailable = *p.IsAvailable
	}
	if p.CreatedAt != nil {
		b.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		b.UpdatedAt = *p.UpdatedAt
	}
	return b
}

// PatchFrom builds a patch that overwrites every field except the ID.
func PatchFrom(b Book) BookPatch {
	return BookPatch{
		Title:           &b.Title,
		Author:          &b.Author,
		Genre:           &b.Genre,
		ISBN:            &b.ISBN,
		TotalCopies:     &b.TotalCopies,
		AvailableCopies: &b.AvailableCopies,
		IsAvailable:     &b.IsAvailable,
		CreatedAt:       &b.CreatedAt,
		UpdatedAt:       &b.UpdatedAt,
	}
}
