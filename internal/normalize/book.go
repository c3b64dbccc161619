package normalize

import "github.com/blackwell-systems/libdesk/internal/catalog"

// Book maps one book object. Fields that are missing, null or of the wrong
// type take their zero value.
func Book(v any) catalog.Book {
	obj := object(v)
	return catalog.Book{
		ID:              num(obj["id"]),
		Title:           str(obj["title"]),
		Author:          str(obj["author"]),
		Genre:           str(obj["genre"]),
		ISBN:            str(obj["isbn"]),
		TotalCopies:     num(obj["total_copies"]),
		AvailableCopies: num(obj["available_copies"]),
		IsAvailable:     boolean(obj["is_available"]),
		CreatedAt:       str(obj["created_at"]),
		UpdatedAt:       str(obj["updated_at"]),
	}
}

// Books maps a book array. The result is never nil.
func Books(v any) []catalog.Book {
	arr := array(v)
	out := make([]catalog.Book, 0, len(arr))
	for _, item := range arr {
		out = append(out, Book(item))
	}
	return out
}
