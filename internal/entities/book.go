package entities

import "fmt"

// Shelf is the reading-status bucket a book lives on. Every book is on
// exactly one shelf; freshly added books always start on ShelfWantToRead.
type Shelf string

const (
	ShelfWantToRead Shelf = "want_to_read"
	ShelfReading    Shelf = "reading"
	ShelfFinished   Shelf = "finished"
)

// ParseShelf validates a wire/storage value and returns the typed shelf.
func ParseShelf(s string) (Shelf, error) {
	switch Shelf(s) {
	case ShelfWantToRead, ShelfReading, ShelfFinished:
		return Shelf(s), nil
	}
	return "", fmt.Errorf("unknown shelf: %q", s)
}

// Book is a library entry. The ID is either the catalog volume id or a
// locally generated fallback; it is unique within the owning collection.
type Book struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	CoverURL    string   `json:"cover_url"`
	Description string   `json:"description,omitempty"`
	PageCount   int      `json:"page_count,omitempty"`
	Shelf       Shelf    `json:"shelf"`
}

// Quote is a saved passage. BookID references a Book.ID; deleting the
// book cascades to its quotes. Tags are kept as given, duplicates and all.
type Quote struct {
	ID        string   `json:"id"`
	BookID    string   `json:"book_id"`
	Text      string   `json:"text"`
	Tags      []string `json:"tags"`
	DateAdded string   `json:"date_added"` // RFC 3339
}

// Suggestion is an AI-generated recommendation. Book is the catalog
// entry it resolved to, nil when the catalog lookup found nothing.
// Suggestions are ephemeral and never persisted.
type Suggestion struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Reason string `json:"reason"`
	Book   *Book  `json:"book,omitempty"`
}
