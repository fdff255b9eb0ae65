// Package library holds the authoritative in-memory book and quote
// collections and mirrors every mutation to durable storage.
package library

import (
	"fmt"
	"sync"
	"time"

	"github.com/sallahboussettah/readwise/internal/entities"
)

// Persister mirrors the full collections to durable storage after each
// mutation. Implementations must not fail the caller: a write problem is
// logged and swallowed, in-memory state stays authoritative.
type Persister interface {
	SaveBooks(books []entities.Book)
	SaveQuotes(quotes []entities.Quote)
}

// Library is the single owner of the book and quote collections. All
// mutations go through its methods under one mutex, and persistence
// writes are issued under it so they reach storage in mutation order.
type Library struct {
	mu            sync.Mutex
	books         []entities.Book
	quotes        []entities.Quote
	persister     Persister
	lastQuoteNano int64
}

// New creates a library seeded with the given collections, most recent
// first, as loaded by the synchronizer.
func New(books []entities.Book, quotes []entities.Quote, persister Persister) *Library {
	return &Library{
		books:     books,
		quotes:    quotes,
		persister: persister,
	}
}

// AddBook inserts a book at the front of the collection. The incoming
// shelf value is ignored: new entries always start on WantToRead.
// Returns false (no-op) when a book with the same ID already exists, so
// callers can tell "already in library" from "newly added".
func (l *Library) AddBook(book entities.Book) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, b := range l.books {
		if b.ID == book.ID {
			return false
		}
	}

	book.Shelf = entities.ShelfWantToRead
	l.books = append([]entities.Book{book}, l.books...)
	l.persister.SaveBooks(l.snapshotBooks())
	return true
}

// DeleteBook removes the book with the given ID and cascades to every
// quote referencing it. Absent IDs are a no-op.
func (l *Library) DeleteBook(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	books := l.books[:0]
	removed := false
	for _, b := range l.books {
		if b.ID == id {
			removed = true
			continue
		}
		books = append(books, b)
	}
	l.books = books
	if !removed {
		return
	}

	quotes := l.quotes[:0]
	for _, q := range l.quotes {
		if q.BookID != id {
			quotes = append(quotes, q)
		}
	}
	l.quotes = quotes

	l.persister.SaveBooks(l.snapshotBooks())
	l.persister.SaveQuotes(l.snapshotQuotes())
}

// UpdateShelf moves the book with the given ID to a new shelf. Only the
// shelf field changes; absent IDs are a no-op.
func (l *Library) UpdateShelf(id string, shelf entities.Shelf) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.books {
		if l.books[i].ID == id {
			l.books[i].Shelf = shelf
			l.persister.SaveBooks(l.snapshotBooks())
			return
		}
	}
}

// AddQuote assigns a fresh time-derived ID, stamps DateAdded if the
// caller left it empty, and prepends the quote. The nano timestamp is
// bumped monotonically so rapid calls within a session never collide.
func (l *Library) AddQuote(quote entities.Quote) entities.Quote {
	l.mu.Lock()
	defer l.mu.Unlock()

	nano := time.Now().UnixNano()
	if nano <= l.lastQuoteNano {
		nano = l.lastQuoteNano + 1
	}
	l.lastQuoteNano = nano

	quote.ID = fmt.Sprintf("q%d", nano)
	if quote.DateAdded == "" {
		quote.DateAdded = time.Now().UTC().Format(time.RFC3339)
	}

	l.quotes = append([]entities.Quote{quote}, l.quotes...)
	l.persister.SaveQuotes(l.snapshotQuotes())
	return quote
}

// Books returns a copy of the full book collection, most recent first.
func (l *Library) Books() []entities.Book {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotBooks()
}

// BooksByShelf returns the books on the given shelf, relative order
// preserved.
func (l *Library) BooksByShelf(shelf entities.Shelf) []entities.Book {
	l.mu.Lock()
	defer l.mu.Unlock()

	books := make([]entities.Book, 0)
	for _, b := range l.books {
		if b.Shelf == shelf {
			books = append(books, b)
		}
	}
	return books
}

// BookByID returns the book with the given ID, or false.
func (l *Library) BookByID(id string) (entities.Book, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, b := range l.books {
		if b.ID == id {
			return b, true
		}
	}
	return entities.Book{}, false
}

// Quotes returns a copy of the full quote collection, most recent first.
func (l *Library) Quotes() []entities.Quote {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotQuotes()
}

// QuotesForBook returns the quotes referencing the given book, relative
// order preserved.
func (l *Library) QuotesForBook(bookID string) []entities.Quote {
	l.mu.Lock()
	defer l.mu.Unlock()

	quotes := make([]entities.Quote, 0)
	for _, q := range l.quotes {
		if q.BookID == bookID {
			quotes = append(quotes, q)
		}
	}
	return quotes
}

func (l *Library) snapshotBooks() []entities.Book {
	books := make([]entities.Book, len(l.books))
	copy(books, l.books)
	return books
}

func (l *Library) snapshotQuotes() []entities.Quote {
	quotes := make([]entities.Quote, len(l.quotes))
	copy(quotes, l.quotes)
	return quotes
}
