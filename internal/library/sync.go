package library

import (
	"encoding/json"
	"log"

	"github.com/sallahboussettah/readwise/internal/entities"
	"github.com/sallahboussettah/readwise/internal/storage"
)

// Storage slot keys. Each collection is serialized whole and overwrites
// its slot on every change; the slots are independent, there is no
// transaction spanning them.
const (
	KeyBooks  = "readwise_books"
	KeyQuotes = "readwise_quotes"
)

// Synchronizer mirrors the library collections to the key-value store.
// Reads supply defaults when a slot is absent or fails to parse; write
// failures are logged and swallowed, never surfaced to the caller.
type Synchronizer struct {
	kv storage.KV
}

func NewSynchronizer(kv storage.KV) *Synchronizer {
	return &Synchronizer{kv: kv}
}

// LoadBooks reads the book collection, defaulting to empty.
func (s *Synchronizer) LoadBooks() []entities.Book {
	books := []entities.Book{}
	s.loadSlot(KeyBooks, &books)
	return books
}

// LoadQuotes reads the quote collection, defaulting to empty.
func (s *Synchronizer) LoadQuotes() []entities.Quote {
	quotes := []entities.Quote{}
	s.loadSlot(KeyQuotes, &quotes)
	return quotes
}

func (s *Synchronizer) loadSlot(key string, out any) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		log.Printf("Error reading %s, starting empty: %v", key, err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("Error parsing %s, starting empty: %v", key, err)
	}
}

// SaveBooks overwrites the book slot with the full collection.
func (s *Synchronizer) SaveBooks(books []entities.Book) {
	s.saveSlot(KeyBooks, books)
}

// SaveQuotes overwrites the quote slot with the full collection.
func (s *Synchronizer) SaveQuotes(quotes []entities.Quote) {
	s.saveSlot(KeyQuotes, quotes)
}

func (s *Synchronizer) saveSlot(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("Error serializing %s: %v", key, err)
		return
	}
	if err := s.kv.Set(key, string(raw)); err != nil {
		log.Printf("Error saving %s: %v", key, err)
	}
}
