package exporters

import "github.com/sallahboussettah/readwise/internal/entities"

type LibraryExporter interface {
	Export(books []entities.Book, quotes []entities.Quote) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed  int `json:"books_processed"`
	QuotesProcessed int `json:"quotes_processed"`
	BooksFailed     int `json:"books_failed"`
}
