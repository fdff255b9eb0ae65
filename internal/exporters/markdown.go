package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sallahboussettah/readwise/internal/entities"
	"github.com/sallahboussettah/readwise/internal/utils"
)

// MarkdownExporter writes one markdown file per book, grouped into a
// subdirectory per shelf, with the book's quotes as the body.
type MarkdownExporter struct {
	OutputDir string
	Result    ExportResult
}

func NewMarkdownExporter(outputDir string) *MarkdownExporter {
	return &MarkdownExporter{
		OutputDir: outputDir,
		Result:    ExportResult{},
	}
}

// GenerateMarkdown renders a single book with its quotes, frontmatter
// included.
func GenerateMarkdown(book *entities.Book, quotes []entities.Quote) string {
	var builder strings.Builder

	currentDateTime := time.Now().Format("2006-01-02")
	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: book_quotes\n")
	fmt.Fprintf(&builder, "created_at: %s\n", currentDateTime)
	fmt.Fprintf(&builder, "title: \"%s\"\n", strings.ReplaceAll(book.Title, "\"", "\\\""))
	fmt.Fprintf(&builder, "authors: \"%s\"\n", strings.ReplaceAll(strings.Join(book.Authors, ", "), "\"", "\\\""))
	fmt.Fprintf(&builder, "shelf: %s\n", book.Shelf)
	fmt.Fprintf(&builder, "tags: quotes, books\n")
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "## Quotes\n\n")

	for _, quote := range quotes {
		if quote.DateAdded != "" {
			fmt.Fprintf(&builder, "### %s\n\n", quote.DateAdded)
		}
		fmt.Fprintf(&builder, "> %s\n\n", strings.ReplaceAll(quote.Text, "\n", "\n> "))
		if len(quote.Tags) > 0 {
			fmt.Fprintf(&builder, "**Tags:** %s\n\n", strings.Join(quote.Tags, ", "))
		}
	}

	return builder.String()
}

func (exporter *MarkdownExporter) ensureShelfDir(shelf entities.Shelf) (string, error) {
	shelfDir := filepath.Join(exporter.OutputDir, string(shelf))
	if err := os.MkdirAll(shelfDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create shelf directory: %w", err)
	}
	return shelfDir, nil
}

func (exporter *MarkdownExporter) exportBook(book entities.Book, quotes []entities.Quote) (string, error) {
	shelfDir, err := exporter.ensureShelfDir(book.Shelf)
	if err != nil {
		return "", err
	}

	outputPath := filepath.Join(shelfDir, utils.SanitizeFilename(book.Title)+".md")

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return "", err
	}
	defer outputFile.Close()

	if _, err := outputFile.WriteString(GenerateMarkdown(&book, quotes)); err != nil {
		return "", err
	}

	exporter.Result.QuotesProcessed += len(quotes)
	return outputPath, nil
}

// Export writes every book in the collection. A book that fails to
// write is counted and skipped, the rest still export.
func (exporter *MarkdownExporter) Export(books []entities.Book, quotes []entities.Quote) (ExportResult, error) {
	exporter.Result = ExportResult{}

	if _, err := os.Stat(exporter.OutputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(exporter.OutputDir, 0755); err != nil {
			return ExportResult{}, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	quotesByBook := make(map[string][]entities.Quote, len(books))
	for _, quote := range quotes {
		quotesByBook[quote.BookID] = append(quotesByBook[quote.BookID], quote)
	}

	for _, book := range books {
		if _, err := exporter.exportBook(book, quotesByBook[book.ID]); err != nil {
			fmt.Printf("Failed to export %q: %v\n", book.Title, err)
			exporter.Result.BooksFailed++
			continue
		}
		exporter.Result.BooksProcessed++
	}

	return exporter.Result, nil
}
