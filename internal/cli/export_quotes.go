package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sallahboussettah/readwise/internal/config"
	"github.com/sallahboussettah/readwise/internal/exporters"
	"github.com/sallahboussettah/readwise/internal/library"
	"github.com/sallahboussettah/readwise/internal/storage"
)

// ExportQuotesCommand renders the saved library to markdown files,
// one per book, grouped by shelf.
type ExportQuotesCommand struct {
	DatabasePath string
	OutputDir    string
	Verbose      bool
}

func NewExportQuotesCommand() *ExportQuotesCommand {
	return &ExportQuotesCommand{}
}

func (cmd *ExportQuotesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-quotes", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.StringVar(&cmd.OutputDir, "output", "", "Output directory for markdown files (required)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-quotes -output <dir> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export the saved library as markdown files, one per book,\n")
		fmt.Fprintf(os.Stderr, "grouped into a directory per shelf.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s export-quotes -output ~/notes/reading\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.OutputDir == "" {
		return fmt.Errorf("required flag -output not provided")
	}

	return nil
}

func (cmd *ExportQuotesCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	if _, err := os.Stat(absDBPath); os.IsNotExist(err) {
		return fmt.Errorf("database file not found: %s", absDBPath)
	}

	store, err := storage.Open(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	synchronizer := library.NewSynchronizer(store)
	books := synchronizer.LoadBooks()
	quotes := synchronizer.LoadQuotes()

	if len(books) == 0 {
		fmt.Println("The library is empty, nothing to export")
		return nil
	}

	absOutputDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for output: %w", err)
	}

	fmt.Printf("Exporting %d books with %d quotes to %s\n", len(books), len(quotes), absOutputDir)

	exporter := exporters.NewMarkdownExporter(absOutputDir)
	result, err := exporter.Export(books, quotes)
	if err != nil {
		return fmt.Errorf("failed to export to markdown: %w", err)
	}

	if cmd.Verbose {
		for _, book := range books {
			fmt.Printf("  -> %q (%s)\n", book.Title, book.Shelf)
		}
	}

	fmt.Printf("Exported %d books, %d quotes\n", result.BooksProcessed, result.QuotesProcessed)
	if result.BooksFailed > 0 {
		fmt.Printf("%d books failed to export\n", result.BooksFailed)
	}

	return nil
}
