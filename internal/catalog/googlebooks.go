// Package catalog translates free-text queries into normalized library
// entries using the Google Books volumes API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sallahboussettah/readwise/internal/entities"
)

const (
	defaultBaseURL = "https://www.googleapis.com/books/v1/volumes"
	maxResults     = 20

	// Defaults substituted for fields the catalog left out.
	placeholderTitle       = "Untitled"
	placeholderAuthor      = "Unknown Author"
	placeholderCoverURL    = "https://via.placeholder.com/300x450.png?text=No+Cover"
	placeholderDescription = "No description available."
)

// Searcher is the lookup contract the suggestion resolver depends on.
type Searcher interface {
	Search(ctx context.Context, query string) []entities.Book
}

// Client queries the Google Books catalog.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a catalog client. baseURL overrides the Google
// Books endpoint; pass "" for the real service.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Search returns up to 20 normalized books for the query. Search never
// fails: an empty query, a transport error, or a non-success status all
// degrade to an empty result so callers render "no results" instead of
// crashing.
func (c *Client) Search(ctx context.Context, query string) []entities.Book {
	if strings.TrimSpace(query) == "" {
		return []entities.Book{}
	}

	searchURL := fmt.Sprintf("%s?q=%s&maxResults=%d", c.baseURL, url.QueryEscape(query), maxResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		log.Printf("Error building catalog request: %v", err)
		return []entities.Book{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Error searching catalog: %v", err)
		return []entities.Book{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Catalog search returned status %d", resp.StatusCode)
		return []entities.Book{}
	}

	var result volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Error decoding catalog response: %v", err)
		return []entities.Book{}
	}

	books := make([]entities.Book, 0, len(result.Items))
	for _, item := range result.Items {
		books = append(books, mapVolume(item))
	}
	return books
}

// mapVolume converts one raw catalog item into a Book, substituting
// defaults for every missing field so nothing unchecked leaks past this
// boundary.
func mapVolume(item volumeItem) entities.Book {
	book := entities.Book{
		ID:          item.ID,
		Title:       item.VolumeInfo.Title,
		Authors:     item.VolumeInfo.Authors,
		CoverURL:    item.VolumeInfo.ImageLinks.Thumbnail,
		Description: item.VolumeInfo.Description,
		PageCount:   item.VolumeInfo.PageCount,
		Shelf:       entities.ShelfWantToRead,
	}

	if book.ID == "" {
		book.ID = localFallbackID()
	}
	if book.Title == "" {
		book.Title = placeholderTitle
	}
	if len(book.Authors) == 0 {
		book.Authors = []string{placeholderAuthor}
	}
	if book.CoverURL == "" {
		book.CoverURL = placeholderCoverURL
	}
	if book.Description == "" {
		book.Description = placeholderDescription
	}

	// The catalog serves thumbnails over plain http.
	if strings.HasPrefix(book.CoverURL, "http:") {
		book.CoverURL = "https:" + strings.TrimPrefix(book.CoverURL, "http:")
	}

	return book
}

// localFallbackID substitutes a unique id for catalog items that carry
// none, preserving the id-uniqueness invariant of the library.
func localFallbackID() string {
	return fmt.Sprintf("local-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Google Books API response types (internal)

type volumesResponse struct {
	Items []volumeItem `json:"items"`
}

type volumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title       string     `json:"title"`
	Authors     []string   `json:"authors"`
	Description string     `json:"description"`
	PageCount   int        `json:"pageCount"`
	ImageLinks  imageLinks `json:"imageLinks"`
}

type imageLinks struct {
	Thumbnail string `json:"thumbnail"`
}
