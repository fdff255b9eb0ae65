package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sallahboussettah/readwise/internal/entities"
	"github.com/sallahboussettah/readwise/internal/library"
)

type BooksController struct {
	library *library.Library
}

func NewBooksController(lib *library.Library) *BooksController {
	return &BooksController{library: lib}
}

// GetBooks lists the library, optionally filtered by ?shelf=.
func (controller *BooksController) GetBooks(c *gin.Context) {
	var books []entities.Book

	if shelfParam := c.Query("shelf"); shelfParam != "" {
		shelf, err := entities.ParseShelf(shelfParam)
		if err != nil {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		books = controller.library.BooksByShelf(shelf)
	} else {
		books = controller.library.Books()
	}

	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// AddBook inserts a book into the library. Duplicates are reported as a
// conflict so the client can show "already in library".
func (controller *BooksController) AddBook(c *gin.Context) {
	var book entities.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if book.ID == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "book id is required"})
		return
	}

	if !controller.library.AddBook(book) {
		c.IndentedJSON(http.StatusConflict, gin.H{"error": "book is already in the library"})
		return
	}

	added, _ := controller.library.BookByID(book.ID)
	c.IndentedJSON(http.StatusCreated, added)
}

// DeleteBook removes a book and its quotes. Deleting an absent book is
// a no-op, matching the store semantics.
func (controller *BooksController) DeleteBook(c *gin.Context) {
	controller.library.DeleteBook(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type updateShelfRequest struct {
	Shelf string `json:"shelf"`
}

// UpdateShelf moves a book between shelves.
func (controller *BooksController) UpdateShelf(c *gin.Context) {
	var req updateShelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shelf, err := entities.ParseShelf(req.Shelf)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if _, found := controller.library.BookByID(id); !found {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	controller.library.UpdateShelf(id, shelf)
	updated, _ := controller.library.BookByID(id)
	c.IndentedJSON(http.StatusOK, updated)
}
