package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sallahboussettah/readwise/internal/entities"
	"github.com/sallahboussettah/readwise/internal/library"
)

type QuotesController struct {
	library *library.Library
}

func NewQuotesController(lib *library.Library) *QuotesController {
	return &QuotesController{library: lib}
}

// GetAllQuotes lists every saved quote, most recent first.
func (controller *QuotesController) GetAllQuotes(c *gin.Context) {
	quotes := controller.library.Quotes()
	c.IndentedJSON(http.StatusOK, gin.H{"quotes": quotes, "count": len(quotes)})
}

// GetQuotesForBook lists the quotes referencing one book.
func (controller *QuotesController) GetQuotesForBook(c *gin.Context) {
	quotes := controller.library.QuotesForBook(c.Param("id"))
	c.IndentedJSON(http.StatusOK, gin.H{"quotes": quotes, "count": len(quotes)})
}

type addQuoteRequest struct {
	BookID    string   `json:"book_id"`
	Text      string   `json:"text"`
	Tags      []string `json:"tags"`
	DateAdded string   `json:"date_added"`
}

// AddQuote records a quote. The referenced book is not checked for
// existence; dangling quotes only disappear through cascade delete.
func (controller *QuotesController) AddQuote(c *gin.Context) {
	var req addQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "quote text is required"})
		return
	}

	quote := controller.library.AddQuote(entities.Quote{
		BookID:    req.BookID,
		Text:      req.Text,
		Tags:      req.Tags,
		DateAdded: req.DateAdded,
	})

	c.IndentedJSON(http.StatusCreated, quote)
}
