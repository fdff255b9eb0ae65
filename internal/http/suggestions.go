package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sallahboussettah/readwise/internal/entities"
	"github.com/sallahboussettah/readwise/internal/library"
	"github.com/sallahboussettah/readwise/internal/suggestions"
)

type SuggestionsController struct {
	service *suggestions.Service
	library *library.Library
}

func NewSuggestionsController(service *suggestions.Service, lib *library.Library) *SuggestionsController {
	return &SuggestionsController{service: service, library: lib}
}

// Generate produces suggestions from the finished shelf. A missing API
// key is a configuration failure the user must fix in settings; any
// other failure is retryable by calling this endpoint again.
func (controller *SuggestionsController) Generate(c *gin.Context) {
	finished := controller.library.BooksByShelf(entities.ShelfFinished)

	resolved, err := controller.service.Suggest(c.Request.Context(), finished)
	if err != nil {
		if errors.Is(err, suggestions.ErrMissingAPIKey) {
			c.IndentedJSON(http.StatusPreconditionFailed, gin.H{
				"error": "Gemini API key is not configured. Add one under settings to enable suggestions.",
			})
			return
		}
		c.IndentedJSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"suggestions": resolved, "count": len(resolved)})
}

// Status reports the lifecycle state of the latest invocation.
func (controller *SuggestionsController) Status(c *gin.Context) {
	status, message := controller.service.Status()
	response := gin.H{"status": status}
	if message != "" {
		response["error"] = message
	}
	c.IndentedJSON(http.StatusOK, response)
}
