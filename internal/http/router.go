package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Storage, cfg.Version)
	books := NewBooksController(cfg.Library)
	quotes := NewQuotesController(cfg.Library)
	search := NewSearchController(cfg.Catalog)
	suggestionsController := NewSuggestionsController(cfg.Suggestions, cfg.Library)
	settings := NewSettingsController(cfg.Settings)

	router.GET("/health", health.Status)

	api := router.Group("/api")
	{
		api.GET("/books", books.GetBooks)
		api.POST("/books", books.AddBook)
		api.DELETE("/books/:id", books.DeleteBook)
		api.PUT("/books/:id/shelf", books.UpdateShelf)

		api.GET("/books/:id/quotes", quotes.GetQuotesForBook)
		api.GET("/quotes", quotes.GetAllQuotes)
		api.POST("/quotes", quotes.AddQuote)

		api.GET("/search", search.Search)

		api.POST("/suggestions", suggestionsController.Generate)
		api.GET("/suggestions/status", suggestionsController.Status)

		api.GET("/settings/dark-mode", settings.GetDarkMode)
		api.PUT("/settings/dark-mode", settings.SetDarkMode)
		api.GET("/settings/gemini-key", settings.GetGeminiKey)
		api.PUT("/settings/gemini-key", settings.SetGeminiKey)
		api.DELETE("/settings/gemini-key", settings.DeleteGeminiKey)
	}

	return router
}
