package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sallahboussettah/readwise/internal/catalog"
)

type SearchController struct {
	catalog catalog.Searcher
}

func NewSearchController(searcher catalog.Searcher) *SearchController {
	return &SearchController{catalog: searcher}
}

// Search queries the external catalog. Lookup failures degrade to an
// empty result set inside the client, so this always answers 200.
func (controller *SearchController) Search(c *gin.Context) {
	results := controller.catalog.Search(c.Request.Context(), c.Query("q"))
	c.IndentedJSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}
