package http

import (
	"github.com/sallahboussettah/readwise/internal/catalog"
	"github.com/sallahboussettah/readwise/internal/library"
	"github.com/sallahboussettah/readwise/internal/settingsstore"
	"github.com/sallahboussettah/readwise/internal/storage"
	"github.com/sallahboussettah/readwise/internal/suggestions"
)

// RouterConfig contains all dependencies needed to create the HTTP
// router, replacing a long parameter list on NewRouter.
type RouterConfig struct {
	Library     *library.Library
	Catalog     catalog.Searcher
	Suggestions *suggestions.Service
	Settings    *settingsstore.SettingsStore
	Storage     *storage.Store
	Version     string
}
