package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sallahboussettah/readwise/internal/catalog"
	"github.com/sallahboussettah/readwise/internal/config"
	http_controllers "github.com/sallahboussettah/readwise/internal/http"
	"github.com/sallahboussettah/readwise/internal/library"
	"github.com/sallahboussettah/readwise/internal/settingsstore"
	"github.com/sallahboussettah/readwise/internal/storage"
	"github.com/sallahboussettah/readwise/internal/suggestions"
)

// Serve runs the HTTP server until an interrupt arrives, then shuts it
// down within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the whole application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Readwise v%s", version)

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// The library starts from whatever the last run persisted and
	// mirrors every mutation back through the synchronizer.
	synchronizer := library.NewSynchronizer(store)
	lib := library.New(synchronizer.LoadBooks(), synchronizer.LoadQuotes(), synchronizer)
	log.Printf("Loaded %d books and %d quotes from %s", len(lib.Books()), len(lib.Quotes()), cfg.Database.Path)

	settings := settingsstore.New(store)
	if settings.GeminiAPIKey() == "" {
		log.Printf("WARNING: Gemini API key is not set. Suggestions will be disabled until one is configured via the settings endpoint or the '%s' environment variable.", settingsstore.EnvGeminiAPIKey)
	}

	searcher := catalog.NewClient(cfg.GoogleBooks.BaseURL)
	generator := suggestions.NewGeminiClient(cfg.Gemini.BaseURL, cfg.Gemini.Model)
	suggestionService := suggestions.NewService(generator, searcher, settings)

	routerCfg := http_controllers.RouterConfig{
		Library:     lib,
		Catalog:     searcher,
		Suggestions: suggestionService,
		Settings:    settings,
		Storage:     store,
		Version:     version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg)
}
