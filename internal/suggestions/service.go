package suggestions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sallahboussettah/readwise/internal/catalog"
	"github.com/sallahboussettah/readwise/internal/entities"
)

// ErrMissingAPIKey signals a configuration problem rather than a
// transient failure: retrying without supplying a key cannot succeed.
var ErrMissingAPIKey = errors.New("gemini API key is not configured")

// suggestionCount is how many recommendations each request asks for.
const suggestionCount = 2

// Status tracks where the latest invocation is in its lifecycle:
// idle -> loading -> (ready | empty | error). A retry re-enters loading.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

// Generator is the generative backend contract, satisfied by GeminiClient.
type Generator interface {
	GenerateJSON(ctx context.Context, apiKey, prompt string, schema map[string]any) (string, error)
}

// KeyProvider supplies the generative-service credential at call time.
type KeyProvider interface {
	GeminiAPIKey() string
}

// Service turns the finished shelf into resolved suggestions.
type Service struct {
	generator Generator
	searcher  catalog.Searcher
	keys      KeyProvider

	mu        sync.Mutex
	status    Status
	lastError string
}

func NewService(generator Generator, searcher catalog.Searcher, keys KeyProvider) *Service {
	return &Service{
		generator: generator,
		searcher:  searcher,
		keys:      keys,
		status:    StatusIdle,
	}
}

// Status returns the lifecycle state of the latest invocation along
// with the error message when that state is StatusError.
func (s *Service) Status() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastError
}

// Suggest requests recommendations based on the finished books and
// resolves each one against the catalog. With zero finished books it
// issues no network call and yields no suggestions. A missing API key
// fails with ErrMissingAPIKey; transport or parse problems fail with an
// ordinary error the caller may retry.
func (s *Service) Suggest(ctx context.Context, finished []entities.Book) ([]entities.Suggestion, error) {
	if len(finished) == 0 {
		s.setStatus(StatusEmpty, "")
		return []entities.Suggestion{}, nil
	}

	apiKey := s.keys.GeminiAPIKey()
	if apiKey == "" {
		s.setStatus(StatusError, ErrMissingAPIKey.Error())
		return nil, ErrMissingAPIKey
	}

	s.setStatus(StatusLoading, "")

	raw, err := s.generator.GenerateJSON(ctx, apiKey, buildPrompt(finished), responseSchema())
	if err != nil {
		err = fmt.Errorf("fetch suggestions: %w", err)
		s.setStatus(StatusError, err.Error())
		return nil, err
	}

	parsed, err := parseSuggestions(raw)
	if err != nil {
		s.setStatus(StatusError, err.Error())
		return nil, err
	}

	resolved := s.resolve(ctx, parsed)

	if len(resolved) == 0 {
		s.setStatus(StatusEmpty, "")
	} else {
		s.setStatus(StatusReady, "")
	}
	return resolved, nil
}

// resolve fans out one catalog search per suggestion and joins before
// returning. Each lookup only fills its own slot, so completion order
// does not matter; a miss leaves Book nil but keeps the text.
func (s *Service) resolve(ctx context.Context, parsed []entities.Suggestion) []entities.Suggestion {
	resolved := make([]entities.Suggestion, len(parsed))
	g, ctx := errgroup.WithContext(ctx)
	for i, suggestion := range parsed {
		i, suggestion := i, suggestion
		g.Go(func() error {
			matches := s.searcher.Search(ctx, suggestion.Title+" "+suggestion.Author)
			if len(matches) > 0 {
				suggestion.Book = &matches[0]
			}
			resolved[i] = suggestion
			return nil
		})
	}
	_ = g.Wait() // lookups never fail, they degrade to no match
	return resolved
}

func (s *Service) setStatus(status Status, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.lastError = message
}

func buildPrompt(finished []entities.Book) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Based on the following list of books I've finished and enjoyed, "+
		"please recommend %d new books I can find on Google Books. "+
		"For each recommendation, provide a title, author, and a short, "+
		"compelling reason why I would like it.\n\nFinished books:\n", suggestionCount)

	for _, book := range finished {
		fmt.Fprintf(&sb, "- %q by %s\n", book.Title, strings.Join(book.Authors, ", "))
	}

	return sb.String()
}

// responseSchema constrains the model to an array of
// {title, author, reason} objects.
func responseSchema() map[string]any {
	return map[string]any{
		"type": "ARRAY",
		"items": map[string]any{
			"type": "OBJECT",
			"properties": map[string]any{
				"title":  map[string]any{"type": "STRING", "description": "The title of the suggested book."},
				"author": map[string]any{"type": "STRING", "description": "The author of the suggested book."},
				"reason": map[string]any{"type": "STRING", "description": "Why the user might like this book based on their reading history."},
			},
			"required": []string{"title", "author", "reason"},
		},
	}
}

// parseSuggestions treats the model output as untrusted data: anything
// that is not the requested array shape is a parse error the user can
// retry, never a crash.
func parseSuggestions(raw string) ([]entities.Suggestion, error) {
	var parsed []entities.Suggestion
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}

	suggestions := make([]entities.Suggestion, 0, len(parsed))
	for _, s := range parsed {
		if s.Title == "" || s.Author == "" || s.Reason == "" {
			return nil, fmt.Errorf("parse suggestions: entry missing required fields")
		}
		suggestions = append(suggestions, entities.Suggestion{
			Title:  s.Title,
			Author: s.Author,
			Reason: s.Reason,
		})
	}
	return suggestions, nil
}
