package suggestions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sallahboussettah/readwise/internal/entities"
)

type fakeGenerator struct {
	calls    int
	response string
	err      error
	prompt   string
}

func (g *fakeGenerator) GenerateJSON(ctx context.Context, apiKey, prompt string, schema map[string]any) (string, error) {
	g.calls++
	g.prompt = prompt
	return g.response, g.err
}

type fakeSearcher struct {
	calls   int
	queries []string
	results map[string][]entities.Book
}

func (s *fakeSearcher) Search(ctx context.Context, query string) []entities.Book {
	s.calls++
	s.queries = append(s.queries, query)
	return s.results[query]
}

type fakeKeys struct{ key string }

func (k fakeKeys) GeminiAPIKey() string { return k.key }

func finishedShelf() []entities.Book {
	return []entities.Book{
		{ID: "b1", Title: "Dune", Authors: []string{"Frank Herbert"}, Shelf: entities.ShelfFinished},
		{ID: "b2", Title: "Foundation", Authors: []string{"Isaac Asimov"}, Shelf: entities.ShelfFinished},
	}
}

func TestSuggest_NoFinishedBooks(t *testing.T) {
	generator := &fakeGenerator{}
	searcher := &fakeSearcher{}
	service := NewService(generator, searcher, fakeKeys{key: "k"})

	suggestions, err := service.Suggest(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, suggestions)
	assert.Zero(t, generator.calls, "must not call the generative service")
	assert.Zero(t, searcher.calls, "must not call the catalog")

	status, _ := service.Status()
	assert.Equal(t, StatusEmpty, status)
}

func TestSuggest_MissingAPIKey(t *testing.T) {
	generator := &fakeGenerator{}
	service := NewService(generator, &fakeSearcher{}, fakeKeys{})

	_, err := service.Suggest(context.Background(), finishedShelf())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	assert.Zero(t, generator.calls)

	status, message := service.Status()
	assert.Equal(t, StatusError, status)
	assert.NotEmpty(t, message)
}

func TestSuggest_ResolvesAgainstCatalog(t *testing.T) {
	generator := &fakeGenerator{
		response: `[
			{"title":"Hyperion","author":"Dan Simmons","reason":"Epic scope."},
			{"title":"Obscure Tome","author":"Nobody","reason":"Deep cut."}
		]`,
	}
	searcher := &fakeSearcher{
		results: map[string][]entities.Book{
			"Hyperion Dan Simmons": {
				{ID: "vol-hyp", Title: "Hyperion", Authors: []string{"Dan Simmons"}, Shelf: entities.ShelfWantToRead},
				{ID: "vol-other", Title: "Hyperion Omnibus"},
			},
		},
	}
	service := NewService(generator, searcher, fakeKeys{key: "k"})

	suggestions, err := service.Suggest(context.Background(), finishedShelf())
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// Prompt enumerates the finished titles and authors.
	assert.Contains(t, generator.prompt, `"Dune" by Frank Herbert`)
	assert.Contains(t, generator.prompt, `"Foundation" by Isaac Asimov`)

	// First match wins; a miss keeps the text but no resolved book.
	require.NotNil(t, suggestions[0].Book)
	assert.Equal(t, "vol-hyp", suggestions[0].Book.ID)
	assert.Nil(t, suggestions[1].Book)
	assert.Equal(t, "Deep cut.", suggestions[1].Reason)

	// One catalog lookup per suggestion, query is "<title> <author>".
	assert.Equal(t, 2, searcher.calls)
	assert.Contains(t, searcher.queries, "Hyperion Dan Simmons")
	assert.Contains(t, searcher.queries, "Obscure Tome Nobody")

	status, _ := service.Status()
	assert.Equal(t, StatusReady, status)
}

func TestSuggest_GeneratorFailureIsRetryable(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("upstream down")}
	service := NewService(generator, &fakeSearcher{}, fakeKeys{key: "k"})

	_, err := service.Suggest(context.Background(), finishedShelf())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissingAPIKey))

	status, _ := service.Status()
	assert.Equal(t, StatusError, status)

	// A retry re-enters the lifecycle and can succeed.
	generator.err = nil
	generator.response = `[{"title":"T","author":"A","reason":"R"}]`
	suggestions, err := service.Suggest(context.Background(), finishedShelf())
	require.NoError(t, err)
	assert.Len(t, suggestions, 1)
}

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		count   int
		wantErr bool
	}{
		{"valid array", `[{"title":"T","author":"A","reason":"R"}]`, 1, false},
		{"empty array", `[]`, 0, false},
		{"not json", `the model rambled instead`, 0, true},
		{"wrong shape", `{"title":"T"}`, 0, true},
		{"missing field", `[{"title":"T","author":"A"}]`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseSuggestions(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", parsed)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(parsed) != tt.count {
				t.Errorf("expected %d suggestions, got %d", tt.count, len(parsed))
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt([]entities.Book{
		{Title: "Dune", Authors: []string{"Frank Herbert", "Brian Herbert"}},
	})

	if !strings.Contains(prompt, `"Dune" by Frank Herbert, Brian Herbert`) {
		t.Errorf("prompt missing book listing: %q", prompt)
	}
	if !strings.Contains(prompt, "recommend 2 new books") {
		t.Errorf("prompt missing recommendation count: %q", prompt)
	}
}
