package settingsstore

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryKV struct {
	slots   map[string]string
	failGet bool
}

func newMemoryKV() *memoryKV {
	return &memoryKV{slots: make(map[string]string)}
}

func (m *memoryKV) Get(key string) (string, bool, error) {
	if m.failGet {
		return "", false, errors.New("storage unavailable")
	}
	value, ok := m.slots[key]
	return value, ok, nil
}

func (m *memoryKV) Set(key, value string) error {
	m.slots[key] = value
	return nil
}

func (m *memoryKV) Delete(key string) error {
	delete(m.slots, key)
	return nil
}

func TestDarkMode(t *testing.T) {
	t.Run("defaults to false", func(t *testing.T) {
		store := New(newMemoryKV())
		assert.False(t, store.GetDarkMode())
	})

	t.Run("round trips", func(t *testing.T) {
		store := New(newMemoryKV())

		require.NoError(t, store.SetDarkMode(true))
		assert.True(t, store.GetDarkMode())

		require.NoError(t, store.SetDarkMode(false))
		assert.False(t, store.GetDarkMode())
	})

	t.Run("defaults to false on corrupt value", func(t *testing.T) {
		kv := newMemoryKV()
		kv.slots[KeyDarkMode] = "definitely"

		store := New(kv)
		assert.False(t, store.GetDarkMode())
	})

	t.Run("defaults to false on read error", func(t *testing.T) {
		kv := newMemoryKV()
		kv.failGet = true

		store := New(kv)
		assert.False(t, store.GetDarkMode())
	})
}

func TestGeminiAPIKey(t *testing.T) {
	t.Run("storage value takes priority over environment", func(t *testing.T) {
		t.Setenv(EnvGeminiAPIKey, "env-key")

		store := New(newMemoryKV())
		require.NoError(t, store.SetGeminiAPIKey("stored-key"))

		assert.Equal(t, "stored-key", store.GeminiAPIKey())
	})

	t.Run("falls back to environment", func(t *testing.T) {
		t.Setenv(EnvGeminiAPIKey, "env-key")

		store := New(newMemoryKV())
		assert.Equal(t, "env-key", store.GeminiAPIKey())
	})

	t.Run("empty when neither is set", func(t *testing.T) {
		original := os.Getenv(EnvGeminiAPIKey)
		os.Unsetenv(EnvGeminiAPIKey)
		defer os.Setenv(EnvGeminiAPIKey, original)

		store := New(newMemoryKV())
		assert.Empty(t, store.GeminiAPIKey())
	})

	t.Run("clear removes the stored credential", func(t *testing.T) {
		original := os.Getenv(EnvGeminiAPIKey)
		os.Unsetenv(EnvGeminiAPIKey)
		defer os.Setenv(EnvGeminiAPIKey, original)

		store := New(newMemoryKV())
		require.NoError(t, store.SetGeminiAPIKey("stored-key"))
		require.NoError(t, store.ClearGeminiAPIKey())

		assert.Empty(t, store.GeminiAPIKey())
	})
}
