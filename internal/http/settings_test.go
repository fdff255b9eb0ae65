package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sallahboussettah/readwise/internal/settingsstore"
)

type memoryKV struct {
	values map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}}
}

func (kv *memoryKV) Get(key string) (string, bool, error) {
	value, ok := kv.values[key]
	return value, ok, nil
}

func (kv *memoryKV) Set(key, value string) error {
	kv.values[key] = value
	return nil
}

func (kv *memoryKV) Delete(key string) error {
	delete(kv.values, key)
	return nil
}

func setupSettingsRouter(t *testing.T) (*gin.Engine, *settingsstore.SettingsStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	settings := settingsstore.New(newMemoryKV())
	controller := NewSettingsController(settings)

	router := gin.New()
	router.GET("/api/settings/dark-mode", controller.GetDarkMode)
	router.PUT("/api/settings/dark-mode", controller.SetDarkMode)
	router.GET("/api/settings/gemini-key", controller.GetGeminiKey)
	router.PUT("/api/settings/gemini-key", controller.SetGeminiKey)
	router.DELETE("/api/settings/gemini-key", controller.DeleteGeminiKey)
	return router, settings
}

func TestSettingsController_DarkMode(t *testing.T) {
	router, _ := setupSettingsRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/settings/dark-mode", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"dark_mode": false}`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("PUT", "/api/settings/dark-mode", bytes.NewBufferString(`{"dark_mode":true}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/settings/dark-mode", nil)
	router.ServeHTTP(w, req)
	assert.JSONEq(t, `{"dark_mode": true}`, w.Body.String())
}

func TestSettingsController_GeminiKey(t *testing.T) {
	t.Run("never echoes the stored key", func(t *testing.T) {
		router, settings := setupSettingsRouter(t)
		require.NoError(t, settings.SetGeminiAPIKey("super-secret"))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/settings/gemini-key", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "super-secret")

		var response struct {
			Configured bool `json:"configured"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Configured)
	})

	t.Run("stores and clears a key", func(t *testing.T) {
		router, settings := setupSettingsRouter(t)
		t.Setenv(settingsstore.EnvGeminiAPIKey, "")

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/settings/gemini-key", bytes.NewBufferString(`{"api_key":"abc123"}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "abc123", settings.GeminiAPIKey())

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("DELETE", "/api/settings/gemini-key", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, settings.GeminiAPIKey())
	})

	t.Run("rejects a blank key", func(t *testing.T) {
		router, _ := setupSettingsRouter(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/settings/gemini-key", bytes.NewBufferString(`{"api_key":"  "}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
