// Package settingsstore provides typed access to user settings kept in
// the key-value slots: the dark-mode display preference and the Gemini
// API key.
package settingsstore

import (
	"encoding/json"
	"log"
	"os"

	"github.com/sallahboussettah/readwise/internal/storage"
)

// Storage slot keys.
const (
	KeyDarkMode     = "readwise_dark_mode"
	KeyGeminiAPIKey = "readwise_gemini_api_key"
)

// EnvGeminiAPIKey is the environment fallback for the credential.
// Priority: storage > environment > empty.
const EnvGeminiAPIKey = "GEMINI_API_KEY"

type SettingsStore struct {
	kv storage.KV
}

func New(kv storage.KV) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// GetDarkMode returns the display preference, defaulting to false when
// the slot is absent or unparseable.
func (s *SettingsStore) GetDarkMode() bool {
	raw, ok, err := s.kv.Get(KeyDarkMode)
	if err != nil {
		log.Printf("Error reading dark mode setting: %v", err)
		return false
	}
	if !ok {
		return false
	}

	var dark bool
	if err := json.Unmarshal([]byte(raw), &dark); err != nil {
		log.Printf("Error parsing dark mode setting: %v", err)
		return false
	}
	return dark
}

func (s *SettingsStore) SetDarkMode(dark bool) error {
	raw, _ := json.Marshal(dark)
	return s.kv.Set(KeyDarkMode, string(raw))
}

// GeminiAPIKey returns the generative-service credential. The stored
// value wins over the environment variable.
func (s *SettingsStore) GeminiAPIKey() string {
	raw, ok, err := s.kv.Get(KeyGeminiAPIKey)
	if err != nil {
		log.Printf("Error reading API key setting: %v", err)
	} else if ok && raw != "" {
		return raw
	}

	return os.Getenv(EnvGeminiAPIKey)
}

func (s *SettingsStore) SetGeminiAPIKey(key string) error {
	return s.kv.Set(KeyGeminiAPIKey, key)
}

// ClearGeminiAPIKey removes the stored credential, which disables AI
// suggestions unless the environment provides one.
func (s *SettingsStore) ClearGeminiAPIKey() error {
	return s.kv.Delete(KeyGeminiAPIKey)
}
