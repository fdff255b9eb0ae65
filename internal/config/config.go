package config

import (
	"github.com/spf13/viper"
)

// DefaultDatabasePath is the default path for the slot database.
const DefaultDatabasePath = "./readwise.db"

type (
	Config struct {
		HTTP
		Global
		Database
		GoogleBooks
		Gemini
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	GoogleBooks struct {
		BaseURL string // Empty = real Google Books endpoint
	}
	Gemini struct {
		BaseURL string // Empty = real Gemini endpoint
		Model   string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("google_books_base_url", "")
	v.SetDefault("gemini_base_url", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		GoogleBooks: GoogleBooks{
			BaseURL: v.GetString("GOOGLE_BOOKS_BASE_URL"),
		},
		Gemini: Gemini{
			BaseURL: v.GetString("GEMINI_BASE_URL"),
			Model:   v.GetString("GEMINI_MODEL"),
		},
	}
}
