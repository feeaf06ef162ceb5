// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime settings for arc-recall. Everything is sourced from
// the environment with sensible defaults, so the tool works out of the box
// in guest mode.
type Config struct {
	// APIBaseURL is the root of the remote flashcard service,
	// e.g. "https://recall.example.com".
	APIBaseURL string

	// DBPath is the location of the local device store (SQLite). Empty
	// means the default under the user's home directory.
	DBPath string

	// Storage selects the device store backend: "sqlite" (default) or
	// "memory" (no persistence).
	Storage string

	// HTTPTimeout bounds every remote call.
	HTTPTimeout time.Duration
}

// Load reads configuration from ARC_RECALL_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ARC_RECALL_API_URL", "http://localhost:8000")
	v.SetDefault("ARC_RECALL_DB_PATH", "")
	v.SetDefault("ARC_RECALL_STORAGE", "sqlite")
	v.SetDefault("ARC_RECALL_HTTP_TIMEOUT", "10s")

	return &Config{
		APIBaseURL:  v.GetString("ARC_RECALL_API_URL"),
		DBPath:      v.GetString("ARC_RECALL_DB_PATH"),
		Storage:     v.GetString("ARC_RECALL_STORAGE"),
		HTTPTimeout: v.GetDuration("ARC_RECALL_HTTP_TIMEOUT"),
	}, nil
}
