package config

import (
	"fmt"
	"os"
	"time"
)

// Settings holds process-level options that are not part of the stored
// quiz preferences.
type Settings struct {
	// SourceURL is the base URL question files are fetched from when they
	// are not cached. Empty disables the network tier.
	SourceURL string

	// FetchTimeout bounds a single network fetch. Default: 5s.
	FetchTimeout time.Duration

	// HTTPAddr is the listen address of the serve command. Default: "127.0.0.1:8080"; set
	// an explicit host such as ":8080" to listen on every interface.
	HTTPAddr string
}

// DefaultSettings returns Settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		FetchTimeout: 5 * time.Second,
		HTTPAddr:     "127.0.0.1:8080",
	}
}

// SettingsFromEnv builds Settings from environment variables, falling back
// to defaults for unset or unparsable values.
func SettingsFromEnv() Settings {
	s := DefaultSettings()

	if u := os.Getenv("QUIZZ_SOURCE_URL"); u != "" {
		s.SourceURL = u
	}
	if t := os.Getenv("QUIZZ_FETCH_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil || d <= 0 {
			fmt.Fprintf(os.Stderr, "warning: ignoring QUIZZ_FETCH_TIMEOUT=%q\n", t)
		} else {
			s.FetchTimeout = d
		}
	}
	if a := os.Getenv("QUIZZ_HTTP_ADDR"); a != "" {
		s.HTTPAddr = a
	}

	return s
}
