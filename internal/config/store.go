package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/quizz/internal/store"
)

// Store persists QuizConfig in a kv repository.
type Store struct {
	kv   store.KVRepo
	logf func(format string, args ...any)
}

// NewStore returns a Store over kv. logf receives warnings about stored
// values that could not be used; nil drops them.
func NewStore(kv store.KVRepo, logf func(format string, args ...any)) *Store {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Store{kv: kv, logf: logf}
}

// Get returns the stored configuration merged over the defaults. A missing
// or unreadable value yields the defaults.
func (s *Store) Get(ctx context.Context) (QuizConfig, error) {
	raw, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}

	if err := validateJSON([]byte(raw)); err != nil {
		s.logf("stored config ignored: %v", err)
		return Default(), nil
	}

	cfg := Default()
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		s.logf("stored config ignored: %v", err)
		return Default(), nil
	}
	return cfg, nil
}

// Save validates cfg and writes it.
func (s *Store) Save(ctx context.Context, cfg QuizConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := validateJSON(raw); err != nil {
		return err
	}
	if err := s.kv.Put(ctx, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Update merges p into the current configuration and saves the result.
// An invalid patch is refused as a whole and the current configuration is
// returned with the error.
func (s *Store) Update(ctx context.Context, p Patch) (QuizConfig, error) {
	cur, err := s.Get(ctx)
	if err != nil {
		return cur, err
	}
	next, err := cur.Apply(p)
	if err != nil {
		return cur, err
	}
	if err := s.Save(ctx, next); err != nil {
		return cur, err
	}
	return next, nil
}

// Reset restores and saves the defaults.
func (s *Store) Reset(ctx context.Context) (QuizConfig, error) {
	cfg := Default()
	if err := s.Save(ctx, cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
