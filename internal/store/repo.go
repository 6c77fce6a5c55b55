package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key or record does not exist.
var ErrNotFound = errors.New("not found")

// KVRepo is a string key-value store with last-write-wins semantics.
// Configuration and cached question files share it, separated by key prefix.
type KVRepo interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Returns ErrNotFound if it did not exist.
	Delete(ctx context.Context, key string) error

	// Keys lists keys starting with prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact session match
	Action    string    // exact action match
}

// Session event actions.
const (
	ActionStart  = "start"
	ActionAnswer = "answer"
	ActionFinish = "finish"
)

// SessionEventData captures one step of a quiz session.
type SessionEventData struct {
	SessionID     string
	Action        string
	QuestionFile  string
	QuestionIndex int
	Chosen        string
	Correct       bool
	Score         int
	Total         int
}

// SessionEvent is a persisted SessionEventData with its ordering metadata.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// EventRepo provides append and query access to session events.
type EventRepo interface {
	// AppendSessionEvent records a session lifecycle or answer event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySessionEvents returns events in ascending sequence order.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	// RecentFinished returns the most recent finish events, newest first.
	RecentFinished(ctx context.Context, limit int) ([]SessionEvent, error)
}

// FileKeyPrefix namespaces cached question files in the kv table.
const FileKeyPrefix = "file_"

// FileKey returns the kv key under which the question file name is cached.
func FileKey(name string) string {
	return FileKeyPrefix + name
}
