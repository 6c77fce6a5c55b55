package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// eventSequence stamps session events with a store-wide, gap-free order.
type eventSequence struct {
	mu sync.Mutex
	db *sql.DB
}

func newEventSequence(db *sql.DB) (*eventSequence, error) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS event_sequence (
			id       INTEGER PRIMARY KEY CHECK (id = 1),
			next_seq INTEGER NOT NULL
		)`,
		`INSERT OR IGNORE INTO event_sequence (id, next_seq) VALUES (1, 1)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return nil, fmt.Errorf("init event sequence: %w", err)
		}
	}
	return &eventSequence{db: db}, nil
}

// Next returns the next sequence number.
func (es *eventSequence) Next(ctx context.Context) (int64, error) {
	es.mu.Lock()
	defer es.mu.Unlock()

	var n int64
	row := es.db.QueryRowContext(ctx,
		`UPDATE event_sequence SET next_seq = next_seq + 1 WHERE id = 1 RETURNING next_seq - 1`)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("next event sequence: %w", err)
	}
	return n, nil
}
