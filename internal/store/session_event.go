package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "action",
	"question_file", "question_index", "chosen", "correct", "score", "total",
}

// eventRepo implements EventRepo on the session_events table.
type eventRepo struct {
	drv *entsql.Driver
	seq *eventSequence
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().
		Insert("session_events").
		Columns(sessionEventColumns[1:]...).
		Values(
			seq, time.Now().UnixMilli(), data.SessionID, data.Action,
			data.QuestionFile, data.QuestionIndex, data.Chosen, data.Correct,
			data.Score, data.Total,
		).
		Query()

	if _, err := exec(ctx, r.drv, query, args); err != nil {
		return fmt.Errorf("create session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	sel := builder().
		Select(sessionEventColumns...).
		From(entsql.Table("session_events")).
		OrderBy(entsql.Asc("sequence"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.SessionID != "" {
		preds = append(preds, entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Action != "" {
		preds = append(preds, entsql.EQ("action", opts.Action))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	return r.scan(ctx, query, args)
}

func (r *eventRepo) RecentFinished(ctx context.Context, limit int) ([]SessionEvent, error) {
	sel := builder().
		Select(sessionEventColumns...).
		From(entsql.Table("session_events")).
		Where(entsql.EQ("action", ActionFinish)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}

	query, args := sel.Query()
	return r.scan(ctx, query, args)
}

func (r *eventRepo) scan(ctx context.Context, query string, args []any) ([]SessionEvent, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var (
			e  SessionEvent
			ts int64
		)
		err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.SessionID, &e.Action,
			&e.QuestionFile, &e.QuestionIndex, &e.Chosen, &e.Correct,
			&e.Score, &e.Total,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}
