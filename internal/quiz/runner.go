package quiz

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/quizz/internal/config"
	"github.com/abhisek/quizz/internal/question"
	"github.com/abhisek/quizz/internal/questionset"
	"github.com/abhisek/quizz/internal/store"
)

// SetLoader loads a question set for a configuration.
type SetLoader interface {
	Load(ctx context.Context, cfg config.QuizConfig) (*questionset.Set, error)
}

// ConfigSource supplies the current quiz configuration.
type ConfigSource interface {
	Get(ctx context.Context) (config.QuizConfig, error)
}

// StaticConfig is a ConfigSource that always returns the same value.
type StaticConfig config.QuizConfig

func (c StaticConfig) Get(context.Context) (config.QuizConfig, error) {
	return config.QuizConfig(c), nil
}

// Runner creates runs from freshly loaded question sets.
type Runner struct {
	loader  SetLoader
	configs ConfigSource
	events  store.EventRepo
	logf    questionset.Logger

	mu sync.Mutex
}

// NewRunner returns a Runner. events may be nil to skip history recording.
func NewRunner(loader SetLoader, configs ConfigSource, events store.EventRepo) *Runner {
	return &Runner{
		loader:  loader,
		configs: configs,
		events:  events,
		logf:    questionset.StderrLogger,
	}
}

// SetLogger replaces the warning sink used for history write failures.
func (r *Runner) SetLogger(logf questionset.Logger) {
	r.logf = logf
}

// Restart reads the current configuration, loads a new question set and
// starts a new Run over it. Calls are serialized so overlapping restarts
// never interleave their loads.
func (r *Runner) Restart(ctx context.Context) (*Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, err := r.configs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	set, err := r.loader.Load(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sess := NewSession()
	if err := sess.Start(set.Records); err != nil {
		return nil, err
	}

	run := &Run{
		ID:      uuid.NewString(),
		Set:     set,
		Session: sess,
		events:  r.events,
		logf:    r.logf,
	}
	run.record(ctx, store.ActionStart, -1, "", false)
	return run, nil
}

// Run is a started Session bound to its question set. Answers and the
// finish are appended to the session history when an event repo is set.
type Run struct {
	ID      string
	Set     *questionset.Set
	Session *Session

	events store.EventRepo
	logf   questionset.Logger
}

// SelectAnswer locks an answer on the current question. See Session.SelectAnswer.
func (r *Run) SelectAnswer(ctx context.Context, id question.OptionID) (bool, error) {
	_, locked := r.Session.Selected()
	correct, err := r.Session.SelectAnswer(id)
	if err != nil || locked {
		return correct, err
	}
	r.record(ctx, store.ActionAnswer, r.Session.Index(), id, correct)
	return correct, nil
}

// Advance moves to the next question and records the finish after the last.
func (r *Run) Advance(ctx context.Context) error {
	if err := r.Session.Advance(); err != nil {
		return err
	}
	if r.Session.Phase() == PhaseFinished {
		r.record(ctx, store.ActionFinish, r.Session.Index(), "", false)
	}
	return nil
}

func (r *Run) record(ctx context.Context, action string, index int, chosen question.OptionID, correct bool) {
	if r.events == nil {
		return
	}
	err := r.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:     r.ID,
		Action:        action,
		QuestionFile:  r.Set.File,
		QuestionIndex: index,
		Chosen:        string(chosen),
		Correct:       correct,
		Score:         r.Session.Score(),
		Total:         r.Session.Len(),
	})
	if err != nil {
		r.logf("record %s event: %v", action, err)
	}
}
