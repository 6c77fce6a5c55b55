// Package config holds the quiz preferences persisted between runs and the
// process settings read from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizz/internal/questionset/builtin"
)

// StorageKey is the kv key under which QuizConfig is stored as JSON.
const StorageKey = "quizConfig"

var (
	ErrInvalidQuestionCount = errors.New("question count must be a number of at least 1")
	ErrEmptyQuestionFile    = errors.New("question file must not be empty")
)

// QuizConfig selects the question file and how questions are drawn from it.
type QuizConfig struct {
	QuestionFile     string `json:"questionFile" yaml:"questionFile"`
	QuestionCount    int    `json:"questionCount" yaml:"questionCount"`
	ShuffleQuestions bool   `json:"shuffleQuestions" yaml:"shuffleQuestions"`
}

// Default returns the configuration used when nothing is stored.
func Default() QuizConfig {
	return QuizConfig{
		QuestionFile:     builtin.DefaultFile,
		QuestionCount:    20,
		ShuffleQuestions: true,
	}
}

// Validate checks the invariants enforced when a configuration is saved.
func (c QuizConfig) Validate() error {
	if strings.TrimSpace(c.QuestionFile) == "" {
		return ErrEmptyQuestionFile
	}
	if c.QuestionCount < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuestionCount, c.QuestionCount)
	}
	return nil
}

// File returns the question file to load, falling back to the default file
// when none is set.
func (c QuizConfig) File() string {
	if f := strings.TrimSpace(c.QuestionFile); f != "" {
		return f
	}
	return builtin.DefaultFile
}

// Limit returns the number of questions to keep, or 0 for no limit.
// Counts below 1 are treated as no limit.
func (c QuizConfig) Limit() int {
	if c.QuestionCount < 1 {
		return 0
	}
	return c.QuestionCount
}

// Patch is a partial update. Nil fields keep their current value.
type Patch struct {
	QuestionFile     *string `json:"questionFile,omitempty"`
	QuestionCount    *int    `json:"questionCount,omitempty"`
	ShuffleQuestions *bool   `json:"shuffleQuestions,omitempty"`
}

// Apply returns c with p merged in. If the result is invalid, c is returned
// unchanged together with the validation error.
func (c QuizConfig) Apply(p Patch) (QuizConfig, error) {
	next := c
	if p.QuestionFile != nil {
		next.QuestionFile = strings.TrimSpace(*p.QuestionFile)
	}
	if p.QuestionCount != nil {
		next.QuestionCount = *p.QuestionCount
	}
	if p.ShuffleQuestions != nil {
		next.ShuffleQuestions = *p.ShuffleQuestions
	}
	if err := next.Validate(); err != nil {
		return c, err
	}
	return next, nil
}
