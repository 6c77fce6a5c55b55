package questionset

import (
	"errors"
	"fmt"
)

// ErrNoQuestions indicates that no line of the resolved file parsed into a
// question.
var ErrNoQuestions = errors.New("no questions found")

// Tier names, in the order they are tried.
const (
	TierCache   = "cache"
	TierNetwork = "network"
	TierBuiltin = "builtin"
	TierDefault = "default"
)

// TierError records why a fallback tier could not supply a file.
type TierError struct {
	Tier     string
	Filename string
	Err      error
}

func (e *TierError) Error() string {
	return fmt.Sprintf("%s tier for %s: %v", e.Tier, e.Filename, e.Err)
}

func (e *TierError) Unwrap() error { return e.Err }
