// Package quiz drives a loaded question set through a single quiz run.
package quiz

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/quizz/internal/question"
)

var (
	ErrEmptyQuestionSet = errors.New("empty question set")
	ErrNotInProgress    = errors.New("quiz is not in progress")
	ErrNoAnswer         = errors.New("no answer given")
)

// Phase is the lifecycle state of a Session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhaseInProgress:
		return "in progress"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Session is the state machine of one quiz run. A restart always builds a
// new Session; a finished Session never goes back to PhaseInProgress.
type Session struct {
	questions []question.Record
	current   int
	score     int
	selected  question.OptionID
	phase     Phase
}

// NewSession returns a session in PhaseNotStarted.
func NewSession() *Session {
	return &Session{}
}

// Start begins the run over questions. The slice is copied.
func (s *Session) Start(questions []question.Record) error {
	if len(questions) == 0 {
		return ErrEmptyQuestionSet
	}
	if s.phase != PhaseNotStarted {
		return fmt.Errorf("start: session already %s", s.phase)
	}
	s.questions = append([]question.Record(nil), questions...)
	s.current = 0
	s.score = 0
	s.selected = ""
	s.phase = PhaseInProgress
	return nil
}

// SelectAnswer locks id as the answer to the current question and scores
// it. Once an answer is locked further calls change nothing. The returned
// bool reports whether the locked answer is correct. An empty id is
// refused with ErrNoAnswer and locks nothing.
func (s *Session) SelectAnswer(id question.OptionID) (bool, error) {
	if s.phase != PhaseInProgress {
		return false, ErrNotInProgress
	}
	if id == "" {
		return false, ErrNoAnswer
	}
	q := s.questions[s.current]
	if s.selected != "" {
		return q.IsCorrect(s.selected), nil
	}

	s.selected = id
	correct := q.IsCorrect(id)
	if correct {
		s.score++
	}
	return correct, nil
}

// Advance moves to the next question, or finishes the run after the last.
func (s *Session) Advance() error {
	if s.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if s.current == len(s.questions)-1 {
		s.phase = PhaseFinished
		return nil
	}
	s.current++
	s.selected = ""
	return nil
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Current returns the question being asked. It is false before Start.
func (s *Session) Current() (question.Record, bool) {
	if s.phase == PhaseNotStarted {
		return question.Record{}, false
	}
	return s.questions[s.current], true
}

// Index returns the 0-based position of the current question.
func (s *Session) Index() int { return s.current }

// Len returns the number of questions in the run.
func (s *Session) Len() int { return len(s.questions) }

// Score returns the number of correctly answered questions.
func (s *Session) Score() int { return s.score }

// Selected returns the locked answer for the current question, if any.
func (s *Session) Selected() (question.OptionID, bool) {
	return s.selected, s.selected != ""
}

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool {
	return s.phase != PhaseNotStarted && s.current == len(s.questions)-1
}

// Progress is the fraction of questions already left behind, in [0, 1].
func (s *Session) Progress() float64 {
	switch {
	case len(s.questions) == 0:
		return 0
	case s.phase == PhaseFinished:
		return 1
	default:
		return float64(s.current) / float64(len(s.questions))
	}
}

// Percentage returns the score as a rounded percentage of the question count.
func (s *Session) Percentage() int {
	return Percentage(s.score, len(s.questions))
}

// Band classifies the current percentage.
func (s *Session) Band() Band {
	return BandFor(s.Percentage())
}

// Percentage returns round(100*score/total), or 0 when total is 0.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(total)))
}

// Band is a coarse result rating used to colour the results screen.
type Band int

const (
	BandLow    Band = iota // below 50%
	BandMedium             // 50% up to 75%
	BandHigh               // 75% and above
)

// BandFor maps a percentage to its Band.
func BandFor(pct int) Band {
	switch {
	case pct < 50:
		return BandLow
	case pct < 75:
		return BandMedium
	default:
		return BandHigh
	}
}

func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMedium:
		return "medium"
	default:
		return "high"
	}
}
