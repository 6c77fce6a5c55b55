package question

// OptionID identifies one of the four answer options.
type OptionID string

const (
	OptionA OptionID = "A"
	OptionB OptionID = "B"
	OptionC OptionID = "C"
	OptionD OptionID = "D"
)

// OptionIDs lists the option identifiers in display order.
var OptionIDs = [4]OptionID{OptionA, OptionB, OptionC, OptionD}

// Valid reports whether id is one of A-D.
func (id OptionID) Valid() bool {
	switch id {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Option is a single answer choice.
type Option struct {
	ID   OptionID `json:"id"`
	Text string   `json:"text"`
}

// Record is one parsed question. Records are immutable once built.
type Record struct {
	// Prompt is the question text with any leading "N. " ordinal removed.
	Prompt string `json:"prompt"`

	// Options always holds exactly four options with ids A, B, C, D in order.
	Options [4]Option `json:"options"`

	// CorrectOptionID is the sixth field taken verbatim. It is not checked
	// against the option set; an unknown letter can never be scored correct.
	CorrectOptionID OptionID `json:"correctOptionId"`
}

// Option returns the option with the given id, or false if id is not A-D.
func (r Record) Option(id OptionID) (Option, bool) {
	for _, o := range r.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// IsCorrect reports whether id matches the record's correct answer.
func (r Record) IsCorrect(id OptionID) bool {
	return id.Valid() && id == r.CorrectOptionID
}

// HasValidAnswer reports whether the correct answer names one of the options.
func (r Record) HasValidAnswer() bool {
	return r.CorrectOptionID.Valid()
}
