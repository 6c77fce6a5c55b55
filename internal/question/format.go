package question

import (
	"errors"
	"fmt"
	"strings"
)

// Header is the canonical header line written at the top of question files.
const Header = "Pytanie,Odpowiedź A,Odpowiedź B,Odpowiedź C,Odpowiedź D,Poprawna odpowiedź"

// ErrQuoteInField is returned when a field holds a literal double quote,
// which the file format has no way to escape.
var ErrQuoteInField = errors.New("field contains a double quote")

// FormatLine renders rec as one line of a question file. A positive ordinal
// is written as a "N. " prefix on the prompt; ParseLine strips it again.
// Every text field is quoted so commas survive the round trip.
func FormatLine(rec Record, ordinal int) (string, error) {
	prompt := rec.Prompt
	if ordinal > 0 {
		prompt = fmt.Sprintf("%d. %s", ordinal, prompt)
	}

	parts := make([]string, 0, fieldCount)
	texts := []string{prompt}
	for _, o := range rec.Options {
		texts = append(texts, o.Text)
	}
	for _, t := range texts {
		if strings.Contains(t, `"`) {
			return "", fmt.Errorf("format %q: %w", t, ErrQuoteInField)
		}
		parts = append(parts, `"`+t+`"`)
	}
	answer := string(rec.CorrectOptionID)
	if strings.ContainsAny(answer, `",`) {
		return "", fmt.Errorf("format answer %q: %w", answer, ErrQuoteInField)
	}
	parts = append(parts, answer)

	return strings.Join(parts, ","), nil
}

// FormatFile renders records as a complete file with a header line and
// 1-based ordinals.
func FormatFile(records []Record) (string, error) {
	var b strings.Builder
	b.WriteString(Header)
	for i, rec := range records {
		line, err := FormatLine(rec, i+1)
		if err != nil {
			return "", fmt.Errorf("record %d: %w", i+1, err)
		}
		b.WriteByte('\n')
		b.WriteString(line)
	}
	return b.String(), nil
}
