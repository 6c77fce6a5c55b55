package question

import (
	"fmt"
	"regexp"
	"strings"
)

// HeaderPrefix marks the optional header line of a question file.
const HeaderPrefix = "Pytanie,Odpowiedź"

// fieldCount is the number of fields a record line must yield.
const fieldCount = 6

// ordinalPrefix matches a leading "12. " style question number.
var ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)

// Status classifies the outcome of parsing a single line.
type Status int

const (
	StatusOK        Status = iota // A record was produced
	StatusSkipped                 // Blank line or header
	StatusMalformed               // Structurally invalid line
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the tagged outcome of ParseLine. Record is only meaningful
// when Status is StatusOK.
type Result struct {
	Record Record
	Status Status
	Reason string
}

// OK reports whether the line produced a record.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// ParseLine turns one line of a question file into a Record.
//
// Fields are scanned left to right. A field is either a double-quoted run
// (commas allowed inside, no escape for a literal quote) or an unquoted run
// up to the next comma. The first six fields are prompt, options A-D and
// the correct answer letter; anything after the sixth is ignored.
func ParseLine(line string) Result {
	if strings.TrimSpace(line) == "" {
		return Result{Status: StatusSkipped, Reason: "blank line"}
	}
	if strings.HasPrefix(line, HeaderPrefix) {
		return Result{Status: StatusSkipped, Reason: "header line"}
	}

	fields := scanFields(line, fieldCount)
	if len(fields) < fieldCount {
		return Result{
			Status: StatusMalformed,
			Reason: fmt.Sprintf("found %d fields, need %d", len(fields), fieldCount),
		}
	}

	var rec Record
	rec.Prompt = ordinalPrefix.ReplaceAllString(fields[0], "")
	for i, id := range OptionIDs {
		rec.Options[i] = Option{ID: id, Text: fields[i+1]}
	}
	rec.CorrectOptionID = OptionID(fields[5])

	return Result{Record: rec, Status: StatusOK}
}

// scanFields extracts up to max fields from line.
//
// A quoted field is `"` followed by any non-quote characters and a closing
// `"`. An unquoted field is a non-empty run of non-comma characters. Commas
// between fields are separators only, so empty fields (",,") yield nothing.
// An opening quote without a closing quote is read as part of an unquoted run.
func scanFields(line string, max int) []string {
	fields := make([]string, 0, max)
	i := 0
	for i < len(line) && len(fields) < max {
		if line[i] == '"' {
			if end := strings.IndexByte(line[i+1:], '"'); end >= 0 {
				fields = append(fields, line[i+1:i+1+end])
				i += end + 2
				continue
			}
		}
		if line[i] == ',' {
			i++
			continue
		}
		end := strings.IndexByte(line[i:], ',')
		if end < 0 {
			fields = append(fields, line[i:])
			break
		}
		fields = append(fields, line[i:i+end])
		i += end
	}
	return fields
}
