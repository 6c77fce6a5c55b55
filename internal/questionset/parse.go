package questionset

import (
	"strings"

	"github.com/abhisek/quizz/internal/question"
)

// LineIssue describes a line that did not yield a usable record.
type LineIssue struct {
	Line   int    `json:"line"` // 1-based
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Report is the outcome of parsing a whole question file.
type Report struct {
	Records   []question.Record
	Skipped   int
	Malformed []LineIssue

	// InvalidAnswers lists accepted records whose answer letter is not A-D.
	InvalidAnswers []LineIssue
}

// ParseText splits text into lines and parses each one, keeping the
// records in file order.
func ParseText(text string) Report {
	var rep Report
	for i, line := range splitLines(text) {
		res := question.ParseLine(line)
		switch res.Status {
		case question.StatusOK:
			rep.Records = append(rep.Records, res.Record)
			if !res.Record.HasValidAnswer() {
				rep.InvalidAnswers = append(rep.InvalidAnswers, LineIssue{
					Line:   i + 1,
					Text:   line,
					Reason: "unknown answer " + string(res.Record.CorrectOptionID),
				})
			}
		case question.StatusSkipped:
			rep.Skipped++
		case question.StatusMalformed:
			rep.Malformed = append(rep.Malformed, LineIssue{Line: i + 1, Text: line, Reason: res.Reason})
		}
	}
	return rep
}

// byteOrderMark is written at the start of CSV files by some spreadsheet tools.
const byteOrderMark = "\ufeff"

func splitLines(text string) []string {
	lines := strings.Split(strings.TrimPrefix(text, byteOrderMark), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
