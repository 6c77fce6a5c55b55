package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parse returns the record of line and whether one was produced.
func parse(line string) (Record, bool) {
	res := ParseLine(line)
	return res.Record, res.OK()
}

func TestParseLine_SkipsHeaderAndBlank(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tabs", "\t \t"},
		{"header exact", Header},
		{"header prefix", "Pytanie,Odpowiedź"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseLine(tt.line)
			assert.Equal(t, StatusSkipped, res.Status)
			assert.False(t, res.OK())
		})
	}
}

func TestParseLine_StripsOrdinal(t *testing.T) {
	res := ParseLine(`"7. What?",A,B,C,D,A`)
	require.True(t, res.OK())
	assert.Equal(t, "What?", res.Record.Prompt)
	assert.Equal(t, OptionA, res.Record.CorrectOptionID)
}

func TestParseLine_OrdinalVariants(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`"12.Question",a,b,c,d,B`, "Question"},
		{`"3.   Spaced",a,b,c,d,B`, "Spaced"},
		{`"No number",a,b,c,d,B`, "No number"},
		{`"Year 1410. Battle",a,b,c,d,B`, "Year 1410. Battle"},
		{`"1.5 is a decimal",a,b,c,d,B`, "5 is a decimal"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			rec, ok := parse(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.Prompt)
		})
	}
}

func TestParseLine_QuotedFieldsKeepCommas(t *testing.T) {
	line := `"7. Co sprawiło, że Janko został oskarżony o kradzież?",Pieniądze,Chleb,"Jabłka, gruszki",Skrzypce,D`
	rec, ok := parse(line)
	require.True(t, ok)

	assert.Equal(t, "Co sprawiło, że Janko został oskarżony o kradzież?", rec.Prompt)
	assert.Equal(t, [4]Option{
		{ID: OptionA, Text: "Pieniądze"},
		{ID: OptionB, Text: "Chleb"},
		{ID: OptionC, Text: "Jabłka, gruszki"},
		{ID: OptionD, Text: "Skrzypce"},
	}, rec.Options)
	assert.Equal(t, OptionD, rec.CorrectOptionID)
}

func TestParseLine_UnquotedPrompt(t *testing.T) {
	rec, ok := parse("2+2?,3,4,5,6,B")
	require.True(t, ok)
	assert.Equal(t, "2+2?", rec.Prompt)
	assert.Equal(t, "4", rec.Options[1].Text)
}

func TestParseLine_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", `"Q?",A,B,C,D`},
		{"single field", "just text"},
		{"empty fields collapse", `"Q?",A,,C,D,A`},
		{"only commas", ",,,,,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseLine(tt.line)
			assert.Equal(t, StatusMalformed, res.Status)
			assert.NotEmpty(t, res.Reason)
		})
	}
}

func TestParseLine_ExtraFieldsIgnored(t *testing.T) {
	rec, ok := parse(`"Q?",a,b,c,d,C,extra,"more"`)
	require.True(t, ok)
	assert.Equal(t, OptionC, rec.CorrectOptionID)
}

func TestParseLine_UnknownAnswerLetterKept(t *testing.T) {
	rec, ok := parse(`"Q?",a,b,c,d,E`)
	require.True(t, ok)
	assert.Equal(t, OptionID("E"), rec.CorrectOptionID)
	assert.False(t, rec.HasValidAnswer())
	for _, id := range OptionIDs {
		assert.False(t, rec.IsCorrect(id))
	}
}

func TestParseLine_UnclosedQuoteIsUnquotedRun(t *testing.T) {
	rec, ok := parse(`"Q?,a,b,c,d,A`)
	require.True(t, ok)
	assert.Equal(t, `"Q?`, rec.Prompt)
}

func TestParseLine_EmptyQuotedField(t *testing.T) {
	rec, ok := parse(`"Q?","",b,c,d,A`)
	require.True(t, ok)
	assert.Equal(t, "", rec.Options[0].Text)
}

func TestParseLine_UnicodePreserved(t *testing.T) {
	rec, ok := parse(`"1. Zażółć gęślą jaźń?",ą,ę,ś,ź,A`)
	require.True(t, ok)
	assert.Equal(t, "Zażółć gęślą jaźń?", rec.Prompt)
	assert.Equal(t, "ź", rec.Options[3].Text)
}

func TestFormatLine_RoundTrip(t *testing.T) {
	records := []Record{
		{
			Prompt: "Kto napisał Lalkę?",
			Options: [4]Option{
				{ID: OptionA, Text: "Eliza Orzeszkowa"},
				{ID: OptionB, Text: "Henryk Sienkiewicz"},
				{ID: OptionC, Text: "Bolesław Prus"},
				{ID: OptionD, Text: "Maria Konopnicka"},
			},
			CorrectOptionID: OptionC,
		},
		{
			Prompt: "Commas, everywhere, here?",
			Options: [4]Option{
				{ID: OptionA, Text: "a, b"},
				{ID: OptionB, Text: ""},
				{ID: OptionC, Text: "c"},
				{ID: OptionD, Text: "d,"},
			},
			CorrectOptionID: OptionA,
		},
	}

	for i, want := range records {
		for _, ordinal := range []int{0, i + 1} {
			line, err := FormatLine(want, ordinal)
			require.NoError(t, err)

			got, ok := parse(line)
			require.True(t, ok, "line %q", line)
			assert.Equal(t, want, got)
		}
	}
}

func TestFormatLine_RejectsQuotes(t *testing.T) {
	rec := Record{
		Prompt:          `Say "hi"`,
		Options:         [4]Option{{ID: OptionA}, {ID: OptionB}, {ID: OptionC}, {ID: OptionD}},
		CorrectOptionID: OptionA,
	}
	_, err := FormatLine(rec, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuoteInField)
}

func TestFormatFile(t *testing.T) {
	rec := Record{
		Prompt: "Q?",
		Options: [4]Option{
			{ID: OptionA, Text: "a"}, {ID: OptionB, Text: "b"},
			{ID: OptionC, Text: "c"}, {ID: OptionD, Text: "d"},
		},
		CorrectOptionID: OptionB,
	}
	text, err := FormatFile([]Record{rec, rec})
	require.NoError(t, err)
	assert.Equal(t, Header+"\n\"1. Q?\",\"a\",\"b\",\"c\",\"d\",B\n\"2. Q?\",\"a\",\"b\",\"c\",\"d\",B", text)
}
