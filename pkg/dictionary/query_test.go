package dictionary

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchModeCodes(t *testing.T) {
	assert.Equal(t, "0", Equals.Code())
	assert.Equal(t, "1", StartsWith.Code())
	assert.Equal(t, "2", EndsWith.Code())
	assert.Equal(t, "3", Contains.Code())
	assert.Equal(t, "", SearchMode(42).Code())
	assert.Equal(t, "1", Noun.Code())
}

func TestParseSearchMode(t *testing.T) {
	testCases := []struct {
		input    string
		expected SearchMode
	}{
		{"equals", Equals},
		{"STARTS_WITH", StartsWith},
		{"starts-with", StartsWith},
		{"ends", EndsWith},
		{" contains ", Contains},
		{"2", EndsWith},
	}
	for _, tc := range testCases {
		got, err := ParseSearchMode(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.expected, got, tc.input)
	}

	_, err := ParseSearchMode("fuzzy")
	assert.Error(t, err)
}

func TestQueryEncodeExact(t *testing.T) {
	q := Query{Mode: StartsWith, Text: "가", Codes: []PartOfSpeech{Noun}}
	got, err := q.Encode(DefaultParams())
	require.NoError(t, err)
	assert.Equal(t,
		"PageRow=100000000&Table=words|word&Gubun=1&SearchPart=Simple&SpCode=1&SearchText=%EA%B0%80",
		got)
}

func TestQueryEncodeRepeatsCodes(t *testing.T) {
	q := Query{Mode: Contains, Text: "a b", Codes: []PartOfSpeech{Noun, Noun}}
	got, err := q.Encode(Params{Charset: "utf-8", PageRow: 10})
	require.NoError(t, err)
	assert.Equal(t,
		"PageRow=10&Table=words|word&Gubun=3&SearchPart=Simple&SpCode=1&SpCode=1&SearchText=a+b",
		got)
}

func TestQueryEncodeEmptyTextAndNoCodes(t *testing.T) {
	got, err := Query{Mode: Equals}.Encode(DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, "PageRow=100000000&Table=words|word&Gubun=0&SearchPart=Simple&SearchText=", got)
}

func TestQueryEncodeRoundTrip(t *testing.T) {
	queries := []Query{
		{Mode: Equals, Text: "사과", Codes: []PartOfSpeech{Noun}},
		{Mode: StartsWith, Text: "사과", Codes: []PartOfSpeech{Noun}},
		{Mode: StartsWith, Text: "사과 나무&x=1+2;", Codes: []PartOfSpeech{Noun}},
		{Mode: EndsWith, Text: "", Codes: nil},
		{Mode: Contains, Text: "%20", Codes: []PartOfSpeech{Noun, Noun}},
	}

	seen := map[string]Query{}
	for _, q := range queries {
		encoded, err := q.Encode(DefaultParams())
		require.NoError(t, err)

		prev, dup := seen[encoded]
		assert.False(t, dup, "%+v and %+v encode the same", q, prev)
		seen[encoded] = q

		values, err := url.ParseQuery(encoded)
		require.NoError(t, err)
		assert.Equal(t, q.Text, values.Get("SearchText"))
		assert.Equal(t, q.Mode.Code(), values.Get("Gubun"))
		assert.Equal(t, "words|word", values.Get("Table"))
		assert.Equal(t, "Simple", values.Get("SearchPart"))
		assert.Equal(t, "100000000", values.Get("PageRow"))
		assert.Len(t, values["SpCode"], len(q.Codes))
	}
}

func TestQueryEncodeCharset(t *testing.T) {
	got, err := Query{Mode: Equals, Text: "가"}.Encode(Params{Charset: "euc-kr", PageRow: 1})
	require.NoError(t, err)
	assert.Contains(t, got, "SearchText=%B0%A1")
}

func TestQueryEncodeUnknownCharset(t *testing.T) {
	_, err := Query{Mode: Equals, Text: "가"}.Encode(Params{Charset: "klingon-8", PageRow: 1})
	require.Error(t, err)

	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, "klingon-8", encErr.Charset)
}
