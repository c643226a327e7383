package dictionary

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// SearchMode is the match strategy understood by the dictionary service.
type SearchMode int

const (
	Equals SearchMode = iota
	StartsWith
	EndsWith
	Contains
)

// wire codes for the Gubun field
var searchModeCodes = map[SearchMode]string{
	Equals:     "0",
	StartsWith: "1",
	EndsWith:   "2",
	Contains:   "3",
}

var searchModeNames = map[SearchMode]string{
	Equals:     "equals",
	StartsWith: "starts",
	EndsWith:   "ends",
	Contains:   "contains",
}

// Code returns the wire code, or "" for an unknown mode.
func (m SearchMode) Code() string {
	return searchModeCodes[m]
}

func (m SearchMode) String() string {
	if name, ok := searchModeNames[m]; ok {
		return name
	}
	return "SearchMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseSearchMode accepts the short names ("starts"), the long ones
// ("starts_with", "starts-with") and the raw wire codes.
func ParseSearchMode(s string) (SearchMode, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch key {
	case "equals", "eq", "0":
		return Equals, nil
	case "starts", "starts_with", "prefix", "1":
		return StartsWith, nil
	case "ends", "ends_with", "suffix", "2":
		return EndsWith, nil
	case "contains", "substring", "3":
		return Contains, nil
	}
	return 0, fmt.Errorf("unknown search mode %q", s)
}

// PartOfSpeech restricts a search to one grammatical category.
type PartOfSpeech int

const (
	Noun PartOfSpeech = iota
)

var partOfSpeechCodes = map[PartOfSpeech]string{
	Noun: "1",
}

// Code returns the SpCode wire value.
func (p PartOfSpeech) Code() string {
	return partOfSpeechCodes[p]
}

// Params holds the fixed protocol values that do not change per query.
type Params struct {
	Charset string
	PageRow int
}

const (
	DefaultEndpoint = "http://stdweb2.korean.go.kr/search/List_dic.jsp"
	DefaultCharset  = "UTF-8"
	// asks the service for everything in one page
	DefaultPageRow = 100000000
)

// DefaultParams returns the values the service expects.
func DefaultParams() Params {
	return Params{Charset: DefaultCharset, PageRow: DefaultPageRow}
}

// Query is a single word search. It is only used to build its encoded form.
type Query struct {
	Mode  SearchMode
	Text  string
	Codes []PartOfSpeech
}

// LookupEncoding resolves a charset label such as "UTF-8" or "euc-kr".
func LookupEncoding(charset string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, &EncodingError{Charset: charset, Err: err}
	}
	return enc, nil
}

// Encode builds the form body sent to the service. The same Query and Params
// always produce the same string, which is also the response cache key.
func (q Query) Encode(p Params) (string, error) {
	enc, err := LookupEncoding(p.Charset)
	if err != nil {
		return "", err
	}
	e := &paramEncoder{enc: enc.NewEncoder(), charset: p.Charset}

	e.field("PageRow", strconv.Itoa(p.PageRow))
	// the two table names are encoded separately around a literal '|'
	e.raw("Table", e.escape("words")+"|"+e.escape("word"))
	e.field("Gubun", q.Mode.Code())
	e.field("SearchPart", "Simple")
	for _, code := range q.Codes {
		e.field("SpCode", code.Code())
	}
	e.field("SearchText", q.Text)

	if e.err != nil {
		return "", e.err
	}
	return e.b.String(), nil
}

type paramEncoder struct {
	enc     *encoding.Encoder
	charset string
	b       strings.Builder
	err     error
}

func (e *paramEncoder) escape(s string) string {
	if e.err != nil {
		return ""
	}
	converted, err := e.enc.String(s)
	if err != nil {
		e.err = &EncodingError{Charset: e.charset, Err: err}
		return ""
	}
	return url.QueryEscape(converted)
}

func (e *paramEncoder) field(name, value string) {
	e.raw(name, e.escape(value))
}

func (e *paramEncoder) raw(name, escapedValue string) {
	if e.b.Len() > 0 {
		e.b.WriteByte('&')
	}
	e.b.WriteString(e.escape(name))
	e.b.WriteByte('=')
	e.b.WriteString(escapedValue)
}
