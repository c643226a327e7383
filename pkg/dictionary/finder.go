/*
Package dictionary queries the Korean dictionary web service and extracts nouns from its result pages.

A lookup encodes a Query into the form body the service expects, fetches the HTML
through a process-lifetime ResponseCache, and walks the definition paragraphs:

	finder := dictionary.NewFinder(dictionary.NewFetcher())
	nouns, err := finder.AllNouns(ctx, dictionary.StartsWith, "가", "북한어")

Paragraphs annotated with one of the banned labels are skipped entirely. The
remaining headwords longer than one character are deduplicated in document order
and reduced to their Hangul characters. A headword with no Hangul at all ends up
as an empty string and is still returned in its position.

Errors come back as *EncodingError, *NetworkError or *ParseError; nothing is retried.
*/
package dictionary

import (
	"context"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bastiangx/kodic/internal/utils"
	"github.com/charmbracelet/log"
)

const (
	paragraphSelector = "span#print_area p.exp"
	labelSelector     = `font[face="새굴림"]`
	headwordSelector  = "a[title] strong font"
)

// PageFetcher returns the raw page for an encoded query.
type PageFetcher interface {
	Fetch(ctx context.Context, params string) (string, error)
}

// NounRecorder receives every result list the finder produces.
type NounRecorder interface {
	AddWords(words []string)
}

// Finder runs noun searches against the dictionary service.
type Finder struct {
	fetcher  PageFetcher
	params   Params
	recorder NounRecorder
}

// FinderOption customizes a Finder.
type FinderOption func(*Finder)

// WithParams overrides charset and page size of the encoded query.
func WithParams(p Params) FinderOption {
	return func(f *Finder) { f.params = p }
}

// WithRecorder forwards results to r, e.g. a suggest.Index.
func WithRecorder(r NounRecorder) FinderOption {
	return func(f *Finder) { f.recorder = r }
}

func NewFinder(fetcher PageFetcher, opts ...FinderOption) *Finder {
	f := &Finder{fetcher: fetcher, params: DefaultParams()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// AllNouns searches nouns matching text under mode and returns the Hangul-only
// headwords, skipping paragraphs labelled with any of banned. The result is never nil.
func (f *Finder) AllNouns(ctx context.Context, mode SearchMode, text string, banned ...string) ([]string, error) {
	q := Query{Mode: mode, Text: text, Codes: []PartOfSpeech{Noun}}
	params, err := q.Encode(f.params)
	if err != nil {
		return nil, err
	}

	page, err := f.fetcher.Fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	nouns, err := ExtractNouns(page, banned)
	if err != nil {
		return nil, err
	}
	log.Debug("Extracted nouns", "mode", mode, "text", text, "count", len(nouns))

	if f.recorder != nil {
		f.recorder.AddWords(nouns)
	}
	return nouns, nil
}

// ExtractNouns runs the extraction steps of AllNouns on an already fetched page.
func ExtractNouns(page string, banned []string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	retained := doc.Find(paragraphSelector).FilterFunction(func(_ int, p *goquery.Selection) bool {
		return !hasBannedLabel(p, banned)
	})

	seen := utils.NewSeenFilter(0)
	nouns := []string{}
	retained.Find(headwordSelector).Each(func(_ int, s *goquery.Selection) {
		word := utils.NormalizeSpace(s.Text())
		if utils.RuneLen(word) <= 1 || !seen.ShouldInclude(word) {
			return
		}
		nouns = append(nouns, utils.KeepHangul(word))
	})
	return nouns, nil
}

// hasBannedLabel checks the direct label children of a definition paragraph.
func hasBannedLabel(p *goquery.Selection, banned []string) bool {
	if len(banned) == 0 {
		return false
	}
	found := false
	p.ChildrenFiltered(labelSelector).EachWithBreak(func(_ int, label *goquery.Selection) bool {
		found = slices.Contains(banned, utils.NormalizeSpace(label.Text()))
		return !found
	})
	return found
}
