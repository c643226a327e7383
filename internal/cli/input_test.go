package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bastiangx/kodic/pkg/dictionary"
	"github.com/bastiangx/kodic/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

type call struct {
	mode dictionary.SearchMode
	text string
}

type recordingFinder struct {
	calls []call
	nouns []string
	err   error
}

func (r *recordingFinder) AllNouns(_ context.Context, mode dictionary.SearchMode, text string, _ ...string) ([]string, error) {
	r.calls = append(r.calls, call{mode, text})
	return r.nouns, r.err
}

func TestRunParsesModeAndText(t *testing.T) {
	finder := &recordingFinder{nouns: []string{"가게", "가구"}}
	h := NewInputHandler(finder, nil, nil, dictionary.StartsWith, nil, 10)

	var out bytes.Buffer
	input := "가\ncontains 사과 나무\n\nsideways 가\n"
	require.NoError(t, h.Run(context.Background(), strings.NewReader(input), &out))

	assert.Equal(t, []call{
		{dictionary.StartsWith, "가"},
		{dictionary.Contains, "사과 나무"},
		{dictionary.StartsWith, "sideways 가"},
	}, finder.calls)
	assert.Contains(t, out.String(), "Found 2 nouns for '가' (starts):")
	assert.Contains(t, out.String(), "   1. 가게")
}

func TestRunSkipsInvalidInputAndSurvivesErrors(t *testing.T) {
	finder := &recordingFinder{err: errors.New("offline")}
	h := NewInputHandler(finder, nil, nil, dictionary.Equals, nil, 10)

	var out bytes.Buffer
	require.NoError(t, h.Run(context.Background(), strings.NewReader("가\x01\n나무\n"), &out))
	assert.Equal(t, []call{{dictionary.Equals, "나무"}}, finder.calls)
	assert.Empty(t, out.String())
}

func TestCommands(t *testing.T) {
	index := suggest.NewIndex(10)
	index.AddWords([]string{"가게"})
	cache := dictionary.NewResponseCache()
	cache.Put("k", "page")
	h := NewInputHandler(&recordingFinder{}, index, cache, dictionary.StartsWith, nil, 10)

	var out bytes.Buffer
	require.NoError(t, h.Run(context.Background(), strings.NewReader(":complete 가\n:stats\n:clear\n"), &out))

	text := out.String()
	assert.Contains(t, text, "가게")
	assert.Contains(t, text, "cacheEntries: 1")
	assert.Contains(t, text, "indexWords: 1")
	assert.Contains(t, text, "cleared")
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, 0, index.Stats()["indexWords"])
}
