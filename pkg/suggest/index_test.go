package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexComplete(t *testing.T) {
	ix := NewIndex(10)
	ix.AddWords([]string{"가게", "가구", "나무", ""})
	ix.AddWords([]string{"가구"})

	got := ix.Complete("가", 0)
	require.Len(t, got, 2)
	assert.Equal(t, Suggestion{Word: "가구", Seen: 2}, got[0])
	assert.Equal(t, Suggestion{Word: "가게", Seen: 1}, got[1])

	assert.Empty(t, ix.Complete("다", 0))
	assert.Len(t, ix.Complete("", 0), 3, "empty string is never indexed")
}

func TestIndexCompleteLimitAndExactWord(t *testing.T) {
	ix := NewIndex(10)
	ix.AddWords([]string{"사과", "사과나무", "사과주스"})

	got := ix.Complete("사과", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "사과", got[0].Word)
}

func TestIndexEvictsLeastRecentlyUsed(t *testing.T) {
	ix := NewIndex(2)
	ix.AddWords([]string{"가게", "나무"})
	ix.Complete("가", 0) // touch 가게
	ix.AddWords([]string{"다리"})

	assert.Equal(t, 2, ix.Stats()["indexWords"])
	assert.Empty(t, ix.Complete("나", 0))
	assert.Len(t, ix.Complete("가", 0), 1)
	assert.Len(t, ix.Complete("다", 0), 1)
}

func TestIndexClear(t *testing.T) {
	ix := NewIndex(0)
	assert.Equal(t, DefaultMaxWords, ix.Stats()["maxIndexWords"])

	ix.AddWords([]string{"가게"})
	ix.Clear()
	assert.Empty(t, ix.Complete("가", 0))
	assert.Equal(t, 0, ix.Stats()["indexWords"])
}
