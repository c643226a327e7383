package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

const DefaultMaxWords = 50000

// Index is a bounded word trie. When full, the least recently used word is evicted.
type Index struct {
	trie        *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	maxWords    int
	mu          sync.RWMutex
}

var _ ICompleter = (*Index)(nil)

func NewIndex(maxWords int) *Index {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &Index{
		trie:       patricia.NewTrie(),
		accessTime: make(map[string]int64),
		maxWords:   maxWords,
	}
}

// AddWords inserts new words and bumps the seen count of known ones.
// Empty strings are ignored.
func (ix *Index) AddWords(words []string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	added := 0
	for _, word := range words {
		if word == "" {
			continue
		}
		key := patricia.Prefix(word)
		if item := ix.trie.Get(key); item != nil {
			ix.trie.Set(key, item.(int)+1)
			ix.markAccessed(word)
			continue
		}
		if len(ix.accessTime) >= ix.maxWords {
			ix.evictLRU()
		}
		ix.trie.Insert(key, 1)
		ix.markAccessed(word)
		added++
	}
	log.Debugf("Indexed %d new words (%d total)", added, len(ix.accessTime))
}

// Complete returns known words with the given prefix, most seen first.
// The prefix itself is included when it is a known word.
func (ix *Index) Complete(prefix string, limit int) []Suggestion {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	suggestions := searchTrie(ix.trie, prefix)
	rankSuggestions(suggestions)
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	for _, s := range suggestions {
		ix.markAccessed(s.Word)
	}
	return suggestions
}

func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.trie = patricia.NewTrie()
	ix.accessTime = make(map[string]int64)
	ix.accessCount = 0
}

func (ix *Index) Stats() map[string]int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return map[string]int{
		"indexWords":    len(ix.accessTime),
		"maxIndexWords": ix.maxWords,
		"indexAccesses": int(ix.accessCount),
	}
}

func (ix *Index) markAccessed(word string) {
	ix.accessCount++
	ix.accessTime[word] = ix.accessCount
}

func (ix *Index) evictLRU() {
	var oldestWord string
	var oldestTime int64 = math.MaxInt64

	for word, t := range ix.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldestWord = word
		}
	}

	if oldestWord != "" {
		ix.trie.Delete(patricia.Prefix(oldestWord))
		delete(ix.accessTime, oldestWord)
		log.Debugf("Evicted word '%s' from index", oldestWord)
	}
}
