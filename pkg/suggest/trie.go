package suggest

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

func searchTrie(trie *patricia.Trie, prefix string) []Suggestion {
	if trie == nil {
		return []Suggestion{}
	}

	suggestions := []Suggestion{}
	err := trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		seen, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, p)
			return nil
		}
		suggestions = append(suggestions, Suggestion{Word: string(p), Seen: seen})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}
	return suggestions
}

// rankSuggestions orders by seen count, then by word so results are stable.
func rankSuggestions(suggestions []Suggestion) {
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Seen != suggestions[j].Seen {
			return suggestions[i].Seen > suggestions[j].Seen
		}
		return suggestions[i].Word < suggestions[j].Word
	})
}
