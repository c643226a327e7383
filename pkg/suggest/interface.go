// Package suggest keeps the nouns retrieved during a session in a patricia trie
// so later requests can complete a prefix without going back to the dictionary.
package suggest

// ICompleter defines the interface for prefix completion over known nouns
type ICompleter interface {
	// Complete returns up to limit known words starting with prefix
	Complete(prefix string, limit int) []Suggestion

	// AddWords records words returned by a dictionary lookup
	AddWords(words []string)

	// Stats returns statistics about the index
	Stats() map[string]int

	// Clear forgets every word
	Clear()
}

// Suggestion is a completion candidate. Seen counts how many lookups returned it.
type Suggestion struct {
	Word string
	Seen int
}
