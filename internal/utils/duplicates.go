package utils

// SeenFilter drops repeated words while keeping first-occurrence order.
// Comparison is exact; no case folding is applied.
type SeenFilter struct {
	seen map[string]struct{}
}

// NewSeenFilter creates an empty filter sized for n words
func NewSeenFilter(n int) *SeenFilter {
	return &SeenFilter{seen: make(map[string]struct{}, n)}
}

// ShouldInclude returns true the first time a word is offered and false afterwards.
func (f *SeenFilter) ShouldInclude(word string) bool {
	if _, dup := f.seen[word]; dup {
		return false
	}
	f.seen[word] = struct{}{}
	return true
}

// Distinct returns words with duplicates removed, in original order.
func Distinct(words []string) []string {
	f := NewSeenFilter(len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if f.ShouldInclude(w) {
			out = append(out, w)
		}
	}
	return out
}
