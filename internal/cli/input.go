// Package cli handles line based noun lookups for debugging and quick checks.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/bastiangx/kodic/internal/utils"
	"github.com/bastiangx/kodic/pkg/dictionary"
	"github.com/bastiangx/kodic/pkg/suggest"
	"github.com/charmbracelet/log"
)

// NounFinder is satisfied by *dictionary.Finder.
type NounFinder interface {
	AllNouns(ctx context.Context, mode dictionary.SearchMode, text string, banned ...string) ([]string, error)
}

// InputHandler reads one lookup per line. A line is either "<text>", searched
// with the default mode, or "<mode> <text>". Lines starting with ':' are commands:
// :complete <prefix>, :stats, :clear, :help.
type InputHandler struct {
	finder      NounFinder
	index       suggest.ICompleter
	cache       *dictionary.ResponseCache
	defaultMode dictionary.SearchMode
	banned      []string
	limit       int
}

// NewInputHandler handles initialization of the InputHandler. index and cache may be nil.
func NewInputHandler(finder NounFinder, index suggest.ICompleter, cache *dictionary.ResponseCache, defaultMode dictionary.SearchMode, banned []string, limit int) *InputHandler {
	return &InputHandler{
		finder:      finder,
		index:       index,
		cache:       cache,
		defaultMode: defaultMode,
		banned:      banned,
		limit:       limit,
	}
}

// Start runs the loop on stdin/stdout.
func (h *InputHandler) Start(ctx context.Context) error {
	log.Print("kodic CLI")
	log.Print("type a word (or '<mode> <word>') and press Enter, Ctrl+C to exit:")
	return h.Run(ctx, os.Stdin, os.Stdout)
}

// Run processes lines from r until EOF and writes results to w.
func (h *InputHandler) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(ctx, line, w)
	}
	return scanner.Err()
}

func (h *InputHandler) handleInput(ctx context.Context, line string, w io.Writer) {
	if strings.HasPrefix(line, ":") {
		h.handleCommand(line, w)
		return
	}

	mode, text := h.splitQuery(line)
	if !utils.IsValidInput(text) {
		log.Errorf("Invalid input: %q", text)
		return
	}

	start := time.Now()
	nouns, err := h.finder.AllNouns(ctx, mode, text, h.banned...)
	if err != nil {
		log.Errorf("Lookup failed for '%s': %v", text, err)
		return
	}
	log.Debugf("Took [ %v ] for '%s'", time.Since(start), text)

	if len(nouns) == 0 {
		log.Warnf("No nouns found for '%s' (%s)", text, mode)
		return
	}

	fmt.Fprintf(w, "Found %s nouns for '%s' (%s):\n", utils.FormatWithCommas(len(nouns)), text, mode)
	for i, noun := range nouns {
		fmt.Fprintf(w, "%4d. %s\n", i+1, noun)
	}
}

// splitQuery treats the first field as a mode only when it parses as one.
func (h *InputHandler) splitQuery(line string) (dictionary.SearchMode, string) {
	head, rest, found := strings.Cut(line, " ")
	if found {
		if mode, err := dictionary.ParseSearchMode(head); err == nil {
			return mode, strings.TrimSpace(rest)
		}
	}
	return h.defaultMode, line
}

func (h *InputHandler) handleCommand(line string, w io.Writer) {
	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	switch cmd {
	case "complete":
		if h.index == nil {
			log.Error("Completion index disabled")
			return
		}
		for i, s := range h.index.Complete(strings.TrimSpace(arg), h.limit) {
			fmt.Fprintf(w, "%2d. %-20s (seen: %d)\n", i+1, s.Word, s.Seen)
		}
	case "stats":
		if h.cache != nil {
			printStats(w, h.cache.Stats())
		}
		if h.index != nil {
			printStats(w, h.index.Stats())
		}
	case "clear":
		if h.cache != nil {
			h.cache.Clear()
		}
		if h.index != nil {
			h.index.Clear()
		}
		fmt.Fprintln(w, "cleared")
	case "help":
		fmt.Fprintln(w, "modes: equals, starts, ends, contains")
		fmt.Fprintln(w, "commands: :complete <prefix>, :stats, :clear, :help")
	default:
		log.Errorf("Unknown command: %s", cmd)
	}
}

func printStats(w io.Writer, stats map[string]int) {
	for _, k := range slices.Sorted(maps.Keys(stats)) {
		fmt.Fprintf(w, "%s: %s\n", k, utils.FormatWithCommas(stats[k]))
	}
}
