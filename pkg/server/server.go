package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/kodic/internal/logger"
	"github.com/bastiangx/kodic/pkg/config"
	"github.com/bastiangx/kodic/pkg/dictionary"
	"github.com/bastiangx/kodic/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// NounFinder is the lookup the server exposes.
type NounFinder interface {
	AllNouns(ctx context.Context, mode dictionary.SearchMode, text string, banned ...string) ([]string, error)
}

// Server handles msgpack IPC for noun lookups. Requests are processed one at a time.
type Server struct {
	finder  NounFinder
	index   suggest.ICompleter
	cache   *dictionary.ResponseCache
	config  *config.Config
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	logger  *log.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithIO replaces stdin/stdout, used by tests.
func WithIO(r io.Reader, w io.Writer) Option {
	return func(s *Server) {
		s.decoder = msgpack.NewDecoder(r)
		s.encoder = msgpack.NewEncoder(w)
	}
}

// WithCache lets "stats" and "clear" reach the fetcher's response cache.
func WithCache(cache *dictionary.ResponseCache) Option {
	return func(s *Server) { s.cache = cache }
}

// NewServer creates a server reading stdin and writing stdout.
func NewServer(finder NounFinder, index suggest.ICompleter, cfg *config.Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Server{
		finder:  finder,
		index:   index,
		config:  cfg,
		decoder: msgpack.NewDecoder(os.Stdin),
		encoder: msgpack.NewEncoder(os.Stdout),
		logger:  logger.New("server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start serves requests until the input stream ends.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting server")
	if err := s.encoder.Encode(StatusResponse{Status: "ready"}); err != nil {
		return fmt.Errorf("write ready: %w", err)
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			return fmt.Errorf("decode request: %w", err)
		}
		if err := s.handleRequest(ctx, req); err != nil {
			return err
		}
	}
}

func (s *Server) handleRequest(ctx context.Context, req Request) error {
	switch req.Action {
	case ActionNouns:
		return s.handleNouns(ctx, req)
	case ActionComplete:
		return s.handleComplete(req)
	case ActionStats:
		return s.send(StatsResponse{ID: req.ID, Stats: s.stats()})
	case ActionClear:
		if s.cache != nil {
			s.cache.Clear()
		}
		if s.index != nil {
			s.index.Clear()
		}
		return s.send(StatusResponse{ID: req.ID, Status: "cleared"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %q", req.Action), 400)
	}
}

func (s *Server) handleNouns(ctx context.Context, req Request) error {
	mode, err := dictionary.ParseSearchMode(req.Mode)
	if err != nil {
		return s.sendError(req.ID, err.Error(), 400)
	}

	start := time.Now()
	nouns, err := s.finder.AllNouns(ctx, mode, req.Text, req.Banned...)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Error("Lookup failed", "id", req.ID, "err", err)
		return s.sendError(req.ID, err.Error(), errorCode(err))
	}
	s.logger.Debug("Lookup done", "id", req.ID, "count", len(nouns), "took", elapsed)

	return s.send(NounResponse{
		ID:        req.ID,
		Nouns:     nouns,
		Count:     len(nouns),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleComplete(req Request) error {
	if s.index == nil {
		return s.sendError(req.ID, "completion index disabled", 400)
	}
	if len([]rune(req.Prefix)) < s.config.Server.MinPrefix {
		return s.sendError(req.ID, fmt.Sprintf("prefix must be at least %d characters", s.config.Server.MinPrefix), 400)
	}

	limit := req.Limit
	if limit <= 0 || limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}

	found := s.index.Complete(req.Prefix, limit)
	suggestions := make([]CompleteSuggestion, len(found))
	for i, f := range found {
		suggestions[i] = CompleteSuggestion{Word: f.Word, Seen: f.Seen}
	}
	return s.send(CompleteResponse{ID: req.ID, Suggestions: suggestions, Count: len(suggestions)})
}

func (s *Server) stats() map[string]int {
	stats := map[string]int{}
	if s.cache != nil {
		for k, v := range s.cache.Stats() {
			stats[k] = v
		}
	}
	if s.index != nil {
		for k, v := range s.index.Stats() {
			stats[k] = v
		}
	}
	return stats
}

// errorCode maps lookup failures onto the status codes of ErrorResponse.
func errorCode(err error) int {
	var netErr *dictionary.NetworkError
	if errors.As(err, &netErr) {
		return 502
	}
	return 500
}

func (s *Server) send(v any) error {
	if err := s.encoder.Encode(v); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
