package dictionary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/transform"
)

// Fetcher retrieves raw search pages from the dictionary service and
// remembers them per encoded query.
type Fetcher struct {
	endpoint string
	charset  string
	client   *http.Client
	cache    *ResponseCache
}

// FetcherOption customizes a Fetcher.
type FetcherOption func(*Fetcher)

// WithEndpoint overrides the service URL.
func WithEndpoint(endpoint string) FetcherOption {
	return func(f *Fetcher) { f.endpoint = endpoint }
}

// WithCharset sets the charset used to decode response bodies.
func WithCharset(charset string) FetcherOption {
	return func(f *Fetcher) { f.charset = charset }
}

// WithHTTPClient swaps the transport, mostly for tests.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = client }
}

// WithCache shares a cache between fetchers.
func WithCache(cache *ResponseCache) FetcherOption {
	return func(f *Fetcher) { f.cache = cache }
}

func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		endpoint: DefaultEndpoint,
		charset:  DefaultCharset,
		client:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.cache == nil {
		f.cache = NewResponseCache()
	}
	return f
}

// Cache exposes the fetcher's response cache.
func (f *Fetcher) Cache() *ResponseCache {
	return f.cache
}

// Fetch returns the page for the encoded parameters. A cached page is returned
// without any network I/O, however old it is. Failures are never cached.
func (f *Fetcher) Fetch(ctx context.Context, params string) (string, error) {
	if body, ok := f.cache.Get(params); ok {
		log.Debugf("Cache hit for query (%d bytes)", len(body))
		return body, nil
	}

	enc, err := LookupEncoding(f.charset)
	if err != nil {
		return "", err
	}

	// The service reads the form from the body of a GET request.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, strings.NewReader(params))
	if err != nil {
		return "", &NetworkError{URL: f.endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset="+f.charset)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	log.Debugf("Fetching %s", f.endpoint)
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &NetworkError{URL: f.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &NetworkError{
			URL:    f.endpoint,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	raw, err := io.ReadAll(transform.NewReader(resp.Body, enc.NewDecoder()))
	if err != nil {
		return "", &NetworkError{URL: f.endpoint, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	body := string(raw)
	f.cache.Put(params, body)
	log.Debugf("Fetched %d bytes, cache now holds %d entries", len(body), f.cache.Len())
	return body, nil
}
