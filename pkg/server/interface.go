/*
Package server implements msgpack IPC for dictionary noun lookups.

Clients write msgpack maps to stdin and read one msgpack map per request from stdout.
Every request carries an ID and an action:

	{"id": "q1", "a": "nouns", "m": "starts", "q": "가", "b": ["북한어"]}

returns the Hangul nouns in document order with the time taken in microseconds:

	{"id": "q1", "n": ["가게", "가구"], "c": 2, "t": 5120}

Nouns returned by earlier lookups can be completed by prefix without another fetch:

	{"id": "c1", "a": "complete", "p": "가", "l": 10}
	{"id": "c1", "s": [{"w": "가게", "n": 1}], "c": 1}

"stats" reports cache and index counters, "clear" empties both. Failures are
reported as {"id": ..., "e": "message", "c": code} where code is 400 for a bad
request, 502 for an upstream failure and 500 otherwise.
*/
package server

const (
	ActionNouns    = "nouns"
	ActionComplete = "complete"
	ActionStats    = "stats"
	ActionClear    = "clear"
)

// Request is the union of all request shapes; unused fields are omitted on the wire.
type Request struct {
	ID     string   `msgpack:"id"`
	Action string   `msgpack:"a"`
	Mode   string   `msgpack:"m,omitempty"`
	Text   string   `msgpack:"q,omitempty"`
	Banned []string `msgpack:"b,omitempty"`
	Prefix string   `msgpack:"p,omitempty"`
	Limit  int      `msgpack:"l,omitempty"`
}

// NounResponse answers a "nouns" request.
type NounResponse struct {
	ID        string   `msgpack:"id"`
	Nouns     []string `msgpack:"n"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// CompleteSuggestion is one completion candidate.
type CompleteSuggestion struct {
	Word string `msgpack:"w"`
	Seen int    `msgpack:"n"`
}

// CompleteResponse answers a "complete" request.
type CompleteResponse struct {
	ID          string               `msgpack:"id"`
	Suggestions []CompleteSuggestion `msgpack:"s"`
	Count       int                  `msgpack:"c"`
}

// StatsResponse answers a "stats" request.
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"s"`
}

// StatusResponse is sent on startup and after "clear".
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
