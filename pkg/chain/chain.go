// Package chain holds the wire types shared by the beatpath API server and its
// clients: the path request, the edges of a chain of victories, and the
// response envelope returned by POST /api/path.
package chain

import "regexp"

const (
	// PathEndpoint is the fixed endpoint that resolves a chain between two teams.
	PathEndpoint = "/api/path"

	// TeamsEndpoint lists the teams known to the server.
	TeamsEndpoint = "/api/teams"
)

// pastSeasonPattern matches a parenthesized 4-digit year, e.g. "(2021)".
var pastSeasonPattern = regexp.MustCompile(`\(\d{4}\)`)

// Request is the body of POST /api/path.
type Request struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Edge is one step in a chain of victories: From beat To.
type Edge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Label    string `json:"label"`
	FromLogo string `json:"fromLogo"`
	ToLogo   string `json:"toLogo"`
}

// PastSeason reports whether the edge label encodes a prior-season game.
func (e Edge) PastSeason() bool {
	return pastSeasonPattern.MatchString(e.Label)
}

// Response is the body returned by POST /api/path.
//
// A successful lookup carries Path and Edges. When no transitive path exists
// the server may answer with a generated LLMText instead. Failures carry Error
// together with a non-2xx status.
type Response struct {
	Path    []string `json:"path"`
	Edges   []Edge   `json:"edges"`
	LLMText string   `json:"llm_text,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// ErrorResponse is the error body shared by all API endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TeamsResponse is the body returned by GET /api/teams.
type TeamsResponse struct {
	Count int      `json:"count"`
	Teams []string `json:"teams"`
}
