// Package api provides the HTTP server for chain of victories lookups: the
// JSON endpoint used by clients, a server-rendered page, and the operational
// endpoints.
package api

import (
	"net/http"

	"github.com/papercomputeco/beatpath/pkg/metrics"
	"github.com/papercomputeco/beatpath/pkg/worker"
)

// Enqueuer accepts search events for asynchronous publishing.
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":5000")
	ListenAddr string

	// Events receives one job per path lookup. Optional.
	Events Enqueuer

	// Metrics enables /metrics and request instrumentation. Optional.
	Metrics *metrics.Metrics

	// MCPHandler is mounted at /mcp when set.
	MCPHandler http.Handler
}
