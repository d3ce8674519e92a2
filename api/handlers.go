package api

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/beatpath/pkg/chain"
	"github.com/papercomputeco/beatpath/pkg/eventstream"
	"github.com/papercomputeco/beatpath/pkg/graph"
	"github.com/papercomputeco/beatpath/pkg/worker"
)

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handlePath resolves the chain between the two teams in the JSON body.
// A missing or malformed body is treated as two empty names.
func (s *Server) handlePath(c *fiber.Ctx) error {
	var req chain.Request
	if err := c.BodyParser(&req); err != nil {
		s.logger.Debug("ignoring unreadable path request body",
			"request_id", requestIDFrom(c),
			"error", err,
		)
		req = chain.Request{}
	}

	res := s.lookup(c.UserContext(), "api", req)
	if res.Failed() {
		return c.Status(fiber.StatusBadRequest).JSON(chain.ErrorResponse{Error: res.Error})
	}

	return c.JSON(res.Response())
}

// handleTeams lists the known team names.
func (s *Server) handleTeams(c *fiber.Ctx) error {
	teams := s.finder.TeamNames()
	return c.JSON(chain.TeamsResponse{
		Count: len(teams),
		Teams: teams,
	})
}

// lookup runs one path lookup and records it. origin tags the event with the
// surface that served it.
func (s *Server) lookup(ctx context.Context, origin string, req chain.Request) graph.Result {
	from := strings.TrimSpace(req.From)
	to := strings.TrimSpace(req.To)

	start := time.Now()
	res := s.finder.FindPath(ctx, from, to)
	elapsed := time.Since(start)

	s.logger.Info("path lookup",
		"from", from,
		"to", to,
		"outcome", string(res.Outcome),
		"steps", len(res.Edges),
		"duration", elapsed,
	)

	if s.config.Metrics != nil {
		s.config.Metrics.ObserveSearch(string(res.Outcome), len(res.Edges))
	}

	if s.config.Events != nil {
		event := eventstream.NewPathSearchedEvent(
			eventstream.SearchRequest{From: from, To: to, Origin: origin},
			eventstream.SearchOutcome{
				Kind:       string(res.Outcome),
				Steps:      len(res.Edges),
				Error:      res.Error,
				DurationMs: elapsed.Milliseconds(),
			},
		)
		if !s.config.Events.Enqueue(worker.Job{Event: event}) && s.config.Metrics != nil {
			s.config.Metrics.EventsDroppedTotal.Inc()
		}
	}

	return res
}
