// Package result drives one path lookup at a time: it validates the two team
// inputs, posts them to the path endpoint and reflects the reply into a view
// made of explicit element handles.
package result

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/papercomputeco/beatpath/pkg/chain"
)

// ErrMissingElement is returned by NewController when a required element is nil.
var ErrMissingElement = errors.New("missing required element")

// TextField is an editable input.
type TextField interface {
	Value() string
	SetValue(v string)
}

// StatusSink displays the status line.
type StatusSink interface {
	SetStatus(s Status)
}

// ResultsPanel displays rendered rows.
type ResultsPanel interface {
	Show(p Panel)
	Hide()
}

// TextSink displays a single line of text.
type TextSink interface {
	SetText(text string)
}

// Elements are the handles a Controller mutates. From and To are required;
// the rest may be nil and are skipped when absent.
type Elements struct {
	From        TextField
	To          TextField
	Status      StatusSink
	Results     ResultsPanel
	Description TextSink
}

// Transport posts a path request and decodes the reply body, whatever its
// status code. An error means the request failed or the body was not JSON.
type Transport interface {
	PostPath(ctx context.Context, req chain.Request) (*Reply, error)
}

// Ticket identifies one accepted submission.
type Ticket struct {
	Generation uint64
	Request    chain.Request

	// ctx is cancelled when a newer submission supersedes this one.
	ctx context.Context
}

// Outcome is the raw result of fetching a ticket.
type Outcome struct {
	Generation uint64
	Request    chain.Request
	Reply      *Reply
	Err        error
}

// Controller owns the view. Begin, Apply and Swap must be called from the
// host's event loop; Fetch is safe to run elsewhere.
type Controller struct {
	els       Elements
	transport Transport
	logger    *slog.Logger

	state      State
	status     Status
	generation uint64
	cancel     context.CancelFunc
}

// NewController binds a controller to its elements and transport.
func NewController(els Elements, transport Transport, logger *slog.Logger) (*Controller, error) {
	if els.From == nil || els.To == nil {
		return nil, ErrMissingElement
	}
	if transport == nil {
		return nil, errors.New("transport is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &Controller{
		els:       els,
		transport: transport,
		logger:    logger,
		state:     StateIdle,
	}, nil
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Status returns the last status set.
func (c *Controller) Status() Status {
	return c.status
}

// Generation returns the generation of the latest accepted submission.
func (c *Controller) Generation() uint64 {
	return c.generation
}

// Begin validates the inputs and, when both are present, moves to Searching
// and returns a ticket for Fetch. A blank input sets an error status and
// nothing is sent. Any in-flight submission is cancelled.
func (c *Controller) Begin(ctx context.Context) (Ticket, bool) {
	from := strings.TrimSpace(c.els.From.Value())
	to := strings.TrimSpace(c.els.To.Value())
	if from == "" || to == "" {
		c.setStatus(Status{Message: msgPickTwoTeams, Tone: ToneError})
		return Ticket{}, false
	}

	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.generation++
	c.state = StateSearching

	c.setStatus(Status{Message: msgSearching, Tone: ToneInfo})
	c.hideResults()

	return Ticket{
		Generation: c.generation,
		Request:    chain.Request{From: from, To: to},
		ctx:        fetchCtx,
	}, true
}

// Fetch performs exactly one request for the ticket. It does not touch the view.
func (c *Controller) Fetch(t Ticket) Outcome {
	ctx := t.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	reply, err := c.transport.PostPath(ctx, t.Request)
	return Outcome{
		Generation: t.Generation,
		Request:    t.Request,
		Reply:      reply,
		Err:        err,
	}
}

// Apply reflects an outcome into the view. Outcomes from superseded
// submissions are dropped and Apply returns false.
func (c *Controller) Apply(o Outcome) bool {
	if o.Generation != c.generation || c.state != StateSearching {
		c.logger.Debug("dropping stale path response",
			"generation", o.Generation,
			"latest", c.generation,
		)
		return false
	}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if o.Err != nil {
		c.logger.Error("path request failed",
			"from", o.Request.From,
			"to", o.Request.To,
			"error", o.Err,
		)
	}

	res := Resolve(o.Request, o.Reply, o.Err)
	c.state = res.State

	panel := Render(res.Render)
	if panel.Visible {
		if c.els.Description != nil {
			c.els.Description.SetText(panel.Description)
		}
		if c.els.Results != nil {
			c.els.Results.Show(panel)
		}
	} else {
		c.hideResults()
	}

	c.setStatus(res.Status)
	return true
}

// Submit runs Begin, Fetch and Apply in sequence. It reports whether a request
// was sent.
func (c *Controller) Submit(ctx context.Context) bool {
	ticket, ok := c.Begin(ctx)
	if !ok {
		return false
	}
	c.Apply(c.Fetch(ticket))
	return true
}

// Swap exchanges the two input values.
func (c *Controller) Swap() {
	from := c.els.From.Value()
	c.els.From.SetValue(c.els.To.Value())
	c.els.To.SetValue(from)
}

func (c *Controller) setStatus(s Status) {
	c.status = s
	if c.els.Status != nil {
		c.els.Status.SetStatus(s)
	}
}

func (c *Controller) hideResults() {
	if c.els.Results != nil {
		c.els.Results.Hide()
	}
}
