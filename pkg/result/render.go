package result

import (
	"fmt"

	"github.com/papercomputeco/beatpath/pkg/chain"
)

// RenderState is the tagged variant Render maps to rows: one of PathState,
// FallbackState, ErrorState or EmptyState.
type RenderState interface {
	renderState()
}

// PathState is a verified chain of victories.
type PathState struct {
	From  string
	To    string
	Path  []string
	Edges []chain.Edge
}

// FallbackState is a generated explanation for a pair with no chain.
type FallbackState struct {
	From     string
	To       string
	Text     string
	FromLogo string
	ToLogo   string
}

// ErrorState renders nothing; the message lives in the status line.
type ErrorState struct {
	Message string
}

// EmptyState renders nothing.
type EmptyState struct{}

func (PathState) renderState()     {}
func (FallbackState) renderState() {}
func (ErrorState) renderState()    {}
func (EmptyState) renderState()    {}

// RowKind distinguishes chain steps from the single explanation card.
type RowKind int

const (
	RowEdge RowKind = iota
	RowExplanation
)

// Row is a declarative description of one rendered list item.
type Row struct {
	Kind     RowKind
	From     string
	To       string
	FromLogo string
	ToLogo   string

	// Text is the edge label, or the explanation for RowExplanation.
	Text string

	// Final marks the last step of a chain.
	Final bool

	// PastSeason marks a step whose label carries a prior-season year.
	PastSeason bool
}

// Panel is the full results area: hidden, or a description over rows.
type Panel struct {
	Visible     bool
	Description string
	Rows        []Row
}

// Render maps a render state to the rows a view should draw. It has no side
// effects.
func Render(state RenderState) Panel {
	switch s := state.(type) {
	case PathState:
		return renderPath(s)
	case FallbackState:
		return renderFallback(s)
	default:
		return Panel{}
	}
}

func renderPath(s PathState) Panel {
	if len(s.Path) == 0 {
		return Panel{}
	}

	rows := make([]Row, 0, len(s.Edges))
	for i, edge := range s.Edges {
		rows = append(rows, Row{
			Kind:       RowEdge,
			From:       edge.From,
			To:         edge.To,
			FromLogo:   edge.FromLogo,
			ToLogo:     edge.ToLogo,
			Text:       edge.Label,
			Final:      i == len(s.Edges)-1,
			PastSeason: edge.PastSeason(),
		})
	}

	return Panel{
		Visible:     true,
		Description: fmt.Sprintf("Shortest chain of victories from %s to %s", s.From, s.To),
		Rows:        rows,
	}
}

func renderFallback(s FallbackState) Panel {
	return Panel{
		Visible:     true,
		Description: fmt.Sprintf("Why %s would beat %s", s.From, s.To),
		Rows: []Row{{
			Kind:     RowExplanation,
			From:     s.From,
			To:       s.To,
			FromLogo: s.FromLogo,
			ToLogo:   s.ToLogo,
			Text:     s.Text,
		}},
	}
}
