package result

import (
	"net/http"

	"github.com/papercomputeco/beatpath/pkg/chain"
)

// Reply is a decoded response from the path endpoint.
type Reply struct {
	StatusCode int
	Body       chain.Response
}

// OK reports whether the status code is 2xx.
func (r *Reply) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Resolution is what a reply means for the view.
type Resolution struct {
	State  State
	Render RenderState
	Status Status
}

// Resolve interprets the outcome of one request. A non-empty llm_text takes
// precedence over a path.
func Resolve(req chain.Request, reply *Reply, err error) Resolution {
	if err != nil || reply == nil {
		return Resolution{
			State:  StateShowingError,
			Render: ErrorState{Message: msgSomethingWrong},
			Status: Status{Message: msgSomethingWrong, Tone: ToneError},
		}
	}

	if !reply.OK() {
		msg := reply.Body.Error
		if msg == "" {
			msg = msgNoPathFound
		}
		return Resolution{
			State:  StateShowingError,
			Render: ErrorState{Message: msg},
			Status: Status{Message: msg, Tone: ToneError},
		}
	}

	body := reply.Body
	if body.LLMText != "" {
		fallback := FallbackState{
			From: req.From,
			To:   req.To,
			Text: body.LLMText,
		}
		if len(body.Edges) > 0 {
			fallback.FromLogo = body.Edges[0].FromLogo
			fallback.ToLogo = body.Edges[0].ToLogo
		}
		return Resolution{
			State:  StateShowingFallback,
			Render: fallback,
			Status: Status{Message: msgGenerated, Tone: ToneFallback},
		}
	}

	return Resolution{
		State: StateShowingPath,
		Render: PathState{
			From:  req.From,
			To:    req.To,
			Path:  body.Path,
			Edges: body.Edges,
		},
		Status: stepsStatus(len(body.Edges)),
	}
}
