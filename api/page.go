package api

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/papercomputeco/beatpath/pkg/chain"
	"github.com/papercomputeco/beatpath/pkg/result"
)

//go:embed templates/index.html.tmpl
var indexTemplate string

type page struct {
	tmpl *template.Template
}

func newPage() (*page, error) {
	tmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}
	return &page{tmpl: tmpl}, nil
}

// pageData is what the index template renders.
type pageData struct {
	Teams       []string
	From        string
	To          string
	Status      string
	Tone        string
	Description string
	Panel       result.Panel
}

func (p *page) render(c *fiber.Ctx, data pageData) error {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering index: %w", err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// handleIndex renders the empty search form.
func (s *Server) handleIndex(c *fiber.Ctx) error {
	return s.page.render(c, pageData{Teams: s.finder.TeamNames()})
}

// handleIndexSubmit runs the form through a result.Controller so the page
// shows exactly what an interactive client would.
func (s *Server) handleIndexSubmit(c *fiber.Ctx) error {
	// Form values alias the request buffer; search events outlive it.
	from := &formField{value: utils.CopyString(c.FormValue("from"))}
	to := &formField{value: utils.CopyString(c.FormValue("to"))}
	view := &pageView{}

	ctrl, err := result.NewController(result.Elements{
		From:        from,
		To:          to,
		Status:      view,
		Results:     view,
		Description: view,
	}, localTransport{server: s}, s.logger)
	if err != nil {
		return err
	}

	if c.FormValue("action") == "swap" {
		ctrl.Swap()
	} else {
		ctrl.Submit(c.UserContext())
	}

	data := pageData{
		Teams:       s.finder.TeamNames(),
		From:        from.Value(),
		To:          to.Value(),
		Description: view.description,
		Panel:       view.panel,
	}
	if view.hasStatus {
		data.Status = view.status.Message
		data.Tone = view.status.Tone.String()
	}

	return s.page.render(c, data)
}

type formField struct {
	value string
}

func (f *formField) Value() string     { return f.value }
func (f *formField) SetValue(v string) { f.value = v }

// pageView collects what the controller sets for one request.
type pageView struct {
	status      result.Status
	hasStatus   bool
	description string
	panel       result.Panel
}

func (v *pageView) SetStatus(st result.Status) {
	v.status = st
	v.hasStatus = true
}

func (v *pageView) Show(p result.Panel) { v.panel = p }
func (v *pageView) Hide()               { v.panel = result.Panel{} }
func (v *pageView) SetText(text string) { v.description = text }

// localTransport answers the controller in process, through the same lookup
// the JSON endpoint uses.
type localTransport struct {
	server *Server
}

func (t localTransport) PostPath(ctx context.Context, req chain.Request) (*result.Reply, error) {
	res := t.server.lookup(ctx, "page", req)
	if res.Failed() {
		return &result.Reply{
			StatusCode: http.StatusBadRequest,
			Body:       chain.Response{Error: res.Error},
		}, nil
	}
	return &result.Reply{StatusCode: http.StatusOK, Body: res.Response()}, nil
}
