package findcmder

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/papercomputeco/beatpath/pkg/cliui"
	"github.com/papercomputeco/beatpath/pkg/result"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	teamStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	finalTeamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	pastStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
	arrowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))

	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	fallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Italic(true)
)

const (
	inputFrom = iota
	inputTo
)

// findView owns the on-screen elements the result controller writes to.
// It is shared by pointer so bubbletea's value-copied model and the
// controller see the same state.
type findView struct {
	inputs [2]textinput.Model
	focus  int

	status      result.Status
	hasStatus   bool
	description string
	panel       result.Panel

	// explanation is the markdown-rendered fallback text, if any.
	explanation string
	width       int
}

func newFindView(from, to string) *findView {
	v := &findView{}
	for i, placeholder := range []string{"Winning team", "Losing team"} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 64
		in.Width = 28
		v.inputs[i] = in
	}
	v.inputs[inputFrom].SetValue(from)
	v.inputs[inputTo].SetValue(to)
	v.inputs[inputFrom].Focus()
	return v
}

// field adapts one text input to result.TextField.
type field struct {
	view *findView
	idx  int
}

func (f field) Value() string     { return f.view.inputs[f.idx].Value() }
func (f field) SetValue(v string) { f.view.inputs[f.idx].SetValue(v) }

func (v *findView) elements() result.Elements {
	return result.Elements{
		From:        field{view: v, idx: inputFrom},
		To:          field{view: v, idx: inputTo},
		Status:      v,
		Results:     v,
		Description: v,
	}
}

func (v *findView) SetStatus(s result.Status) {
	v.status = s
	v.hasStatus = true
}

func (v *findView) SetText(text string) { v.description = text }

func (v *findView) Hide() {
	v.panel = result.Panel{}
	v.explanation = ""
}

func (v *findView) Show(p result.Panel) {
	v.panel = p
	v.explanation = ""
	for _, row := range p.Rows {
		if row.Kind != result.RowExplanation {
			continue
		}
		rendered, err := cliui.RenderMarkdown(row.Text, v.width)
		if err != nil {
			rendered = row.Text
		}
		v.explanation = strings.TrimSpace(rendered)
	}
}

func (v *findView) setFocus(idx int) {
	v.focus = idx
	for i := range v.inputs {
		if i == idx {
			v.inputs[i].Focus()
		} else {
			v.inputs[i].Blur()
		}
	}
}

func toneStyle(t result.Tone) lipgloss.Style {
	switch t {
	case result.ToneError:
		return errorStyle
	case result.ToneSuccess:
		return successStyle
	case result.ToneFallback:
		return fallbackStyle
	default:
		return infoStyle
	}
}

// renderPanel draws the description and rows of a visible panel.
func (v *findView) renderPanel() string {
	if !v.panel.Visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(v.description))
	b.WriteString("\n\n")

	for i, row := range v.panel.Rows {
		if row.Kind == result.RowExplanation {
			fmt.Fprintf(&b, "  %s %s %s\n\n",
				teamStyle.Render(row.From),
				mutedStyle.Render("vs."),
				teamStyle.Render(row.To),
			)
			if v.explanation != "" {
				b.WriteString(v.explanation)
			} else {
				b.WriteString(row.Text)
			}
			b.WriteString("\n")
			continue
		}
		b.WriteString(renderEdge(i+1, row))
		b.WriteString("\n")
	}

	return b.String()
}

func renderEdge(n int, row result.Row) string {
	to := teamStyle.Render(row.To)
	if row.Final {
		to = finalTeamStyle.Render(row.To)
	}

	label := mutedStyle.Render(row.Text)
	if row.PastSeason {
		label = pastStyle.Render(row.Text)
	}

	return fmt.Sprintf("  %s %s %s %s  %s",
		mutedStyle.Render(fmt.Sprintf("%d.", n)),
		teamStyle.Render(row.From),
		arrowStyle.Render("→"),
		to,
		label,
	)
}
