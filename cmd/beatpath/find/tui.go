package findcmder

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papercomputeco/beatpath/pkg/result"
)

type findKeyMap struct {
	Submit key.Binding
	Next   key.Binding
	Swap   key.Binding
	Quit   key.Binding
}

func (k findKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Next, k.Swap, k.Quit}
}

func (k findKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Next}, {k.Swap, k.Quit}}
}

func defaultKeyMap() findKeyMap {
	return findKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "find path")),
		Next:   key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down"), key.WithHelp("tab", "switch team")),
		Swap:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "swap")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// fetchedMsg carries a finished request back to the event loop.
type fetchedMsg struct {
	outcome result.Outcome
}

type findModel struct {
	ctx       context.Context
	view      *findView
	ctrl      *result.Controller
	spinner   spinner.Model
	keys      findKeyMap
	help      help.Model
	searching bool
	initial   bubbletea.Cmd
}

func newFindModel(ctx context.Context, transport result.Transport, logger *slog.Logger, from, to string) (findModel, error) {
	view := newFindView(from, to)
	ctrl, err := result.NewController(view.elements(), transport, logger)
	if err != nil {
		return findModel{}, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))

	m := findModel{
		ctx:     ctx,
		view:    view,
		ctrl:    ctrl,
		spinner: sp,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}

	if strings.TrimSpace(from) != "" && strings.TrimSpace(to) != "" {
		var cmd bubbletea.Cmd
		m, cmd = m.submit()
		m.initial = cmd
	}

	return m, nil
}

func runFindTUI(ctx context.Context, transport result.Transport, logger *slog.Logger, from, to string) error {
	model, err := newFindModel(ctx, transport, logger, from, to)
	if err != nil {
		return err
	}

	program := bubbletea.NewProgram(model,
		bubbletea.WithContext(ctx),
	)
	_, err = program.Run()
	return err
}

func (m findModel) Init() bubbletea.Cmd {
	return bubbletea.Batch(textinput.Blink, m.initial)
}

func (m findModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.view.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case fetchedMsg:
		if m.ctrl.Apply(msg.outcome) {
			m.searching = m.ctrl.State() == result.StateSearching
		}
		return m, nil

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd bubbletea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bubbletea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInput(msg)
}

func (m findModel) handleKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, bubbletea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		m.view.setFocus((m.view.focus + 1) % len(m.view.inputs))
		return m, nil
	case key.Matches(msg, m.keys.Swap):
		m.ctrl.Swap()
		return m, nil
	}
	return m.updateInput(msg)
}

func (m findModel) updateInput(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	var cmd bubbletea.Cmd
	m.view.inputs[m.view.focus], cmd = m.view.inputs[m.view.focus].Update(msg)
	return m, cmd
}

// submit begins a lookup and hands the request to a command so the event
// loop stays free while it runs.
func (m findModel) submit() (findModel, bubbletea.Cmd) {
	ticket, ok := m.ctrl.Begin(m.ctx)
	if !ok {
		return m, nil
	}

	ctrl := m.ctrl
	fetch := func() bubbletea.Msg {
		return fetchedMsg{outcome: ctrl.Fetch(ticket)}
	}

	if m.searching {
		return m, fetch
	}
	m.searching = true
	return m, bubbletea.Batch(m.spinner.Tick, fetch)
}

func (m findModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Chain of Victories"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("From ") + m.view.inputs[inputFrom].View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("To   ") + m.view.inputs[inputTo].View())
	b.WriteString("\n\n")

	if m.view.hasStatus {
		line := toneStyle(m.view.status.Tone).Render(m.view.status.Message)
		if m.searching {
			line = m.spinner.View() + " " + line
		}
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	if panel := m.view.renderPanel(); panel != "" {
		b.WriteString(panel)
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
