package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mrsolve/internal/multirate"
)

const (
	graphWidth      = 64
	graphHeight     = 10
	historyCapacity = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// StepMsg carries one completed macro step to the live view.
type StepMsg struct {
	T float64
	Y multirate.State
}

// DoneMsg signals that the solve finished or failed.
type DoneMsg struct {
	Err error
}

// StreamObserver forwards solver steps into the live view. The solve
// goroutine blocks on a full channel, so the view's consumption rate
// paces the integration.
type StreamObserver struct {
	ch chan StepMsg
}

func NewStreamObserver() *StreamObserver {
	return &StreamObserver{ch: make(chan StepMsg, 64)}
}

func (o *StreamObserver) OnStep(t float64, y multirate.State) {
	o.ch <- StepMsg{T: t, Y: y.Clone()}
}

// Close ends the stream; call it after Solve returns.
func (o *StreamObserver) Close() {
	close(o.ch)
}

// Model is the bubbletea model for the watch view: a rolling two-series
// graph of the first slow and first fast component plus a stats panel.
type Model struct {
	title   string
	slowDim int
	obs     *StreamObserver

	t       float64
	y       multirate.State
	steps   int
	slow    []float64
	fast    []float64
	done    bool
	solvErr error
}

func NewModel(title string, slowDim int, obs *StreamObserver) Model {
	return Model{
		title:   title,
		slowDim: slowDim,
		obs:     obs,
		slow:    make([]float64, 0, historyCapacity),
		fast:    make([]float64, 0, historyCapacity),
	}
}

func waitForStep(obs *StreamObserver) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-obs.ch
		if !ok {
			return DoneMsg{}
		}
		return msg
	}
}

func (m Model) Init() tea.Cmd {
	return waitForStep(m.obs)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case StepMsg:
		m.t = msg.T
		m.y = msg.Y
		m.steps++
		m.slow = appendRolling(m.slow, msg.Y[0])
		m.fast = appendRolling(m.fast, msg.Y[m.slowDim])
		return m, waitForStep(m.obs)

	case DoneMsg:
		m.done = true
		if msg.Err != nil {
			m.solvErr = msg.Err
		}
	}
	return m, nil
}

func appendRolling(series []float64, v float64) []float64 {
	if len(series) == historyCapacity {
		series = series[1:]
	}
	return append(series, v)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("mrsolve watch — %s", m.title)))
	b.WriteString("\n")

	if len(m.slow) > 1 {
		graph := asciigraph.PlotMany([][]float64{m.slow, m.fast},
			asciigraph.Width(graphWidth),
			asciigraph.Height(graphHeight),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.4f", m.t)) + "\n")
	b.WriteString(labelStyle.Render("macro steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	if len(m.y) > 0 {
		b.WriteString(labelStyle.Render("slow[0]") + valueStyle.Render(fmt.Sprintf("%+.5f", m.y[0])) + "\n")
		b.WriteString(labelStyle.Render("fast[0]") + valueStyle.Render(fmt.Sprintf("%+.5f", m.y[m.slowDim])) + "\n")
	}

	if m.done {
		if m.solvErr != nil {
			b.WriteString(helpStyle.Render(fmt.Sprintf("failed: %v — q to quit", m.solvErr)))
		} else {
			b.WriteString(helpStyle.Render("solve complete — q to quit"))
		}
	} else {
		b.WriteString(helpStyle.Render("q: quit"))
	}

	return b.String()
}
