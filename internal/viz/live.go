package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/evolve-sim/evolve/internal/dynamo"
	"github.com/evolve-sim/evolve/internal/timeseries"
)

const (
	historyCapacity = 240
	graphWidth      = 70
	graphHeight     = 14
	maxLiveSeries   = 4
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type tickMsg time.Time

// Live is a bubbletea model that pulls a producer on a timer and charts
// the leading state components as they evolve.
type Live struct {
	name     string
	producer *timeseries.Producer

	t       float64
	state   dynamo.State
	steps   int
	history [][]float64
	paused  bool
	err     error
}

// NewLive wraps a producer for interactive viewing.
func NewLive(name string, producer *timeseries.Producer) *Live {
	return &Live{name: name, producer: producer}
}

// RunLive drives the viewer until the user quits or a step fails.
func RunLive(name string, producer *timeseries.Producer) error {
	_, err := tea.NewProgram(NewLive(name, producer)).Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Live) Init() tea.Cmd { return tick() }

func (m *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case tickMsg:
		if m.paused || m.err != nil {
			return m, tick()
		}
		t, x, err := m.producer.Next()
		if err != nil {
			m.err = err
			return m, tick()
		}
		m.t, m.state = t, x
		m.steps++
		m.record(x)
		return m, tick()
	}
	return m, nil
}

func (m *Live) record(x dynamo.State) {
	dim := len(x)
	if dim > maxLiveSeries {
		dim = maxLiveSeries
	}
	if m.history == nil {
		m.history = make([][]float64, dim)
	}
	for j := 0; j < dim; j++ {
		m.history[j] = append(m.history[j], x[j])
		if len(m.history[j]) > historyCapacity {
			m.history[j] = m.history[j][1:]
		}
	}
}

func (m *Live) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("evolve live: %s", m.name)))
	b.WriteString("\n")

	if len(m.history) > 0 && len(m.history[0]) > 1 {
		graph := asciigraph.PlotMany(m.history,
			asciigraph.Width(graphWidth),
			asciigraph.Height(graphHeight),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("t"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.4f", m.t)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("steps"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.steps)))
	b.WriteString("\n")
	if m.state != nil {
		b.WriteString(labelStyle.Render("norm"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.6g", m.state.Norm())))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("stopped: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · q quit"))
	return b.String()
}
