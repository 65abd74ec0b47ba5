// Package tui is the live terminal view: it steps a simulation on a
// frame tick and renders mode-appropriate output (heatmap, rod profile,
// or MD observables) until the run finishes or the user quits.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/matsim/internal/sim"
	"github.com/san-kum/matsim/internal/viz"
)

const (
	frameInterval   = time.Second / 30
	historyCapacity = 600
	graphWidth      = 48
	graphHeight     = 6
)

var dim = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model drives one simulation interactively. Zero value is not usable;
// construct with New.
type Model struct {
	s             *sim.Simulation
	stepsPerFrame int
	paused        bool

	etotHistory []float64
	tempHistory []float64

	width, height int
}

// New wraps a constructed simulation. stepsPerFrame controls how much
// simulated time passes per rendered frame.
func New(s *sim.Simulation, stepsPerFrame int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	return Model{
		s:             s,
		stepsPerFrame: stepsPerFrame,
		etotHistory:   make([]float64, 0, historyCapacity),
		tempHistory:   make([]float64, 0, historyCapacity),
		width:         80,
		height:        24,
	}
}

// Run blocks until the view exits.
func Run(s *sim.Simulation, stepsPerFrame int) error {
	_, err := tea.NewProgram(New(s, stepsPerFrame), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+", "=":
			m.stepsPerFrame *= 2
		case "-", "_":
			if m.stepsPerFrame > 1 {
				m.stepsPerFrame /= 2
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tickMsg:
		if !m.paused && !m.s.Finished() {
			for i := 0; i < m.stepsPerFrame && m.s.Step(); i++ {
			}
			m.sample()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) sample() {
	if m.s.Mode() != sim.ModeMD {
		return
	}
	m.etotHistory = append(m.etotHistory, m.s.TotalEnergy())
	m.tempHistory = append(m.tempHistory, m.s.Temperature())
	if len(m.etotHistory) > historyCapacity {
		m.etotHistory = m.etotHistory[1:]
		m.tempHistory = m.tempHistory[1:]
	}
}

func (m Model) status() string {
	switch {
	case m.s.Err() != nil:
		return viz.StatusPaused.Render("FAILED: " + m.s.Err().Error())
	case m.s.Finished():
		return viz.StatusFinished.Render("FINISHED")
	case m.paused:
		return viz.StatusPaused.Render("PAUSED")
	}
	return viz.StatusRunning.Render("RUNNING")
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(viz.HeaderStyle.Render(strings.ToUpper(m.s.Mode().String())) + "  " + m.status() + "\n\n")

	switch m.s.Mode() {
	case sim.ModeHeat2D:
		m.viewHeat2D(&b)
	case sim.ModeHeat1D:
		m.viewHeat1D(&b)
	default:
		m.viewMD(&b)
	}

	b.WriteString("\n" + viz.HelpStyle.Render("space: pause   +/-: speed   q: quit"))
	return b.String()
}

func (m Model) viewHeat2D(b *strings.Builder) {
	h := m.s.Heat2D()
	cols := (m.width - 4) / 2
	rows := m.height - 10
	b.WriteString(viz.Heatmap(h.Temperature(), h.Nx(), h.Ny(), viz.HeatmapOptions{
		MaxCols: cols, MaxRows: rows,
		TMin: h.TCold(), TMax: h.THot(),
	}))
	b.WriteString("\n\n")
	m.writeStat(b, "Time", fmt.Sprintf("%.4g s", m.s.Time()))
	m.writeStat(b, "Step", fmt.Sprintf("%d", m.s.StepCount()))
	m.writeStat(b, "Scale", fmt.Sprintf("%.0f K … %.0f K", h.TCold(), h.THot()))
	m.writeStat(b, "Speed", fmt.Sprintf("%d steps/frame", m.stepsPerFrame))
}

func (m Model) viewHeat1D(b *strings.Builder) {
	h := m.s.Heat1D()
	b.WriteString(viz.GraphStyle.Render(viz.Profile(h.Temperature(), m.width-12, m.height-12, "temperature [K] by cell")))
	b.WriteString("\n")
	m.writeStat(b, "Time", fmt.Sprintf("%.4g s", m.s.Time()))
	m.writeStat(b, "Step", fmt.Sprintf("%d", m.s.StepCount()))
	p := h.Params()
	if p.EndTime > 0 {
		m.writeStat(b, "Progress", viz.ProgressBar(m.s.Time()/p.EndTime, 24))
	}
	m.writeStat(b, "Speed", fmt.Sprintf("%d steps/frame", m.stepsPerFrame))
}

func (m Model) viewMD(b *strings.Builder) {
	if len(m.etotHistory) > 1 {
		b.WriteString(viz.GraphStyle.Render(viz.EnergySeries(m.etotHistory, graphWidth, graphHeight, "total energy [J]")))
		b.WriteString("\n\n")
	}
	m.writeStat(b, "Time", fmt.Sprintf("%.4g s", m.s.Time()))
	m.writeStat(b, "Step", fmt.Sprintf("%d", m.s.StepCount()))
	m.writeStat(b, "Particles", fmt.Sprintf("%d", m.s.System().Len()))
	m.writeStat(b, "E kinetic", fmt.Sprintf("%.6e J", m.s.KineticEnergy()))
	m.writeStat(b, "E potential", fmt.Sprintf("%.6e J", m.s.PotentialEnergy()))
	m.writeStat(b, "E total", fmt.Sprintf("%.6e J", m.s.TotalEnergy()))
	m.writeStat(b, "Temperature", fmt.Sprintf("%.2f K  %s", m.s.Temperature(), dim.Render(viz.Sparkline(m.tempHistory, 24))))
	m.writeStat(b, "Speed", fmt.Sprintf("%d steps/frame", m.stepsPerFrame))
}

func (m Model) writeStat(b *strings.Builder, label, value string) {
	b.WriteString(viz.LabelStyle.Render(label) + viz.ValueStyle.Render(value) + "\n")
}
