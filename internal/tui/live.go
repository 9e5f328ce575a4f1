// Package tui renders a streaming load run live in the terminal: the
// source is advanced on a timed tick and the recent force magnitude of the
// selected channel is plotted.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/rconan/windloading/internal/source"
)

const (
	graphWidth      = 72
	graphHeight     = 14
	historyCapacity = 300
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model owns the source for the duration of the view; it is the loop
// driving Advance, one tick per frame.
type Model struct {
	src       *source.Source
	dt        float64
	frameRate int
	tags      []source.Tag
	history   map[source.Tag][]float64
	selected  int
	step      int
	done      bool
	paused    bool
}

func NewModel(src *source.Source, dt float64, frameRate int) Model {
	tags := src.Tags()
	history := make(map[source.Tag][]float64, len(tags))
	for _, tag := range tags {
		history[tag] = make([]float64, 0, historyCapacity)
	}
	return Model{
		src:       src,
		dt:        dt,
		frameRate: frameRate,
		tags:      tags,
		history:   history,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "tab", "right":
			m.selected = (m.selected + 1) % len(m.tags)
		case "left":
			m.selected = (m.selected + len(m.tags) - 1) % len(m.tags)
		}
		return m, nil
	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, m.tick()
		}
		outs, ok := m.src.Advance()
		if !ok {
			m.done = true
			return m, nil
		}
		for _, out := range outs {
			h := append(m.history[out.Tag], forceMagnitude(out.Data))
			if len(h) > historyCapacity {
				h = h[1:]
			}
			m.history[out.Tag] = h
		}
		m.step++
		return m, m.tick()
	}
	return m, nil
}

// forceMagnitude reduces a flat load vector to the norm of its first force
// triplet.
func forceMagnitude(data []float64) float64 {
	sum := 0.0
	for i := 0; i < 3 && i < len(data); i++ {
		sum += data[i] * data[i]
	}
	return math.Sqrt(sum)
}

func (m Model) View() string {
	if len(m.tags) == 0 {
		return "no channels selected\n"
	}
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("windload live"))
	sb.WriteString("\n")

	tag := m.tags[m.selected]
	names := make([]string, len(m.tags))
	for i, t := range m.tags {
		if i == m.selected {
			names[i] = activeStyle.Render(string(t))
		} else {
			names[i] = valueStyle.Render(string(t))
		}
	}
	sb.WriteString(labelStyle.Render("channels"))
	sb.WriteString(strings.Join(names, "  "))
	sb.WriteString("\n")

	sb.WriteString(labelStyle.Render("step"))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%d / %d", m.step, m.src.SampleCount())))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("time"))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%.2f s", float64(m.step)*m.dt)))
	if m.paused {
		sb.WriteString(activeStyle.Render("  [paused]"))
	}
	if m.done {
		sb.WriteString(activeStyle.Render("  [exhausted]"))
	}
	sb.WriteString("\n")

	h := m.history[tag]
	if len(h) > 1 {
		plot := asciigraph.Plot(h,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(fmt.Sprintf("|F| %s", tag)),
		)
		sb.WriteString(graphStyle.Render(plot))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("tab/←/→ channel · space pause · q quit"))
	sb.WriteString("\n")
	return sb.String()
}

// Run displays the live view until the user quits or the source runs out.
func Run(src *source.Source, dt float64, frameRate int) error {
	if frameRate < 1 {
		frameRate = 30
	}
	p := tea.NewProgram(NewModel(src, dt, frameRate))
	_, err := p.Run()
	return err
}
