// Package tui is the terminal front-end: a bubbletea program that hosts one
// background on a braille canvas and shows live frame statistics.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/control"
	"github.com/san-kum/backdrop/internal/engine"
	"github.com/san-kum/backdrop/internal/theme"
)

const (
	panelWidth = 32
	// Below this many rows the frame-time plot collapses to a sparkline.
	compactHeight = 24
)

type TickMsg time.Time

type Options struct {
	// Platform answers the system theme preference.
	Platform theme.Platform
	Logger   *slog.Logger
}

type Model struct {
	session *control.Session
	host    *Host

	width, height int
	lastTick      time.Time
	fps           float64
}

func New(cfg config.Config, opts Options) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := NewHost(80-panelWidth-1, 22, cfg.Terminal.Scale)
	h.SetOrigin(0, 1)
	s, err := control.NewSession(h, cfg, opts.Platform, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &Model{session: s, host: h, width: 80, height: 24}, nil
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(cfg config.Config, opts Options) error {
	m, err := New(cfg, opts)
	if err != nil {
		return err
	}
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

func (m *Model) Close() { m.session.Close() }

func (m *Model) Config() config.Config { return m.session.Config() }

func (m *Model) Handle() *engine.Handle { return m.session.Handle() }

func (m *Model) Host() *Host { return m.host }

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) tick() tea.Cmd {
	fps := time.Duration(m.session.Config().FPS)
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and drives the frame loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.session.Do(command(msg)) {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.host.Resize(max(m.width-panelWidth-1, 8), max(m.height-2, 4))
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			m.host.PointerAt(msg.X, msg.Y)
		}
	case TickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			if dt := now.Sub(m.lastTick).Seconds(); dt > 0 {
				m.fps = 1 / dt
			}
		}
		m.lastTick = now
		m.host.Flush(now)
		return m, m.tick()
	}
	return m, nil
}

func command(msg tea.KeyMsg) control.Command {
	switch msg.String() {
	case " ":
		return control.Toggle
	case "ctrl+c", "esc":
		return control.Quit
	}
	return control.Command(msg.String())
}

// View renders the canvas with the stats panel to its right.
func (m *Model) View() string {
	t := ThemeFor(m.session.IsDark())
	s := newStyles(t)

	header := s.header.Render("backdrop") + " " + s.help.Render(m.session.Config().Variant)
	canvas := strings.TrimSuffix(m.host.Canvas().Render(t.Background), "\n")
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", s.panel.Render(m.stats(s)))

	footer := s.help.Render(control.Help)
	if err := m.session.Err(); err != nil {
		footer = s.stopped.Render(err.Error())
	}
	return header + "\n" + body + "\n" + footer
}

func (m *Model) stats(s styles) string {
	var b strings.Builder
	cfg := m.session.Config()

	status := m.session.Status()
	if status == "running" {
		b.WriteString(s.running.Render("● "+status) + "\n\n")
	} else {
		b.WriteString(s.stopped.Render("○ "+status) + "\n\n")
	}

	mode := string(m.session.Mode())
	if m.session.IsDark() {
		mode += " (dark)"
	} else {
		mode += " (light)"
	}

	values := m.session.Collector().Values()
	b.WriteString(s.row("Variant", cfg.Variant))
	b.WriteString(s.row("Effect", control.EffectName(cfg.Effect)))
	b.WriteString(s.row("Theme", mode))
	b.WriteString(s.row("Intensity", string(cfg.Intensity)))
	b.WriteString(s.row("Elements", fmt.Sprintf("%.0f", values["elements"])))
	if h := m.session.Handle(); h != nil {
		b.WriteString(s.row("Frames", fmt.Sprintf("%d", h.Frames())))
	}
	b.WriteString(s.row("FPS", fmt.Sprintf("%.0f", m.fps)))
	b.WriteString(s.row("Frame", fmt.Sprintf("%.2fms", values["frame_ms"])))
	b.WriteString(s.row("Worst", fmt.Sprintf("%.2fms", values["frame_max_ms"])))

	hist := m.session.Collector().History()
	if len(hist) > 1 {
		b.WriteString("\n")
		if m.height < compactHeight {
			b.WriteString(s.label.Render("Render") + s.graph.Render(sparkline(hist, panelWidth-16)))
		} else {
			chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(panelWidth-14), asciigraph.Caption("render ms"))
			b.WriteString(s.graph.Render(chart))
		}
	}
	return b.String()
}
