package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/theme"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	m, err := New(*cfg, Options{Platform: theme.Fixed(true)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(s)}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tickN(m *Model, n int) {
	start := time.Unix(100, 0)
	for i := 0; i < n; i++ {
		m.Update(TickMsg(start.Add(time.Duration(i) * 16 * time.Millisecond)))
	}
}

func TestModelRendersFrames(t *testing.T) {
	m := newTestModel(t)
	tickN(m, 3)

	if got := m.Handle().Frames(); got != 3 {
		t.Errorf("expected 3 frames, got %d", got)
	}
	if m.Host().Canvas().Lit() == 0 {
		t.Error("expected lit dots after rendering")
	}
	if m.fps <= 0 {
		t.Errorf("expected fps estimate, got %f", m.fps)
	}
}

func TestResizeFitsCanvasBesidePanel(t *testing.T) {
	m := newTestModel(t)
	c := m.Host().Canvas()
	if c.Width != 100-panelWidth-1 || c.Height != 28 {
		t.Errorf("unexpected canvas %dx%d", c.Width, c.Height)
	}
	w, h := c.Size()
	snap := m.Handle().Snapshot()
	if snap.Width != w || snap.Height != h {
		t.Errorf("expected reseed at %.0fx%.0f, got %.0fx%.0f", w, h, snap.Width, snap.Height)
	}
}

func TestThemeKeyCyclesMode(t *testing.T) {
	m := newTestModel(t)
	if !m.Handle().IsDark() {
		t.Fatal("expected system mode to follow the dark platform")
	}
	m.Update(key("t"))
	if m.Config().Theme != theme.Light {
		t.Errorf("expected light after system, got %s", m.Config().Theme)
	}
	if m.Handle().IsDark() {
		t.Error("expected handle recolored to light")
	}
}

func TestSpaceTogglesLoop(t *testing.T) {
	m := newTestModel(t)
	m.Update(key(" "))
	if m.Handle().Running() {
		t.Fatal("expected stopped")
	}
	tickN(m, 2)
	if m.Handle().Frames() != 0 {
		t.Errorf("expected no frames while stopped, got %d", m.Handle().Frames())
	}
	m.Update(key(" "))
	if !m.Handle().Running() {
		t.Error("expected running again")
	}
}

func TestQuitDestroysHandle(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.Handle().Running() {
		t.Error("expected handle stopped on quit")
	}
}

func TestViewShowsStats(t *testing.T) {
	m := newTestModel(t)
	tickN(m, 5)
	view := m.View()
	for _, want := range []string{"backdrop", "floating-shapes", "running", "Intensity", "render ms"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHostPointerMapping(t *testing.T) {
	h := NewHost(10, 5, 8)
	h.SetOrigin(0, 1)
	var gotX, gotY float64
	calls := 0
	if _, err := h.OnPointerMove(func(x, y float64) { gotX, gotY, calls = x, y, calls+1 }); err != nil {
		t.Fatal(err)
	}

	if !h.PointerAt(2, 3) {
		t.Fatal("expected cell inside canvas")
	}
	if gotX != 40 || gotY != 80 {
		t.Errorf("expected (40,80), got (%.0f,%.0f)", gotX, gotY)
	}
	if h.PointerAt(2, 0) || h.PointerAt(10, 2) {
		t.Error("expected cells outside the canvas ignored")
	}
	if calls != 1 {
		t.Errorf("expected 1 notification, got %d", calls)
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline([]float64{1, 2, 3, 4}, 10); got != "▁▃▅█" {
		t.Errorf("unexpected sparkline %q", got)
	}
	if got := []rune(sparkline([]float64{1, 1, 1, 1, 1}, 3)); len(got) != 3 {
		t.Errorf("expected width-limited output, got %d runes", len(got))
	}
}

func TestVariantKeySwapsRenderer(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("v"))
	tickN(m, 2)
	if m.Config().Variant != "geometric" {
		t.Errorf("expected geometric, got %s", m.Config().Variant)
	}
	if got := m.Handle().Frames(); got != 2 {
		t.Errorf("expected the new handle to render, got %d frames", got)
	}
	if !strings.Contains(m.View(), "geometric") {
		t.Error("expected view to name the new variant")
	}
}
