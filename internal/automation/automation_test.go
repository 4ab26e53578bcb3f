package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/backdrop/internal/config"
)

const scenarioYAML = `
name: lifecycle
width: 800
height: 600
config:
  variant: particles
  effect: torch
  theme: system
  seed: 9
steps:
  - frames: 5
  - resize: [400, 300]
    pointer: [200, 150]
    frames: 1
  - system_dark: true
    frames: 1
  - theme: light
    frames: 1
  - stop: true
    frames: 3
  - start: true
    frames: 2
    save_as: %s
`

func writeScenario(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	svg := filepath.Join(dir, "last.svg")
	path := filepath.Join(dir, "scenario.yaml")
	body := strings.Replace(scenarioYAML, "%s", svg, 1)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path, svg
}

func TestLoadScenarioKeepsDefaults(t *testing.T) {
	path, _ := writeScenario(t)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Config.Variant != "particles" || sc.Config.FPS != config.DefaultFPS {
		t.Errorf("unexpected config %+v", sc.Config)
	}
	if sc.Config.Intensity != config.Low || len(sc.Steps) != 6 {
		t.Errorf("expected defaults and 6 steps, got %s and %d", sc.Config.Intensity, len(sc.Steps))
	}
}

func TestRunScenario(t *testing.T) {
	path, svg := writeScenario(t)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}

	frames := []uint64{5, 6, 7, 8, 8, 10}
	for i, want := range frames {
		if results[i].Frames != want {
			t.Errorf("step %d: expected %d frames, got %d", i+1, want, results[i].Frames)
		}
	}
	if results[1].Width != 400 || results[1].Elements != 30 {
		t.Errorf("expected reseed at 400 wide, got %+v", results[1])
	}
	if results[1].Dark || !results[2].Dark || results[3].Dark {
		t.Errorf("unexpected theme sequence %v %v %v", results[1].Dark, results[2].Dark, results[3].Dark)
	}
	if results[4].Running || !results[5].Running {
		t.Error("expected stop then start")
	}
	if results[5].Saved != svg {
		t.Errorf("expected saved path, got %q", results[5].Saved)
	}
	data, err := os.ReadFile(svg)
	if err != nil || !strings.Contains(string(data), "<svg") {
		t.Errorf("expected svg file, err=%v", err)
	}
}

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name string
		step Step
	}{
		{"resize", Step{Resize: []float64{1}}},
		{"pointer", Step{Pointer: []float64{1, 2, 3}}},
		{"theme", Step{Theme: "sepia"}},
		{"frames", Step{Frames: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := Scenario{Width: 10, Height: 10, Config: *config.DefaultConfig(), Steps: []Step{tt.step}}
			if err := sc.Validate(); !errors.Is(err, config.ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestRunSweep(t *testing.T) {
	results, err := RunSweep(context.Background(), &Sweep{
		Base:        *config.DefaultConfig(),
		Variants:    []string{"particles"},
		Intensities: []config.Intensity{config.Low, config.High},
		Frames:      3,
		Width:       320,
		Height:      240,
		Seed:        1,
	})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(results))
	}
	if results[0].Elements != 30 || results[1].Elements != 80 {
		t.Errorf("expected 30 and 80 elements, got %d and %d", results[0].Elements, results[1].Elements)
	}
	if results[1].DrawCalls <= results[0].DrawCalls {
		t.Errorf("expected more draws at high intensity: %d vs %d", results[1].DrawCalls, results[0].DrawCalls)
	}
}

func TestRunSweepUnknownVariant(t *testing.T) {
	_, err := RunSweep(context.Background(), &Sweep{Base: *config.DefaultConfig(), Variants: []string{"nope"}, Frames: 1})
	if err == nil {
		t.Error("expected error for unknown variant")
	}
}
