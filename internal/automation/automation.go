// Package automation runs scripted scenarios and parameter sweeps against
// headless backgrounds.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/san-kum/backdrop/internal/bench"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/engine"
	"github.com/san-kum/backdrop/internal/host"
	"github.com/san-kum/backdrop/internal/palette"
	"github.com/san-kum/backdrop/internal/theme"
	"github.com/san-kum/backdrop/internal/variant"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of host events
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Width       float64       `yaml:"width"`
	Height      float64       `yaml:"height"`
	SystemDark  bool          `yaml:"system_dark"`
	Config      config.Config `yaml:"config"`
	Steps       []Step        `yaml:"steps"`
}

// Step applies its events in field order, then renders Frames frames.
type Step struct {
	Resize     []float64 `yaml:"resize"`
	Pointer    []float64 `yaml:"pointer"`
	Theme      string    `yaml:"theme"`
	SystemDark *bool     `yaml:"system_dark"`
	Stop       bool      `yaml:"stop"`
	Start      bool      `yaml:"start"`
	Frames     int       `yaml:"frames"`
	SaveAs     string    `yaml:"save_as"`
}

// StepResult is the handle state after a step.
type StepResult struct {
	Step      int
	Frames    uint64
	Elements  int
	Width     float64
	Height    float64
	Dark      bool
	Running   bool
	DrawCalls int
	Saved     string
}

// LoadScenario loads a scenario from a YAML file. Missing config fields
// keep their defaults.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scenario := Scenario{Width: 1280, Height: 720, Config: *config.DefaultConfig()}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: scenario size %.0fx%.0f", config.ErrInvalid, s.Width, s.Height)
	}
	for i, step := range s.Steps {
		if n := len(step.Resize); n != 0 && n != 2 {
			return fmt.Errorf("%w: step %d: resize wants [w, h]", config.ErrInvalid, i+1)
		}
		if n := len(step.Pointer); n != 0 && n != 2 {
			return fmt.Errorf("%w: step %d: pointer wants [x, y]", config.ErrInvalid, i+1)
		}
		if step.Theme != "" {
			if _, err := theme.ParseMode(step.Theme); err != nil {
				return fmt.Errorf("%w: step %d: %w", config.ErrInvalid, i+1, err)
			}
		}
		if step.Frames < 0 {
			return fmt.Errorf("%w: step %d: negative frames", config.ErrInvalid, i+1)
		}
	}
	return nil
}

// RunScenario executes all steps on a manual host with a recording surface.
func RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	log := slog.Default().With("scenario", scenario.Name)

	rec := draw.NewRecorder(scenario.Width, scenario.Height)
	m := host.NewManual(rec, time.Second/time.Duration(scenario.Config.FPS))
	platform := theme.NewSwitchable(scenario.SystemDark)
	resolver := theme.NewResolver(scenario.Config.Theme, platform)

	h, err := engine.Create(m, scenario.Config, engine.WithThemeSource(resolver), engine.WithLogger(log))
	if err != nil {
		return nil, err
	}
	defer h.Destroy()

	results := make([]StepResult, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		if len(step.Resize) == 2 {
			m.Resize(step.Resize[0], step.Resize[1])
		}
		if len(step.Pointer) == 2 {
			m.Move(step.Pointer[0], step.Pointer[1])
		}
		if step.Theme != "" {
			mode, _ := theme.ParseMode(step.Theme)
			resolver.SetMode(mode)
		}
		if step.SystemDark != nil {
			platform.Set(*step.SystemDark)
		}
		if step.Stop {
			h.Stop()
		}
		if step.Start {
			if err := h.Start(); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		m.Run(step.Frames)

		w, ht := rec.Size()
		res := StepResult{
			Step:      i + 1,
			Frames:    h.Frames(),
			Elements:  len(h.Snapshot().Elements),
			Width:     w,
			Height:    ht,
			Dark:      h.IsDark(),
			Running:   h.Running(),
			DrawCalls: len(rec.Frame()),
		}
		if step.SaveAs != "" {
			svg := draw.FrameToSVG(rec, palette.Background(res.Dark))
			if err := os.WriteFile(step.SaveAs, []byte(svg), 0644); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			res.Saved = step.SaveAs
		}
		results = append(results, res)
		log.Debug("step done", "step", res.Step, "frames", res.Frames, "running", res.Running, "dark", res.Dark)
	}

	return results, nil
}

// Sweep renders every variant at every intensity.
type Sweep struct {
	Base        config.Config
	Variants    []string
	Intensities []config.Intensity
	Frames      int
	Width       float64
	Height      float64
	Seed        int64
}

// SweepResult holds the metrics of one sweep cell
type SweepResult struct {
	Variant   string
	Intensity config.Intensity
	Elements  int
	DrawCalls int
	FrameMS   float64
	MaxMS     float64
}

// RunSweep executes a sweep. Empty lists mean every registered value.
func RunSweep(ctx context.Context, sweep *Sweep) ([]SweepResult, error) {
	variants := sweep.Variants
	if len(variants) == 0 {
		variants = variant.Names()
	}
	intensities := sweep.Intensities
	if len(intensities) == 0 {
		intensities = config.Intensities
	}
	w, h := sweep.Width, sweep.Height
	if w <= 0 || h <= 0 {
		w, h = 1280, 720
	}

	results := make([]SweepResult, 0, len(variants)*len(intensities))
	for _, name := range variants {
		for _, in := range intensities {
			cfg := sweep.Base.Clone()
			cfg.Variant, cfg.Intensity = name, in

			runs, err := bench.NewEnsemble(*cfg, 1, sweep.Seed).WithSize(w, h).Run(ctx, sweep.Frames)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", name, in, err)
			}
			r := runs[0]
			results = append(results, SweepResult{
				Variant:   name,
				Intensity: in,
				Elements:  int(r.Metrics["elements"]),
				DrawCalls: r.DrawCalls,
				FrameMS:   r.Metrics["frame_ms"],
				MaxMS:     r.Metrics["frame_max_ms"],
			})
			slog.Debug("sweep cell", "variant", name, "intensity", in, "frame_ms", r.Metrics["frame_ms"])
		}
	}
	return results, nil
}
