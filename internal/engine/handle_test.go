package engine_test

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/engine"
	"github.com/san-kum/backdrop/internal/host"
	"github.com/san-kum/backdrop/internal/palette"
	"github.com/san-kum/backdrop/internal/pointer"
	"github.com/san-kum/backdrop/internal/theme"
	"github.com/san-kum/backdrop/internal/variant"
)

// flaky panics on the next n circle fills.
type flaky struct {
	*draw.Recorder
	n int
}

func (f *flaky) FillCircle(cx, cy, r float64, p draw.Paint) {
	if f.n > 0 {
		f.n--
		panic("fill failed")
	}
	f.Recorder.FillCircle(cx, cy, r, p)
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func cfgFor(variantName string, intensity config.Intensity) config.Config {
	cfg := *config.DefaultConfig()
	cfg.Variant = variantName
	cfg.Intensity = intensity
	cfg.Theme = theme.Light
	cfg.Spring.Frequency = 0
	return cfg
}

func create(h engine.Host, cfg config.Config, opts ...engine.Option) *engine.Handle {
	opts = append([]engine.Option{engine.WithLogger(quiet), engine.WithRand(rand.New(rand.NewSource(1)))}, opts...)
	handle, err := engine.Create(h, cfg, opts...)
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(handle.Destroy)
	return handle
}

var _ = Describe("Handle", func() {
	var (
		rec *draw.Recorder
		m   *host.Manual
	)

	BeforeEach(func() {
		rec = draw.NewRecorder(800, 600)
		m = host.NewManual(rec, 16*time.Millisecond)
	})

	Describe("Create", func() {
		DescribeTable("seeds the pool from the intensity table",
			func(name string, intensity config.Intensity, want int) {
				h := create(m, cfgFor(name, intensity))
				Expect(h.Snapshot().Elements).To(HaveLen(want))
			},
			Entry("low floating-shapes", "floating-shapes", config.Low, 15),
			Entry("medium geometric", "geometric", config.Medium, 25),
			Entry("high floating-shapes", "floating-shapes", config.High, 40),
			Entry("low particles", "particles", config.Low, 30),
			Entry("high particles", "particles", config.High, 80),
			Entry("waves draws without a pool", "waves", config.High, 0),
			Entry("dots draws without a pool", "dots", config.Medium, 0),
		)

		It("fails fast on an unknown variant", func() {
			_, err := engine.Create(m, cfgFor("sparkles", config.Low), engine.WithLogger(quiet))
			Expect(err).To(MatchError(variant.ErrUnknownVariant))
			Expect(m.Pending()).To(BeZero())
		})

		It("fails fast on an unknown effect", func() {
			cfg := cfgFor("waves", config.Low)
			cfg.Effect = "sparkle"
			_, err := engine.Create(m, cfg, engine.WithLogger(quiet))
			Expect(err).To(MatchError(pointer.ErrUnknownEffect))
		})

		It("rejects invalid configuration", func() {
			_, err := engine.Create(m, cfgFor("waves", "extreme"), engine.WithLogger(quiet))
			Expect(err).To(MatchError(config.ErrInvalid))
		})

		It("returns an inert handle when the surface is unavailable", func() {
			m.SurfaceErr = errors.New("no context")
			h := create(m, cfgFor("particles", config.Low))

			Expect(h.Inert()).To(BeTrue())
			Expect(h.Running()).To(BeFalse())
			Expect(m.Pending()).To(BeZero())
			Expect(m.Listeners()).To(BeZero())
			Expect(h.Start()).To(Succeed())
			Expect(m.Run(3)).To(BeZero())
			Expect(rec.DrawCalls()).To(BeZero())
		})
	})

	Describe("frame loop", func() {
		It("keeps at most one frame pending", func() {
			h := create(m, cfgFor("particles", config.Medium))
			Expect(m.Pending()).To(Equal(1))

			m.Run(10)
			Expect(m.Pending()).To(Equal(1))
			Expect(h.Frames()).To(Equal(uint64(10)))
			Expect(m.Requests()).To(Equal(11))
		})

		It("clears the surface before every frame", func() {
			create(m, cfgFor("floating-shapes", config.Low))
			m.Run(5)
			Expect(rec.Clears()).To(Equal(5))
			Expect(rec.Frame()).To(HaveLen(15))
		})

		It("recovers a failing frame and keeps scheduling", func() {
			f := &flaky{Recorder: rec, n: 1}
			fm := host.NewManual(f, time.Millisecond)
			h := create(fm, cfgFor("dots", config.Low))

			fm.Run(3)
			Expect(h.Failures()).To(Equal(uint64(1)))
			Expect(h.Frames()).To(Equal(uint64(3)))
			Expect(fm.Pending()).To(Equal(1))
		})

		It("reports every frame to the observer", func() {
			var stats []engine.FrameStats
			create(m, cfgFor("particles", config.Low), engine.WithObserver(engine.ObserverFunc(func(s engine.FrameStats) {
				stats = append(stats, s)
			})))

			m.Run(4)
			Expect(stats).To(HaveLen(4))
			Expect(stats[3].Frame).To(Equal(uint64(4)))
			Expect(stats[3].Elapsed).To(Equal(48 * time.Millisecond))
			Expect(stats[3].Elements).To(Equal(30))
		})
	})

	Describe("Stop", func() {
		It("releases every subscription and the pending frame", func() {
			platform := theme.NewSwitchable(false)
			resolver := theme.NewResolver(theme.System, platform)
			cfg := cfgFor("particles", config.Low)
			cfg.Effect = "liquid"
			h := create(m, cfg, engine.WithThemeSource(resolver))

			Expect(m.Listeners()).To(Equal(2))
			Expect(resolver.Subscribers()).To(Equal(1))
			Expect(h.Subscriptions()).To(Equal(3))

			h.Stop()
			Expect(h.Running()).To(BeFalse())
			Expect(m.Pending()).To(BeZero())
			Expect(m.Listeners()).To(BeZero())
			Expect(resolver.Subscribers()).To(BeZero())
			Expect(h.Subscriptions()).To(BeZero())
		})

		It("turns an already queued frame into a no-op", func() {
			h := create(m, cfgFor("particles", config.High))
			m.Run(2)
			draws, clears := rec.DrawCalls(), rec.Clears()
			before := h.Snapshot()

			queued := m.Take()
			Expect(queued).To(HaveLen(1))
			h.Stop()
			for _, fn := range queued {
				fn(m.Now().Add(time.Second))
			}

			Expect(rec.DrawCalls()).To(Equal(draws))
			Expect(rec.Clears()).To(Equal(clears))
			Expect(h.Snapshot()).To(Equal(before))
			Expect(m.Pending()).To(BeZero())
		})

		It("ignores a frame queued before a restart", func() {
			h := create(m, cfgFor("particles", config.Low))
			m.Run(2)

			queued := m.Take()
			h.Stop()
			Expect(h.Start()).To(Succeed())
			Expect(m.Pending()).To(Equal(1))
			for _, fn := range queued {
				fn(m.Now().Add(time.Second))
			}
			Expect(m.Pending()).To(Equal(1))
			Expect(h.Frames()).To(Equal(uint64(2)))

			m.Run(10)
			Expect(m.Pending()).To(Equal(1))
			Expect(h.Frames()).To(Equal(uint64(12)))
		})

		It("can be restarted", func() {
			h := create(m, cfgFor("geometric", config.Low))
			h.Stop()
			Expect(h.Start()).To(Succeed())
			m.Run(2)
			Expect(h.Frames()).To(Equal(uint64(2)))
			Expect(m.Pending()).To(Equal(1))
		})

		It("is idempotent through Destroy", func() {
			h := create(m, cfgFor("waves", config.Low))
			h.Destroy()
			h.Destroy()
			h.Stop()
			Expect(h.Start()).To(MatchError(engine.ErrDestroyed))
			Expect(m.Pending()).To(BeZero())
		})
	})

	Describe("resize", func() {
		It("re-seeds before the next frame", func() {
			h := create(m, cfgFor("floating-shapes", config.Medium))
			m.Run(1)

			m.Resize(400, 300)
			st := h.Snapshot()
			Expect(st.Width).To(Equal(400.0))
			Expect(st.Height).To(Equal(300.0))
			Expect(st.Elements).To(HaveLen(25))
			for _, e := range st.Elements {
				Expect(e.X).To(BeNumerically("<=", 400))
				Expect(e.Y).To(BeNumerically("<=", 300))
			}
		})

		It("keeps the pool size when the extent repeats", func() {
			h := create(m, cfgFor("particles", config.Medium))
			m.Resize(640, 480)
			first := h.Snapshot()
			m.Resize(640, 480)
			second := h.Snapshot()

			Expect(second.Elements).To(HaveLen(len(first.Elements)))
			Expect(second.Elements).NotTo(Equal(first.Elements))
		})

		It("degrades when resize events are unavailable", func() {
			m.ResizeErr = engine.ErrListenerUnavailable
			h := create(m, cfgFor("particles", config.Low))

			m.Resize(100, 100)
			Expect(h.Snapshot().Width).To(Equal(800.0))
			m.Run(3)
			Expect(h.Frames()).To(Equal(uint64(3)))
		})
	})

	Describe("theme", func() {
		It("recolors the pool when the system preference flips", func() {
			platform := theme.NewSwitchable(false)
			cfg := cfgFor("floating-shapes", config.Low)
			cfg.Theme = theme.System
			h := create(m, cfg, engine.WithPlatform(platform))
			Expect(h.IsDark()).To(BeFalse())

			platform.Set(true)
			Expect(h.IsDark()).To(BeTrue())
			for _, e := range h.Snapshot().Elements {
				Expect(e.Color).To(Equal(palette.Generate(true, e.ColorSeed)))
			}
		})

		It("ignores changes after Stop", func() {
			platform := theme.NewSwitchable(false)
			cfg := cfgFor("floating-shapes", config.Low)
			cfg.Theme = theme.System
			h := create(m, cfg, engine.WithPlatform(platform))

			h.Stop()
			platform.Set(true)
			Expect(h.IsDark()).To(BeFalse())
		})
	})

	Describe("pointer effects", func() {
		It("draws the effect at the latest pointer position", func() {
			cfg := cfgFor("waves", config.Low)
			cfg.Effect = "liquid"
			create(m, cfg)

			m.Move(120, 80)
			m.Step()
			cmds := rec.Frame()
			glow := cmds[len(cmds)-4]
			Expect(glow.Op).To(Equal(draw.OpFillCircle))
			Expect(glow.Points[0]).To(Equal(draw.Point{X: 120, Y: 80}))
		})

		It("starts at the origin before any pointer event", func() {
			cfg := cfgFor("waves", config.Low)
			cfg.Effect = "abstract"
			create(m, cfg)
			m.Step()
			Expect(rec.Count(draw.OpLine)).To(Equal(3))
		})

		It("draws nothing for the torch on a light theme", func() {
			cfg := cfgFor("waves", config.Low)
			cfg.Effect = "torch"
			create(m, cfg)
			m.Step()
			Expect(rec.Count(draw.OpFillCircle)).To(BeZero())
			Expect(rec.Count(draw.OpLine)).To(BeZero())
		})

		It("skips pointer tracking when pointer events are unavailable", func() {
			m.PointerErr = engine.ErrListenerUnavailable
			cfg := cfgFor("waves", config.Low)
			cfg.Effect = "liquid"
			h := create(m, cfg)
			Expect(h.Subscriptions()).To(Equal(2))

			m.Move(50, 50)
			m.Step()
			Expect(rec.Frame()[rec.Count(draw.OpStrokePolyline)].Points[0]).To(Equal(draw.Point{}))
		})
	})

	It("runs independent handles without sharing state", func() {
		other := host.NewManual(draw.NewRecorder(200, 100), time.Millisecond)
		a := create(m, cfgFor("particles", config.High))
		b := create(other, cfgFor("particles", config.Low))

		m.Run(3)
		Expect(a.Frames()).To(Equal(uint64(3)))
		Expect(b.Frames()).To(BeZero())
		Expect(b.Snapshot().Width).To(Equal(200.0))

		a.Destroy()
		Expect(other.Pending()).To(Equal(1))
	})
})
