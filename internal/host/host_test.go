package host

import (
	"errors"
	"testing"
	"time"

	"github.com/san-kum/backdrop/internal/draw"
)

func TestFlushRunsQueuedOnly(t *testing.T) {
	var b Base
	calls := 0
	var again func(time.Time)
	again = func(time.Time) {
		calls++
		b.RequestFrame(again)
	}
	b.RequestFrame(again)

	if n := b.Flush(time.Now()); n != 1 {
		t.Errorf("expected 1 callback, got %d", n)
	}
	if calls != 1 || b.Pending() != 1 {
		t.Errorf("expected re-request to wait, calls=%d pending=%d", calls, b.Pending())
	}
}

func TestCancelFrame(t *testing.T) {
	var b Base
	fired := false
	id := b.RequestFrame(func(time.Time) { fired = true })
	b.CancelFrame(id)
	b.CancelFrame(id + 100)

	b.Flush(time.Now())
	if fired {
		t.Error("cancelled frame fired")
	}
}

func TestTake(t *testing.T) {
	var b Base
	b.RequestFrame(func(time.Time) {})
	b.RequestFrame(func(time.Time) {})
	if got := len(b.Take()); got != 2 {
		t.Errorf("expected 2 callbacks, got %d", got)
	}
	if b.Pending() != 0 {
		t.Error("expected empty queue")
	}
}

func TestListeners(t *testing.T) {
	var b Base
	var size [2]float64
	var pos [2]float64
	offResize, _ := b.OnResize(func(w, h float64) { size = [2]float64{w, h} })
	offPointer, _ := b.OnPointerMove(func(x, y float64) { pos = [2]float64{x, y} })

	if b.Listeners() != 2 {
		t.Fatalf("expected 2 listeners, got %d", b.Listeners())
	}
	b.NotifyResize(640, 480)
	b.NotifyPointer(3, 4)
	if size != [2]float64{640, 480} || pos != [2]float64{3, 4} {
		t.Errorf("unexpected deliveries %v %v", size, pos)
	}

	offResize()
	offPointer()
	offResize()
	if b.Listeners() != 0 {
		t.Errorf("expected no listeners, got %d", b.Listeners())
	}
	b.NotifyResize(1, 1)
	if size != [2]float64{640, 480} {
		t.Error("removed listener still notified")
	}
}

func TestManualClock(t *testing.T) {
	m := NewManual(draw.NewRecorder(100, 100), 16*time.Millisecond)
	var seen []time.Time
	var loop func(time.Time)
	loop = func(now time.Time) {
		seen = append(seen, now)
		m.RequestFrame(loop)
	}
	m.RequestFrame(loop)

	if fired := m.Run(3); fired != 3 {
		t.Errorf("expected 3 frames, got %d", fired)
	}
	if d := seen[2].Sub(seen[0]); d != 32*time.Millisecond {
		t.Errorf("expected 32ms between frames 0 and 2, got %s", d)
	}
}

func TestManualResize(t *testing.T) {
	rec := draw.NewRecorder(100, 100)
	m := NewManual(rec, time.Millisecond)
	var got [2]float64
	m.OnResize(func(w, h float64) {
		sw, sh := rec.Size()
		got = [2]float64{sw, sh}
	})

	m.Resize(300, 200)
	if got != [2]float64{300, 200} {
		t.Errorf("expected surface resized before notify, got %v", got)
	}
}

func TestManualInjectedFailures(t *testing.T) {
	m := NewManual(draw.NewRecorder(1, 1), time.Millisecond)
	boom := errors.New("boom")
	m.SurfaceErr = boom
	m.ResizeErr = boom
	m.PointerErr = boom

	if _, err := m.Surface(); !errors.Is(err, boom) {
		t.Errorf("expected surface error, got %v", err)
	}
	if _, err := m.OnResize(func(float64, float64) {}); !errors.Is(err, boom) {
		t.Errorf("expected resize error, got %v", err)
	}
	if _, err := m.OnPointerMove(func(float64, float64) {}); !errors.Is(err, boom) {
		t.Errorf("expected pointer error, got %v", err)
	}
	if m.Listeners() != 0 {
		t.Error("failed registrations must not leave listeners")
	}
}
