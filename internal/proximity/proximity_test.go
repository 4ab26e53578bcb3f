package proximity

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/backdrop/internal/scene"
)

func at(pts ...[2]float64) []scene.Element {
	out := make([]scene.Element, len(pts))
	for i, p := range pts {
		out[i] = scene.Element{X: p[0], Y: p[1], Size: 1, Opacity: 1}
	}
	return out
}

func TestLinksDistanceSixty(t *testing.T) {
	elems := at([2]float64{100, 100}, [2]float64{160, 100})
	links := Links(elems, 150, 0.1, nil)

	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	l := links[0]
	if l.I != 0 || l.J != 1 {
		t.Errorf("expected pair (0,1), got (%d,%d)", l.I, l.J)
	}
	if math.Abs(l.Alpha-0.6*0.1) > 1e-12 {
		t.Errorf("expected alpha 0.06, got %f", l.Alpha)
	}
}

func TestLinksThreshold(t *testing.T) {
	tests := []struct {
		name string
		d    float64
		want int
	}{
		{"coincident", 0, 1},
		{"close", 10, 1},
		{"just below", 149.999, 1},
		{"at threshold", 150, 0},
		{"far", 300, 0},
	}

	for _, tt := range tests {
		links := Links(at([2]float64{0, 0}, [2]float64{0, tt.d}), 150, 0.1, nil)
		if len(links) != tt.want {
			t.Errorf("%s: expected %d links, got %d", tt.name, tt.want, len(links))
		}
		for _, l := range links {
			if l.Alpha <= 0 || l.Alpha > 0.1 {
				t.Errorf("%s: alpha %f outside (0, 0.1]", tt.name, l.Alpha)
			}
		}
	}
}

func TestLinksMatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	elems := make([]scene.Element, 80)
	for i := range elems {
		elems[i] = scene.Element{X: rng.Float64() * 500, Y: rng.Float64() * 400}
	}

	links := Links(elems, 100, 0.1, nil)
	seen := make(map[[2]int]bool)
	for _, l := range links {
		key := [2]int{l.I, l.J}
		if l.I >= l.J {
			t.Errorf("link (%d,%d) not ordered", l.I, l.J)
		}
		if seen[key] {
			t.Errorf("pair (%d,%d) emitted twice", l.I, l.J)
		}
		seen[key] = true
	}

	for i := range elems {
		for j := i + 1; j < len(elems); j++ {
			d := math.Hypot(elems[i].X-elems[j].X, elems[i].Y-elems[j].Y)
			if (d < 100) != seen[[2]int{i, j}] {
				t.Errorf("pair (%d,%d) at distance %f: linked=%v", i, j, d, seen[[2]int{i, j}])
			}
		}
	}
}

func TestVisitEachPairOnce(t *testing.T) {
	elems := make([]scene.Element, 80)
	visits := make(map[[2]int]int)
	Visit(elems, func(i, j int, _ float64) {
		visits[[2]int{i, j}]++
	})

	if len(visits) != Pairs(80) || Pairs(80) != 3160 {
		t.Errorf("expected 3160 distinct pairs, got %d", len(visits))
	}
	for k, n := range visits {
		if n != 1 {
			t.Errorf("pair %v visited %d times", k, n)
		}
	}
}

func TestLinksReusesBuffer(t *testing.T) {
	buf := make([]Link, 0, 8)
	elems := at([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0})

	first := Links(elems, 10, 1, buf)
	second := Links(elems[:2], 10, 1, first)
	if len(second) != 1 {
		t.Errorf("expected stale links dropped, got %d", len(second))
	}
	if &second[0] != &buf[:1][0] {
		t.Error("expected buffer reuse")
	}
}
