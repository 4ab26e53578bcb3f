// Package proximity finds element pairs close enough to be joined by a
// connector. Nothing is kept between frames.
package proximity

import (
	"math"

	"github.com/san-kum/backdrop/internal/scene"
)

// Link joins elements I and J, with I < J.
type Link struct {
	I, J     int
	Distance float64
	Alpha    float64
}

// Visit calls fn once for every unordered pair (i, j) with i < j.
func Visit(elems []scene.Element, fn func(i, j int, d float64)) {
	for i := 0; i < len(elems); i++ {
		a := &elems[i]
		for j := i + 1; j < len(elems); j++ {
			b := &elems[j]
			fn(i, j, math.Hypot(a.X-b.X, a.Y-b.Y))
		}
	}
}

// Links appends to dst[:0] one link per pair closer than threshold, with
// alpha (1 - d/threshold) * baseAlpha. dst is reused only for capacity.
func Links(elems []scene.Element, threshold, baseAlpha float64, dst []Link) []Link {
	dst = dst[:0]
	if threshold <= 0 {
		return dst
	}
	Visit(elems, func(i, j int, d float64) {
		if d < threshold {
			dst = append(dst, Link{I: i, J: j, Distance: d, Alpha: (1 - d/threshold) * baseAlpha})
		}
	})
	return dst
}

// Pairs is the number of pair checks Visit performs for n elements.
func Pairs(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
