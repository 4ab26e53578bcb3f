package draw

import "sync"

// Op identifies a recorded drawing operation.
type Op int

const (
	OpClear Op = iota
	OpFillCircle
	OpStrokeCircle
	OpFillPolygon
	OpStrokePolygon
	OpStrokePolyline
	OpLine
)

var opNames = [...]string{"clear", "fill-circle", "stroke-circle", "fill-polygon", "stroke-polygon", "stroke-polyline", "line"}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// Command is one recorded operation. Circles keep their center in Points[0].
type Command struct {
	Op     Op
	Points []Point
	Radius float64
	Width  float64
	Paint  Paint
}

// Recorder is a Surface that captures the commands of the current frame.
// Clear starts a new frame. It is safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	w, h      float64
	frame     []Command
	drawCalls int
	clears    int
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{w: w, h: h}
}

func (r *Recorder) Size() (float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w, r.h
}

// SetSize changes the reported extent.
func (r *Recorder) SetSize(w, h float64) {
	r.mu.Lock()
	r.w, r.h = w, h
	r.mu.Unlock()
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	r.frame = r.frame[:0]
	r.clears++
	r.mu.Unlock()
}

func (r *Recorder) record(c Command) {
	r.mu.Lock()
	r.frame = append(r.frame, c)
	r.drawCalls++
	r.mu.Unlock()
}

func (r *Recorder) FillCircle(cx, cy, rad float64, p Paint) {
	r.record(Command{Op: OpFillCircle, Points: []Point{{cx, cy}}, Radius: rad, Paint: p})
}

func (r *Recorder) StrokeCircle(cx, cy, rad, width float64, p Paint) {
	r.record(Command{Op: OpStrokeCircle, Points: []Point{{cx, cy}}, Radius: rad, Width: width, Paint: p})
}

func (r *Recorder) FillPolygon(pts []Point, p Paint) {
	r.record(Command{Op: OpFillPolygon, Points: clonePoints(pts), Paint: p})
}

func (r *Recorder) StrokePolygon(pts []Point, width float64, p Paint) {
	r.record(Command{Op: OpStrokePolygon, Points: clonePoints(pts), Width: width, Paint: p})
}

func (r *Recorder) StrokePolyline(pts []Point, width float64, p Paint) {
	r.record(Command{Op: OpStrokePolyline, Points: clonePoints(pts), Width: width, Paint: p})
}

func (r *Recorder) Line(x0, y0, x1, y1, width float64, p Paint) {
	r.record(Command{Op: OpLine, Points: []Point{{x0, y0}, {x1, y1}}, Width: width, Paint: p})
}

// Frame returns a copy of the commands recorded since the last Clear.
func (r *Recorder) Frame() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.frame))
	copy(out, r.frame)
	return out
}

// DrawCalls counts every non-clear command ever recorded.
func (r *Recorder) DrawCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drawCalls
}

// Clears counts Clear calls.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

// Count returns how many commands of op the current frame holds.
func (r *Recorder) Count(op Op) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.frame {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Playback replays the current frame onto dst, starting with a Clear.
func (r *Recorder) Playback(dst Surface) {
	dst.Clear()
	for _, c := range r.Frame() {
		Replay(dst, c)
	}
}

// Replay issues a single command on dst.
func Replay(dst Surface, c Command) {
	switch c.Op {
	case OpClear:
		dst.Clear()
	case OpFillCircle:
		dst.FillCircle(c.Points[0].X, c.Points[0].Y, c.Radius, c.Paint)
	case OpStrokeCircle:
		dst.StrokeCircle(c.Points[0].X, c.Points[0].Y, c.Radius, c.Width, c.Paint)
	case OpFillPolygon:
		dst.FillPolygon(c.Points, c.Paint)
	case OpStrokePolygon:
		dst.StrokePolygon(c.Points, c.Width, c.Paint)
	case OpStrokePolyline:
		dst.StrokePolyline(c.Points, c.Width, c.Paint)
	case OpLine:
		dst.Line(c.Points[0].X, c.Points[0].Y, c.Points[1].X, c.Points[1].Y, c.Width, c.Paint)
	}
}

func clonePoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}
