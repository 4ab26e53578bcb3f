package draw

import (
	"fmt"
	"strings"

	"github.com/san-kum/backdrop/internal/palette"
)

// FrameToSVG converts the recorder's current frame to an SVG document.
// Gradient paints become <radialGradient>/<linearGradient> definitions in
// user space, so the output matches what a 2D canvas would show.
func FrameToSVG(rec *Recorder, background palette.Color) string {
	if rec == nil {
		return ""
	}
	w, h := rec.Size()

	var defs, body strings.Builder
	for i, c := range rec.Frame() {
		fill, stroke := "none", "none"
		ref := paintRef(&defs, fmt.Sprintf("g%d", i), c.Paint)
		switch c.Op {
		case OpFillCircle, OpFillPolygon:
			fill = ref
		default:
			stroke = ref
		}
		attrs := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%.2f"%s`, fill, stroke, c.Width, opacityAttr(c.Paint))

		switch c.Op {
		case OpFillCircle, OpStrokeCircle:
			body.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" %s/>
`, c.Points[0].X, c.Points[0].Y, c.Radius, attrs))
		case OpFillPolygon, OpStrokePolygon:
			body.WriteString(fmt.Sprintf(`<polygon points="%s" %s/>
`, pointList(c.Points), attrs))
		case OpStrokePolyline:
			body.WriteString(fmt.Sprintf(`<polyline points="%s" %s/>
`, pointList(c.Points), attrs))
		case OpLine:
			body.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" %s/>
`, c.Points[0].X, c.Points[0].Y, c.Points[1].X, c.Points[1].Y, attrs))
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<defs>
%s</defs>
<rect width="100%%" height="100%%" fill="%s"/>
%s</svg>
`, w, h, w, h, defs.String(), background.Hex(), body.String()))
	return sb.String()
}

// paintRef writes any gradient definition and returns the fill/stroke value.
func paintRef(defs *strings.Builder, id string, p Paint) string {
	switch {
	case p.Radial != nil:
		g := p.Radial
		defs.WriteString(fmt.Sprintf(`<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.1f" cy="%.1f" r="%.1f" fx="%.1f" fy="%.1f" fr="%.1f">
%s</radialGradient>
`, id, g.X1, g.Y1, g.R1, g.X0, g.Y0, g.R0, stopList(g.Stops)))
		return "url(#" + id + ")"
	case p.Linear != nil:
		g := p.Linear
		defs.WriteString(fmt.Sprintf(`<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f">
%s</linearGradient>
`, id, g.X0, g.Y0, g.X1, g.Y1, stopList(g.Stops)))
		return "url(#" + id + ")"
	}
	return p.Color.Hex()
}

func opacityAttr(p Paint) string {
	a := p.Alpha
	if p.Radial == nil && p.Linear == nil {
		a *= p.Color.A
	}
	if a >= 1 {
		return ""
	}
	return fmt.Sprintf(` opacity="%.3f"`, a)
}

func stopList(stops []Stop) string {
	var sb strings.Builder
	for _, s := range stops {
		sb.WriteString(fmt.Sprintf(`<stop offset="%.3f" stop-color="%s" stop-opacity="%.3f"/>
`, s.Offset, s.Color.Hex(), s.Color.A))
	}
	return sb.String()
}

func pointList(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
