package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/Natnat0905/GeoChat/internal/geometry"
)

// fmtNum prints a measurement the short way: no trailing zeros, no exponent
// for the magnitudes that occur in classroom problems.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func circleFigure(s geometry.Circle) ([]byte, error) {
	r := s.Radius
	c := newCanvas(600, 600)
	c.setViewport(-r*1.2, -r*1.2, r*1.2, r*1.2)

	c.grid()
	c.axes()
	c.circleOutline(0, 0, r, colorBlue)

	// Radius annotation from the midpoint down to the center.
	c.arrow(0, r/2, 0, 0, colorGreen)
	c.textOffset(0, r/2, 0, -14, fmt.Sprintf("r = %s cm", fmtNum(r)), colorGreen)

	c.title(fmt.Sprintf("Circle Visualization (Radius: %s cm)", fmtNum(r)))
	c.axisLabel("Centimeters (cm)")
	return c.encode()
}

func circleAngleFigure(s geometry.CircleAngle) ([]byte, error) {
	c := newCanvas(600, 600)
	c.setViewport(-1.4, -1.4, 1.4, 1.4)

	c.grid()
	c.circleOutline(0, 0, 1, colorBlue)

	// Chord endpoints placed so the intercepted arcs sit at the top and
	// bottom of the circle; the vertical angle between the chords then
	// equals the mean of the two arcs.
	pt := func(deg float64) (float64, float64) {
		rad := deg * math.Pi / 180
		return math.Cos(rad), math.Sin(rad)
	}
	a1x, a1y := pt(90 + s.Arc1/2)
	b1x, b1y := pt(90 - s.Arc1/2)
	a2x, a2y := pt(270 + s.Arc2/2)
	b2x, b2y := pt(270 - s.Arc2/2)

	c.line(a1x, a1y, a2x, a2y, colorPurple)
	c.line(b1x, b1y, b2x, b2y, colorPurple)

	c.arc(0, 0, 1, 90-s.Arc1/2, 90+s.Arc1/2, colorGreen)
	c.arc(0, 0, 1, 270-s.Arc2/2, 270+s.Arc2/2, colorGreen)

	c.textOffset(0, 1, 0, -16, fmt.Sprintf("arc1 = %s°", fmtNum(s.Arc1)), colorGreen)
	c.textOffset(0, -1, 0, 16, fmt.Sprintf("arc2 = %s°", fmtNum(s.Arc2)), colorGreen)

	// Intersection of the two chords.
	ix, iy := lineIntersection(a1x, a1y, a2x, a2y, b1x, b1y, b2x, b2y)
	c.marker(ix, iy, colorPurple)
	angle := s.Angle
	if angle == 0 {
		angle = (s.Arc1 + s.Arc2) / 2
	}
	c.textOffset(ix, iy, 0, -16, fmt.Sprintf("angle = %.1f°", angle), colorRed)

	c.title(fmt.Sprintf("Intersecting Chords (Angle: %.1f°)", angle))
	return c.encode()
}

// lineIntersection returns the intersection point of segments AB and CD.
// Callers pass chords of the same circle, which always cross.
func lineIntersection(ax, ay, bx, by, cx, cy, dx, dy float64) (float64, float64) {
	d := (bx-ax)*(dy-cy) - (by-ay)*(dx-cx)
	if d == 0 {
		return (ax + bx) / 2, (ay + by) / 2
	}
	t := ((cx-ax)*(dy-cy) - (cy-ay)*(dx-cx)) / d
	return ax + t*(bx-ax), ay + t*(by-ay)
}

func rectangleFigure(s geometry.Rectangle) ([]byte, error) {
	w, h := s.Width, s.Height
	c := newCanvas(700, 600)
	c.setViewport(-1, -1, w+1, h+1)

	c.grid()
	c.axes()
	c.rectOutline(0, 0, w, h, colorCyan)

	c.textOffset(w/2, 0, 0, 18, fmt.Sprintf("Width: %s cm", fmtNum(w)), colorGreen)
	c.textOffset(0, h/2, -42, 0, fmt.Sprintf("Height: %s cm", fmtNum(h)), colorGreen)
	c.text(w/2, h/2, fmt.Sprintf("Area: %s cm²", fmtNum(w*h)), colorRed)

	if s.IsSquare() {
		c.title(fmt.Sprintf("Square (Side %s cm)", fmtNum(w)))
	} else {
		c.title(fmt.Sprintf("Rectangle Visualization (%s cm × %s cm)", fmtNum(w), fmtNum(h)))
	}
	c.axisLabel("Centimeters (cm)")
	return c.encode()
}

func rightTriangleFigure(s geometry.RightTriangle) ([]byte, error) {
	leg1, leg2 := s.Side1, s.Side2
	c := newCanvas(700, 600)
	c.setViewport(-0.5, -0.5, math.Max(leg1, 3)+1, math.Max(leg2, 3)+1)

	c.grid()
	c.axes()

	pts := [][2]float64{{0, 0}, {leg1, 0}, {0, leg2}, {0, 0}}
	c.polyline(pts, colorPurple)
	for _, p := range pts[:3] {
		c.marker(p[0], p[1], colorPurple)
	}

	// Right angle indicator at the origin.
	box := math.Min(0.4, math.Min(leg1, leg2)*0.2)
	c.fillRect(0, 0, box, box, colorRightAngle)

	c.textOffset(leg1/2, 0, 0, 18, fmt.Sprintf("%s cm", fmtNum(leg1)), colorGreen)
	c.textOffset(0, leg2/2, -30, 0, fmt.Sprintf("%s cm", fmtNum(leg2)), colorGreen)
	c.textLines(leg1/2, leg2/2, []string{
		fmt.Sprintf("√(%s² + %s²)", fmtNum(leg1), fmtNum(leg2)),
		fmt.Sprintf("≈ %.1f cm", s.Hypotenuse),
	}, colorRed)

	c.title(fmt.Sprintf("Right-Angled Triangle (Legs: %s cm & %s cm)", fmtNum(leg1), fmtNum(leg2)))
	c.axisLabel("Centimeters (cm)")
	return c.encode()
}

func equilateralTriangleFigure(s geometry.EquilateralTriangle) ([]byte, error) {
	side := s.Side
	h := s.Height
	if h == 0 {
		h = math.Sqrt(3) / 2 * side
	}
	c := newCanvas(700, 600)
	c.setViewport(-1, -1, side+1, h+1)

	c.grid()
	c.axes()

	pts := [][2]float64{{0, 0}, {side, 0}, {side / 2, h}, {0, 0}}
	c.polyline(pts, colorBlue)
	for _, p := range pts[:3] {
		c.marker(p[0], p[1], colorBlue)
	}

	label := fmt.Sprintf("%s cm", fmtNum(side))
	c.textOffset(side/2, 0, 0, 18, label, colorGreen)
	c.textOffset(side/4, h/2, -28, 0, label, colorGreen)
	c.textOffset(3*side/4, h/2, 28, 0, label, colorGreen)

	// Height from apex to base midpoint.
	c.dashedLine(side/2, h, side/2, 0, colorRed)
	c.textOffset(side/2, h/2, 36, 0, fmt.Sprintf("h ≈ %.2f cm", h), colorRed)

	c.title(fmt.Sprintf("Equilateral Triangle (Side: %s cm)", fmtNum(side)))
	c.axisLabel("Centimeters (cm)")
	return c.encode()
}

func isoscelesTriangleFigure(s geometry.IsoscelesTriangle) ([]byte, error) {
	base, eq := s.Base, s.EqualSides
	h := s.Height
	if h == 0 {
		h = math.Sqrt(math.Max(eq*eq-(base/2)*(base/2), 0))
	}
	c := newCanvas(700, 600)
	c.setViewport(-1, -1, base+1, h+1)

	c.grid()
	c.axes()

	pts := [][2]float64{{0, 0}, {base, 0}, {base / 2, h}, {0, 0}}
	c.polyline(pts, colorPink)
	for _, p := range pts[:3] {
		c.marker(p[0], p[1], colorPink)
	}

	c.textOffset(base/2, 0, 0, 18, fmt.Sprintf("%s cm", fmtNum(base)), colorGreen)
	eqLabel := fmt.Sprintf("%s cm", fmtNum(eq))
	c.textOffset(base/4, h/2, -28, 0, eqLabel, colorGreen)
	c.textOffset(3*base/4, h/2, 28, 0, eqLabel, colorGreen)

	c.dashedLine(base/2, h, base/2, 0, colorRed)
	c.textOffset(base/2, h/2, 36, 0, fmt.Sprintf("h ≈ %.2f cm", h), colorRed)

	c.title(fmt.Sprintf("Isosceles Triangle (Base: %s cm, Sides: %s cm)", fmtNum(base), fmtNum(eq)))
	c.axisLabel("Centimeters (cm)")
	return c.encode()
}

func generalTriangleFigure(s geometry.GeneralTriangle) ([]byte, error) {
	// Sort sides ascending; the longest becomes the base.
	a, b, cs := s.SideA, s.SideB, s.SideC
	if a > b {
		a, b = b, a
	}
	if b > cs {
		b, cs = cs, b
	}
	if a > b {
		a, b = b, a
	}

	// Apex placement by the law of cosines.
	x := (a*a - b*b + cs*cs) / (2 * cs)
	y := math.Sqrt(math.Max(a*a-x*x, 0))
	if y == 0 {
		return nil, fmt.Errorf("degenerate triangle %g, %g, %g", a, b, cs)
	}

	c := newCanvas(700, 600)
	c.setViewport(-1, -1, cs+1, y+1)

	c.grid()
	c.axes()

	pts := [][2]float64{{0, 0}, {cs, 0}, {x, y}, {0, 0}}
	c.polyline(pts, colorPink)
	for _, p := range pts[:3] {
		c.marker(p[0], p[1], colorPink)
	}

	c.textOffset(cs/2, 0, 0, 18, fmt.Sprintf("%s cm", fmtNum(cs)), colorGreen)
	c.textOffset(x/2, y/2, -30, 0, fmt.Sprintf("%s cm", fmtNum(a)), colorGreen)
	c.textOffset((cs+x)/2, y/2, 30, 0, fmt.Sprintf("%s cm", fmtNum(b)), colorGreen)

	if s.Area > 0 {
		c.text(cs/2, y/3, fmt.Sprintf("Area ≈ %.2f cm²", s.Area), colorRed)
	}

	c.title(fmt.Sprintf("Triangle with Sides: %s cm, %s cm, %s cm", fmtNum(a), fmtNum(b), fmtNum(cs)))
	c.axisLabel("Centimeters (cm)")
	return c.encode()
}

func similarTrianglesFigure(s geometry.SimilarTriangles) ([]byte, error) {
	s1, s2 := s.Side1, s.Side2

	// Two similar triangles sharing proportions, drawn side by side with the
	// labeled sides as bases.
	h1 := s1 * 0.6
	h2 := s2 * 0.6
	gap := math.Max(s1, s2) * 0.25
	totalW := s1 + gap + s2
	maxH := math.Max(h1, h2)

	c := newCanvas(800, 500)
	c.setViewport(-1, -1, totalW+1, maxH+1)

	c.grid()
	c.axes()

	t1 := [][2]float64{{0, 0}, {s1, 0}, {s1 * 0.35, h1}, {0, 0}}
	c.polyline(t1, colorBlue)
	off := s1 + gap
	t2 := [][2]float64{{off, 0}, {off + s2, 0}, {off + s2*0.35, h2}, {off, 0}}
	c.polyline(t2, colorOrange)

	c.textOffset(s1/2, 0, 0, 18, fmt.Sprintf("%s cm", fmtNum(s1)), colorGreen)
	c.textOffset(off+s2/2, 0, 0, 18, fmt.Sprintf("%s cm", fmtNum(s2)), colorGreen)
	c.text(totalW/2, maxH*0.9, fmt.Sprintf("ratio k ≈ %.2f", s.Ratio), colorRed)

	c.title(fmt.Sprintf("Similar Triangles (Ratio: %.2f)", s.Ratio))
	c.axisLabel("Centimeters (cm)")
	return c.encode()
}

// trigFigure plots one period of the named function. Tangent branches are
// clipped where |y| > 5, leaving gaps at the asymptotes.
func trigFigure(s geometry.Trigonometric) ([]byte, error) {
	type trigConfig struct {
		fn     func(float64) float64
		col    color.RGBA
		label  string
		textX  float64
		textY  float64
		yLimit float64
	}

	var cfg trigConfig
	switch s.Function {
	case "sin":
		cfg = trigConfig{math.Sin, colorBlue, "Sine", 3 * math.Pi / 2, -0.9, 1.2}
	case "cos":
		cfg = trigConfig{math.Cos, colorOrange, "Cosine", math.Pi, -0.9, 1.2}
	case "tan":
		cfg = trigConfig{math.Tan, colorGreen, "Tangent", 3 * math.Pi / 4, 0, 5.5}
	default:
		return nil, fmt.Errorf("unsupported function %q", s.Function)
	}

	c := newCanvas(800, 500)
	c.setViewportStretch(-0.3, -cfg.yLimit, 2*math.Pi+0.3, cfg.yLimit)

	c.grid()
	c.axes()

	const samples = 1000
	var prev [2]float64
	havePrev := false
	for i := 0; i <= samples; i++ {
		x := 2 * math.Pi * float64(i) / samples
		y := cfg.fn(x)
		if math.Abs(y) > 5 {
			havePrev = false
			continue
		}
		if havePrev {
			c.line(prev[0], prev[1], x, y, cfg.col)
		}
		prev = [2]float64{x, y}
		havePrev = true
	}

	c.text(cfg.textX, cfg.textY, cfg.label+" Function", cfg.col)

	ticks := []struct {
		x     float64
		label string
	}{
		{0, "0"},
		{math.Pi / 2, "π/2"},
		{math.Pi, "π"},
		{3 * math.Pi / 2, "3π/2"},
		{2 * math.Pi, "2π"},
	}
	for _, tk := range ticks {
		c.xTick(tk.x, tk.label)
	}

	c.title(fmt.Sprintf("%s Function (0 to 2π)", cfg.label))
	c.axisLabel("Angle (radians)")
	return c.encode()
}
