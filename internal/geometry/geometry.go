// Package geometry resolves partial, possibly redundant shape measurements
// into the canonical parameter set a renderer needs. Raw values arrive as
// untrusted model output (numbers, numeric strings, small arithmetic
// expressions); the engine coerces them, fills missing required parameters
// from a table of derivation formulas, and checks geometric validity.
package geometry

import (
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Shape identifies a supported shape family.
type Shape string

const (
	ShapeCircle              Shape = "circle"
	ShapeCircleAngle         Shape = "circle_angle"
	ShapeRectangle           Shape = "rectangle"
	ShapeRightTriangle       Shape = "right_triangle"
	ShapeEquilateralTriangle Shape = "equilateral_triangle"
	ShapeIsoscelesTriangle   Shape = "isosceles_triangle"
	ShapeGeneralTriangle     Shape = "general_triangle"
	ShapeSimilarTriangles    Shape = "similar_triangles"
	ShapeTrigonometric       Shape = "trigonometric"
)

// AllShapes returns every supported shape family.
func AllShapes() []Shape {
	return []Shape{
		ShapeCircle,
		ShapeCircleAngle,
		ShapeRectangle,
		ShapeRightTriangle,
		ShapeEquilateralTriangle,
		ShapeIsoscelesTriangle,
		ShapeGeneralTriangle,
		ShapeSimilarTriangles,
		ShapeTrigonometric,
	}
}

// ParseShape maps a shape name from model output onto a Shape. It tolerates
// casing and a few common synonyms ("square" is drawn as a rectangle).
func ParseShape(name string) (Shape, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "circle":
		return ShapeCircle, true
	case "circle_angle", "circle angle":
		return ShapeCircleAngle, true
	case "rectangle", "square":
		return ShapeRectangle, true
	case "right_triangle", "right triangle":
		return ShapeRightTriangle, true
	case "equilateral_triangle", "equilateral triangle":
		return ShapeEquilateralTriangle, true
	case "isosceles_triangle", "isosceles triangle":
		return ShapeIsoscelesTriangle, true
	case "general_triangle", "general triangle", "triangle":
		return ShapeGeneralTriangle, true
	case "similar_triangles", "similar triangles":
		return ShapeSimilarTriangles, true
	case "trigonometric", "trig":
		return ShapeTrigonometric, true
	}
	return "", false
}

// Params is the working parameter set for one request. Values holds the
// named numeric measurements; Angles and Function carry the two reserved
// non-numeric parameters.
type Params struct {
	Values   map[string]float64
	Angles   []float64 // angle hints in degrees, three entries when present
	Function string    // trig function name, only for ShapeTrigonometric
}

// Get returns a named numeric parameter.
func (p Params) Get(name string) (float64, bool) {
	v, ok := p.Values[name]
	return v, ok
}

// Clone returns a deep copy of p.
func (p Params) Clone() Params {
	return Params{
		Values:   maps.Clone(p.Values),
		Angles:   slices.Clone(p.Angles),
		Function: p.Function,
	}
}

// Raw converts p back into the loosely typed form Normalize accepts.
func (p Params) Raw() map[string]any {
	raw := make(map[string]any, len(p.Values)+2)
	for name, v := range p.Values {
		raw[name] = v
	}
	if len(p.Angles) > 0 {
		raw["angles"] = slices.Clone(p.Angles)
	}
	if p.Function != "" {
		raw["function"] = p.Function
	}
	return raw
}

// has reports whether a parameter is present, treating the reserved names
// "angles" and "function" as their dedicated fields.
func (p Params) has(name string) bool {
	switch name {
	case "angles":
		return len(p.Angles) == 3
	case "function":
		return p.Function != ""
	}
	_, ok := p.Values[name]
	return ok
}

func (p Params) set(name string, v float64) {
	p.Values[name] = v
}

// Engine normalizes raw parameter sets. It is stateless apart from its
// logger; a single Engine is safe for concurrent use.
type Engine struct {
	log *zap.Logger
}

// New returns an Engine. A nil logger silences the warn-level coercion and
// derivation logs.
func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}
