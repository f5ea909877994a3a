package geometry

import (
	"fmt"
	"math"
)

// Resolved is the typed view of a canonical parameter set. Exactly one
// concrete shape struct implements it per Shape value; renderers switch on
// the concrete type instead of digging through the name/value map.
type Resolved interface {
	Shape() Shape
}

type Circle struct {
	Radius float64
}

func (Circle) Shape() Shape { return ShapeCircle }

type CircleAngle struct {
	Arc1, Arc2 float64
	Angle      float64 // mean of the intercepted arcs, 0 when underivable
}

func (CircleAngle) Shape() Shape { return ShapeCircleAngle }

type Rectangle struct {
	Width, Height float64
}

func (Rectangle) Shape() Shape { return ShapeRectangle }

// IsSquare reports whether the rectangle should be presented as a square.
func (r Rectangle) IsSquare() bool {
	return math.Abs(r.Width-r.Height) < squareTolerance
}

type RightTriangle struct {
	Side1, Side2 float64
	Hypotenuse   float64
}

func (RightTriangle) Shape() Shape { return ShapeRightTriangle }

type EquilateralTriangle struct {
	Side         float64
	Height, Area float64 // derived labels, 0 when absent
}

func (EquilateralTriangle) Shape() Shape { return ShapeEquilateralTriangle }

type IsoscelesTriangle struct {
	Base, EqualSides float64
	Height           float64 // derived label, 0 when absent
}

func (IsoscelesTriangle) Shape() Shape { return ShapeIsoscelesTriangle }

type GeneralTriangle struct {
	SideA, SideB, SideC float64
	Area, Height        float64 // derived labels, 0 when absent
	AngleA, AngleB      float64
}

func (GeneralTriangle) Shape() Shape { return ShapeGeneralTriangle }

type SimilarTriangles struct {
	Ratio        float64
	Side1, Side2 float64
}

func (SimilarTriangles) Shape() Shape { return ShapeSimilarTriangles }

type Trigonometric struct {
	Function string // sin, cos or tan
}

func (Trigonometric) Shape() Shape { return ShapeTrigonometric }

// Resolve converts a canonical parameter set into the typed struct for the
// shape. It fails when a required name is absent, which cannot happen for
// sets produced by Normalize. Optional derived fields default to zero.
func Resolve(shape Shape, p Params) (Resolved, error) {
	for _, name := range Required(shape) {
		if !p.has(name) {
			return nil, fmt.Errorf("resolve %s: parameter %q missing", shape, name)
		}
	}
	switch shape {
	case ShapeCircle:
		return Circle{Radius: p.Values["radius"]}, nil
	case ShapeCircleAngle:
		return CircleAngle{
			Arc1:  p.Values["arc1"],
			Arc2:  p.Values["arc2"],
			Angle: p.Values["angle"],
		}, nil
	case ShapeRectangle:
		return Rectangle{Width: p.Values["width"], Height: p.Values["height"]}, nil
	case ShapeRightTriangle:
		return RightTriangle{
			Side1:      p.Values["side1"],
			Side2:      p.Values["side2"],
			Hypotenuse: p.Values["hypotenuse"],
		}, nil
	case ShapeEquilateralTriangle:
		return EquilateralTriangle{
			Side:   p.Values["side"],
			Height: p.Values["height"],
			Area:   p.Values["area"],
		}, nil
	case ShapeIsoscelesTriangle:
		return IsoscelesTriangle{
			Base:       p.Values["base"],
			EqualSides: p.Values["equal_sides"],
			Height:     p.Values["height"],
		}, nil
	case ShapeGeneralTriangle:
		return GeneralTriangle{
			SideA:  p.Values["side_a"],
			SideB:  p.Values["side_b"],
			SideC:  p.Values["side_c"],
			Area:   p.Values["area"],
			Height: p.Values["height"],
			AngleA: p.Values["angle_a"],
			AngleB: p.Values["angle_b"],
		}, nil
	case ShapeSimilarTriangles:
		return SimilarTriangles{
			Ratio: p.Values["ratio"],
			Side1: p.Values["corresponding_side1"],
			Side2: p.Values["corresponding_side2"],
		}, nil
	case ShapeTrigonometric:
		return Trigonometric{Function: p.Function}, nil
	}
	return nil, fmt.Errorf("resolve: unsupported shape %q", shape)
}
