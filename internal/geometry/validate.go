package geometry

import (
	"fmt"
	"math"
)

// validate runs the geometric checks that gate rendering. The required set
// is already present when it runs; it rejects non-positive or non-finite
// lengths and shape-specific law violations.
func (e *Engine) validate(shape Shape, p *Params) error {
	for _, name := range rulesFor(shape).required {
		if name == "function" {
			continue
		}
		v, _ := p.Get(name)
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return &InvalidGeometryError{
				Shape:  shape,
				Reason: fmt.Sprintf("%s must be a positive length, got %g", name, v),
			}
		}
	}

	switch shape {
	case ShapeRightTriangle:
		return validateRightTriangle(p)
	case ShapeIsoscelesTriangle:
		return validateIsosceles(p)
	case ShapeGeneralTriangle:
		return validateGeneralTriangle(p)
	case ShapeSimilarTriangles:
		return validateSimilar(p)
	case ShapeTrigonometric:
		switch p.Function {
		case "sin", "cos", "tan":
			return nil
		}
		return &InvalidGeometryError{
			Shape:  shape,
			Reason: fmt.Sprintf("unsupported function %q, want sin, cos or tan", p.Function),
		}
	}
	return nil
}

func validateRightTriangle(p *Params) error {
	s1, _ := p.Get("side1")
	s2, _ := p.Get("side2")
	hyp, _ := p.Get("hypotenuse")
	if err := triangleInequality(ShapeRightTriangle, s1, s2, hyp); err != nil {
		return err
	}
	// Catches a supplied hypotenuse that disagrees with the derived one.
	if relDiff(s1*s1+s2*s2, hyp*hyp) > ratioTolerance {
		return &InvalidGeometryError{
			Shape:  ShapeRightTriangle,
			Reason: fmt.Sprintf("legs %g, %g and hypotenuse %g do not satisfy the Pythagorean identity", s1, s2, hyp),
		}
	}
	return nil
}

func validateIsosceles(p *Params) error {
	base, _ := p.Get("base")
	eq, _ := p.Get("equal_sides")
	if v, ok := p.Get("side_a"); ok && relDiff(v, base) > equalSideTolerance {
		return &InvalidGeometryError{
			Shape:  ShapeIsoscelesTriangle,
			Reason: fmt.Sprintf("side_a %g conflicts with base %g", v, base),
		}
	}
	for _, name := range []string{"side_b", "side_c"} {
		if v, ok := p.Get(name); ok && relDiff(v, eq) > equalSideTolerance {
			return &InvalidGeometryError{
				Shape:  ShapeIsoscelesTriangle,
				Reason: fmt.Sprintf("%s %g conflicts with equal_sides %g", name, v, eq),
			}
		}
	}
	return triangleInequality(ShapeIsoscelesTriangle, base, eq, eq)
}

func validateGeneralTriangle(p *Params) error {
	a, _ := p.Get("side_a")
	b, _ := p.Get("side_b")
	c, _ := p.Get("side_c")
	return triangleInequality(ShapeGeneralTriangle, a, b, c)
}

func validateSimilar(p *Params) error {
	ratio, _ := p.Get("ratio")
	s1, _ := p.Get("corresponding_side1")
	s2, _ := p.Get("corresponding_side2")
	if relDiff(ratio*s2, s1) > ratioTolerance {
		return &InvalidGeometryError{
			Shape:  ShapeSimilarTriangles,
			Reason: fmt.Sprintf("ratio %g does not relate sides %g and %g", ratio, s1, s2),
		}
	}
	return nil
}

// triangleInequality requires each side strictly less than the sum of the
// other two.
func triangleInequality(shape Shape, a, b, c float64) error {
	if a+b <= c || a+c <= b || b+c <= a {
		return &InvalidGeometryError{
			Shape:  shape,
			Reason: fmt.Sprintf("sides %g, %g, %g violate the triangle inequality", a, b, c),
		}
	}
	return nil
}
