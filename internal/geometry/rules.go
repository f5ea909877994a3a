package geometry

import (
	"fmt"
	"math"
	"slices"
)

// derivation is one alternative formula for a target parameter. It may be
// applied only when every source parameter is already present. Formulas
// return an error on domain violations (negative square root, division by
// zero); the engine treats that as "this alternative failed" and moves on.
type derivation struct {
	target  string
	sources []string
	apply   func(v []float64) (float64, error)
}

// shapeRules holds one shape family's required parameter set and its
// derivation table. Alternatives for the same target are tried in
// declaration order: the first whose sources are all present wins, even
// when a later one would also succeed with different inputs.
type shapeRules struct {
	required    []string
	derivations []derivation
}

// registry is the consolidated rule table, built once at init and read-only
// afterwards. Targets outside the required set (area, height, angle_a...)
// are filled best-effort after the required set resolves, so renderers can
// label diagrams with them.
var registry = map[Shape]shapeRules{
	ShapeCircle: {
		required: []string{"radius"},
		derivations: []derivation{
			{"radius", []string{"diameter"}, func(v []float64) (float64, error) {
				return v[0] / 2, nil
			}},
			{"radius", []string{"circumference"}, func(v []float64) (float64, error) {
				return v[0] / (2 * math.Pi), nil
			}},
			{"radius", []string{"area"}, func(v []float64) (float64, error) {
				return safeSqrt(v[0] / math.Pi)
			}},
		},
	},
	ShapeCircleAngle: {
		required: []string{"arc1", "arc2"},
		derivations: []derivation{
			// Intersecting chords: the angle is the mean of the intercepted arcs.
			{"angle", []string{"arc1", "arc2"}, func(v []float64) (float64, error) {
				return (v[0] + v[1]) / 2, nil
			}},
		},
	},
	ShapeRectangle: {
		required: []string{"width", "height"},
		derivations: []derivation{
			{"width", []string{"side"}, identity},
			{"width", []string{"area", "height"}, func(v []float64) (float64, error) {
				return safeDiv(v[0], v[1])
			}},
			{"width", []string{"diagonal", "height"}, func(v []float64) (float64, error) {
				return safeSqrt(v[0]*v[0] - v[1]*v[1])
			}},
			{"width", []string{"perimeter", "height"}, func(v []float64) (float64, error) {
				return v[0]/2 - v[1], nil
			}},
			// Single-source fallbacks assume a square.
			{"width", []string{"diagonal"}, func(v []float64) (float64, error) {
				return v[0] / math.Sqrt2, nil
			}},
			{"width", []string{"perimeter"}, func(v []float64) (float64, error) {
				return v[0] / 4, nil
			}},
			{"height", []string{"side"}, identity},
			{"height", []string{"area", "width"}, func(v []float64) (float64, error) {
				return safeDiv(v[0], v[1])
			}},
			{"height", []string{"diagonal", "width"}, func(v []float64) (float64, error) {
				return safeSqrt(v[0]*v[0] - v[1]*v[1])
			}},
			{"height", []string{"perimeter", "width"}, func(v []float64) (float64, error) {
				return v[0]/2 - v[1], nil
			}},
			{"height", []string{"diagonal"}, func(v []float64) (float64, error) {
				return v[0] / math.Sqrt2, nil
			}},
			{"height", []string{"perimeter"}, func(v []float64) (float64, error) {
				return v[0] / 4, nil
			}},
		},
	},
	ShapeRightTriangle: {
		// side1 is the leg opposite "angle", side2 the leg adjacent to it.
		required: []string{"side1", "side2", "hypotenuse"},
		derivations: []derivation{
			{"side1", []string{"hypotenuse", "side2"}, func(v []float64) (float64, error) {
				return legFromHypotenuse(v[0], v[1])
			}},
			{"side1", []string{"hypotenuse", "angle"}, func(v []float64) (float64, error) {
				return oppositeLeg(v[0], v[1])
			}},
			{"side1", []string{"side2", "angle"}, func(v []float64) (float64, error) {
				return oppositeFromAdjacent(v[0], v[1])
			}},
			{"side2", []string{"hypotenuse", "side1"}, func(v []float64) (float64, error) {
				return legFromHypotenuse(v[0], v[1])
			}},
			{"side2", []string{"hypotenuse", "angle"}, func(v []float64) (float64, error) {
				return adjacentLeg(v[0], v[1])
			}},
			{"side2", []string{"side1", "angle"}, func(v []float64) (float64, error) {
				return adjacentFromOpposite(v[0], v[1])
			}},
			{"hypotenuse", []string{"side1", "side2"}, func(v []float64) (float64, error) {
				return math.Hypot(v[0], v[1]), nil
			}},
			{"hypotenuse", []string{"side1", "angle"}, func(v []float64) (float64, error) {
				return hypotenuseFromOpposite(v[0], v[1])
			}},
			{"hypotenuse", []string{"side2", "angle"}, func(v []float64) (float64, error) {
				return hypotenuseFromAdjacent(v[0], v[1])
			}},
		},
	},
	ShapeEquilateralTriangle: {
		required: []string{"side"},
		derivations: []derivation{
			{"side", []string{"height"}, func(v []float64) (float64, error) {
				return 2 * v[0] / math.Sqrt(3), nil
			}},
			{"side", []string{"area"}, func(v []float64) (float64, error) {
				return safeSqrt(4 * v[0] / math.Sqrt(3))
			}},
			{"height", []string{"side"}, func(v []float64) (float64, error) {
				return math.Sqrt(3) / 2 * v[0], nil
			}},
			{"area", []string{"side"}, func(v []float64) (float64, error) {
				return math.Sqrt(3) / 4 * v[0] * v[0], nil
			}},
		},
	},
	ShapeIsoscelesTriangle: {
		required: []string{"base", "equal_sides"},
		derivations: []derivation{
			{"base", []string{"area", "height"}, func(v []float64) (float64, error) {
				return safeDiv(2*v[0], v[1])
			}},
			{"base", []string{"equal_sides", "height"}, func(v []float64) (float64, error) {
				half, err := safeSqrt(v[0]*v[0] - v[1]*v[1])
				if err != nil {
					return 0, err
				}
				return 2 * half, nil
			}},
			{"equal_sides", []string{"base", "height"}, func(v []float64) (float64, error) {
				return math.Hypot(v[0]/2, v[1]), nil
			}},
			{"height", []string{"equal_sides", "base"}, func(v []float64) (float64, error) {
				return safeSqrt(v[0]*v[0] - (v[1]/2)*(v[1]/2))
			}},
			{"area", []string{"base", "height"}, func(v []float64) (float64, error) {
				return v[0] * v[1] / 2, nil
			}},
		},
	},
	ShapeGeneralTriangle: {
		required: []string{"side_a", "side_b", "side_c"},
		derivations: []derivation{
			{"area", []string{"side_a", "side_b", "side_c"}, func(v []float64) (float64, error) {
				return heronArea(v[0], v[1], v[2])
			}},
			{"angle_a", []string{"side_a", "side_b", "side_c"}, func(v []float64) (float64, error) {
				return lawOfCosines(v[0], v[1], v[2])
			}},
			{"angle_b", []string{"side_a", "side_b", "side_c"}, func(v []float64) (float64, error) {
				return lawOfCosines(v[1], v[0], v[2])
			}},
			{"height", []string{"area", "side_a"}, func(v []float64) (float64, error) {
				return safeDiv(2*v[0], v[1])
			}},
		},
	},
	ShapeSimilarTriangles: {
		required: []string{"ratio", "corresponding_side1", "corresponding_side2"},
		derivations: []derivation{
			{"ratio", []string{"corresponding_side1", "corresponding_side2"}, func(v []float64) (float64, error) {
				return safeDiv(v[0], v[1])
			}},
			{"corresponding_side1", []string{"ratio", "corresponding_side2"}, func(v []float64) (float64, error) {
				return v[0] * v[1], nil
			}},
			{"corresponding_side2", []string{"ratio", "corresponding_side1"}, func(v []float64) (float64, error) {
				return safeDiv(v[1], v[0])
			}},
		},
	},
	ShapeTrigonometric: {
		required: []string{"function"},
	},
}

// rulesFor returns the rule entry for a shape. Unknown shapes get the zero
// entry: nothing required, nothing derivable, so the engine passes input
// through untouched instead of erroring.
func rulesFor(s Shape) shapeRules {
	return registry[s]
}

// Required returns the canonical parameter names a renderer expects for the
// shape, in their conventional order.
func Required(s Shape) []string {
	return slices.Clone(registry[s].required)
}

func identity(v []float64) (float64, error) { return v[0], nil }

func safeSqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, fmt.Errorf("square root of negative value %g", x)
	}
	return math.Sqrt(x), nil
}

func safeDiv(num, den float64) (float64, error) {
	if den == 0 {
		return 0, fmt.Errorf("division by zero")
	}
	return num / den, nil
}

// acuteRad converts an acute angle in degrees to radians, rejecting values
// outside (0, 90) where the right-triangle ratios are undefined.
func acuteRad(deg float64) (float64, error) {
	if deg <= 0 || deg >= 90 {
		return 0, fmt.Errorf("angle %g is not acute", deg)
	}
	return deg * math.Pi / 180, nil
}

func legFromHypotenuse(hyp, other float64) (float64, error) {
	return safeSqrt(hyp*hyp - other*other)
}

func oppositeLeg(hyp, angleDeg float64) (float64, error) {
	rad, err := acuteRad(angleDeg)
	if err != nil {
		return 0, err
	}
	return hyp * math.Sin(rad), nil
}

func adjacentLeg(hyp, angleDeg float64) (float64, error) {
	rad, err := acuteRad(angleDeg)
	if err != nil {
		return 0, err
	}
	return hyp * math.Cos(rad), nil
}

func oppositeFromAdjacent(adj, angleDeg float64) (float64, error) {
	rad, err := acuteRad(angleDeg)
	if err != nil {
		return 0, err
	}
	return adj * math.Tan(rad), nil
}

func adjacentFromOpposite(opp, angleDeg float64) (float64, error) {
	rad, err := acuteRad(angleDeg)
	if err != nil {
		return 0, err
	}
	return opp / math.Tan(rad), nil
}

func hypotenuseFromOpposite(opp, angleDeg float64) (float64, error) {
	rad, err := acuteRad(angleDeg)
	if err != nil {
		return 0, err
	}
	return opp / math.Sin(rad), nil
}

func hypotenuseFromAdjacent(adj, angleDeg float64) (float64, error) {
	rad, err := acuteRad(angleDeg)
	if err != nil {
		return 0, err
	}
	return adj / math.Cos(rad), nil
}

// heronArea computes a triangle's area from its three sides via the
// semi-perimeter.
func heronArea(a, b, c float64) (float64, error) {
	s := (a + b + c) / 2
	return safeSqrt(s * (s - a) * (s - b) * (s - c))
}

// lawOfCosines returns the angle in degrees opposite the first side.
func lawOfCosines(opposite, p, q float64) (float64, error) {
	if p == 0 || q == 0 {
		return 0, fmt.Errorf("degenerate side of length zero")
	}
	cos := (p*p + q*q - opposite*opposite) / (2 * p * q)
	if cos < -1 || cos > 1 {
		return 0, fmt.Errorf("sides %g, %g, %g do not close into a triangle", opposite, p, q)
	}
	return math.Acos(cos) * 180 / math.Pi, nil
}
