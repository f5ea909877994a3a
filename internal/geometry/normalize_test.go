package geometry

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// wantValues checks that got carries each named value within tolerance.
// Extra parameters in got are allowed: the canonical set keeps whatever the
// caller supplied alongside the derived values.
func wantValues(t *testing.T, got Params, want map[string]float64) {
	t.Helper()
	sub := make(map[string]float64, len(want))
	for name := range want {
		v, ok := got.Get(name)
		if !ok {
			t.Errorf("missing parameter %q in %v", name, got.Values)
			continue
		}
		sub[name] = v
	}
	if diff := cmp.Diff(want, sub, cmpopts.EquateApprox(1e-4, 1e-6)); diff != "" {
		t.Errorf("parameter mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_Circle(t *testing.T) {
	e := New(nil)
	tests := []struct {
		name string
		raw  map[string]any
		want map[string]float64
	}{
		{"radius passthrough", map[string]any{"radius": 5}, map[string]float64{"radius": 5}},
		{"from diameter", map[string]any{"diameter": 10}, map[string]float64{"radius": 5}},
		{"from circumference", map[string]any{"circumference": 2 * math.Pi}, map[string]float64{"radius": 1}},
		{"from area", map[string]any{"area": 9 * math.Pi}, map[string]float64{"radius": 3}},
		{"expression value", map[string]any{"radius": "2*π"}, map[string]float64{"radius": 2 * math.Pi}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Normalize(ShapeCircle, tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			wantValues(t, got, tt.want)
		})
	}
}

func TestNormalize_Rectangle(t *testing.T) {
	e := New(nil)
	tests := []struct {
		name string
		raw  map[string]any
		want map[string]float64
	}{
		{"side means square", map[string]any{"side": 4}, map[string]float64{"width": 4, "height": 4}},
		{"area and height", map[string]any{"area": 20, "height": 4}, map[string]float64{"width": 5, "height": 4}},
		{"diagonal and height", map[string]any{"diagonal": 10, "height": 6}, map[string]float64{"width": 8, "height": 6}},
		{"perimeter and width", map[string]any{"perimeter": 20, "width": 6}, map[string]float64{"width": 6, "height": 4}},
		{"lone diagonal is a square", map[string]any{"diagonal": 10}, map[string]float64{"width": 10 / math.Sqrt2, "height": 10 / math.Sqrt2}},
		{"lone perimeter is a square", map[string]any{"perimeter": 36}, map[string]float64{"width": 9, "height": 9}},
		{"lone area is a square", map[string]any{"area": 49}, map[string]float64{"width": 7, "height": 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Normalize(ShapeRectangle, tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			wantValues(t, got, tt.want)
		})
	}
}

func TestNormalize_RightTriangle(t *testing.T) {
	e := New(nil)
	tests := []struct {
		name string
		raw  map[string]any
		want map[string]float64
	}{
		{
			"hypotenuse from legs",
			map[string]any{"side1": 3, "side2": 4},
			map[string]float64{"side1": 3, "side2": 4, "hypotenuse": 5},
		},
		{
			"legacy leg names",
			map[string]any{"leg1": 3, "leg2": 4},
			map[string]float64{"side1": 3, "side2": 4, "hypotenuse": 5},
		},
		{
			"thirty sixty ninety from hypotenuse",
			map[string]any{"hypotenuse": 10, "angles": []any{30, 60, 90}},
			map[string]float64{"side1": 5, "side2": 5 * math.Sqrt(3), "hypotenuse": 10},
		},
		{
			"thirty sixty ninety from short leg",
			map[string]any{"side1": 5, "angles": []any{60, 90, 30}},
			map[string]float64{"side1": 5, "side2": 5 * math.Sqrt(3), "hypotenuse": 10},
		},
		{
			"acute angle and hypotenuse",
			map[string]any{"hypotenuse": 10, "angle": 30},
			map[string]float64{"side1": 5, "side2": 5 * math.Sqrt(3), "hypotenuse": 10},
		},
		{
			"right angle list",
			map[string]any{"hypotenuse": 13, "angles": []any{90, 22.62, 67.38}},
			map[string]float64{"side1": 5, "side2": 12, "hypotenuse": 13},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Normalize(ShapeRightTriangle, tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			wantValues(t, got, tt.want)
		})
	}
}

func TestNormalize_GeneralTriangle(t *testing.T) {
	e := New(nil)
	got, err := e.Normalize(ShapeGeneralTriangle, map[string]any{"side_a": 3, "side_b": 4, "side_c": 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValues(t, got, map[string]float64{
		"side_a":  3,
		"side_b":  4,
		"side_c":  5,
		"area":    6,
		"angle_a": 36.8699,
		"angle_b": 53.1301,
		"height":  4, // 2*area/side_a
	})
}

func TestNormalize_GeneralTriangleAliases(t *testing.T) {
	e := New(nil)
	got, err := e.Normalize(ShapeGeneralTriangle, map[string]any{"side1": 3, "side2": 4, "side3": 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValues(t, got, map[string]float64{"side_a": 3, "side_b": 4, "side_c": 5})
}

func TestNormalize_EquilateralTriangle(t *testing.T) {
	e := New(nil)
	tests := []struct {
		name string
		raw  map[string]any
		want map[string]float64
	}{
		{
			"from side",
			map[string]any{"side": 4},
			map[string]float64{"side": 4, "height": 2 * math.Sqrt(3), "area": 4 * math.Sqrt(3)},
		},
		{
			"from height",
			map[string]any{"height": 6},
			map[string]float64{"side": 12 / math.Sqrt(3), "height": 6},
		},
		{
			"from area",
			map[string]any{"area": 4 * math.Sqrt(3)},
			map[string]float64{"side": 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Normalize(ShapeEquilateralTriangle, tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			wantValues(t, got, tt.want)
		})
	}
}

func TestNormalize_IsoscelesTriangle(t *testing.T) {
	e := New(nil)
	got, err := e.Normalize(ShapeIsoscelesTriangle, map[string]any{"base": 6, "equal_sides": 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValues(t, got, map[string]float64{
		"base":        6,
		"equal_sides": 5,
		"side_a":      6,
		"side_b":      5,
		"side_c":      5,
		"height":      4, // sqrt(5^2 - 3^2)
		"area":        12,
	})
}

func TestNormalize_IsoscelesFromGenericSides(t *testing.T) {
	e := New(nil)
	got, err := e.Normalize(ShapeIsoscelesTriangle, map[string]any{"side_a": 6, "side_b": 5, "side_c": 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValues(t, got, map[string]float64{"base": 6, "equal_sides": 5})
}

func TestNormalize_SimilarTriangles(t *testing.T) {
	e := New(nil)
	tests := []struct {
		name string
		raw  map[string]any
		want map[string]float64
	}{
		{
			"ratio from sides",
			map[string]any{"corresponding_side1": 6, "corresponding_side2": 3},
			map[string]float64{"ratio": 2},
		},
		{
			"side from ratio",
			map[string]any{"ratio": 2, "corresponding_side2": 3},
			map[string]float64{"corresponding_side1": 6},
		},
		{
			"generic aliases",
			map[string]any{"side1": 6, "side2": 3},
			map[string]float64{"ratio": 2, "corresponding_side1": 6, "corresponding_side2": 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Normalize(ShapeSimilarTriangles, tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			wantValues(t, got, tt.want)
		})
	}
}

func TestNormalize_CircleAngle(t *testing.T) {
	e := New(nil)
	got, err := e.Normalize(ShapeCircleAngle, map[string]any{"arc1": 80, "arc2": 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValues(t, got, map[string]float64{"arc1": 80, "arc2": 40, "angle": 60})
}

func TestNormalize_Trigonometric(t *testing.T) {
	e := New(nil)

	got, err := e.Normalize(ShapeTrigonometric, map[string]any{"function": "SIN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Function != "sin" {
		t.Errorf("function = %q, want %q", got.Function, "sin")
	}

	var invalid *InvalidGeometryError
	if _, err := e.Normalize(ShapeTrigonometric, map[string]any{"function": "sec"}); !errors.As(err, &invalid) {
		t.Errorf("got %v, want InvalidGeometryError for unsupported function", err)
	}

	var missing *MissingParameterError
	if _, err := e.Normalize(ShapeTrigonometric, map[string]any{}); !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingParameterError", err)
	}
	if want := []string{"function"}; !slices.Equal(missing.Missing, want) {
		t.Errorf("missing = %v, want %v", missing.Missing, want)
	}
}

func TestNormalize_MissingParameters(t *testing.T) {
	e := New(nil)

	_, err := e.Normalize(ShapeRightTriangle, map[string]any{})
	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingParameterError", err)
	}
	if missing.Shape != ShapeRightTriangle {
		t.Errorf("shape = %q, want %q", missing.Shape, ShapeRightTriangle)
	}
	if want := []string{"side1", "side2", "hypotenuse"}; !slices.Equal(missing.Missing, want) {
		t.Errorf("missing = %v, want %v", missing.Missing, want)
	}

	_, err = e.Normalize(ShapeRightTriangle, map[string]any{"side1": 5})
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingParameterError", err)
	}
	if want := []string{"side2", "hypotenuse"}; !slices.Equal(missing.Missing, want) {
		t.Errorf("missing = %v, want %v", missing.Missing, want)
	}
}

func TestNormalize_ThirtySixtyNinetyConflict(t *testing.T) {
	e := New(nil)
	_, err := e.Normalize(ShapeRightTriangle, map[string]any{
		"hypotenuse": 10,
		"side1":      3,
		"angles":     []any{30, 60, 90},
	})
	var invalid *InvalidGeometryError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidGeometryError", err)
	}
	if invalid.Shape != ShapeRightTriangle {
		t.Errorf("shape = %q, want %q", invalid.Shape, ShapeRightTriangle)
	}
}

func TestNormalize_PythagoreanConflict(t *testing.T) {
	e := New(nil)
	_, err := e.Normalize(ShapeRightTriangle, map[string]any{"side1": 3, "side2": 4, "hypotenuse": 6})
	var invalid *InvalidGeometryError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidGeometryError", err)
	}
}

func TestNormalize_TriangleInequality(t *testing.T) {
	e := New(nil)
	_, err := e.Normalize(ShapeGeneralTriangle, map[string]any{"side_a": 1, "side_b": 1, "side_c": 10})
	var invalid *InvalidGeometryError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidGeometryError", err)
	}
}

func TestNormalize_IsoscelesMismatchedSides(t *testing.T) {
	e := New(nil)
	_, err := e.Normalize(ShapeIsoscelesTriangle, map[string]any{"side_a": 4, "side_b": 3, "side_c": 5})
	var invalid *InvalidGeometryError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidGeometryError", err)
	}
}

func TestNormalize_DeclarationOrderWins(t *testing.T) {
	e := New(nil)

	// Both the area and the diagonal could produce the width; the area
	// alternative is declared first and must win.
	got, err := e.Normalize(ShapeRectangle, map[string]any{"area": 20, "height": 4, "diagonal": 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValues(t, got, map[string]float64{"width": 5})

	// Same for the legs: hypotenuse+side2 is declared before the angle
	// alternatives, so side1 comes from the Pythagorean identity even
	// though the angle would give a different value.
	got, err = e.Normalize(ShapeRightTriangle, map[string]any{"hypotenuse": 5, "side2": 4, "angle": 60})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValues(t, got, map[string]float64{"side1": 3})
}

func TestNormalize_BadAngleSumDropped(t *testing.T) {
	e := New(nil)
	got, err := e.Normalize(ShapeRightTriangle, map[string]any{
		"side1":  3,
		"side2":  4,
		"angles": []any{30, 60, 80},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Angles) != 0 {
		t.Errorf("bad angle hint should be dropped, got %v", got.Angles)
	}
	wantValues(t, got, map[string]float64{"hypotenuse": 5})
}

func TestNormalize_DropsUnusableValues(t *testing.T) {
	e := New(nil)
	got, err := e.Normalize(ShapeCircle, map[string]any{
		"radius":   nil,
		"diameter": 10,
		"label":    "DROP TABLE students",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantValues(t, got, map[string]float64{"radius": 5})
	if _, ok := got.Get("label"); ok {
		t.Error("uncoercible value should have been dropped")
	}
}

func TestNormalize_UnknownShape(t *testing.T) {
	e := New(nil)
	got, err := e.Normalize(Shape("hexagon"), map[string]any{"apothem": 4})
	if err != nil {
		t.Fatalf("unknown shapes have no requirements, got error: %v", err)
	}
	wantValues(t, got, map[string]float64{"apothem": 4})
}

func TestNormalize_Idempotent(t *testing.T) {
	e := New(nil)
	tests := []struct {
		shape Shape
		raw   map[string]any
	}{
		{ShapeCircle, map[string]any{"diameter": 10}},
		{ShapeCircleAngle, map[string]any{"arc1": 80, "arc2": 40}},
		{ShapeRectangle, map[string]any{"area": 20, "height": 4}},
		{ShapeRightTriangle, map[string]any{"hypotenuse": 10, "angles": []any{30, 60, 90}}},
		{ShapeEquilateralTriangle, map[string]any{"height": 6}},
		{ShapeIsoscelesTriangle, map[string]any{"base": 4, "equal_sides": 3}},
		{ShapeGeneralTriangle, map[string]any{"side_a": 3, "side_b": 4, "side_c": 5}},
		{ShapeSimilarTriangles, map[string]any{"corresponding_side1": 6, "corresponding_side2": 3}},
		{ShapeTrigonometric, map[string]any{"function": "sin"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			first, err := e.Normalize(tt.shape, tt.raw)
			if err != nil {
				t.Fatalf("first pass: %v", err)
			}
			second, err := e.Normalize(tt.shape, first.Raw())
			if err != nil {
				t.Fatalf("second pass: %v", err)
			}
			if diff := cmp.Diff(first, second, cmpopts.EquateApprox(1e-9, 1e-12)); diff != "" {
				t.Errorf("not idempotent (-first +second):\n%s", diff)
			}
		})
	}
}
