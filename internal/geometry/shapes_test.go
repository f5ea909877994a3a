package geometry

import (
	"math"
	"testing"
)

func TestResolve_Rectangle(t *testing.T) {
	e := New(nil)
	p, err := e.Normalize(ShapeRectangle, map[string]any{"side": 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := Resolve(ShapeRectangle, p)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	rect, ok := r.(Rectangle)
	if !ok {
		t.Fatalf("got %T, want Rectangle", r)
	}
	if rect.Width != 4 || rect.Height != 4 {
		t.Errorf("got %gx%g, want 4x4", rect.Width, rect.Height)
	}
	if !rect.IsSquare() {
		t.Error("4x4 should present as a square")
	}
	if (Rectangle{Width: 5, Height: 4}).IsSquare() {
		t.Error("5x4 should not present as a square")
	}
}

func TestResolve_GeneralTriangle(t *testing.T) {
	e := New(nil)
	p, err := e.Normalize(ShapeGeneralTriangle, map[string]any{"side_a": 3, "side_b": 4, "side_c": 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := Resolve(ShapeGeneralTriangle, p)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	tri := r.(GeneralTriangle)
	if math.Abs(tri.Area-6) > 1e-9 {
		t.Errorf("area = %g, want 6", tri.Area)
	}
	if math.Abs(tri.AngleA-36.8699) > 1e-3 {
		t.Errorf("angle_a = %g, want ≈36.87", tri.AngleA)
	}
}

func TestResolve_MissingParameter(t *testing.T) {
	if _, err := Resolve(ShapeCircle, Params{}); err == nil {
		t.Fatal("expected error for empty parameter set")
	}
}

// Every shape's normalized output must carry exactly the names its renderer
// reads, and resolve into its typed struct.
func TestResolve_CanonicalNamesPerShape(t *testing.T) {
	e := New(nil)
	inputs := map[Shape]map[string]any{
		ShapeCircle:              {"diameter": 10},
		ShapeCircleAngle:         {"arc1": 80, "arc2": 40},
		ShapeRectangle:           {"area": 20, "height": 4},
		ShapeRightTriangle:       {"side1": 3, "side2": 4},
		ShapeEquilateralTriangle: {"height": 6},
		ShapeIsoscelesTriangle:   {"base": 6, "equal_sides": 5},
		ShapeGeneralTriangle:     {"side_a": 3, "side_b": 4, "side_c": 5},
		ShapeSimilarTriangles:    {"ratio": 2, "corresponding_side2": 3},
		ShapeTrigonometric:       {"function": "tan"},
	}
	if len(inputs) != len(AllShapes()) {
		t.Fatalf("table covers %d shapes, want %d", len(inputs), len(AllShapes()))
	}
	for shape, raw := range inputs {
		p, err := e.Normalize(shape, raw)
		if err != nil {
			t.Errorf("%s: %v", shape, err)
			continue
		}
		for _, name := range Required(shape) {
			if !p.has(name) {
				t.Errorf("%s: canonical set missing %q", shape, name)
			}
		}
		resolved, err := Resolve(shape, p)
		if err != nil {
			t.Errorf("%s: resolve: %v", shape, err)
			continue
		}
		if resolved.Shape() != shape {
			t.Errorf("%s: resolved tag %q", shape, resolved.Shape())
		}
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		in   string
		want Shape
		ok   bool
	}{
		{"circle", ShapeCircle, true},
		{"Rectangle", ShapeRectangle, true},
		{"square", ShapeRectangle, true},
		{"right triangle", ShapeRightTriangle, true},
		{"RIGHT_TRIANGLE", ShapeRightTriangle, true},
		{"triangle", ShapeGeneralTriangle, true},
		{"similar_triangles", ShapeSimilarTriangles, true},
		{"trigonometric", ShapeTrigonometric, true},
		{"dodecahedron", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseShape(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseShape(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
