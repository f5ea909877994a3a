package geometry

import (
	"math"
	"testing"
)

func TestEvalExpr(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"3.5", 3.5},
		{".5", 0.5},
		{"π", math.Pi},
		{"pi", math.Pi},
		{"2*π", 2 * math.Pi},
		{"2*pi", 2 * math.Pi},
		{"pi/2", math.Pi / 2},
		{"3^2", 9},
		{"2**3", 8},
		{"2**3**2", 512}, // right-associative
		{"2*3**2", 18},
		{"-2^2", -4},
		{"2^-2", 0.25},
		{"-3", -3},
		{"--3", 3},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"(1+2)*π", 3 * math.Pi},
		{"10/4", 2.5},
	}
	for _, tt := range tests {
		got, err := evalExpr(tt.in)
		if err != nil {
			t.Errorf("evalExpr(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("evalExpr(%q) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestEvalExpr_Rejects(t *testing.T) {
	tests := []string{
		"",
		"drop table students",
		"__import__('os')",
		"radius",
		"2+",
		"(1+2",
		"1/0",
		"2..3",
		"pie",     // trailing garbage after the constant
		"1e3",     // exponent notation is not a plain literal
		"2 * * 3", // split exponent
		"len(x)",
	}
	for _, in := range tests {
		if got, err := evalExpr(in); err == nil {
			t.Errorf("evalExpr(%q) = %g, want error", in, got)
		}
	}
}
