package geometry

import (
	"math"
	"testing"
)

func TestCoerce(t *testing.T) {
	e := New(nil)
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float", 3.5, 3.5, true},
		{"int", 7, 7, true},
		{"numeric string", "12", 12, true},
		{"expression with pi", "2*π", 2 * math.Pi, true},
		{"caret exponent", "3^2", 9, true},
		{"uppercase", "2*PI", 2 * math.Pi, true},
		{"padded", " 5 + 1 ", 6, true},
		{"sql injection", "DROP TABLE students", 0, false},
		{"prose", "about five", 0, false},
		{"empty string", "", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"list", []any{1, 2}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Coerce(tt.in)
			if ok != tt.ok {
				t.Fatalf("Coerce(%v): ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Coerce(%v) = %g, want %g", tt.in, got, tt.want)
			}
		})
	}
}

func TestCoerceAngles(t *testing.T) {
	e := New(nil)

	got, ok := e.coerceAngles([]any{30, "60", 90.0})
	if !ok {
		t.Fatal("expected mixed angle list to coerce")
	}
	want := []float64{30, 60, 90}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("angle %d = %g, want %g", i, got[i], want[i])
		}
	}

	if _, ok := e.coerceAngles([]any{30, "sixty", 90}); ok {
		t.Error("list with an uncoercible element should fail as a whole")
	}
	if _, ok := e.coerceAngles("30,60,90"); ok {
		t.Error("non-list value should fail")
	}
}
