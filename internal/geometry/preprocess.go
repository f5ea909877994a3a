package geometry

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
)

// preprocess applies per-shape special cases that must run before the
// derivation loop because they change which keys are present: legacy
// aliases, the square shortcuts, the 30-60-90 ratios.
func (e *Engine) preprocess(shape Shape, p *Params) error {
	e.checkAngleHint(p)
	switch shape {
	case ShapeRectangle:
		preprocessRectangle(p)
	case ShapeRightTriangle:
		return e.preprocessRightTriangle(p)
	case ShapeIsoscelesTriangle:
		return preprocessIsosceles(p)
	case ShapeGeneralTriangle:
		aliasSides(p)
	case ShapeSimilarTriangles:
		aliasCorresponding(p)
	}
	return nil
}

// checkAngleHint drops malformed advisory angle lists: anything but three
// angles summing to 180. Angles label diagrams and drive a few shortcuts;
// a bad hint should not fail the whole request.
func (e *Engine) checkAngleHint(p *Params) {
	if len(p.Angles) == 0 {
		return
	}
	if len(p.Angles) != 3 {
		e.log.Warn("dropping angles hint",
			zap.Float64s("angles", p.Angles),
			zap.String("reason", "expected three angles"))
		p.Angles = nil
		return
	}
	sum := p.Angles[0] + p.Angles[1] + p.Angles[2]
	if math.Abs(sum-180) > 180*angleSumTolerance {
		e.log.Warn("dropping angles hint",
			zap.Float64s("angles", p.Angles),
			zap.String("reason", "sum is not 180"))
		p.Angles = nil
	}
}

// preprocessRectangle resolves the square spellings: an explicit side sets
// both dimensions, and a lone perimeter, diagonal or area is read as a
// square when neither dimension was given.
func preprocessRectangle(p *Params) {
	if side, ok := p.Get("side"); ok {
		p.set("width", side)
		p.set("height", side)
		return
	}
	if p.has("width") || p.has("height") {
		return
	}
	var side float64
	candidates := 0
	if v, ok := p.Get("perimeter"); ok {
		side = v / 4
		candidates++
	}
	if v, ok := p.Get("diagonal"); ok {
		side = v / math.Sqrt2
		candidates++
	}
	if v, ok := p.Get("area"); ok && v >= 0 {
		side = math.Sqrt(v)
		candidates++
	}
	if candidates == 1 {
		p.set("width", side)
		p.set("height", side)
	}
}

// preprocessRightTriangle normalizes legacy leg names and turns angle hints
// into derivable inputs. side1 is the leg opposite the acute "angle" and
// side2 the leg adjacent to it.
func (e *Engine) preprocessRightTriangle(p *Params) error {
	alias(p, "leg1", "side1")
	alias(p, "leg2", "side2")

	if len(p.Angles) != 3 {
		return nil
	}
	if isThirtySixtyNinety(p.Angles) {
		return e.applyThirtySixtyNinety(p)
	}

	// A right angle plus a known acute angle unlocks the sine and cosine
	// alternatives in the rule table. The first acute angle listed is taken
	// as the angle opposite side1.
	if hasAngle(p.Angles, 90) && !p.has("angle") {
		for _, a := range p.Angles {
			if a > 0 && a < 90-angleEpsilon {
				p.set("angle", a)
				break
			}
		}
	}
	return nil
}

// applyThirtySixtyNinety fills missing sides from the 1:√3:2 ratios, or
// rejects supplied sides that contradict them.
func (e *Engine) applyThirtySixtyNinety(p *Params) error {
	refs := []struct {
		name  string
		scale float64 // side length per half-hypotenuse unit
	}{
		{"side1", 1},
		{"side2", math.Sqrt(3)},
		{"hypotenuse", 2},
	}

	unit := 0.0
	unitFrom := ""
	for _, r := range refs {
		v, ok := p.Get(r.name)
		if !ok {
			continue
		}
		u := v / r.scale
		if unitFrom == "" {
			unit = u
			unitFrom = r.name
			continue
		}
		if relDiff(u, unit) > ratioTolerance {
			return &InvalidGeometryError{
				Shape:  ShapeRightTriangle,
				Reason: fmt.Sprintf("%s %g is inconsistent with %s for a 30-60-90 triangle", r.name, v, unitFrom),
			}
		}
	}
	if unitFrom == "" {
		return nil // nothing given; the derivation loop reports what is missing
	}
	for _, r := range refs {
		if !p.has(r.name) {
			p.set(r.name, unit*r.scale)
		}
	}
	if !p.has("angle") {
		p.set("angle", 30)
	}
	return nil
}

// preprocessIsosceles maps the generic side names onto base/equal_sides and
// back, guarding the defining two-equal-sides constraint.
func preprocessIsosceles(p *Params) error {
	alias(p, "side_a", "base")
	b, hasB := p.Get("side_b")
	c, hasC := p.Get("side_c")
	if hasB && hasC && relDiff(b, c) > equalSideTolerance {
		return &InvalidGeometryError{
			Shape:  ShapeIsoscelesTriangle,
			Reason: fmt.Sprintf("equal sides differ: side_b %g, side_c %g", b, c),
		}
	}
	if !p.has("equal_sides") {
		switch {
		case hasB:
			p.set("equal_sides", b)
		case hasC:
			p.set("equal_sides", c)
		}
	}
	// Expose the generic names as well so triangle checks and diagram
	// labels can read them uniformly.
	if v, ok := p.Get("base"); ok && !p.has("side_a") {
		p.set("side_a", v)
	}
	if v, ok := p.Get("equal_sides"); ok {
		if !p.has("side_b") {
			p.set("side_b", v)
		}
		if !p.has("side_c") {
			p.set("side_c", v)
		}
	}
	return nil
}

// aliasSides accepts the common alternate spellings for the three sides of
// a general triangle.
func aliasSides(p *Params) {
	alias(p, "side1", "side_a")
	alias(p, "side2", "side_b")
	alias(p, "side3", "side_c")
	alias(p, "a", "side_a")
	alias(p, "b", "side_b")
	alias(p, "c", "side_c")
}

func aliasCorresponding(p *Params) {
	alias(p, "side1", "corresponding_side1")
	alias(p, "side2", "corresponding_side2")
}

// alias copies from onto to when to is absent. The original key stays; it
// is harmless and preserves the caller's view of what was supplied.
func alias(p *Params, from, to string) {
	if p.has(to) {
		return
	}
	if v, ok := p.Get(from); ok {
		p.set(to, v)
	}
}

func isThirtySixtyNinety(angles []float64) bool {
	sorted := slices.Clone(angles)
	slices.Sort(sorted)
	for i, want := range [3]float64{30, 60, 90} {
		if math.Abs(sorted[i]-want) > angleEpsilon {
			return false
		}
	}
	return true
}

func hasAngle(angles []float64, deg float64) bool {
	for _, a := range angles {
		if math.Abs(a-deg) <= angleEpsilon {
			return true
		}
	}
	return false
}

// relDiff returns the relative difference between a and b against the
// larger magnitude, 0 when both are zero.
func relDiff(a, b float64) float64 {
	den := math.Max(math.Abs(a), math.Abs(b))
	if den == 0 {
		return 0
	}
	return math.Abs(a-b) / den
}
