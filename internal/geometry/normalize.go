package geometry

import (
	"math"
	"slices"
	"strings"

	"go.uber.org/zap"
)

const (
	// maxDerivationPasses bounds the fixed-point loop. Dependency chains in
	// the rule table are at most two deep, so three passes always suffice;
	// the cap guarantees termination should the table ever grow a cycle.
	maxDerivationPasses = 3

	// squareTolerance is the absolute width/height difference under which a
	// rectangle counts as a square.
	squareTolerance = 1e-3

	// angleSumTolerance is the relative slack on the 180-degree angle sum.
	angleSumTolerance = 1e-2

	// ratioTolerance is the relative slack for consistency between
	// independently supplied and derived lengths: 30-60-90 ratios, the
	// Pythagorean identity, similar-triangle ratios.
	ratioTolerance = 1e-2

	// equalSideTolerance is the slack on the isosceles equal-sides pair,
	// which should agree exactly up to float noise.
	equalSideTolerance = 1e-6

	angleEpsilon = 1e-6
)

// Normalize resolves a raw parameter map for a shape into its canonical
// set. Nil and uncoercible values are dropped, per-shape preprocessing runs
// first, then missing required parameters are filled from the rule table in
// bounded fixed-point passes. Derivable extras (area, height, angles) are
// filled afterwards, best-effort. It returns a *MissingParameterError when
// required parameters stay unresolved and an *InvalidGeometryError when the
// resolved set breaks a geometric law.
func (e *Engine) Normalize(shape Shape, raw map[string]any) (Params, error) {
	p := e.ingest(raw)
	if err := e.preprocess(shape, &p); err != nil {
		return Params{}, err
	}

	rules := rulesFor(shape)
	missing := missingRequired(rules, p)
	for pass := 1; pass <= maxDerivationPasses && len(missing) > 0; pass++ {
		progressed := false
		for _, name := range missing {
			if e.derive(shape, rules, &p, name) {
				progressed = true
			}
		}
		missing = missingRequired(rules, p)
		if !progressed {
			break // no alternative can fire anymore
		}
	}
	if len(missing) > 0 {
		return Params{}, &MissingParameterError{Shape: shape, Missing: missing}
	}

	e.enrich(shape, rules, &p)
	if err := e.validate(shape, &p); err != nil {
		return Params{}, err
	}
	return p, nil
}

// ingest coerces the raw map into a Params, dropping nil entries and values
// that cannot become numbers. The reserved keys "angles" and "function" go
// to their dedicated fields.
func (e *Engine) ingest(raw map[string]any) Params {
	p := Params{Values: make(map[string]float64, len(raw))}
	for key, val := range raw {
		if val == nil {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		switch key {
		case "angles":
			if a, ok := e.coerceAngles(val); ok {
				p.Angles = a
				continue
			}
		case "function":
			if s, ok := val.(string); ok && strings.TrimSpace(s) != "" {
				p.Function = strings.ToLower(strings.TrimSpace(s))
				continue
			}
		default:
			if f, ok := e.Coerce(val); ok {
				p.Values[key] = f
				continue
			}
		}
		e.log.Warn("dropping unusable parameter", zap.String("name", key), zap.Any("value", val))
	}
	return p
}

// derive tries the alternatives for one target in declaration order and
// applies the first whose sources are all present. A formula error fails
// only that alternative.
func (e *Engine) derive(shape Shape, rules shapeRules, p *Params, target string) bool {
	for _, d := range rules.derivations {
		if d.target != target {
			continue
		}
		src, ok := gather(*p, d.sources)
		if !ok {
			continue
		}
		v, err := d.apply(src)
		if err != nil {
			e.log.Debug("derivation alternative failed",
				zap.String("shape", string(shape)),
				zap.String("target", target),
				zap.Strings("sources", d.sources),
				zap.Error(err))
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		p.set(target, v)
		return true
	}
	return false
}

// enrich fills derivable parameters outside the required set so diagrams
// can carry area, height and angle labels. Best-effort: targets that cannot
// be derived are left out.
func (e *Engine) enrich(shape Shape, rules shapeRules, p *Params) {
	var targets []string
	for _, d := range rules.derivations {
		if slices.Contains(rules.required, d.target) || slices.Contains(targets, d.target) {
			continue
		}
		targets = append(targets, d.target)
	}
	for pass := 1; pass <= maxDerivationPasses; pass++ {
		progressed := false
		for _, name := range targets {
			if p.has(name) {
				continue
			}
			if e.derive(shape, rules, p, name) {
				progressed = true
			}
		}
		if !progressed {
			return
		}
	}
}

// missingRequired returns the required names absent from p, in their
// declared order.
func missingRequired(rules shapeRules, p Params) []string {
	var missing []string
	for _, name := range rules.required {
		if !p.has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func gather(p Params, names []string) ([]float64, bool) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, ok := p.Get(name)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
