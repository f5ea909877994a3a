package geometry

import (
	"fmt"
	"strings"
)

// MissingParameterError reports required parameters that remained unresolved
// after the derivation passes. The caller should ask the user to supply the
// named measurements.
type MissingParameterError struct {
	Shape   Shape
	Missing []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: missing required parameters: %s", e.Shape, strings.Join(e.Missing, ", "))
}

// InvalidGeometryError reports a resolved parameter set that violates a
// geometric law, such as the triangle inequality or an inconsistent
// side/hypotenuse combination.
type InvalidGeometryError struct {
	Shape  Shape
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("%s: invalid geometry: %s", e.Shape, e.Reason)
}
