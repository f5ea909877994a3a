package tutor

import "fmt"

// UnsupportedShapeError reports a shape name outside the drawable families.
type UnsupportedShapeError struct {
	Name string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("unsupported shape %q", e.Name)
}
