// Package render draws annotated PNG diagrams for resolved shape parameters.
// Each shape family has one figure: white canvas, dashed grid, axes, the
// outline, and measurement labels.
package render

import (
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"

	"github.com/Natnat0905/GeoChat/internal/geometry"
)

// expectedParams lists, per shape, the ordered canonical parameter names the
// figure consumes. The draw command surfaces the list when normalization
// fails, and tests pin it to the normalization rules.
var expectedParams = map[geometry.Shape][]string{
	geometry.ShapeCircle:              {"radius"},
	geometry.ShapeCircleAngle:         {"arc1", "arc2"},
	geometry.ShapeRectangle:           {"width", "height"},
	geometry.ShapeRightTriangle:       {"side1", "side2", "hypotenuse"},
	geometry.ShapeEquilateralTriangle: {"side"},
	geometry.ShapeIsoscelesTriangle:   {"base", "equal_sides"},
	geometry.ShapeGeneralTriangle:     {"side_a", "side_b", "side_c"},
	geometry.ShapeSimilarTriangles:    {"ratio", "corresponding_side1", "corresponding_side2"},
	geometry.ShapeTrigonometric:       {"function"},
}

// ExpectedParams returns the ordered parameter names a shape's figure needs.
func ExpectedParams(shape geometry.Shape) ([]string, bool) {
	names, ok := expectedParams[shape]
	return names, ok
}

// Renderer draws diagrams. It is stateless apart from its logger and safe
// for concurrent use.
type Renderer struct {
	log *zap.Logger
}

// New returns a Renderer. A nil logger disables the per-figure debug logs.
func New(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{log: log}
}

// Render draws the figure for a resolved shape and returns PNG bytes.
func (r *Renderer) Render(res geometry.Resolved) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch s := res.(type) {
	case geometry.Circle:
		data, err = circleFigure(s)
	case geometry.CircleAngle:
		data, err = circleAngleFigure(s)
	case geometry.Rectangle:
		data, err = rectangleFigure(s)
	case geometry.RightTriangle:
		data, err = rightTriangleFigure(s)
	case geometry.EquilateralTriangle:
		data, err = equilateralTriangleFigure(s)
	case geometry.IsoscelesTriangle:
		data, err = isoscelesTriangleFigure(s)
	case geometry.GeneralTriangle:
		data, err = generalTriangleFigure(s)
	case geometry.SimilarTriangles:
		data, err = similarTrianglesFigure(s)
	case geometry.Trigonometric:
		data, err = trigFigure(s)
	default:
		return nil, fmt.Errorf("render: unsupported shape %q", res.Shape())
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", res.Shape(), err)
	}

	r.log.Debug("rendered figure",
		zap.String("shape", string(res.Shape())),
		zap.Int("bytes", len(data)))
	return data, nil
}

// Base64PNG encodes PNG bytes the way the chat API carries images.
func Base64PNG(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DataURI wraps PNG bytes in a data URI for direct embedding.
func DataURI(data []byte) string {
	return "data:image/png;base64," + Base64PNG(data)
}
