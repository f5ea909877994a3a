package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Figure palette. Hex values follow the matplotlib default cycle so the
// diagrams keep the look of the service they replace.
var (
	colorWhite      = color.RGBA{255, 255, 255, 255}
	colorText       = color.RGBA{51, 51, 51, 255}    // #333
	colorGrid       = color.RGBA{204, 204, 204, 255} // #ccc
	colorAxis       = color.RGBA{0, 0, 0, 255}
	colorBlue       = color.RGBA{31, 119, 180, 255}  // #1f77b4
	colorOrange     = color.RGBA{255, 127, 14, 255}  // #ff7f0e
	colorGreen      = color.RGBA{44, 160, 44, 255}   // #2ca02c
	colorRed        = color.RGBA{214, 39, 40, 255}   // #d62728
	colorPurple     = color.RGBA{148, 103, 189, 255} // #9467bd
	colorCyan       = color.RGBA{23, 190, 207, 255}  // #17becf
	colorPink       = color.RGBA{227, 119, 194, 255} // #e377c2
	colorRightAngle = color.RGBA{255, 217, 182, 255} // orange over white
)

// Figures are drawn at 4x and downsampled for smooth edges.
const superSample = 4

var baseFont = mustParseFont()

func mustParseFont() *opentype.Font {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err) // embedded font always parses
	}
	return f
}

func newFace(size float64) font.Face {
	face, err := opentype.NewFace(baseFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone, // supersampling smooths instead
	})
	if err != nil {
		panic(err)
	}
	return face
}

// canvas is a world-coordinate drawing surface over an RGBA raster. World
// y grows upward; setViewport fixes the world-to-pixel mapping with equal
// aspect, the way the original figures were plotted.
type canvas struct {
	img           *image.RGBA
	width, height int // final raster size
	scale         float64
	lineWidth     float64

	face      font.Face
	titleFace font.Face
	tickFace  font.Face

	unit             float64 // pixels per world unit on x
	unitY            float64 // y override for stretched viewports, 0 otherwise
	originX, originY float64 // pixel position of world (0, 0)

	// effective visible world rect after aspect correction
	visMinX, visMinY, visMaxX, visMaxY float64

	padLeft, padRight, padTop, padBottom float64
}

func newCanvas(width, height int) *canvas {
	scale := float64(superSample)
	img := image.NewRGBA(image.Rect(0, 0, width*superSample, height*superSample))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return &canvas{
		img:       img,
		width:     width,
		height:    height,
		scale:     scale,
		lineWidth: 2 * scale,
		face:      newFace(13 * scale),
		titleFace: newFace(17 * scale),
		tickFace:  newFace(11 * scale),
		padLeft:   50 * scale,
		padRight:  25 * scale,
		padTop:    55 * scale,
		padBottom: 55 * scale,
	}
}

// setViewport maps the world rect onto the padded plot area, preserving
// aspect ratio. The visible rect may extend beyond the request on one axis.
func (c *canvas) setViewport(minX, minY, maxX, maxY float64) {
	availW := float64(c.img.Bounds().Dx()) - c.padLeft - c.padRight
	availH := float64(c.img.Bounds().Dy()) - c.padTop - c.padBottom

	spanX := maxX - minX
	spanY := maxY - minY
	c.unit = math.Min(availW/spanX, availH/spanY)

	c.originX = c.padLeft + (availW-spanX*c.unit)/2 - minX*c.unit
	c.originY = c.padTop + (availH-spanY*c.unit)/2 + maxY*c.unit

	c.visMinX = (c.padLeft - c.originX) / c.unit
	c.visMaxX = (c.padLeft + availW - c.originX) / c.unit
	c.visMinY = (c.originY - c.padTop - availH) / c.unit
	c.visMaxY = (c.originY - c.padTop) / c.unit
}

// setViewportStretch maps the world rect without preserving aspect. Used by
// the trigonometric plots where x is radians and y is unitless.
func (c *canvas) setViewportStretch(minX, minY, maxX, maxY float64) {
	// Stretching is realized by scaling y separately in py(); unit covers x.
	availW := float64(c.img.Bounds().Dx()) - c.padLeft - c.padRight
	availH := float64(c.img.Bounds().Dy()) - c.padTop - c.padBottom

	c.unit = availW / (maxX - minX)
	c.unitY = availH / (maxY - minY)
	c.originX = c.padLeft - minX*c.unit
	c.originY = c.padTop + maxY*c.unitY

	c.visMinX, c.visMaxX = minX, maxX
	c.visMinY, c.visMaxY = minY, maxY
}

// unitY is zero for aspect-preserving viewports; px() falls back to unit.
func (c *canvas) yUnit() float64 {
	if c.unitY != 0 {
		return c.unitY
	}
	return c.unit
}

func (c *canvas) px(x, y float64) (float64, float64) {
	return c.originX + x*c.unit, c.originY - y*c.yUnit()
}

// strokePx draws a straight pixel-space segment with the given thickness,
// stepping along the line and painting across the perpendicular.
func (c *canvas) strokePx(x1, y1, x2, y2 float64, col color.Color, thickness float64) {
	dx := x2 - x1
	dy := y2 - y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		steps = 1
	}

	halfThick := thickness / 2
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		for ty := -halfThick; ty <= halfThick; ty++ {
			for tx := -halfThick; tx <= halfThick; tx++ {
				c.img.Set(int(x1+tx), int(y1+ty), col)
			}
		}
		return
	}

	perpX := -dy / dist
	perpY := dx / dist

	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx := x1 + dx*t
		cy := y1 + dy*t
		for offset := -halfThick; offset <= halfThick; offset += 0.5 {
			c.img.Set(int(cx+perpX*offset), int(cy+perpY*offset), col)
		}
	}
}

func (c *canvas) dashedPx(x1, y1, x2, y2 float64, col color.Color, thickness float64) {
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		return
	}
	nx := dx / dist
	ny := dy / dist
	on := 6 * c.scale
	off := 5 * c.scale
	for pos := 0.0; pos < dist; pos += on + off {
		end := math.Min(pos+on, dist)
		c.strokePx(x1+nx*pos, y1+ny*pos, x1+nx*end, y1+ny*end, col, thickness)
	}
}

// line draws a world-coordinate segment at the figure line width.
func (c *canvas) line(x1, y1, x2, y2 float64, col color.Color) {
	px1, py1 := c.px(x1, y1)
	px2, py2 := c.px(x2, y2)
	c.strokePx(px1, py1, px2, py2, col, c.lineWidth)
}

func (c *canvas) dashedLine(x1, y1, x2, y2 float64, col color.Color) {
	px1, py1 := c.px(x1, y1)
	px2, py2 := c.px(x2, y2)
	c.dashedPx(px1, py1, px2, py2, col, c.scale)
}

func (c *canvas) polyline(pts [][2]float64, col color.Color) {
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], col)
	}
}

// circleOutline draws a circle of world radius r centered at (cx, cy).
func (c *canvas) circleOutline(cx, cy, r float64, col color.Color) {
	pcx, pcy := c.px(cx, cy)
	pr := r * c.unit
	thickness := c.lineWidth
	for angle := 0.0; angle < 2*math.Pi; angle += 0.003 {
		x := pcx + pr*math.Cos(angle)
		y := pcy + pr*math.Sin(angle)
		nx := math.Cos(angle)
		ny := math.Sin(angle)
		for t := -thickness / 2; t <= thickness/2; t += 0.5 {
			c.img.Set(int(x+nx*t), int(y+ny*t), col)
		}
	}
}

// arc draws the circle segment between two angles (degrees, counterclockwise
// from the positive x axis) with a heavier stroke.
func (c *canvas) arc(cx, cy, r, fromDeg, toDeg float64, col color.Color) {
	pcx, pcy := c.px(cx, cy)
	pr := r * c.unit
	thickness := c.lineWidth * 1.8
	from := fromDeg * math.Pi / 180
	to := toDeg * math.Pi / 180
	for angle := from; angle <= to; angle += 0.003 {
		x := pcx + pr*math.Cos(angle)
		y := pcy - pr*math.Sin(angle)
		nx := math.Cos(angle)
		ny := -math.Sin(angle)
		for t := -thickness / 2; t <= thickness/2; t += 0.5 {
			c.img.Set(int(x+nx*t), int(y+ny*t), col)
		}
	}
}

func (c *canvas) rectOutline(x, y, w, h float64, col color.Color) {
	c.line(x, y, x+w, y, col)
	c.line(x+w, y, x+w, y+h, col)
	c.line(x+w, y+h, x, y+h, col)
	c.line(x, y+h, x, y, col)
}

func (c *canvas) fillRect(x, y, w, h float64, col color.Color) {
	px1, py1 := c.px(x, y+h)
	px2, py2 := c.px(x+w, y)
	for py := int(py1); py <= int(py2); py++ {
		for px := int(px1); px <= int(px2); px++ {
			c.img.Set(px, py, col)
		}
	}
}

// marker draws a small filled disc at a world point, the plot-marker dot.
func (c *canvas) marker(x, y float64, col color.Color) {
	pcx, pcy := c.px(x, y)
	r := 3.5 * c.scale
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.img.Set(int(pcx+dx), int(pcy+dy), col)
			}
		}
	}
}

// arrow draws a world-coordinate segment ending in an arrowhead.
func (c *canvas) arrow(x1, y1, x2, y2 float64, col color.Color) {
	px1, py1 := c.px(x1, y1)
	px2, py2 := c.px(x2, y2)
	c.strokePx(px1, py1, px2, py2, col, c.lineWidth*0.75)

	dx := px2 - px1
	dy := py2 - py1
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		return
	}
	nx := dx / dist
	ny := dy / dist

	arrowLen := 8.0 * c.scale
	arrowWidth := 4.0 * c.scale

	ax1 := px2 - nx*arrowLen + ny*arrowWidth
	ay1 := py2 - ny*arrowLen - nx*arrowWidth
	ax2 := px2 - nx*arrowLen - ny*arrowWidth
	ay2 := py2 - ny*arrowLen + nx*arrowWidth

	for t := 0.0; t <= 1.0; t += 0.05 {
		mx := ax1 + (ax2-ax1)*t
		my := ay1 + (ay2-ay1)*t
		c.strokePx(px2, py2, mx, my, col, c.scale)
	}
}

// textPx draws a string centered on a pixel position.
func (c *canvas) textPx(x, y float64, s string, face font.Face, col color.Color) {
	w := font.MeasureString(face, s).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	baselineY := int(y) + int(float64(ascent)*0.15)

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(x) - w/2),
			Y: fixed.I(baselineY),
		},
	}
	d.DrawString(s)
}

// text draws a string centered on a world point.
func (c *canvas) text(x, y float64, s string, col color.Color) {
	px, py := c.px(x, y)
	c.textPx(px, py, s, c.face, col)
}

// textOffset draws a string centered on a world point shifted by unscaled
// pixel offsets. Positive dy moves downward.
func (c *canvas) textOffset(x, y, dx, dy float64, s string, col color.Color) {
	px, py := c.px(x, y)
	c.textPx(px+dx*c.scale, py+dy*c.scale, s, c.face, col)
}

// textLines stacks multiple centered lines on a world point.
func (c *canvas) textLines(x, y float64, lines []string, col color.Color) {
	lineH := 17.0 * c.scale
	px, py := c.px(x, y)
	top := py - lineH*float64(len(lines)-1)/2
	for i, s := range lines {
		c.textPx(px, top+lineH*float64(i), s, c.face, col)
	}
}

func (c *canvas) title(s string) {
	c.textPx(float64(c.img.Bounds().Dx())/2, 24*c.scale, s, c.titleFace, colorText)
}

// axisLabel writes the unit label centered under the plot area.
func (c *canvas) axisLabel(s string) {
	cx := c.padLeft + (float64(c.img.Bounds().Dx())-c.padLeft-c.padRight)/2
	cy := float64(c.img.Bounds().Dy()) - 18*c.scale
	c.textPx(cx, cy, s, c.face, colorText)
}

// grid draws dashed grid lines at a step chosen from the visible span.
func (c *canvas) grid() {
	stepX := gridStep(c.visMaxX - c.visMinX)
	stepY := gridStep(c.visMaxY - c.visMinY)

	for x := math.Ceil(c.visMinX/stepX) * stepX; x <= c.visMaxX; x += stepX {
		px1, py1 := c.px(x, c.visMinY)
		px2, py2 := c.px(x, c.visMaxY)
		c.dashedPx(px1, py1, px2, py2, colorGrid, c.scale*0.8)
	}
	for y := math.Ceil(c.visMinY/stepY) * stepY; y <= c.visMaxY; y += stepY {
		px1, py1 := c.px(c.visMinX, y)
		px2, py2 := c.px(c.visMaxX, y)
		c.dashedPx(px1, py1, px2, py2, colorGrid, c.scale*0.8)
	}
}

// axes draws solid x=0 and y=0 lines when they fall inside the view.
func (c *canvas) axes() {
	if c.visMinY <= 0 && c.visMaxY >= 0 {
		px1, py1 := c.px(c.visMinX, 0)
		px2, py2 := c.px(c.visMaxX, 0)
		c.strokePx(px1, py1, px2, py2, colorAxis, c.scale*0.8)
	}
	if c.visMinX <= 0 && c.visMaxX >= 0 {
		px1, py1 := c.px(0, c.visMinY)
		px2, py2 := c.px(0, c.visMaxY)
		c.strokePx(px1, py1, px2, py2, colorAxis, c.scale*0.8)
	}
}

// xTick draws a tick mark and label on the bottom edge of the plot area.
func (c *canvas) xTick(x float64, label string) {
	px, _ := c.px(x, 0)
	bottom := float64(c.img.Bounds().Dy()) - c.padBottom
	c.strokePx(px, bottom, px, bottom+5*c.scale, colorAxis, c.scale*0.8)
	c.textPx(px, bottom+14*c.scale, label, c.tickFace, colorText)
}

// gridStep picks a round step giving a handful of lines across the span.
func gridStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	step := math.Pow(10, math.Floor(math.Log10(span)))
	switch {
	case span/step < 2:
		step /= 5
	case span/step < 5:
		step /= 2
	}
	return step
}

// encode downsamples the supersampled raster and returns PNG bytes.
func (c *canvas) encode() ([]byte, error) {
	final := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	draw.CatmullRom.Scale(final, final.Bounds(), c.img, c.img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, final); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
