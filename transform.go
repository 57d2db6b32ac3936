package imgrotate

import (
	"fmt"
	"math"
	"strings"
)

const deg2Rad = math.Pi / 180

// Method selects how the output canvas is sized.
type Method int

const (
	// MethodClosedForm sizes the canvas with round(W*|cos| + H*|sin|) by round(W*|sin| + H*|cos|),
	// the exact bound of the rotated rectangle. The inverse is derived analytically.
	MethodClosedForm Method = iota

	// MethodCorners rotates the four corner pixel indices and takes their inclusive
	// bounding box. The inverse is obtained by inverting the composed forward matrix.
	MethodCorners
)

func (m Method) String() string {
	switch m {
	case MethodClosedForm:
		return "closed"
	case MethodCorners:
		return "corners"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod accepts the names returned by Method.String
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "closed", "closedform", "closed-form":
		return MethodClosedForm, nil
	case "corners", "corner":
		return MethodCorners, nil
	}
	return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidArgument, s)
}

// Geometry is the output canvas and the mapping between source and destination pixel indices.
type Geometry struct {
	SrcWidth  int
	SrcHeight int
	Degrees   float64
	Width     int    // Destination canvas width
	Height    int    // Destination canvas height
	Forward   Affine // source -> destination
	Inverse   Affine // destination -> source
}

// QuarterTurns returns 0..3 if the angle is an exact multiple of 90 degrees, or -1 otherwise.
func (g *Geometry) QuarterTurns() int {
	return quarterTurns(g.Degrees)
}

func quarterTurns(degrees float64) int {
	r := math.Mod(degrees, 360)
	if r < 0 {
		r += 360
	}
	if r != math.Trunc(r) || int(r)%90 != 0 {
		return -1
	}
	return int(r) / 90
}

// sincosDegrees returns exact values for multiples of 90 degrees, so that quarter
// turns produce exact canvas sizes and integral source coordinates.
func sincosDegrees(degrees float64) (sin, cos float64) {
	switch quarterTurns(degrees) {
	case 0:
		return 0, 1
	case 1:
		return 1, 0
	case 2:
		return 0, -1
	case 3:
		return -1, 0
	}
	return math.Sincos(math.Mod(degrees, 360) * deg2Rad)
}

// ComputeGeometry derives the destination canvas for rotating a srcWidth x srcHeight
// image by degrees (counter-clockwise) about its center.
func ComputeGeometry(srcWidth, srcHeight int, degrees float64, method Method) (Geometry, error) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return Geometry{}, fmt.Errorf("%w: source size %vx%v", ErrInvalidArgument, srcWidth, srcHeight)
	}
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return Geometry{}, fmt.Errorf("%w: angle %v", ErrInvalidArgument, degrees)
	}

	sin, cos := sincosDegrees(degrees)
	rot := Rotation(sin, cos)

	// Rotation is about the center of the pixel index grid
	srcCX := float64(srcWidth-1) / 2
	srcCY := float64(srcHeight-1) / 2
	toOrigin := Translate(-srcCX, -srcCY)

	g := Geometry{
		SrcWidth:  srcWidth,
		SrcHeight: srcHeight,
		Degrees:   degrees,
	}

	switch method {
	case MethodClosedForm:
		w, h := float64(srcWidth), float64(srcHeight)
		g.Width = int(math.Round(w*math.Abs(cos) + h*math.Abs(sin)))
		g.Height = int(math.Round(w*math.Abs(sin) + h*math.Abs(cos)))
	case MethodCorners:
		centered := rot.Multiply(toOrigin)
		corners := [4][2]float64{
			{0, 0},
			{float64(srcWidth - 1), 0},
			{float64(srcWidth - 1), float64(srcHeight - 1)},
			{0, float64(srcHeight - 1)},
		}
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, c := range corners {
			x, y := centered.Apply(c[0], c[1])
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
		// +1 because the bounds are inclusive pixel indices
		g.Width = int(math.Round(maxX-minX)) + 1
		g.Height = int(math.Round(maxY-minY)) + 1
	default:
		return Geometry{}, fmt.Errorf("%w: unknown method %v", ErrInvalidArgument, method)
	}
	g.Width = max(g.Width, 1)
	g.Height = max(g.Height, 1)

	dstCX := float64(g.Width-1) / 2
	dstCY := float64(g.Height-1) / 2
	g.Forward = Translate(dstCX, dstCY).Multiply(rot).Multiply(toOrigin)

	switch method {
	case MethodClosedForm:
		// The rotation block is orthonormal, so its inverse is the transpose
		rotT := Rotation(-sin, cos)
		g.Inverse = Translate(srcCX, srcCY).Multiply(rotT).Multiply(Translate(-dstCX, -dstCY))
	case MethodCorners:
		inv, ok := g.Forward.Invert()
		if !ok {
			// Unreachable for a rotation, whose determinant is 1
			return Geometry{}, fmt.Errorf("%w: singular transform for angle %v", ErrInvalidArgument, degrees)
		}
		g.Inverse = inv
	}
	return g, nil
}
