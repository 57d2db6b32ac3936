package imgrotate

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Sampling is the policy for turning a real-valued source coordinate into a color.
type Sampling int

const (
	// SampleNearest picks the closest source pixel
	SampleNearest Sampling = iota

	// SampleTruncate truncates source coordinates toward zero
	SampleTruncate

	// SampleBilinear blends the four neighbouring source pixels. Neighbours outside
	// the source contribute the background color.
	SampleBilinear
)

func (s Sampling) String() string {
	switch s {
	case SampleNearest:
		return "nearest"
	case SampleTruncate:
		return "truncate"
	case SampleBilinear:
		return "bilinear"
	default:
		return fmt.Sprintf("Sampling(%d)", int(s))
	}
}

// ParseSampling accepts the names returned by Sampling.String
func ParseSampling(s string) (Sampling, error) {
	switch strings.ToLower(s) {
	case "nearest":
		return SampleNearest, nil
	case "truncate":
		return SampleTruncate, nil
	case "bilinear":
		return SampleBilinear, nil
	}
	return 0, fmt.Errorf("%w: unknown sampling %q", ErrInvalidArgument, s)
}

// Parameters to the Resample function
type ResampleParams struct {
	Sampling   Sampling
	Background RGB // Color of destination pixels that map outside the source
	Workers    int // Number of goroutines. Zero or less means GOMAXPROCS.
}

// Create a new ResampleParams with defaults
func NewResampleParams() *ResampleParams {
	return &ResampleParams{
		Sampling: SampleNearest,
		Workers:  runtime.GOMAXPROCS(0),
	}
}

// Resample builds a dstWidth x dstHeight image by mapping every destination pixel
// through inverse into src and sampling there.
// Destination pixels that land outside src get params.Background.
func Resample(src *Image, dstWidth, dstHeight int, inverse Affine, params *ResampleParams) (*Image, error) {
	if params == nil {
		params = NewResampleParams()
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if dstWidth <= 0 || dstHeight <= 0 {
		return nil, fmt.Errorf("%w: destination size %vx%v", ErrInvalidArgument, dstWidth, dstHeight)
	}

	var sample func(sx, sy float64) RGB
	switch params.Sampling {
	case SampleNearest:
		sample = func(sx, sy float64) RGB {
			return pixelOrBackground(src, int(math.Floor(sx+0.5)), int(math.Floor(sy+0.5)), params.Background)
		}
	case SampleTruncate:
		sample = func(sx, sy float64) RGB {
			return pixelOrBackground(src, int(sx), int(sy), params.Background)
		}
	case SampleBilinear:
		sample = func(sx, sy float64) RGB {
			return sampleBilinear(src, sx, sy, params.Background)
		}
	default:
		return nil, fmt.Errorf("%w: unknown sampling %v", ErrInvalidArgument, params.Sampling)
	}

	dst := NewImage(dstWidth, dstHeight)
	resampleRows := func(y1, y2 int) {
		for y := y1; y < y2; y++ {
			line := dst.Pixels[y*dst.Stride() : (y+1)*dst.Stride()]
			i := 0
			for x := 0; x < dstWidth; x++ {
				c := sample(inverse.Apply(float64(x), float64(y)))
				line[i] = c.R
				line[i+1] = c.G
				line[i+2] = c.B
				i += 3
			}
		}
	}

	workers := params.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, dstHeight)
	if workers == 1 {
		resampleRows(0, dstHeight)
		return dst, nil
	}

	// Each band owns a disjoint range of destination rows
	band := (dstHeight + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for y1 := 0; y1 < dstHeight; y1 += band {
		y1 := y1 // per-iteration copy; go.mod targets go 1.21
		y2 := min(y1+band, dstHeight)
		g.Go(func() error {
			resampleRows(y1, y2)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

func pixelOrBackground(src *Image, x, y int, background RGB) RGB {
	if x < 0 || y < 0 || x >= src.Width || y >= src.Height {
		return background
	}
	return src.At(x, y)
}

func sampleBilinear(src *Image, sx, sy float64, background RGB) RGB {
	x0 := math.Floor(sx)
	y0 := math.Floor(sy)
	tx := sx - x0
	ty := sy - y0
	ix, iy := int(x0), int(y0)

	// Far outside: skip the blend
	if ix < -1 || iy < -1 || ix >= src.Width || iy >= src.Height {
		return background
	}

	c00 := pixelOrBackground(src, ix, iy, background)
	c10 := pixelOrBackground(src, ix+1, iy, background)
	c01 := pixelOrBackground(src, ix, iy+1, background)
	c11 := pixelOrBackground(src, ix+1, iy+1, background)

	return RGB{
		R: blend(c00.R, c10.R, c01.R, c11.R, tx, ty),
		G: blend(c00.G, c10.G, c01.G, c11.G, tx, ty),
		B: blend(c00.B, c10.B, c01.B, c11.B, tx, ty),
	}
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func blend(v00, v10, v01, v11 uint8, tx, ty float64) uint8 {
	v0 := lerp(float64(v00), float64(v10), tx)
	v1 := lerp(float64(v01), float64(v11), tx)
	v := math.Round(lerp(v0, v1, ty))
	return uint8(max(0, min(255, v)))
}
