package imgrotate

import (
	"fmt"
	"runtime"
	"strings"
)

// Engine selects the resampling implementation.
type Engine int

const (
	EngineNative Engine = iota // Resample in this package
	EngineXDraw                // golang.org/x/image/draw Transform
)

func (e Engine) String() string {
	switch e {
	case EngineNative:
		return "native"
	case EngineXDraw:
		return "xdraw"
	default:
		return fmt.Sprintf("Engine(%d)", int(e))
	}
}

// ParseEngine accepts the names returned by Engine.String
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(s) {
	case "native":
		return EngineNative, nil
	case "xdraw", "x/image":
		return EngineXDraw, nil
	}
	return 0, fmt.Errorf("%w: unknown engine %q", ErrInvalidArgument, s)
}

// Parameters to the Rotate function
type RotateParams struct {
	Method     Method   // How the output canvas is sized
	Engine     Engine   // Which resampler renders the output
	Sampling   Sampling // Nearest, truncate or bilinear
	Background RGB      // Fill for pixels not covered by the rotated source
	Workers    int      // Resampling goroutines for the native engine. Zero or less means GOMAXPROCS.
}

// Create a new RotateParams with defaults
func NewRotateParams() *RotateParams {
	return &RotateParams{
		Method:   MethodClosedForm,
		Engine:   EngineNative,
		Sampling: SampleNearest,
		Workers:  runtime.GOMAXPROCS(0),
	}
}

// Rotate returns a new image containing img rotated counter-clockwise by degrees
// about its center. The canvas grows so that nothing is clipped, and uncovered
// pixels are set to params.Background.
func Rotate(img *Image, degrees float64, params *RotateParams) (*Image, error) {
	if params == nil {
		params = NewRotateParams()
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	g, err := ComputeGeometry(img.Width, img.Height, degrees, params.Method)
	if err != nil {
		return nil, err
	}
	Logger().Debug("rotate",
		"src", fmt.Sprintf("%vx%v", img.Width, img.Height),
		"dst", fmt.Sprintf("%vx%v", g.Width, g.Height),
		"degrees", degrees,
		"method", params.Method,
		"engine", params.Engine,
		"sampling", params.Sampling)

	switch params.Engine {
	case EngineNative:
		// Quarter turns map pixel indices exactly, so a permutation gives the same result
		switch g.QuarterTurns() {
		case 0:
			return img.Clone(), nil
		case 1:
			return img.Rotate90(), nil
		case 2:
			return img.Rotate180(), nil
		case 3:
			return img.Rotate270(), nil
		}
		return Resample(img, g.Width, g.Height, g.Inverse, &ResampleParams{
			Sampling:   params.Sampling,
			Background: params.Background,
			Workers:    params.Workers,
		})
	case EngineXDraw:
		return resampleXDraw(img, &g, params), nil
	}
	return nil, fmt.Errorf("%w: unknown engine %v", ErrInvalidArgument, params.Engine)
}
