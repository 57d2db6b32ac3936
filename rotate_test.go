package imgrotate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var quadrantColors = [4]RGB{{200, 30, 30}, {30, 200, 30}, {30, 30, 200}, {220, 220, 40}}

// Four solid quadrants, none of them black
func makeQuadrantImage(width, height int) *Image {
	img := NewImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			q := 0
			if x >= width/2 {
				q |= 1
			}
			if y >= height/2 {
				q |= 2
			}
			img.Set(x, y, quadrantColors[q])
		}
	}
	return img
}

func countNonBackground(img *Image, bg RGB) int {
	n := 0
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if img.At(x, y) != bg {
				n++
			}
		}
	}
	return n
}

func TestRotateIdentity(t *testing.T) {
	src := makePatternImage(13, 9)
	for _, degrees := range []float64{0, 360, -360, 1080} {
		dst, err := Rotate(src, degrees, nil)
		require.NoError(t, err)
		require.True(t, src.Equal(dst))
	}
	// The result is a copy, not the input
	dst, err := Rotate(src, 0, nil)
	require.NoError(t, err)
	dst.Set(0, 0, RGB{1, 2, 3})
	require.NotEqual(t, RGB{1, 2, 3}, src.At(0, 0))
}

func TestRotate2x2By90(t *testing.T) {
	src := NewImage(2, 2)
	a, b, c, d := RGB{255, 0, 0}, RGB{0, 255, 0}, RGB{0, 0, 255}, RGB{255, 255, 0}
	src.Set(0, 0, a)
	src.Set(1, 0, b)
	src.Set(0, 1, c)
	src.Set(1, 1, d)
	for _, method := range allMethods {
		params := NewRotateParams()
		params.Method = method
		dst, err := Rotate(src, 90, params)
		require.NoError(t, err)
		require.Equal(t, 2, dst.Width)
		require.Equal(t, 2, dst.Height)
		require.Equal(t, []RGB{b, d, a, c}, []RGB{dst.At(0, 0), dst.At(1, 0), dst.At(0, 1), dst.At(1, 1)})
	}
}

func TestRotateFourQuarterTurns(t *testing.T) {
	src := makePatternImage(7, 4)
	img := src
	for i := 0; i < 4; i++ {
		var err error
		img, err = Rotate(img, 90, nil)
		require.NoError(t, err)
	}
	require.True(t, src.Equal(img))
}

func TestRotateSizeMatchesGeometry(t *testing.T) {
	src := makePatternImage(31, 17)
	for _, method := range allMethods {
		for _, degrees := range []float64{5, 23, 45, 89.9, 91, 200, -33} {
			params := NewRotateParams()
			params.Method = method
			dst, err := Rotate(src, degrees, params)
			require.NoError(t, err)
			g, err := ComputeGeometry(src.Width, src.Height, degrees, method)
			require.NoError(t, err)
			require.Equal(t, g.Width, dst.Width)
			require.Equal(t, g.Height, dst.Height)
		}
	}
}

func TestRotateBackgroundCorners(t *testing.T) {
	src := makeQuadrantImage(60, 40)
	params := NewRotateParams()
	params.Background = RGB{1, 2, 3}
	for _, method := range allMethods {
		for _, s := range allSamplings {
			params.Method = method
			params.Sampling = s
			dst, err := Rotate(src, 45, params)
			require.NoError(t, err)
			for _, p := range [][2]int{{0, 0}, {dst.Width - 1, 0}, {0, dst.Height - 1}, {dst.Width - 1, dst.Height - 1}} {
				require.Equal(t, params.Background, dst.At(p[0], p[1]), "%v %v corner %v", method, s, p)
			}
		}
	}
}

// Rotation preserves area, so the number of covered pixels stays close to the source's
func TestRotateCoverage(t *testing.T) {
	src := makeQuadrantImage(120, 80)
	area := float64(src.Width * src.Height)
	for _, method := range allMethods {
		for _, degrees := range []float64{10, 30, 45, 77, 135, -20} {
			params := NewRotateParams()
			params.Method = method
			dst, err := Rotate(src, degrees, params)
			require.NoError(t, err)
			covered := float64(countNonBackground(dst, RGB{}))
			t.Logf("%-8v %6.1f: %vx%v covered %.0f of %.0f", method, degrees, dst.Width, dst.Height, covered, area)
			require.InEpsilon(t, area, covered, 0.04)
		}
	}
}

func TestRotateRoundTrip(t *testing.T) {
	src := makeQuadrantImage(80, 60)
	for _, degrees := range []float64{30, 12.5, -70} {
		there, err := Rotate(src, degrees, nil)
		require.NoError(t, err)
		back, err := Rotate(there, -degrees, nil)
		require.NoError(t, err)
		require.GreaterOrEqual(t, back.Width, src.Width-1)
		require.GreaterOrEqual(t, back.Height, src.Height-1)

		// Both rotations preserve the center, so the source sits in the middle of the result
		ox := int(math.Round(float64(back.Width-src.Width) / 2))
		oy := int(math.Round(float64(back.Height-src.Height) / 2))
		const margin = 2
		mismatch, total := 0, 0
		for y := margin; y < src.Height-margin; y++ {
			for x := margin; x < src.Width-margin; x++ {
				bx, by := x+ox, y+oy
				if bx < 0 || by < 0 || bx >= back.Width || by >= back.Height || back.At(bx, by) != src.At(x, y) {
					mismatch++
				}
				total++
			}
		}
		t.Logf("%6.1f: %v of %v pixels differ", degrees, mismatch, total)
		require.Less(t, float64(mismatch)/float64(total), 0.15)
	}
}

func TestRotateDeterministic(t *testing.T) {
	src := makeNoiseImage(50, 35, 7)
	for _, engine := range []Engine{EngineNative, EngineXDraw} {
		for _, s := range allSamplings {
			params := NewRotateParams()
			params.Engine = engine
			params.Sampling = s
			a, err := Rotate(src, 17.25, params)
			require.NoError(t, err)
			b, err := Rotate(src, 17.25, params)
			require.NoError(t, err)
			require.True(t, a.Equal(b))
		}
	}
}

func TestRotateInvalid(t *testing.T) {
	_, err := Rotate(nil, 10, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Rotate(&Image{}, 10, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Rotate(&Image{Width: 2, Height: 2, Pixels: make([]byte, 5)}, 10, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Rotate(makePatternImage(2, 2), math.NaN(), nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Rotate(makePatternImage(2, 2), 10, &RotateParams{Engine: Engine(5)})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseEngine(t *testing.T) {
	for _, e := range []Engine{EngineNative, EngineXDraw} {
		parsed, err := ParseEngine(e.String())
		require.NoError(t, err)
		require.Equal(t, e, parsed)
	}
	_, err := ParseEngine("opencv")
	require.ErrorIs(t, err, ErrInvalidArgument)
}
