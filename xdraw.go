package imgrotate

import (
	"image"

	"golang.org/x/image/draw"
)

// resampleXDraw renders the rotation with golang.org/x/image/draw.
// x/image works in continuous coordinates where pixel centers sit at +0.5,
// so the index-space forward matrix is shifted into that space first.
func resampleXDraw(src *Image, g *Geometry, params *RotateParams) *Image {
	var interp draw.Interpolator
	switch params.Sampling {
	case SampleBilinear:
		interp = draw.BiLinear
	default:
		interp = draw.NearestNeighbor
	}

	s2d := Translate(0.5, 0.5).Multiply(g.Forward).Multiply(Translate(-0.5, -0.5))

	srcRGBA := src.ToRGBA()
	dst := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(params.Background.ToColor()), image.Point{}, draw.Src)
	interp.Transform(dst, s2d.Aff3(), srcRGBA, srcRGBA.Bounds(), draw.Over, nil)
	return FromImage(dst)
}
