package imgrotate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/bmharper/cimg/v2"
)

// RGB is a single pixel. There is no alpha.
type RGB struct {
	R, G, B uint8
}

// ToColor returns the opaque color.RGBA equivalent
func (c RGB) ToColor() color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 0xff}
}

// ParseRGB parses a hex color such as "ff8000" or "#FF8000"
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: color %q is not RRGGBB", ErrInvalidArgument, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: color %q: %v", ErrInvalidArgument, s, err)
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// 24-bit RGB image with stride = Width*3
type Image struct {
	Width  int
	Height int
	Pixels []byte
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*3),
	}
}

// Validate returns ErrInvalidArgument if the image is nil, empty, or its pixel
// buffer doesn't match its dimensions.
func (s *Image) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: image size %vx%v", ErrInvalidArgument, s.Width, s.Height)
	}
	if len(s.Pixels) != s.Width*s.Height*3 {
		return fmt.Errorf("%w: %v pixel bytes for %vx%v image", ErrInvalidArgument, len(s.Pixels), s.Width, s.Height)
	}
	return nil
}

func (s *Image) Stride() int {
	return s.Width * 3
}

func (s *Image) At(x, y int) RGB {
	i := y*s.Width*3 + x*3
	return RGB{s.Pixels[i], s.Pixels[i+1], s.Pixels[i+2]}
}

func (s *Image) Set(x, y int, c RGB) {
	i := y*s.Width*3 + x*3
	s.Pixels[i] = c.R
	s.Pixels[i+1] = c.G
	s.Pixels[i+2] = c.B
}

// Fill sets every pixel to c
func (s *Image) Fill(c RGB) {
	for i := 0; i < len(s.Pixels); i += 3 {
		s.Pixels[i] = c.R
		s.Pixels[i+1] = c.G
		s.Pixels[i+2] = c.B
	}
}

func (s *Image) Clone() *Image {
	return &Image{
		Width:  s.Width,
		Height: s.Height,
		Pixels: bytes.Clone(s.Pixels),
	}
}

// Equal returns true if both images have the same size and identical pixels
func (s *Image) Equal(b *Image) bool {
	return s.Width == b.Width && s.Height == b.Height && bytes.Equal(s.Pixels, b.Pixels)
}

// Rotate image 90 degrees counter-clockwise
func (s *Image) Rotate90() *Image {
	dst := NewImage(s.Height, s.Width)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			dst.Set(y, s.Width-1-x, s.At(x, y))
		}
	}
	return dst
}

func (s *Image) Rotate180() *Image {
	dst := NewImage(s.Width, s.Height)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			dst.Set(s.Width-1-x, s.Height-1-y, s.At(x, y))
		}
	}
	return dst
}

// Rotate image 270 degrees counter-clockwise (90 clockwise)
func (s *Image) Rotate270() *Image {
	dst := NewImage(s.Height, s.Width)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			dst.Set(s.Height-1-y, x, s.At(x, y))
		}
	}
	return dst
}

// Shrink returns a downscaled copy if either side exceeds maxSize, otherwise the receiver.
func (s *Image) Shrink(maxSize int) *Image {
	if maxSize <= 0 {
		return s
	}
	scaleX := float64(maxSize) / float64(s.Width)
	scaleY := float64(maxSize) / float64(s.Height)
	if scaleX < 1 || scaleY < 1 {
		scale := min(scaleX, scaleY)
		wrapped := s.wrapCimg()
		newWidth := max(1, int(math.Round(float64(s.Width)*scale)))
		newHeight := max(1, int(math.Round(float64(s.Height)*scale)))
		resized := cimg.ResizeNew(wrapped, newWidth, newHeight, nil)
		return fromCimg(resized)
	}
	return s
}

// wrapCimg shares our pixel buffer with a cimg image
func (s *Image) wrapCimg() *cimg.Image {
	return cimg.WrapImage(s.Width, s.Height, cimg.PixelFormatRGB, s.Pixels)
}

// fromCimg copies a cimg image, which may have padded rows, into a packed RGB image
func fromCimg(src *cimg.Image) *Image {
	if src.Format != cimg.PixelFormatRGB {
		src = src.ToRGB()
	}
	dst := NewImage(src.Width, src.Height)
	stride := dst.Stride()
	for y := 0; y < src.Height; y++ {
		copy(dst.Pixels[y*stride:(y+1)*stride], src.Pixels[y*src.Stride:y*src.Stride+stride])
	}
	return dst
}

// FromImage converts any image.Image to RGB, dropping alpha
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	dst := NewImage(b.Dx(), b.Dy())
	if rgba, ok := src.(*image.RGBA); ok {
		for y := 0; y < dst.Height; y++ {
			srcLine := rgba.Pix[y*rgba.Stride : y*rgba.Stride+dst.Width*4]
			dstLine := dst.Pixels[y*dst.Stride() : (y+1)*dst.Stride()]
			i := 0
			for x := 0; x < dst.Width; x++ {
				dstLine[i] = srcLine[x*4]
				dstLine[i+1] = srcLine[x*4+1]
				dstLine[i+2] = srcLine[x*4+2]
				i += 3
			}
		}
		return dst
	}
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.Set(x, y, RGB{c.R, c.G, c.B})
		}
	}
	return dst
}

// ToRGBA returns an opaque copy of the image
func (s *Image) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		srcLine := s.Pixels[y*s.Stride() : (y+1)*s.Stride()]
		dstLine := dst.Pix[y*dst.Stride : y*dst.Stride+s.Width*4]
		i := 0
		for x := 0; x < s.Width; x++ {
			dstLine[x*4] = srcLine[i]
			dstLine[x*4+1] = srcLine[i+1]
			dstLine[x*4+2] = srcLine[i+2]
			dstLine[x*4+3] = 0xff
			i += 3
		}
	}
	return dst
}
