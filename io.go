package imgrotate

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmharper/cimg/v2"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func isJPEG(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".jpg" || ext == ".jpeg"
}

// LoadImage reads an image file and converts it to RGB.
// JPEG files go through libjpeg-turbo (cimg); PNG, GIF, BMP, TIFF and WebP through
// the Go decoders. Errors wrap ErrIO if the file can't be read, or ErrDecode if
// it isn't a raster image we understand.
func LoadImage(path string) (*Image, error) {
	path = filepath.Clean(path)
	if isJPEG(path) {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		img, err := cimg.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v: %v", ErrDecode, path, err)
		}
		return fromCimg(img), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer func() { _ = f.Close() }()
	return decode(f, path)
}

func decode(r io.Reader, name string) (*Image, error) {
	img, _, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %v", ErrDecode, name, err)
	}
	return FromImage(img), nil
}

// SaveImage writes img to path, choosing the encoder from the file extension.
// quality only applies to JPEG.
func SaveImage(path string, img *Image, quality int) error {
	if err := img.Validate(); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if isJPEG(path) {
		if err := img.wrapCimg().WriteJPEG(path, cimg.MakeCompressParams(cimg.Sampling444, quality, 0), 0644); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
		return nil
	}

	var encode func(w io.Writer, m image.Image) error
	switch ext {
	case ".png":
		encode = png.Encode
	case ".bmp":
		encode = bmp.Encode
	case ".tif", ".tiff":
		encode = func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	bw := bufio.NewWriter(f)
	if err := encode(bw, img.ToRGBA()); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %v: %v", ErrIO, path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %v: %v", ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
