// Package thumbnail converts the embedded scenario bitmap to standard images.
package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"

	"github.com/EchoTools/scxFileTools/pkg/scx"
)

// ErrNoBitmap is returned for scenarios without an embedded thumbnail.
var ErrNoBitmap = errors.New("scenario has no thumbnail")

// Image builds a paletted image from an 8-bit bitmap of the given
// dimensions. Rows are stored bottom-up and padded to scx.RowStride.
func Image(b *scx.Bitmap, width, height int32) (*image.Paletted, error) {
	if b == nil || width <= 0 || height <= 0 {
		return nil, ErrNoBitmap
	}
	if b.BitCount != 0 && b.BitCount != 8 {
		return nil, fmt.Errorf("unsupported bit depth %d", b.BitCount)
	}
	stride := scx.RowStride(width)
	if need := scx.ImageDataLength(width, height); len(b.Pixels) < need {
		return nil, fmt.Errorf("pixel data too short: need %d, got %d", need, len(b.Pixels))
	}

	palette := make(color.Palette, scx.PaletteSize)
	for i, c := range b.Palette {
		palette[i] = color.RGBA{R: c.Red, G: c.Green, B: c.Blue, A: 0xff}
	}

	w, h := int(width), int(height)
	img := image.NewPaletted(image.Rect(0, 0, w, h), palette)
	for y := 0; y < h; y++ {
		src := b.Pixels[(h-1-y)*stride:]
		copy(img.Pix[y*img.Stride:y*img.Stride+w], src[:w])
	}
	return img, nil
}

// FromScenario returns the thumbnail of s.
func FromScenario(s *scx.Scenario) (*image.Paletted, error) {
	if !s.HasBitmap() {
		return nil, ErrNoBitmap
	}
	return Image(s.Bitmap, s.BitmapWidth, s.BitmapHeight)
}

// WriteBMP encodes img as a Windows bitmap.
func WriteBMP(w io.Writer, img image.Image) error {
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("encode bmp: %w", err)
	}
	return nil
}

// WritePNG encodes img as a PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Scale enlarges img by an integer factor.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dc := gg.NewContext(b.Dx()*factor, b.Dy()*factor)
	dc.Scale(float64(factor), float64(factor))
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	return dc.Image()
}
