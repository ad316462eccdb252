// Package imaging implements per-sample transforms over raw bitmaps.
package imaging

import (
	"errors"
	"fmt"
	"math"
)

var ErrBadSize = errors.New("bitmap size mismatch")

// Transform modifies every sample of the bitmap in place.
type Transform interface {
	Apply(bitmap []byte)
}

// Gamma applies gamma correction: out = 255 * (in/255)^(1/gamma). The curve is precomputed,
// so applying it costs a single table lookup per sample.
type Gamma struct {
	table [256]byte
}

func NewGamma(gamma float64) *Gamma {
	g := new(Gamma)
	for i := range g.table {
		g.table[i] = byte(math.Round(255 * math.Pow(float64(i)/255, 1/gamma)))
	}

	return g
}

func (g *Gamma) Apply(bitmap []byte) {
	for i, sample := range bitmap {
		bitmap[i] = g.table[sample]
	}
}

// Bitmap is a raw, interleaved, 8 bits per sample image without any header.
type Bitmap struct {
	Width, Height, Channels int
	Pix                     []byte
}

// NewBitmap wraps the raw samples, ensuring they describe exactly the requested geometry.
func NewBitmap(width, height, channels int, pix []byte) (Bitmap, error) {
	if want := width * height * channels; len(pix) != want {
		return Bitmap{}, fmt.Errorf("%w: want %d bytes, got %d", ErrBadSize, want, len(pix))
	}

	return Bitmap{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      pix,
	}, nil
}

// Apply runs the transform over every sample.
func (b Bitmap) Apply(t Transform) {
	t.Apply(b.Pix)
}
