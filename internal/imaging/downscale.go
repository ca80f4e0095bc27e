// Package imaging shrinks uploaded photos before they are stored.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 1000
	DefaultQuality      = 80
	DefaultMaxPixels    = 50_000_000
	ContentType         = "image/jpeg"
	Extension           = "jpg"
)

var (
	// ErrDecode is returned when the input is not an image in a supported format.
	ErrDecode = errors.New("imaging: cannot decode image")
	// ErrTooLarge is returned when the header declares more pixels than allowed.
	ErrTooLarge = errors.New("imaging: image dimensions too large")
)

// Options controls the output size and JPEG quality. Zero values fall back
// to the defaults.
type Options struct {
	MaxDimension int
	Quality      int
	// MaxPixels caps width*height of the source before it is decoded.
	MaxPixels    int
}

func (o Options) withDefaults() Options {
	if o.MaxDimension <= 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = DefaultMaxPixels
	}
	return o
}

// Result is a re-encoded photo.
type Result struct {
	Data        []byte
	Width       int
	Height      int
	ContentType string
}

// Downscale decodes r, clamps its longer side to opts.MaxDimension keeping the
// aspect ratio, and re-encodes it as JPEG. Smaller images keep their size but
// are still re-encoded. Sources larger than opts.MaxPixels are rejected from
// their header alone.
func Downscale(r io.Reader, opts Options) (Result, error) {
	opts = opts.withDefaults()

	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(opts.MaxPixels) {
		return Result{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, cfg.Width, cfg.Height, opts.MaxPixels)
	}

	src, format, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	b := src.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), opts.MaxDimension)

	var out image.Image = src
	if w != b.Dx() || h != b.Dy() || format != "jpeg" {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		// JPEG has no alpha; flatten transparent pixels onto white.
		draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return Result{}, fmt.Errorf("imaging: encode jpeg: %w", err)
	}

	return Result{Data: buf.Bytes(), Width: w, Height: h, ContentType: ContentType}, nil
}

// Fit returns width and height scaled so that the longer side is at most
// limit. Dimensions already within limit are returned unchanged. The shorter
// side is rounded and never drops below 1.
func Fit(width, height, limit int) (int, int) {
	if width <= 0 || height <= 0 || limit <= 0 {
		return width, height
	}

	if width > height {
		if width > limit {
			height = scaled(height, float64(limit)/float64(width))
			width = limit
		}
	} else if height > limit {
		width = scaled(width, float64(limit)/float64(height))
		height = limit
	}
	return width, height
}

func scaled(v int, ratio float64) int {
	n := int(math.Round(float64(v) * ratio))
	if n < 1 {
		return 1
	}
	return n
}
