package render

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"saba/pkg/core"
)

// CompareOptions controls how strictly two renderings must agree.
type CompareOptions struct {
	// Tolerance is the largest per-channel difference (0-255) still counted
	// as equal.
	Tolerance int
	// MaxDifferentPercent lets a comparison pass when at most this share of
	// pixels differ.
	MaxDifferentPercent float64
	// DiffPath, when set, receives a PNG with differing pixels in red.
	DiffPath string
}

type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int
}

// Compare checks actual against expected pixel by pixel. Images of different
// sizes never match.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds.Size() != expected.Bounds().Size() {
		return &CompareResult{}, core.Errorf(core.ErrInvalidUI,
			"image sizes differ: %v vs %v", bounds.Size(), expected.Bounds().Size())
	}

	res := &CompareResult{Match: true, TotalPixels: bounds.Dx() * bounds.Dy()}
	var diff *image.RGBA
	if opts.DiffPath != "" {
		diff = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	}

	eo := expected.Bounds().Min.Sub(bounds.Min)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := color.NRGBAModel.Convert(actual.At(x, y)).(color.NRGBA)
			e := color.NRGBAModel.Convert(expected.At(x+eo.X, y+eo.Y)).(color.NRGBA)
			d := max(channelDiff(a.R, e.R), channelDiff(a.G, e.G), channelDiff(a.B, e.B), channelDiff(a.A, e.A))
			res.MaxDifference = max(res.MaxDifference, d)

			px := color.RGBA{a.R / 2, a.G / 2, a.B / 2, 255}
			if d > opts.Tolerance {
				res.DifferentPixels++
				px = color.RGBA{255, 0, 0, 255}
			}
			if diff != nil {
				diff.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, px)
			}
		}
	}

	if res.DifferentPixels > 0 {
		pct := float64(res.DifferentPixels) / float64(res.TotalPixels) * 100
		res.Match = opts.MaxDifferentPercent > 0 && pct <= opts.MaxDifferentPercent
	}
	if diff != nil && !res.Match {
		if err := writePNG(opts.DiffPath, diff); err != nil {
			return res, err
		}
	}
	return res, nil
}

// LoadPNG reads a PNG file, typically a reference rendering.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.Errorf(core.ErrInvalidUI, "opening %s: %w", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, core.Errorf(core.ErrInvalidUI, "decoding %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return core.Errorf(core.ErrInvalidUI, "creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return core.Errorf(core.ErrInvalidUI, "encoding %s: %w", path, err)
	}
	return f.Close()
}

func channelDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
