// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package palette

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/palette-dots/pkg/types"
)

// maxSamples caps the pixels fed to k-means; larger images are subsampled
// on a regular grid.
const maxSamples = 12000

// ErrTooFewColors is returned when an image cannot yield the requested
// number of colors.
var ErrTooFewColors = errors.New("image has too few colors")

// Quantizer reduces an image to k representative colors ordered by
// population, most dominant first.
type Quantizer interface {
	Name() string
	Quantize(img image.Image, k int) (types.Palette, error)
}

// KMeansQuantizer clusters subsampled RGB pixels with muesli/kmeans.
type KMeansQuantizer struct{}

func (KMeansQuantizer) Name() string { return string(types.MethodKMeans) }

func (KMeansQuantizer) Quantize(img image.Image, k int) (types.Palette, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty image")
	}

	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) < k {
		return nil, fmt.Errorf("%w: %d opaque samples for %d colors", ErrTooFewColors, len(dataset), k)
	}

	cc, err := kmeans.New().Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("k-means partition: %w", err)
	}
	if len(cc) != k {
		return nil, fmt.Errorf("%w: k-means produced %d clusters", ErrTooFewColors, len(cc))
	}

	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make(types.Palette, 0, k)
	for _, c := range cc {
		if len(c.Center) < 3 {
			return nil, fmt.Errorf("k-means cluster center has %d dimensions", len(c.Center))
		}
		out = append(out, types.ColorFrom(colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}))
	}
	return out, nil
}

// DominantQuantizer uses cenkalti/dominantcolor weighted colors.
type DominantQuantizer struct{}

func (DominantQuantizer) Name() string { return string(types.MethodDominant) }

func (DominantQuantizer) Quantize(img image.Image, k int) (types.Palette, error) {
	candidates := dominantcolor.FindWeight(img, k)
	if len(candidates) < k {
		return nil, fmt.Errorf("%w: found %d of %d", ErrTooFewColors, len(candidates), k)
	}
	slices.SortStableFunc(candidates, func(a, b dominantcolor.Color) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		}
		return 0
	})

	out := make(types.Palette, 0, k)
	for _, c := range candidates[:k] {
		out = append(out, types.Color{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B})
	}
	return out, nil
}

// ProminentQuantizer uses EdlinOrg/prominentcolor k-means on a downscaled
// copy of the image, without cropping or background masks.
type ProminentQuantizer struct{}

func (ProminentQuantizer) Name() string { return string(types.MethodProminent) }

func (ProminentQuantizer) Quantize(img image.Image, k int) (types.Palette, error) {
	items, err := prominentcolor.KmeansWithAll(k, img, prominentcolor.ArgumentNoCropping, prominentcolor.DefaultSize, nil)
	if err != nil {
		return nil, fmt.Errorf("prominentcolor: %w", err)
	}
	if len(items) < k {
		return nil, fmt.Errorf("%w: found %d of %d", ErrTooFewColors, len(items), k)
	}
	slices.SortStableFunc(items, func(a, b prominentcolor.ColorItem) int {
		return b.Cnt - a.Cnt
	})

	out := make(types.Palette, 0, k)
	for _, it := range items[:k] {
		out = append(out, types.Color{R: clamp8(it.Color.R), G: clamp8(it.Color.G), B: clamp8(it.Color.B)})
	}
	return out, nil
}

func clamp8(v uint32) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// fallbackQuantizer tries primary and, if it fails, secondary.
type fallbackQuantizer struct {
	primary   Quantizer
	secondary Quantizer
	log       logrus.FieldLogger
}

func (f fallbackQuantizer) Name() string { return f.primary.Name() }

func (f fallbackQuantizer) Quantize(img image.Image, k int) (types.Palette, error) {
	p, err := f.primary.Quantize(img, k)
	if err == nil {
		return p, nil
	}
	f.log.WithError(err).Warnf("palette: %s failed, falling back to %s", f.primary.Name(), f.secondary.Name())
	p, err2 := f.secondary.Quantize(img, k)
	if err2 != nil {
		return nil, fmt.Errorf("%s: %w; %s: %v", f.primary.Name(), err, f.secondary.Name(), err2)
	}
	return p, nil
}

// NewQuantizer returns the quantizer for method. The k-means quantizer falls
// back to dominantcolor when clustering fails.
func NewQuantizer(method types.PaletteMethod, log logrus.FieldLogger) (Quantizer, error) {
	switch method {
	case "", types.MethodKMeans:
		return fallbackQuantizer{primary: KMeansQuantizer{}, secondary: DominantQuantizer{}, log: log}, nil
	case types.MethodDominant:
		return DominantQuantizer{}, nil
	case types.MethodProminent:
		return ProminentQuantizer{}, nil
	default:
		return nil, fmt.Errorf("unknown palette method %q (want kmeans, dominant, or prominent)", method)
	}
}
