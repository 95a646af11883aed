// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package palette downloads an image and reduces it to a small set of
// dominant colors. Decoding is done by the registered image decoders and
// quantization by the k-means, dominantcolor and prominentcolor libraries.
package palette

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"

	// Image formats accepted from the search results.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/palette-dots/internal/httputil"
	"github.com/pdiddy/palette-dots/pkg/types"
)

// Extractor turns an image reference into a palette.
type Extractor struct {
	Client    *http.Client
	Config    types.PaletteConfig
	Quantizer Quantizer
	Log       logrus.FieldLogger
}

// NewExtractor builds an extractor using the quantizer named by cfg.Method.
func NewExtractor(client *http.Client, cfg types.PaletteConfig, log logrus.FieldLogger) (*Extractor, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	q, err := NewQuantizer(cfg.Method, log)
	if err != nil {
		return nil, err
	}
	return &Extractor{Client: client, Config: cfg, Quantizer: q, Log: log}, nil
}

// Extract downloads ref and returns exactly count colors. A count of zero
// means types.DefaultColorCount. Download failures are RetrievalErrors;
// undecodable payloads and quantizer failures are DecodeErrors.
func (e *Extractor) Extract(ctx context.Context, ref types.ImageReference, count int) (types.Palette, error) {
	if count == 0 {
		count = types.DefaultColorCount
	}
	if count < 0 {
		return nil, fmt.Errorf("color count must be positive, got %d", count)
	}
	if ref == "" {
		return nil, fmt.Errorf("image reference is empty")
	}

	data, err := httputil.Get(ctx, e.Client, httputil.Request{
		URL:       string(ref),
		UserAgent: e.Config.UserAgent,
		Accept:    "image/*",
		MaxBytes:  e.Config.MaxBytes,
	})
	if err != nil {
		return nil, types.Retrieval("downloading image", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, types.Decode("decoding image", err)
	}
	e.Log.WithFields(logrus.Fields{
		"format": format,
		"bytes":  len(data),
		"size":   img.Bounds().Size().String(),
		"method": e.Quantizer.Name(),
	}).Debug("image decoded")

	return e.quantize(img, count)
}

func (e *Extractor) quantize(img image.Image, count int) (types.Palette, error) {
	p, err := e.Quantizer.Quantize(img, count)
	if err != nil {
		return nil, types.Decode("quantizing image", err)
	}
	if len(p) != count {
		return nil, types.Decode("quantizing image", fmt.Errorf("%w: got %d colors, want %d", ErrTooFewColors, len(p), count))
	}
	return p, nil
}
