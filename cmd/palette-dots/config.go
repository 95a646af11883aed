package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/pdiddy/palette-dots/internal/httputil"
	"github.com/pdiddy/palette-dots/internal/locate"
	"github.com/pdiddy/palette-dots/internal/palette"
	"github.com/pdiddy/palette-dots/internal/render"
	"github.com/pdiddy/palette-dots/internal/secrets"
	"github.com/pdiddy/palette-dots/pkg/types"
)

const defaultTimeout = 60 * time.Second

func setDefaults(v *viper.Viper) {
	v.SetDefault("search.endpoint", locate.DefaultEndpoint)
	v.SetDefault("http.timeout", defaultTimeout)
	v.SetDefault("http.user_agent", "palette-dots/"+version)
	v.SetDefault("palette.count", types.DefaultColorCount)
	v.SetDefault("palette.method", string(types.MethodKMeans))
	v.SetDefault("palette.max_bytes", httputil.DefaultMaxBytes)
	v.SetDefault("render.repeats", render.DefaultRepeats)
	v.SetDefault("canvas.kind", string(types.CanvasPNG))
	v.SetDefault("canvas.size", render.DefaultSize)
}

// loadConfig assembles the stage configuration from v, taking the search
// API key from the secrets directory when the config leaves it empty.
func loadConfig(v *viper.Viper, s map[string]string) (types.Config, error) {
	httpCfg := types.HTTPConfig{
		Timeout:   v.GetDuration("http.timeout"),
		UserAgent: v.GetString("http.user_agent"),
	}
	if httpCfg.Timeout <= 0 {
		httpCfg.Timeout = defaultTimeout
	}

	cfg := types.Config{
		Search: types.SearchConfig{
			HTTPConfig: httpCfg,
			Endpoint:   v.GetString("search.endpoint"),
			APIKey:     secrets.Resolve(s, secrets.SearchAPIKey, v.GetString("search.api_key")),
		},
		Palette: types.PaletteConfig{
			HTTPConfig: httpCfg,
			Count:      v.GetInt("palette.count"),
			Method:     types.PaletteMethod(v.GetString("palette.method")),
			MaxBytes:   v.GetInt64("palette.max_bytes"),
		},
		Render: types.RenderConfig{
			Repeats: v.GetInt("render.repeats"),
			Seed:    v.GetUint64("render.seed"),
			Canvas:  types.CanvasKind(v.GetString("canvas.kind")),
			Output:  v.GetString("canvas.output"),
			Size:    v.GetInt("canvas.size"),
		},
	}

	if cfg.Search.APIKey == "" {
		return cfg, fmt.Errorf("no image search API key: set search.api_key, PALETTE_DOTS_SEARCH_API_KEY, or %s%s",
			secrets.DefaultDir, secrets.SearchAPIKey)
	}
	if cfg.Palette.Count < 0 {
		return cfg, fmt.Errorf("palette.count must be positive, got %d", cfg.Palette.Count)
	}
	if cfg.Render.Repeats < 0 {
		return cfg, fmt.Errorf("render.repeats must be positive, got %d", cfg.Render.Repeats)
	}
	return cfg, nil
}

// stages holds the collaborators one session iteration runs through.
type stages struct {
	locator   *locate.BingLocator
	extractor *palette.Extractor
	canvas    render.Canvas
}

func buildStages(cfg types.Config, log logrus.FieldLogger) (stages, error) {
	client := &http.Client{Timeout: cfg.Search.Timeout}

	extractor, err := palette.NewExtractor(client, cfg.Palette, log)
	if err != nil {
		return stages{}, err
	}
	canvas, err := render.NewCanvas(cfg.Render, log)
	if err != nil {
		return stages{}, err
	}
	return stages{
		locator:   locate.NewBingLocator(client, cfg.Search),
		extractor: extractor,
		canvas:    canvas,
	}, nil
}
