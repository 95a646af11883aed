// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the palette-dots CLI. Running the
// binary without a subcommand starts the interactive session; extract runs a
// single non-interactive iteration.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/palette-dots/internal/console"
	"github.com/pdiddy/palette-dots/internal/render"
	"github.com/pdiddy/palette-dots/internal/secrets"
	"github.com/pdiddy/palette-dots/internal/session"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// log is the diagnostics logger; user-facing output goes to stdout.
var log = logrus.New()

// rootCmd runs the interactive palette session.
var rootCmd = &cobra.Command{
	Use:   "palette-dots",
	Short: "Draw the dominant colors of a searched image as random dots",
	Long: `palette-dots asks for a character and where they're from, finds an image of
them through an image search API, extracts the image's dominant colors and
draws them as randomly placed dots on a black canvas.

The canvas is written to a PNG or SVG file after every drawing. Answer 'y' to
draw another palette on the same canvas, or 'n' to clear it and stop.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		configureLogging(verbose)

		s, err := secrets.Load(secrets.DefaultDir, log)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.WithField("keys", keys).Debug("loaded secrets")
		}
		return nil
	},
	RunE: runSession,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./palette-dots.yaml or ~/.config/palette-dots/palette-dots.yaml)")
	pf.Bool("verbose", false, "log diagnostics at debug level")
	pf.Int("count", 0, "number of palette colors (default 5)")
	pf.String("method", "", "quantizer: kmeans, dominant, or prominent (default kmeans)")
	pf.Int("repeats", 0, "dots drawn per color (default 20)")
	pf.Uint64("seed", 0, "seed for dot placement (default random)")
	pf.String("canvas", "", "canvas backend: png, svg, or none (default png)")
	pf.String("output", "", "file the canvas is written to (default palette.png or palette.svg)")
	pf.Int("size", 0, "canvas side length in pixels (default 500)")

	for key, flag := range map[string]string{
		"palette.count":  "count",
		"palette.method": "method",
		"render.repeats": "repeats",
		"render.seed":    "seed",
		"canvas.kind":    "canvas",
		"canvas.output":  "output",
		"canvas.size":    "size",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: could not load .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("palette-dots")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "palette-dots"))
		}
	}

	viper.SetEnvPrefix("PALETTE_DOTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func configureLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}
	st, err := buildStages(cfg, log)
	if err != nil {
		return err
	}

	loop := &session.Loop{
		Locator:   st.locator,
		Extractor: st.extractor,
		Renderer:  render.New(st.canvas, render.Options{Rand: render.NewRand(cfg.Render.Seed)}),
		Console:   console.NewStd(),
		Log:       log,
		Count:     cfg.Palette.Count,
		Repeats:   cfg.Render.Repeats,
	}
	return loop.Run(cmd.Context())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
