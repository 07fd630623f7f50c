package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/df07/go-sah-raytracer/pkg/geometry"
	"github.com/df07/go-sah-raytracer/pkg/renderer"
	"github.com/df07/go-sah-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

// RenderScene renders a built-in scene and writes the image.
func RenderScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	split, err := geometry.ParseSplitStrategy(ctx.String("split"))
	if err != nil {
		return err
	}

	// Zero means "scene default" for every override except an explicit --seed
	var seed *int64
	if ctx.IsSet("seed") {
		value := ctx.Int64("seed")
		seed = &value
	}

	sc, err := createScene(ctx.String("scene"), split, renderer.SamplingConfig{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		NumWorkers:      ctx.Int("workers"),
	}, seed)
	if err != nil {
		return err
	}

	if ctx.Bool("stats") {
		logger.Noticef("BVH statistics\n%s", sc.BVH.Stats().Table())
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := renderer.NewRaytracer(sc, sc.SamplingConfig).Render(renderCtx)
	if err != nil {
		return err
	}
	if stats.NaNPixels > 0 {
		logger.Warningf("%d pixels produced NaN and were written as black", stats.NaNPixels)
	}
	if ctx.Bool("stats") {
		logger.Noticef("render statistics\n%s", stats.Table())
	}

	return writeImage(ctx.String("out"), img)
}

// createScene builds, configures and preprocesses the named scene. A nil
// seed keeps the scene's recommended seed.
func createScene(id string, split geometry.SplitStrategy, overrides renderer.SamplingConfig, seed *int64) (*scene.Scene, error) {
	sc, err := scene.NewScene(id)
	if err != nil {
		return nil, err
	}

	sc.Split = split
	sc.ApplySamplingConfig(overrides)
	if seed != nil {
		sc.SamplingConfig.Seed = *seed
	}
	if err := sc.SamplingConfig.Validate(); err != nil {
		return nil, err
	}
	if err := sc.Preprocess(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", id, err)
	}

	logger.Infof("Scene %q: %d objects, %dx%d, %d spp, depth %d", id, sc.GetPrimitiveCount(),
		sc.SamplingConfig.Width, sc.SamplingConfig.Height, sc.SamplingConfig.SamplesPerPixel, sc.SamplingConfig.MaxDepth)
	return sc, nil
}

// writeImage writes img to filename, or stdout for "-"
func writeImage(filename string, img *renderer.Image) error {
	if filename == "-" || filename == "" {
		return encodeImage(os.Stdout, filename, img)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	if err := encodeImage(file, filename, img); err != nil {
		return err
	}
	logger.Noticef("Render saved as %s", filename)
	return file.Close()
}

func encodeImage(w io.Writer, filename string, img *renderer.Image) error {
	if strings.EqualFold(filepath.Ext(filename), ".png") {
		return renderer.WritePNG(w, img)
	}
	return renderer.WritePPM(w, img)
}
