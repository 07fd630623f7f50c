package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sah-raytracer/pkg/geometry"
	"github.com/df07/go-sah-raytracer/pkg/log"
	"github.com/df07/go-sah-raytracer/pkg/renderer"
	"github.com/df07/go-sah-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		overrides renderer.SamplingConfig
		wantErr   error
	}{
		{"default scene", "default", renderer.SamplingConfig{}, nil},
		{"random scene", "random", renderer.SamplingConfig{Width: 60}, nil},
		{"sphere grid", "sphere-grid", renderer.SamplingConfig{}, nil},
		{"case insensitive", "Default", renderer.SamplingConfig{}, nil},

		// Invalid scenes
		{"unknown scene", "nonexistent", renderer.SamplingConfig{}, scene.ErrUnknownScene},
		{"empty scene name", "", renderer.SamplingConfig{}, scene.ErrUnknownScene},
		{"negative spp", "default", renderer.SamplingConfig{SamplesPerPixel: -1}, renderer.ErrInvalidSamplingConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := createScene(tt.sceneType, geometry.SplitMedian, tt.overrides, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sc.BVH == nil || len(sc.World) != 1 {
				t.Error("scene should be preprocessed into a length-1 world")
			}
		})
	}
}

func TestCreateSceneSeed(t *testing.T) {
	sc, err := createScene("default", geometry.SplitMedian, renderer.SamplingConfig{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defaultSeed := sc.SamplingConfig.Seed
	if defaultSeed == 0 {
		t.Fatal("default scene should recommend a non-zero seed")
	}

	for _, seed := range []int64{0, 17} {
		seed := seed
		sc, err := createScene("default", geometry.SplitMedian, renderer.SamplingConfig{}, &seed)
		if err != nil {
			t.Fatal(err)
		}
		if sc.SamplingConfig.Seed != seed {
			t.Errorf("expected seed %d, got %d", seed, sc.SamplingConfig.Seed)
		}
	}
}

func TestRenderCommandSeedZeroDiffersFromDefault(t *testing.T) {
	dir := t.TempDir()
	render := func(name string, args ...string) []byte {
		out := filepath.Join(dir, name)
		base := []string{"sah-raytracer", "render", "--width", "8", "--height", "4",
			"--spp", "1", "--depth", "3", "-o", out}
		if err := newApp().Run(append(base, args...)); err != nil {
			t.Fatalf("render failed: %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	if bytes.Equal(render("default.ppm"), render("zero.ppm", "--seed", "0")) {
		t.Error("--seed 0 should not fall back to the scene seed")
	}
}

func TestVerboseFlagsDoNotClashWithVersion(t *testing.T) {
	for _, args := range [][]string{
		{"sah-raytracer", "-v", "scenes"},
		{"sah-raytracer", "-vv", "scenes"},
		{"sah-raytracer", "scenes"},
	} {
		var buf bytes.Buffer
		app := newApp()
		app.Writer = &buf

		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("%v panicked: %v", args, r)
				}
			}()
			if err := app.Run(args); err != nil {
				t.Fatalf("%v failed: %v", args, err)
			}
		}()
		if !strings.Contains(buf.String(), "default") {
			t.Errorf("%v: expected the scene table, got %q", args, buf.String())
		}
	}
	log.SetLevel(log.Notice)

	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	if err := app.Run([]string{"sah-raytracer", "--version"}); err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(buf.String(), app.Version) {
		t.Errorf("expected version %q in output, got %q", app.Version, buf.String())
	}
}

func TestLogLevelFlag(t *testing.T) {
	defer log.SetLevel(log.Notice)

	tests := []struct {
		args     []string
		expected log.Level
		wantErr  bool
	}{
		{[]string{"sah-raytracer", "scenes"}, log.Notice, false},
		{[]string{"sah-raytracer", "-v", "scenes"}, log.Info, false},
		{[]string{"sah-raytracer", "-vv", "scenes"}, log.Debug, false},
		{[]string{"sah-raytracer", "-vv", "--log-level", "warning", "scenes"}, log.Warning, false},
		{[]string{"sah-raytracer", "--log-level", "chatty", "scenes"}, log.Notice, true},
	}

	for _, tt := range tests {
		log.SetLevel(log.Notice)
		app := newApp()
		app.Writer = &bytes.Buffer{}

		err := app.Run(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("%v: unexpected error state: %v", tt.args, err)
			continue
		}
		if log.CurrentLevel() != tt.expected {
			t.Errorf("%v: expected level %v, got %v", tt.args, tt.expected, log.CurrentLevel())
		}
	}
}

func TestRenderCommandWritesPPM(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames", "default.ppm")

	app := newApp()
	err := app.Run([]string{"sah-raytracer", "render",
		"--scene", "default", "--width", "8", "--height", "6", "--spp", "2", "--depth", "4",
		"--workers", "2", "--split", "sah", "-o", out})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "P3" || lines[1] != "8 6" || lines[2] != "255" {
		t.Fatalf("unexpected PPM header: %q", lines[:3])
	}
	if len(lines) != 3+8*6 {
		t.Errorf("expected %d pixel lines, got %d", 8*6, len(lines)-3)
	}
}

func TestRenderCommandIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	render := func(name, workers string) []byte {
		out := filepath.Join(dir, name)
		err := newApp().Run([]string{"sah-raytracer", "render", "--scene", "random",
			"--width", "12", "--spp", "1", "--depth", "3", "--seed", "9", "--workers", workers, "-o", out})
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	if !bytes.Equal(render("a.ppm", "1"), render("b.ppm", "4")) {
		t.Error("output should not depend on the worker count")
	}
}

func TestRenderCommandWritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	err := newApp().Run([]string{"sah-raytracer", "render", "--width", "4", "--height", "4",
		"--spp", "1", "--depth", "2", "-o", out})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	file, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("unexpected PNG bounds %v", b)
	}
}

func TestRenderCommandRejectsBadSplit(t *testing.T) {
	err := newApp().Run([]string{"sah-raytracer", "render", "--split", "octree", "-o", filepath.Join(t.TempDir(), "x.ppm")})
	if err == nil {
		t.Error("expected an error for an unknown split strategy")
	}
}

func TestScenesCommand(t *testing.T) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf

	if err := app.Run([]string{"sah-raytracer", "scenes"}); err != nil {
		t.Fatalf("scenes failed: %v", err)
	}
	for _, id := range []string{"default", "random", "sphere-grid"} {
		if !strings.Contains(buf.String(), id) {
			t.Errorf("scene list missing %q:\n%s", id, buf.String())
		}
	}
}
