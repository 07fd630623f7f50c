package renderer

import (
	"context"
	"time"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/geometry"
	"github.com/df07/go-sah-raytracer/pkg/integrator"
	"github.com/df07/go-sah-raytracer/pkg/log"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Hittable
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene      Scene
	config     SamplingConfig
	integrator integrator.Integrator
	logger     log.Logger
}

// NewRaytracer creates a new raytracer using path tracing against the sky
func NewRaytracer(scene Scene, config SamplingConfig) *Raytracer {
	return &Raytracer{
		scene:      scene,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(integrator.DefaultConfig()),
		logger:     log.New("renderer"),
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integrator integrator.Integrator) {
	rt.integrator = integrator
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// RenderRow renders camera row j into row, one sum of SamplesPerPixel
// samples per column. The caller owns the sampler.
func (rt *Raytracer) RenderRow(j int, row []core.Vec3, sampler core.Sampler) RowStats {
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()
	stats := RowStats{Row: j}

	// W-1 and H-1 denominators so the last column and top row reach u = v = 1
	uScale := 1.0 / float64(max(rt.config.Width-1, 1))
	vScale := 1.0 / float64(max(rt.config.Height-1, 1))

	for i := 0; i < rt.config.Width; i++ {
		colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}

		for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
			jitter := sampler.Get2D()
			u := (float64(i) + jitter.X) * uScale
			v := (float64(j) + jitter.Y) * vScale

			ray := camera.GetRay(u, v, sampler)
			colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, world, rt.config.MaxDepth, sampler))
		}

		row[i] = colorAccum
		stats.Samples += rt.config.SamplesPerPixel
		if colorAccum.IsNaN() {
			stats.NaNPixels++
		}
	}

	return stats
}

// Render renders the full image with a pool of row workers. Rows are
// seeded from Seed + j so the result does not depend on the worker count.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	img := NewImage(rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel)
	pool := NewWorkerPool(rt, img, rt.config.Workers())
	stats := RenderStats{
		Width:           rt.config.Width,
		Height:          rt.config.Height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
		Workers:         pool.GetNumWorkers(),
	}

	rt.logger.Infof("Rendering %dx%d at %d spp with %d workers", rt.config.Width, rt.config.Height,
		rt.config.SamplesPerPixel, pool.GetNumWorkers())

	startTime := time.Now()
	pool.Start()

	// Submit from the top scanline down like the classic driver
	go func() {
		defer pool.Close()
		for j := rt.config.Height - 1; j >= 0; j-- {
			if !pool.SubmitTask(ctx, RowTask{Row: j, Seed: rt.config.Seed + int64(j)}) {
				return
			}
		}
	}()

	completed := 0
	for result := range pool.Results() {
		completed++
		stats.Add(result.Stats)
		rt.logger.Debugf("Scanlines remaining: %d", rt.config.Height-completed)
	}

	stats.Duration = time.Since(startTime)
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	rt.logger.Noticef("Rendered %d rows in %v", completed, stats.Duration)
	return img, stats, nil
}
