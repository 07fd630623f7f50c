package integrator

import (
	"math"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum ray parameter accepted for a hit, which
// keeps scattered rays from re-hitting the surface they leave
const ShadowAcneEpsilon = 0.001

// Config contains the integrator settings
type Config struct {
	TMin        float64   // Minimum accepted hit distance
	TopColor    core.Vec3 // Sky color straight up
	BottomColor core.Vec3 // Sky color straight down
}

// DefaultConfig returns the white to sky blue gradient and shadow acne epsilon
func DefaultConfig() Config {
	return Config{
		TMin:        ShadowAcneEpsilon,
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// PathTracingIntegrator implements recursive unidirectional path tracing
// lit only by the background gradient
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// RayColor computes the color for a single ray. Recursion depth never
// exceeds depth; depth <= 0 returns black.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, pt.config.TMin, math.Inf(1))
	if !isHit {
		return pt.BackgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, world, depth-1, sampler))
}

// BackgroundGradient returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return pt.config.BottomColor.Multiply(1.0 - t).Add(pt.config.TopColor.Multiply(t))
}

var defaultIntegrator = NewPathTracingIntegrator(DefaultConfig())

// RayColor traces ray through world with the default configuration
func RayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Vec3 {
	return defaultIntegrator.RayColor(ray, world, depth, sampler)
}
