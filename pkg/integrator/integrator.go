package integrator

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along ray from world,
	// following at most depth bounces
	RayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Vec3
}
