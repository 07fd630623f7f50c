package geometry

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays.
// Implementations are read-only after construction and safe for concurrent use.
type Hittable interface {
	// Hit returns the nearest intersection with t in [tMin, tMax]
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)

	// BoundingBox returns the object's bounds, or false if it has none
	BoundingBox() (core.AABB, bool)
}
