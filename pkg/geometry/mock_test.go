package geometry

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// MockShape for testing
type MockShape struct {
	boundingBox core.AABB
	unbounded   bool
	hitFn       func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

func (m *MockShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if m.hitFn == nil {
		return nil, false
	}
	return m.hitFn(ray, tMin, tMax)
}

func (m *MockShape) BoundingBox() (core.AABB, bool) {
	return m.boundingBox, !m.unbounded
}

// makeHitFn returns a hit function that reports tValue when it lies in the interval
func makeHitFn(tValue float64) func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
		if tValue >= tMin && tValue <= tMax {
			return &material.HitRecord{T: tValue}, true
		}
		return nil, false
	}
}

func unitBoxAt(x, y, z float64) core.AABB {
	return core.NewAABB(core.NewVec3(x, y, z), core.NewVec3(x+1, y+1, z+1))
}
