package geometry

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// HittableList is an ordered aggregate of objects tested linearly.
// Scenes use it as the top-level world, usually holding just the BVH root.
type HittableList []Hittable

// NewHittableList creates a list from the given objects
func NewHittableList(objects ...Hittable) HittableList {
	return HittableList(objects)
}

// Hit returns the nearest hit among all members
func (l HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, object := range l {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the union of all member boxes. An empty list, or a
// list with any unbounded member, has no box.
func (l HittableList) BoundingBox() (core.AABB, bool) {
	if len(l) == 0 {
		return core.AABB{}, false
	}

	box, ok := l[0].BoundingBox()
	if !ok {
		return core.AABB{}, false
	}
	for _, object := range l[1:] {
		objectBox, ok := object.BoundingBox()
		if !ok {
			return core.AABB{}, false
		}
		box = core.SurroundingBox(box, objectBox)
	}

	return box, true
}
