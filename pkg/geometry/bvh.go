package geometry

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// SplitStrategy selects where a node is partitioned once the SAH has chosen an axis
type SplitStrategy int

const (
	// SplitMedian partitions the axis-sorted objects at the median index.
	// The SAH cost only picks the axis. This is the default.
	SplitMedian SplitStrategy = iota
	// SplitSAH partitions at the minimum-cost position found on the chosen axis
	SplitSAH
)

// String returns the strategy name used on the command line
func (s SplitStrategy) String() string {
	switch s {
	case SplitMedian:
		return "median"
	case SplitSAH:
		return "sah"
	default:
		return fmt.Sprintf("SplitStrategy(%d)", int(s))
	}
}

// ParseSplitStrategy converts a command line name into a SplitStrategy
func ParseSplitStrategy(name string) (SplitStrategy, error) {
	switch name {
	case "", "median":
		return SplitMedian, nil
	case "sah":
		return SplitSAH, nil
	default:
		return SplitMedian, fmt.Errorf("unknown split strategy %q (expected median or sah)", name)
	}
}

// BVHNode is a node of a binary Bounding Volume Hierarchy. Children are
// either other nodes or scene objects; a node built from a single object
// references it as both children. The box is fixed at construction.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	Box   core.AABB
}

// bvhItem caches an object's bounding box during construction
type bvhItem struct {
	object Hittable
	box    core.AABB
}

// splitCandidate is the result of the SAH axis search
type splitCandidate struct {
	axis     int
	position int     // first index of the right-hand side
	cost     float64 // SAH cost at position
	sorted   []bvhItem
}

// NewBVH builds a BVH over objects using SAH axis selection and median splits.
// The sampler picks the ordering axis for two-object nodes.
//
// NewBVH panics if objects is empty or any object lacks a finite bounding box;
// callers validate scene data first.
func NewBVH(objects []Hittable, sampler core.Sampler) *BVHNode {
	return NewBVHWithStrategy(objects, sampler, SplitMedian)
}

// NewBVHWithStrategy builds a BVH using the given split strategy
func NewBVHWithStrategy(objects []Hittable, sampler core.Sampler, strategy SplitStrategy) *BVHNode {
	if len(objects) == 0 {
		panic("geometry: cannot build BVH from an empty object list")
	}

	// Work on a copy so the caller's slice order is untouched
	items := make([]bvhItem, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox()
		if !ok || !box.IsFinite() {
			panic(fmt.Sprintf("geometry: object %d (%T) has no finite bounding box", i, object))
		}
		items[i] = bvhItem{object: object, box: box}
	}

	return buildBVH(items, sampler, strategy)
}

func buildBVH(items []bvhItem, sampler core.Sampler, strategy SplitStrategy) *BVHNode {
	var left, right Hittable

	switch len(items) {
	case 1:
		left, right = items[0].object, items[0].object
	case 2:
		axis := randomAxis(sampler)
		a, b := items[0], items[1]
		if b.box.Min.Axis(axis) < a.box.Min.Axis(axis) {
			a, b = b, a
		}
		left, right = a.object, b.object
	default:
		split := findBestSplit(items)
		mid := len(split.sorted) / 2
		if strategy == SplitSAH {
			mid = split.position
		}
		left = buildBVH(split.sorted[:mid], sampler, strategy)
		right = buildBVH(split.sorted[mid:], sampler, strategy)
	}

	leftBox, okLeft := left.BoundingBox()
	rightBox, okRight := right.BoundingBox()
	if !okLeft || !okRight {
		panic("geometry: BVH node children must have bounding boxes")
	}

	return &BVHNode{
		Left:  left,
		Right: right,
		Box:   core.SurroundingBox(leftBox, rightBox),
	}
}

// findBestSplit evaluates every split position on every axis and returns
// the cheapest one together with the objects sorted along its axis.
// Ties keep the earliest axis and position.
func findBestSplit(items []bvhItem) splitCandidate {
	n := len(items)
	best := splitCandidate{axis: -1, cost: math.Inf(1)}

	// Suffix boxes are reused across axes
	rightBoxes := make([]core.AABB, n)

	for axis := 0; axis < 3; axis++ {
		sorted := make([]bvhItem, n)
		copy(sorted, items)
		sortItemsByAxis(sorted, axis)

		rightBoxes[n-1] = sorted[n-1].box
		for i := n - 2; i >= 0; i-- {
			rightBoxes[i] = core.SurroundingBox(sorted[i].box, rightBoxes[i+1])
		}

		totalArea := rightBoxes[0].SurfaceArea()
		leftBox := sorted[0].box
		for i := 1; i < n; i++ {
			cost := sahCost(leftBox, rightBoxes[i], i, n-i, totalArea)
			if cost < best.cost || best.axis == -1 {
				best = splitCandidate{axis: axis, position: i, cost: cost, sorted: sorted}
			}
			leftBox = core.SurroundingBox(leftBox, sorted[i].box)
		}
	}

	return best
}

// sahCost weights each side's object count by its surface area relative to
// the parent box. The classic builder divides by the sum of the two child
// areas instead; that form can rank a split with overlapping children below a
// clean one, so the parent area is used here.
func sahCost(leftBox, rightBox core.AABB, leftCount, rightCount int, totalArea float64) float64 {
	leftArea := leftBox.SurfaceArea()
	rightArea := rightBox.SurfaceArea()
	if totalArea <= 0 {
		// Degenerate boxes: every split is equally good
		return float64(leftCount + rightCount)
	}
	return (float64(leftCount)*leftArea + float64(rightCount)*rightArea) / totalArea
}

// sortItemsByAxis orders items by their bounding box minimum along axis
func sortItemsByAxis(items []bvhItem, axis int) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].box.Min.Axis(axis) < items[j].box.Min.Axis(axis)
	})
}

// randomAxis draws an axis in {0, 1, 2}; a nil sampler always yields X
func randomAxis(sampler core.Sampler) int {
	if sampler == nil {
		return 0
	}
	return min(int(sampler.Get1D()*3), 2)
}

// Hit tests the ray against the node's subtree and returns the nearest hit
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax)

	// Anything on the right must be nearer than the left hit
	rightMax := tMax
	if hitLeft {
		rightMax = leftHit.T
	}
	rightHit, hitRight := n.Right.Hit(ray, tMin, rightMax)

	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the box computed at construction
func (n *BVHNode) BoundingBox() (core.AABB, bool) {
	return n.Box, true
}
