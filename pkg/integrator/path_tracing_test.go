package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/geometry"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// fixedMaterial scatters every ray upward with a constant attenuation, or
// absorbs it when absorb is set
type fixedMaterial struct {
	attenuation core.Vec3
	absorb      bool
	calls       int
}

func (m *fixedMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	m.calls++
	if m.absorb {
		return material.ScatterResult{}, false
	}
	return material.ScatterResult{
		Scattered:   core.NewRay(hit.Point, core.NewVec3(0, 1, 0)),
		Attenuation: m.attenuation,
	}, true
}

// floorWorld reports a hit for every downward ray and misses everything else
type floorWorld struct {
	mat  material.Material
	tMin float64
}

func (w *floorWorld) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	w.tMin = tMin
	if ray.Direction.Y >= 0 {
		return nil, false
	}
	return &material.HitRecord{
		Point:     ray.At(1),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1,
		FrontFace: true,
		Material:  w.mat,
	}, true
}

func (w *floorWorld) BoundingBox() (core.AABB, bool) {
	return core.AABB{}, false
}

func vecClose(a, b core.Vec3) bool {
	const eps = 1e-12
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestRayColorDepthZeroIsBlack(t *testing.T) {
	world := geometry.NewHittableList()
	sampler := core.NewSeededSampler(1)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	for _, depth := range []int{0, -1} {
		if got := RayColor(ray, world, depth, sampler); got != (core.Vec3{}) {
			t.Errorf("depth %d: expected black, got %v", depth, got)
		}
	}
}

func TestRayColorBackgroundGradient(t *testing.T) {
	world := geometry.NewHittableList()
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"horizon", core.NewVec3(0, 0, -1), core.NewVec3(0.75, 0.85, 1.0)},
		{"unnormalized", core.NewVec3(0, 0, -10), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			got := RayColor(ray, world, 5, sampler)
			if !vecClose(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRayColorBackgroundMatchesFormula(t *testing.T) {
	world := geometry.NewHittableList()
	sampler := core.NewSeededSampler(7)

	for i := 0; i < 100; i++ {
		dir := core.RandomInUnitSphere(sampler).Add(core.NewVec3(0, 0, -0.1))
		ray := core.NewRay(core.NewVec3(0, 0, 0), dir)

		tt := 0.5 * (dir.Normalize().Y + 1.0)
		expected := core.NewVec3(1, 1, 1).Multiply(1 - tt).Add(core.NewVec3(0.5, 0.7, 1.0).Multiply(tt))

		if got := RayColor(ray, world, 1, sampler); !vecClose(got, expected) {
			t.Fatalf("direction %v: expected %v, got %v", dir, expected, got)
		}
	}
}

func TestRayColorAbsorbedIsBlack(t *testing.T) {
	mat := &fixedMaterial{absorb: true}
	world := &floorWorld{mat: mat}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	got := RayColor(ray, world, 10, core.NewSeededSampler(1))
	if got != (core.Vec3{}) {
		t.Errorf("expected black for absorbed ray, got %v", got)
	}
	if mat.calls != 1 {
		t.Errorf("expected one scatter call, got %d", mat.calls)
	}
	if world.tMin != ShadowAcneEpsilon {
		t.Errorf("expected tMin %v, got %v", ShadowAcneEpsilon, world.tMin)
	}
}

func TestRayColorMultipliesAttenuation(t *testing.T) {
	mat := &fixedMaterial{attenuation: core.NewVec3(0.5, 0.25, 1.0)}
	world := &floorWorld{mat: mat}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// One bounce off the floor then straight up into the sky
	got := RayColor(ray, world, 2, core.NewSeededSampler(1))
	expected := core.NewVec3(0.5*0.5, 0.25*0.7, 1.0*1.0)
	if !vecClose(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	// Depth 1 runs out of bounces after the first scatter
	got = RayColor(ray, world, 1, core.NewSeededSampler(1))
	if got != (core.Vec3{}) {
		t.Errorf("expected black when depth is exhausted, got %v", got)
	}
}

func TestRayColorCustomConfig(t *testing.T) {
	integrator := NewPathTracingIntegrator(Config{
		TMin:        0.01,
		TopColor:    core.NewVec3(0, 0, 1),
		BottomColor: core.NewVec3(1, 0, 0),
	})
	world := geometry.NewHittableList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	got := integrator.RayColor(ray, world, 3, core.NewSeededSampler(1))
	if !vecClose(got, core.NewVec3(0.5, 0, 0.5)) {
		t.Errorf("expected (0.5, 0, 0.5), got %v", got)
	}
}

func TestRayColorGlassSphereStaysInRange(t *testing.T) {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)
	sampler := core.NewSeededSampler(3)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for i := 0; i < 200; i++ {
		c := RayColor(ray, world, 50, sampler)
		for _, v := range []float64{c.X, c.Y, c.Z} {
			if math.IsNaN(v) || v < 0 || v > 1 {
				t.Fatalf("color component out of range: %v", c)
			}
		}
	}
}
