package scene

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/geometry"
	"github.com/df07/go-sah-raytracer/pkg/material"
	"github.com/df07/go-sah-raytracer/pkg/renderer"
)

// RandomSceneSeed seeds the placement and materials of the random scene
const RandomSceneSeed = 2020

// NewRandomScene creates the classic cover scene: a 23x23 grid of small
// random spheres around three large ones, on a huge ground sphere
func NewRandomScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   3.0 / 2.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	samplingConfig := renderer.SamplingConfig{
		Width:           1200,
		Height:          800,
		SamplesPerPixel: 500,
		MaxDepth:        50,
		Seed:            42,
	}

	s := newScene(defaultCameraConfig, samplingConfig, cameraOverrides)
	s.BuildSeed = RandomSceneSeed
	s.Add(randomSpheres(core.NewSeededSampler(RandomSceneSeed))...)
	return s
}

func randomSpheres(sampler core.Sampler) []geometry.Hittable {
	groundMaterial := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, groundMaterial),
	}

	for a := -11; a <= 11; a++ {
		for b := -11; b <= 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+core.RandomRange(sampler, 0, 0.9),
				0.2,
				float64(b)+core.RandomRange(sampler, 0, 0.9),
			)

			var sphereMaterial material.Material
			switch {
			case chooseMat < 0.8:
				// Diffuse
				albedo := core.RandomColor(sampler, 0, 1).MultiplyVec(core.RandomColor(sampler, 0, 1))
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				// Metal
				albedo := core.RandomColor(sampler, 0.4, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				// Glass
				sphereMaterial = material.NewDielectric(1.5)
			}

			objects = append(objects, geometry.NewSphere(center, 0.2, sphereMaterial))
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return objects
}
