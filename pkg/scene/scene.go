package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/geometry"
	"github.com/df07/go-sah-raytracer/pkg/log"
	"github.com/df07/go-sah-raytracer/pkg/material"
	"github.com/df07/go-sah-raytracer/pkg/renderer"
)

var (
	ErrEmptyScene             = errors.New("scene has no objects")
	ErrInvalidRadius          = errors.New("sphere radius must be positive")
	ErrInvalidRefractionIndex = errors.New("refraction index must be positive")
	ErrUnboundedObject        = errors.New("object has no finite bounding box")
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Objects        []geometry.Hittable     // Objects in the scene
	SamplingConfig renderer.SamplingConfig // Recommended render settings
	Split          geometry.SplitStrategy  // BVH partition strategy
	BuildSeed      int64                   // Seed for BVH construction choices

	BVH   *geometry.BVHNode     // Acceleration structure, set by Preprocess
	World geometry.HittableList // Top level list holding the BVH, set by Preprocess
}

// Validate checks every object for parameters the core does not guard against
func (s *Scene) Validate() error {
	if len(s.Objects) == 0 {
		return ErrEmptyScene
	}
	for i, obj := range s.Objects {
		if err := validateObject(obj); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}
	return nil
}

func validateObject(obj geometry.Hittable) error {
	if sphere, ok := obj.(*geometry.Sphere); ok {
		if !(sphere.Radius > 0) || math.IsInf(sphere.Radius, 0) {
			return fmt.Errorf("%w: got %v", ErrInvalidRadius, sphere.Radius)
		}
		if err := validateMaterial(sphere.Material); err != nil {
			return err
		}
	}

	box, ok := obj.BoundingBox()
	if !ok || !box.IsFinite() {
		return ErrUnboundedObject
	}
	return nil
}

func validateMaterial(mat material.Material) error {
	if dielectric, ok := mat.(*material.Dielectric); ok {
		if !(dielectric.RefractiveIndex > 0) {
			return fmt.Errorf("%w: got %v", ErrInvalidRefractionIndex, dielectric.RefractiveIndex)
		}
	}
	return nil
}

// Preprocess validates the scene and builds the BVH. The world is a
// length-1 list holding the BVH root.
func (s *Scene) Preprocess() error {
	if err := s.Validate(); err != nil {
		return err
	}

	s.BVH = geometry.NewBVHWithStrategy(s.Objects, core.NewSeededSampler(s.BuildSeed), s.Split)
	s.World = geometry.NewHittableList(s.BVH)
	if s.Camera == nil {
		s.Camera = renderer.NewCamera(s.CameraConfig)
	}

	logger.Infof("Built %s BVH over %d objects", s.Split, len(s.Objects))
	return nil
}

// ApplySamplingConfig merges non-zero overrides into the sampling config.
// Overriding one image dimension derives the other from the camera aspect
// ratio; overriding both changes the aspect ratio.
func (s *Scene) ApplySamplingConfig(override renderer.SamplingConfig) {
	merged := renderer.MergeSamplingConfig(s.SamplingConfig, override)
	aspect := s.CameraConfig.AspectRatio

	switch {
	case override.Width > 0 && override.Height > 0:
		s.CameraConfig.AspectRatio = float64(override.Width) / float64(override.Height)
		s.Camera = renderer.NewCamera(s.CameraConfig)
	case override.Width > 0 && aspect > 0:
		merged.Height = max(1, int(math.Round(float64(override.Width)/aspect)))
	case override.Height > 0 && aspect > 0:
		merged.Width = max(1, int(math.Round(float64(override.Height)*aspect)))
	}

	s.SamplingConfig = merged
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld returns the preprocessed world
func (s *Scene) GetWorld() geometry.Hittable {
	return s.World
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

// newScene builds a scene around the given camera, applying overrides
func newScene(defaultCamera renderer.CameraConfig, sampling renderer.SamplingConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	cameraConfig := defaultCamera
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCamera, cameraOverrides[0])
	}

	return &Scene{
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Objects:        make([]geometry.Hittable, 0),
		SamplingConfig: sampling,
		Split:          geometry.SplitMedian,
	}
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}
