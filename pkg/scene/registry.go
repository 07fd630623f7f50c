package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-sah-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned by NewScene for an unregistered id
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Name used on the command line
	DisplayName string // Human readable name
	Description string
}

type sceneEntry struct {
	info  SceneInfo
	build func(cameraOverrides ...renderer.CameraConfig) *Scene
}

var builtinScenes = map[string]sceneEntry{}

func register(id, description string, build func(cameraOverrides ...renderer.CameraConfig) *Scene) {
	builtinScenes[id] = sceneEntry{
		info:  SceneInfo{ID: id, DisplayName: titleCase(id), Description: description},
		build: build,
	}
}

func init() {
	register("default", "Four spheres, one of each material, on a ground sphere", NewDefaultScene)
	register("random", "23x23 grid of random spheres around three large ones", NewRandomScene)
	register("sphere-grid", "20x20 grid of colored metal spheres", func(cameraOverrides ...renderer.CameraConfig) *Scene {
		return NewSphereGridScene(20, cameraOverrides...)
	})
}

// ListScenes returns the built-in scenes sorted by id
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, entry := range builtinScenes {
		scenes = append(scenes, entry.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// NewScene creates the built-in scene with the given id
func NewScene(id string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	entry, ok := builtinScenes[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return entry.build(cameraOverrides...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
