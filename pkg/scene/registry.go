package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownScene = errors.New("scene: unknown scene")

type builtin struct {
	description string
	build       func() *Scene
}

var builtins = map[string]builtin{
	"reference": {
		description: "Diffuse, glass and metal spheres on a yellow ground",
		build:       NewReferenceScene,
	},
	"empty": {
		description: "No primitives, only the background gradient",
		build:       NewEmptyScene,
	},
	"sphere-grid": {
		description: "10x10 grid of colored glass, metal and diffuse spheres",
		build:       func() *Scene { return NewSphereGridScene(10) },
	},
}

// ByName builds the built-in scene with the given name. Every call returns a
// fresh scene.
func ByName(name string) (*Scene, error) {
	b, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return b.build(), nil
}

// Names returns the sorted names of all built-in scenes
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns metadata for all built-in scenes, sorted by name
func Describe() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, name := range Names() {
		s := builtins[name].build()
		infos = append(infos, SceneInfo{
			ID:          name,
			Name:        titleCase(name),
			Description: builtins[name].description,
			Type:        "builtin",
			Primitives:  s.PrimitiveCount(),
		})
	}
	return infos
}
