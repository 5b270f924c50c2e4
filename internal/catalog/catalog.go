package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/object"
)

// Definition is the YAML description of a placeable object type
// (e.g. assets/catalog/cube.yaml). Size is the default world scale.
// When Points is empty, connection points are generated from the bounding
// geometry (one per box face, outward normals).
type Definition struct {
	Type    string     `yaml:"type"`
	Size    [3]float32 `yaml:"size,omitempty"`
	Opening string     `yaml:"opening,omitempty"`
	Points  []PointDef `yaml:"points,omitempty"`
}

// PointDef is one authored connection point in local space.
type PointDef struct {
	Position [3]float32 `yaml:"position"`
	Normal   [3]float32 `yaml:"normal"`
	Tags     []string   `yaml:"tags,omitempty"`
}

// Catalog maps object type names to their definitions.
type Catalog struct {
	defs map[string]Definition
}

// Default returns the built-in catalog: plain furniture boxes plus the
// wall-mounted opening types.
func Default() *Catalog {
	c := &Catalog{defs: make(map[string]Definition)}
	for _, def := range []Definition{
		{Type: "cube", Size: [3]float32{1, 1, 1}},
		{Type: "table", Size: [3]float32{1.2, 0.75, 0.8}},
		{Type: "door", Size: [3]float32{0.9, 2, 0.1}, Opening: "door"},
		{Type: "window", Size: [3]float32{1.2, 1.2, 0.1}, Opening: "window"},
		{Type: "round-window", Size: [3]float32{0.8, 0.8, 0.1}, Opening: "round-window"},
	} {
		c.defs[def.Type] = def
	}
	return c
}

// Load reads *.yaml definitions from dir on top of the built-in defaults.
// A missing directory is not an error; an unparseable file is.
func Load(dir string) (*Catalog, error) {
	c := Default()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var def Definition
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
		}
		if def.Type == "" {
			return nil, fmt.Errorf("catalog: %s has no type", path)
		}
		c.defs[def.Type] = def
	}
	return c, nil
}

// Lookup returns the definition for an object type.
func (c *Catalog) Lookup(objType string) (Definition, bool) {
	def, ok := c.defs[objType]
	return def, ok
}

// Types returns the known type names, unordered.
func (c *Catalog) Types() []string {
	out := make([]string, 0, len(c.defs))
	for name := range c.defs {
		out = append(out, name)
	}
	return out
}

// Instantiate builds an object of the given type at position. Connection
// points come from the definition, or are generated from the bounding
// geometry when the definition has none. Unknown types error.
func (c *Catalog) Instantiate(objType string, position rl.Vector3) (*object.Object, error) {
	def, ok := c.defs[objType]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown object type %q", objType)
	}

	size := def.Size
	for i, s := range size {
		if s <= 0 {
			size[i] = 1
		}
	}
	obj := object.New(def.Type, position, rl.NewVector3(size[0], size[1], size[2]))
	obj.Name = def.Type

	if def.Opening != "" {
		kind, err := object.ParseOpeningKind(def.Opening)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", def.Type, err)
		}
		obj.Opening = kind
	}

	if len(def.Points) > 0 {
		for _, p := range def.Points {
			obj.Points = append(obj.Points, object.ConnectionPoint{
				Position: rl.NewVector3(p.Position[0], p.Position[1], p.Position[2]),
				Normal:   rl.NewVector3(p.Normal[0], p.Normal[1], p.Normal[2]),
				Tags:     p.Tags,
			})
		}
	} else {
		obj.Points = FacePoints()
	}
	return obj, nil
}

// FacePoints generates the default connection points for a box: the six
// face centers of the unit cube with outward normals. Scaling to the
// object's size happens in the world transform, so the local positions
// stay at half-unit offsets.
func FacePoints() []object.ConnectionPoint {
	return []object.ConnectionPoint{
		{Position: rl.NewVector3(0.5, 0, 0), Normal: rl.NewVector3(1, 0, 0)},
		{Position: rl.NewVector3(-0.5, 0, 0), Normal: rl.NewVector3(-1, 0, 0)},
		{Position: rl.NewVector3(0, 0.5, 0), Normal: rl.NewVector3(0, 1, 0)},
		{Position: rl.NewVector3(0, -0.5, 0), Normal: rl.NewVector3(0, -1, 0)},
		{Position: rl.NewVector3(0, 0, 0.5), Normal: rl.NewVector3(0, 0, 1)},
		{Position: rl.NewVector3(0, 0, -0.5), Normal: rl.NewVector3(0, 0, -1)},
	}
}
