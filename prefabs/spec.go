package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EntityBuildSpec is one archetype: a name plus raw component specs keyed by
// component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

var (
	cacheMu sync.Mutex
	cache   = make(map[string]EntityBuildSpec)
)

// LoadEntityBuildSpec parses a prefab once and serves it from cache until
// Invalidate is called for it.
func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	key := cleanPrefabPath(filename)
	cacheMu.Lock()
	spec, ok := cache[key]
	cacheMu.Unlock()
	if ok {
		return spec, nil
	}

	spec, err := LoadSpec[EntityBuildSpec](key)
	if err != nil {
		return EntityBuildSpec{}, err
	}
	cacheMu.Lock()
	cache[key] = spec
	cacheMu.Unlock()
	return spec, nil
}

// Invalidate drops a cached prefab. An empty name drops everything.
func Invalidate(filename string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if filename == "" {
		clear(cache)
		return
	}
	delete(cache, cleanPrefabPath(filename))
}

// MergeComponents overlays per-instance overrides on a prefab's components.
// Component specs that are both maps merge field by field; anything else is
// replaced. Neither input is modified.
func MergeComponents(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		baseFields, okBase := out[k].(map[string]any)
		overFields, okOver := v.(map[string]any)
		if !okBase || !okOver {
			out[k] = v
			continue
		}
		merged := make(map[string]any, len(baseFields)+len(overFields))
		for fk, fv := range baseFields {
			merged[fk] = fv
		}
		for fk, fv := range overFields {
			merged[fk] = fv
		}
		out[k] = merged
	}
	return out
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type KindComponentSpec struct {
	Kind string `yaml:"kind"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type VelocityComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PhysicsBodyComponentSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Static        bool    `yaml:"static"`
	Kinematic     bool    `yaml:"kinematic"`
	Sensor        bool    `yaml:"sensor"`
	FixedRotation bool    `yaml:"fixed_rotation"`
}

type GravityScaleComponentSpec struct {
	Scale float64 `yaml:"scale"`
}

type PlayerComponentSpec struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	BulletSpeed  float64 `yaml:"bullet_speed"`
	BulletOffset float64 `yaml:"bullet_offset"`
	BulletTTL    int     `yaml:"bullet_ttl"`
}

type StatsComponentSpec struct {
	Health    int  `yaml:"health"`
	Armor     int  `yaml:"armor"`
	HasWeapon bool `yaml:"has_weapon"`
}

type EnemyComponentSpec struct {
	Health int `yaml:"health"`
}

type PickupComponentSpec struct {
	Amount int `yaml:"amount"`
}

type DoorwayComponentSpec struct {
	Terminal bool `yaml:"terminal"`
}

type BulletComponentSpec struct {
	Damage int `yaml:"damage"`
}

type PatrolComponentSpec struct {
	Speed float64 `yaml:"speed"`
	Left  float64 `yaml:"left"`
	Right float64 `yaml:"right"`
}

type OscillateComponentSpec struct {
	Speed  float64 `yaml:"speed"`
	Upper  float64 `yaml:"upper"`
	Lower  float64 `yaml:"lower"`
	Strict bool    `yaml:"strict"`
}

type SpeedComponentSpec struct {
	Speed float64 `yaml:"speed"`
}

type PlatformPathComponentSpec struct {
	Axis    string  `yaml:"axis"` // "x" or "y"
	Speed   float64 `yaml:"speed"`
	Forward float64 `yaml:"forward"`
	Back    float64 `yaml:"back"`
}

type FacingComponentSpec struct {
	Left bool `yaml:"left"`
}

type TTLComponentSpec struct {
	Frames int `yaml:"frames"`
}

type AudioComponentSpec struct {
	Spawn   string `yaml:"spawn"`
	Destroy string `yaml:"destroy"`
}

type RenderComponentSpec struct {
	Color *YAMLColor `yaml:"color"`
	Layer int        `yaml:"layer"`
	Label string     `yaml:"label"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
