package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/gumshoe/engine"
	"github.com/milk9111/gumshoe/entity"
	"github.com/milk9111/gumshoe/system"
	"gopkg.in/yaml.v3"
)

// LoadSpec decodes a YAML prefab into a zero T.
func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := decodeSpec(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// decodeSpec decodes onto out, so fields missing from the file keep the
// values out already holds.
func decodeSpec(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type PlayerSpec struct {
	Name   string              `yaml:"name"`
	Tuning entity.PlayerTuning `yaml:",inline"`
}

type EnemySpec struct {
	Name   string             `yaml:"name"`
	Tuning entity.EnemyTuning `yaml:",inline"`
}

// WorldSpec holds everything that is not specific to one actor.
type WorldSpec struct {
	Physics   entity.PhysicsTuning   `yaml:"physics"`
	Damage    entity.DamageTuning    `yaml:"damage"`
	Scheduler engine.SchedulerConfig `yaml:"scheduler"`
	Camera    system.CameraConfig    `yaml:"camera"`
	Traps     system.TrapConfig      `yaml:"traps"`
	Debug     DebugSpec              `yaml:"debug"`
}

// DebugSpec colors the host's debug renderer.
type DebugSpec struct {
	Background YAMLColor `yaml:"background"`
	Solid      YAMLColor `yaml:"solid"`
	Platform   YAMLColor `yaml:"platform"`
	Spike      YAMLColor `yaml:"spike"`
	Crumble    YAMLColor `yaml:"crumble"`
	Exit       YAMLColor `yaml:"exit"`
	Trigger    YAMLColor `yaml:"trigger"`
	Player     YAMLColor `yaml:"player"`
	Enemy      YAMLColor `yaml:"enemy"`
	Hitbox     YAMLColor `yaml:"hitbox"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec := &PlayerSpec{Tuning: entity.DefaultTuning().Player}
	if err := decodeSpec("player.yaml", spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// LoadEnemySpec reads patroller.yaml, caster.yaml or blocker.yaml.
func LoadEnemySpec(kind entity.Kind) (*EnemySpec, error) {
	spec := &EnemySpec{Tuning: *entity.DefaultTuning().Enemy(kind)}
	if err := decodeSpec(kind.String()+".yaml", spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func LoadWorldSpec() (*WorldSpec, error) {
	d := engine.DefaultConfig()
	spec := &WorldSpec{
		Physics:   d.Tuning.Physics,
		Damage:    d.Tuning.Damage,
		Scheduler: d.Scheduler,
		Camera:    d.Camera,
		Traps:     d.Traps,
	}
	if err := decodeSpec("world.yaml", spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// LoadConfig assembles an engine configuration from every spec. Values a
// file leaves out fall back to the built-in defaults.
func LoadConfig() (engine.Config, error) {
	world, err := LoadWorldSpec()
	if err != nil {
		return engine.Config{}, err
	}
	player, err := LoadPlayerSpec()
	if err != nil {
		return engine.Config{}, err
	}

	t := entity.DefaultTuning()
	t.Physics = world.Physics
	t.Damage = world.Damage
	t.Player = player.Tuning
	for _, k := range []entity.Kind{entity.KindPatroller, entity.KindCaster, entity.KindBlocker} {
		spec, err := LoadEnemySpec(k)
		if err != nil {
			return engine.Config{}, err
		}
		*t.Enemy(k) = spec.Tuning
	}

	return engine.Config{
		Scheduler: world.Scheduler,
		Camera:    world.Camera,
		Traps:     world.Traps,
		Tuning:    t,
	}, nil
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

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i*2 < len(s); i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// Or returns the color, or fallback when the spec left it empty.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
