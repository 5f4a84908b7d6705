package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes filename over spec. Keys missing from the file keep
// whatever spec already holds.
func LoadSpecInto(filename string, spec any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type WorldSpec struct {
	Name          string  `yaml:"name"`
	Gravity       float64 `yaml:"gravity"`
	Scale         float64 `yaml:"scale"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	TimeUnit      float64 `yaml:"time_unit"`
	TimeScale     float64 `yaml:"time_scale"`
	Substep       float64 `yaml:"substep"`
	MaxSubsteps   int     `yaml:"max_substeps"`
	Iterations    int     `yaml:"iterations"`
	ViewSmoothing float64 `yaml:"view_smoothing"`
}

type WallSpec struct {
	Name       string     `yaml:"name"`
	BlockSize  float64    `yaml:"block_size"`
	Elasticity float64    `yaml:"elasticity"`
	Friction   float64    `yaml:"friction"`
	Chamfer    float64    `yaml:"chamfer"`
	Color      *YAMLColor `yaml:"color"`
}

type BallSpec struct {
	Name       string     `yaml:"name"`
	Radius     float64    `yaml:"radius"`
	Mass       float64    `yaml:"mass"`
	Elasticity float64    `yaml:"elasticity"`
	Friction   float64    `yaml:"friction"`
	Color      *YAMLColor `yaml:"color"`
}

// BoundarySpec places the escape sensor frame. Both values are multiples
// of the escape radius.
type BoundarySpec struct {
	Name      string  `yaml:"name"`
	Distance  float64 `yaml:"distance"`
	Thickness float64 `yaml:"thickness"`
}

type MusicSpec struct {
	Name       string    `yaml:"name"`
	Volume     float64   `yaml:"volume"`
	BPM        float64   `yaml:"bpm"`
	SampleRate int       `yaml:"sample_rate"`
	Notes      []float64 `yaml:"notes"`
	Bass       []float64 `yaml:"bass"`
}

type ConfettiSpec struct {
	Name     string      `yaml:"name"`
	Count    int         `yaml:"count"`
	Gravity  float64     `yaml:"gravity"`
	MinSpeed float64     `yaml:"min_speed"`
	MaxSpeed float64     `yaml:"max_speed"`
	Size     float64     `yaml:"size"`
	Colors   []YAMLColor `yaml:"colors"`
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
