package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/vegan-simulator/internal/sim"
)

type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server"`
	Simulation SimulationConfig `yaml:"simulation" json:"simulation"`
	Snapshots  SnapshotConfig   `yaml:"snapshots" json:"snapshots"`
	Presets    []Preset         `yaml:"presets" json:"presets"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr" json:"addr"`
	GinMode string `yaml:"gin_mode" json:"gin_mode"`
}

type SimulationConfig struct {
	MaxYear     int                `yaml:"max_year" json:"max_year"`
	Speed       float64            `yaml:"speed" json:"speed"`
	InitialDiet map[string]float64 `yaml:"initial_diet" json:"initial_diet,omitempty"`
}

type SnapshotConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

// Preset is a named diet mix the user can apply in one step.
type Preset struct {
	Name        string             `yaml:"name" json:"name"`
	Description string             `yaml:"description" json:"description"`
	Diet        map[string]float64 `yaml:"diet" json:"diet"`
}

func (p Preset) Distribution() (sim.DietDistribution, error) {
	values := make(map[sim.DietCategory]float64, len(p.Diet))
	for key, v := range p.Diet {
		c, err := sim.ParseDietCategory(key)
		if err != nil {
			return sim.DietDistribution{}, fmt.Errorf("preset %s: %w", p.Name, err)
		}
		values[c] = v
	}
	d, err := sim.NewDietDistribution(values)
	if err != nil {
		return sim.DietDistribution{}, fmt.Errorf("preset %s: %w", p.Name, err)
	}
	return d, nil
}

var ErrPresetNotFound = errors.New("preset not found")

func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func (s *ServerConfig) ApplyDefaults() {
	if s.Addr == "" {
		s.Addr = ":8080"
	}
	if s.GinMode == "" {
		s.GinMode = "release"
	}
}

func (s *SimulationConfig) ApplyDefaults() {
	if s.MaxYear == 0 {
		s.MaxYear = sim.MaxYear
	}
	if s.Speed == 0 {
		s.Speed = sim.DefaultSpeed
	}
}

func (s *SnapshotConfig) ApplyDefaults() {
	if s.Dir == "" {
		s.Dir = "snapshots"
	}
}

func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Simulation.ApplyDefaults()
	c.Snapshots.ApplyDefaults()
	if len(c.Presets) == 0 {
		c.Presets = BuiltInPresets()
	}
}

func (c *Config) Validate() error {
	if c.Simulation.MaxYear <= sim.StartYear {
		return fmt.Errorf("max_year must be after %d, got %d", sim.StartYear, c.Simulation.MaxYear)
	}
	if c.Simulation.Speed < sim.MinSpeed || c.Simulation.Speed > sim.MaxSpeed {
		return fmt.Errorf("speed must be between %.1f and %.1f, got %.2f", sim.MinSpeed, sim.MaxSpeed, c.Simulation.Speed)
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("gin_mode must be debug, release or test, got %q", c.Server.GinMode)
	}
	if len(c.Simulation.InitialDiet) > 0 {
		if _, err := c.InitialDiet(); err != nil {
			return err
		}
	}
	seen := map[string]bool{}
	for _, p := range c.Presets {
		name := normalisePresetName(p.Name)
		if name == "" {
			return fmt.Errorf("preset without a name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate preset: %s", p.Name)
		}
		seen[name] = true
		if _, err := p.Distribution(); err != nil {
			return err
		}
	}
	return nil
}

// InitialDiet returns the configured starting diet, or the built-in one.
func (c *Config) InitialDiet() (sim.DietDistribution, error) {
	if len(c.Simulation.InitialDiet) == 0 {
		return sim.InitialDiet(), nil
	}
	return Preset{Name: "initial_diet", Diet: c.Simulation.InitialDiet}.Distribution()
}

func (c *Config) Preset(name string) (Preset, error) {
	key := normalisePresetName(name)
	for _, p := range c.Presets {
		if normalisePresetName(p.Name) == key {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
}

func (c *Config) PresetNames() []string {
	out := make([]string, 0, len(c.Presets))
	for _, p := range c.Presets {
		out = append(out, p.Name)
	}
	sort.Strings(out)
	return out
}

// NewState builds a simulation session from the configuration.
func (c *Config) NewState() (*sim.State, error) {
	diet, err := c.InitialDiet()
	if err != nil {
		return nil, err
	}
	s := sim.NewState().WithMaxYear(c.Simulation.MaxYear)
	s.SetSpeed(c.Simulation.Speed)
	if err := s.ApplyDiet(diet); err != nil {
		return nil, err
	}
	if err := s.Restore([]sim.HistoryEntry{{Year: s.Year, Indicators: s.Indicators, Diet: diet}}); err != nil {
		return nil, err
	}
	return s, nil
}

func normalisePresetName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.ApplyDefaults()
	return &c, nil
}
