package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dalitz/internal/quad"
)

const (
	DefaultKind   = "ps2dpol"
	DefaultOrder  = 2
	DefaultPoints = 60

	MassPion = 0.13957039
	MassKaon = 0.493677
	MassB    = 5.27966
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Model      ModelConfig  `yaml:"model"`
	Dalitz     DalitzConfig `yaml:"dalitz"`
	Quadrature QuadConfig   `yaml:"quadrature"`
	Points     int          `yaml:"points"`
}

// PhaseSpaceConfig describes a PhaseSpaceNL factor: l particles out of n
// between the thresholds low and high.
type PhaseSpaceConfig struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
	L    int     `yaml:"l"`
	N    int     `yaml:"n"`
}

// ModelConfig selects one of the 2D models. Symmetric kinds use NX, XMin,
// XMax, PSX and Tau only. A zero box means the phase-space thresholds.
type ModelConfig struct {
	Kind string           `yaml:"kind"`
	NX   int              `yaml:"nx"`
	NY   int              `yaml:"ny"`
	XMin float64          `yaml:"xmin"`
	XMax float64          `yaml:"xmax"`
	YMin float64          `yaml:"ymin"`
	YMax float64          `yaml:"ymax"`
	PSX  PhaseSpaceConfig `yaml:"psx"`
	PSY  PhaseSpaceConfig `yaml:"psy"`
	MMax float64          `yaml:"mmax"`
	Tau  float64          `yaml:"tau"`
	TauX float64          `yaml:"taux"`
	TauY float64          `yaml:"tauy"`
	Pars []float64        `yaml:"pars,omitempty"`
}

type DalitzConfig struct {
	M  float64 `yaml:"m"`
	M1 float64 `yaml:"m1"`
	M2 float64 `yaml:"m2"`
	M3 float64 `yaml:"m3"`
}

type QuadConfig struct {
	AbsTol float64 `yaml:"abs_tol"`
	RelTol float64 `yaml:"rel_tol"`
	Limit  int     `yaml:"limit"`
	Order  int     `yaml:"order"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Kind: DefaultKind,
			NX:   DefaultOrder,
			NY:   DefaultOrder,
			PSX:  PhaseSpaceConfig{Low: 2 * MassPion, High: MassB - 2*MassKaon, L: 2, N: 4},
			PSY:  PhaseSpaceConfig{Low: 2 * MassKaon, High: MassB - 2*MassPion, L: 2, N: 4},
		},
		Dalitz: DalitzConfig{M: 1.5, M1: MassPion, M2: MassPion, M3: MassKaon},
		Quadrature: QuadConfig{
			AbsTol: quad.DefaultAbsTol,
			RelTol: quad.DefaultRelTol,
			Limit:  quad.DefaultLimit,
			Order:  quad.DefaultOrder,
		},
		Points: DefaultPoints,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the structural settings. Model specific checks happen
// when the model is built.
func (c *Config) Validate() error {
	m := c.Model
	if m.Kind == "" {
		return fmt.Errorf("%w: empty model kind", ErrInvalidConfig)
	}
	if m.NX < 0 || m.NY < 0 {
		return fmt.Errorf("%w: negative order (nx=%d ny=%d)", ErrInvalidConfig, m.NX, m.NY)
	}
	if (m.XMin != 0 || m.XMax != 0) && !(m.XMin < m.XMax) {
		return fmt.Errorf("%w: x range [%g, %g]", ErrInvalidConfig, m.XMin, m.XMax)
	}
	if (m.YMin != 0 || m.YMax != 0) && !(m.YMin < m.YMax) {
		return fmt.Errorf("%w: y range [%g, %g]", ErrInvalidConfig, m.YMin, m.YMax)
	}
	d := c.Dalitz
	if d.M < 0 || d.M1 < 0 || d.M2 < 0 || d.M3 < 0 {
		return fmt.Errorf("%w: negative mass", ErrInvalidConfig)
	}
	q := c.Quadrature
	if q.AbsTol < 0 || q.RelTol < 0 || (q.AbsTol == 0 && q.RelTol == 0) {
		return fmt.Errorf("%w: tolerance abs=%g rel=%g", ErrInvalidConfig, q.AbsTol, q.RelTol)
	}
	if c.Points < 2 {
		return fmt.Errorf("%w: points %d", ErrInvalidConfig, c.Points)
	}
	return nil
}

// QuadOptions turns the quadrature section into workspace options, followed
// by extra.
func (c *Config) QuadOptions(extra ...quad.Option) []quad.Option {
	q := c.Quadrature
	opts := []quad.Option{
		quad.WithTolerance(q.AbsTol, q.RelTol),
		quad.WithLimit(q.Limit),
		quad.WithOrder(q.Order),
	}
	return append(opts, extra...)
}
