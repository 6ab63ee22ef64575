package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/dalitz/internal/config"
	"github.com/san-kum/dalitz/internal/models"
	"github.com/san-kum/dalitz/internal/phasespace"
	"github.com/san-kum/dalitz/internal/quad"
)

var ErrUnknownKind = errors.New("registry: unknown model kind")

// Builder turns a model section into a model.
type Builder func(mc config.ModelConfig, opts ...quad.Option) (models.Model, error)

type Registry struct {
	builders map[string]Builder
}

func New() *Registry {
	r := &Registry{builders: make(map[string]Builder)}

	r.Register("ps2dpol", func(mc config.ModelConfig, opts ...quad.Option) (models.Model, error) {
		psx, psy, err := phaseSpaces(mc)
		if err != nil {
			return nil, err
		}
		return models.NewPS2DPol(psx, psy, mc.NX, mc.NY, box(mc, psx, psy), opts...)
	})
	r.Register("ps2dpolsym", func(mc config.ModelConfig, opts ...quad.Option) (models.Model, error) {
		ps, err := phaseSpace(mc.PSX)
		if err != nil {
			return nil, err
		}
		return models.NewPS2DPolSym(ps, mc.NX, mc.XMin, mc.XMax, opts...)
	})
	r.Register("ps2dpol2", func(mc config.ModelConfig, opts ...quad.Option) (models.Model, error) {
		psx, psy, err := phaseSpaces(mc)
		if err != nil {
			return nil, err
		}
		return models.NewPS2DPol2(psx, psy, mc.MMax, mc.NX, mc.NY, box(mc, psx, psy), opts...)
	})
	r.Register("ps2dpol2sym", func(mc config.ModelConfig, opts ...quad.Option) (models.Model, error) {
		ps, err := phaseSpace(mc.PSX)
		if err != nil {
			return nil, err
		}
		return models.NewPS2DPol2Sym(ps, mc.MMax, mc.NX, mc.XMin, mc.XMax, opts...)
	})
	r.Register("ps2dpol3", func(mc config.ModelConfig, opts ...quad.Option) (models.Model, error) {
		psx, psy, err := phaseSpaces(mc)
		if err != nil {
			return nil, err
		}
		return models.NewPS2DPol3FromOrders(psx, psy, mc.MMax, mc.NX, mc.NY, box(mc, psx, psy), opts...)
	})
	r.Register("ps2dpol3sym", func(mc config.ModelConfig, opts ...quad.Option) (models.Model, error) {
		ps, err := phaseSpace(mc.PSX)
		if err != nil {
			return nil, err
		}
		return models.NewPS2DPol3SymFromOrder(ps, mc.MMax, mc.NX, mc.XMin, mc.XMax, opts...)
	})
	r.Register("expops2dpol", func(mc config.ModelConfig, opts ...quad.Option) (models.Model, error) {
		psy, err := phaseSpace(mc.PSY)
		if err != nil {
			return nil, err
		}
		return models.NewExpoPS2DPol(psy, mc.XMin, mc.XMax, mc.NX, mc.NY, mc.YMin, mc.YMax, mc.Tau, opts...)
	})
	r.Register("expo2dpol", func(mc config.ModelConfig, _ ...quad.Option) (models.Model, error) {
		return models.NewExpo2DPol(mc.XMin, mc.XMax, mc.YMin, mc.YMax, mc.NX, mc.NY, mc.TauX, mc.TauY)
	})
	r.Register("expo2dpolsym", func(mc config.ModelConfig, _ ...quad.Option) (models.Model, error) {
		return models.NewExpo2DPolSym(mc.XMin, mc.XMax, mc.NX, mc.Tau)
	})

	return r
}

// Register adds or replaces a builder.
func (r *Registry) Register(kind string, b Builder) {
	r.builders[kind] = b
}

func (r *Registry) Kinds() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetModel builds the model described by mc and applies its parameters.
func (r *Registry) GetModel(mc config.ModelConfig, opts ...quad.Option) (models.Model, error) {
	fn, ok := r.builders[mc.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, mc.Kind)
	}
	m, err := fn(mc, opts...)
	if err != nil {
		return nil, err
	}
	if len(mc.Pars) > m.NPars() {
		return nil, fmt.Errorf("%w: %d parameters given, model has %d", models.ErrInvalidParameter, len(mc.Pars), m.NPars())
	}
	for k, v := range mc.Pars {
		if err := m.SetPar(k, v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Build validates cfg and builds its model with the configured quadrature.
// extra options, such as a logger, are applied after the configured ones.
func (r *Registry) Build(cfg *config.Config, extra ...quad.Option) (models.Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return r.GetModel(cfg.Model, cfg.QuadOptions(extra...)...)
}

func phaseSpace(c config.PhaseSpaceConfig) (phasespace.PhaseSpaceNL, error) {
	ps, err := phasespace.NewPhaseSpaceNL(c.Low, c.High, c.L, c.N)
	if err != nil {
		return ps, fmt.Errorf("%w: %w", models.ErrInvalidConfig, err)
	}
	return ps, nil
}

func phaseSpaces(mc config.ModelConfig) (psx, psy phasespace.PhaseSpaceNL, err error) {
	if psx, err = phaseSpace(mc.PSX); err != nil {
		return
	}
	psy, err = phaseSpace(mc.PSY)
	return
}

// box fills an unset axis range with the phase-space thresholds.
func box(mc config.ModelConfig, psx, psy phasespace.PhaseSpaceNL) models.Box {
	b := models.Box{XMin: mc.XMin, XMax: mc.XMax, YMin: mc.YMin, YMax: mc.YMax}
	if b.XMin == 0 && b.XMax == 0 {
		b.XMin, b.XMax = psx.LowEdge(), psx.HighEdge()
	}
	if b.YMin == 0 && b.YMax == 0 {
		b.YMin, b.YMax = psy.LowEdge(), psy.HighEdge()
	}
	return b
}
