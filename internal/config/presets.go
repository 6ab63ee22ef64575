package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]map[string]*Config{
	"ps2dpol": {
		"pipi-kk": {
			Model: ModelConfig{
				Kind: "ps2dpol", NX: 2, NY: 2,
				PSX: PhaseSpaceConfig{Low: 2 * MassPion, High: MassB - 2*MassKaon, L: 2, N: 4},
				PSY: PhaseSpaceConfig{Low: 2 * MassKaon, High: MassB - 2*MassPion, L: 2, N: 4},
			},
		},
		"flat": {
			Model: ModelConfig{
				Kind: "ps2dpol", NX: 0, NY: 0,
				PSX: PhaseSpaceConfig{Low: 0.28, High: 1.2, L: 2, N: 3},
				PSY: PhaseSpaceConfig{Low: 0.28, High: 1.2, L: 2, N: 3},
			},
		},
	},
	"ps2dpolsym": {
		"pi0pi0": {
			Model: ModelConfig{
				Kind: "ps2dpolsym", NX: 3,
				PSX: PhaseSpaceConfig{Low: 2 * 0.1349768, High: 2.5, L: 2, N: 4},
			},
		},
	},
	"ps2dpol2": {
		"b-to-pipikk": {
			Model: ModelConfig{
				Kind: "ps2dpol2", NX: 2, NY: 2, MMax: MassB,
				PSX: PhaseSpaceConfig{Low: 2 * MassPion, High: MassB - 2*MassKaon, L: 2, N: 4},
				PSY: PhaseSpaceConfig{Low: 2 * MassKaon, High: MassB - 2*MassPion, L: 2, N: 4},
			},
		},
	},
	"ps2dpol2sym": {
		"b-to-4pi": {
			Model: ModelConfig{
				Kind: "ps2dpol2sym", NX: 2, MMax: MassB,
				PSX: PhaseSpaceConfig{Low: 2 * MassPion, High: MassB - 2*MassPion, L: 2, N: 4},
			},
		},
	},
	"ps2dpol3": {
		"b-to-pipikk": {
			Model: ModelConfig{
				Kind: "ps2dpol3", NX: 2, NY: 3, MMax: MassB,
				PSX: PhaseSpaceConfig{Low: 2 * MassPion, High: MassB - 2*MassKaon, L: 2, N: 4},
				PSY: PhaseSpaceConfig{Low: 2 * MassKaon, High: MassB - 2*MassPion, L: 2, N: 4},
			},
		},
	},
	"ps2dpol3sym": {
		"b-to-4pi": {
			Model: ModelConfig{
				Kind: "ps2dpol3sym", NX: 3, MMax: MassB,
				PSX: PhaseSpaceConfig{Low: 2 * MassPion, High: MassB - 2*MassPion, L: 2, N: 4},
			},
		},
	},
	"expops2dpol": {
		"combinatorial": {
			Model: ModelConfig{
				Kind: "expops2dpol", NX: 2, NY: 2, XMin: 5.0, XMax: 5.6, Tau: -2.5,
				PSY: PhaseSpaceConfig{Low: 2 * MassKaon, High: 1.2, L: 2, N: 3},
			},
		},
	},
	"expo2dpol": {
		"background": {
			Model: ModelConfig{
				Kind: "expo2dpol", NX: 1, NY: 1,
				XMin: 0, XMax: 5, YMin: 0, YMax: 3, TauX: -1.2, TauY: -0.4,
			},
		},
	},
	"expo2dpolsym": {
		"background": {
			Model: ModelConfig{Kind: "expo2dpolsym", NX: 2, XMin: 0, XMax: 4, Tau: -0.8},
		},
	},
}

// GetPreset returns a full configuration: defaults overlaid with the preset's
// model section. It returns nil for unknown names.
func GetPreset(kind, preset string) *Config {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	p, ok := kindPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Model = p.Model
	cfg.Model.Pars = append([]float64(nil), p.Model.Pars...)
	return cfg
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kinds lists the model kinds that have presets.
func Kinds() []string {
	kinds := make([]string, 0, len(Presets))
	for k := range Presets {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Resolve picks the configuration for kind. A config file replaces the
// preset; without either the first preset of kind is used, so that every
// kind gets a model section that fits it. An empty kind keeps the defaults.
func Resolve(kind, preset, path string) (*Config, error) {
	cfg := DefaultConfig()
	switch {
	case preset != "":
		cfg = GetPreset(kind, preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %q for kind %q (available: %v)", ErrUnknownPreset, preset, kind, ListPresets(kind))
		}
	case path == "" && kind != "":
		if names := ListPresets(kind); len(names) > 0 {
			cfg = GetPreset(kind, names[0])
		}
	}

	if path != "" {
		fileCfg, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}
	if kind != "" {
		cfg.Model.Kind = kind
	}
	return cfg, nil
}
