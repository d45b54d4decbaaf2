package config

import (
	"sort"

	"github.com/san-kum/sigsynth/internal/waveform"
)

func int64Ptr(v int64) *int64 { return &v }

func groupPreset(groups ...string) *Config {
	cfg := DefaultConfig()
	cfg.Groups = groups
	return cfg
}

var Presets = map[string]*Config{
	"make_signal": DefaultConfig(),
	"slow":        groupPreset("slow"),
	"med":         groupPreset("med"),
	"fast":        groupPreset("fast"),
	"generator_class": {
		Grid: GridConfig{
			Convention: ConventionSymmetric, NX: 200, NT: 400, HalfWidth: 5, TimeScale: 4,
		},
		Groups: []string{"all"},
		Omegas: OmegaConfig{Legacy: true},
		Noise:  NoiseConfig{Enabled: true, Std: 0.25},
		Sample: SampleConfig{Stride: 1},
	},
	"sinusoids": {
		Grid: GridConfig{
			Convention: ConventionBounds, NX: 100, NT: 500, XMin: -5, XMax: 5, TMin: 0, TMax: 50,
		},
		Components: []waveform.Spec{
			waveform.New(waveform.TravelingSineNormalized, waveform.Params{"k": 0.1, "omega": 0.5}),
			waveform.New(waveform.GaussianBumpNormalized, waveform.Params{"omega": 1.5}),
		},
		Noise:  NoiseConfig{Enabled: true, Std: 0.1, Seed: int64Ptr(42)},
		Sample: SampleConfig{Stride: 1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
