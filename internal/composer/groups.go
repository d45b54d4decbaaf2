package composer

import (
	"sort"

	"github.com/san-kum/sigsynth/internal/waveform"
)

// Omegas are the temporal frequencies of the six preset components.
type Omegas struct {
	F1Slow float64 `yaml:"f1slow" json:"f1slow"`
	F2Slow float64 `yaml:"f2slow" json:"f2slow"`
	F1Med  float64 `yaml:"f1med" json:"f1med"`
	F2Med  float64 `yaml:"f2med" json:"f2med"`
	F1Fast float64 `yaml:"f1fast" json:"f1fast"`
	F2Fast float64 `yaml:"f2fast" json:"f2fast"`
}

// DefaultOmegas follows the functional generator, where f2med runs at 0.8.
func DefaultOmegas() Omegas {
	return Omegas{F1Slow: 0.3, F2Slow: 0.2, F1Med: 1.3, F2Med: 0.8, F1Fast: 5.3, F2Fast: 6.0}
}

// LegacyOmegas follows the class-based generator, where f2med runs at 1.0.
func LegacyOmegas() Omegas {
	o := DefaultOmegas()
	o.F2Med = 1.0
	return o
}

// Group is an ordered bundle of specs added together.
type Group []waveform.Spec

// Groups builds the slow, med, fast and all bundles for the given frequencies.
func Groups(o Omegas) map[string]Group {
	slow := Group{
		waveform.New(waveform.CosineBand, waveform.Params{"omega": o.F1Slow}).WithLabel("f1slow"),
		waveform.New(waveform.ExpDecayCosine, waveform.Params{"omega": o.F2Slow}).WithLabel("f2slow"),
	}
	med := Group{
		waveform.New(waveform.SechCosine, waveform.Params{"a": 1, "omega": o.F1Med}).WithLabel("f1med"),
		waveform.New(waveform.SechTanhSine, waveform.Params{"omega": o.F2Med}).WithLabel("f2med"),
	}
	fast := Group{
		waveform.New(waveform.GaussianPulseCosine, waveform.Params{"omega": o.F1Fast}).WithLabel("f1fast"),
		waveform.New(waveform.QuadraticGaussianCosinePhase, waveform.Params{"omega": o.F2Fast}).WithLabel("f2fast"),
	}
	all := make(Group, 0, len(slow)+len(med)+len(fast))
	all = append(all, slow...)
	all = append(all, med...)
	all = append(all, fast...)

	return map[string]Group{
		"slow": slow,
		"med":  med,
		"fast": fast,
		"all":  all,
	}
}

func GroupNames() []string {
	groups := Groups(DefaultOmegas())
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
