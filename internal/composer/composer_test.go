package composer_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sigsynth/internal/composer"
	"github.com/san-kum/sigsynth/internal/grid"
	"github.com/san-kum/sigsynth/internal/noise"
	"github.com/san-kum/sigsynth/internal/signal"
	"github.com/san-kum/sigsynth/internal/waveform"
)

func sum(comps []composer.Component, nt, nx int) signal.Field {
	total := signal.Zeros(nt, nx)
	for _, c := range comps {
		Expect(total.AddInPlace(c.Values())).To(Succeed())
	}
	return total
}

var _ = Describe("Composer", func() {
	var (
		g *grid.Grid
		c *composer.Composer
	)

	BeforeEach(func() {
		var err error
		g, err = grid.New(-5, 5, 11, 0, 4*math.Pi, 5)
		Expect(err).NotTo(HaveOccurred())
		c = composer.New(g)
	})

	It("starts with an all-zero total of the grid shape", func() {
		total := c.Total()
		rows, cols := total.Shape()
		Expect(rows).To(Equal(5))
		Expect(cols).To(Equal(11))
		Expect(total.Equal(signal.Zeros(5, 11), 0)).To(BeTrue())
		Expect(c.Components()).To(BeEmpty())
	})

	It("sums sech_cosine and exp_decay_cosine at the origin", func() {
		_, err := c.Add(waveform.New(waveform.SechCosine, waveform.Params{"a": 1, "omega": 1.3}))
		Expect(err).NotTo(HaveOccurred())
		_, err = c.Add(waveform.New(waveform.ExpDecayCosine, waveform.Params{"omega": 0.2}))
		Expect(err).NotTo(HaveOccurred())

		total := c.Total()
		rows, cols := total.Shape()
		Expect([]int{rows, cols}).To(Equal([]int{5, 11}))

		comps := c.Components()
		Expect(comps[0].At(0, 5)).To(BeNumerically("~", 1/math.Cosh(1.0), 1e-12))
		Expect(comps[1].At(0, 5)).To(BeNumerically("~", 1.0, 1e-12))
		Expect(total[0][5]).To(BeNumerically("~", 1.6481, 1e-4))
	})

	It("keeps the total equal to the sum of components in insertion order", func() {
		specs := []waveform.Spec{
			waveform.New(waveform.TravelingSine, waveform.Params{"k": 0.1, "omega": 0.5}),
			waveform.New(waveform.GaussianBumpNormalized, waveform.Params{"omega": 1.5}),
			waveform.New(waveform.LinearTrend, nil),
		}
		for _, s := range specs {
			_, err := c.Add(s)
			Expect(err).NotTo(HaveOccurred())
		}

		comps := c.Components()
		Expect(comps).To(HaveLen(3))
		for i, s := range specs {
			Expect(comps[i].Spec().Family).To(Equal(s.Family))
		}
		Expect(c.Total().Equal(sum(comps, 5, 11), 1e-12)).To(BeTrue())

		reversed := composer.New(g)
		for i := len(specs) - 1; i >= 0; i-- {
			_, err := reversed.Add(specs[i])
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(reversed.Total().Equal(c.Total(), 1e-12)).To(BeTrue())
	})

	It("returns the component array independently of the total", func() {
		comp, err := c.Add(waveform.New(waveform.GaussianPulseCosine, nil))
		Expect(err).NotTo(HaveOccurred())

		values := comp.Values()
		values[0][0] = 1e9
		total := c.Total()
		total[1][1] = 1e9

		Expect(c.Components()[0].At(0, 0)).NotTo(Equal(1e9))
		Expect(c.Total()[1][1]).NotTo(Equal(1e9))
	})

	It("rejects unknown families without touching state", func() {
		_, err := c.Add(waveform.New(waveform.ExpDecayCosine, nil))
		Expect(err).NotTo(HaveOccurred())
		before := c.Total()

		_, err = c.Add(waveform.New("sawtooth", nil))
		Expect(err).To(MatchError(signal.ErrUnknownFamily))
		Expect(c.Len()).To(Equal(1))
		Expect(c.Total().Equal(before, 0)).To(BeTrue())
	})

	It("rejects degenerate normalization without touching state", func() {
		_, err := c.Add(waveform.New(waveform.GaussianBumpNormalized, waveform.Params{"k": 1e6, "c": 0.5}))
		Expect(err).To(MatchError(signal.ErrDegenerateNormalization))
		Expect(c.Len()).To(BeZero())
		Expect(c.Total().IsFinite()).To(BeTrue())
	})

	Describe("groups", func() {
		It("adds the med group with labels and default frequencies", func() {
			comps, err := c.AddGroup("med")
			Expect(err).NotTo(HaveOccurred())
			Expect(comps).To(HaveLen(2))
			Expect(comps[0].Name()).To(Equal("f1med"))
			Expect(comps[1].Name()).To(Equal("f2med"))
			Expect(comps[1].Spec().Params["omega"]).To(Equal(0.8))
		})

		It("adds all six components for the all group", func() {
			comps, err := c.AddGroup("all")
			Expect(err).NotTo(HaveOccurred())
			names := make([]string, len(comps))
			for i, comp := range comps {
				names[i] = comp.Name()
			}
			Expect(names).To(Equal([]string{"f1slow", "f2slow", "f1med", "f2med", "f1fast", "f2fast"}))
			Expect(c.Total().Equal(sum(c.Components(), 5, 11), 1e-12)).To(BeTrue())
		})

		It("matches slow+med+fast added separately", func() {
			_, err := c.AddGroup("all")
			Expect(err).NotTo(HaveOccurred())

			split := composer.New(g)
			for _, name := range []string{"slow", "med", "fast"} {
				_, err := split.AddGroup(name)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(split.Total().Equal(c.Total(), 1e-12)).To(BeTrue())
		})

		It("honours custom frequencies", func() {
			legacy := composer.New(g, composer.WithOmegas(composer.LegacyOmegas()))
			comps, err := legacy.AddGroup("med")
			Expect(err).NotTo(HaveOccurred())
			Expect(comps[1].Spec().Params["omega"]).To(Equal(1.0))
		})

		It("fails on unknown groups", func() {
			_, err := c.AddGroup("glacial")
			Expect(err).To(MatchError(signal.ErrUnknownGroup))
			Expect(c.Len()).To(BeZero())
		})

		It("lists group names sorted", func() {
			Expect(composer.GroupNames()).To(Equal([]string{"all", "fast", "med", "slow"}))
		})
	})

	Describe("noise", func() {
		It("is reproducible with a seed", func() {
			_, err := c.AddGroup("slow")
			Expect(err).NotTo(HaveOccurred())
			other := composer.New(g)
			_, err = other.AddGroup("slow")
			Expect(err).NotTo(HaveOccurred())

			Expect(c.InjectNoise(0.25, noise.WithSeed(42))).To(Succeed())
			Expect(other.InjectNoise(0.25, noise.WithSeed(42))).To(Succeed())
			Expect(c.Total().Equal(other.Total(), 0)).To(BeTrue())
		})

		It("leaves components untouched", func() {
			_, err := c.AddGroup("fast")
			Expect(err).NotTo(HaveOccurred())
			clean := c.Total()
			Expect(c.InjectNoise(1, noise.WithSeed(1))).To(Succeed())
			Expect(c.Total().Equal(clean, 0)).To(BeFalse())
			Expect(sum(c.Components(), 5, 11).Equal(clean, 1e-12)).To(BeTrue())
		})

		It("rejects a negative std", func() {
			before := c.Total()
			Expect(c.InjectNoise(-1)).To(MatchError(signal.ErrInvalidParameter))
			Expect(c.Total().Equal(before, 0)).To(BeTrue())
		})
	})
})
