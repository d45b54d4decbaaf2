package experiment_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sigsynth/internal/config"
	"github.com/san-kum/sigsynth/internal/experiment"
	"github.com/san-kum/sigsynth/internal/signal"
	"github.com/san-kum/sigsynth/internal/waveform"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Grid = config.GridConfig{Convention: config.ConventionBounds, NX: 11, NT: 20, XMin: -5, XMax: 5, TMin: 0, TMax: 4 * math.Pi}
	cfg.Groups = []string{"slow"}
	cfg.Components = []waveform.Spec{waveform.New(waveform.LinearTrend, nil)}
	cfg.Noise = config.NoiseConfig{Enabled: true, Std: 0.1}
	return cfg
}

var _ = Describe("Experiment", func() {
	ctx := context.Background()

	It("runs groups then components in order", func() {
		res, err := experiment.New(smallConfig()).Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		names := make([]string, len(res.Components))
		for i, c := range res.Components {
			names[i] = c.Name()
		}
		Expect(names).To(Equal([]string{"f1slow", "f2slow", "linear_trend"}))
		rows, cols := res.Total.Shape()
		Expect([]int{rows, cols}).To(Equal([]int{20, 11}))
		Expect(res.Noisy).To(BeTrue())
		Expect(res.Time).To(HaveLen(20))
	})

	It("replays a run from its recorded seed", func() {
		first, err := experiment.New(smallConfig()).Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		cfg := smallConfig()
		cfg.Noise.Seed = &first.Seed
		second, err := experiment.New(cfg).Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Seed).To(Equal(first.Seed))
		Expect(second.Total.Equal(first.Total, 0)).To(BeTrue())
	})

	It("skips noise when disabled", func() {
		cfg := smallConfig()
		cfg.Noise.Enabled = false
		res, err := experiment.New(cfg).Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Noisy).To(BeFalse())

		clean := signal.Zeros(20, 11)
		for _, c := range res.Components {
			Expect(clean.AddInPlace(c.Values())).To(Succeed())
		}
		Expect(res.Total.Equal(clean, 1e-12)).To(BeTrue())
	})

	It("samples by stride and limit", func() {
		cfg := smallConfig()
		limit := 10
		cfg.Sample = config.SampleConfig{Stride: 2, Limit: &limit}
		res, err := experiment.New(cfg).Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Sampled).To(HaveLen(5))
		full := res.Grid.Time()
		Expect(res.Time).To(Equal([]float64{full[0], full[2], full[4], full[6], full[8]}))
		Expect(res.Sampled[1]).To(Equal(res.Total[2]))
	})

	It("reports the failing component", func() {
		cfg := smallConfig()
		cfg.Components = append(cfg.Components,
			waveform.New(waveform.GaussianBumpNormalized, waveform.Params{"k": 1e6, "c": 0.5}))
		_, err := experiment.New(cfg).Run(ctx)
		Expect(err).To(MatchError(signal.ErrDegenerateNormalization))

		var compErr *signal.ComponentError
		Expect(errors.As(err, &compErr)).To(BeTrue())
		Expect(compErr.Index).To(Equal(1))
	})

	It("rejects invalid configuration up front", func() {
		cfg := smallConfig()
		cfg.Groups = []string{"glacial"}
		_, err := experiment.New(cfg).Run(ctx)
		Expect(err).To(MatchError(signal.ErrUnknownGroup))
	})

	It("stops on a canceled context", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := experiment.New(smallConfig()).Run(canceled)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("does not share the caller's configuration", func() {
		cfg := smallConfig()
		exp := experiment.New(cfg)
		cfg.Groups[0] = "glacial"
		Expect(exp.Config().Groups).To(Equal([]string{"slow"}))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs isolated seeded copies", func() {
		results, err := experiment.NewEnsemble(smallConfig(), 4, 100).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))
		for i, res := range results {
			Expect(res.Seed).To(Equal(int64(100 + i)))
		}
		Expect(results[0].Total.Equal(results[1].Total, 0)).To(BeFalse())

		again, err := experiment.NewEnsemble(smallConfig(), 4, 100).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		for i := range again {
			Expect(again[i].Total.Equal(results[i].Total, 0)).To(BeTrue())
		}
	})

	It("fails when any run fails", func() {
		cfg := smallConfig()
		cfg.Components = []waveform.Spec{waveform.New(waveform.SechCosine, waveform.Params{"a": math.Inf(1)})}
		_, err := experiment.NewEnsemble(cfg, 3, 1).Run(context.Background())
		Expect(err).To(MatchError(signal.ErrInvalidParameter))
	})

	DescribeTable("rejects run counts below one",
		func(runs int) {
			results, err := experiment.NewEnsemble(smallConfig(), runs, 1).Run(context.Background())
			Expect(err).To(MatchError(signal.ErrInvalidParameter))
			Expect(results).To(BeNil())
		},
		Entry("zero", 0),
		Entry("negative", -3),
	)
})
