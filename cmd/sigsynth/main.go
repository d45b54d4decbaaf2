package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/sigsynth/internal/composer"
	"github.com/san-kum/sigsynth/internal/config"
	"github.com/san-kum/sigsynth/internal/experiment"
	"github.com/san-kum/sigsynth/internal/export"
	"github.com/san-kum/sigsynth/internal/waveform"
)

var (
	configFile string
	preset     string
	verbose    bool
	// Grid
	nx        int
	nt        int
	halfWidth float64
	timeScale float64
	xMin      float64
	xMax      float64
	tMin      float64
	tMax      float64
	// Composition
	groups     []string
	components []string
	// Noise
	noiseStd float64
	noNoise  bool
	seed     int64
	// Sampling
	stride int
	limit  int
	// Output
	format         string
	withComponents bool
	// Ensemble
	runs      int
	seedStart int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "sigsynth",
		Short:        "spatio-temporal test signal synthesizer",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "compose a signal and write it to stdout",
		RunE:  generate,
	}
	addRunFlags(generateCmd)
	generateCmd.Flags().StringVar(&format, "format", "summary", "output format: summary, json or csv")
	generateCmd.Flags().BoolVar(&withComponents, "with-components", false, "include component arrays in json output")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run independently seeded copies of one configuration",
		RunE:  runEnsemble,
	}
	addRunFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 4, "number of runs")
	ensembleCmd.Flags().Int64Var(&seedStart, "seed-start", 0, "seed of the first run")

	familiesCmd := &cobra.Command{
		Use:   "families",
		Short: "list waveform families",
		RunE:  listFamilies,
	}

	groupsCmd := &cobra.Command{
		Use:   "groups",
		Short: "list preset groups",
		RunE:  listGroups,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list run presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(generateCmd, ensembleCmd, familiesCmd, groupsCmd, presetsCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "start from a named preset")
	f.IntVar(&nx, "nx", config.DefaultNX, "spatial points")
	f.IntVar(&nt, "nt", config.DefaultNT, "temporal points")
	f.Float64Var(&halfWidth, "half-width", config.DefaultHalfWidth, "L of the symmetric grid, x in [-L, L]")
	f.Float64Var(&timeScale, "time-scale", config.DefaultTimeScale, "T of the symmetric grid, t in [0, T*pi]")
	f.Float64Var(&xMin, "x-min", 0, "lower space bound (switches to explicit bounds)")
	f.Float64Var(&xMax, "x-max", 0, "upper space bound (switches to explicit bounds)")
	f.Float64Var(&tMin, "t-min", 0, "lower time bound (switches to explicit bounds)")
	f.Float64Var(&tMax, "t-max", 0, "upper time bound (switches to explicit bounds)")
	f.StringSliceVar(&groups, "group", nil, "groups to add (slow, med, fast, all, or none)")
	f.StringArrayVar(&components, "component", nil, "extra component, family:name=value,...")
	f.Float64Var(&noiseStd, "noise-std", config.DefaultNoiseStd, "gaussian noise standard deviation")
	f.BoolVar(&noNoise, "no-noise", false, "skip noise injection")
	f.Int64Var(&seed, "seed", 0, "noise seed (random when unset)")
	f.IntVar(&stride, "stride", 1, "keep every stride-th time step")
	f.IntVar(&limit, "limit", -1, "keep only the first limit time steps before striding (-1 keeps all)")
}

// resolveConfig layers preset, config file and changed flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("nx") {
		cfg.Grid.NX = nx
	}
	if flags.Changed("nt") {
		cfg.Grid.NT = nt
	}
	if flags.Changed("half-width") || flags.Changed("time-scale") {
		cfg.Grid.AsSymmetric()
	}
	if flags.Changed("half-width") {
		cfg.Grid.HalfWidth = halfWidth
	}
	if flags.Changed("time-scale") {
		cfg.Grid.TimeScale = timeScale
	}
	if flags.Changed("x-min") || flags.Changed("x-max") || flags.Changed("t-min") || flags.Changed("t-max") {
		cfg.Grid.AsBounds()
	}
	if flags.Changed("x-min") {
		cfg.Grid.XMin = xMin
	}
	if flags.Changed("x-max") {
		cfg.Grid.XMax = xMax
	}
	if flags.Changed("t-min") {
		cfg.Grid.TMin = tMin
	}
	if flags.Changed("t-max") {
		cfg.Grid.TMax = tMax
	}
	if flags.Changed("group") {
		cfg.Groups = nil
		for _, g := range groups {
			if g != "none" {
				cfg.Groups = append(cfg.Groups, g)
			}
		}
	}
	for _, text := range components {
		spec, err := waveform.ParseSpec(text)
		if err != nil {
			return nil, err
		}
		cfg.Components = append(cfg.Components, spec)
	}
	if flags.Changed("noise-std") {
		cfg.Noise.Enabled, cfg.Noise.Std = true, noiseStd
	}
	if noNoise {
		cfg.Noise.Enabled = false
	}
	if flags.Changed("seed") {
		cfg.Noise.Seed = &seed
	}
	if flags.Changed("stride") {
		cfg.Sample.Stride = stride
	}
	if flags.Changed("limit") && limit >= 0 {
		cfg.Sample.Limit = &limit
	}

	return cfg, cfg.Validate()
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func generate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := experiment.New(cfg, experiment.WithLogger(newLogger())).Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	switch format {
	case "json":
		return export.WriteJSON(os.Stdout, res, withComponents)
	case "csv":
		return export.WriteCSV(os.Stdout, res)
	case "summary":
		return printSummary(res, elapsed)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printSummary(res *experiment.Result, elapsed time.Duration) error {
	nt, nx := res.Grid.Shape()
	xLo, xHi, tLo, tHi := res.Grid.Bounds()
	fmt.Printf("grid: %d x %d, x in [%.3f, %.3f], t in [%.3f, %.3f]\n", nt, nx, xLo, xHi, tLo, tHi)
	fmt.Printf("completed in %v\n\n", elapsed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tLABEL\tFAMILY\tPARAMS\tRMS")
	for i, c := range res.Components {
		spec := c.Spec()
		params := strings.TrimPrefix(spec.String(), string(spec.Family))
		params = strings.TrimPrefix(params, ":")
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.6f\n", i, spec.Name(), spec.Family, params, c.Values().RMS())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	if res.Noisy {
		fmt.Printf("noise: std %.4f, seed %d\n", res.NoiseStd, res.Seed)
	} else {
		fmt.Println("noise: none")
	}
	fmt.Printf("samples: %d of %d time steps\n", len(res.Time), nt)
	fmt.Printf("total rms: %.6f\n", res.Sampled.RMS())
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := experiment.NewEnsemble(cfg, runs, seedStart, experiment.WithLogger(newLogger())).Run(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSEED\tSAMPLES\tRMS")
	for i, res := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.6f\n", i, res.Seed, len(res.Time), res.Sampled.RMS())
	}
	return w.Flush()
}

func listFamilies(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tFORMULA\tPARAMS")
	for _, f := range waveform.Families() {
		d, err := waveform.Lookup(f)
		if err != nil {
			return err
		}
		params := make([]string, len(d.Params))
		for i, p := range d.Params {
			if p.FromGrid {
				params[i] = p.Name + "=<half-width>"
			} else {
				params[i] = p.Name + "=" + strconv.FormatFloat(p.Default, 'g', -1, 64)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.Family, d.Formula, strings.Join(params, " "))
	}
	return w.Flush()
}

func listGroups(cmd *cobra.Command, args []string) error {
	all := composer.Groups(composer.DefaultOmegas())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tCOMPONENTS")
	for _, name := range composer.GroupNames() {
		members := make([]string, len(all[name]))
		for i, spec := range all[name] {
			members[i] = spec.Name() + "(" + spec.String() + ")"
		}
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(members, " "))
	}
	return w.Flush()
}
