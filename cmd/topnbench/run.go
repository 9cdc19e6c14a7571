package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/axt/topnselect/internal/report"
	"github.com/axt/topnselect/internal/trial"
)

type runFlags struct {
	variants    []string
	maxItems    int
	step        int
	topN        int
	warmup      int
	runs        int
	loadFactor  float64
	metricsFile string
	cpuProfile  string
}

func runCmd(a *app) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sweep item counts and time every selector variant",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, a)
			return a.run(cmd, f)
		},
	}
	flags := cmd.Flags()
	addVariantsFlag(flags, &f.variants)
	flags.IntVar(&f.maxItems, "max-items", 0, "largest item count of the sweep (exclusive)")
	flags.IntVar(&f.step, "step", 0, "sweep step")
	addTopNFlag(flags, &f.topN)
	flags.IntVar(&f.warmup, "warmup", 0, "untimed trials per size")
	flags.IntVar(&f.runs, "runs", 0, "timed trials per size")
	flags.Float64Var(&f.loadFactor, "load-factor", 0, "fixed buffer size as a multiple of top-n")
	flags.StringVar(&f.metricsFile, "metrics-out", "", "write a Prometheus textfile here")
	flags.StringVar(&f.cpuProfile, "cpuprofile", "", "write a CPU profile of the timed phase to file")
	return cmd
}

// apply copies explicitly set flags over the configuration file values.
func (f *runFlags) apply(cmd *cobra.Command, a *app) {
	flags := cmd.Flags()
	cfg := a.cfg
	if flags.Changed("variants") {
		cfg.Variants = f.variants
	}
	if flags.Changed("max-items") {
		cfg.Sweep.MaxItems = f.maxItems
	}
	if flags.Changed("step") {
		cfg.Sweep.Step = f.step
	}
	if flags.Changed("top-n") {
		cfg.Sweep.TopN = f.topN
	}
	if flags.Changed("warmup") {
		cfg.Trials.Warmup = f.warmup
	}
	if flags.Changed("runs") {
		cfg.Trials.Runs = f.runs
	}
	if flags.Changed("load-factor") {
		cfg.Selector.LoadFactor = f.loadFactor
	}
	if flags.Changed("metrics-out") {
		cfg.Output.MetricsFile = f.metricsFile
	}
}

func (a *app) run(cmd *cobra.Command, f *runFlags) error {
	cfg := a.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}
	variants, err := cfg.ParsedVariants()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	plan := trial.Plan{MaxItems: cfg.Sweep.MaxItems, Step: cfg.Sweep.Step, TopN: cfg.Sweep.TopN}
	fix, err := a.loadFixture(cfg.Sweep.MaxItems)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := a.logger.With(zap.String("runID", runID))
	runner := &trial.Runner{Warmup: cfg.Trials.Warmup, Runs: cfg.Trials.Runs, Logger: log}
	opts := cfg.SelectorOptions()

	if f.cpuProfile != "" {
		pf, err := os.Create(f.cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() { _ = pf.Close() }()
		if err := pprof.StartCPUProfile(pf); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	metrics := report.NewMetrics()
	var all []*trial.Result
	for _, v := range variants {
		log.Info("sweep started", zap.Stringer("variant", v), zap.Ints("sizes", plan.Sizes()))
		results, err := runner.Sweep(ctx, fix, v.String(), plan, trial.VariantFactory(v, opts...))
		all = append(all, results...)
		if err != nil {
			return fmt.Errorf("sweep %s: %w", v, err)
		}
		for _, r := range results {
			metrics.Observe(runID, r)
		}
	}

	if err := report.WriteTable(cmd.OutOrStdout(), all); err != nil {
		return err
	}
	if cfg.Output.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		log.Info("metrics written", zap.String("path", cfg.Output.MetricsFile))
	}
	return nil
}
