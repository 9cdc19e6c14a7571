package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/axt/topnselect/fixture"
	"github.com/axt/topnselect/internal/config"
	"github.com/axt/topnselect/internal/logging"
)

// app carries what the persistent pre-run sets up for the subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.BenchConfig
	logger *zap.Logger
}

func rootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "topnbench",
		Short:         "Benchmark and verify top-N selection algorithms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML benchmark configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd(a), verifyCmd(a), fixtureCmd(a))
	return root
}

func (a *app) init() error {
	logger, err := logging.NewLogger(a.logLevel)
	if err != nil {
		return err
	}
	a.logger = logger

	if a.configPath == "" {
		a.cfg = config.Default()
		return nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// loadFixture returns the configured fixture with at least n items. A fixture
// file is reused only if it is large enough and was generated with the
// configured seed, source and levels; otherwise a fixture is generated and, if
// a path is configured, saved there for the next run.
func (a *app) loadFixture(n int) (*fixture.Fixture, error) {
	path := a.cfg.Fixture.Path
	if path != "" {
		fix, err := fixture.Load(path)
		switch {
		case err == nil && !a.matchesConfig(fix):
			a.logger.Info("fixture generated with other settings, regenerating", zap.String("path", path),
				zap.Uint64("seed", fix.Seed), zap.Stringer("source", fix.Source), zap.Int("levels", fix.Levels))
		case err == nil && fix.Len() >= n:
			a.logger.Info("fixture loaded", zap.String("path", path), zap.Int("items", fix.Len()))
			return fix, nil
		case err == nil:
			a.logger.Info("fixture too small, regenerating", zap.String("path", path),
				zap.Int("items", fix.Len()), zap.Int("want", n))
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("load fixture: %w", err)
		}
	}

	fix, err := fixture.Generate(n, a.cfg.FixtureOptions()...)
	if err != nil {
		return nil, err
	}
	a.logger.Info("fixture generated",
		zap.Int("items", n),
		zap.Stringer("source", fix.Source),
		zap.Uint64("seed", fix.Seed))

	if path != "" {
		if err := fix.Save(path); err != nil {
			return nil, fmt.Errorf("save fixture: %w", err)
		}
		a.logger.Info("fixture saved", zap.String("path", path))
	}
	return fix, nil
}

// matchesConfig reports whether fix was generated with the configured
// fixture settings.
func (a *app) matchesConfig(fix *fixture.Fixture) bool {
	source, _ := fixture.ParseSource(a.cfg.Fixture.Source)
	return fix.Seed == a.cfg.Fixture.Seed &&
		fix.Source == source &&
		fix.Levels == a.cfg.Fixture.Levels
}

func addVariantsFlag(fs *pflag.FlagSet, p *[]string) {
	fs.StringSliceVar(p, "variants", nil, "selector variants, e.g. qs-middle,qsfixed-median3,heap,baseline")
}

func addTopNFlag(fs *pflag.FlagSet, p *int) {
	fs.IntVar(p, "top-n", 0, "number of results requested")
}
