package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/axt/topnselect/fixture"
)

func fixtureCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Generate or inspect benchmark input files",
	}
	cmd.AddCommand(fixtureGenCmd(a), fixtureInspectCmd(a))
	return cmd
}

func fixtureGenCmd(a *app) *cobra.Command {
	var (
		out    string
		items  int
		seed   uint64
		source string
		levels int
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a fixture file",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, ok := fixture.ParseSource(source)
			if !ok {
				return fmt.Errorf("unknown source %q (use 'random' or 'hashed')", source)
			}
			fix, err := fixture.Generate(items,
				fixture.WithSeed(seed),
				fixture.WithSource(src),
				fixture.WithLevels(levels))
			if err != nil {
				return err
			}
			if err := fix.Save(out); err != nil {
				return err
			}
			a.logger.Info("fixture saved",
				zap.String("path", out),
				zap.Int("items", fix.Len()),
				zap.Uint64("checksum", fix.Checksum()))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&out, "out", "fixture.tnsf", "output file")
	flags.IntVar(&items, "items", 1_000_000, "number of items")
	flags.Uint64Var(&seed, "seed", 1, "generator seed")
	flags.StringVar(&source, "source", "random", "item source: random or hashed")
	flags.IntVar(&levels, "levels", 0, "number of distinct scores, 0 for continuous")
	return cmd
}

func fixtureInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <path>",
		Short: "Print a fixture file's header and score range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fix, err := fixture.Load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "items:    %d\n", fix.Len())
			fmt.Fprintf(w, "source:   %s\n", fix.Source)
			fmt.Fprintf(w, "seed:     %d\n", fix.Seed)
			fmt.Fprintf(w, "levels:   %d\n", fix.Levels)
			fmt.Fprintf(w, "checksum: %016x\n", fix.Checksum())
			fmt.Fprintf(w, "scores:   [%.6f, %.6f]\n", slices.Min(fix.Scores), slices.Max(fix.Scores))
			return nil
		},
	}
}
