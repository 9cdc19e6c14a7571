package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	topnerrors "github.com/axt/topnselect/errors"
	"github.com/axt/topnselect/internal/trial"
)

func verifyCmd(a *app) *cobra.Command {
	var (
		variants []string
		items    int
		topN     int
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every selector variant against a full sort",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("variants") {
				cfg.Variants = variants
			}
			if cmd.Flags().Changed("top-n") {
				cfg.Sweep.TopN = topN
			}
			if !cmd.Flags().Changed("items") {
				items = cfg.Sweep.MaxItems
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if items <= 0 {
				return fmt.Errorf("%w: --items must be positive, got %d", topnerrors.ErrInvalidConfig, items)
			}
			parsed, err := cfg.ParsedVariants()
			if err != nil {
				return err
			}

			fix, err := a.loadFixture(items)
			if err != nil {
				return err
			}
			if err := trial.Verify(cmd.Context(), fix, items, cfg.Sweep.TopN, parsed, cfg.SelectorOptions()...); err != nil {
				return err
			}
			a.logger.Info("all variants agree", zap.Int("variants", len(parsed)), zap.Int("items", items))
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d variants, %d items, top %d\n", len(parsed), items, cfg.Sweep.TopN)
			return nil
		},
	}
	addVariantsFlag(cmd.Flags(), &variants)
	addTopNFlag(cmd.Flags(), &topN)
	cmd.Flags().IntVar(&items, "items", 0, "number of fixture items (default: sweep.max_items)")
	return cmd
}
