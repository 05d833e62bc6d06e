package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harmonicstack/harmonicstack/internal/asic"
	"github.com/harmonicstack/harmonicstack/internal/harmonic"
	"github.com/harmonicstack/harmonicstack/internal/report"
	"github.com/harmonicstack/harmonicstack/pkg/types"
)

// summaryCore is what the summary command needs from a scoring core.
type summaryCore interface {
	ComputeTotal() (float64, types.Breakdown)
	Summary() types.Summary
}

func newSummaryCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Compute one pass of each enabled core and print its summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			setupLogger(cfg.Log, os.Stderr)

			var cores []summaryCore
			if cfg.Harmonic.Enabled {
				cores = append(cores, harmonic.New(harmonic.WithBaselineRate(cfg.Harmonic.BaselineRate)))
			}
			if cfg.ASIC.Enabled {
				cores = append(cores, asic.New(asic.WithBaselineRate(cfg.ASIC.BaselineRate)))
			}

			console := report.NewConsole(cmd.OutOrStdout())
			for _, c := range cores {
				fraction, bd := c.ComputeTotal()
				s := c.Summary()
				if err := console.Report(types.Report{
					Core:      s.Core,
					Iteration: 1,
					At:        time.Now(),
					Fraction:  fraction,
					Breakdown: bd,
					Summary:   s,
				}); err != nil {
					return err
				}
				if err := console.Summary(s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
