package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/harmonicstack/harmonicstack/internal/asic"
	"github.com/harmonicstack/harmonicstack/internal/config"
	"github.com/harmonicstack/harmonicstack/internal/harmonic"
	"github.com/harmonicstack/harmonicstack/internal/report"
	"github.com/harmonicstack/harmonicstack/internal/scheduler"
)

func newRunCmd(configPath *string) *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run both optimization cores until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			setupLogger(cfg.Log, os.Stderr)

			slog.Info("mhm starting",
				"config", *configPath,
				"report_format", cfg.Report.Format,
				"harmonic", cfg.Harmonic.Enabled,
				"asic", cfg.ASIC.Enabled,
			)

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			if duration > 0 {
				var stop context.CancelFunc
				ctx, stop = context.WithTimeout(ctx, duration)
				defer stop()
			}

			return runOptimizer(ctx, cfg, *configPath, cmd.OutOrStdout())
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 runs until interrupted)")
	return cmd
}

// runOptimizer starts a scheduler per enabled core and blocks until ctx is
// done, then stops every scheduler and joins its goroutine.
func runOptimizer(ctx context.Context, cfg *config.Config, configPath string, out io.Writer) error {
	r, err := report.New(cfg.Report.Format, out)
	if err != nil {
		return err
	}
	rep := report.NewLocked(r)

	var scheds []*scheduler.Scheduler
	if cfg.Harmonic.Enabled {
		core := harmonic.New(harmonic.WithBaselineRate(cfg.Harmonic.BaselineRate))
		s, err := scheduler.New(cfg.Harmonic.Scheduler(scheduler.HarmonicConfig()), core, rep)
		if err != nil {
			return fmt.Errorf("harmonic: %w", err)
		}
		scheds = append(scheds, s)
	}
	if cfg.ASIC.Enabled {
		core := asic.New(asic.WithBaselineRate(cfg.ASIC.BaselineRate))
		s, err := scheduler.New(cfg.ASIC.Scheduler(scheduler.ASICConfig()), core, rep)
		if err != nil {
			return fmt.Errorf("asic: %w", err)
		}
		scheds = append(scheds, s)
	}

	if len(scheds) == 0 {
		slog.Warn("no cores enabled, nothing to run")
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)

	// Hot reload adjusts the log level only; cadence changes need a restart.
	if configPath != "" {
		g.Go(func() error {
			if err := config.Watch(gctx, configPath, func(updated *config.Config) {
				logLevel.Set(updated.Log.SlogLevel())
			}); err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
			return nil
		})
	}

	for _, s := range scheds {
		s := s
		h := s.Start()
		g.Go(func() error {
			<-gctx.Done()
			s.Stop()
			h.Wait()
			return nil
		})
	}

	err = g.Wait()
	slog.Info("mhm shutting down")
	return err
}
