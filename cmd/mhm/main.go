// Command mhm runs the Harmonic and ASIC scoring cores in the background and
// prints their breakdown reports.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/harmonicstack/harmonicstack/internal/config"
)

// logLevel is shared by every handler so a config reload can change it.
var logLevel = new(slog.LevelVar)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "mhm",
		Short:        "Synthetic harmonic and ASIC optimization estimator",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file; built-in defaults apply when empty")

	root.AddCommand(newRunCmd(&configPath), newSummaryCmd(&configPath))
	return root
}

// loadConfig returns the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// setupLogger installs the default slog logger: tint for text output, the
// JSON handler otherwise.
func setupLogger(cfg config.LogConfig, w io.Writer) {
	logLevel.Set(cfg.SlogLevel())

	var h slog.Handler
	switch cfg.Format {
	case "json":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel})
	default:
		h = tint.NewHandler(w, &tint.Options{Level: logLevel, TimeFormat: "15:04:05"})
	}
	slog.SetDefault(slog.New(h))
}
