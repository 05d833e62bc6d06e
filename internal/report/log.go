package report

import (
	"log/slog"

	"github.com/harmonicstack/harmonicstack/pkg/types"
)

// Log renders each report as one structured log record.
type Log struct {
	logger *slog.Logger
}

// NewLog returns a Log renderer. A nil logger uses slog.Default.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Report logs the breakdown and projection at info level.
func (l *Log) Report(rep types.Report) error {
	terms := make([]any, 0, len(rep.Breakdown))
	for _, term := range orderedTerms(rep.Breakdown) {
		terms = append(terms, slog.Float64(term, rep.Breakdown[term]))
	}

	l.logger.Info("report: optimization status",
		"core", rep.Core,
		"run_id", rep.RunID,
		"iteration", rep.Iteration,
		"current_rate", rep.Summary.CurrentRate,
		"improvement_percent", rep.Summary.ImprovementPercent,
		"total_percent", rep.Breakdown.Total(),
		slog.Group("breakdown", terms...),
	)
	return nil
}
