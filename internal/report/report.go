package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/harmonicstack/harmonicstack/pkg/types"
)

// Supported format names.
const (
	FormatConsole    = "console"
	FormatPrometheus = "prometheus"
	FormatLog        = "log"
)

// Reporter renders one report.
type Reporter interface {
	Report(types.Report) error
}

// New returns the renderer for format writing to w. The log format writes
// through slog.Default and ignores w.
func New(format string, w io.Writer) (Reporter, error) {
	switch format {
	case FormatConsole, "":
		return NewConsole(w), nil
	case FormatPrometheus:
		return NewPrometheus(w), nil
	case FormatLog:
		return NewLog(slog.Default()), nil
	default:
		return nil, fmt.Errorf("report: unknown format %q", format)
	}
}

// termOrder fixes the display order of known breakdown terms.
var termOrder = []string{
	"harmonic",
	"tesla_369",
	"quantum_bio",
	"consciousness",
	"resonant_switching",
	"thermal_management",
	"phase_stagger",
	"energy_recycling",
}

// termLabels are the human-readable names of known breakdown terms.
var termLabels = map[string]string{
	"harmonic":           "Harmonic",
	"tesla_369":          "Tesla 3/6/9",
	"quantum_bio":        "Quantum-Bio",
	"consciousness":      "Consciousness",
	"resonant_switching": "Resonant switching",
	"thermal_management": "Thermal management",
	"phase_stagger":      "Phase stagger",
	"energy_recycling":   "Energy recycling",
}

// orderedTerms returns the non-total keys of bd, known terms first in
// display order, unknown terms after in lexical order.
func orderedTerms(bd types.Breakdown) []string {
	out := make([]string, 0, len(bd))
	known := make(map[string]bool, len(termOrder))
	for _, k := range termOrder {
		known[k] = true
		if _, ok := bd[k]; ok {
			out = append(out, k)
		}
	}
	for _, k := range bd.Terms() {
		if !known[k] {
			out = append(out, k)
		}
	}
	return out
}

func label(term string) string {
	if l, ok := termLabels[term]; ok {
		return l
	}
	return term
}
