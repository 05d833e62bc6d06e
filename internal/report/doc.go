// Package report renders scheduler reports.
//
// Three renderers share the Reporter interface:
//   - Console: a lipgloss-styled status block per report (terminal output)
//   - Prometheus: gauge and counter families in the Prometheus text
//     exposition format, encoded with prometheus/common/expfmt
//   - Log: one structured slog record per report
//
// New(format, w) selects a renderer by its config name.
package report
