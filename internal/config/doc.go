// Package config loads and watches the optimizer configuration file
// (config.yaml).
//
// Top-level types:
//   - Config{Log, Report, Harmonic, ASIC} — full config tree parsed from YAML
//   - LogConfig — level (debug|info|warn|error), format (text|json)
//   - ReportConfig — format (console|prometheus|log)
//   - CoreConfig — enabled, baseline_rate, interval, backoff, report_every;
//     one section per scoring core
//
// Load(path) reads the YAML file, applies defaults (10s interval, 30s backoff,
// reports every 3rd harmonic and every 6th asic cycle, baseline 3779), then
// validates. Default() returns the same defaults without a file.
//
// Watch(ctx, path, onChange) watches the file's directory with fsnotify, so
// editors that save by rename keep being tracked, and calls onChange with the
// newly parsed Config whenever it differs from the last one seen.
package config
