// Package types defines the Go types shared by the scoring cores, the scheduler
// and the report renderers: the per-term Breakdown of one computation pass and
// the read-only Summary view of a core.
package types
