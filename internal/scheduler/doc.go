// Package scheduler runs a scoring core in a background cycle and hands a
// report to a Reporter on a coarser cadence.
//
// One Scheduler drives one core. Start arms a fresh run and launches a single
// goroutine; the returned Handle lets the owner join it. Each iteration calls
// ComputeTotal exactly once, reports every ReportEvery iterations, then sleeps
// for Interval. A panic or reporter error is recovered at the loop boundary,
// logged, and followed by a Backoff sleep; it never ends the run.
//
// Stop only clears the run's active flag. The goroutine notices after its
// current sleep, so shutdown takes up to one Interval (or Backoff). There is
// no forced cancellation. A Scheduler can be started again after Stop; the new
// run never revives the old goroutine.
package scheduler
