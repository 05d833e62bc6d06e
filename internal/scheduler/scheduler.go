package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/harmonicstack/harmonicstack/pkg/types"
)

// Default cadence values.
const (
	DefaultInterval = 10 * time.Second
	DefaultBackoff  = 30 * time.Second

	HarmonicReportEvery = 3
	ASICReportEvery     = 6
)

// State is the lifecycle state of a Scheduler.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateStopped State = "stopped"
)

// Computer is the scoring core a Scheduler drives.
type Computer interface {
	ComputeTotal() (float64, types.Breakdown)
	Summary() types.Summary
}

// Reporter renders a report. A returned error is treated like any other
// cycle failure.
type Reporter interface {
	Report(types.Report) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(types.Report) error

// Report calls f(r).
func (f ReporterFunc) Report(r types.Report) error { return f(r) }

// Config controls the cadence of one Scheduler.
type Config struct {
	// Name labels log lines and reports.
	Name string

	// Interval is the sleep after every successful iteration.
	Interval time.Duration

	// Backoff is the sleep after a failed iteration.
	Backoff time.Duration

	// ReportEvery is the number of iterations between reports.
	ReportEvery int

	// ReportOnStart reports on iterations 1, 1+N, 1+2N, ... instead of
	// N, 2N, 3N, ...
	ReportOnStart bool
}

// HarmonicConfig is the cadence used for the Harmonic Core: report after
// every third iteration.
func HarmonicConfig() Config {
	return Config{
		Name:        "harmonic",
		Interval:    DefaultInterval,
		Backoff:     DefaultBackoff,
		ReportEvery: HarmonicReportEvery,
	}
}

// ASICConfig is the cadence used for the ASIC Core: report on the first
// iteration and every sixth after it.
func ASICConfig() Config {
	return Config{
		Name:          "asic",
		Interval:      DefaultInterval,
		Backoff:       DefaultBackoff,
		ReportEvery:   ASICReportEvery,
		ReportOnStart: true,
	}
}

func (c Config) validate() error {
	if c.Interval <= 0 {
		return errors.New("interval must be positive")
	}
	if c.Backoff <= 0 {
		return errors.New("backoff must be positive")
	}
	if c.ReportEvery <= 0 {
		return errors.New("report_every must be positive")
	}
	return nil
}

// Scheduler drives one Computer. All methods are safe for concurrent use.
type Scheduler struct {
	cfg      Config
	core     Computer
	reporter Reporter
	sleep    func(time.Duration)
	now      func() time.Time

	mu  sync.Mutex
	cur *run
}

// run is one Start..Stop generation.
type run struct {
	id     string
	active atomic.Bool
	done   chan struct{}
}

// Handle refers to one background run.
type Handle struct {
	ID   string
	done chan struct{}
}

// Wait blocks until the run's goroutine has exited.
func (h *Handle) Wait() { <-h.done }

// Done is closed when the run's goroutine has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// New returns an idle Scheduler for core. reporter may be nil, in which case
// reports are dropped.
func New(cfg Config, core Computer, reporter Reporter) (*Scheduler, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("scheduler %q: %w", cfg.Name, err)
	}
	if reporter == nil {
		reporter = ReporterFunc(func(types.Report) error { return nil })
	}
	return &Scheduler{
		cfg:      cfg,
		core:     core,
		reporter: reporter,
		sleep:    time.Sleep,
		now:      time.Now,
	}, nil
}

// Start arms a fresh run and launches its goroutine. If a run is already
// active its handle is returned unchanged.
func (s *Scheduler) Start() *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur != nil && s.cur.active.Load() {
		return &Handle{ID: s.cur.id, done: s.cur.done}
	}

	r := &run{id: uuid.NewString(), done: make(chan struct{})}
	r.active.Store(true)
	s.cur = r

	go s.loop(r)
	return &Handle{ID: r.id, done: r.done}
}

// Stop clears the active flag of the current run. The goroutine exits after
// its pending sleep; use Handle.Wait to join it.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil || !s.cur.active.Load() {
		return
	}
	s.cur.active.Store(false)
	slog.Info("scheduler: stop requested", "core", s.cfg.Name, "run_id", s.cur.id)
}

// State reports the lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.cur == nil:
		return StateIdle
	case s.cur.active.Load():
		return StateRunning
	default:
		return StateStopped
	}
}

func (s *Scheduler) loop(r *run) {
	defer close(r.done)

	slog.Info("scheduler: started",
		"core", s.cfg.Name,
		"run_id", r.id,
		"interval", s.cfg.Interval,
		"report_every", s.cfg.ReportEvery,
	)

	var completed int
	for r.active.Load() {
		if err := s.iterate(r, completed+1); err != nil {
			slog.Error("scheduler: cycle failed, backing off",
				"core", s.cfg.Name,
				"run_id", r.id,
				"err", err,
				"retry_in", s.cfg.Backoff,
			)
			s.sleep(s.cfg.Backoff)
			continue
		}
		completed++
		s.sleep(s.cfg.Interval)
	}

	slog.Info("scheduler: stopped", "core", s.cfg.Name, "run_id", r.id, "cycles", completed)
}

// iterate runs one cycle. A panic in the core or reporter is returned as an
// error.
func (s *Scheduler) iterate(r *run, iteration int) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("recovered panic: %v", p)
		}
	}()

	fraction, bd := s.core.ComputeTotal()
	if !s.shouldReport(iteration) {
		return nil
	}

	rep := types.Report{
		Core:      s.cfg.Name,
		RunID:     r.id,
		Iteration: iteration,
		At:        s.now(),
		Fraction:  fraction,
		Breakdown: bd,
		Summary:   s.core.Summary(),
	}
	if err := s.reporter.Report(rep); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

func (s *Scheduler) shouldReport(iteration int) bool {
	if s.cfg.ReportOnStart {
		return (iteration-1)%s.cfg.ReportEvery == 0
	}
	return iteration%s.cfg.ReportEvery == 0
}
