package report

import (
	"sync"

	"github.com/harmonicstack/harmonicstack/pkg/types"
)

// Locked serialises reports from several schedulers onto one renderer so
// multi-write renderers (Prometheus) never interleave.
type Locked struct {
	mu   sync.Mutex
	next Reporter
}

// NewLocked wraps next.
func NewLocked(next Reporter) *Locked {
	return &Locked{next: next}
}

// Report forwards rep to the wrapped renderer while holding the lock.
func (l *Locked) Report(rep types.Report) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next.Report(rep)
}
