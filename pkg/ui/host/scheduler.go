package host

import (
	"time"

	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// Scheduler delivers periodic TickMsg to registered widget lifecycles.
// It is the only background activity in the system; Stop cancels the
// underlying ticker so no callback outlives the host. Registration on
// attach is paired with deregistration on detach — Register's cancel
// function must be called (or Stop) before the lifecycle is discarded.
type Scheduler struct {
	interval time.Duration
	targets  map[int]*runtime.Lifecycle
	ordered  []int
	next     int
	stop     chan struct{}
	stopped  bool
}

// NewScheduler creates a scheduler that ticks at the given interval.
// The scheduler does not start until Run is called.
func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{
		interval: interval,
		targets:  make(map[int]*runtime.Lifecycle),
		stop:     make(chan struct{}),
	}
}

// Register adds a lifecycle to the tick distribution and returns its
// cancel function.
func (s *Scheduler) Register(lc *runtime.Lifecycle) func() {
	id := s.next
	s.next++
	s.targets[id] = lc
	s.ordered = append(s.ordered, id)
	return func() {
		delete(s.targets, id)
		s.ordered = removeID(s.ordered, id)
	}
}

// Deliver dispatches one tick to every registered lifecycle. Exposed so
// hosts (and tests) can drive ticks from their own loop instead of Run.
func (s *Scheduler) Deliver(now time.Time) {
	for _, id := range s.ordered {
		if lc, ok := s.targets[id]; ok {
			lc.Dispatch(runtime.TickMsg{Time: now})
		}
	}
}

// Run blocks, delivering ticks until Stop is called. Hosts embedding
// their own event loop should call Deliver instead.
func (s *Scheduler) Run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			s.Deliver(now)
		case <-s.stop:
			return
		}
	}
}

// Stop terminates Run and drops every registration.
func (s *Scheduler) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.stop)
	s.targets = make(map[int]*runtime.Lifecycle)
	s.ordered = nil
}
