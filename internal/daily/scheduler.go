// internal/daily/scheduler.go
//
// Midnight rollover scheduling. At most one pending trigger exists at a
// time: arming again replaces the previous timer rather than stacking a
// second one.

package daily

import (
	"sync"
	"time"
)

// Scheduler arms a single timer for the next puzzle rollover.
type Scheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewScheduler returns an unarmed Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule arms fn to run after delay, cancelling any pending trigger first.
// fn runs on the timer goroutine.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, fn)
}

// Stop cancels any pending trigger.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
