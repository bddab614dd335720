// Package feedback shows transient messages that dismiss themselves after a
// fixed delay.
package feedback

import (
	"sync"
	"time"

	"spacefun/internal/timer"
)

// DefaultDelay is how long a message stays visible.
const DefaultDelay = 2 * time.Second

// Messages shown after a submission.
const (
	MsgCorrect  = "Correct!"
	MsgTryAgain = "Try again!"
)

// Listener receives every visibility change.
type Listener func(msg string, visible bool)

// Sequencer holds at most one visible message. A new Show replaces the
// current message and restarts the dismiss timer.
type Sequencer struct {
	mu       sync.Mutex
	sched    timer.Scheduler
	delay    time.Duration
	msg      string
	visible  bool
	gen      uint64
	task     timer.Task
	listener Listener
}

// New creates a sequencer. A nil scheduler uses real timers and a
// non-positive delay uses DefaultDelay.
func New(sched timer.Scheduler, delay time.Duration) *Sequencer {
	if sched == nil {
		sched = timer.Real{}
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Sequencer{sched: sched, delay: delay}
}

// OnChange registers the listener, replacing any previous one.
func (s *Sequencer) OnChange(l Listener) {
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
}

// Delay returns the auto-dismiss delay.
func (s *Sequencer) Delay() time.Duration {
	return s.delay
}

// Show displays msg and (re)starts the dismiss timer.
func (s *Sequencer) Show(msg string) {
	s.mu.Lock()
	s.stopLocked()
	s.gen++
	gen := s.gen
	s.msg = msg
	s.visible = true
	s.task = s.sched.AfterFunc(s.delay, func() { s.expire(gen) })
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l(msg, true)
	}
}

// Dismiss hides the current message. Calling it with nothing visible is a
// no-op.
func (s *Sequencer) Dismiss() {
	s.mu.Lock()
	s.stopLocked()
	if !s.visible {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.msg = ""
	s.visible = false
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l("", false)
	}
}

// Current returns the visible message, if any.
func (s *Sequencer) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg, s.visible
}

func (s *Sequencer) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.visible {
		s.mu.Unlock()
		return
	}
	s.task = nil
	s.msg = ""
	s.visible = false
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l("", false)
	}
}

func (s *Sequencer) stopLocked() {
	if s.task != nil {
		s.task.Stop()
		s.task = nil
	}
}
