// Package timer provides cancellable delayed tasks so that timer-driven
// state machines can be driven by a fake clock in tests.
package timer

import (
	"sort"
	"sync"
	"time"
)

// Task is a handle to a scheduled function.
type Task interface {
	// Stop cancels the task. It reports false if the task already ran or
	// was already stopped.
	Stop() bool
}

// Scheduler runs functions after a delay on their own goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// Real schedules with time.AfterFunc.
type Real struct{}

// AfterFunc implements Scheduler.
func (Real) AfterFunc(d time.Duration, fn func()) Task {
	return time.AfterFunc(d, fn)
}

// Fake is a manually advanced Scheduler. Due tasks run synchronously on
// the goroutine calling Advance.
type Fake struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*fakeTask
}

type fakeTask struct {
	f   *Fake
	at  time.Duration
	seq int
	fn  func()
}

// NewFake returns a fake scheduler at time zero.
func NewFake() *Fake {
	return &Fake{}
}

// AfterFunc implements Scheduler.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTask{f: f, at: f.now + d, seq: f.seq, fn: fn}
	f.tasks = append(f.tasks, t)
	return t
}

func (t *fakeTask) Stop() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	for i, other := range t.f.tasks {
		if other == t {
			t.f.tasks = append(t.f.tasks[:i], t.f.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d and runs every task that becomes
// due, earliest first. Tasks scheduled by a running task are honoured if
// they fall inside the window.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for {
		f.mu.Lock()
		sort.SliceStable(f.tasks, func(i, j int) bool {
			if f.tasks[i].at == f.tasks[j].at {
				return f.tasks[i].seq < f.tasks[j].seq
			}
			return f.tasks[i].at < f.tasks[j].at
		})
		if len(f.tasks) == 0 || f.tasks[0].at > target {
			f.now = target
			f.mu.Unlock()
			return
		}
		next := f.tasks[0]
		f.tasks = f.tasks[1:]
		f.now = next.at
		f.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of scheduled tasks that have not run.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}
