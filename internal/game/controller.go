// Package game runs the letter-tile spelling puzzle: fetch a word, shuffle
// its letters into tiles, let the player build an answer, then check it and
// advance.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"spacefun/internal/achievements"
	"spacefun/internal/feedback"
	"spacefun/internal/score"
	"spacefun/internal/timer"
	"spacefun/internal/words"
)

var (
	ErrNotActive         = errors.New("no active puzzle")
	ErrTransitionPending = errors.New("a transition is already pending")
	ErrSuperseded        = errors.New("word load superseded by a newer start")
	ErrClosed            = errors.New("game closed")
)

// State is the controller's position in the puzzle lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateActive
	StateSubmitting
	StateCorrect
	StateIncorrect
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateSubmitting:
		return "submitting"
	case StateCorrect:
		return "correct"
	case StateIncorrect:
		return "incorrect"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Options configures a Controller. Source, Tracker and Feedback are
// required.
type Options struct {
	Source    words.Source
	Mode      words.Mode
	Grade     string
	Tracker   *score.Tracker
	Feedback  *feedback.Sequencer
	Scheduler timer.Scheduler
	Delay     time.Duration
	Rand      *rand.Rand
}

// Result describes a submission.
type Result struct {
	Correct         bool
	Score           int
	NewAchievements []achievements.Achievement
}

// Controller owns one game screen. It is safe for concurrent use; timer
// callbacks and player actions are serialised by an internal mutex.
type Controller struct {
	mu       sync.Mutex
	ctx      context.Context
	source   words.Source
	mode     words.Mode
	grade    string
	tracker  *score.Tracker
	fb       *feedback.Sequencer
	sched    timer.Scheduler
	delay    time.Duration
	rng      *rand.Rand
	state    State
	session  *Session
	showHint bool
	pending  timer.Task
	gen      uint64
	closed   bool
	listener func(View)
}

// New creates a controller in the Idle state. ctx bounds word loads
// triggered by the auto-advance timer.
func New(ctx context.Context, opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = timer.Real{}
	}
	if opts.Delay <= 0 {
		opts.Delay = opts.Feedback.Delay()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Mode == "" {
		opts.Mode = words.ModeDaily
	}
	return &Controller{
		ctx:     ctx,
		source:  opts.Source,
		mode:    opts.Mode,
		grade:   opts.Grade,
		tracker: opts.Tracker,
		fb:      opts.Feedback,
		sched:   opts.Scheduler,
		delay:   opts.Delay,
		rng:     opts.Rand,
	}
}

// OnChange registers a listener called after every state change with a
// fresh snapshot.
func (c *Controller) OnChange(fn func(View)) {
	c.mu.Lock()
	c.listener = fn
	c.mu.Unlock()
}

// StartGame loads a new word and shuffles it into tiles. Any pending
// auto-advance or replay is cancelled first. On failure the previous puzzle
// is kept and the error is shown as feedback.
func (c *Controller) StartGame(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	retryCancelled := c.state == StateIncorrect
	c.cancelPendingLocked()
	c.gen++
	gen := c.gen
	c.state = StateLoading
	c.mu.Unlock()
	c.notify()

	rec, err := c.source.FetchWord(ctx, c.mode, c.grade)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if gen != c.gen {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		c.state = c.restingStateLocked()
		if c.state == StateActive && retryCancelled {
			// Run the retry that was cancelled above.
			c.session.Reset()
		}
		c.mu.Unlock()
		c.fb.Show(err.Error())
		c.notify()
		return err
	}
	c.session = NewSession(rec, c.rng)
	c.showHint = false
	c.state = StateActive
	c.mu.Unlock()

	log.Debug().Str("word", rec.Word).Str("level", rec.Level).Msg("Puzzle started")
	c.notify()
	return nil
}

// SelectTile places tile i into the first empty answer slot. It reports
// whether anything changed; out-of-range, used tiles and a full answer are
// ignored, as is any call outside the Active state.
func (c *Controller) SelectTile(i int) bool {
	c.mu.Lock()
	if c.state != StateActive || c.session == nil || !c.session.Place(i) {
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()
	c.notify()
	return true
}

// Replay clears the answer and frees every tile, keeping the word and tile
// order. A pending retry after a wrong answer runs immediately instead of
// waiting for its timer. A solved puzzle cannot be replayed.
func (c *Controller) Replay() bool {
	c.mu.Lock()
	if c.session == nil || c.closed {
		c.mu.Unlock()
		return false
	}
	switch c.state {
	case StateActive, StateIncorrect:
	default:
		c.mu.Unlock()
		return false
	}
	c.cancelPendingLocked()
	c.gen++
	c.session.Reset()
	c.state = StateActive
	c.mu.Unlock()

	c.fb.Dismiss()
	c.notify()
	return true
}

// Submit checks the answer. A correct answer scores a point, reports it and
// schedules the next word; a wrong one schedules a replay. Both wait for the
// feedback delay. Only one transition may be pending at a time.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return Result{}, ErrTransitionPending
	}
	switch c.state {
	case StateActive:
	case StateSubmitting, StateCorrect, StateIncorrect:
		c.mu.Unlock()
		return Result{}, ErrTransitionPending
	default:
		c.mu.Unlock()
		return Result{}, ErrNotActive
	}
	c.state = StateSubmitting

	if !c.session.Matches() {
		c.state = StateIncorrect
		c.gen++
		gen := c.gen
		c.pending = c.sched.AfterFunc(c.delay, func() { c.fireReplay(gen) })
		c.mu.Unlock()

		c.fb.Show(feedback.MsgTryAgain)
		c.notify()
		return Result{Score: c.tracker.Score()}, nil
	}

	c.session.Completed = true
	c.state = StateCorrect
	newScore := c.tracker.RecordCorrectAnswer()
	c.gen++
	gen := c.gen
	c.pending = c.sched.AfterFunc(c.delay, func() { c.fireAdvance(gen) })
	word := c.session.Word.Word
	c.mu.Unlock()

	c.fb.Show(feedback.MsgCorrect)
	c.notify()

	if err := c.tracker.Report(ctx, 1); err != nil {
		log.Warn().Err(err).Str("word", word).Msg("Failed to report score")
	}

	return Result{
		Correct:         true,
		Score:           newScore,
		NewAchievements: achievements.NewlyUnlocked(newScore-1, newScore),
	}, nil
}

// ToggleHint flips hint visibility and returns the new value. It does
// nothing before the first word loads or after Close.
func (c *Controller) ToggleHint() bool {
	c.mu.Lock()
	if c.closed || c.session == nil {
		c.mu.Unlock()
		return false
	}
	c.showHint = !c.showHint
	v := c.showHint
	c.mu.Unlock()
	c.notify()
	return v
}

// Close cancels any pending transition and hides feedback. The controller
// ignores all later actions.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cancelPendingLocked()
	c.gen++
	c.listener = nil
	c.mu.Unlock()

	c.fb.Dismiss()
}

func (c *Controller) fireAdvance(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.mu.Unlock()

	if err := c.StartGame(c.ctx); err != nil && !errors.Is(err, ErrSuperseded) && !errors.Is(err, ErrClosed) {
		log.Error().Err(err).Msg("Auto-advance failed to load next word")
	}
}

func (c *Controller) fireReplay(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.session.Reset()
	c.state = StateActive
	c.mu.Unlock()

	c.notify()
}

func (c *Controller) cancelPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// restingStateLocked is where a failed load lands: back on the previous
// puzzle if it is still playable, otherwise Idle.
func (c *Controller) restingStateLocked() State {
	if c.session != nil && !c.session.Completed {
		return StateActive
	}
	return StateIdle
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.listener
	if fn == nil {
		c.mu.Unlock()
		return
	}
	v := c.snapshotLocked()
	c.mu.Unlock()
	fn(v)
}
