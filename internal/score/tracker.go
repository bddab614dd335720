// Package score tracks a player's running score and reports increments to
// the score service.
package score

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"spacefun/internal/achievements"
)

var ErrScoreReportFailed = errors.New("score report failed")

// Reporter sends a score delta for a user to the score service.
type Reporter interface {
	UpdateScore(ctx context.Context, userID string, delta int) error
}

// Tracker holds the running score for one player. The score only grows.
type Tracker struct {
	mu       sync.Mutex
	userID   string
	score    int
	reporter Reporter
}

// NewTracker starts a tracker at initial. An empty userID or nil reporter
// means guest play: Report does nothing.
func NewTracker(userID string, initial int, reporter Reporter) *Tracker {
	if initial < 0 {
		initial = 0
	}
	return &Tracker{userID: userID, score: initial, reporter: reporter}
}

// RecordCorrectAnswer adds one point and returns the new score.
func (t *Tracker) RecordCorrectAnswer() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.score++
	return t.score
}

// Score returns the running score.
func (t *Tracker) Score() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.score
}

// Unlocked returns every achievement reached by the running score.
func (t *Tracker) Unlocked() []achievements.Achievement {
	return achievements.Unlocked(t.Score())
}

// SyncRemote adopts a server-side score when it is ahead of the local one.
// A lower remote value is stale and ignored. It reports whether the local
// score changed.
func (t *Tracker) SyncRemote(remote int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if remote <= t.score {
		return false
	}
	t.score = remote
	return true
}

// Report sends delta to the score service. The local score is never rolled
// back on failure.
func (t *Tracker) Report(ctx context.Context, delta int) error {
	if t.reporter == nil || t.userID == "" {
		return nil
	}
	if err := t.reporter.UpdateScore(ctx, t.userID, delta); err != nil {
		return fmt.Errorf("%w: %v", ErrScoreReportFailed, err)
	}
	return nil
}
