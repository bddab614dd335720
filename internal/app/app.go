// Package app owns the signed-in user and every open game screen. It
// replaces process-wide user state with one explicit context object.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"spacefun/internal/feedback"
	"spacefun/internal/game"
	"spacefun/internal/models"
	"spacefun/internal/score"
	"spacefun/internal/timer"
	"spacefun/internal/words"
)

var ErrNotSignedIn = errors.New("not signed in")

// API is the subset of the service client the app uses.
type API interface {
	words.Fetcher
	score.Reporter
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	UserInfo(ctx context.Context, userID string) (models.User, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	SetToken(token string)
	Token() string
}

// UserStore persists the signed-in user across runs.
type UserStore interface {
	SaveUser(user models.User, token string) error
	LoadUser() (models.User, string, bool, error)
	Clear() error
}

// Options tunes an App.
type Options struct {
	FeedbackDelay time.Duration
	Scheduler     timer.Scheduler
	Rand          *rand.Rand
}

// App is the root application context.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options
	api    API
	store  UserStore

	mu      sync.Mutex
	loaded  bool
	user    *models.User
	tracker *score.Tracker
	games   []*game.Controller
}

// New creates the app. A nil api plays offline from the built-in catalog
// and never reports scores.
func New(ctx context.Context, opts Options, api API, store UserStore) *App {
	ctx, cancel := context.WithCancel(ctx)
	if opts.Scheduler == nil {
		opts.Scheduler = timer.Real{}
	}
	if opts.FeedbackDelay <= 0 {
		opts.FeedbackDelay = feedback.DefaultDelay
	}
	return &App{
		ctx:     ctx,
		cancel:  cancel,
		opts:    opts,
		api:     api,
		store:   store,
		tracker: score.NewTracker("", 0, nil),
	}
}

// Online reports whether the app talks to the service.
func (a *App) Online() bool {
	return a.api != nil
}

// CurrentUser returns the signed-in user, loading it from the store on
// first use. A store failure is treated as nobody signed in.
func (a *App) CurrentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loadLocked()
	if a.user == nil {
		return nil
	}
	u := *a.user
	u.Score = a.tracker.Score()
	return &u
}

func (a *App) loadLocked() {
	if a.loaded || a.store == nil {
		return
	}
	a.loaded = true

	user, token, ok, err := a.store.LoadUser()
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring unreadable stored user")
		return
	}
	if !ok {
		return
	}
	a.setUserLocked(user, token)
}

func (a *App) setUserLocked(user models.User, token string) {
	a.user = &user
	if a.api != nil {
		a.api.SetToken(token)
		a.tracker = score.NewTracker(user.ID, user.Score, a.api)
	} else {
		a.tracker = score.NewTracker(user.ID, user.Score, nil)
	}
}

// Login signs in and remembers the user on the device.
func (a *App) Login(ctx context.Context, email, password string) (*models.User, error) {
	if a.api == nil {
		return nil, errors.New("login needs the online service")
	}
	user, token, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if a.store != nil {
		if err := a.store.SaveUser(user, token); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to remember user")
		}
	}

	a.mu.Lock()
	a.loaded = true
	a.closeGamesLocked()
	a.setUserLocked(user, token)
	a.mu.Unlock()

	log.Info().Str("user_id", user.ID).Msg("Signed in")
	return &user, nil
}

// Register creates an account and signs straight into it.
func (a *App) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if a.api == nil {
		return nil, errors.New("registration needs the online service")
	}
	if _, err := a.api.Register(ctx, req); err != nil {
		return nil, err
	}
	return a.Login(ctx, req.Email, req.Password)
}

// Logout forgets the user, closes open games and drops the token.
func (a *App) Logout() error {
	a.mu.Lock()
	a.closeGamesLocked()
	a.user = nil
	a.loaded = true
	a.tracker = score.NewTracker("", 0, nil)
	a.mu.Unlock()

	if a.api != nil {
		a.api.SetToken("")
	}
	if a.store != nil {
		if err := a.store.Clear(); err != nil {
			return fmt.Errorf("failed to clear stored user: %w", err)
		}
	}
	return nil
}

// RefreshUser pulls the profile from the service, adopts a higher remote
// score and stores the result.
func (a *App) RefreshUser(ctx context.Context) (*models.User, error) {
	a.mu.Lock()
	a.loadLocked()
	if a.user == nil {
		a.mu.Unlock()
		return nil, ErrNotSignedIn
	}
	id := a.user.ID
	a.mu.Unlock()

	if a.api == nil {
		return a.CurrentUser(), nil
	}
	remote, err := a.api.UserInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	if a.user == nil || a.user.ID != id {
		a.mu.Unlock()
		return nil, ErrNotSignedIn
	}
	a.tracker.SyncRemote(remote.Score)
	remote.Score = a.tracker.Score()
	*a.user = remote
	u := remote
	a.mu.Unlock()

	if a.store != nil {
		if err := a.store.SaveUser(u, a.api.Token()); err != nil {
			log.Warn().Err(err).Msg("Failed to store refreshed user")
		}
	}
	return &u, nil
}

// NewGame opens a game screen. Guests play too; their score is kept only
// for the screen's lifetime.
func (a *App) NewGame(mode words.Mode, grade string) *game.Controller {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loadLocked()

	var src words.Source
	if a.api != nil {
		src = words.NewRemoteSource(a.api)
	} else {
		src = words.NewCatalogSource(a.childRandLocked())
	}

	ctrl := game.New(a.ctx, game.Options{
		Source:    src,
		Mode:      mode,
		Grade:     grade,
		Tracker:   a.tracker,
		Feedback:  feedback.New(a.opts.Scheduler, a.opts.FeedbackDelay),
		Scheduler: a.opts.Scheduler,
		Delay:     a.opts.FeedbackDelay,
		Rand:      a.childRandLocked(),
	})
	a.games = append(a.games, ctrl)
	return ctrl
}

// childRandLocked derives an independent generator from Options.Rand so no
// two components share one. It returns nil when no seed source was given.
func (a *App) childRandLocked() *rand.Rand {
	if a.opts.Rand == nil {
		return nil
	}
	return rand.New(rand.NewSource(a.opts.Rand.Int63()))
}

// Close tears down every open game screen, cancels in-flight loads and
// stores the latest score.
func (a *App) Close() {
	a.mu.Lock()
	a.closeGamesLocked()
	var u *models.User
	if a.user != nil {
		cp := *a.user
		cp.Score = a.tracker.Score()
		u = &cp
	}
	a.mu.Unlock()
	a.cancel()

	if u != nil && a.store != nil {
		token := ""
		if a.api != nil {
			token = a.api.Token()
		}
		if err := a.store.SaveUser(*u, token); err != nil {
			log.Warn().Err(err).Msg("Failed to store user on close")
		}
	}
}

func (a *App) closeGamesLocked() {
	for _, g := range a.games {
		g.Close()
	}
	a.games = nil
}
