// Command play is a terminal client for the SpaceFun spelling game.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"spacefun/internal/apiclient"
	"spacefun/internal/app"
	"spacefun/internal/config"
	"spacefun/internal/storage"
)

var (
	apiURL    string
	storePath string
	offline   bool

	current *session
)

// session is the app context shared by one command invocation.
type session struct {
	app   *app.App
	store *storage.Store
}

func (s *session) close() {
	s.app.Close()
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close local store")
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "play",
	Short: "Spell space words in the terminal",
	Long: `SpaceFun: unscramble letter tiles to spell the word.

Available commands:
  daily        - play the word of the day
  grade <lbl>  - play random words for a grade (pre-k, grade-k, grade-1 ... grade-6)
  login        - sign in so your score is saved
  register     - create an account
  logout       - forget the signed-in player
  account      - show score and achievements
  leaderboard  - show the top players`,
	SilenceUsage:      true,
	PersistentPreRunE: openSession,
}

func init() {
	cfg := config.Load()
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", cfg.APIBaseURL, "SpaceFun service base URL")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", cfg.LocalStorePath, "local store path")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "play from the built-in word list without the service")

	rootCmd.AddCommand(dailyCmd, gradeCmd, loginCmd, registerCmd, logoutCmd, accountCmd, leaderboardCmd)
}

func openSession(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	config.SetupLogging(cfg.LogLevel, cmd.ErrOrStderr())

	store, err := storage.Open(storePath)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}

	var api app.API
	if !offline {
		api = apiclient.New(apiURL, cfg.HTTPTimeout)
	}

	current = &session{
		app:   app.New(cmd.Context(), app.Options{FeedbackDelay: cfg.FeedbackDelay}, api, store),
		store: store,
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	if current != nil {
		current.close()
	}
	stop()
	if err != nil {
		os.Exit(1)
	}
}
