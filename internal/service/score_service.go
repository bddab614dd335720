package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"spacefun/internal/achievements"
	"spacefun/internal/models"
	"spacefun/internal/repository"
)

// MaxScoreDelta bounds a single score report.
const MaxScoreDelta = 10

// LeaderboardSize is the number of players shown on the leaderboard.
const LeaderboardSize = 20

var ErrInvalidDelta = fmt.Errorf("score delta must be between 1 and %d", MaxScoreDelta)

// ScoreService applies score reports and serves profiles and the leaderboard
type ScoreService struct {
	userRepo *repository.UserRepository
	email    *EmailService
}

// NewScoreService creates a new score service. email may be nil.
func NewScoreService(userRepo *repository.UserRepository, email *EmailService) *ScoreService {
	return &ScoreService{userRepo: userRepo, email: email}
}

// AddScore adds delta to the user's score, records every achievement the
// new total crosses, and returns the new score with those achievements.
func (s *ScoreService) AddScore(ctx context.Context, userID string, delta int) (int, []achievements.Achievement, error) {
	if delta < 1 || delta > MaxScoreDelta {
		return 0, nil, ErrInvalidDelta
	}

	var unlocked []achievements.Achievement
	score, err := s.userRepo.AddScore(userID, delta, func(before, after int) []string {
		unlocked = achievements.NewlyUnlocked(before, after)
		ids := make([]string, len(unlocked))
		for i, a := range unlocked {
			ids[i] = a.ID
		}
		return ids
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, ErrUserNotFound
	}
	if err != nil {
		return 0, nil, err
	}

	if len(unlocked) > 0 {
		log.Info().Str("user_id", userID).Strs("achievements", achievements.Titles(unlocked)).Msg("Achievements unlocked")
		s.notifyAchievements(ctx, userID, unlocked)
	}
	return score, unlocked, nil
}

func (s *ScoreService) notifyAchievements(ctx context.Context, userID string, unlocked []achievements.Achievement) {
	if s.email == nil || !s.email.IsEnabled() {
		return
	}
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil || user == nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to load user for achievement email")
		return
	}
	for _, a := range unlocked {
		if err := s.email.SendAchievementEmail(ctx, user.Email, user.ChildName, a); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Str("achievement", a.ID).Msg("Failed to send achievement email")
		}
	}
}

// GetUser returns a profile with achievement titles
func (s *ScoreService) GetUser(userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.Achievements = achievementTitles(user.Achievements)
	return user, nil
}

// Leaderboard returns the top players by score
func (s *ScoreService) Leaderboard() ([]models.LeaderboardEntry, error) {
	return s.userRepo.GetLeaderboard(LeaderboardSize)
}
