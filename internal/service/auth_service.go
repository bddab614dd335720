package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"spacefun/internal/achievements"
	"spacefun/internal/models"
	"spacefun/internal/repository"
	"spacefun/internal/security"
	"spacefun/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInappropriateName  = errors.New("please choose a different name")
	ErrTokenMismatch      = errors.New("token does not belong to this user")
)

// BadWordChecker screens free text chosen by players.
type BadWordChecker interface {
	ContainsBadWord(text string) (bool, error)
}

// AuthService handles registration and login
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *security.TokenIssuer
	badWords BadWordChecker
	email    *EmailService
}

// NewAuthService creates a new auth service. badWords and email may be nil.
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenIssuer, badWords BadWordChecker, email *EmailService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		badWords: badWords,
		email:    email,
	}
}

// Register creates a new player account. Validation failures are returned
// as validation.ValidationError.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.ChildName = strings.TrimSpace(req.ChildName)

	if err := validation.ValidateName(req.ChildName); err != nil {
		return nil, err
	}
	if err := validation.ValidateAge(req.ChildAge); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if err := validation.ValidateAvatar(req.Avatar); err != nil {
		return nil, err
	}

	if s.badWords != nil {
		bad, err := s.badWords.ContainsBadWord(req.ChildName)
		if err != nil {
			return nil, fmt.Errorf("failed to check name: %w", err)
		}
		if bad {
			return nil, ErrInappropriateName
		}
	}

	taken, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           security.NewUserID(),
		ChildName:    req.ChildName,
		ChildAge:     req.ChildAge,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Avatar:       req.Avatar,
		Achievements: []string{},
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Msg("Registered new player")

	if s.email != nil {
		if err := s.email.SendWelcomeEmail(ctx, user.Email, user.ChildName); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to send welcome email")
		}
	}
	return user, nil
}

// Login checks credentials and issues a token
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	ids, err := s.userRepo.GetAchievementIDs(user.ID)
	if err != nil {
		return nil, "", err
	}
	user.Achievements = achievementTitles(ids)
	return user, token, nil
}

// Authenticate returns the user id a token was issued to
func (s *AuthService) Authenticate(token string) (string, error) {
	return s.tokens.Verify(token)
}

// achievementTitles converts stored achievement ids to display titles,
// dropping ids no longer in the catalog.
func achievementTitles(ids []string) []string {
	titles := make([]string, 0, len(ids))
	for _, id := range ids {
		if a, ok := achievements.Lookup(id); ok {
			titles = append(titles, a.Title)
		}
	}
	return titles
}
