package models

import (
	"errors"
	"time"
)

// User is a child player account
type User struct {
	ID           string    `json:"userId"`
	ChildName    string    `json:"childName"`
	ChildAge     int       `json:"childAge"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	Score        int       `json:"score"`
	Achievements []string  `json:"achievements"` // achievement titles
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate checks the fields a client needs to render the account screen.
func (u User) Validate() error {
	if u.ID == "" {
		return errors.New("userId is required")
	}
	if u.ChildName == "" {
		return errors.New("childName is required")
	}
	if u.Score < 0 {
		return errors.New("score must not be negative")
	}
	return nil
}

// HasAchievement reports whether the user holds the achievement title
func (u User) HasAchievement(title string) bool {
	for _, a := range u.Achievements {
		if a == title {
			return true
		}
	}
	return false
}

// LeaderboardEntry is one row of the public leaderboard
type LeaderboardEntry struct {
	ChildName string `json:"childName"`
	Score     int    `json:"score"`
	Avatar    string `json:"avatar"`
}

// ScoreUpdate is the body of a score report; Score is a delta.
type ScoreUpdate struct {
	UserID string `json:"userId"`
	Score  int    `json:"score"`
}

// RegisterRequest is the sign-up form
type RegisterRequest struct {
	ChildName string `json:"childName"`
	ChildAge  int    `json:"childAge"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Avatar    string `json:"avatar"`
}

// LoginRequest is the login form
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// MessageResponse carries a human-readable outcome
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
