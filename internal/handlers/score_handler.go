package handlers

import (
	"errors"
	"net/http"

	"spacefun/internal/achievements"
	"spacefun/internal/models"
	"spacefun/internal/service"
)

// ScoreHandler handles score reports, profiles and the leaderboard
type ScoreHandler struct {
	scoreService *service.ScoreService
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

type updateResponse struct {
	Message         string   `json:"message"`
	Score           int      `json:"score"`
	NewAchievements []string `json:"newAchievements"`
}

// Update adds a score delta to a user. A bearer token, when present, must
// belong to the same user.
func (h *ScoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ScoreUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidBody, "", nil)
		return
	}
	if req.UserID == "" {
		respondWithError(w, http.StatusBadRequest, ErrMissingUserID, "", nil)
		return
	}
	if caller := GetUserIDFromContext(r.Context()); caller != "" && caller != req.UserID {
		respondWithError(w, http.StatusForbidden, ErrForbidden, "Score report for another user", service.ErrTokenMismatch)
		return
	}

	score, unlocked, err := h.scoreService.AddScore(r.Context(), req.UserID, req.Score)
	switch {
	case errors.Is(err, service.ErrInvalidDelta):
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	case errors.Is(err, service.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, ErrUserNotFound, "", nil)
		return
	case err != nil:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to update score", err)
		return
	}

	respondJSON(w, http.StatusOK, updateResponse{
		Message:         MsgScoreUpdated,
		Score:           score,
		NewAchievements: achievements.Titles(unlocked),
	})
}

// UserInfo returns the profile named by the userId query parameter
func (h *ScoreHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, ErrMissingUserID, "", nil)
		return
	}

	user, err := h.scoreService.GetUser(userID)
	if errors.Is(err, service.ErrUserNotFound) {
		respondWithError(w, http.StatusNotFound, ErrUserNotFound, "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load user", err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Leaderboard returns the top players by score
func (h *ScoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scoreService.Leaderboard()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load leaderboard", err)
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}
