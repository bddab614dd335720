package handlers

import (
	"errors"
	"net/http"

	"spacefun/internal/service"
	"spacefun/internal/words"
)

// WordHandler serves puzzle words
type WordHandler struct {
	wordService *service.WordService
}

// NewWordHandler creates a new word handler
func NewWordHandler(wordService *service.WordService) *WordHandler {
	return &WordHandler{wordService: wordService}
}

// Daily returns the word of the day
func (h *WordHandler) Daily(w http.ResponseWriter, r *http.Request) {
	word, err := h.wordService.Daily()
	if errors.Is(err, words.ErrNoWordsForLevel) {
		respondWithError(w, http.StatusNotFound, ErrNoWordsAvailable, "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to pick daily word", err)
		return
	}
	respondJSON(w, http.StatusOK, word)
}

// ForLevel returns a random word tagged with the {level} path value
func (h *WordHandler) ForLevel(w http.ResponseWriter, r *http.Request) {
	word, err := h.wordService.RandomForLevel(r.PathValue("level"))
	if errors.Is(err, words.ErrNoWordsForLevel) || errors.Is(err, service.ErrUnknownLevel) {
		respondWithError(w, http.StatusNotFound, err.Error(), "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to pick word for level", err)
		return
	}
	respondJSON(w, http.StatusOK, word)
}
