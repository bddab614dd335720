package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"spacefun/internal/models"
	"spacefun/internal/repository"
	"spacefun/internal/words"
)

var ErrUnknownLevel = errors.New("unknown level")

// WordService picks puzzle words from the word table
type WordService struct {
	repo *repository.WordRepository
	salt string
	now  func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewWordService creates a word service. salt keys the daily word choice.
func NewWordService(repo *repository.WordRepository, salt string) *WordService {
	return &WordService{
		repo: repo,
		salt: salt,
		now:  time.Now,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SeedCatalog adds any built-in catalog words missing from the table
func (s *WordService) SeedCatalog() error {
	added, err := s.repo.SeedWords(words.Catalog())
	if err != nil {
		return fmt.Errorf("failed to seed words: %w", err)
	}
	if added > 0 {
		log.Info().Int("count", added).Msg("Seeded word catalog")
	}
	return nil
}

// Daily returns the word of the day. Every caller gets the same word until
// the UTC date changes.
func (s *WordService) Daily() (*models.WordRecord, error) {
	n, err := s.repo.CountWords()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, words.ErrNoWordsForLevel
	}
	w, err := s.repo.GetWordAt(words.DailyIndex(s.now(), s.salt, n))
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, words.ErrNoWordsForLevel
	}
	return w, nil
}

// RandomForLevel returns a random word tagged with level
func (s *WordService) RandomForLevel(level string) (*models.WordRecord, error) {
	if !models.IsLevel(level) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, level)
	}
	list, err := s.repo.GetWordsByLevel(level)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s", words.ErrNoWordsForLevel, level)
	}

	s.mu.Lock()
	i := s.rng.Intn(len(list))
	s.mu.Unlock()
	return &list[i], nil
}
