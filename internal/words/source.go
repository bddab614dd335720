// Package words supplies puzzle words, either from the built-in catalog or
// from the remote word service.
package words

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"spacefun/internal/models"
)

var (
	ErrMissingGrade    = errors.New("grade mode requires a grade")
	ErrNoWordsForLevel = errors.New("no words for level")
	ErrWordFetchFailed = errors.New("word fetch failed")
)

// Mode selects how a word is chosen.
type Mode string

const (
	ModeDaily Mode = "daily"
	ModeGrade Mode = "grade"
)

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDaily, ModeGrade:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Source produces one word per call. gradeLabel is the UI label
// ("grade-2") and is only consulted in grade mode.
type Source interface {
	FetchWord(ctx context.Context, mode Mode, gradeLabel string) (models.WordRecord, error)
}

// CatalogSource picks words from the built-in catalog.
type CatalogSource struct {
	mu    sync.Mutex
	rng   *rand.Rand
	words []models.WordRecord
}

// NewCatalogSource returns a source over the built-in catalog. A nil rng is
// replaced by a time-seeded one.
func NewCatalogSource(rng *rand.Rand) *CatalogSource {
	return NewListSource(Catalog(), rng)
}

// NewListSource returns a catalog-style source over an explicit word list.
func NewListSource(list []models.WordRecord, rng *rand.Rand) *CatalogSource {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CatalogSource{rng: rng, words: list}
}

// FetchWord implements Source.
func (s *CatalogSource) FetchWord(ctx context.Context, mode Mode, gradeLabel string) (models.WordRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.WordRecord{}, err
	}

	pool := s.words
	if mode == ModeGrade {
		if gradeLabel == "" {
			return models.WordRecord{}, ErrMissingGrade
		}
		level := GradeToLevel(gradeLabel)
		pool = nil
		for _, w := range s.words {
			if w.Level == level {
				pool = append(pool, w)
			}
		}
		if len(pool) == 0 {
			return models.WordRecord{}, fmt.Errorf("%w: %s", ErrNoWordsForLevel, level)
		}
	}
	if len(pool) == 0 {
		return models.WordRecord{}, fmt.Errorf("%w: catalog is empty", ErrNoWordsForLevel)
	}

	s.mu.Lock()
	i := s.rng.Intn(len(pool))
	s.mu.Unlock()
	return pool[i], nil
}

// Fetcher is the remote word service. Implementations report a missing
// level by wrapping ErrNoWordsForLevel.
type Fetcher interface {
	DailyWord(ctx context.Context) (models.WordRecord, error)
	WordForLevel(ctx context.Context, level string) (models.WordRecord, error)
}

// RemoteSource fetches words from the word service. It never retries.
type RemoteSource struct {
	fetcher Fetcher
}

// NewRemoteSource wraps a Fetcher as a Source.
func NewRemoteSource(f Fetcher) *RemoteSource {
	return &RemoteSource{fetcher: f}
}

// FetchWord implements Source.
func (s *RemoteSource) FetchWord(ctx context.Context, mode Mode, gradeLabel string) (models.WordRecord, error) {
	var (
		rec models.WordRecord
		err error
	)
	switch mode {
	case ModeGrade:
		if gradeLabel == "" {
			return models.WordRecord{}, ErrMissingGrade
		}
		rec, err = s.fetcher.WordForLevel(ctx, GradeToLevel(gradeLabel))
	default:
		rec, err = s.fetcher.DailyWord(ctx)
	}
	if err != nil {
		if errors.Is(err, ErrNoWordsForLevel) {
			return models.WordRecord{}, err
		}
		return models.WordRecord{}, fmt.Errorf("%w: %v", ErrWordFetchFailed, err)
	}
	if err := rec.Validate(); err != nil {
		return models.WordRecord{}, fmt.Errorf("%w: %v", ErrWordFetchFailed, err)
	}
	return rec, nil
}
