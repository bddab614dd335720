package game

import (
	"math/rand"
	"strings"

	"spacefun/internal/models"
)

// Shuffle permutes letters in place with Fisher-Yates: for i from the last
// index down to 1, swap letters[i] with letters[j] for uniform j in [0, i].
func Shuffle(letters []rune, rng *rand.Rand) {
	for i := len(letters) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		letters[i], letters[j] = letters[j], letters[i]
	}
}

// Session is the puzzle state for one word. Tiles are identified by index,
// so repeated letters are distinct tiles.
type Session struct {
	Word      models.WordRecord
	Tiles     []rune
	Answer    []rune // 0 marks an empty slot
	used      []bool
	Completed bool
}

// NewSession shuffles the letters of w into a fresh session.
func NewSession(w models.WordRecord, rng *rand.Rand) *Session {
	tiles := []rune(w.Word)
	Shuffle(tiles, rng)
	return &Session{
		Word:   w,
		Tiles:  tiles,
		Answer: make([]rune, len(tiles)),
		used:   make([]bool, len(tiles)),
	}
}

// Place puts tile i into the first empty answer slot. It reports false when
// i is out of range, already used, or the answer is full.
func (s *Session) Place(i int) bool {
	if i < 0 || i >= len(s.Tiles) || s.used[i] {
		return false
	}
	for slot, r := range s.Answer {
		if r == 0 {
			s.Answer[slot] = s.Tiles[i]
			s.used[i] = true
			return true
		}
	}
	return false
}

// Reset empties the answer and frees every tile. Word and tile order stay.
func (s *Session) Reset() {
	for i := range s.Answer {
		s.Answer[i] = 0
		s.used[i] = false
	}
}

// Used reports whether tile i has been placed.
func (s *Session) Used(i int) bool {
	return i >= 0 && i < len(s.used) && s.used[i]
}

// UsedCount returns how many tiles are placed.
func (s *Session) UsedCount() int {
	n := 0
	for _, u := range s.used {
		if u {
			n++
		}
	}
	return n
}

// Guess joins the filled answer slots.
func (s *Session) Guess() string {
	var b strings.Builder
	for _, r := range s.Answer {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Matches compares the guess to the word ignoring case.
func (s *Session) Matches() bool {
	return strings.EqualFold(s.Guess(), s.Word.Word)
}
