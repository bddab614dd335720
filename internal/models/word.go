package models

import (
	"errors"
	"fmt"
)

// Level tags used by the word catalog, lowest grade first.
const (
	LevelPreK = "prek"
	LevelK    = "k"
	Level1st  = "1st"
	Level2nd  = "2nd"
	Level3rd  = "3rd"
	Level4th  = "4th"
	Level5th  = "5th"
	Level6th  = "6th"
)

// Levels lists every known level tag in grade order.
var Levels = []string{LevelPreK, LevelK, Level1st, Level2nd, Level3rd, Level4th, Level5th, Level6th}

// WordRecord is one puzzle word with its hint and level tag.
type WordRecord struct {
	Word  string `json:"word"`
	Hint  string `json:"hint"`
	Level string `json:"level"`
}

// Validate checks the record is a playable word.
func (w WordRecord) Validate() error {
	if w.Word == "" {
		return errors.New("word is required")
	}
	for _, r := range w.Word {
		if r < 'a' || r > 'z' {
			return fmt.Errorf("word %q must be lowercase letters", w.Word)
		}
	}
	if !IsLevel(w.Level) {
		return fmt.Errorf("unknown level %q", w.Level)
	}
	return nil
}

// IsLevel reports whether tag is a known level tag.
func IsLevel(tag string) bool {
	for _, l := range Levels {
		if l == tag {
			return true
		}
	}
	return false
}
