package models

import (
	"testing"
)

func TestWordRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		word    WordRecord
		wantErr bool
	}{
		{
			name:    "valid word",
			word:    WordRecord{Word: "cat", Hint: "A small pet", Level: LevelPreK},
			wantErr: false,
		},
		{
			name:    "empty word",
			word:    WordRecord{Word: "", Level: LevelPreK},
			wantErr: true,
		},
		{
			name:    "uppercase letters",
			word:    WordRecord{Word: "Cat", Level: LevelPreK},
			wantErr: true,
		},
		{
			name:    "unknown level",
			word:    WordRecord{Word: "cat", Level: "7th"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.word.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name:    "valid user",
			user:    User{ID: "u1", ChildName: "Lily", Score: 3},
			wantErr: false,
		},
		{
			name:    "missing id",
			user:    User{ChildName: "Lily"},
			wantErr: true,
		},
		{
			name:    "negative score",
			user:    User{ID: "u1", ChildName: "Lily", Score: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserHasAchievement(t *testing.T) {
	user := User{Achievements: []string{"Mercury Explorer"}}

	if !user.HasAchievement("Mercury Explorer") {
		t.Error("expected Mercury Explorer to be held")
	}
	if user.HasAchievement("Venus Voyager") {
		t.Error("did not expect Venus Voyager to be held")
	}
}
