package app

import (
	"context"

	"spacefun/internal/achievements"
	"spacefun/internal/models"
)

// AccountView is everything the account screen shows.
type AccountView struct {
	User         models.User
	Achievements []achievements.Status
	Next         *achievements.Achievement
}

// Account builds the account screen for the signed-in user.
func (a *App) Account() (AccountView, error) {
	u := a.CurrentUser()
	if u == nil {
		return AccountView{}, ErrNotSignedIn
	}
	view := AccountView{User: *u, Achievements: achievements.Progress(u.Score)}
	if next, ok := achievements.Next(u.Score); ok {
		view.Next = &next
	}
	return view, nil
}

// LeaderboardRow is one ranked leaderboard line.
type LeaderboardRow struct {
	Rank      int
	Medal     string
	ChildName string
	Score     int
	Avatar    string
}

var medals = []string{"🥇", "🥈", "🥉"}

// Leaderboard fetches and ranks the leaderboard.
func (a *App) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	if a.api == nil {
		return nil, nil
	}
	entries, err := a.api.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	return rankEntries(entries), nil
}

func rankEntries(entries []models.LeaderboardEntry) []LeaderboardRow {
	rows := make([]LeaderboardRow, len(entries))
	for i, e := range entries {
		rows[i] = LeaderboardRow{Rank: i + 1, ChildName: e.ChildName, Score: e.Score, Avatar: e.Avatar}
		if i < len(medals) {
			rows[i].Medal = medals[i]
		}
	}
	return rows
}
