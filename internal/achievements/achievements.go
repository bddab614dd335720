// Package achievements holds the static milestone catalog. Unlocked state is
// always derived from a score and never stored on its own.
package achievements

// Achievement is a named milestone reached at a cumulative score.
type Achievement struct {
	ID            string `json:"id"`
	Icon          string `json:"icon"`
	Title         string `json:"title"`
	RequiredScore int    `json:"requiredScore"`
	Description   string `json:"description"`
}

// Status pairs an achievement with whether a given score unlocks it.
type Status struct {
	Achievement
	Unlocked bool `json:"unlocked"`
}

// catalog is ordered by ascending RequiredScore.
var catalog = []Achievement{
	{ID: "mercury-explorer", Icon: "🌑", Title: "Mercury Explorer", RequiredScore: 1,
		Description: "Like the swift Mercury, you've taken your first steps in solving games!"},
	{ID: "venus-voyager", Icon: "🌟", Title: "Venus Voyager", RequiredScore: 10,
		Description: "Your problem-solving is as radiant as Venus in the night sky. Great work on your games!"},
	{ID: "earth-defender", Icon: "🌍", Title: "Earth Defender", RequiredScore: 25,
		Description: "You've defended Earth from the challenges of games. Keep it up!"},
	{ID: "mars-adventurer", Icon: "💫", Title: "Mars Adventurer", RequiredScore: 50,
		Description: "Your adventurous spirit has led you to conquer the challenges of Mars!"},
	{ID: "jupiter-giant", Icon: "🛸", Title: "Jupiter Giant", RequiredScore: 100,
		Description: "Like Jupiter, your skills in games are gigantic!"},
	{ID: "saturn-strategist", Icon: "🪐", Title: "Saturn Strategist", RequiredScore: 150,
		Description: "Your strategic mind has helped you solve the rings of challenges!"},
	{ID: "uranus-innovator", Icon: "🌌", Title: "Uranus Innovator", RequiredScore: 200,
		Description: "Your innovative solutions have made you a master of games!"},
	{ID: "neptune-navigator", Icon: "🌠", Title: "Neptune Navigator", RequiredScore: 250,
		Description: "You're navigating the deep oceans of games, just like Neptune rules the seas!"},
	{ID: "solar-system-champion", Icon: "🏆", Title: "Solar System Champion", RequiredScore: 300,
		Description: "Congratulations! You've obtained 300 points and earned your place as a true Game Master!"},
}

// Catalog returns a copy of every achievement in ascending threshold order.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Unlocked returns the achievements whose threshold score has reached.
func Unlocked(score int) []Achievement {
	var out []Achievement
	for _, a := range catalog {
		if score >= a.RequiredScore {
			out = append(out, a)
		}
	}
	return out
}

// NewlyUnlocked returns the achievements crossed when moving from before to after.
func NewlyUnlocked(before, after int) []Achievement {
	var out []Achievement
	for _, a := range catalog {
		if before < a.RequiredScore && after >= a.RequiredScore {
			out = append(out, a)
		}
	}
	return out
}

// Progress lists the whole catalog with unlocked flags for score.
func Progress(score int) []Status {
	out := make([]Status, len(catalog))
	for i, a := range catalog {
		out[i] = Status{Achievement: a, Unlocked: score >= a.RequiredScore}
	}
	return out
}

// Lookup finds an achievement by id or title.
func Lookup(key string) (Achievement, bool) {
	for _, a := range catalog {
		if a.ID == key || a.Title == key {
			return a, true
		}
	}
	return Achievement{}, false
}

// Titles returns the titles of as, in order.
func Titles(as []Achievement) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Title
	}
	return out
}

// Next returns the first achievement score has not reached yet.
func Next(score int) (Achievement, bool) {
	for _, a := range catalog {
		if score < a.RequiredScore {
			return a, true
		}
	}
	return Achievement{}, false
}
