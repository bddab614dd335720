package words

import "spacefun/internal/models"

// catalog is the built-in word list. The pre-k entries are the game's
// original set; the other levels give every grade something to play.
var catalog = []models.WordRecord{
	{Word: "and", Hint: "Used to connect words or phrases", Level: models.LevelPreK},
	{Word: "away", Hint: "At a distance from a place or person", Level: models.LevelPreK},
	{Word: "big", Hint: "Large in size", Level: models.LevelPreK},
	{Word: "cat", Hint: "A small domesticated carnivorous mammal", Level: models.LevelPreK},
	{Word: "dog", Hint: "A domesticated carnivorous mammal, often kept as a pet", Level: models.LevelPreK},
	{Word: "sun", Hint: "The star at the center of our solar system", Level: models.LevelPreK},
	{Word: "book", Hint: "A set of written, printed, or blank pages", Level: models.LevelPreK},
	{Word: "tree", Hint: "A woody perennial plant, typically having a single stem or trunk", Level: models.LevelPreK},
	{Word: "fish", Hint: "A limbless cold-blooded vertebrate animal with gills", Level: models.LevelPreK},
	{Word: "moon", Hint: "The natural satellite of the Earth", Level: models.LevelPreK},
	{Word: "star", Hint: "A luminous point in the night sky", Level: models.LevelPreK},
	{Word: "ball", Hint: "A spherical object used in games and sports", Level: models.LevelPreK},
	{Word: "bird", Hint: "A warm-blooded egg-laying vertebrate animal with wings", Level: models.LevelPreK},

	{Word: "red", Hint: "The color of a ripe strawberry", Level: models.LevelK},
	{Word: "jump", Hint: "To push yourself up off the ground", Level: models.LevelK},
	{Word: "home", Hint: "The place where you live", Level: models.LevelK},
	{Word: "play", Hint: "What you do with toys and friends", Level: models.LevelK},

	{Word: "rocket", Hint: "A vehicle that flies into space", Level: models.Level1st},
	{Word: "green", Hint: "The color of grass", Level: models.Level1st},
	{Word: "friend", Hint: "Someone you like to spend time with", Level: models.Level1st},

	{Word: "planet", Hint: "A large world that travels around a star", Level: models.Level2nd},
	{Word: "orbit", Hint: "The curved path one object takes around another", Level: models.Level2nd},
	{Word: "comet", Hint: "An icy body with a glowing tail", Level: models.Level2nd},

	{Word: "gravity", Hint: "The force that pulls things toward the ground", Level: models.Level3rd},
	{Word: "crater", Hint: "A bowl-shaped hole on the surface of the Moon", Level: models.Level3rd},
	{Word: "meteor", Hint: "A space rock that burns up in the sky", Level: models.Level3rd},

	{Word: "galaxy", Hint: "A huge group of stars held together by gravity", Level: models.Level4th},
	{Word: "asteroid", Hint: "A small rocky body that orbits the Sun", Level: models.Level4th},
	{Word: "telescope", Hint: "A tool that makes faraway things look closer", Level: models.Level4th},

	{Word: "astronaut", Hint: "A person trained to travel in space", Level: models.Level5th},
	{Word: "satellite", Hint: "An object that circles a planet", Level: models.Level5th},
	{Word: "universe", Hint: "Everything that exists, including all of space", Level: models.Level5th},

	{Word: "atmosphere", Hint: "The layer of gases surrounding a planet", Level: models.Level6th},
	{Word: "constellation", Hint: "A group of stars that forms a picture", Level: models.Level6th},
	{Word: "observatory", Hint: "A building with telescopes for watching the sky", Level: models.Level6th},
}

// Catalog returns a copy of the built-in word list.
func Catalog() []models.WordRecord {
	out := make([]models.WordRecord, len(catalog))
	copy(out, catalog)
	return out
}

// ForLevel returns the catalog words tagged with level.
func ForLevel(level string) []models.WordRecord {
	var out []models.WordRecord
	for _, w := range catalog {
		if w.Level == level {
			out = append(out, w)
		}
	}
	return out
}
