package words

import "spacefun/internal/models"

var gradeLevels = map[string]string{
	"pre-k":   models.LevelPreK,
	"grade-k": models.LevelK,
	"grade-1": models.Level1st,
	"grade-2": models.Level2nd,
	"grade-3": models.Level3rd,
	"grade-4": models.Level4th,
	"grade-5": models.Level5th,
	"grade-6": models.Level6th,
}

// GradeToLevel maps a UI grade label such as "grade-3" to a catalog level
// tag. Unknown labels fall back to pre-k.
func GradeToLevel(label string) string {
	if level, ok := gradeLevels[label]; ok {
		return level
	}
	return models.LevelPreK
}

// GradeLabels lists the labels GradeToLevel understands, lowest first.
func GradeLabels() []string {
	return []string{"pre-k", "grade-k", "grade-1", "grade-2", "grade-3", "grade-4", "grade-5", "grade-6"}
}
