package question

// Difficulty levels accepted by the submission form.
const (
	LevelEasy   = "easy"
	LevelMedium = "medium"
	LevelHard   = "hard"
	LevelExpert = "expert"
)

// DefaultWave is used for any level outside the known set.
const DefaultWave = 1

var levelWaves = map[string]int{
	LevelEasy:   1,
	LevelMedium: 2,
	LevelHard:   3,
	LevelExpert: 4,
}

var waveLevels = map[int]string{
	1: LevelEasy,
	2: LevelMedium,
	3: LevelHard,
	4: LevelExpert,
}

// WaveForLevel maps a difficulty level to its wave number. Matching is exact;
// unknown levels map to DefaultWave.
func WaveForLevel(level string) int {
	if wave, ok := levelWaves[level]; ok {
		return wave
	}
	return DefaultWave
}

// LevelForWave maps a wave number back to its difficulty level. Unknown waves
// map to LevelEasy.
func LevelForWave(wave int) string {
	if level, ok := waveLevels[wave]; ok {
		return level
	}
	return LevelEasy
}

// Levels lists the known levels from easiest to hardest.
func Levels() []string {
	return []string{LevelEasy, LevelMedium, LevelHard, LevelExpert}
}
