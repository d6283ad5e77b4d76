package scoring

// LevelInfo is the derived progression state for a cumulative score.
type LevelInfo struct {
  Level     int
  Progress  float64
}

// Level maps a cumulative score to a level and intra-level progress.
//
// Level boundaries:
//   level 1: 0-99
//   level 2: 100-299
//   level 3: 300-599
//   level 4: 600-999
//   level 5: 1000-1499
//   ...
//   level N starts at (N-1)*100 + (N-1)*(N-2)*50
//
// Progress is in [0,1): 0 exactly at a boundary. Negative scores clamp to 0.
func Level(totalScore int) LevelInfo {
  if totalScore < 0 {
    totalScore = 0
  }

  level := 1
  currentLevelMinScore := 0
  nextLevelMinScore := 100

  for totalScore >= nextLevelMinScore {
    level++
    currentLevelMinScore = nextLevelMinScore
    nextLevelMinScore = level*100 + level*(level-1)*50
  }

  levelScoreRange := nextLevelMinScore - currentLevelMinScore
  progress := float64(totalScore-currentLevelMinScore) / float64(levelScoreRange)

  return LevelInfo{Level: level, Progress: progress}
}
