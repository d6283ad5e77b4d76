package scoring

import (
  "math"
  "testing"
)

func TestLevel(t *testing.T) {
  cases := []struct {
    name          string
    totalScore    int
    wantLevel     int
    wantProgress  float64
  }{
    {name: "zero", totalScore: 0, wantLevel: 1, wantProgress: 0},
    {name: "just_below_level_2", totalScore: 99, wantLevel: 1, wantProgress: 0.99},
    {name: "level_2_boundary", totalScore: 100, wantLevel: 2, wantProgress: 0},
    {name: "just_below_level_3", totalScore: 299, wantLevel: 2, wantProgress: 0.995},
    {name: "level_3_boundary", totalScore: 300, wantLevel: 3, wantProgress: 0},
    {name: "level_4_boundary", totalScore: 600, wantLevel: 4, wantProgress: 0},
    {name: "level_5_boundary", totalScore: 1000, wantLevel: 5, wantProgress: 0},
    {name: "mid_level_1", totalScore: 55, wantLevel: 1, wantProgress: 0.55},
    {name: "mid_level_2", totalScore: 110, wantLevel: 2, wantProgress: 0.05},
    {name: "negative_clamped", totalScore: -40, wantLevel: 1, wantProgress: 0},
  }

  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      got := Level(tc.totalScore)
      if got.Level != tc.wantLevel {
        t.Fatalf("Level(%d).Level=%d, want %d", tc.totalScore, got.Level, tc.wantLevel)
      }
      if math.Abs(got.Progress-tc.wantProgress) > 1e-9 {
        t.Fatalf("Level(%d).Progress=%v, want %v", tc.totalScore, got.Progress, tc.wantProgress)
      }
    })
  }
}

func TestLevelBoundariesRoundTrip(t *testing.T) {
  // The boundary of every level must map back to that level with progress 0.
  boundary := 0
  for level := 1; level <= 30; level++ {
    if level > 1 {
      boundary = (level-1)*100 + (level-1)*(level-2)*50
    }
    got := Level(boundary)
    if got.Level != level {
      t.Fatalf("Level(%d).Level=%d, want %d", boundary, got.Level, level)
    }
    if got.Progress != 0 {
      t.Fatalf("Level(%d).Progress=%v, want 0", boundary, got.Progress)
    }
  }
}

func TestLevelProgressRange(t *testing.T) {
  for score := 0; score < 5000; score += 7 {
    got := Level(score)
    if got.Progress < 0 || got.Progress >= 1 {
      t.Fatalf("Level(%d).Progress=%v out of [0,1)", score, got.Progress)
    }
  }
}
