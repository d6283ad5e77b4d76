package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

// RankingCollection is the verified-only leaderboard aggregate for one
// (user, fish) pair. It is recomputed from certified fish logs and never
// written directly by handlers.
type RankingCollection struct {
  ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID          uuid.UUID   `gorm:"uniqueIndex:idx_ranking_collection_user_fish;not null;column:user_id" json:"user_id"`
  User            *User       `gorm:"foreignKey:UserID;references:ID" json:"-"`
  FishID          uuid.UUID   `gorm:"uniqueIndex:idx_ranking_collection_user_fish;not null;column:fish_id" json:"fish_id"`
  Fish            *Fish       `gorm:"foreignKey:FishID;references:ID" json:"-"`
  HighestScore    int         `gorm:"not null;default:0;index;column:highest_score" json:"highest_score"`
  HighestLength   float64     `gorm:"not null;default:0;column:highest_length" json:"highest_length"`
  TotalScore      int         `gorm:"not null;default:0;index;column:total_score" json:"total_score"`
  CatchCount      int         `gorm:"not null;default:0;column:catch_count" json:"catch_count"`
  CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

func (RankingCollection) TableName() string {
  return "ranking_collection"
}

func (rc *RankingCollection) BeforeCreate(tx *gorm.DB) error {
  if rc.ID == uuid.Nil {
    rc.ID = uuid.New()
  }
  return nil
}
