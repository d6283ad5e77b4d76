package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

// FishCollection is the per-user dex entry for one species. Aggregates here
// cover every catch of that species by that user, certified or not.
type FishCollection struct {
  ID                    uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID                uuid.UUID   `gorm:"uniqueIndex:idx_fish_collection_user_fish;not null;column:user_id" json:"user_id"`
  User                  *User       `gorm:"foreignKey:UserID;references:ID" json:"-"`
  FishID                uuid.UUID   `gorm:"uniqueIndex:idx_fish_collection_user_fish;not null;column:fish_id" json:"fish_id"`
  Fish                  *Fish       `gorm:"foreignKey:FishID;references:ID" json:"-"`
  IsCollect             bool        `gorm:"not null;default:false;column:is_collect" json:"is_collect"`
  CollectAt             *time.Time  `gorm:"column:collect_at" json:"collect_at,omitempty"`
  HighestScore          int         `gorm:"not null;default:0;index;column:highest_score" json:"highest_score"`
  HighestLength         float64     `gorm:"not null;default:0;column:highest_length" json:"highest_length"`
  TotalScore            int         `gorm:"not null;default:0;index;column:total_score" json:"total_score"`
  Level                 int         `gorm:"not null;default:1;column:level" json:"level"`
  CurrentLevelProgress  float64     `gorm:"not null;default:0;column:current_level_progress" json:"current_level_progress"`
  CreatedAt             time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt             time.Time   `gorm:"not null" json:"updated_at"`
}

func (FishCollection) TableName() string {
  return "fish_collection"
}

func (fc *FishCollection) BeforeCreate(tx *gorm.DB) error {
  if fc.ID == uuid.Nil {
    fc.ID = uuid.New()
  }
  return nil
}
