package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

// Fish is one encyclopedia species. AvgLength and StdDeviation describe the
// length distribution used by the scorer; RarityScore is the base reward.
type Fish struct {
  ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Name          string      `gorm:"uniqueIndex;not null;column:name" json:"name"`
  AvgLength     float64     `gorm:"not null;column:avg_length" json:"avg_length"`
  StdDeviation  float64     `gorm:"not null;column:std_deviation" json:"std_deviation"`
  RarityScore   int         `gorm:"not null;column:rarity_score" json:"rarity_score"`
  CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

func (Fish) TableName() string {
  return "fish"
}

func (f *Fish) BeforeCreate(tx *gorm.DB) error {
  if f.ID == uuid.Nil {
    f.ID = uuid.New()
  }
  return nil
}
