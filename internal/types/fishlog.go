package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

// FishLog is one recorded catch. Immutable after creation except for Certified.
type FishLog struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID      uuid.UUID   `gorm:"index;not null;column:user_id" json:"user_id"`
  User        *User       `gorm:"foreignKey:UserID;references:ID" json:"-"`
  FishID      uuid.UUID   `gorm:"index;not null;column:fish_id" json:"fish_id"`
  Fish        *Fish       `gorm:"foreignKey:FishID;references:ID" json:"fish,omitempty"`
  CollectAt   time.Time   `gorm:"not null;column:collect_at" json:"collect_at"`
  Length      float64     `gorm:"not null;column:length" json:"length"`
  Score       int         `gorm:"not null;column:score" json:"score"`
  Place       string      `gorm:"column:place" json:"place,omitempty"`
  Review      string      `gorm:"column:review" json:"review,omitempty"`
  ImgPath     string      `gorm:"column:img_path" json:"img_path,omitempty"`
  Certified   bool        `gorm:"not null;default:false;column:certified" json:"certified"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (FishLog) TableName() string {
  return "fish_log"
}

func (fl *FishLog) BeforeCreate(tx *gorm.DB) error {
  if fl.ID == uuid.Nil {
    fl.ID = uuid.New()
  }
  return nil
}
