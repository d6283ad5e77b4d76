package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

type UserInfo struct {
  ID                    uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID                uuid.UUID   `gorm:"uniqueIndex;not null;column:user_id" json:"user_id"`
  User                  *User       `gorm:"foreignKey:UserID;references:ID" json:"-"`
  Name                  string      `gorm:"uniqueIndex;not null;column:name" json:"name"`
  Email                 string      `gorm:"column:email" json:"email,omitempty"`
  PhoneNumber           string      `gorm:"column:phone_number" json:"phone_number,omitempty"`
  TotalScore            int         `gorm:"not null;default:0;index;column:total_score" json:"total_score"`
  Level                 int         `gorm:"not null;default:1;column:level" json:"level"`
  CurrentLevelProgress  float64     `gorm:"not null;default:0;column:current_level_progress" json:"current_level_progress"`
  CreatedAt             time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt             time.Time   `gorm:"not null" json:"updated_at"`
}

func (UserInfo) TableName() string {
  return "user_info"
}

func (ui *UserInfo) BeforeCreate(tx *gorm.DB) error {
  if ui.ID == uuid.Nil {
    ui.ID = uuid.New()
  }
  return nil
}
