package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

const (
  RoleUser  = "user"
  RoleAdmin = "admin"
)

type User struct {
  ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  LoginID         string      `gorm:"uniqueIndex;not null;column:login_id" json:"login_id"`
  Password        string      `gorm:"column:password" json:"-"`
  Role            string      `gorm:"not null;default:user;column:role" json:"role"`
  SocialProvider  string      `gorm:"column:social_provider" json:"social_provider,omitempty"`
  CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
  if u.ID == uuid.Nil {
    u.ID = uuid.New()
  }
  return nil
}
