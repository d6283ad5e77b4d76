package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

type Board struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID      uuid.UUID   `gorm:"index;not null;column:user_id" json:"user_id"`
  User        *User       `gorm:"foreignKey:UserID;references:ID" json:"-"`
  Title       string      `gorm:"not null;column:title" json:"title"`
  Content     string      `gorm:"type:text;column:content" json:"content"`
  Category    string      `gorm:"column:category" json:"category,omitempty"`
  ImgPath     string      `gorm:"column:img_path" json:"img_path,omitempty"`
  ViewCount   int         `gorm:"not null;default:0;column:view_count" json:"view_count"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (Board) TableName() string {
  return "board"
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
  if b.ID == uuid.Nil {
    b.ID = uuid.New()
  }
  return nil
}

type Comment struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  BoardID     uuid.UUID   `gorm:"index;not null;column:board_id" json:"board_id"`
  Board       *Board      `gorm:"foreignKey:BoardID;references:ID" json:"-"`
  UserID      uuid.UUID   `gorm:"index;not null;column:user_id" json:"user_id"`
  User        *User       `gorm:"foreignKey:UserID;references:ID" json:"-"`
  Content     string      `gorm:"type:text;not null;column:content" json:"content"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (Comment) TableName() string {
  return "comment"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
  if c.ID == uuid.Nil {
    c.ID = uuid.New()
  }
  return nil
}
