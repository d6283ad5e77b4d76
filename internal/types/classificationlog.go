package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

// ClassificationLog records every prediction attempt, logged-in or not.
// Confidence is stored as a percentage (0-100, two decimals). Feedback fields
// only ever gain values; corrections are kept in
// ClassificationCorrectionHistory.
type ClassificationLog struct {
  ID                     uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
  UserID                 *uuid.UUID   `gorm:"index;column:user_id" json:"user_id,omitempty"`
  User                   *User        `gorm:"foreignKey:UserID;references:ID" json:"-"`
  PredictedFishName      string       `gorm:"column:predicted_fish_name" json:"predicted_fish_name"`
  Confidence             float64      `gorm:"type:decimal(5,2);column:confidence" json:"confidence"`
  IsFishDetected         bool         `gorm:"not null;default:false;column:is_fish_detected" json:"is_fish_detected"`
  ImagePath              string       `gorm:"size:500;column:image_path" json:"image_path,omitempty"`
  OriginalFilename       string       `gorm:"column:original_filename" json:"original_filename,omitempty"`
  ClassificationDate     time.Time    `gorm:"not null;column:classification_date" json:"classification_date"`
  UserCorrectedFishName  *string      `gorm:"column:user_corrected_fish_name" json:"user_corrected_fish_name,omitempty"`
  IsCorrect              *bool        `gorm:"column:is_correct" json:"is_correct,omitempty"`
  UserFeedbackDate       *time.Time   `gorm:"column:user_feedback_date" json:"user_feedback_date,omitempty"`
  FishLogID              *uuid.UUID   `gorm:"column:fish_log_id" json:"fish_log_id,omitempty"`
  FishLog                *FishLog     `gorm:"foreignKey:FishLogID;references:ID" json:"-"`
  CreatedAt              time.Time    `gorm:"not null" json:"created_at"`
  UpdatedAt              time.Time    `gorm:"not null" json:"updated_at"`
}

func (ClassificationLog) TableName() string {
  return "classification_log"
}

func (cl *ClassificationLog) BeforeCreate(tx *gorm.DB) error {
  if cl.ID == uuid.Nil {
    cl.ID = uuid.New()
  }
  return nil
}

// ClassificationCorrectionHistory is the append-only trail of species
// corrections applied to a classification log.
type ClassificationCorrectionHistory struct {
  ID                    uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
  ClassificationLogID   uuid.UUID           `gorm:"index;not null;column:classification_log_id" json:"classification_log_id"`
  ClassificationLog     *ClassificationLog  `gorm:"foreignKey:ClassificationLogID;references:ID" json:"-"`
  OldFishName           string              `gorm:"column:old_fish_name" json:"old_fish_name"`
  NewFishName           string              `gorm:"column:new_fish_name" json:"new_fish_name"`
  CorrectionReason      string              `gorm:"column:correction_reason" json:"correction_reason"`
  CreatedAt             time.Time           `gorm:"not null" json:"created_at"`
}

func (ClassificationCorrectionHistory) TableName() string {
  return "classification_correction_history"
}

func (cch *ClassificationCorrectionHistory) BeforeCreate(tx *gorm.DB) error {
  if cch.ID == uuid.Nil {
    cch.ID = uuid.New()
  }
  return nil
}

// ClassificationStorage is the durable copy kept only for predictions that
// cleared the species confidence threshold.
type ClassificationStorage struct {
  ID                 uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
  UserID             *uuid.UUID   `gorm:"index;column:user_id" json:"user_id,omitempty"`
  User               *User        `gorm:"foreignKey:UserID;references:ID" json:"-"`
  PredictedFishName  string       `gorm:"index;not null;column:predicted_fish_name" json:"predicted_fish_name"`
  Confidence         float64      `gorm:"type:decimal(5,2);not null;column:confidence" json:"confidence"`
  ImagePath          string       `gorm:"size:500;column:image_path" json:"image_path,omitempty"`
  OriginalFilename   string       `gorm:"column:original_filename" json:"original_filename,omitempty"`
  CreatedAt          time.Time    `gorm:"not null" json:"created_at"`
}

func (ClassificationStorage) TableName() string {
  return "classification_storage"
}

func (cs *ClassificationStorage) BeforeCreate(tx *gorm.DB) error {
  if cs.ID == uuid.Nil {
    cs.ID = uuid.New()
  }
  return nil
}
