package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

// Spot is one entry in the fishing-spot directory.
type Spot struct {
  ID                 uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Name               string      `gorm:"not null;column:name" json:"name"`
  Region             string      `gorm:"index;column:region" json:"region,omitempty"`
  SpotType           string      `gorm:"index;column:spot_type" json:"spot_type,omitempty"`
  WaterFacilityType  string      `gorm:"column:water_facility_type" json:"water_facility_type,omitempty"`
  Address            string      `gorm:"column:address" json:"address,omitempty"`
  Latitude           float64     `gorm:"column:latitude" json:"latitude,omitempty"`
  Longitude          float64     `gorm:"column:longitude" json:"longitude,omitempty"`
  MainFishSpecies    string      `gorm:"column:main_fish_species" json:"main_fish_species,omitempty"`
  PhoneNumber        string      `gorm:"column:phone_number" json:"phone_number,omitempty"`
  CreatedAt          time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt          time.Time   `gorm:"not null" json:"updated_at"`
}

func (Spot) TableName() string {
  return "spot"
}

func (s *Spot) BeforeCreate(tx *gorm.DB) error {
  if s.ID == uuid.Nil {
    s.ID = uuid.New()
  }
  return nil
}
