package services

import (
  "context"
  "errors"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/repos"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

type SpotCreateRequest struct {
  Name               string    `json:"name" binding:"required"`
  Region             string    `json:"region"`
  SpotType           string    `json:"spot_type"`
  WaterFacilityType  string    `json:"water_facility_type"`
  Address            string    `json:"address"`
  Latitude           float64   `json:"latitude"`
  Longitude          float64   `json:"longitude"`
  MainFishSpecies    string    `json:"main_fish_species"`
  PhoneNumber        string    `json:"phone_number"`
}

type SpotService interface {
  Create(ctx context.Context, req *SpotCreateRequest) (*types.Spot, error)
  GetByID(ctx context.Context, spotID uuid.UUID) (*types.Spot, error)
  Search(ctx context.Context, search repos.SpotSearch) ([]*types.Spot, error)
}

type spotService struct {
  db        *gorm.DB
  log       *logger.Logger
  spotRepo  repos.SpotRepo
}

func NewSpotService(db *gorm.DB, log *logger.Logger, spotRepo repos.SpotRepo) SpotService {
  serviceLog := log.With("service", "SpotService")
  return &spotService{db: db, log: serviceLog, spotRepo: spotRepo}
}

func (ss *spotService) Create(ctx context.Context, req *SpotCreateRequest) (*types.Spot, error) {
  if req == nil || req.Name == "" {
    return nil, fmt.Errorf("spot name is required: %w", apperrors.ErrInvalidArgument)
  }
  spot := &types.Spot{
    Name:              req.Name,
    Region:            req.Region,
    SpotType:          req.SpotType,
    WaterFacilityType: req.WaterFacilityType,
    Address:           req.Address,
    Latitude:          req.Latitude,
    Longitude:         req.Longitude,
    MainFishSpecies:   req.MainFishSpecies,
    PhoneNumber:       req.PhoneNumber,
  }
  return ss.spotRepo.Create(ctx, nil, spot)
}

func (ss *spotService) GetByID(ctx context.Context, spotID uuid.UUID) (*types.Spot, error) {
  spot, err := ss.spotRepo.GetByID(ctx, nil, spotID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("spot not found: %w", apperrors.ErrNotFound)
    }
    return nil, err
  }
  return spot, nil
}

func (ss *spotService) Search(ctx context.Context, search repos.SpotSearch) ([]*types.Spot, error) {
  return ss.spotRepo.Search(ctx, nil, search)
}
