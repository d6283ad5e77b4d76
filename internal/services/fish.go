package services

import (
  "context"
  "errors"
  "fmt"
  "math"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/repos"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

type FishCreateRequest struct {
  Name          string    `json:"name" binding:"required"`
  AvgLength     float64   `json:"avg_length"`
  StdDeviation  float64   `json:"std_deviation"`
  RarityScore   int       `json:"rarity_score"`
}

// FishAverageScore is the community average for one species across every
// recorded catch, certified or not.
type FishAverageScore struct {
  FishID        uuid.UUID  `json:"fish_id"`
  FishName      string     `json:"fish_name"`
  AverageScore  float64    `json:"average_score"`
  CatchCount    int64      `json:"catch_count"`
}

type FishService interface {
  Create(ctx context.Context, req *FishCreateRequest) (*types.Fish, error)
  Update(ctx context.Context, fishID uuid.UUID, req *FishCreateRequest) (*types.Fish, error)
  Delete(ctx context.Context, fishID uuid.UUID) error
  GetByID(ctx context.Context, fishID uuid.UUID) (*types.Fish, error)
  GetByName(ctx context.Context, name string) (*types.Fish, error)
  GetAll(ctx context.Context) ([]*types.Fish, error)
  GetAverageScore(ctx context.Context, fishID uuid.UUID) (*FishAverageScore, error)
}

type fishService struct {
  db           *gorm.DB
  log          *logger.Logger
  fishRepo     repos.FishRepo
  fishLogRepo  repos.FishLogRepo
}

func NewFishService(
  db *gorm.DB,
  log *logger.Logger,
  fishRepo repos.FishRepo,
  fishLogRepo repos.FishLogRepo,
) FishService {
  serviceLog := log.With("service", "FishService")
  return &fishService{
    db:          db,
    log:         serviceLog,
    fishRepo:    fishRepo,
    fishLogRepo: fishLogRepo,
  }
}

func (fs *fishService) Create(ctx context.Context, req *FishCreateRequest) (*types.Fish, error) {
  if req == nil || req.Name == "" {
    return nil, fmt.Errorf("fish name is required: %w", apperrors.ErrInvalidArgument)
  }
  var fish *types.Fish
  err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    exists, err := fs.fishRepo.NameExists(ctx, tx, req.Name)
    if err != nil {
      return fmt.Errorf("failed to check fish name: %w", err)
    }
    if exists {
      return fmt.Errorf("fish name already registered: %w", apperrors.ErrConflict)
    }
    created, err := fs.fishRepo.Create(ctx, tx, &types.Fish{
      Name:         req.Name,
      AvgLength:    req.AvgLength,
      StdDeviation: req.StdDeviation,
      RarityScore:  req.RarityScore,
    })
    if err != nil {
      return fmt.Errorf("failed to create fish: %w", err)
    }
    fish = created
    return nil
  })
  if err != nil {
    return nil, err
  }
  fs.log.Info("Fish registered", "fish_id", fish.ID, "name", fish.Name)
  return fish, nil
}

func (fs *fishService) Update(ctx context.Context, fishID uuid.UUID, req *FishCreateRequest) (*types.Fish, error) {
  if req == nil || req.Name == "" {
    return nil, fmt.Errorf("fish name is required: %w", apperrors.ErrInvalidArgument)
  }
  var fish *types.Fish
  err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, err := fs.fishRepo.GetByID(ctx, tx, fishID)
    if err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return fmt.Errorf("fish not found: %w", apperrors.ErrNotFound)
      }
      return fmt.Errorf("failed to load fish: %w", err)
    }
    if req.Name != existing.Name {
      exists, err := fs.fishRepo.NameExists(ctx, tx, req.Name)
      if err != nil {
        return fmt.Errorf("failed to check fish name: %w", err)
      }
      if exists {
        return fmt.Errorf("fish name already registered: %w", apperrors.ErrConflict)
      }
    }
    existing.Name = req.Name
    existing.AvgLength = req.AvgLength
    existing.StdDeviation = req.StdDeviation
    existing.RarityScore = req.RarityScore
    if err := fs.fishRepo.Save(ctx, tx, existing); err != nil {
      return fmt.Errorf("failed to save fish: %w", err)
    }
    fish = existing
    return nil
  })
  if err != nil {
    return nil, err
  }
  return fish, nil
}

func (fs *fishService) Delete(ctx context.Context, fishID uuid.UUID) error {
  return fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := fs.fishRepo.GetByID(ctx, tx, fishID); err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return fmt.Errorf("fish not found: %w", apperrors.ErrNotFound)
      }
      return fmt.Errorf("failed to load fish: %w", err)
    }
    if err := fs.fishRepo.Delete(ctx, tx, fishID); err != nil {
      return fmt.Errorf("failed to delete fish: %w", err)
    }
    return nil
  })
}

func (fs *fishService) GetByID(ctx context.Context, fishID uuid.UUID) (*types.Fish, error) {
  fish, err := fs.fishRepo.GetByID(ctx, nil, fishID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("fish not found: %w", apperrors.ErrNotFound)
    }
    return nil, err
  }
  return fish, nil
}

func (fs *fishService) GetByName(ctx context.Context, name string) (*types.Fish, error) {
  fish, err := fs.fishRepo.GetByName(ctx, nil, name)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("fish not found: %w", apperrors.ErrNotFound)
    }
    return nil, err
  }
  return fish, nil
}

func (fs *fishService) GetAll(ctx context.Context) ([]*types.Fish, error) {
  return fs.fishRepo.GetAll(ctx, nil)
}

func (fs *fishService) GetAverageScore(ctx context.Context, fishID uuid.UUID) (*FishAverageScore, error) {
  fish, err := fs.GetByID(ctx, fishID)
  if err != nil {
    return nil, err
  }
  avg, count, err := fs.fishLogRepo.AverageScoreByFish(ctx, nil, fishID)
  if err != nil {
    return nil, fmt.Errorf("failed to compute average score: %w", err)
  }
  return &FishAverageScore{
    FishID:       fish.ID,
    FishName:     fish.Name,
    AverageScore: math.Round(avg*100) / 100,
    CatchCount:   count,
  }, nil
}
