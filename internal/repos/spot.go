package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

// SpotSearch holds the optional filters for the spot directory search.
type SpotSearch struct {
  Region    string
  SpotType  string
  Keyword   string
}

type SpotRepo interface {
  Create(ctx context.Context, tx *gorm.DB, spot *types.Spot) (*types.Spot, error)
  GetByID(ctx context.Context, tx *gorm.DB, spotID uuid.UUID) (*types.Spot, error)
  Search(ctx context.Context, tx *gorm.DB, search SpotSearch) ([]*types.Spot, error)
}

type spotRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSpotRepo(db *gorm.DB, baseLog *logger.Logger) SpotRepo {
  repoLog := baseLog.With("repo", "SpotRepo")
  return &spotRepo{db: db, log: repoLog}
}

func (sr *spotRepo) Create(ctx context.Context, tx *gorm.DB, spot *types.Spot) (*types.Spot, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  if err := transaction.WithContext(ctx).Create(spot).Error; err != nil {
    return nil, err
  }
  return spot, nil
}

func (sr *spotRepo) GetByID(ctx context.Context, tx *gorm.DB, spotID uuid.UUID) (*types.Spot, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var result types.Spot
  if err := transaction.WithContext(ctx).
    Where("id = ?", spotID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (sr *spotRepo) Search(ctx context.Context, tx *gorm.DB, search SpotSearch) ([]*types.Spot, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  query := transaction.WithContext(ctx).Order("name asc")
  if search.Region != "" {
    query = query.Where("region = ?", search.Region)
  }
  if search.SpotType != "" {
    query = query.Where("spot_type = ?", search.SpotType)
  }
  if search.Keyword != "" {
    query = query.Where("name LIKE ?", "%"+search.Keyword+"%")
  }
  var results []*types.Spot
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
