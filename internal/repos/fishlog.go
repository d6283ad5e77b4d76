package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

type FishLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, fishLog *types.FishLog) (*types.FishLog, error)
  Save(ctx context.Context, tx *gorm.DB, fishLog *types.FishLog) error
  GetByID(ctx context.Context, tx *gorm.DB, fishLogID uuid.UUID) (*types.FishLog, error)
  GetByIDAndUser(ctx context.Context, tx *gorm.DB, fishLogID, userID uuid.UUID) (*types.FishLog, error)
  GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FishLog, error)
  GetByUserAndFish(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) ([]*types.FishLog, error)
  GetCertifiedByUserAndFish(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) ([]*types.FishLog, error)
  AverageScoreByFish(ctx context.Context, tx *gorm.DB, fishID uuid.UUID) (float64, int64, error)
}

type fishLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewFishLogRepo(db *gorm.DB, baseLog *logger.Logger) FishLogRepo {
  repoLog := baseLog.With("repo", "FishLogRepo")
  return &fishLogRepo{db: db, log: repoLog}
}

func (flr *fishLogRepo) Create(ctx context.Context, tx *gorm.DB, fishLog *types.FishLog) (*types.FishLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = flr.db
  }
  if err := transaction.WithContext(ctx).Create(fishLog).Error; err != nil {
    return nil, err
  }
  return fishLog, nil
}

func (flr *fishLogRepo) Save(ctx context.Context, tx *gorm.DB, fishLog *types.FishLog) error {
  transaction := tx
  if transaction == nil {
    transaction = flr.db
  }
  return transaction.WithContext(ctx).Save(fishLog).Error
}

func (flr *fishLogRepo) GetByID(ctx context.Context, tx *gorm.DB, fishLogID uuid.UUID) (*types.FishLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = flr.db
  }
  var result types.FishLog
  if err := transaction.WithContext(ctx).
    Preload("Fish").
    Where("id = ?", fishLogID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (flr *fishLogRepo) GetByIDAndUser(ctx context.Context, tx *gorm.DB, fishLogID, userID uuid.UUID) (*types.FishLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = flr.db
  }
  var result types.FishLog
  if err := transaction.WithContext(ctx).
    Preload("Fish").
    Where("id = ? AND user_id = ?", fishLogID, userID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (flr *fishLogRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FishLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = flr.db
  }
  var results []*types.FishLog
  if err := transaction.WithContext(ctx).
    Preload("Fish").
    Where("user_id = ?", userID).
    Order("collect_at desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (flr *fishLogRepo) GetByUserAndFish(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) ([]*types.FishLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = flr.db
  }
  var results []*types.FishLog
  if err := transaction.WithContext(ctx).
    Preload("Fish").
    Where("user_id = ? AND fish_id = ?", userID, fishID).
    Order("collect_at desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (flr *fishLogRepo) GetCertifiedByUserAndFish(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) ([]*types.FishLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = flr.db
  }
  var results []*types.FishLog
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND fish_id = ? AND certified = ?", userID, fishID, true).
    Order("collect_at desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (flr *fishLogRepo) AverageScoreByFish(ctx context.Context, tx *gorm.DB, fishID uuid.UUID) (float64, int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = flr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.FishLog{}).
    Where("fish_id = ?", fishID).
    Count(&count).Error; err != nil {
    return 0, 0, err
  }
  if count == 0 {
    return 0, 0, nil
  }
  var avg float64
  if err := transaction.WithContext(ctx).
    Model(&types.FishLog{}).
    Where("fish_id = ?", fishID).
    Select("AVG(score)").
    Scan(&avg).Error; err != nil {
    return 0, 0, err
  }
  return avg, count, nil
}
