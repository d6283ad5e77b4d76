package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

type ClassificationStorageRepo interface {
  Create(ctx context.Context, tx *gorm.DB, storage *types.ClassificationStorage) (*types.ClassificationStorage, error)
  GetByFishName(ctx context.Context, tx *gorm.DB, fishName string) ([]*types.ClassificationStorage, error)
  GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ClassificationStorage, error)
  CountByFishName(ctx context.Context, tx *gorm.DB) (map[string]int64, error)
}

type classificationStorageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewClassificationStorageRepo(db *gorm.DB, baseLog *logger.Logger) ClassificationStorageRepo {
  repoLog := baseLog.With("repo", "ClassificationStorageRepo")
  return &classificationStorageRepo{db: db, log: repoLog}
}

func (csr *classificationStorageRepo) Create(ctx context.Context, tx *gorm.DB, storage *types.ClassificationStorage) (*types.ClassificationStorage, error) {
  transaction := tx
  if transaction == nil {
    transaction = csr.db
  }
  if err := transaction.WithContext(ctx).Create(storage).Error; err != nil {
    return nil, err
  }
  return storage, nil
}

func (csr *classificationStorageRepo) GetByFishName(ctx context.Context, tx *gorm.DB, fishName string) ([]*types.ClassificationStorage, error) {
  transaction := tx
  if transaction == nil {
    transaction = csr.db
  }
  var results []*types.ClassificationStorage
  if err := transaction.WithContext(ctx).
    Where("predicted_fish_name = ?", fishName).
    Order("created_at desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (csr *classificationStorageRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ClassificationStorage, error) {
  transaction := tx
  if transaction == nil {
    transaction = csr.db
  }
  var results []*types.ClassificationStorage
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (csr *classificationStorageRepo) CountByFishName(ctx context.Context, tx *gorm.DB) (map[string]int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = csr.db
  }
  var rows []struct {
    PredictedFishName string  `gorm:"column:predicted_fish_name"`
    Count             int64   `gorm:"column:count"`
  }
  if err := transaction.WithContext(ctx).
    Model(&types.ClassificationStorage{}).
    Select("predicted_fish_name, COUNT(*) AS count").
    Group("predicted_fish_name").
    Scan(&rows).Error; err != nil {
    return nil, err
  }
  counts := make(map[string]int64, len(rows))
  for _, row := range rows {
    counts[row.PredictedFishName] = row.Count
  }
  return counts, nil
}
