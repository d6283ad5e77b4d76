package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

type FishRepo interface {
  Create(ctx context.Context, tx *gorm.DB, fish *types.Fish) (*types.Fish, error)
  Save(ctx context.Context, tx *gorm.DB, fish *types.Fish) error
  Delete(ctx context.Context, tx *gorm.DB, fishID uuid.UUID) error
  GetByID(ctx context.Context, tx *gorm.DB, fishID uuid.UUID) (*types.Fish, error)
  GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Fish, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Fish, error)
  NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
}

type fishRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewFishRepo(db *gorm.DB, baseLog *logger.Logger) FishRepo {
  repoLog := baseLog.With("repo", "FishRepo")
  return &fishRepo{db: db, log: repoLog}
}

func (fr *fishRepo) Create(ctx context.Context, tx *gorm.DB, fish *types.Fish) (*types.Fish, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  if err := transaction.WithContext(ctx).Create(fish).Error; err != nil {
    return nil, err
  }
  return fish, nil
}

func (fr *fishRepo) Save(ctx context.Context, tx *gorm.DB, fish *types.Fish) error {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  return transaction.WithContext(ctx).Save(fish).Error
}

func (fr *fishRepo) Delete(ctx context.Context, tx *gorm.DB, fishID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  return transaction.WithContext(ctx).
    Where("id = ?", fishID).
    Delete(&types.Fish{}).Error
}

func (fr *fishRepo) GetByID(ctx context.Context, tx *gorm.DB, fishID uuid.UUID) (*types.Fish, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  var result types.Fish
  if err := transaction.WithContext(ctx).
    Where("id = ?", fishID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (fr *fishRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Fish, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  var result types.Fish
  if err := transaction.WithContext(ctx).
    Where("name = ?", name).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (fr *fishRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Fish, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  var results []*types.Fish
  if err := transaction.WithContext(ctx).
    Order("name asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (fr *fishRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Fish{}).
    Where("name = ?", name).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}
