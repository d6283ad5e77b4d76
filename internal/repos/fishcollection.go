package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

type FishCollectionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, collection *types.FishCollection) (*types.FishCollection, error)
  Save(ctx context.Context, tx *gorm.DB, collection *types.FishCollection) error
  GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FishCollection, error)
  GetByUserAndFish(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) (*types.FishCollection, error)
  // GetByUserAndFishForUpdate locks the dex row so concurrent catches of the
  // same species serialize their read-modify-write of the aggregates.
  GetByUserAndFishForUpdate(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) (*types.FishCollection, error)
}

type fishCollectionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewFishCollectionRepo(db *gorm.DB, baseLog *logger.Logger) FishCollectionRepo {
  repoLog := baseLog.With("repo", "FishCollectionRepo")
  return &fishCollectionRepo{db: db, log: repoLog}
}

func (fcr *fishCollectionRepo) Create(ctx context.Context, tx *gorm.DB, collection *types.FishCollection) (*types.FishCollection, error) {
  transaction := tx
  if transaction == nil {
    transaction = fcr.db
  }
  if err := transaction.WithContext(ctx).Create(collection).Error; err != nil {
    return nil, err
  }
  return collection, nil
}

func (fcr *fishCollectionRepo) Save(ctx context.Context, tx *gorm.DB, collection *types.FishCollection) error {
  transaction := tx
  if transaction == nil {
    transaction = fcr.db
  }
  return transaction.WithContext(ctx).Save(collection).Error
}

func (fcr *fishCollectionRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FishCollection, error) {
  transaction := tx
  if transaction == nil {
    transaction = fcr.db
  }
  var results []*types.FishCollection
  if err := transaction.WithContext(ctx).
    Preload("Fish").
    Where("user_id = ?", userID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (fcr *fishCollectionRepo) GetByUserAndFish(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) (*types.FishCollection, error) {
  transaction := tx
  if transaction == nil {
    transaction = fcr.db
  }
  var result types.FishCollection
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND fish_id = ?", userID, fishID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (fcr *fishCollectionRepo) GetByUserAndFishForUpdate(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) (*types.FishCollection, error) {
  transaction := tx
  if transaction == nil {
    transaction = fcr.db
  }
  query := transaction.WithContext(ctx)
  // sqlite has no row locks; serialization there comes from its write lock.
  if transaction.Dialector.Name() == "postgres" {
    query = query.Clauses(clause.Locking{Strength: "UPDATE"})
  }
  var result types.FishCollection
  if err := query.
    Where("user_id = ? AND fish_id = ?", userID, fishID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}
