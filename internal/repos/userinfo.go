package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

type UserInfoRepo interface {
  Create(ctx context.Context, tx *gorm.DB, info *types.UserInfo) (*types.UserInfo, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserInfo, error)
  // GetByUserIDForUpdate takes a row lock so concurrent catches by the same
  // user serialize on the profile aggregate.
  GetByUserIDForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserInfo, error)
  Save(ctx context.Context, tx *gorm.DB, info *types.UserInfo) error
  NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserInfo, error)
}

type userInfoRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserInfoRepo(db *gorm.DB, baseLog *logger.Logger) UserInfoRepo {
  repoLog := baseLog.With("repo", "UserInfoRepo")
  return &userInfoRepo{db: db, log: repoLog}
}

func (uir *userInfoRepo) Create(ctx context.Context, tx *gorm.DB, info *types.UserInfo) (*types.UserInfo, error) {
  transaction := tx
  if transaction == nil {
    transaction = uir.db
  }
  if err := transaction.WithContext(ctx).Create(info).Error; err != nil {
    return nil, err
  }
  return info, nil
}

func (uir *userInfoRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserInfo, error) {
  transaction := tx
  if transaction == nil {
    transaction = uir.db
  }
  var result types.UserInfo
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (uir *userInfoRepo) GetByUserIDForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserInfo, error) {
  transaction := tx
  if transaction == nil {
    transaction = uir.db
  }
  query := transaction.WithContext(ctx)
  // sqlite has no row locks; serialization there comes from its write lock.
  if transaction.Dialector.Name() == "postgres" {
    query = query.Clauses(clause.Locking{Strength: "UPDATE"})
  }
  var result types.UserInfo
  if err := query.
    Where("user_id = ?", userID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (uir *userInfoRepo) Save(ctx context.Context, tx *gorm.DB, info *types.UserInfo) error {
  transaction := tx
  if transaction == nil {
    transaction = uir.db
  }
  return transaction.WithContext(ctx).Save(info).Error
}

func (uir *userInfoRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserInfo, error) {
  transaction := tx
  if transaction == nil {
    transaction = uir.db
  }
  var results []*types.UserInfo
  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (uir *userInfoRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = uir.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.UserInfo{}).
    Where("name = ?", name).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}
