package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

type ClassificationLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, clog *types.ClassificationLog) (*types.ClassificationLog, error)
  Save(ctx context.Context, tx *gorm.DB, clog *types.ClassificationLog) error
  GetByID(ctx context.Context, tx *gorm.DB, logID uuid.UUID) (*types.ClassificationLog, error)
  GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ClassificationLog, error)
  GetCorrectedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ClassificationLog, error)
  CreateCorrection(ctx context.Context, tx *gorm.DB, correction *types.ClassificationCorrectionHistory) (*types.ClassificationCorrectionHistory, error)
  GetCorrectionsByLog(ctx context.Context, tx *gorm.DB, logID uuid.UUID) ([]*types.ClassificationCorrectionHistory, error)
}

type classificationLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewClassificationLogRepo(db *gorm.DB, baseLog *logger.Logger) ClassificationLogRepo {
  repoLog := baseLog.With("repo", "ClassificationLogRepo")
  return &classificationLogRepo{db: db, log: repoLog}
}

func (clr *classificationLogRepo) Create(ctx context.Context, tx *gorm.DB, clog *types.ClassificationLog) (*types.ClassificationLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }
  if err := transaction.WithContext(ctx).Create(clog).Error; err != nil {
    return nil, err
  }
  return clog, nil
}

func (clr *classificationLogRepo) Save(ctx context.Context, tx *gorm.DB, clog *types.ClassificationLog) error {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }
  return transaction.WithContext(ctx).Save(clog).Error
}

func (clr *classificationLogRepo) GetByID(ctx context.Context, tx *gorm.DB, logID uuid.UUID) (*types.ClassificationLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }
  var result types.ClassificationLog
  if err := transaction.WithContext(ctx).
    Where("id = ?", logID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (clr *classificationLogRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ClassificationLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }
  var results []*types.ClassificationLog
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("classification_date desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (clr *classificationLogRepo) GetCorrectedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ClassificationLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }
  var results []*types.ClassificationLog
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND user_corrected_fish_name IS NOT NULL", userID).
    Order("user_feedback_date desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (clr *classificationLogRepo) CreateCorrection(ctx context.Context, tx *gorm.DB, correction *types.ClassificationCorrectionHistory) (*types.ClassificationCorrectionHistory, error) {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }
  if err := transaction.WithContext(ctx).Create(correction).Error; err != nil {
    return nil, err
  }
  return correction, nil
}

func (clr *classificationLogRepo) GetCorrectionsByLog(ctx context.Context, tx *gorm.DB, logID uuid.UUID) ([]*types.ClassificationCorrectionHistory, error) {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }
  var results []*types.ClassificationCorrectionHistory
  if err := transaction.WithContext(ctx).
    Where("classification_log_id = ?", logID).
    Order("created_at asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
