package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

// UserTotalScore is the per-user sum of ranking totals used by the fisher
// leaderboard.
type UserTotalScore struct {
  UserID      uuid.UUID   `gorm:"column:user_id"`
  TotalScore  int         `gorm:"column:total_score"`
}

type RankingCollectionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, collection *types.RankingCollection) (*types.RankingCollection, error)
  Save(ctx context.Context, tx *gorm.DB, collection *types.RankingCollection) error
  GetByUserAndFish(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) (*types.RankingCollection, error)
  GetByUserAndFishForUpdate(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) (*types.RankingCollection, error)
  GetAllByHighestScoreDesc(ctx context.Context, tx *gorm.DB) ([]*types.RankingCollection, error)
  GetByFishByHighestScoreDesc(ctx context.Context, tx *gorm.DB, fishID uuid.UUID) ([]*types.RankingCollection, error)
  GetUserTotalScores(ctx context.Context, tx *gorm.DB) ([]UserTotalScore, error)
}

type rankingCollectionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRankingCollectionRepo(db *gorm.DB, baseLog *logger.Logger) RankingCollectionRepo {
  repoLog := baseLog.With("repo", "RankingCollectionRepo")
  return &rankingCollectionRepo{db: db, log: repoLog}
}

func (rcr *rankingCollectionRepo) Create(ctx context.Context, tx *gorm.DB, collection *types.RankingCollection) (*types.RankingCollection, error) {
  transaction := tx
  if transaction == nil {
    transaction = rcr.db
  }
  if err := transaction.WithContext(ctx).Create(collection).Error; err != nil {
    return nil, err
  }
  return collection, nil
}

func (rcr *rankingCollectionRepo) Save(ctx context.Context, tx *gorm.DB, collection *types.RankingCollection) error {
  transaction := tx
  if transaction == nil {
    transaction = rcr.db
  }
  return transaction.WithContext(ctx).Save(collection).Error
}

func (rcr *rankingCollectionRepo) GetByUserAndFish(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) (*types.RankingCollection, error) {
  transaction := tx
  if transaction == nil {
    transaction = rcr.db
  }
  var result types.RankingCollection
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND fish_id = ?", userID, fishID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (rcr *rankingCollectionRepo) GetByUserAndFishForUpdate(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) (*types.RankingCollection, error) {
  transaction := tx
  if transaction == nil {
    transaction = rcr.db
  }
  query := transaction.WithContext(ctx)
  // sqlite has no row locks; serialization there comes from its write lock.
  if transaction.Dialector.Name() == "postgres" {
    query = query.Clauses(clause.Locking{Strength: "UPDATE"})
  }
  var result types.RankingCollection
  if err := query.
    Where("user_id = ? AND fish_id = ?", userID, fishID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (rcr *rankingCollectionRepo) GetAllByHighestScoreDesc(ctx context.Context, tx *gorm.DB) ([]*types.RankingCollection, error) {
  transaction := tx
  if transaction == nil {
    transaction = rcr.db
  }
  var results []*types.RankingCollection
  if err := transaction.WithContext(ctx).
    Preload("User").
    Preload("Fish").
    Order("highest_score desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rcr *rankingCollectionRepo) GetByFishByHighestScoreDesc(ctx context.Context, tx *gorm.DB, fishID uuid.UUID) ([]*types.RankingCollection, error) {
  transaction := tx
  if transaction == nil {
    transaction = rcr.db
  }
  var results []*types.RankingCollection
  if err := transaction.WithContext(ctx).
    Preload("User").
    Preload("Fish").
    Where("fish_id = ?", fishID).
    Order("highest_score desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rcr *rankingCollectionRepo) GetUserTotalScores(ctx context.Context, tx *gorm.DB) ([]UserTotalScore, error) {
  transaction := tx
  if transaction == nil {
    transaction = rcr.db
  }
  var results []UserTotalScore
  if err := transaction.WithContext(ctx).
    Model(&types.RankingCollection{}).
    Select("user_id, SUM(total_score) AS total_score").
    Group("user_id").
    Order("total_score desc").
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
