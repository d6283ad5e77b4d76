package services

import (
  "context"
  "errors"
  "fmt"
  "math"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/repos"
  "github.com/fishiphedia/fishiphedia-backend/internal/requestdata"
  "github.com/fishiphedia/fishiphedia-backend/internal/scoring"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

// LevelUpdateResult describes how one catch moved the dex level for its
// species. Progress values are whole percentages; Increment is the number of
// progress points the catch was worth, counting 100 per level crossed.
type LevelUpdateResult struct {
  PrevLevel     int   `json:"prev_level"`
  PrevProgress  int   `json:"prev_progress"`
  NewLevel      int   `json:"new_level"`
  NewProgress   int   `json:"new_progress"`
  IsLevelUp     bool  `json:"is_level_up"`
  Increment     int   `json:"increment"`
}

type FishCollectionService interface {
  GetMyCollection(ctx context.Context) ([]*types.FishCollection, error)
  GetMyCollectionByFish(ctx context.Context, fishID uuid.UUID) (*types.FishCollection, error)
  // ApplyCatchWithLevel folds one catch into the dex entry and the profile
  // aggregate. It must run inside the caller's transaction; both rows are
  // taken with row locks so concurrent catches serialize.
  ApplyCatchWithLevel(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fish *types.Fish, score int, length float64) (*LevelUpdateResult, error)
}

type fishCollectionService struct {
  db              *gorm.DB
  log             *logger.Logger
  collectionRepo  repos.FishCollectionRepo
  userInfoRepo    repos.UserInfoRepo
}

func NewFishCollectionService(
  db *gorm.DB,
  log *logger.Logger,
  collectionRepo repos.FishCollectionRepo,
  userInfoRepo repos.UserInfoRepo,
) FishCollectionService {
  serviceLog := log.With("service", "FishCollectionService")
  return &fishCollectionService{
    db:             db,
    log:            serviceLog,
    collectionRepo: collectionRepo,
    userInfoRepo:   userInfoRepo,
  }
}

func (fcs *fishCollectionService) GetMyCollection(ctx context.Context) ([]*types.FishCollection, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }
  return fcs.collectionRepo.GetByUser(ctx, nil, rd.UserID)
}

func (fcs *fishCollectionService) GetMyCollectionByFish(ctx context.Context, fishID uuid.UUID) (*types.FishCollection, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }
  collection, err := fcs.collectionRepo.GetByUserAndFish(ctx, nil, rd.UserID, fishID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("no collection entry for fish: %w", apperrors.ErrNotFound)
    }
    return nil, err
  }
  return collection, nil
}

func (fcs *fishCollectionService) ApplyCatchWithLevel(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fish *types.Fish, score int, length float64) (*LevelUpdateResult, error) {
  if tx == nil {
    return nil, fmt.Errorf("catch updates require a transaction: %w", apperrors.ErrInvalidArgument)
  }

  now := time.Now()
  collection, err := fcs.collectionRepo.GetByUserAndFishForUpdate(ctx, tx, userID, fish.ID)
  isNew := false
  if err != nil {
    if !errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("failed to load collection entry: %w", err)
    }
    isNew = true
    collection = &types.FishCollection{
      UserID:     userID,
      FishID:     fish.ID,
      IsCollect:  true,
      CollectAt:  &now,
      Level:      1,
    }
  }

  prevLevel := collection.Level
  prevProgress := collection.CurrentLevelProgress

  collection.TotalScore += score
  info := scoring.Level(collection.TotalScore)
  collection.Level = info.Level
  collection.CurrentLevelProgress = info.Progress
  if !collection.IsCollect {
    collection.IsCollect = true
    collection.CollectAt = &now
  }
  if score > collection.HighestScore {
    collection.HighestScore = score
    collection.HighestLength = length
  }

  if isNew {
    if _, err := fcs.collectionRepo.Create(ctx, tx, collection); err != nil {
      return nil, fmt.Errorf("failed to create collection entry: %w", err)
    }
  } else {
    if err := fcs.collectionRepo.Save(ctx, tx, collection); err != nil {
      return nil, fmt.Errorf("failed to save collection entry: %w", err)
    }
  }

  if err := fcs.applyToUserInfo(ctx, tx, userID, score); err != nil {
    return nil, err
  }

  result := buildLevelUpdate(prevLevel, prevProgress, collection.Level, collection.CurrentLevelProgress)
  if result.IsLevelUp {
    fcs.log.Info("Collection level up", "user_id", userID, "fish_id", fish.ID, "level", result.NewLevel)
  }
  return result, nil
}

func (fcs *fishCollectionService) applyToUserInfo(ctx context.Context, tx *gorm.DB, userID uuid.UUID, score int) error {
  info, err := fcs.userInfoRepo.GetByUserIDForUpdate(ctx, tx, userID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return fmt.Errorf("user profile not found: %w", apperrors.ErrNotFound)
    }
    return fmt.Errorf("failed to load user profile: %w", err)
  }
  info.TotalScore += score
  level := scoring.Level(info.TotalScore)
  info.Level = level.Level
  info.CurrentLevelProgress = level.Progress
  if err := fcs.userInfoRepo.Save(ctx, tx, info); err != nil {
    return fmt.Errorf("failed to save user profile: %w", err)
  }
  return nil
}

func buildLevelUpdate(prevLevel int, prevProgress float64, newLevel int, newProgress float64) *LevelUpdateResult {
  prevPct := int(math.Round(prevProgress * 100))
  newPct := int(math.Round(newProgress * 100))
  increment := newPct - prevPct
  if newLevel > prevLevel {
    increment = (100 - prevPct) + newPct + 100*(newLevel-prevLevel-1)
  }
  return &LevelUpdateResult{
    PrevLevel:    prevLevel,
    PrevProgress: prevPct,
    NewLevel:     newLevel,
    NewProgress:  newPct,
    IsLevelUp:    newLevel > prevLevel,
    Increment:    increment,
  }
}
