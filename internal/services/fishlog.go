package services

import (
  "context"
  "errors"
  "fmt"
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

// FishLogCreateRequest carries one catch to record. ClassificationLogID, when
// set, ties the catch back to the prediction it came from.
type FishLogCreateRequest struct {
  FishID               uuid.UUID   `json:"fish_id"`
  Length               float64     `json:"length"`
  CollectAt            *time.Time  `json:"collect_at,omitempty"`
  Place                string      `json:"place,omitempty"`
  Review               string      `json:"review,omitempty"`
  ImgPath              string      `json:"img_path,omitempty"`
  ClassificationLogID  *uuid.UUID  `json:"classification_log_id,omitempty"`
}

// FishLogCreateResult is what the catch endpoint returns: the stored log, the
// dex level movement it caused, and the species it was logged under.
type FishLogCreateResult struct {
  FishLog      *types.FishLog      `json:"fish_log"`
  LevelUpdate  *LevelUpdateResult  `json:"level_update"`
  SpeciesID    uuid.UUID           `json:"species_id"`
}

// SpeciesCatchList pairs the caller's catches of one species with their dex
// entry for it. SpeciesCollection is nil until the first catch exists.
type SpeciesCatchList struct {
  Catches            []*types.FishLog       `json:"catches"`
  SpeciesCollection  *types.FishCollection  `json:"species_collection"`
}

type FishLogService interface {
  // CreateWithLevel scores and stores a catch and folds it into the dex and
  // profile aggregates, all in one transaction.
  CreateWithLevel(ctx context.Context, req *FishLogCreateRequest) (*FishLogCreateResult, error)
  GetMyLogs(ctx context.Context) ([]*types.FishLog, error)
  GetMyLogsByFish(ctx context.Context, fishID uuid.UUID) (*SpeciesCatchList, error)
  GetMyLogByID(ctx context.Context, fishLogID uuid.UUID) (*types.FishLog, error)
  // Verify marks a catch certified and rebuilds its ranking row. Idempotent.
  Verify(ctx context.Context, fishLogID uuid.UUID) (*types.FishLog, error)
}

type fishLogService struct {
  db                     *gorm.DB
  log                    *logger.Logger
  fishRepo               repos.FishRepo
  fishLogRepo            repos.FishLogRepo
  collectionService      FishCollectionService
  rankingService         RankingService
  classificationService  ClassificationService
}

func NewFishLogService(
  db *gorm.DB,
  log *logger.Logger,
  fishRepo repos.FishRepo,
  fishLogRepo repos.FishLogRepo,
  collectionService FishCollectionService,
  rankingService RankingService,
  classificationService ClassificationService,
) FishLogService {
  serviceLog := log.With("service", "FishLogService")
  return &fishLogService{
    db:                    db,
    log:                   serviceLog,
    fishRepo:              fishRepo,
    fishLogRepo:           fishLogRepo,
    collectionService:     collectionService,
    rankingService:        rankingService,
    classificationService: classificationService,
  }
}

func (fls *fishLogService) CreateWithLevel(ctx context.Context, req *FishLogCreateRequest) (*FishLogCreateResult, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }
  if req == nil || req.FishID == uuid.Nil {
    return nil, fmt.Errorf("missing fish id: %w", apperrors.ErrInvalidArgument)
  }
  if req.Length < 0 {
    return nil, fmt.Errorf("negative length: %w", apperrors.ErrInvalidArgument)
  }

  collectAt := time.Now()
  if req.CollectAt != nil {
    collectAt = *req.CollectAt
  }

  var result *FishLogCreateResult
  var fishName string
  err := fls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    fish, err := fls.fishRepo.GetByID(ctx, tx, req.FishID)
    if err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return fmt.Errorf("fish not found: %w", apperrors.ErrNotFound)
      }
      return fmt.Errorf("failed to load fish: %w", err)
    }
    fishName = fish.Name

    score := scoring.CatchScore(fish.RarityScore, fish.AvgLength, fish.StdDeviation, req.Length)
    fishLog := &types.FishLog{
      UserID:    rd.UserID,
      FishID:    fish.ID,
      CollectAt: collectAt,
      Length:    req.Length,
      Score:     score,
      Place:     req.Place,
      Review:    req.Review,
      ImgPath:   req.ImgPath,
    }
    created, err := fls.fishLogRepo.Create(ctx, tx, fishLog)
    if err != nil {
      return fmt.Errorf("failed to create fish log: %w", err)
    }
    created.Fish = fish

    levelUpdate, err := fls.collectionService.ApplyCatchWithLevel(ctx, tx, rd.UserID, fish, score, req.Length)
    if err != nil {
      return err
    }
    result = &FishLogCreateResult{FishLog: created, LevelUpdate: levelUpdate, SpeciesID: fish.ID}
    return nil
  })
  if err != nil {
    return nil, err
  }

  if req.ClassificationLogID != nil {
    // Feedback to the prediction archive is best effort and must not delay
    // or fail the catch response.
    go fls.linkClassification(*req.ClassificationLogID, result.FishLog.ID, fishName)
  }

  fls.log.Info("Catch recorded", "user_id", rd.UserID, "fish", fishName, "score", result.FishLog.Score)
  return result, nil
}

func (fls *fishLogService) linkClassification(classificationLogID, fishLogID uuid.UUID, fishName string) {
  ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
  defer cancel()
  if _, err := fls.classificationService.LinkToFishLog(ctx, classificationLogID, fishLogID); err != nil {
    fls.log.Warn("Failed to link classification log", "classification_log_id", classificationLogID, "error", err)
    return
  }
  if _, err := fls.classificationService.UpdateUserSelectedFish(ctx, classificationLogID, fishName); err != nil {
    fls.log.Warn("Failed to record species feedback", "classification_log_id", classificationLogID, "error", err)
  }
}

func (fls *fishLogService) GetMyLogs(ctx context.Context) ([]*types.FishLog, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }
  return fls.fishLogRepo.GetByUser(ctx, nil, rd.UserID)
}

func (fls *fishLogService) GetMyLogsByFish(ctx context.Context, fishID uuid.UUID) (*SpeciesCatchList, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }
  logs, err := fls.fishLogRepo.GetByUserAndFish(ctx, nil, rd.UserID, fishID)
  if err != nil {
    return nil, err
  }
  collection, err := fls.collectionService.GetMyCollectionByFish(ctx, fishID)
  if err != nil {
    // No dex entry yet is a normal answer for a species never caught.
    if !errors.Is(err, apperrors.ErrNotFound) {
      return nil, err
    }
    collection = nil
  }
  return &SpeciesCatchList{Catches: logs, SpeciesCollection: collection}, nil
}

func (fls *fishLogService) GetMyLogByID(ctx context.Context, fishLogID uuid.UUID) (*types.FishLog, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }
  fishLog, err := fls.fishLogRepo.GetByIDAndUser(ctx, nil, fishLogID, rd.UserID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("fish log not found: %w", apperrors.ErrNotFound)
    }
    return nil, err
  }
  return fishLog, nil
}

func (fls *fishLogService) Verify(ctx context.Context, fishLogID uuid.UUID) (*types.FishLog, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }

  var verified *types.FishLog
  err := fls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    fishLog, err := fls.fishLogRepo.GetByID(ctx, tx, fishLogID)
    if err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return fmt.Errorf("fish log not found: %w", apperrors.ErrNotFound)
      }
      return fmt.Errorf("failed to load fish log: %w", err)
    }
    // Non-owners get the same answer as a missing log.
    if fishLog.UserID != rd.UserID && !rd.IsAdmin() {
      return fmt.Errorf("fish log not found: %w", apperrors.ErrNotFound)
    }
    if fishLog.Certified {
      verified = fishLog
      return nil
    }
    fishLog.Certified = true
    if err := fls.fishLogRepo.Save(ctx, tx, fishLog); err != nil {
      return fmt.Errorf("failed to certify fish log: %w", err)
    }
    if err := fls.rankingService.Recalculate(ctx, tx, fishLog.UserID, fishLog.FishID); err != nil {
      return err
    }
    verified = fishLog
    return nil
  })
  if err != nil {
    return nil, err
  }
  return verified, nil
}
