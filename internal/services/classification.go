package services

import (
  "context"
  "errors"
  "fmt"
  "math"
  "os"
  "path/filepath"
  "strings"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/repos"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
  "github.com/fishiphedia/fishiphedia-backend/internal/utils"
)

const (
  correctionReasonCatchLogging = "user selected different species during catch logging"
  correctionReasonFeedback     = "user feedback correction"
)

// ClassificationService owns the prediction archive: every attempt is logged,
// and only predictions that clear the per-species confidence threshold earn a
// durable copy in classification storage.
type ClassificationService interface {
  DetectionValid(fishName string, confidencePct float64) bool
  ValidateDetection(result *ClassificationResult) bool
  SaveLog(ctx context.Context, userID *uuid.UUID, result *ClassificationResult, imageData []byte, originalFilename string) (*types.ClassificationLog, error)
  SaveHighConfidence(ctx context.Context, userID *uuid.UUID, result *ClassificationResult, imageData []byte, originalFilename string) (*types.ClassificationStorage, error)
  GetUserLogs(ctx context.Context, userID uuid.UUID) ([]*types.ClassificationLog, error)
  GetWrongPredictions(ctx context.Context, userID uuid.UUID) ([]*types.ClassificationLog, error)
  GetCorrections(ctx context.Context, logID uuid.UUID) ([]*types.ClassificationCorrectionHistory, error)
  GetUserStorage(ctx context.Context, userID uuid.UUID) ([]*types.ClassificationStorage, error)
  GetStorageStats(ctx context.Context) (map[string]int64, error)
  UpdateFeedback(ctx context.Context, userID, logID uuid.UUID, correctedFishName, reason string, isCorrect *bool) (*types.ClassificationLog, error)
  UpdateUserSelectedFish(ctx context.Context, logID uuid.UUID, selectedFishName string) (*types.ClassificationLog, error)
  LinkToFishLog(ctx context.Context, logID, fishLogID uuid.UUID) (*types.ClassificationLog, error)
}

type classificationService struct {
  db                 *gorm.DB
  log                *logger.Logger
  logRepo            repos.ClassificationLogRepo
  storageRepo        repos.ClassificationStorageRepo
  storagePath        string
  flatfishSpecies    map[string]bool
  flatfishThreshold  float64
  defaultThreshold   float64
}

func NewClassificationService(
  db *gorm.DB,
  log *logger.Logger,
  logRepo repos.ClassificationLogRepo,
  storageRepo repos.ClassificationStorageRepo,
) ClassificationService {
  serviceLog := log.With("service", "ClassificationService")
  storagePath := utils.GetEnv("CLASSIFICATION_STORAGE_PATH", "classified_fish", log)
  flatfishList := utils.GetEnv("CLASSIFICATION_FLATFISH_SPECIES", "넙치,도다리", log)
  flatfishThreshold := utils.GetEnvAsFloat("CLASSIFICATION_FLATFISH_THRESHOLD", 90, log)
  defaultThreshold := utils.GetEnvAsFloat("CLASSIFICATION_DEFAULT_THRESHOLD", 99, log)
  flatfish := make(map[string]bool)
  for _, name := range strings.Split(flatfishList, ",") {
    name = strings.TrimSpace(name)
    if name != "" {
      flatfish[name] = true
    }
  }
  return &classificationService{
    db:                db,
    log:               serviceLog,
    logRepo:           logRepo,
    storageRepo:       storageRepo,
    storagePath:       storagePath,
    flatfishSpecies:   flatfish,
    flatfishThreshold: flatfishThreshold,
    defaultThreshold:  defaultThreshold,
  }
}

// DetectionValid reports whether a prediction is confident enough to count as
// a detection. Flatfish species get a lower bar because the model separates
// them less cleanly. confidencePct is a percentage, not a ratio.
func (cs *classificationService) DetectionValid(fishName string, confidencePct float64) bool {
  threshold := cs.defaultThreshold
  if cs.flatfishSpecies[fishName] {
    threshold = cs.flatfishThreshold
  }
  return confidencePct >= threshold
}

// ValidateDetection checks a raw model result against its species threshold
// and demotes it in place on failure: the detection flag drops and the
// detected species is cleared, so neither the log row nor the response claims
// a detection the confidence does not support. Returns whether the detection
// stands.
func (cs *classificationService) ValidateDetection(result *ClassificationResult) bool {
  if result == nil {
    return false
  }
  if result.IsFishDetected && cs.DetectionValid(result.PredictedFish, toPercent(result.Confidence)) {
    return true
  }
  result.IsFishDetected = false
  result.DetectedFish = nil
  return false
}

func (cs *classificationService) SaveLog(ctx context.Context, userID *uuid.UUID, result *ClassificationResult, imageData []byte, originalFilename string) (*types.ClassificationLog, error) {
  if result == nil {
    return nil, fmt.Errorf("missing classification result: %w", apperrors.ErrInvalidArgument)
  }
  species := result.PredictedFish
  if species == "" {
    species = "unknown"
  }
  // The image copy is best effort. A full disk must not lose the log row.
  imagePath, err := cs.archiveImage(filepath.Join("logs", species), imageData, originalFilename)
  if err != nil {
    cs.log.Warn("Failed to archive classification image", "species", species, "error", err)
    imagePath = ""
  }

  clog := &types.ClassificationLog{
    UserID:             userID,
    PredictedFishName:  result.PredictedFish,
    Confidence:         toPercent(result.Confidence),
    IsFishDetected:     result.IsFishDetected,
    ImagePath:          imagePath,
    OriginalFilename:   originalFilename,
    ClassificationDate: time.Now(),
  }
  var saved *types.ClassificationLog
  err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    created, err := cs.logRepo.Create(ctx, tx, clog)
    if err != nil {
      return fmt.Errorf("failed to create classification log: %w", err)
    }
    saved = created
    return nil
  })
  if err != nil {
    return nil, err
  }
  cs.log.Info("Classification logged", "species", result.PredictedFish, "confidence", clog.Confidence, "log_id", saved.ID)
  return saved, nil
}

func (cs *classificationService) SaveHighConfidence(ctx context.Context, userID *uuid.UUID, result *ClassificationResult, imageData []byte, originalFilename string) (*types.ClassificationStorage, error) {
  if result == nil {
    return nil, fmt.Errorf("missing classification result: %w", apperrors.ErrInvalidArgument)
  }
  confidencePct := toPercent(result.Confidence)
  if !cs.DetectionValid(result.PredictedFish, confidencePct) {
    return nil, nil
  }
  imagePath, err := cs.archiveImage(result.PredictedFish, imageData, originalFilename)
  if err != nil {
    return nil, fmt.Errorf("failed to store classified image: %w", errors.Join(apperrors.ErrArchiveStorage, err))
  }

  storage := &types.ClassificationStorage{
    UserID:             userID,
    PredictedFishName:  result.PredictedFish,
    Confidence:         confidencePct,
    ImagePath:          imagePath,
    OriginalFilename:   originalFilename,
  }
  var saved *types.ClassificationStorage
  err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    created, err := cs.storageRepo.Create(ctx, tx, storage)
    if err != nil {
      return fmt.Errorf("failed to create classification storage: %w", err)
    }
    saved = created
    return nil
  })
  if err != nil {
    return nil, err
  }
  return saved, nil
}

func (cs *classificationService) GetUserLogs(ctx context.Context, userID uuid.UUID) ([]*types.ClassificationLog, error) {
  return cs.logRepo.GetByUser(ctx, nil, userID)
}

func (cs *classificationService) GetWrongPredictions(ctx context.Context, userID uuid.UUID) ([]*types.ClassificationLog, error) {
  return cs.logRepo.GetCorrectedByUser(ctx, nil, userID)
}

func (cs *classificationService) GetCorrections(ctx context.Context, logID uuid.UUID) ([]*types.ClassificationCorrectionHistory, error) {
  if _, err := cs.logRepo.GetByID(ctx, nil, logID); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("classification log not found: %w", apperrors.ErrNotFound)
    }
    return nil, err
  }
  return cs.logRepo.GetCorrectionsByLog(ctx, nil, logID)
}

func (cs *classificationService) GetUserStorage(ctx context.Context, userID uuid.UUID) ([]*types.ClassificationStorage, error) {
  return cs.storageRepo.GetByUser(ctx, nil, userID)
}

// GetStorageStats counts stored high-confidence images per species.
func (cs *classificationService) GetStorageStats(ctx context.Context) (map[string]int64, error) {
  return cs.storageRepo.CountByFishName(ctx, nil)
}

func (cs *classificationService) UpdateFeedback(ctx context.Context, userID, logID uuid.UUID, correctedFishName, reason string, isCorrect *bool) (*types.ClassificationLog, error) {
  if reason == "" {
    reason = correctionReasonFeedback
  }
  var updated *types.ClassificationLog
  err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    clog, err := cs.logRepo.GetByID(ctx, tx, logID)
    if err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return fmt.Errorf("classification log not found: %w", apperrors.ErrNotFound)
      }
      return fmt.Errorf("failed to load classification log: %w", err)
    }
    if clog.UserID == nil || *clog.UserID != userID {
      return fmt.Errorf("classification log belongs to another user: %w", apperrors.ErrAccessDenied)
    }
    if correctedFishName != "" {
      if err := cs.applyCorrection(ctx, tx, clog, correctedFishName, reason); err != nil {
        return err
      }
    }
    if isCorrect != nil {
      clog.IsCorrect = isCorrect
    } else if clog.UserCorrectedFishName != nil {
      matches := *clog.UserCorrectedFishName == clog.PredictedFishName
      clog.IsCorrect = &matches
    }
    now := time.Now()
    clog.UserFeedbackDate = &now
    if err := cs.logRepo.Save(ctx, tx, clog); err != nil {
      return fmt.Errorf("failed to save feedback: %w", err)
    }
    updated = clog
    return nil
  })
  if err != nil {
    return nil, err
  }
  return updated, nil
}

// UpdateUserSelectedFish records the species the user actually logged a catch
// under. Called from the catch flow, so there is no ownership check here.
func (cs *classificationService) UpdateUserSelectedFish(ctx context.Context, logID uuid.UUID, selectedFishName string) (*types.ClassificationLog, error) {
  if selectedFishName == "" {
    return nil, fmt.Errorf("missing species name: %w", apperrors.ErrInvalidArgument)
  }
  var updated *types.ClassificationLog
  err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    clog, err := cs.logRepo.GetByID(ctx, tx, logID)
    if err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return fmt.Errorf("classification log not found: %w", apperrors.ErrNotFound)
      }
      return fmt.Errorf("failed to load classification log: %w", err)
    }
    if err := cs.applyCorrection(ctx, tx, clog, selectedFishName, correctionReasonCatchLogging); err != nil {
      return err
    }
    matches := selectedFishName == clog.PredictedFishName
    clog.IsCorrect = &matches
    now := time.Now()
    clog.UserFeedbackDate = &now
    if err := cs.logRepo.Save(ctx, tx, clog); err != nil {
      return fmt.Errorf("failed to save species feedback: %w", err)
    }
    updated = clog
    return nil
  })
  if err != nil {
    return nil, err
  }
  return updated, nil
}

func (cs *classificationService) LinkToFishLog(ctx context.Context, logID, fishLogID uuid.UUID) (*types.ClassificationLog, error) {
  var updated *types.ClassificationLog
  err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    clog, err := cs.logRepo.GetByID(ctx, tx, logID)
    if err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return fmt.Errorf("classification log not found: %w", apperrors.ErrNotFound)
      }
      return fmt.Errorf("failed to load classification log: %w", err)
    }
    clog.FishLogID = &fishLogID
    if err := cs.logRepo.Save(ctx, tx, clog); err != nil {
      return fmt.Errorf("failed to link classification log: %w", err)
    }
    updated = clog
    return nil
  })
  if err != nil {
    return nil, err
  }
  return updated, nil
}

// applyCorrection updates the corrected species on the log and appends a
// history row whenever the new value differs from what the log last said
// (the prior correction if one exists, otherwise the model prediction).
func (cs *classificationService) applyCorrection(ctx context.Context, tx *gorm.DB, clog *types.ClassificationLog, newFishName, reason string) error {
  oldFishName := clog.PredictedFishName
  if clog.UserCorrectedFishName != nil {
    oldFishName = *clog.UserCorrectedFishName
  }
  if oldFishName != newFishName {
    correction := &types.ClassificationCorrectionHistory{
      ClassificationLogID: clog.ID,
      OldFishName:         oldFishName,
      NewFishName:         newFishName,
      CorrectionReason:    reason,
    }
    if _, err := cs.logRepo.CreateCorrection(ctx, tx, correction); err != nil {
      return fmt.Errorf("failed to record correction: %w", err)
    }
  }
  clog.UserCorrectedFishName = &newFishName
  return nil
}

// archiveImage writes the image under <storagePath>/<subdir>/ with a
// collision-free name and returns the path relative to the storage root.
func (cs *classificationService) archiveImage(subdir string, imageData []byte, originalFilename string) (string, error) {
  if len(imageData) == 0 {
    return "", fmt.Errorf("empty image data")
  }
  ext := strings.ToLower(filepath.Ext(originalFilename))
  if ext == "" {
    ext = ".jpg"
  }
  dir := filepath.Join(cs.storagePath, subdir)
  if err := os.MkdirAll(dir, 0o755); err != nil {
    return "", fmt.Errorf("failed to create archive directory: %w", err)
  }
  filename := fmt.Sprintf("%s_%s%s", uuid.NewString(), time.Now().Format("20060102_150405"), ext)
  fullPath := filepath.Join(dir, filename)
  if err := os.WriteFile(fullPath, imageData, 0o644); err != nil {
    return "", fmt.Errorf("failed to write archive image: %w", err)
  }
  return filepath.Join(subdir, filename), nil
}

// toPercent converts a model ratio in [0,1] to a percentage rounded to two
// decimals, matching the decimal(5,2) column.
func toPercent(confidence float64) float64 {
  return math.Round(confidence*10000) / 100
}
