package services

import (
  "context"
  "errors"
  "os"
  "path/filepath"
  "testing"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
  "github.com/fishiphedia/fishiphedia-backend/internal/repos"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

type classificationFixture struct {
  db           *gorm.DB
  service      ClassificationService
  logRepo      repos.ClassificationLogRepo
  storageRepo  repos.ClassificationStorageRepo
  storagePath  string
}

func newClassificationFixture(t *testing.T) *classificationFixture {
  t.Helper()
  storagePath := t.TempDir()
  t.Setenv("CLASSIFICATION_STORAGE_PATH", storagePath)
  db := newTestDB(t)
  log := newTestLogger(t)
  logRepo := repos.NewClassificationLogRepo(db, log)
  storageRepo := repos.NewClassificationStorageRepo(db, log)
  service := NewClassificationService(db, log, logRepo, storageRepo)
  return &classificationFixture{
    db:          db,
    service:     service,
    logRepo:     logRepo,
    storageRepo: storageRepo,
    storagePath: storagePath,
  }
}

func TestDetectionValidThresholds(t *testing.T) {
  fx := newClassificationFixture(t)
  tests := []struct {
    name        string
    fish        string
    confidence  float64
    want        bool
  }{
    {"flatfish at threshold", "넙치", 90, true},
    {"flatfish below threshold", "넙치", 89.99, false},
    {"other flatfish at threshold", "도다리", 90, true},
    {"default species at threshold", "참돔", 99, true},
    {"default species below threshold", "참돔", 98.99, false},
    {"default species high confidence", "참돔", 99.5, true},
  }
  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      if got := fx.service.DetectionValid(tt.fish, tt.confidence); got != tt.want {
        t.Errorf("DetectionValid(%q, %v) = %v, want %v", tt.fish, tt.confidence, got, tt.want)
      }
    })
  }
}

func TestSaveLogArchivesImage(t *testing.T) {
  fx := newClassificationFixture(t)
  user := seedUser(t, fx.db, "angler")
  ctx := context.Background()

  result := &ClassificationResult{PredictedFish: "넙치", Confidence: 0.9234, IsFishDetected: true}
  clog, err := fx.service.SaveLog(ctx, &user.ID, result, []byte("jpeg-bytes"), "catch.jpg")
  if err != nil {
    t.Fatalf("SaveLog failed: %v", err)
  }
  if clog.Confidence != 92.34 {
    t.Errorf("confidence = %v, want 92.34", clog.Confidence)
  }
  if clog.ImagePath == "" {
    t.Fatal("expected an archived image path")
  }
  if filepath.Dir(clog.ImagePath) != filepath.Join("logs", "넙치") {
    t.Errorf("image path %q not under logs/넙치", clog.ImagePath)
  }
  if _, err := os.Stat(filepath.Join(fx.storagePath, clog.ImagePath)); err != nil {
    t.Errorf("archived file missing: %v", err)
  }
}

func TestSaveLogKeepsRowWhenArchiveFails(t *testing.T) {
  fx := newClassificationFixture(t)
  ctx := context.Background()

  result := &ClassificationResult{PredictedFish: "", Confidence: 0.4, IsFishDetected: false}
  clog, err := fx.service.SaveLog(ctx, nil, result, nil, "blurry.jpg")
  if err != nil {
    t.Fatalf("SaveLog failed: %v", err)
  }
  if clog.ImagePath != "" {
    t.Errorf("image path = %q, want empty on archive failure", clog.ImagePath)
  }
  if clog.UserID != nil {
    t.Error("anonymous log should have no user")
  }
  if _, err := fx.logRepo.GetByID(ctx, nil, clog.ID); err != nil {
    t.Errorf("log row missing: %v", err)
  }
}

func TestValidateDetectionDemotesResult(t *testing.T) {
  fx := newClassificationFixture(t)
  user := seedUser(t, fx.db, "angler")
  ctx := context.Background()

  detected := "참돔"
  low := &ClassificationResult{PredictedFish: "참돔", Confidence: 0.95, IsFishDetected: true, DetectedFish: &detected}
  if fx.service.ValidateDetection(low) {
    t.Error("95% should not clear the 99 threshold for 참돔")
  }
  if low.IsFishDetected || low.DetectedFish != nil {
    t.Errorf("demoted result = detected %v species %v, want false/nil", low.IsFishDetected, low.DetectedFish)
  }

  // The demoted flag is what gets persisted.
  clog, err := fx.service.SaveLog(ctx, &user.ID, low, []byte("img"), "low.jpg")
  if err != nil {
    t.Fatalf("SaveLog failed: %v", err)
  }
  row, err := fx.logRepo.GetByID(ctx, nil, clog.ID)
  if err != nil {
    t.Fatalf("log lookup failed: %v", err)
  }
  if row.IsFishDetected {
    t.Error("log row claims detection for a below-threshold prediction")
  }

  flatfish := "넙치"
  high := &ClassificationResult{PredictedFish: "넙치", Confidence: 0.95, IsFishDetected: true, DetectedFish: &flatfish}
  if !fx.service.ValidateDetection(high) {
    t.Error("95% should clear the 90 threshold for 넙치")
  }
  if !high.IsFishDetected || high.DetectedFish == nil || *high.DetectedFish != "넙치" {
    t.Errorf("valid result mutated: detected %v species %v", high.IsFishDetected, high.DetectedFish)
  }
}

func TestSaveHighConfidenceGating(t *testing.T) {
  fx := newClassificationFixture(t)
  user := seedUser(t, fx.db, "angler")
  ctx := context.Background()

  low := &ClassificationResult{PredictedFish: "넙치", Confidence: 0.80, IsFishDetected: true}
  saved, err := fx.service.SaveHighConfidence(ctx, &user.ID, low, []byte("img"), "a.jpg")
  if err != nil {
    t.Fatalf("SaveHighConfidence failed: %v", err)
  }
  if saved != nil {
    t.Error("below-threshold prediction should not be stored")
  }

  high := &ClassificationResult{PredictedFish: "넙치", Confidence: 0.95, IsFishDetected: true}
  saved, err = fx.service.SaveHighConfidence(ctx, &user.ID, high, []byte("img"), "b.jpg")
  if err != nil {
    t.Fatalf("SaveHighConfidence failed: %v", err)
  }
  if saved == nil {
    t.Fatal("expected a stored row for high confidence")
  }
  if filepath.Dir(saved.ImagePath) != "넙치" {
    t.Errorf("image path %q not under species directory", saved.ImagePath)
  }
  if _, err := os.Stat(filepath.Join(fx.storagePath, saved.ImagePath)); err != nil {
    t.Errorf("stored file missing: %v", err)
  }

  rows, err := fx.storageRepo.GetByFishName(ctx, nil, "넙치")
  if err != nil {
    t.Fatalf("storage lookup failed: %v", err)
  }
  if len(rows) != 1 {
    t.Errorf("storage rows = %d, want 1", len(rows))
  }
}

func TestStorageHistoryAndStats(t *testing.T) {
  fx := newClassificationFixture(t)
  user := seedUser(t, fx.db, "angler")
  other := seedUser(t, fx.db, "other")
  ctx := context.Background()

  store := func(userID *uuid.UUID, fish string, filename string) {
    t.Helper()
    result := &ClassificationResult{PredictedFish: fish, Confidence: 0.95, IsFishDetected: true}
    if _, err := fx.service.SaveHighConfidence(ctx, userID, result, []byte("img"), filename); err != nil {
      t.Fatalf("SaveHighConfidence failed: %v", err)
    }
  }
  store(&user.ID, "넙치", "a.jpg")
  store(&user.ID, "도다리", "b.jpg")
  store(&other.ID, "넙치", "c.jpg")

  mine, err := fx.service.GetUserStorage(ctx, user.ID)
  if err != nil {
    t.Fatalf("GetUserStorage failed: %v", err)
  }
  if len(mine) != 2 {
    t.Errorf("storage rows for user = %d, want 2", len(mine))
  }
  for _, row := range mine {
    if row.UserID == nil || *row.UserID != user.ID {
      t.Errorf("row %v belongs to %v, want %v", row.ID, row.UserID, user.ID)
    }
  }

  stats, err := fx.service.GetStorageStats(ctx)
  if err != nil {
    t.Fatalf("GetStorageStats failed: %v", err)
  }
  if stats["넙치"] != 2 || stats["도다리"] != 1 {
    t.Errorf("stats = %v, want 넙치:2 도다리:1", stats)
  }
}

func TestUpdateUserSelectedFishCorrections(t *testing.T) {
  fx := newClassificationFixture(t)
  user := seedUser(t, fx.db, "angler")
  ctx := context.Background()

  result := &ClassificationResult{PredictedFish: "넙치", Confidence: 0.97, IsFishDetected: true}
  clog, err := fx.service.SaveLog(ctx, &user.ID, result, []byte("img"), "c.jpg")
  if err != nil {
    t.Fatalf("SaveLog failed: %v", err)
  }

  // Disagreeing with the model appends a correction.
  updated, err := fx.service.UpdateUserSelectedFish(ctx, clog.ID, "도다리")
  if err != nil {
    t.Fatalf("UpdateUserSelectedFish failed: %v", err)
  }
  if updated.UserCorrectedFishName == nil || *updated.UserCorrectedFishName != "도다리" {
    t.Errorf("corrected name = %v, want 도다리", updated.UserCorrectedFishName)
  }
  if updated.IsCorrect == nil || *updated.IsCorrect {
    t.Error("is_correct should be false after a disagreement")
  }
  corrections, err := fx.service.GetCorrections(ctx, clog.ID)
  if err != nil {
    t.Fatalf("GetCorrections failed: %v", err)
  }
  if len(corrections) != 1 {
    t.Fatalf("corrections = %d, want 1", len(corrections))
  }
  if corrections[0].OldFishName != "넙치" || corrections[0].NewFishName != "도다리" {
    t.Errorf("correction = %s -> %s, want 넙치 -> 도다리", corrections[0].OldFishName, corrections[0].NewFishName)
  }
  if corrections[0].CorrectionReason == "" {
    t.Error("correction should carry a reason")
  }

  // Repeating the same selection adds nothing.
  if _, err := fx.service.UpdateUserSelectedFish(ctx, clog.ID, "도다리"); err != nil {
    t.Fatalf("repeat selection failed: %v", err)
  }
  corrections, _ = fx.service.GetCorrections(ctx, clog.ID)
  if len(corrections) != 1 {
    t.Errorf("corrections after repeat = %d, want 1", len(corrections))
  }

  // Going back to the original prediction is itself a correction, and makes
  // the prediction correct again.
  updated, err = fx.service.UpdateUserSelectedFish(ctx, clog.ID, "넙치")
  if err != nil {
    t.Fatalf("revert selection failed: %v", err)
  }
  if updated.IsCorrect == nil || !*updated.IsCorrect {
    t.Error("is_correct should be true after agreeing with the model")
  }
  corrections, _ = fx.service.GetCorrections(ctx, clog.ID)
  if len(corrections) != 2 {
    t.Errorf("corrections after revert = %d, want 2", len(corrections))
  }
}

func TestUpdateFeedbackOwnership(t *testing.T) {
  fx := newClassificationFixture(t)
  owner := seedUser(t, fx.db, "owner")
  stranger := seedUser(t, fx.db, "stranger")
  ctx := context.Background()

  result := &ClassificationResult{PredictedFish: "참돔", Confidence: 0.99, IsFishDetected: true}
  clog, err := fx.service.SaveLog(ctx, &owner.ID, result, []byte("img"), "d.jpg")
  if err != nil {
    t.Fatalf("SaveLog failed: %v", err)
  }

  if _, err := fx.service.UpdateFeedback(ctx, stranger.ID, clog.ID, "감성돔", "", nil); !errors.Is(err, apperrors.ErrAccessDenied) {
    t.Errorf("expected ErrAccessDenied for stranger, got %v", err)
  }

  updated, err := fx.service.UpdateFeedback(ctx, owner.ID, clog.ID, "감성돔", "", nil)
  if err != nil {
    t.Fatalf("owner feedback failed: %v", err)
  }
  if updated.UserFeedbackDate == nil {
    t.Error("feedback date should be set")
  }
  if updated.IsCorrect == nil || *updated.IsCorrect {
    t.Error("is_correct should be false when corrected name differs")
  }

  if _, err := fx.service.UpdateFeedback(ctx, owner.ID, uuid.New(), "감성돔", "", nil); !errors.Is(err, apperrors.ErrNotFound) {
    t.Errorf("expected ErrNotFound for missing log, got %v", err)
  }
}

func TestUpdateFeedbackReason(t *testing.T) {
  fx := newClassificationFixture(t)
  user := seedUser(t, fx.db, "angler")
  ctx := context.Background()

  result := &ClassificationResult{PredictedFish: "참돔", Confidence: 0.99, IsFishDetected: true}
  clog, err := fx.service.SaveLog(ctx, &user.ID, result, []byte("img"), "f.jpg")
  if err != nil {
    t.Fatalf("SaveLog failed: %v", err)
  }

  if _, err := fx.service.UpdateFeedback(ctx, user.ID, clog.ID, "감성돔", "photo was taken at a bad angle", nil); err != nil {
    t.Fatalf("feedback with reason failed: %v", err)
  }
  corrections, err := fx.service.GetCorrections(ctx, clog.ID)
  if err != nil {
    t.Fatalf("GetCorrections failed: %v", err)
  }
  if len(corrections) != 1 || corrections[0].CorrectionReason != "photo was taken at a bad angle" {
    t.Fatalf("corrections = %+v, want one row with the caller's reason", corrections)
  }

  // An omitted reason falls back to the generic feedback wording.
  if _, err := fx.service.UpdateFeedback(ctx, user.ID, clog.ID, "벵에돔", "", nil); err != nil {
    t.Fatalf("feedback without reason failed: %v", err)
  }
  corrections, _ = fx.service.GetCorrections(ctx, clog.ID)
  if len(corrections) != 2 || corrections[1].CorrectionReason != "user feedback correction" {
    t.Fatalf("corrections = %+v, want a second row with the default reason", corrections)
  }
}

func TestLinkToFishLog(t *testing.T) {
  fx := newClassificationFixture(t)
  user := seedUser(t, fx.db, "angler")
  ctx := context.Background()

  result := &ClassificationResult{PredictedFish: "넙치", Confidence: 0.95, IsFishDetected: true}
  clog, err := fx.service.SaveLog(ctx, &user.ID, result, []byte("img"), "e.jpg")
  if err != nil {
    t.Fatalf("SaveLog failed: %v", err)
  }

  fishLogID := uuid.New()
  fx.db.Create(&types.FishLog{ID: fishLogID, UserID: user.ID, FishID: uuid.New(), CollectAt: clog.ClassificationDate, Length: 30, Score: 55})

  updated, err := fx.service.LinkToFishLog(ctx, clog.ID, fishLogID)
  if err != nil {
    t.Fatalf("LinkToFishLog failed: %v", err)
  }
  if updated.FishLogID == nil || *updated.FishLogID != fishLogID {
    t.Errorf("fish_log_id = %v, want %v", updated.FishLogID, fishLogID)
  }

  if _, err := fx.service.LinkToFishLog(ctx, uuid.New(), fishLogID); !errors.Is(err, apperrors.ErrNotFound) {
    t.Errorf("expected ErrNotFound for missing log, got %v", err)
  }
}
