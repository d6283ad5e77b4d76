package services

import (
  "errors"
  "testing"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
  "github.com/fishiphedia/fishiphedia-backend/internal/repos"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

type catchFixture struct {
  db                 *gorm.DB
  fishLogService     FishLogService
  collectionService  FishCollectionService
  rankingService     RankingService
  collectionRepo     repos.FishCollectionRepo
  userInfoRepo       repos.UserInfoRepo
  rankingRepo        repos.RankingCollectionRepo
}

func newCatchFixture(t *testing.T) *catchFixture {
  t.Helper()
  t.Setenv("CLASSIFICATION_STORAGE_PATH", t.TempDir())
  db := newTestDB(t)
  log := newTestLogger(t)

  fishRepo := repos.NewFishRepo(db, log)
  fishLogRepo := repos.NewFishLogRepo(db, log)
  collectionRepo := repos.NewFishCollectionRepo(db, log)
  userInfoRepo := repos.NewUserInfoRepo(db, log)
  rankingRepo := repos.NewRankingCollectionRepo(db, log)
  classificationLogRepo := repos.NewClassificationLogRepo(db, log)
  classificationStorageRepo := repos.NewClassificationStorageRepo(db, log)

  classificationService := NewClassificationService(db, log, classificationLogRepo, classificationStorageRepo)
  collectionService := NewFishCollectionService(db, log, collectionRepo, userInfoRepo)
  rankingService := NewRankingService(db, log, rankingRepo, fishLogRepo, userInfoRepo)
  fishLogService := NewFishLogService(db, log, fishRepo, fishLogRepo, collectionService, rankingService, classificationService)

  return &catchFixture{
    db:                db,
    fishLogService:    fishLogService,
    collectionService: collectionService,
    rankingService:    rankingService,
    collectionRepo:    collectionRepo,
    userInfoRepo:      userInfoRepo,
    rankingRepo:       rankingRepo,
  }
}

func TestCreateWithLevelSingleCatch(t *testing.T) {
  fx := newCatchFixture(t)
  user := seedUser(t, fx.db, "angler")
  fish := seedFish(t, fx.db, "우럭", 30, 10, 50)
  ctx := authedContext(user)

  result, err := fx.fishLogService.CreateWithLevel(ctx, &FishLogCreateRequest{FishID: fish.ID, Length: 30})
  if err != nil {
    t.Fatalf("CreateWithLevel failed: %v", err)
  }
  if result.FishLog.Score != 55 {
    t.Errorf("score = %d, want 55", result.FishLog.Score)
  }
  if result.FishLog.Certified {
    t.Error("new catch should not be certified")
  }
  if result.SpeciesID != fish.ID {
    t.Errorf("species id = %v, want %v", result.SpeciesID, fish.ID)
  }

  lu := result.LevelUpdate
  if lu.PrevLevel != 1 || lu.PrevProgress != 0 {
    t.Errorf("prev = level %d progress %d, want 1/0", lu.PrevLevel, lu.PrevProgress)
  }
  if lu.NewLevel != 1 || lu.NewProgress != 55 || lu.IsLevelUp {
    t.Errorf("new = level %d progress %d levelup %v, want 1/55/false", lu.NewLevel, lu.NewProgress, lu.IsLevelUp)
  }
  if lu.Increment != 55 {
    t.Errorf("increment = %d, want 55", lu.Increment)
  }

  collection, err := fx.collectionRepo.GetByUserAndFish(ctx, nil, user.ID, fish.ID)
  if err != nil {
    t.Fatalf("collection lookup failed: %v", err)
  }
  if collection.HighestScore != 55 || collection.TotalScore != 55 || collection.Level != 1 {
    t.Errorf("collection = highest %d total %d level %d, want 55/55/1", collection.HighestScore, collection.TotalScore, collection.Level)
  }
  if collection.HighestLength != 30 {
    t.Errorf("highest length = %v, want 30", collection.HighestLength)
  }
  if !collection.IsCollect || collection.CollectAt == nil {
    t.Error("collection entry should be marked collected")
  }

  info, err := fx.userInfoRepo.GetByUserID(ctx, nil, user.ID)
  if err != nil {
    t.Fatalf("user info lookup failed: %v", err)
  }
  if info.TotalScore != 55 || info.Level != 1 || info.CurrentLevelProgress != 0.55 {
    t.Errorf("profile = total %d level %d progress %v, want 55/1/0.55", info.TotalScore, info.Level, info.CurrentLevelProgress)
  }

  // Unverified catches stay off the leaderboard.
  if _, err := fx.rankingRepo.GetByUserAndFish(ctx, nil, user.ID, fish.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
    t.Errorf("expected no ranking row before verification, got err %v", err)
  }
}

func TestCreateWithLevelUnknownFish(t *testing.T) {
  fx := newCatchFixture(t)
  user := seedUser(t, fx.db, "angler")
  ctx := authedContext(user)

  _, err := fx.fishLogService.CreateWithLevel(ctx, &FishLogCreateRequest{FishID: uuid.New(), Length: 10})
  if !errors.Is(err, apperrors.ErrNotFound) {
    t.Errorf("expected ErrNotFound, got %v", err)
  }
}

func TestCreateWithLevelAccumulates(t *testing.T) {
  fx := newCatchFixture(t)
  user := seedUser(t, fx.db, "angler")
  fish := seedFish(t, fx.db, "우럭", 30, 10, 50)
  ctx := authedContext(user)

  if _, err := fx.fishLogService.CreateWithLevel(ctx, &FishLogCreateRequest{FishID: fish.ID, Length: 30}); err != nil {
    t.Fatalf("first catch failed: %v", err)
  }
  second, err := fx.fishLogService.CreateWithLevel(ctx, &FishLogCreateRequest{FishID: fish.ID, Length: 45})
  if err != nil {
    t.Fatalf("second catch failed: %v", err)
  }
  if second.FishLog.Score != 70 {
    t.Errorf("second score = %d, want 70", second.FishLog.Score)
  }

  lu := second.LevelUpdate
  if !lu.IsLevelUp || lu.NewLevel != 2 {
    t.Errorf("expected level up to 2, got level %d levelup %v", lu.NewLevel, lu.IsLevelUp)
  }
  if lu.Increment != (100-lu.PrevProgress)+lu.NewProgress {
    t.Errorf("increment = %d, want %d", lu.Increment, (100-lu.PrevProgress)+lu.NewProgress)
  }

  collection, err := fx.collectionRepo.GetByUserAndFish(ctx, nil, user.ID, fish.ID)
  if err != nil {
    t.Fatalf("collection lookup failed: %v", err)
  }
  if collection.TotalScore != 125 || collection.Level != 2 {
    t.Errorf("collection = total %d level %d, want 125/2", collection.TotalScore, collection.Level)
  }
  if collection.HighestScore != 70 || collection.HighestLength != 45 {
    t.Errorf("collection highest = %d/%v, want 70/45", collection.HighestScore, collection.HighestLength)
  }
  if collection.CurrentLevelProgress != 0.125 {
    t.Errorf("collection progress = %v, want 0.125", collection.CurrentLevelProgress)
  }
}

func TestGetMyLogsByFishIncludesCollection(t *testing.T) {
  fx := newCatchFixture(t)
  user := seedUser(t, fx.db, "angler")
  caught := seedFish(t, fx.db, "우럭", 30, 10, 50)
  uncaught := seedFish(t, fx.db, "참돔", 40, 12, 80)
  ctx := authedContext(user)

  if _, err := fx.fishLogService.CreateWithLevel(ctx, &FishLogCreateRequest{FishID: caught.ID, Length: 30}); err != nil {
    t.Fatalf("catch failed: %v", err)
  }

  list, err := fx.fishLogService.GetMyLogsByFish(ctx, caught.ID)
  if err != nil {
    t.Fatalf("GetMyLogsByFish failed: %v", err)
  }
  if len(list.Catches) != 1 {
    t.Errorf("catches = %d, want 1", len(list.Catches))
  }
  if list.SpeciesCollection == nil {
    t.Fatal("expected the dex entry alongside the catches")
  }
  if list.SpeciesCollection.TotalScore != 55 || list.SpeciesCollection.FishID != caught.ID {
    t.Errorf("collection = total %d fish %v, want 55/%v",
      list.SpeciesCollection.TotalScore, list.SpeciesCollection.FishID, caught.ID)
  }

  // A species never caught lists empty with a null dex entry, not an error.
  list, err = fx.fishLogService.GetMyLogsByFish(ctx, uncaught.ID)
  if err != nil {
    t.Fatalf("GetMyLogsByFish for uncaught species failed: %v", err)
  }
  if len(list.Catches) != 0 || list.SpeciesCollection != nil {
    t.Errorf("uncaught species = %d catches collection %v, want 0/nil", len(list.Catches), list.SpeciesCollection)
  }
}

func TestVerifyPromotesToRanking(t *testing.T) {
  fx := newCatchFixture(t)
  user := seedUser(t, fx.db, "angler")
  fish := seedFish(t, fx.db, "우럭", 30, 10, 50)
  ctx := authedContext(user)

  first, err := fx.fishLogService.CreateWithLevel(ctx, &FishLogCreateRequest{FishID: fish.ID, Length: 30})
  if err != nil {
    t.Fatalf("first catch failed: %v", err)
  }
  second, err := fx.fishLogService.CreateWithLevel(ctx, &FishLogCreateRequest{FishID: fish.ID, Length: 45})
  if err != nil {
    t.Fatalf("second catch failed: %v", err)
  }

  verified, err := fx.fishLogService.Verify(ctx, first.FishLog.ID)
  if err != nil {
    t.Fatalf("verify failed: %v", err)
  }
  if !verified.Certified {
    t.Error("verify should certify the log")
  }

  ranking, err := fx.rankingRepo.GetByUserAndFish(ctx, nil, user.ID, fish.ID)
  if err != nil {
    t.Fatalf("ranking lookup failed: %v", err)
  }
  if ranking.HighestScore != 55 || ranking.TotalScore != 55 || ranking.CatchCount != 1 {
    t.Errorf("ranking = highest %d total %d count %d, want 55/55/1", ranking.HighestScore, ranking.TotalScore, ranking.CatchCount)
  }

  // Verifying twice changes nothing.
  if _, err := fx.fishLogService.Verify(ctx, first.FishLog.ID); err != nil {
    t.Fatalf("repeat verify failed: %v", err)
  }
  ranking, _ = fx.rankingRepo.GetByUserAndFish(ctx, nil, user.ID, fish.ID)
  if ranking.TotalScore != 55 || ranking.CatchCount != 1 {
    t.Errorf("repeat verify mutated ranking: total %d count %d", ranking.TotalScore, ranking.CatchCount)
  }

  if _, err := fx.fishLogService.Verify(ctx, second.FishLog.ID); err != nil {
    t.Fatalf("second verify failed: %v", err)
  }
  ranking, _ = fx.rankingRepo.GetByUserAndFish(ctx, nil, user.ID, fish.ID)
  if ranking.HighestScore != 70 || ranking.HighestLength != 45 || ranking.TotalScore != 125 || ranking.CatchCount != 2 {
    t.Errorf("ranking = highest %d length %v total %d count %d, want 70/45/125/2",
      ranking.HighestScore, ranking.HighestLength, ranking.TotalScore, ranking.CatchCount)
  }
}

func TestVerifyDeniedForOtherUser(t *testing.T) {
  fx := newCatchFixture(t)
  owner := seedUser(t, fx.db, "owner")
  intruder := seedUser(t, fx.db, "intruder")
  fish := seedFish(t, fx.db, "우럭", 30, 10, 50)

  result, err := fx.fishLogService.CreateWithLevel(authedContext(owner), &FishLogCreateRequest{FishID: fish.ID, Length: 30})
  if err != nil {
    t.Fatalf("catch failed: %v", err)
  }

  _, err = fx.fishLogService.Verify(authedContext(intruder), result.FishLog.ID)
  if !errors.Is(err, apperrors.ErrNotFound) {
    t.Errorf("expected ErrNotFound for foreign log, got %v", err)
  }

  admin := seedUser(t, fx.db, "staff")
  fx.db.Model(&types.User{}).Where("id = ?", admin.ID).Update("role", types.RoleAdmin)
  admin.Role = types.RoleAdmin
  if _, err := fx.fishLogService.Verify(authedContext(admin), result.FishLog.ID); err != nil {
    t.Errorf("admin verify failed: %v", err)
  }
}

func TestRankingProjections(t *testing.T) {
  fx := newCatchFixture(t)
  user := seedUser(t, fx.db, "angler")
  fish := seedFish(t, fx.db, "우럭", 30, 10, 50)
  ctx := authedContext(user)

  result, err := fx.fishLogService.CreateWithLevel(ctx, &FishLogCreateRequest{FishID: fish.ID, Length: 45})
  if err != nil {
    t.Fatalf("catch failed: %v", err)
  }
  if _, err := fx.fishLogService.Verify(ctx, result.FishLog.ID); err != nil {
    t.Fatalf("verify failed: %v", err)
  }

  fishers, err := fx.rankingService.GetFisherRanking(ctx)
  if err != nil {
    t.Fatalf("fisher ranking failed: %v", err)
  }
  if len(fishers) != 1 || fishers[0].Name != "angler" || fishers[0].TotalScore != 70 {
    t.Errorf("fisher ranking = %+v, want one entry angler/70", fishers)
  }

  byFish, err := fx.rankingService.GetFishRankingByFish(ctx, fish.ID)
  if err != nil {
    t.Fatalf("fish ranking failed: %v", err)
  }
  if len(byFish) != 1 || byFish[0].FishName != "우럭" || byFish[0].HighestScore != 70 || byFish[0].CatchCount != 1 {
    t.Errorf("fish ranking = %+v, want one entry 우럭/70/1", byFish)
  }
  if byFish[0].Rank != 1 {
    t.Errorf("rank = %d, want 1", byFish[0].Rank)
  }
}
