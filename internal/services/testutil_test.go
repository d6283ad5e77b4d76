package services

import (
  "context"
  "testing"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/requestdata"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("failed to open sqlite: %v", err)
  }
  sqlDB, err := db.DB()
  if err != nil {
    t.Fatalf("failed to get sql db: %v", err)
  }
  // A second connection to :memory: would see an empty database.
  sqlDB.SetMaxOpenConns(1)
  err = db.AutoMigrate(
    &types.User{},
    &types.UserInfo{},
    &types.Fish{},
    &types.FishLog{},
    &types.FishCollection{},
    &types.RankingCollection{},
    &types.ClassificationLog{},
    &types.ClassificationCorrectionHistory{},
    &types.ClassificationStorage{},
    &types.Board{},
    &types.Comment{},
    &types.Spot{},
  )
  if err != nil {
    t.Fatalf("failed to migrate: %v", err)
  }
  return db
}

func newTestLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("failed to init logger: %v", err)
  }
  t.Cleanup(log.Sync)
  return log
}

func seedUser(t *testing.T, db *gorm.DB, name string) *types.User {
  t.Helper()
  user := &types.User{LoginID: name + "-login", Password: "x", Role: types.RoleUser}
  if err := db.Create(user).Error; err != nil {
    t.Fatalf("failed to seed user: %v", err)
  }
  info := &types.UserInfo{UserID: user.ID, Name: name, Level: 1}
  if err := db.Create(info).Error; err != nil {
    t.Fatalf("failed to seed user info: %v", err)
  }
  return user
}

func seedFish(t *testing.T, db *gorm.DB, name string, avgLength, stdDeviation float64, rarityScore int) *types.Fish {
  t.Helper()
  fish := &types.Fish{Name: name, AvgLength: avgLength, StdDeviation: stdDeviation, RarityScore: rarityScore}
  if err := db.Create(fish).Error; err != nil {
    t.Fatalf("failed to seed fish: %v", err)
  }
  return fish
}

func authedContext(user *types.User) context.Context {
  rd := &requestdata.RequestData{
    UserID:  user.ID,
    LoginID: user.LoginID,
    Role:    user.Role,
  }
  return requestdata.WithRequestData(context.Background(), rd)
}
