package main

import (
  "fmt"
  "os"
  "github.com/fishiphedia/fishiphedia-backend/internal/db"
  "github.com/fishiphedia/fishiphedia-backend/internal/handlers"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/middleware"
  "github.com/fishiphedia/fishiphedia-backend/internal/repos"
  "github.com/fishiphedia/fishiphedia-backend/internal/server"
  "github.com/fishiphedia/fishiphedia-backend/internal/services"
  "github.com/fishiphedia/fishiphedia-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userInfoRepo := repos.NewUserInfoRepo(thePG, log)
  fishRepo := repos.NewFishRepo(thePG, log)
  fishLogRepo := repos.NewFishLogRepo(thePG, log)
  fishCollectionRepo := repos.NewFishCollectionRepo(thePG, log)
  rankingCollectionRepo := repos.NewRankingCollectionRepo(thePG, log)
  classificationLogRepo := repos.NewClassificationLogRepo(thePG, log)
  classificationStorageRepo := repos.NewClassificationStorageRepo(thePG, log)
  boardRepo := repos.NewBoardRepo(thePG, log)
  spotRepo := repos.NewSpotRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, userInfoRepo)
  userService := services.NewUserService(thePG, log, userRepo, userInfoRepo)
  fishService := services.NewFishService(thePG, log, fishRepo, fishLogRepo)
  classifierClient := services.NewFishClassifierClient(log)
  classificationService := services.NewClassificationService(thePG, log, classificationLogRepo, classificationStorageRepo)
  collectionService := services.NewFishCollectionService(thePG, log, fishCollectionRepo, userInfoRepo)
  rankingService := services.NewRankingService(thePG, log, rankingCollectionRepo, fishLogRepo, userInfoRepo)
  fishLogService := services.NewFishLogService(thePG, log, fishRepo, fishLogRepo, collectionService, rankingService, classificationService)
  uploadService := services.NewUploadService(log)
  boardService := services.NewBoardService(thePG, log, boardRepo)
  spotService := services.NewSpotService(thePG, log, spotRepo)

  // Handlers
  log.Info("Setting up Handlers from main...")
  healthcheckHandler := handlers.NewHealthcheckHandler(thePG, classifierClient)
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  fishHandler := handlers.NewFishHandler(fishService)
  fishLogHandler := handlers.NewFishLogHandler(fishLogService)
  collectionHandler := handlers.NewCollectionHandler(collectionService)
  classificationHandler := handlers.NewClassificationHandler(log, classifierClient, classificationService)
  rankingHandler := handlers.NewRankingHandler(rankingService)
  uploadHandler := handlers.NewUploadHandler(uploadService)
  boardHandler := handlers.NewBoardHandler(boardService)
  spotHandler := handlers.NewSpotHandler(spotService)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  uploadPath := utils.GetEnv("FILE_UPLOAD_PATH", "uploads", log)
  router := server.NewRouter(server.RouterConfig{
    AuthMiddleware:        authMiddleware,
    HealthcheckHandler:    healthcheckHandler,
    AuthHandler:           authHandler,
    UserHandler:           userHandler,
    FishHandler:           fishHandler,
    FishLogHandler:        fishLogHandler,
    CollectionHandler:     collectionHandler,
    ClassificationHandler: classificationHandler,
    RankingHandler:        rankingHandler,
    UploadHandler:         uploadHandler,
    BoardHandler:          boardHandler,
    SpotHandler:           spotHandler,
    UploadPath:            uploadPath,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Starting server...", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
