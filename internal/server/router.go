package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/fishiphedia/fishiphedia-backend/internal/handlers"
  "github.com/fishiphedia/fishiphedia-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware         *middleware.AuthMiddleware
  HealthcheckHandler     *handlers.HealthcheckHandler
  AuthHandler            *handlers.AuthHandler
  UserHandler            *handlers.UserHandler
  FishHandler            *handlers.FishHandler
  FishLogHandler         *handlers.FishLogHandler
  CollectionHandler      *handlers.CollectionHandler
  ClassificationHandler  *handlers.ClassificationHandler
  RankingHandler         *handlers.RankingHandler
  UploadHandler          *handlers.UploadHandler
  BoardHandler           *handlers.BoardHandler
  SpotHandler            *handlers.SpotHandler
  UploadPath             string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.Static("/uploads", cfg.UploadPath)

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
  api := router.Group("/api")
  {
    api.POST("/user/register", cfg.AuthHandler.Register)
    api.POST("/user/login", cfg.AuthHandler.Login)
    api.POST("/user/refresh", cfg.AuthHandler.Refresh)

    api.GET("/fish", cfg.FishHandler.GetAll)
    api.GET("/fish/:id", cfg.FishHandler.GetByID)
    api.GET("/fish/:id/average-score", cfg.FishHandler.GetAverageScore)

    api.GET("/ranking/fisher", cfg.RankingHandler.GetFisherRanking)
    api.GET("/ranking/fish", cfg.RankingHandler.GetFishRanking)
    api.GET("/ranking/fish/:fishId", cfg.RankingHandler.GetFishRankingByFish)

    api.GET("/spot", cfg.SpotHandler.Search)
    api.GET("/spot/:id", cfg.SpotHandler.GetByID)

    api.GET("/board", cfg.BoardHandler.GetAll)
    api.GET("/board/:id", cfg.BoardHandler.GetByID)
    api.GET("/board/:id/comments", cfg.BoardHandler.GetComments)

    api.GET("/classification/health", cfg.ClassificationHandler.Health)
    // Prediction works anonymously but keeps the owner when a token is sent.
    api.POST("/classification/predict",
      cfg.AuthMiddleware.OptionalAuth(),
      cfg.ClassificationHandler.Predict)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // User
  protected.GET("/user/me", cfg.UserHandler.GetMe)
  // Fish logs
  protected.POST("/fishlog", cfg.FishLogHandler.Create)
  protected.GET("/fishlog", cfg.FishLogHandler.GetMyLogs)
  protected.GET("/fishlog/:id", cfg.FishLogHandler.GetByID)
  protected.POST("/fishlog/:id/verify", cfg.FishLogHandler.Verify)
  // Collection
  protected.GET("/collection", cfg.CollectionHandler.GetMyCollection)
  protected.GET("/collection/:fishId", cfg.CollectionHandler.GetMyCollectionByFish)
  // Classification history
  protected.GET("/classification/logs", cfg.ClassificationHandler.GetMyLogs)
  protected.GET("/classification/corrected", cfg.ClassificationHandler.GetMyWrongPredictions)
  protected.GET("/classification/storage", cfg.ClassificationHandler.GetMyStorage)
  protected.GET("/classification/stats", cfg.ClassificationHandler.GetStorageStats)
  protected.GET("/classification/logs/:id/corrections", cfg.ClassificationHandler.GetCorrections)
  protected.POST("/classification/logs/:id/feedback", cfg.ClassificationHandler.Feedback)
  protected.POST("/classification/logs/:id/link-catch", cfg.ClassificationHandler.LinkCatch)
  // Upload
  protected.POST("/upload/fish", cfg.UploadHandler.UploadFishImage)
  // Board
  protected.POST("/board", cfg.BoardHandler.Create)
  protected.PUT("/board/:id", cfg.BoardHandler.Update)
  protected.DELETE("/board/:id", cfg.BoardHandler.Delete)
  protected.POST("/board/:id/comments", cfg.BoardHandler.AddComment)
  protected.DELETE("/comment/:commentId", cfg.BoardHandler.DeleteComment)

// ===============
// || Admin     ||
// ===============
  admin := router.Group("/api")
  admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
  // Encyclopedia management
  admin.POST("/fish", cfg.FishHandler.Create)
  admin.PUT("/fish/:id", cfg.FishHandler.Update)
  admin.DELETE("/fish/:id", cfg.FishHandler.Delete)
  // Spot directory management
  admin.POST("/spot", cfg.SpotHandler.Create)

  return router
}
