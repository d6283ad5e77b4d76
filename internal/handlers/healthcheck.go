package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/services"
)

type HealthcheckHandler struct {
  db                *gorm.DB
  classifierClient  services.FishClassifierClient
}

func NewHealthcheckHandler(db *gorm.DB, classifierClient services.FishClassifierClient) *HealthcheckHandler {
  return &HealthcheckHandler{db: db, classifierClient: classifierClient}
}

func (hh *HealthcheckHandler) Healthcheck(c *gin.Context) {
  dbStatus := "ok"
  sqlDB, err := hh.db.DB()
  if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
    dbStatus = "down"
  }
  classifier, _ := hh.classifierClient.Health(c.Request.Context())
  c.JSON(http.StatusOK, gin.H{
    "status":      "ok",
    "database":    dbStatus,
    "classifier":  classifier,
  })
}
