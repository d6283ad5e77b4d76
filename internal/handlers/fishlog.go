package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/fishiphedia/fishiphedia-backend/internal/services"
)

type FishLogHandler struct {
  fishLogService  services.FishLogService
}

func NewFishLogHandler(fishLogService services.FishLogService) *FishLogHandler {
  return &FishLogHandler{fishLogService: fishLogService}
}

func (flh *FishLogHandler) Create(c *gin.Context) {
  var req services.FishLogCreateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  result, err := flh.fishLogService.CreateWithLevel(c.Request.Context(), &req)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, result)
}

// GetMyLogs lists the caller's catches, optionally narrowed to one species
// via the fish_id query parameter. The narrowed form also carries the dex
// entry for that species, null when none exists yet.
func (flh *FishLogHandler) GetMyLogs(c *gin.Context) {
  if fishIDParam := c.Query("fish_id"); fishIDParam != "" {
    fishID, err := uuid.Parse(fishIDParam)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fish id"})
      return
    }
    list, err := flh.fishLogService.GetMyLogsByFish(c.Request.Context(), fishID)
    if err != nil {
      respondError(c, err)
      return
    }
    c.JSON(http.StatusOK, list)
    return
  }
  logs, err := flh.fishLogService.GetMyLogs(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (flh *FishLogHandler) GetByID(c *gin.Context) {
  fishLogID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fish log id"})
    return
  }
  fishLog, err := flh.fishLogService.GetMyLogByID(c.Request.Context(), fishLogID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"log": fishLog})
}

func (flh *FishLogHandler) Verify(c *gin.Context) {
  fishLogID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fish log id"})
    return
  }
  fishLog, err := flh.fishLogService.Verify(c.Request.Context(), fishLogID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"log": fishLog})
}
