package handlers

import (
  "io"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/requestdata"
  "github.com/fishiphedia/fishiphedia-backend/internal/services"
)

const maxClassifyBytes = 10 << 20

type ClassificationHandler struct {
  log                    *logger.Logger
  classifierClient       services.FishClassifierClient
  classificationService  services.ClassificationService
}

func NewClassificationHandler(
  log *logger.Logger,
  classifierClient services.FishClassifierClient,
  classificationService services.ClassificationService,
) *ClassificationHandler {
  handlerLog := log.With("handler", "ClassificationHandler")
  return &ClassificationHandler{
    log:                   handlerLog,
    classifierClient:      classifierClient,
    classificationService: classificationService,
  }
}

// Predict runs the uploaded image through the vision model. Works with or
// without a logged-in user; the log row just loses its owner when anonymous.
func (clh *ClassificationHandler) Predict(c *gin.Context) {
  fileHeader, err := c.FormFile("image")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
    return
  }
  if fileHeader.Size > maxClassifyBytes {
    c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds 10MiB limit"})
    return
  }
  file, err := fileHeader.Open()
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open image"})
    return
  }
  defer file.Close()
  imageData, err := io.ReadAll(io.LimitReader(file, maxClassifyBytes+1))
  if err != nil || len(imageData) > maxClassifyBytes {
    c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
    return
  }

  ctx := c.Request.Context()
  var userID *uuid.UUID
  if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
    id := rd.UserID
    userID = &id
  }

  result, err := clh.classifierClient.Classify(ctx, imageData, fileHeader.Filename)
  if err != nil {
    respondError(c, err)
    return
  }

  // Demote sub-threshold predictions before anything is persisted, so the
  // log row never claims a detection the confidence does not support.
  detectionValid := clh.classificationService.ValidateDetection(result)

  clog, err := clh.classificationService.SaveLog(ctx, userID, result, imageData, fileHeader.Filename)
  if err != nil {
    respondError(c, err)
    return
  }

  if detectionValid {
    if _, err := clh.classificationService.SaveHighConfidence(ctx, userID, result, imageData, fileHeader.Filename); err != nil {
      clh.log.Warn("Failed to store high-confidence image", "log_id", clog.ID, "error", err)
    }
  }

  c.JSON(http.StatusOK, gin.H{
    "classification_log_id": clog.ID,
    "predicted_fish":        result.PredictedFish,
    "confidence":            clog.Confidence,
    "is_fish_detected":      result.IsFishDetected,
    "detected_species":      result.DetectedFish,
    "detection_valid":       detectionValid,
    "all_predictions":       result.AllPredictions,
  })
}

func (clh *ClassificationHandler) Health(c *gin.Context) {
  health, err := clh.classifierClient.Health(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, health)
}

func (clh *ClassificationHandler) GetMyLogs(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return
  }
  logs, err := clh.classificationService.GetUserLogs(c.Request.Context(), rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (clh *ClassificationHandler) GetMyWrongPredictions(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return
  }
  logs, err := clh.classificationService.GetWrongPredictions(c.Request.Context(), rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// GetMyStorage lists the caller's stored high-confidence classifications.
func (clh *ClassificationHandler) GetMyStorage(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return
  }
  rows, err := clh.classificationService.GetUserStorage(c.Request.Context(), rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"storage": rows})
}

// GetStorageStats reports how many archived images each species has.
func (clh *ClassificationHandler) GetStorageStats(c *gin.Context) {
  stats, err := clh.classificationService.GetStorageStats(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (clh *ClassificationHandler) GetCorrections(c *gin.Context) {
  logID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid classification log id"})
    return
  }
  corrections, err := clh.classificationService.GetCorrections(c.Request.Context(), logID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"corrections": corrections})
}

func (clh *ClassificationHandler) Feedback(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return
  }
  logID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid classification log id"})
    return
  }
  var req struct {
    CorrectedFishName  string   `json:"corrected_fish_name"`
    Reason             string   `json:"reason"`
    IsCorrect          *bool    `json:"is_correct"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  clog, err := clh.classificationService.UpdateFeedback(c.Request.Context(), rd.UserID, logID, req.CorrectedFishName, req.Reason, req.IsCorrect)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"log": clog})
}

func (clh *ClassificationHandler) LinkCatch(c *gin.Context) {
  logID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid classification log id"})
    return
  }
  var req struct {
    FishLogID  uuid.UUID   `json:"fish_log_id" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  clog, err := clh.classificationService.LinkToFishLog(c.Request.Context(), logID, req.FishLogID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"log": clog})
}
