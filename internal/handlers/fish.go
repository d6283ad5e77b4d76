package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/fishiphedia/fishiphedia-backend/internal/services"
)

type FishHandler struct {
  fishService  services.FishService
}

func NewFishHandler(fishService services.FishService) *FishHandler {
  return &FishHandler{fishService: fishService}
}

func (fh *FishHandler) Create(c *gin.Context) {
  var req services.FishCreateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  fish, err := fh.fishService.Create(c.Request.Context(), &req)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"fish": fish})
}

func (fh *FishHandler) Update(c *gin.Context) {
  fishID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fish id"})
    return
  }
  var req services.FishCreateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  fish, err := fh.fishService.Update(c.Request.Context(), fishID, &req)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"fish": fish})
}

func (fh *FishHandler) Delete(c *gin.Context) {
  fishID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fish id"})
    return
  }
  if err := fh.fishService.Delete(c.Request.Context(), fishID); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true"})
}

func (fh *FishHandler) GetAll(c *gin.Context) {
  fishes, err := fh.fishService.GetAll(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"fishes": fishes})
}

func (fh *FishHandler) GetByID(c *gin.Context) {
  fishID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fish id"})
    return
  }
  fish, err := fh.fishService.GetByID(c.Request.Context(), fishID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"fish": fish})
}

func (fh *FishHandler) GetAverageScore(c *gin.Context) {
  fishID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fish id"})
    return
  }
  average, err := fh.fishService.GetAverageScore(c.Request.Context(), fishID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"average": average})
}
