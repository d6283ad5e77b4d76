package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/fishiphedia/fishiphedia-backend/internal/repos"
  "github.com/fishiphedia/fishiphedia-backend/internal/services"
)

type SpotHandler struct {
  spotService  services.SpotService
}

func NewSpotHandler(spotService services.SpotService) *SpotHandler {
  return &SpotHandler{spotService: spotService}
}

func (sh *SpotHandler) Create(c *gin.Context) {
  var req services.SpotCreateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  spot, err := sh.spotService.Create(c.Request.Context(), &req)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"spot": spot})
}

func (sh *SpotHandler) GetByID(c *gin.Context) {
  spotID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spot id"})
    return
  }
  spot, err := sh.spotService.GetByID(c.Request.Context(), spotID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"spot": spot})
}

func (sh *SpotHandler) Search(c *gin.Context) {
  search := repos.SpotSearch{
    Region:   c.Query("region"),
    SpotType: c.Query("spot_type"),
    Keyword:  c.Query("keyword"),
  }
  spots, err := sh.spotService.Search(c.Request.Context(), search)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"spots": spots})
}
