package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/fishiphedia/fishiphedia-backend/internal/services"
)

type RankingHandler struct {
  rankingService  services.RankingService
}

func NewRankingHandler(rankingService services.RankingService) *RankingHandler {
  return &RankingHandler{rankingService: rankingService}
}

func (rh *RankingHandler) GetFisherRanking(c *gin.Context) {
  ranking, err := rh.rankingService.GetFisherRanking(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"ranking": ranking})
}

func (rh *RankingHandler) GetFishRanking(c *gin.Context) {
  ranking, err := rh.rankingService.GetFishRanking(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"ranking": ranking})
}

func (rh *RankingHandler) GetFishRankingByFish(c *gin.Context) {
  fishID, err := uuid.Parse(c.Param("fishId"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fish id"})
    return
  }
  ranking, err := rh.rankingService.GetFishRankingByFish(c.Request.Context(), fishID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"ranking": ranking})
}
