package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/fishiphedia/fishiphedia-backend/internal/services"
)

type CollectionHandler struct {
  collectionService  services.FishCollectionService
}

func NewCollectionHandler(collectionService services.FishCollectionService) *CollectionHandler {
  return &CollectionHandler{collectionService: collectionService}
}

func (ch *CollectionHandler) GetMyCollection(c *gin.Context) {
  collection, err := ch.collectionService.GetMyCollection(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"collection": collection})
}

func (ch *CollectionHandler) GetMyCollectionByFish(c *gin.Context) {
  fishID, err := uuid.Parse(c.Param("fishId"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fish id"})
    return
  }
  entry, err := ch.collectionService.GetMyCollectionByFish(c.Request.Context(), fishID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"entry": entry})
}
