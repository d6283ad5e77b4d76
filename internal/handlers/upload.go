package handlers

import (
  "io"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/fishiphedia/fishiphedia-backend/internal/services"
)

const maxUploadRequestBytes = 10 << 20

type UploadHandler struct {
  uploadService  services.UploadService
}

func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
  return &UploadHandler{uploadService: uploadService}
}

func (uh *UploadHandler) UploadFishImage(c *gin.Context) {
  fileHeader, err := c.FormFile("image")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
    return
  }
  if fileHeader.Size > maxUploadRequestBytes {
    c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds 10MiB limit"})
    return
  }
  file, err := fileHeader.Open()
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open image"})
    return
  }
  defer file.Close()
  data, err := io.ReadAll(io.LimitReader(file, maxUploadRequestBytes+1))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
    return
  }
  path, err := uh.uploadService.SaveFishImage(data, fileHeader.Filename)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"path": path})
}
