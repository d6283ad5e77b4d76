package services

import (
  "fmt"
  "os"
  "path/filepath"
  "strings"
  "github.com/google/uuid"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/utils"
)

const maxUploadBytes = 10 << 20

var allowedImageExts = map[string]bool{
  ".jpg":  true,
  ".jpeg": true,
  ".png":  true,
  ".gif":  true,
}

// UploadService stores user-submitted catch photos under the upload root and
// hands back the public path the router serves them from.
type UploadService interface {
  SaveFishImage(data []byte, originalFilename string) (string, error)
}

type uploadService struct {
  log         *logger.Logger
  uploadPath  string
}

func NewUploadService(log *logger.Logger) UploadService {
  serviceLog := log.With("service", "UploadService")
  uploadPath := utils.GetEnv("FILE_UPLOAD_PATH", "uploads", log)
  return &uploadService{log: serviceLog, uploadPath: uploadPath}
}

func (us *uploadService) SaveFishImage(data []byte, originalFilename string) (string, error) {
  if len(data) == 0 {
    return "", fmt.Errorf("empty file: %w", apperrors.ErrInvalidArgument)
  }
  if len(data) > maxUploadBytes {
    return "", fmt.Errorf("file exceeds 10MiB limit: %w", apperrors.ErrInvalidArgument)
  }
  ext := strings.ToLower(filepath.Ext(originalFilename))
  if ext == "" {
    return "", fmt.Errorf("filename has no extension: %w", apperrors.ErrInvalidArgument)
  }
  if !allowedImageExts[ext] {
    return "", fmt.Errorf("unsupported image type %s: %w", ext, apperrors.ErrInvalidArgument)
  }

  dir := filepath.Join(us.uploadPath, "fish")
  if err := os.MkdirAll(dir, 0o755); err != nil {
    return "", fmt.Errorf("failed to create upload directory: %w", err)
  }
  filename := uuid.NewString() + ext
  fullPath := filepath.Join(dir, filename)
  if err := os.WriteFile(fullPath, data, 0o644); err != nil {
    return "", fmt.Errorf("failed to write upload: %w", err)
  }
  us.log.Info("Image uploaded", "path", fullPath, "bytes", len(data))
  return "/uploads/fish/" + filename, nil
}
