package services

import (
  "bytes"
  "errors"
  "os"
  "path/filepath"
  "strings"
  "testing"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
)

func newUploadFixture(t *testing.T) (UploadService, string) {
  t.Helper()
  uploadPath := t.TempDir()
  t.Setenv("FILE_UPLOAD_PATH", uploadPath)
  return NewUploadService(newTestLogger(t)), uploadPath
}

func TestSaveFishImage(t *testing.T) {
  svc, uploadPath := newUploadFixture(t)

  path, err := svc.SaveFishImage([]byte("jpeg-bytes"), "My Catch.JPG")
  if err != nil {
    t.Fatalf("SaveFishImage failed: %v", err)
  }
  if !strings.HasPrefix(path, "/uploads/fish/") || !strings.HasSuffix(path, ".jpg") {
    t.Errorf("path = %q, want /uploads/fish/<uuid>.jpg", path)
  }
  onDisk := filepath.Join(uploadPath, "fish", filepath.Base(path))
  data, err := os.ReadFile(onDisk)
  if err != nil {
    t.Fatalf("uploaded file missing: %v", err)
  }
  if !bytes.Equal(data, []byte("jpeg-bytes")) {
    t.Error("stored bytes differ from upload")
  }
}

func TestSaveFishImageValidation(t *testing.T) {
  svc, _ := newUploadFixture(t)
  tests := []struct {
    name      string
    data      []byte
    filename  string
  }{
    {"empty file", nil, "a.jpg"},
    {"no extension", []byte("img"), "noext"},
    {"wrong type", []byte("img"), "doc.pdf"},
    {"oversized", make([]byte, maxUploadBytes+1), "big.png"},
  }
  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      if _, err := svc.SaveFishImage(tt.data, tt.filename); !errors.Is(err, apperrors.ErrInvalidArgument) {
        t.Errorf("expected ErrInvalidArgument, got %v", err)
      }
    })
  }
}
