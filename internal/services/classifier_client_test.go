package services

import (
  "context"
  "encoding/json"
  "errors"
  "net/http"
  "net/http/httptest"
  "testing"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
)

func newTestClassifier(t *testing.T, handler http.Handler) FishClassifierClient {
  t.Helper()
  server := httptest.NewServer(handler)
  t.Cleanup(server.Close)
  t.Setenv("FASTAPI_URL", server.URL)
  return NewFishClassifierClient(newTestLogger(t))
}

func TestClassifyParsesResponse(t *testing.T) {
  var gotField string
  client := newTestClassifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost || r.URL.Path != "/predict" {
      t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
    }
    file, header, err := r.FormFile("file")
    if err != nil {
      t.Errorf("missing file part: %v", err)
    } else {
      gotField = header.Filename
      file.Close()
    }
    json.NewEncoder(w).Encode(map[string]interface{}{
      "predicted_fish":   "넙치",
      "confidence":       0.97,
      "is_fish_detected": true,
      "all_predictions": []map[string]interface{}{
        {"fish_name": "넙치", "confidence": 0.97},
        {"fish_name": "도다리", "confidence": 0.02},
      },
    })
  }))

  result, err := client.Classify(context.Background(), []byte("jpeg-bytes"), "catch.jpg")
  if err != nil {
    t.Fatalf("Classify failed: %v", err)
  }
  if gotField != "catch.jpg" {
    t.Errorf("uploaded filename = %q, want catch.jpg", gotField)
  }
  if result.PredictedFish != "넙치" || result.Confidence != 0.97 || !result.IsFishDetected {
    t.Errorf("unexpected result: %+v", result)
  }
  if result.DetectedFish == nil || *result.DetectedFish != "넙치" {
    t.Errorf("detected species = %v, want 넙치", result.DetectedFish)
  }
  if len(result.AllPredictions) != 2 || result.AllPredictions[1].FishName != "도다리" {
    t.Errorf("unexpected predictions: %+v", result.AllPredictions)
  }
}

func TestClassifyServerError(t *testing.T) {
  client := newTestClassifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    http.Error(w, "model not loaded", http.StatusInternalServerError)
  }))
  _, err := client.Classify(context.Background(), []byte("img"), "a.jpg")
  if !errors.Is(err, apperrors.ErrClassifierUnavailable) {
    t.Errorf("expected ErrClassifierUnavailable, got %v", err)
  }
}

func TestClassifyConnectionRefused(t *testing.T) {
  server := httptest.NewServer(http.NotFoundHandler())
  url := server.URL
  server.Close()
  t.Setenv("FASTAPI_URL", url)
  client := NewFishClassifierClient(newTestLogger(t))

  _, err := client.Classify(context.Background(), []byte("img"), "a.jpg")
  if !errors.Is(err, apperrors.ErrClassifierUnavailable) {
    t.Errorf("expected ErrClassifierUnavailable, got %v", err)
  }
}

func TestClassifyEmptyImage(t *testing.T) {
  client := newTestClassifier(t, http.NotFoundHandler())
  _, err := client.Classify(context.Background(), nil, "a.jpg")
  if !errors.Is(err, apperrors.ErrInvalidArgument) {
    t.Errorf("expected ErrInvalidArgument, got %v", err)
  }
}

func TestHealth(t *testing.T) {
  client := newTestClassifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    if r.URL.Path != "/health" {
      t.Errorf("unexpected path %s", r.URL.Path)
    }
    json.NewEncoder(w).Encode(map[string]interface{}{"status": "healthy", "model_loaded": true})
  }))
  health, err := client.Health(context.Background())
  if err != nil {
    t.Fatalf("Health failed: %v", err)
  }
  if health.Status != "healthy" || !health.ModelLoaded {
    t.Errorf("unexpected health: %+v", health)
  }
}

func TestHealthUnreachable(t *testing.T) {
  server := httptest.NewServer(http.NotFoundHandler())
  url := server.URL
  server.Close()
  t.Setenv("FASTAPI_URL", url)
  client := NewFishClassifierClient(newTestLogger(t))

  health, err := client.Health(context.Background())
  if err != nil {
    t.Fatalf("Health should not error when unreachable: %v", err)
  }
  if health.Status != "disconnected" || health.ModelLoaded {
    t.Errorf("unexpected health: %+v", health)
  }
}
