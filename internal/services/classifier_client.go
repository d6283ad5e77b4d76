package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "mime/multipart"
  "net/http"
  "time"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/utils"
)

// FishPrediction is one ranked candidate from the vision model.
type FishPrediction struct {
  FishName    string    `json:"fish_name"`
  Confidence  float64   `json:"confidence"`
}

// ClassificationResult is the raw model output. Confidence is in [0,1] here;
// the archive converts to a percentage when persisting. DetectedFish mirrors
// PredictedFish while the detection stands and is cleared when the prediction
// fails its confidence threshold.
type ClassificationResult struct {
  PredictedFish   string            `json:"predicted_fish"`
  Confidence      float64           `json:"confidence"`
  IsFishDetected  bool              `json:"is_fish_detected"`
  DetectedFish    *string           `json:"detected_species,omitempty"`
  AllPredictions  []FishPrediction  `json:"all_predictions"`
}

type ClassifierHealth struct {
  Status       string   `json:"status"`
  ModelLoaded  bool     `json:"model_loaded"`
}

// FishClassifierClient talks to the FastAPI vision service. The classifier is
// best-effort: every transport or decode failure comes back wrapped in
// apperrors.ErrClassifierUnavailable so callers can degrade instead of failing.
type FishClassifierClient interface {
  Classify(ctx context.Context, imageData []byte, originalFilename string) (*ClassificationResult, error)
  Health(ctx context.Context) (*ClassifierHealth, error)
}

type fishClassifierClient struct {
  httpClient  *http.Client
  log         *logger.Logger
  baseURL     string
}

func NewFishClassifierClient(log *logger.Logger) FishClassifierClient {
  serviceLog := log.With("service", "FishClassifierClient")
  baseURL := utils.GetEnv("FASTAPI_URL", "http://localhost:8000", log)
  timeoutSeconds := utils.GetEnvAsInt("FASTAPI_TIMEOUT", 30, log)
  return &fishClassifierClient{
    httpClient: &http.Client{
      Timeout: time.Duration(timeoutSeconds) * time.Second,
    },
    log:     serviceLog,
    baseURL: baseURL,
  }
}

func (c *fishClassifierClient) Classify(ctx context.Context, imageData []byte, originalFilename string) (*ClassificationResult, error) {
  if len(imageData) == 0 {
    return nil, fmt.Errorf("empty image: %w", apperrors.ErrInvalidArgument)
  }
  if originalFilename == "" {
    originalFilename = "upload.jpg"
  }

  var body bytes.Buffer
  writer := multipart.NewWriter(&body)
  part, err := writer.CreateFormFile("file", originalFilename)
  if err != nil {
    return nil, fmt.Errorf("failed to build multipart body: %w", err)
  }
  if _, err := part.Write(imageData); err != nil {
    return nil, fmt.Errorf("failed to build multipart body: %w", err)
  }
  if err := writer.Close(); err != nil {
    return nil, fmt.Errorf("failed to build multipart body: %w", err)
  }

  req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", &body)
  if err != nil {
    return nil, fmt.Errorf("failed to build classify request: %w", err)
  }
  req.Header.Set("Content-Type", writer.FormDataContentType())

  resp, err := c.httpClient.Do(req)
  if err != nil {
    c.log.Warn("Classifier request failed", "error", err)
    return nil, fmt.Errorf("classify request failed: %w", apperrors.ErrClassifierUnavailable)
  }
  defer resp.Body.Close()

  if resp.StatusCode != http.StatusOK {
    raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
    c.log.Warn("Classifier returned non-200", "status", resp.StatusCode, "body", string(raw))
    return nil, fmt.Errorf("classifier returned status %d: %w", resp.StatusCode, apperrors.ErrClassifierUnavailable)
  }

  var result ClassificationResult
  if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
    c.log.Warn("Classifier response could not be decoded", "error", err)
    return nil, fmt.Errorf("malformed classifier response: %w", apperrors.ErrClassifierUnavailable)
  }
  if result.IsFishDetected && result.DetectedFish == nil {
    detected := result.PredictedFish
    result.DetectedFish = &detected
  }
  return &result, nil
}

func (c *fishClassifierClient) Health(ctx context.Context) (*ClassifierHealth, error) {
  req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
  if err != nil {
    return nil, fmt.Errorf("failed to build health request: %w", err)
  }
  resp, err := c.httpClient.Do(req)
  if err != nil {
    // A dead classifier is a valid health answer, not an error.
    return &ClassifierHealth{Status: "disconnected", ModelLoaded: false}, nil
  }
  defer resp.Body.Close()

  if resp.StatusCode != http.StatusOK {
    return &ClassifierHealth{Status: "error", ModelLoaded: false}, nil
  }
  var health ClassifierHealth
  if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
    return &ClassifierHealth{Status: "error", ModelLoaded: false}, nil
  }
  return &health, nil
}
