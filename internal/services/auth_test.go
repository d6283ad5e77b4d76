package services

import (
  "context"
  "errors"
  "testing"
  "github.com/google/uuid"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
  "github.com/fishiphedia/fishiphedia-backend/internal/repos"
  "github.com/fishiphedia/fishiphedia-backend/internal/requestdata"
)

func newAuthService(t *testing.T) AuthService {
  t.Helper()
  t.Setenv("JWT_SECRET_KEY", "test-secret")
  db := newTestDB(t)
  log := newTestLogger(t)
  userRepo := repos.NewUserRepo(db, log)
  userInfoRepo := repos.NewUserInfoRepo(db, log)
  return NewAuthService(db, log, userRepo, userInfoRepo)
}

func TestRegisterAndLogin(t *testing.T) {
  svc := newAuthService(t)
  ctx := context.Background()

  tokens, err := svc.Register(ctx, &RegisterRequest{LoginID: "angler1", Password: "pw123456", Name: "물고기왕"})
  if err != nil {
    t.Fatalf("Register failed: %v", err)
  }
  if tokens.AccessToken == "" || tokens.RefreshToken == "" || tokens.ExpiresIn <= 0 {
    t.Errorf("incomplete tokens: %+v", tokens)
  }

  if _, err := svc.Login(ctx, "angler1", "pw123456"); err != nil {
    t.Errorf("Login failed: %v", err)
  }
  if _, err := svc.Login(ctx, "angler1", "wrong"); !errors.Is(err, apperrors.ErrAccessDenied) {
    t.Errorf("expected ErrAccessDenied for bad password, got %v", err)
  }
  if _, err := svc.Login(ctx, "nobody", "pw123456"); !errors.Is(err, apperrors.ErrAccessDenied) {
    t.Errorf("expected ErrAccessDenied for unknown user, got %v", err)
  }
}

func TestRegisterConflicts(t *testing.T) {
  svc := newAuthService(t)
  ctx := context.Background()

  if _, err := svc.Register(ctx, &RegisterRequest{LoginID: "angler1", Password: "pw", Name: "첫째"}); err != nil {
    t.Fatalf("Register failed: %v", err)
  }
  if _, err := svc.Register(ctx, &RegisterRequest{LoginID: "angler1", Password: "pw", Name: "둘째"}); !errors.Is(err, apperrors.ErrConflict) {
    t.Errorf("expected ErrConflict for duplicate login id, got %v", err)
  }
  if _, err := svc.Register(ctx, &RegisterRequest{LoginID: "angler2", Password: "pw", Name: "첫째"}); !errors.Is(err, apperrors.ErrConflict) {
    t.Errorf("expected ErrConflict for duplicate name, got %v", err)
  }
  if _, err := svc.Register(ctx, &RegisterRequest{LoginID: "", Password: "pw", Name: "x"}); !errors.Is(err, apperrors.ErrInvalidArgument) {
    t.Errorf("expected ErrInvalidArgument for missing login id, got %v", err)
  }
}

func TestTokenRoundTrip(t *testing.T) {
  svc := newAuthService(t)
  ctx := context.Background()

  tokens, err := svc.Register(ctx, &RegisterRequest{LoginID: "angler1", Password: "pw", Name: "물고기왕"})
  if err != nil {
    t.Fatalf("Register failed: %v", err)
  }

  authedCtx, err := svc.SetContextFromToken(ctx, tokens.AccessToken)
  if err != nil {
    t.Fatalf("SetContextFromToken failed: %v", err)
  }
  rd := requestdata.GetRequestData(authedCtx)
  if rd == nil || rd.UserID == uuid.Nil || rd.LoginID != "angler1" {
    t.Errorf("unexpected request data: %+v", rd)
  }

  // A refresh token must not pass as an access token, and vice versa.
  if _, err := svc.SetContextFromToken(ctx, tokens.RefreshToken); !errors.Is(err, apperrors.ErrAccessDenied) {
    t.Errorf("expected ErrAccessDenied for refresh token, got %v", err)
  }
  if _, err := svc.Refresh(ctx, tokens.AccessToken); !errors.Is(err, apperrors.ErrAccessDenied) {
    t.Errorf("expected ErrAccessDenied for access token, got %v", err)
  }

  renewed, err := svc.Refresh(ctx, tokens.RefreshToken)
  if err != nil {
    t.Fatalf("Refresh failed: %v", err)
  }
  if renewed.AccessToken == "" {
    t.Error("refresh should mint a new access token")
  }

  if _, err := svc.SetContextFromToken(ctx, "garbage.token.here"); !errors.Is(err, apperrors.ErrAccessDenied) {
    t.Errorf("expected ErrAccessDenied for garbage token, got %v", err)
  }
}
