package services

import (
  "context"
  "errors"
  "fmt"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/repos"
  "github.com/fishiphedia/fishiphedia-backend/internal/requestdata"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

// UserProfile joins the account row with its profile aggregate.
type UserProfile struct {
  User      *types.User      `json:"user"`
  UserInfo  *types.UserInfo  `json:"user_info"`
}

type UserService interface {
  GetMe(ctx context.Context) (*UserProfile, error)
}

type userService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  userInfoRepo  repos.UserInfoRepo
}

func NewUserService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  userInfoRepo repos.UserInfoRepo,
) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    userInfoRepo: userInfoRepo,
  }
}

func (us *userService) GetMe(ctx context.Context) (*UserProfile, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }
  user, err := us.userRepo.GetByID(ctx, nil, rd.UserID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
    }
    return nil, fmt.Errorf("failed to load user: %w", err)
  }
  info, err := us.userInfoRepo.GetByUserID(ctx, nil, rd.UserID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("user profile not found: %w", apperrors.ErrNotFound)
    }
    return nil, fmt.Errorf("failed to load user profile: %w", err)
  }
  return &UserProfile{User: user, UserInfo: info}, nil
}
