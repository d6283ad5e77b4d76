package services

import (
  "context"
  "errors"
  "fmt"
  "time"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/repos"
  "github.com/fishiphedia/fishiphedia-backend/internal/requestdata"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
  "github.com/fishiphedia/fishiphedia-backend/internal/utils"
)

const (
  tokenTypeAccess  = "access"
  tokenTypeRefresh = "refresh"
)

type RegisterRequest struct {
  LoginID      string   `json:"login_id" binding:"required"`
  Password     string   `json:"password" binding:"required"`
  Name         string   `json:"name" binding:"required"`
  Email        string   `json:"email"`
  PhoneNumber  string   `json:"phone_number"`
}

type AuthTokens struct {
  AccessToken   string   `json:"access_token"`
  RefreshToken  string   `json:"refresh_token"`
  ExpiresIn     int      `json:"expires_in"`
}

type authClaims struct {
  UserID     string   `json:"user_id"`
  LoginID    string   `json:"login_id"`
  Role       string   `json:"role"`
  TokenType  string   `json:"token_type"`
  jwt.RegisteredClaims
}

type AuthService interface {
  Register(ctx context.Context, req *RegisterRequest) (*AuthTokens, error)
  Login(ctx context.Context, loginID, password string) (*AuthTokens, error)
  Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)
  // SetContextFromToken validates an access token and loads its identity
  // into the request context for downstream services.
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
  db               *gorm.DB
  log              *logger.Logger
  userRepo         repos.UserRepo
  userInfoRepo     repos.UserInfoRepo
  secret           []byte
  accessTTL        time.Duration
  refreshTTL       time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  userInfoRepo repos.UserInfoRepo,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  secret := utils.GetEnv("JWT_SECRET_KEY", "", log)
  if secret == "" {
    serviceLog.Fatal("JWT_SECRET_KEY is required")
  }
  accessMinutes := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 30, log)
  refreshMinutes := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 10080, log)
  return &authService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    userInfoRepo: userInfoRepo,
    secret:       []byte(secret),
    accessTTL:    time.Duration(accessMinutes) * time.Minute,
    refreshTTL:   time.Duration(refreshMinutes) * time.Minute,
  }
}

func (as *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthTokens, error) {
  if req == nil || req.LoginID == "" || req.Password == "" || req.Name == "" {
    return nil, fmt.Errorf("login id, password and name are required: %w", apperrors.ErrInvalidArgument)
  }

  hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
  if err != nil {
    return nil, fmt.Errorf("failed to hash password: %w", err)
  }

  var user *types.User
  err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    exists, err := as.userRepo.LoginIDExists(ctx, tx, req.LoginID)
    if err != nil {
      return fmt.Errorf("failed to check login id: %w", err)
    }
    if exists {
      return fmt.Errorf("login id already taken: %w", apperrors.ErrConflict)
    }
    nameExists, err := as.userInfoRepo.NameExists(ctx, tx, req.Name)
    if err != nil {
      return fmt.Errorf("failed to check name: %w", err)
    }
    if nameExists {
      return fmt.Errorf("name already taken: %w", apperrors.ErrConflict)
    }

    created, err := as.userRepo.Create(ctx, tx, &types.User{
      LoginID:  req.LoginID,
      Password: string(hashed),
      Role:     types.RoleUser,
    })
    if err != nil {
      return fmt.Errorf("failed to create user: %w", err)
    }
    if _, err := as.userInfoRepo.Create(ctx, tx, &types.UserInfo{
      UserID:      created.ID,
      Name:        req.Name,
      Email:       req.Email,
      PhoneNumber: req.PhoneNumber,
      Level:       1,
    }); err != nil {
      return fmt.Errorf("failed to create user info: %w", err)
    }
    user = created
    return nil
  })
  if err != nil {
    return nil, err
  }

  as.log.Info("User registered", "user_id", user.ID, "login_id", user.LoginID)
  return as.issueTokens(user)
}

func (as *authService) Login(ctx context.Context, loginID, password string) (*AuthTokens, error) {
  user, err := as.userRepo.GetByLoginID(ctx, nil, loginID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrAccessDenied)
    }
    return nil, fmt.Errorf("failed to load user: %w", err)
  }
  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
    return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrAccessDenied)
  }
  return as.issueTokens(user)
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {
  claims, err := as.parseToken(refreshToken)
  if err != nil {
    return nil, err
  }
  if claims.TokenType != tokenTypeRefresh {
    return nil, fmt.Errorf("not a refresh token: %w", apperrors.ErrAccessDenied)
  }
  userID, err := uuid.Parse(claims.UserID)
  if err != nil {
    return nil, fmt.Errorf("malformed token subject: %w", apperrors.ErrAccessDenied)
  }
  user, err := as.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("user no longer exists: %w", apperrors.ErrAccessDenied)
    }
    return nil, fmt.Errorf("failed to load user: %w", err)
  }
  return as.issueTokens(user)
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  claims, err := as.parseToken(tokenString)
  if err != nil {
    return ctx, err
  }
  if claims.TokenType != tokenTypeAccess {
    return ctx, fmt.Errorf("not an access token: %w", apperrors.ErrAccessDenied)
  }
  userID, err := uuid.Parse(claims.UserID)
  if err != nil {
    return ctx, fmt.Errorf("malformed token subject: %w", apperrors.ErrAccessDenied)
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
    LoginID:     claims.LoginID,
    Role:        claims.Role,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) issueTokens(user *types.User) (*AuthTokens, error) {
  access, err := as.signToken(user, tokenTypeAccess, as.accessTTL)
  if err != nil {
    return nil, err
  }
  refresh, err := as.signToken(user, tokenTypeRefresh, as.refreshTTL)
  if err != nil {
    return nil, err
  }
  return &AuthTokens{
    AccessToken:  access,
    RefreshToken: refresh,
    ExpiresIn:    int(as.accessTTL.Seconds()),
  }, nil
}

func (as *authService) signToken(user *types.User, tokenType string, ttl time.Duration) (string, error) {
  now := time.Now()
  claims := &authClaims{
    UserID:    user.ID.String(),
    LoginID:   user.LoginID,
    Role:      user.Role,
    TokenType: tokenType,
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      IssuedAt:  jwt.NewNumericDate(now),
      ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  signed, err := token.SignedString(as.secret)
  if err != nil {
    return "", fmt.Errorf("failed to sign token: %w", err)
  }
  return signed, nil
}

func (as *authService) parseToken(tokenString string) (*authClaims, error) {
  claims := &authClaims{}
  token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
    }
    return as.secret, nil
  })
  if err != nil || !token.Valid {
    return nil, fmt.Errorf("invalid token: %w", apperrors.ErrAccessDenied)
  }
  return claims, nil
}
