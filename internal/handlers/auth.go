package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/fishiphedia/fishiphedia-backend/internal/services"
)

type AuthHandler struct {
  authService  services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req services.RegisterRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  tokens, err := ah.authService.Register(c.Request.Context(), &req)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, tokens)
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    LoginID   string   `json:"login_id"`
    Password  string   `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  tokens, err := ah.authService.Login(c.Request.Context(), req.LoginID, req.Password)
  if err != nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, tokens)
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
  var req struct {
    RefreshToken  string   `json:"refresh_token"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  tokens, err := ah.authService.Refresh(c.Request.Context(), req.RefreshToken)
  if err != nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, tokens)
}
