package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/fishiphedia/fishiphedia-backend/internal/services"
)

type BoardHandler struct {
  boardService  services.BoardService
}

func NewBoardHandler(boardService services.BoardService) *BoardHandler {
  return &BoardHandler{boardService: boardService}
}

func (bh *BoardHandler) Create(c *gin.Context) {
  var req services.BoardCreateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  board, err := bh.boardService.Create(c.Request.Context(), &req)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"board": board})
}

func (bh *BoardHandler) Update(c *gin.Context) {
  boardID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid board id"})
    return
  }
  var req services.BoardCreateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  board, err := bh.boardService.Update(c.Request.Context(), boardID, &req)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"board": board})
}

func (bh *BoardHandler) Delete(c *gin.Context) {
  boardID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid board id"})
    return
  }
  if err := bh.boardService.Delete(c.Request.Context(), boardID); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true"})
}

func (bh *BoardHandler) GetByID(c *gin.Context) {
  boardID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid board id"})
    return
  }
  board, err := bh.boardService.GetByID(c.Request.Context(), boardID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"board": board})
}

func (bh *BoardHandler) GetAll(c *gin.Context) {
  boards, err := bh.boardService.GetAll(c.Request.Context(), c.Query("category"))
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"boards": boards})
}

func (bh *BoardHandler) AddComment(c *gin.Context) {
  boardID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid board id"})
    return
  }
  var req services.CommentCreateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  comment, err := bh.boardService.AddComment(c.Request.Context(), boardID, &req)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"comment": comment})
}

func (bh *BoardHandler) GetComments(c *gin.Context) {
  boardID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid board id"})
    return
  }
  comments, err := bh.boardService.GetComments(c.Request.Context(), boardID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (bh *BoardHandler) DeleteComment(c *gin.Context) {
  commentID, err := uuid.Parse(c.Param("commentId"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
    return
  }
  if err := bh.boardService.DeleteComment(c.Request.Context(), commentID); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true"})
}
