package services

import (
  "context"
  "errors"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/repos"
  "github.com/fishiphedia/fishiphedia-backend/internal/requestdata"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

type BoardCreateRequest struct {
  Title     string   `json:"title" binding:"required"`
  Content   string   `json:"content" binding:"required"`
  Category  string   `json:"category"`
}

type CommentCreateRequest struct {
  Content  string   `json:"content" binding:"required"`
}

type BoardService interface {
  Create(ctx context.Context, req *BoardCreateRequest) (*types.Board, error)
  Update(ctx context.Context, boardID uuid.UUID, req *BoardCreateRequest) (*types.Board, error)
  Delete(ctx context.Context, boardID uuid.UUID) error
  GetByID(ctx context.Context, boardID uuid.UUID) (*types.Board, error)
  GetAll(ctx context.Context, category string) ([]*types.Board, error)
  AddComment(ctx context.Context, boardID uuid.UUID, req *CommentCreateRequest) (*types.Comment, error)
  GetComments(ctx context.Context, boardID uuid.UUID) ([]*types.Comment, error)
  DeleteComment(ctx context.Context, commentID uuid.UUID) error
}

type boardService struct {
  db         *gorm.DB
  log        *logger.Logger
  boardRepo  repos.BoardRepo
}

func NewBoardService(db *gorm.DB, log *logger.Logger, boardRepo repos.BoardRepo) BoardService {
  serviceLog := log.With("service", "BoardService")
  return &boardService{db: db, log: serviceLog, boardRepo: boardRepo}
}

func (bs *boardService) Create(ctx context.Context, req *BoardCreateRequest) (*types.Board, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }
  if req == nil || req.Title == "" || req.Content == "" {
    return nil, fmt.Errorf("title and content are required: %w", apperrors.ErrInvalidArgument)
  }
  board := &types.Board{
    UserID:   rd.UserID,
    Title:    req.Title,
    Content:  req.Content,
    Category: req.Category,
  }
  return bs.boardRepo.Create(ctx, nil, board)
}

func (bs *boardService) Update(ctx context.Context, boardID uuid.UUID, req *BoardCreateRequest) (*types.Board, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }
  if req == nil || req.Title == "" || req.Content == "" {
    return nil, fmt.Errorf("title and content are required: %w", apperrors.ErrInvalidArgument)
  }
  var updated *types.Board
  err := bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    board, err := bs.loadBoard(ctx, tx, boardID)
    if err != nil {
      return err
    }
    if board.UserID != rd.UserID && !rd.IsAdmin() {
      return fmt.Errorf("board belongs to another user: %w", apperrors.ErrAccessDenied)
    }
    board.Title = req.Title
    board.Content = req.Content
    board.Category = req.Category
    if err := bs.boardRepo.Save(ctx, tx, board); err != nil {
      return fmt.Errorf("failed to save board: %w", err)
    }
    updated = board
    return nil
  })
  if err != nil {
    return nil, err
  }
  return updated, nil
}

func (bs *boardService) Delete(ctx context.Context, boardID uuid.UUID) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }
  return bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    board, err := bs.loadBoard(ctx, tx, boardID)
    if err != nil {
      return err
    }
    if board.UserID != rd.UserID && !rd.IsAdmin() {
      return fmt.Errorf("board belongs to another user: %w", apperrors.ErrAccessDenied)
    }
    return bs.boardRepo.Delete(ctx, tx, boardID)
  })
}

func (bs *boardService) GetByID(ctx context.Context, boardID uuid.UUID) (*types.Board, error) {
  return bs.loadBoard(ctx, nil, boardID)
}

func (bs *boardService) GetAll(ctx context.Context, category string) ([]*types.Board, error) {
  return bs.boardRepo.GetAll(ctx, nil, category)
}

func (bs *boardService) AddComment(ctx context.Context, boardID uuid.UUID, req *CommentCreateRequest) (*types.Comment, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }
  if req == nil || req.Content == "" {
    return nil, fmt.Errorf("comment content is required: %w", apperrors.ErrInvalidArgument)
  }
  var comment *types.Comment
  err := bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := bs.loadBoard(ctx, tx, boardID); err != nil {
      return err
    }
    created, err := bs.boardRepo.CreateComment(ctx, tx, &types.Comment{
      BoardID: boardID,
      UserID:  rd.UserID,
      Content: req.Content,
    })
    if err != nil {
      return fmt.Errorf("failed to create comment: %w", err)
    }
    comment = created
    return nil
  })
  if err != nil {
    return nil, err
  }
  return comment, nil
}

func (bs *boardService) GetComments(ctx context.Context, boardID uuid.UUID) ([]*types.Comment, error) {
  if _, err := bs.loadBoard(ctx, nil, boardID); err != nil {
    return nil, err
  }
  return bs.boardRepo.GetCommentsByBoard(ctx, nil, boardID)
}

func (bs *boardService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return fmt.Errorf("missing request data: %w", apperrors.ErrAccessDenied)
  }
  return bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    comment, err := bs.boardRepo.GetCommentByID(ctx, tx, commentID)
    if err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return fmt.Errorf("comment not found: %w", apperrors.ErrNotFound)
      }
      return fmt.Errorf("failed to load comment: %w", err)
    }
    if comment.UserID != rd.UserID && !rd.IsAdmin() {
      return fmt.Errorf("comment belongs to another user: %w", apperrors.ErrAccessDenied)
    }
    return bs.boardRepo.DeleteComment(ctx, tx, commentID)
  })
}

func (bs *boardService) loadBoard(ctx context.Context, tx *gorm.DB, boardID uuid.UUID) (*types.Board, error) {
  board, err := bs.boardRepo.GetByID(ctx, tx, boardID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("board not found: %w", apperrors.ErrNotFound)
    }
    return nil, fmt.Errorf("failed to load board: %w", err)
  }
  return board, nil
}
