package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/fishiphedia/fishiphedia-backend/internal/logger"
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

type BoardRepo interface {
  Create(ctx context.Context, tx *gorm.DB, board *types.Board) (*types.Board, error)
  Save(ctx context.Context, tx *gorm.DB, board *types.Board) error
  Delete(ctx context.Context, tx *gorm.DB, boardID uuid.UUID) error
  GetByID(ctx context.Context, tx *gorm.DB, boardID uuid.UUID) (*types.Board, error)
  GetAll(ctx context.Context, tx *gorm.DB, category string) ([]*types.Board, error)
  CreateComment(ctx context.Context, tx *gorm.DB, comment *types.Comment) (*types.Comment, error)
  GetCommentByID(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (*types.Comment, error)
  GetCommentsByBoard(ctx context.Context, tx *gorm.DB, boardID uuid.UUID) ([]*types.Comment, error)
  DeleteComment(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) error
}

type boardRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBoardRepo(db *gorm.DB, baseLog *logger.Logger) BoardRepo {
  repoLog := baseLog.With("repo", "BoardRepo")
  return &boardRepo{db: db, log: repoLog}
}

func (br *boardRepo) Create(ctx context.Context, tx *gorm.DB, board *types.Board) (*types.Board, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  if err := transaction.WithContext(ctx).Create(board).Error; err != nil {
    return nil, err
  }
  return board, nil
}

func (br *boardRepo) Save(ctx context.Context, tx *gorm.DB, board *types.Board) error {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  return transaction.WithContext(ctx).Save(board).Error
}

func (br *boardRepo) Delete(ctx context.Context, tx *gorm.DB, boardID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  return transaction.WithContext(ctx).
    Where("id = ?", boardID).
    Delete(&types.Board{}).Error
}

func (br *boardRepo) GetByID(ctx context.Context, tx *gorm.DB, boardID uuid.UUID) (*types.Board, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  var result types.Board
  if err := transaction.WithContext(ctx).
    Where("id = ?", boardID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (br *boardRepo) GetAll(ctx context.Context, tx *gorm.DB, category string) ([]*types.Board, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  query := transaction.WithContext(ctx).Order("created_at desc")
  if category != "" {
    query = query.Where("category = ?", category)
  }
  var results []*types.Board
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (br *boardRepo) CreateComment(ctx context.Context, tx *gorm.DB, comment *types.Comment) (*types.Comment, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  if err := transaction.WithContext(ctx).Create(comment).Error; err != nil {
    return nil, err
  }
  return comment, nil
}

func (br *boardRepo) GetCommentByID(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (*types.Comment, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  var result types.Comment
  if err := transaction.WithContext(ctx).
    Where("id = ?", commentID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (br *boardRepo) GetCommentsByBoard(ctx context.Context, tx *gorm.DB, boardID uuid.UUID) ([]*types.Comment, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  var results []*types.Comment
  if err := transaction.WithContext(ctx).
    Where("board_id = ?", boardID).
    Order("created_at asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (br *boardRepo) DeleteComment(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  return transaction.WithContext(ctx).
    Where("id = ?", commentID).
    Delete(&types.Comment{}).Error
}
