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
  "github.com/fishiphedia/fishiphedia-backend/internal/types"
)

// FisherRankingEntry is one row of the overall fisher leaderboard.
type FisherRankingEntry struct {
  Rank        int        `json:"rank"`
  UserID      uuid.UUID  `json:"user_id"`
  Name        string     `json:"name"`
  TotalScore  int        `json:"total_score"`
}

// FishRankingEntry is one row of a per-species (or all-species) leaderboard.
type FishRankingEntry struct {
  Rank           int        `json:"rank"`
  UserID         uuid.UUID  `json:"user_id"`
  Name           string     `json:"name"`
  FishID         uuid.UUID  `json:"fish_id"`
  FishName       string     `json:"fish_name"`
  HighestScore   int        `json:"highest_score"`
  HighestLength  float64    `json:"highest_length"`
  TotalScore     int        `json:"total_score"`
  CatchCount     int        `json:"catch_count"`
}

// RankingService maintains the verified-only leaderboard aggregates. Only
// certified fish logs count here; unverified catches stay invisible no matter
// how high they score.
type RankingService interface {
  // Recalculate rebuilds the (user, fish) ranking row from that user's
  // certified logs. Runs inside the caller's transaction.
  Recalculate(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) error
  GetFisherRanking(ctx context.Context) ([]FisherRankingEntry, error)
  GetFishRanking(ctx context.Context) ([]FishRankingEntry, error)
  GetFishRankingByFish(ctx context.Context, fishID uuid.UUID) ([]FishRankingEntry, error)
}

type rankingService struct {
  db            *gorm.DB
  log           *logger.Logger
  rankingRepo   repos.RankingCollectionRepo
  fishLogRepo   repos.FishLogRepo
  userInfoRepo  repos.UserInfoRepo
}

func NewRankingService(
  db *gorm.DB,
  log *logger.Logger,
  rankingRepo repos.RankingCollectionRepo,
  fishLogRepo repos.FishLogRepo,
  userInfoRepo repos.UserInfoRepo,
) RankingService {
  serviceLog := log.With("service", "RankingService")
  return &rankingService{
    db:           db,
    log:          serviceLog,
    rankingRepo:  rankingRepo,
    fishLogRepo:  fishLogRepo,
    userInfoRepo: userInfoRepo,
  }
}

func (rs *rankingService) Recalculate(ctx context.Context, tx *gorm.DB, userID, fishID uuid.UUID) error {
  if tx == nil {
    return fmt.Errorf("ranking recalculation requires a transaction: %w", apperrors.ErrInvalidArgument)
  }
  logs, err := rs.fishLogRepo.GetCertifiedByUserAndFish(ctx, tx, userID, fishID)
  if err != nil {
    return fmt.Errorf("failed to load certified logs: %w", err)
  }

  var highestScore, totalScore int
  var highestLength float64
  for _, fishLog := range logs {
    totalScore += fishLog.Score
    if fishLog.Score > highestScore {
      highestScore = fishLog.Score
      highestLength = fishLog.Length
    }
  }

  ranking, err := rs.rankingRepo.GetByUserAndFishForUpdate(ctx, tx, userID, fishID)
  isNew := false
  if err != nil {
    if !errors.Is(err, gorm.ErrRecordNotFound) {
      return fmt.Errorf("failed to load ranking entry: %w", err)
    }
    isNew = true
    ranking = &types.RankingCollection{UserID: userID, FishID: fishID}
  }
  ranking.HighestScore = highestScore
  ranking.HighestLength = highestLength
  ranking.TotalScore = totalScore
  ranking.CatchCount = len(logs)

  if isNew {
    if _, err := rs.rankingRepo.Create(ctx, tx, ranking); err != nil {
      return fmt.Errorf("failed to create ranking entry: %w", err)
    }
    return nil
  }
  if err := rs.rankingRepo.Save(ctx, tx, ranking); err != nil {
    return fmt.Errorf("failed to save ranking entry: %w", err)
  }
  return nil
}

func (rs *rankingService) GetFisherRanking(ctx context.Context) ([]FisherRankingEntry, error) {
  totals, err := rs.rankingRepo.GetUserTotalScores(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("failed to load fisher totals: %w", err)
  }
  userIDs := make([]uuid.UUID, 0, len(totals))
  for _, row := range totals {
    userIDs = append(userIDs, row.UserID)
  }
  names, err := rs.userNames(ctx, userIDs)
  if err != nil {
    return nil, err
  }
  entries := make([]FisherRankingEntry, 0, len(totals))
  for i, row := range totals {
    entries = append(entries, FisherRankingEntry{
      Rank:       i + 1,
      UserID:     row.UserID,
      Name:       names[row.UserID],
      TotalScore: row.TotalScore,
    })
  }
  return entries, nil
}

func (rs *rankingService) GetFishRanking(ctx context.Context) ([]FishRankingEntry, error) {
  rankings, err := rs.rankingRepo.GetAllByHighestScoreDesc(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("failed to load rankings: %w", err)
  }
  return rs.buildFishEntries(ctx, rankings)
}

func (rs *rankingService) GetFishRankingByFish(ctx context.Context, fishID uuid.UUID) ([]FishRankingEntry, error) {
  rankings, err := rs.rankingRepo.GetByFishByHighestScoreDesc(ctx, nil, fishID)
  if err != nil {
    return nil, fmt.Errorf("failed to load rankings: %w", err)
  }
  return rs.buildFishEntries(ctx, rankings)
}

func (rs *rankingService) buildFishEntries(ctx context.Context, rankings []*types.RankingCollection) ([]FishRankingEntry, error) {
  userIDs := make([]uuid.UUID, 0, len(rankings))
  seen := make(map[uuid.UUID]bool, len(rankings))
  for _, ranking := range rankings {
    if !seen[ranking.UserID] {
      seen[ranking.UserID] = true
      userIDs = append(userIDs, ranking.UserID)
    }
  }
  names, err := rs.userNames(ctx, userIDs)
  if err != nil {
    return nil, err
  }
  entries := make([]FishRankingEntry, 0, len(rankings))
  for i, ranking := range rankings {
    entry := FishRankingEntry{
      Rank:          i + 1,
      UserID:        ranking.UserID,
      Name:          names[ranking.UserID],
      FishID:        ranking.FishID,
      HighestScore:  ranking.HighestScore,
      HighestLength: ranking.HighestLength,
      TotalScore:    ranking.TotalScore,
      CatchCount:    ranking.CatchCount,
    }
    if ranking.Fish != nil {
      entry.FishName = ranking.Fish.Name
    }
    entries = append(entries, entry)
  }
  return entries, nil
}

func (rs *rankingService) userNames(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]string, error) {
  names := make(map[uuid.UUID]string, len(userIDs))
  if len(userIDs) == 0 {
    return names, nil
  }
  infos, err := rs.userInfoRepo.GetByUserIDs(ctx, nil, userIDs)
  if err != nil {
    return nil, fmt.Errorf("failed to load user names: %w", err)
  }
  for _, info := range infos {
    names[info.UserID] = info.Name
  }
  return names, nil
}
