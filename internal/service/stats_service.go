package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/hoanglm/quizforge/internal/dto"
	"github.com/hoanglm/quizforge/internal/repository"
)

// leaderboardSize is how many ranked users the public leaderboard shows.
const leaderboardSize = 10

// StatsService aggregates persisted attempts into per-user stats and the
// global leaderboard. Everything is recomputed on each read; attempts are
// append-only so there is no invalidation to manage.
type StatsService interface {
	ProfileStats(userID uint) (*dto.ProfileStatsResponse, error)
	Leaderboard(currentUserID uint) (*dto.LeaderboardResponse, error)
}

type statsService struct {
	attempts repository.AttemptRepository
}

func NewStatsService(attempts repository.AttemptRepository) StatsService {
	return &statsService{attempts: attempts}
}

func (s *statsService) ProfileStats(userID uint) (*dto.ProfileStatsResponse, error) {
	attempts, err := s.attempts.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to load attempt history")
		return nil, fmt.Errorf("error fetching attempt history: %w", err)
	}

	resp := &dto.ProfileStatsResponse{
		AttemptCount: len(attempts),
		History:      []dto.AttemptDTO{},
	}
	if err := copier.Copy(&resp.History, attempts); err != nil {
		log.Error().Err(err).Msg("Failed to copy attempts to history DTOs")
		return nil, fmt.Errorf("error preparing history response: %w", err)
	}

	if len(attempts) == 0 {
		return resp, nil
	}

	best := attempts[0].Score
	sum := 0
	for _, attempt := range attempts {
		if attempt.Score > best {
			best = attempt.Score
		}
		sum += attempt.Score
	}
	average := math.Round(float64(sum)/float64(len(attempts))*100) / 100

	resp.BestScore = &best
	resp.AverageScore = &average
	return resp, nil
}

func (s *statsService) Leaderboard(currentUserID uint) (*dto.LeaderboardResponse, error) {
	ranked, err := s.ranked()
	if err != nil {
		return nil, err
	}

	resp := &dto.LeaderboardResponse{Top: []dto.LeaderboardEntryDTO{}}
	for idx, entry := range ranked {
		rank := idx + 1
		if entry.UserID == currentUserID {
			r := rank
			resp.CurrentUserRank = &r
		}
		if rank <= leaderboardSize {
			resp.Top = append(resp.Top, dto.LeaderboardEntryDTO{
				Rank:      rank,
				Username:  entry.Username,
				BestScore: entry.BestScore,
			})
		}
	}
	return resp, nil
}

// ranked returns the full (non-truncated) leaderboard. Users without attempts
// never appear; ties keep the repository's insertion order, no secondary key.
func (s *statsService) ranked() ([]repository.UserBest, error) {
	bests, err := s.attempts.UserBests()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load per-user best scores")
		return nil, fmt.Errorf("error computing leaderboard: %w", err)
	}

	sort.SliceStable(bests, func(i, j int) bool {
		return bests[i].BestScore > bests[j].BestScore
	})
	return bests, nil
}
