package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hoanglm/quizforge/internal/model"
	"github.com/hoanglm/quizforge/internal/repository"
)

func attempt(userID uint, score int, submittedAt time.Time) model.Attempt {
	return model.Attempt{
		UserID:         userID,
		Score:          score,
		CorrectCount:   score / 10,
		IncorrectCount: 10 - score/10,
		TotalQuestions: 10,
		ElapsedSeconds: 42,
		SubmittedAt:    submittedAt,
	}
}

func TestProfileStatsEmptyHistory(t *testing.T) {
	svc := NewStatsService(&fakeAttemptRepo{})

	stats, err := svc.ProfileStats(1)
	require.NoError(t, err)
	require.Nil(t, stats.BestScore)
	require.Nil(t, stats.AverageScore)
	require.Equal(t, 0, stats.AttemptCount)
	require.Empty(t, stats.History)
}

func TestProfileStatsBestAndAverage(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeAttemptRepo{attempts: []model.Attempt{
		attempt(1, 100, base.Add(2*time.Hour)),
		attempt(1, 90, base.Add(time.Hour)),
		attempt(1, 85, base),
		attempt(2, 40, base), // someone else's attempt
	}}
	svc := NewStatsService(repo)

	stats, err := svc.ProfileStats(1)
	require.NoError(t, err)
	require.Equal(t, 3, stats.AttemptCount)
	require.NotNil(t, stats.BestScore)
	require.Equal(t, 100, *stats.BestScore)
	require.NotNil(t, stats.AverageScore)
	require.Equal(t, 91.67, *stats.AverageScore) // mean of 100,90,85 to 2 decimals
	require.Len(t, stats.History, 3)
	require.Equal(t, 100, stats.History[0].Score)
}

func TestLeaderboardOrdersByBestScore(t *testing.T) {
	repo := &fakeAttemptRepo{bests: []repository.UserBest{
		{UserID: 1, Username: "alice", BestScore: 70},
		{UserID: 2, Username: "bob", BestScore: 90},
	}}
	svc := NewStatsService(repo)

	board, err := svc.Leaderboard(2)
	require.NoError(t, err)
	require.Len(t, board.Top, 2)
	require.Equal(t, "bob", board.Top[0].Username)
	require.Equal(t, 90, board.Top[0].BestScore)
	require.Equal(t, 1, board.Top[0].Rank)
	require.Equal(t, "alice", board.Top[1].Username)
	require.Equal(t, 2, board.Top[1].Rank)

	require.NotNil(t, board.CurrentUserRank)
	require.Equal(t, 1, *board.CurrentUserRank)
}

func TestLeaderboardTiesKeepInsertionOrder(t *testing.T) {
	repo := &fakeAttemptRepo{bests: []repository.UserBest{
		{UserID: 1, Username: "first", BestScore: 80},
		{UserID: 2, Username: "second", BestScore: 80},
		{UserID: 3, Username: "third", BestScore: 80},
	}}
	svc := NewStatsService(repo)

	board, err := svc.Leaderboard(0)
	require.NoError(t, err)
	require.Equal(t, "first", board.Top[0].Username)
	require.Equal(t, "second", board.Top[1].Username)
	require.Equal(t, "third", board.Top[2].Username)
}

func TestLeaderboardTruncatesToTopTen(t *testing.T) {
	repo := &fakeAttemptRepo{}
	for i := 0; i < 12; i++ {
		repo.bests = append(repo.bests, repository.UserBest{
			UserID:    uint(i + 1),
			Username:  "user",
			BestScore: 100 - i,
		})
	}
	svc := NewStatsService(repo)

	// User 12 sits at rank 12: outside the top ten but still ranked.
	board, err := svc.Leaderboard(12)
	require.NoError(t, err)
	require.Len(t, board.Top, 10)
	require.NotNil(t, board.CurrentUserRank)
	require.Equal(t, 12, *board.CurrentUserRank)
}

func TestLeaderboardRankNilWithoutAttempts(t *testing.T) {
	repo := &fakeAttemptRepo{bests: []repository.UserBest{
		{UserID: 1, Username: "alice", BestScore: 50},
	}}
	svc := NewStatsService(repo)

	// User 99 has no attempts: excluded from the board, rank is null.
	board, err := svc.Leaderboard(99)
	require.NoError(t, err)
	require.Len(t, board.Top, 1)
	require.Nil(t, board.CurrentUserRank)
}
