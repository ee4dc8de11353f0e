package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoanglm/quizforge/internal/service"
)

type ProfileController struct {
	stats service.StatsService
}

func NewProfileController(stats service.StatsService) *ProfileController {
	return &ProfileController{stats: stats}
}

// GetProfileStats godoc
// @Summary Per-user quiz statistics and history
// @Description Best score, average score (2 decimals) and full attempt history, newest first.
// @Tags Profile
// @Produce json
// @Success 200 {object} dto.ProfileStatsResponse
// @Failure 401 {object} dto.ErrorResponse "Not logged in"
// @Router /profile/stats [get]
func (c *ProfileController) GetProfileStats(ctx *gin.Context) {
	stats, err := c.stats.ProfileStats(currentState(ctx).UserID)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// GetLeaderboard godoc
// @Summary Global leaderboard
// @Description Top 10 users by best score plus the caller's rank in the full list (null without attempts).
// @Tags Profile
// @Produce json
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 401 {object} dto.ErrorResponse "Not logged in"
// @Router /leaderboard [get]
func (c *ProfileController) GetLeaderboard(ctx *gin.Context) {
	board, err := c.stats.Leaderboard(currentState(ctx).UserID)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, board)
}
