package handler

import (
	"net/http"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/service"
	"github.com/Omar-0O/rtc-volunteers/pkg/response"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Get serves GET /leaderboard?period=&committee_id=&level=. The level
// filter applies after ranking, so filtered rows keep their global ranks.
func (h *LeaderboardHandler) Get(c *gin.Context) {
	period, err := service.ParsePeriod(c.Query("period"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	committeeID, ok := parseCommitteeQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid committee_id"})
		return
	}

	entries, err := h.leaderboardService.Rank(c.Request.Context(), period, committeeID, time.Now())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	entries = h.leaderboardService.FilterByLevel(entries, c.Query("level"))

	c.JSON(http.StatusOK, gin.H{
		"period":  period,
		"entries": entries,
	})
}

// Podium serves GET /leaderboard/podium, ordered second, first, third for
// direct rendering.
func (h *LeaderboardHandler) Podium(c *gin.Context) {
	period, err := service.ParsePeriod(c.Query("period"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	committeeID, ok := parseCommitteeQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid committee_id"})
		return
	}

	podium, err := h.leaderboardService.Podium(c.Request.Context(), period, committeeID, time.Now())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period": period,
		"podium": podium,
	})
}
