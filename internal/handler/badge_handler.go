package handler

import (
	"net/http"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/service"
	"github.com/Omar-0O/rtc-volunteers/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type awardBadgeRequest struct {
	VolunteerID uuid.UUID `json:"volunteer_id" binding:"required"`
}

type BadgeHandler struct {
	badgeService service.BadgeService
}

func NewBadgeHandler(badgeService service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

func (h *BadgeHandler) List(c *gin.Context) {
	badges, err := h.badgeService.ListBadges(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

func (h *BadgeHandler) ListMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	earned, err := h.badgeService.ListForVolunteer(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": earned})
}

// ListHolders returns the profiles of every volunteer who earned the badge.
func (h *BadgeHandler) ListHolders(c *gin.Context) {
	badgeID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid badge id"})
		return
	}

	holders, err := h.badgeService.ListHolders(c.Request.Context(), badgeID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holders": holders})
}

// Preview serves GET /badges/:id/eligibility/:volunteer_id without
// awarding anything.
func (h *BadgeHandler) Preview(c *gin.Context) {
	badgeID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid badge id"})
		return
	}
	volunteerID, ok := parseUUIDParam(c, "volunteer_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid volunteer id"})
		return
	}

	report, err := h.badgeService.Preview(c.Request.Context(), badgeID, volunteerID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *BadgeHandler) Award(c *gin.Context) {
	badgeID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid badge id"})
		return
	}

	var req awardBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	awarded, err := h.badgeService.Award(c.Request.Context(), badgeID, req.VolunteerID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, awarded)
}

func (h *BadgeHandler) Create(c *gin.Context) {
	var badge model.Badge
	if err := c.ShouldBindJSON(&badge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.badgeService.CreateBadge(c.Request.Context(), &badge); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, badge)
}

func (h *BadgeHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid badge id"})
		return
	}

	var badge model.Badge
	if err := c.ShouldBindJSON(&badge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}
	badge.ID = id

	if err := h.badgeService.UpdateBadge(c.Request.Context(), &badge); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, badge)
}

func (h *BadgeHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid badge id"})
		return
	}

	if err := h.badgeService.DeleteBadge(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "badge deleted"})
}
