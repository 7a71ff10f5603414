package handler

import (
	"net/http"

	"github.com/Omar-0O/rtc-volunteers/internal/service"
	"github.com/Omar-0O/rtc-volunteers/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type setLevelRequest struct {
	Level string `json:"level" binding:"required"`
}

type assignCommitteeRequest struct {
	CommitteeID *uuid.UUID `json:"committee_id"`
}

type AdminHandler struct {
	adminService  service.AdminService
	ledgerService service.LedgerService
}

func NewAdminHandler(adminService service.AdminService, ledgerService service.LedgerService) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		ledgerService: ledgerService,
	}
}

func (h *AdminHandler) CreateMember(c *gin.Context) {
	var input service.CreateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	user, err := h.adminService.CreateMember(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) UpdateMember(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	var input service.UpdateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	user, err := h.adminService.UpdateMember(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteMember(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	if err := h.adminService.DeleteMember(c.Request.Context(), userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member deleted"})
}

func (h *AdminHandler) ListMembers(c *gin.Context) {
	committeeID, ok := parseCommitteeQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid committee_id"})
		return
	}

	members, err := h.adminService.ListMembers(c.Request.Context(), committeeID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// SetLevel serves PUT /admin/volunteers/:id/level. Levels come from staff
// decisions, never from point totals.
func (h *AdminHandler) SetLevel(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	var req setLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.adminService.SetLevel(c.Request.Context(), userID, req.Level); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "level updated"})
}

func (h *AdminHandler) AssignCommittee(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	var req assignCommitteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.adminService.AssignCommittee(c.Request.Context(), userID, req.CommitteeID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "committee updated"})
}

// RecomputeTotals serves POST /admin/volunteers/:id/recompute, forcing the
// cached totals back in line with the ledger.
func (h *AdminHandler) RecomputeTotals(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	if err := h.ledgerService.RecomputeProfileTotals(c.Request.Context(), userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "totals recomputed"})
}

func (h *AdminHandler) ReindexProfiles(c *gin.Context) {
	if err := h.adminService.ReindexProfiles(c.Request.Context()); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reindex started"})
}
