package handler

import (
	"net/http"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/service"
	"github.com/Omar-0O/rtc-volunteers/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createFineRequest struct {
	VolunteerID uuid.UUID `json:"volunteer_id" binding:"required"`
	FineTypeID  uuid.UUID `json:"fine_type_id" binding:"required"`
}

type waiveFineRequest struct {
	SourceType string    `json:"source_type" binding:"required,oneof=manual caravan_vest activity_vest"`
	SourceID   uuid.UUID `json:"source_id" binding:"required"`
}

type FineHandler struct {
	fineService service.FineService
}

func NewFineHandler(fineService service.FineService) *FineHandler {
	return &FineHandler{fineService: fineService}
}

// ListMine serves GET /fines for the authenticated volunteer.
func (h *FineHandler) ListMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	fines, err := h.fineService.FinesFor(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fines": fines})
}

// ListForVolunteer serves GET /admin/volunteers/:id/fines.
func (h *FineHandler) ListForVolunteer(c *gin.Context) {
	volunteerID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid volunteer id"})
		return
	}

	fines, err := h.fineService.FinesFor(c.Request.Context(), volunteerID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fines": fines})
}

func (h *FineHandler) Create(c *gin.Context) {
	rc, err := requestContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req createFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	fine, err := h.fineService.CreateFine(c.Request.Context(), rc, req.VolunteerID, req.FineTypeID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fine)
}

// Waive serves POST /fines/waive. The source type routes the request back
// to the record that produced the fine.
func (h *FineHandler) Waive(c *gin.Context) {
	rc, err := requestContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req waiveFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.fineService.Waive(c.Request.Context(), rc, model.FineSourceType(req.SourceType), req.SourceID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "fine waived"})
}

func (h *FineHandler) MarkPaid(c *gin.Context) {
	rc, err := requestContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	fineID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fine id"})
		return
	}

	if err := h.fineService.MarkPaid(c.Request.Context(), rc, fineID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "fine marked as paid"})
}

func (h *FineHandler) ListFineTypes(c *gin.Context) {
	fineTypes, err := h.fineService.ListFineTypes(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fine_types": fineTypes})
}

func (h *FineHandler) CreateFineType(c *gin.Context) {
	var fineType model.FineType
	if err := c.ShouldBindJSON(&fineType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.fineService.CreateFineType(c.Request.Context(), &fineType); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fineType)
}

func (h *FineHandler) UpdateFineType(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fine type id"})
		return
	}

	var fineType model.FineType
	if err := c.ShouldBindJSON(&fineType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}
	fineType.ID = id

	if err := h.fineService.UpdateFineType(c.Request.Context(), &fineType); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, fineType)
}

func (h *FineHandler) DeleteFineType(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fine type id"})
		return
	}

	if err := h.fineService.DeleteFineType(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "fine type deleted"})
}
