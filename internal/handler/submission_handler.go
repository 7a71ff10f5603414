package handler

import (
	"net/http"
	"strconv"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/service"
	"github.com/Omar-0O/rtc-volunteers/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type logActivityRequest struct {
	ActivityTypeID uuid.UUID `form:"activity_type_id" binding:"required"`
	Description    *string   `form:"description"`
	Location       *string   `form:"location" binding:"omitempty,oneof=branch online field"`
	WoreVest       *bool     `form:"wore_vest"`
}

type SubmissionHandler struct {
	submissionService service.SubmissionService
}

func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// LogActivity serves POST /activities. The proof photo rides along as
// multipart form data.
func (h *SubmissionHandler) LogActivity(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req logActivityRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	in := service.LogActivityInput{
		VolunteerID:    userID,
		ActivityTypeID: req.ActivityTypeID,
		Description:    req.Description,
		Location:       req.Location,
		WoreVest:       req.WoreVest,
	}

	if fileHeader, err := c.FormFile("proof"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read proof image"})
			return
		}
		defer file.Close()
		in.Proof = file
		in.ProofName = fileHeader.Filename
	}

	submission, err := h.submissionService.LogActivity(c.Request.Context(), in)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// RecordForVolunteer serves POST /admin/volunteers/:id/activities, used by
// staff to log on a volunteer's behalf with the vest flag.
func (h *SubmissionHandler) RecordForVolunteer(c *gin.Context) {
	recorderID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	volunteerID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid volunteer id"})
		return
	}

	var req logActivityRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	submission, err := h.submissionService.LogActivity(c.Request.Context(), service.LogActivityInput{
		VolunteerID:    volunteerID,
		ActivityTypeID: req.ActivityTypeID,
		Description:    req.Description,
		Location:       req.Location,
		WoreVest:       req.WoreVest,
		RecordedBy:     &recorderID,
	})
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

func (h *SubmissionHandler) ListMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	submissions, err := h.submissionService.ListMySubmissions(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

func (h *SubmissionHandler) ListRecent(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	submissions, err := h.submissionService.ListRecent(c.Request.Context(), userID, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

func (h *SubmissionHandler) ListActivityTypes(c *gin.Context) {
	committeeID, ok := parseCommitteeQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid committee_id"})
		return
	}

	types, err := h.submissionService.ListActivityTypes(c.Request.Context(), committeeID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity_types": types})
}

func (h *SubmissionHandler) CreateActivityType(c *gin.Context) {
	var activityType model.ActivityType
	if err := c.ShouldBindJSON(&activityType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.submissionService.CreateActivityType(c.Request.Context(), &activityType); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activityType)
}

func (h *SubmissionHandler) UpdateActivityType(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity type id"})
		return
	}

	var activityType model.ActivityType
	if err := c.ShouldBindJSON(&activityType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}
	activityType.ID = id

	if err := h.submissionService.UpdateActivityType(c.Request.Context(), &activityType); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, activityType)
}

func (h *SubmissionHandler) DeleteActivityType(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity type id"})
		return
	}

	if err := h.submissionService.DeleteActivityType(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "activity type deleted"})
}
