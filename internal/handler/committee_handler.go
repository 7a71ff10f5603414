package handler

import (
	"net/http"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/internal/service"
	"github.com/Omar-0O/rtc-volunteers/pkg/response"
	"github.com/gin-gonic/gin"
)

type CommitteeHandler struct {
	committeeService service.CommitteeService
}

func NewCommitteeHandler(committeeService service.CommitteeService) *CommitteeHandler {
	return &CommitteeHandler{committeeService: committeeService}
}

func (h *CommitteeHandler) List(c *gin.Context) {
	committees, err := h.committeeService.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"committees": committees})
}

func (h *CommitteeHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid committee id"})
		return
	}

	committee, err := h.committeeService.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, committee)
}

// Stats serves GET /committees/:id/stats?period=.
func (h *CommitteeHandler) Stats(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid committee id"})
		return
	}

	period, err := service.ParsePeriod(c.Query("period"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	stats, err := h.committeeService.Stats(c.Request.Context(), id, period, time.Now())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *CommitteeHandler) Create(c *gin.Context) {
	var committee model.Committee
	if err := c.ShouldBindJSON(&committee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.committeeService.Create(c.Request.Context(), &committee); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, committee)
}

func (h *CommitteeHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid committee id"})
		return
	}

	var committee model.Committee
	if err := c.ShouldBindJSON(&committee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}
	committee.ID = id

	if err := h.committeeService.Update(c.Request.Context(), &committee); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, committee)
}

func (h *CommitteeHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid committee id"})
		return
	}

	if err := h.committeeService.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "committee deleted"})
}
