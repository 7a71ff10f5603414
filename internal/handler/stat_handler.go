package handler

import (
	"net/http"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/service"
	"github.com/Omar-0O/rtc-volunteers/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	statService service.StatService
}

func NewStatHandler(statService service.StatService) *StatHandler {
	return &StatHandler{statService: statService}
}

func (h *StatHandler) Overview(c *gin.Context) {
	overview, err := h.statService.Overview(c.Request.Context(), time.Now())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
