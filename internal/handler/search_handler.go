package handler

import (
	"net/http"
	"strconv"

	"github.com/Omar-0O/rtc-volunteers/internal/service"
	"github.com/Omar-0O/rtc-volunteers/pkg/response"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService service.SearchService
}

func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search serves GET /volunteers/search?q=&committee_id=&level=&limit=.
func (h *SearchHandler) Search(c *gin.Context) {
	committeeID, ok := parseCommitteeQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid committee_id"})
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	hits, err := h.searchService.Search(c.Request.Context(), c.Query("q"), committeeID, c.Query("level"), limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": hits})
}
