package handler

import (
	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/Omar-0O/rtc-volunteers/pkg/response"
	"github.com/Omar-0O/rtc-volunteers/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func formatValidationError(err error) string {
	return validator.FormatValidationError(err)
}

// requestContext assembles the caller identity set by the auth middleware.
func requestContext(c *gin.Context) (model.RequestContext, error) {
	userID, err := response.GetUserID(c)
	if err != nil {
		return model.RequestContext{}, err
	}

	return model.RequestContext{
		UserID: userID,
		Role:   c.GetString("user_role"),
		Locale: model.NormalizeLocale(c.GetString("locale")),
	}, nil
}

// parseUUIDParam reads a path parameter as a UUID.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// parseCommitteeQuery reads an optional committee_id query filter.
func parseCommitteeQuery(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("committee_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}
