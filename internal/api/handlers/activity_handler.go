package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/internal/application"
	"github.com/linskybing/robolab-go/internal/domain/activity"
	"github.com/linskybing/robolab-go/pkg/response"
)

type ActivityHandler struct {
	svc *application.ActivityService
}

func NewActivityHandler(svc *application.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// GetActivity godoc
// @Summary Query the admin activity log
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param admin_id query string false "Acting admin"
// @Param entity_type query string false "project or profile"
// @Param action query string false "Exact action text"
// @Param start_time query string false "RFC3339 lower bound"
// @Param end_time query string false "RFC3339 upper bound"
// @Param limit query int false "Default 100, max 500"
// @Param offset query int false "Offset"
// @Success 200 {array} activity.Entry
// @Failure 400 {object} response.ErrorResponse
// @Router /admin/activity [get]
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	var params activity.QueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	entries, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
