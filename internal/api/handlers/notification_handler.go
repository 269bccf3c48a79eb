package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/internal/application"
	"github.com/linskybing/robolab-go/internal/domain/notification"
	"github.com/linskybing/robolab-go/pkg/response"
)

type NotificationHandler struct {
	svc *application.NotificationService
}

func NewNotificationHandler(svc *application.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// GetNotifications godoc
// @Summary Inspect the outgoing email queue
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, sending, sent or failed"
// @Param limit query int false "Maximum rows"
// @Success 200 {array} notification.Notification
// @Failure 400 {object} response.ErrorResponse
// @Router /admin/notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	var filter notification.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	rows, err := h.svc.ListNotifications(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
