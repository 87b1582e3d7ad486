package httpapi

import (
	"net/http"

	"gavel-auction-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type NotificationHandler struct {
	notifications inbound.NotificationService
	logger        zerolog.Logger
}

type NotificationHandlerParams struct {
	Notifications inbound.NotificationService
	Logger        zerolog.Logger
}

func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{
		notifications: params.Notifications,
		logger:        params.Logger.With().Str("component", "notification_handler").Logger(),
	}
}

func (h *NotificationHandler) Inbox(c *gin.Context) {
	notifications, err := h.notifications.Inbox(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidIDParam(c, "notification id")
		return
	}

	notification, err := h.notifications.MarkRead(c.Request.Context(), notificationID, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, notification)
}
