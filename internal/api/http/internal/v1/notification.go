package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roadassist/backend/internal/domain"
	"github.com/roadassist/backend/internal/service"
)

type notifyEventRequest struct {
	Event        string            `json:"event" binding:"required,oneof=mechanic_assigned status_changed payment_received"`
	Participants []participantBody `json:"participants" binding:"required,min=1,dive"`
	Data         map[string]string `json:"data"`
}

type participantBody struct {
	Channel   string `json:"channel" binding:"required,oneof=email sms push"`
	Recipient string `json:"recipient" binding:"required,min=3,max=254"`
}

type notifyEventResponse struct {
	Dispatched int `json:"dispatched"`
} // @name NotifyEventResponse

// @Summary Dispatch a transactional event notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param input body notifyEventRequest true "event"
// @Success 200 {object} notifyEventResponse
// @Failure 400 {object} ErrorStruct
// @Router /v1/notifications/events [post]
func (h *Handler) notifyEvent(c *gin.Context) {
	var req notifyEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	participants := make([]service.Participant, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = service.Participant{
			Channel:   domain.Channel(p.Channel),
			Recipient: p.Recipient,
		}
	}

	err := h.services.Notifier.NotifyEvent(
		c.Request.Context(),
		service.EventKind(req.Event),
		participants,
		req.Data,
	)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEvent) {
			errorResponse(c, UnknownEventCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, notifyEventResponse{Dispatched: len(participants)})
}

// @Summary Notification queue depth
// @Tags notifications
// @Produce json
// @Success 200 {object} dispatcher.QueueDepth
// @Router /v1/notifications/queue [get]
func (h *Handler) queueDepth(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Notifier.QueueDepth())
}
