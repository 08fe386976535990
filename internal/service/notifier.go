package service

import (
	"context"

	"github.com/roadassist/backend/internal/dispatcher"
	"github.com/roadassist/backend/internal/domain"
	"github.com/roadassist/backend/internal/render"
	"go.uber.org/zap"
)

type notifierService struct {
	dispatcher NotificationDispatcher
	logger     *zap.Logger
}

func newNotifierService(notificationDispatcher NotificationDispatcher, logger *zap.Logger) *notifierService {
	return &notifierService{
		dispatcher: notificationDispatcher,
		logger:     logger,
	}
}

type eventRoute struct {
	template render.TemplateID
	priority domain.Priority
}

var eventCatalogue = map[EventKind]eventRoute{
	EventMechanicAssigned: {template: render.TemplateMechanicAssigned, priority: domain.PriorityHigh},
	EventStatusChanged:    {template: render.TemplateStatusChanged, priority: domain.PriorityMedium},
	EventPaymentReceived:  {template: render.TemplatePaymentReceived, priority: domain.PriorityLow},
}

// NotifyEvent fans a transactional event out to every participant. Delivery
// outcomes are absorbed by the dispatcher; an error here only means the event
// kind itself is unknown.
func (s *notifierService) NotifyEvent(
	ctx context.Context,
	kind EventKind,
	participants []Participant,
	data map[string]string,
) error {
	route, ok := eventCatalogue[kind]
	if !ok {
		return ErrUnknownEvent
	}

	for _, p := range participants {
		res := s.dispatcher.Send(ctx, dispatcher.SendInput{
			Channel:   p.Channel,
			Recipient: p.Recipient,
			Template:  route.template,
			Data:      data,
			Priority:  route.priority,
		})

		if !res.Accepted && !res.Queued {
			s.logger.Warn("event notification rejected",
				zap.String("event", string(kind)),
				zap.String("channel", string(p.Channel)),
				zap.String("recipient", p.Recipient),
				zap.String("reason", string(res.Reason)),
			)
		}
	}

	return nil
}

func (s *notifierService) QueueDepth() dispatcher.QueueDepth {
	return s.dispatcher.GetQueueDepth()
}
