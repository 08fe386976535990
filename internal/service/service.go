package service

import (
	"context"
	"time"

	"github.com/roadassist/backend/internal/config"
	"github.com/roadassist/backend/internal/dispatcher"
	"github.com/roadassist/backend/internal/domain"
	"github.com/roadassist/backend/internal/repository"
	"github.com/roadassist/backend/pkg/otp"

	"go.uber.org/zap"
)

type Services struct {
	Verification Verification
	Notifier     Notifier
}

type Deps struct {
	Logger     *zap.Logger
	Config     *config.Config
	Repos      *repository.Repositories
	Generator  otp.Generator
	Dispatcher NotificationDispatcher
}

func NewServices(deps Deps) *Services {
	return &Services{
		Verification: newVerificationService(
			deps.Repos.VerificationCodes,
			deps.Generator,
			deps.Dispatcher,
			deps.Config.Verification,
			deps.Logger,
		),
		Notifier: newNotifierService(deps.Dispatcher, deps.Logger),
	}
}

// NotificationDispatcher is the slice of the dispatcher the services depend on.
type NotificationDispatcher interface {
	Send(ctx context.Context, input dispatcher.SendInput) dispatcher.SendResult
	GetQueueDepth() dispatcher.QueueDepth
}

type IssueOutput struct {
	Code      string
	ExpiresAt time.Time
	Queued    bool
}

type ResendStatus struct {
	Allowed bool
	Wait    time.Duration
}

type Verification interface {
	Issue(ctx context.Context, identifier string, channelType domain.ChannelType, purpose domain.VerificationPurpose) (*IssueOutput, error)
	Verify(ctx context.Context, identifier string, submittedCode string, purpose domain.VerificationPurpose) error
	CanResend(ctx context.Context, identifier string, channelType domain.ChannelType, purpose domain.VerificationPurpose) (*ResendStatus, error)
	Cleanup(ctx context.Context) int64
}

type EventKind string

const (
	EventMechanicAssigned EventKind = "mechanic_assigned"
	EventStatusChanged    EventKind = "status_changed"
	EventPaymentReceived  EventKind = "payment_received"
)

type Participant struct {
	Channel   domain.Channel
	Recipient string
}

type Notifier interface {
	NotifyEvent(ctx context.Context, kind EventKind, participants []Participant, data map[string]string) error
	QueueDepth() dispatcher.QueueDepth
}
