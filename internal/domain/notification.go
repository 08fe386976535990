package domain

import (
	"time"

	"github.com/google/uuid"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

func (c Channel) Valid() bool {
	return c == ChannelEmail || c == ChannelSMS || c == ChannelPush
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Message is a rendered notification body ready for a channel sender.
type Message struct {
	Subject string
	Body    string
}

// NotificationJob is a queued delivery waiting for a dispatcher tick.
type NotificationJob struct {
	ID           uuid.UUID
	Channel      Channel
	Priority     Priority
	Recipient    string
	Message      Message
	EnqueuedAt   time.Time
	AttemptsMade int
}
