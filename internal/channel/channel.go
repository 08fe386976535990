package channel

import (
	"context"

	"github.com/roadassist/backend/internal/domain"
)

// Sender performs the actual external delivery for one channel. Adapters are
// expected to time-box their own network calls; the dispatcher never cancels
// an in-flight delivery.
type Sender interface {
	Deliver(ctx context.Context, recipient string, msg domain.Message) error
}

// Senders holds one adapter per supported channel.
type Senders map[domain.Channel]Sender
