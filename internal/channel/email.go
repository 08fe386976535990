package channel

import (
	"context"

	"github.com/pkg/errors"
	"github.com/roadassist/backend/internal/domain"
	emailProvider "github.com/roadassist/backend/pkg/email"
)

type emailSender struct {
	sender emailProvider.Sender
}

// NewEmailSender adapts an smtp sender to the channel contract.
func NewEmailSender(sender emailProvider.Sender) *emailSender {
	return &emailSender{
		sender: sender,
	}
}

func (s *emailSender) Deliver(_ context.Context, recipient string, msg domain.Message) error {
	input := emailProvider.SendEmailInput{
		To:      recipient,
		Subject: msg.Subject,
		Body:    msg.Body,
	}

	if err := s.sender.Send(input); err != nil {
		return errors.Wrap(err, "send email failed")
	}

	return nil
}
