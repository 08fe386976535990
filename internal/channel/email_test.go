package channel

import (
	"context"
	"errors"
	"testing"

	"github.com/roadassist/backend/internal/domain"
	"github.com/roadassist/backend/pkg/email"
	mock_email "github.com/roadassist/backend/pkg/email/mock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEmailSenderDeliver(t *testing.T) {
	provider := new(mock_email.EmailSender)
	provider.On("Send", email.SendEmailInput{
		To:      "a@x.com",
		Subject: "Your login code",
		Body:    "code body",
	}).Return(nil).Once()

	s := NewEmailSender(provider)

	err := s.Deliver(context.Background(), "a@x.com", domain.Message{
		Subject: "Your login code",
		Body:    "code body",
	})

	require.NoError(t, err)
	provider.AssertExpectations(t)
}

func TestEmailSenderDeliverError(t *testing.T) {
	provider := new(mock_email.EmailSender)
	providerErr := errors.New("smtp down")
	provider.On("Send", mock.Anything).Return(providerErr)

	s := NewEmailSender(provider)

	err := s.Deliver(context.Background(), "a@x.com", domain.Message{Subject: "s", Body: "b"})

	require.Error(t, err)
	require.ErrorIs(t, err, providerErr)
}
