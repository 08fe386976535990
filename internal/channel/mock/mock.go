package mock_channel

import (
	"context"

	"github.com/roadassist/backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type Sender struct {
	mock.Mock
}

func (m *Sender) Deliver(ctx context.Context, recipient string, msg domain.Message) error {
	args := m.Called(ctx, recipient, msg)

	return args.Error(0)
}
