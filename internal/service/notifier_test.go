package service

import (
	"context"
	"testing"

	"github.com/roadassist/backend/internal/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNotifyEventFansOut(t *testing.T) {
	disp := newFakeDispatcher()
	svc := newNotifierService(disp, zap.NewNop())

	participants := []Participant{
		{Channel: domain.ChannelSMS, Recipient: "77001234567"},
		{Channel: domain.ChannelPush, Recipient: "device-token-1"},
	}

	err := svc.NotifyEvent(context.Background(), EventMechanicAssigned, participants, map[string]string{
		"mechanic_name": "Askar",
		"eta_minutes":   "15",
		"vehicle":       "Gazelle",
	})
	require.NoError(t, err)
	require.Len(t, disp.sends, 2)

	for i, p := range participants {
		require.Equal(t, p.Channel, disp.sends[i].Channel)
		require.Equal(t, p.Recipient, disp.sends[i].Recipient)
		require.Equal(t, domain.PriorityHigh, disp.sends[i].Priority)
	}
}

func TestNotifyEventPriorities(t *testing.T) {
	cases := []struct {
		kind     EventKind
		priority domain.Priority
	}{
		{EventMechanicAssigned, domain.PriorityHigh},
		{EventStatusChanged, domain.PriorityMedium},
		{EventPaymentReceived, domain.PriorityLow},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			disp := newFakeDispatcher()
			svc := newNotifierService(disp, zap.NewNop())

			err := svc.NotifyEvent(context.Background(), tc.kind, []Participant{
				{Channel: domain.ChannelEmail, Recipient: "a@x.com"},
			}, nil)
			require.NoError(t, err)
			require.Equal(t, tc.priority, disp.lastSend().Priority)
		})
	}
}

func TestNotifyEventUnknownKind(t *testing.T) {
	svc := newNotifierService(newFakeDispatcher(), zap.NewNop())

	err := svc.NotifyEvent(context.Background(), EventKind("mystery"), nil, nil)
	require.ErrorIs(t, err, ErrUnknownEvent)
}
