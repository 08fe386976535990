package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/roadassist/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func testCeilings() Ceilings {
	return Ceilings{
		domain.ChannelEmail: 5,
		domain.ChannelSMS:   3,
		domain.ChannelPush:  10,
	}
}

func TestMemoryLimiterCeiling(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(testCeilings(), time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, domain.ChannelSMS, "77001234567")
		require.NoError(t, err)
		require.True(t, ok, "send %d should pass", i+1)
	}

	ok, err := l.Allow(ctx, domain.ChannelSMS, "77001234567")
	require.NoError(t, err)
	require.False(t, ok, "4th sms within the window must be rejected")

	limited, err := l.IsLimited(ctx, domain.ChannelSMS, "77001234567")
	require.NoError(t, err)
	require.True(t, limited)
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(testCeilings(), time.Minute)

	current := time.Now()
	l.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow(ctx, domain.ChannelSMS, "77001234567")
		require.True(t, ok)
	}
	ok, _ := l.Allow(ctx, domain.ChannelSMS, "77001234567")
	require.False(t, ok)

	current = current.Add(61 * time.Second)

	ok, err := l.Allow(ctx, domain.ChannelSMS, "77001234567")
	require.NoError(t, err)
	require.True(t, ok, "send after window reset must pass")

	limited, err := l.IsLimited(ctx, domain.ChannelSMS, "77001234567")
	require.NoError(t, err)
	require.False(t, limited)
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(testCeilings(), time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow(ctx, domain.ChannelSMS, "77001234567")
		require.True(t, ok)
	}

	// Другой получатель того же канала не должен быть ограничен.
	ok, err := l.Allow(ctx, domain.ChannelSMS, "77007654321")
	require.NoError(t, err)
	require.True(t, ok)

	// Тот же получатель на другом канале тоже.
	ok, err = l.Allow(ctx, domain.ChannelEmail, "77001234567")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryLimiterIsLimitedDoesNotRecord(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(testCeilings(), time.Minute)

	for i := 0; i < 10; i++ {
		limited, err := l.IsLimited(ctx, domain.ChannelSMS, "77001234567")
		require.NoError(t, err)
		require.False(t, limited)
	}

	ok, err := l.Allow(ctx, domain.ChannelSMS, "77001234567")
	require.NoError(t, err)
	require.True(t, ok)
}
