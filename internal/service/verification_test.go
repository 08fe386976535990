package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/roadassist/backend/internal/config"
	"github.com/roadassist/backend/internal/dispatcher"
	"github.com/roadassist/backend/internal/domain"
	"github.com/roadassist/backend/pkg/otp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCodesRepo is an in-memory stand-in for the MySQL repository with the
// same conditional-update semantics.
type fakeCodesRepo struct {
	mu    sync.Mutex
	codes []*domain.VerificationCode
}

func (r *fakeCodesRepo) Create(_ context.Context, code *domain.VerificationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *code
	r.codes = append(r.codes, &cp)
	return nil
}

func (r *fakeCodesRepo) InvalidateActive(_ context.Context, identifier string, channelType domain.ChannelType, purpose domain.VerificationPurpose) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, c := range r.codes {
		if c.Identifier == identifier && c.ChannelType == channelType && c.Purpose == purpose && !c.IsUsed {
			c.IsUsed = true
			n++
		}
	}
	return n, nil
}

func (r *fakeCodesRepo) GetActive(_ context.Context, identifier string, purpose domain.VerificationPurpose, now time.Time) (*domain.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := r.filter(func(c *domain.VerificationCode) bool {
		return c.Identifier == identifier && c.Purpose == purpose && !c.IsUsed && now.Before(c.ExpiresAt)
	})
	if len(matches) == 0 {
		return nil, domain.ErrNotFound
	}
	cp := *matches[0]
	return &cp, nil
}

func (r *fakeCodesRepo) GetLatest(_ context.Context, identifier string, purpose domain.VerificationPurpose) (*domain.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := r.filter(func(c *domain.VerificationCode) bool {
		return c.Identifier == identifier && c.Purpose == purpose
	})
	if len(matches) == 0 {
		return nil, domain.ErrNotFound
	}
	cp := *matches[0]
	return &cp, nil
}

func (r *fakeCodesRepo) GetLastSent(_ context.Context, identifier string, channelType domain.ChannelType, purpose domain.VerificationPurpose) (*domain.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := r.filter(func(c *domain.VerificationCode) bool {
		return c.Identifier == identifier && c.ChannelType == channelType && c.Purpose == purpose
	})
	if len(matches) == 0 {
		return nil, domain.ErrNotFound
	}
	cp := *matches[0]
	return &cp, nil
}

func (r *fakeCodesRepo) MarkVerified(_ context.Context, id uuid.UUID, verifiedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.codes {
		if c.ID == id {
			if c.IsUsed {
				return domain.ErrNoRowsAffected
			}
			c.IsUsed = true
			at := verifiedAt
			c.VerifiedAt = &at
			return nil
		}
	}
	return domain.ErrNoRowsAffected
}

func (r *fakeCodesRepo) MarkUsed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.codes {
		if c.ID == id {
			c.IsUsed = true
			return nil
		}
	}
	return nil
}

func (r *fakeCodesRepo) IncrementAttempts(_ context.Context, id uuid.UUID, expectedAttempts int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.codes {
		if c.ID == id {
			if c.IsUsed || c.Attempts != expectedAttempts {
				return domain.ErrNoRowsAffected
			}
			c.Attempts++
			return nil
		}
	}
	return domain.ErrNoRowsAffected
}

func (r *fakeCodesRepo) DeleteStale(_ context.Context, now time.Time, retention time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []*domain.VerificationCode
	var deleted int64
	for _, c := range r.codes {
		stale := c.ExpiresAt.Before(now) || (c.IsUsed && c.CreatedAt.Before(now.Add(-retention)))
		if stale {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	r.codes = kept
	return deleted, nil
}

// filter returns matches sorted newest first. Callers must hold the lock.
func (r *fakeCodesRepo) filter(match func(*domain.VerificationCode) bool) []*domain.VerificationCode {
	var out []*domain.VerificationCode
	for _, c := range r.codes {
		if match(c) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *fakeCodesRepo) activeCount(identifier string, purpose domain.VerificationPurpose) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	n := 0
	for _, c := range r.codes {
		if c.Identifier == identifier && c.Purpose == purpose && c.Active(now) {
			n++
		}
	}
	return n
}

type fakeDispatcher struct {
	mu     sync.Mutex
	sends  []dispatcher.SendInput
	result dispatcher.SendResult
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{result: dispatcher.SendResult{Accepted: true}}
}

func (d *fakeDispatcher) Send(_ context.Context, input dispatcher.SendInput) dispatcher.SendResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sends = append(d.sends, input)
	return d.result
}

func (d *fakeDispatcher) GetQueueDepth() dispatcher.QueueDepth {
	return dispatcher.QueueDepth{}
}

func (d *fakeDispatcher) lastSend() dispatcher.SendInput {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.sends[len(d.sends)-1]
}

func testVerificationConfig() config.VerificationConfig {
	return config.VerificationConfig{
		CodeLength:     6,
		CodeTTL:        10 * time.Minute,
		ResendCooldown: 0,
		MaxAttempts:    3,
		Retention:      24 * time.Hour,
	}
}

func newTestVerificationService(cfg config.VerificationConfig) (*verificationService, *fakeCodesRepo, *fakeDispatcher) {
	repo := &fakeCodesRepo{}
	disp := newFakeDispatcher()
	svc := newVerificationService(repo, otp.NewSecureGenerator(), disp, cfg, zap.NewNop())
	return svc, repo, disp
}

func TestIssueReturnsCodeAndDispatches(t *testing.T) {
	svc, _, disp := newTestVerificationService(testVerificationConfig())

	out, err := svc.Issue(context.Background(), "a@x.com", domain.ChannelTypeEmail, domain.PurposeLogin)
	require.NoError(t, err)
	require.Len(t, out.Code, 6)
	require.True(t, out.ExpiresAt.After(time.Now()))

	sent := disp.lastSend()
	require.Equal(t, domain.ChannelEmail, sent.Channel)
	require.Equal(t, "a@x.com", sent.Recipient)
	require.Equal(t, domain.PriorityHigh, sent.Priority)
	require.Equal(t, out.Code, sent.Data["code"])
}

func TestIssuePhoneGoesToSMS(t *testing.T) {
	svc, _, disp := newTestVerificationService(testVerificationConfig())

	_, err := svc.Issue(context.Background(), "77001234567", domain.ChannelTypePhone, domain.PurposePhoneVerification)
	require.NoError(t, err)

	sent := disp.lastSend()
	require.Equal(t, domain.ChannelSMS, sent.Channel)
	require.Equal(t, domain.PriorityMedium, sent.Priority)
}

func TestIssueSupersedesActiveCode(t *testing.T) {
	svc, repo, _ := newTestVerificationService(testVerificationConfig())
	ctx := context.Background()

	first, err := svc.Issue(ctx, "a@x.com", domain.ChannelTypeEmail, domain.PurposeLogin)
	require.NoError(t, err)

	_, err = svc.Issue(ctx, "a@x.com", domain.ChannelTypeEmail, domain.PurposeLogin)
	require.NoError(t, err)

	require.Equal(t, 1, repo.activeCount("a@x.com", domain.PurposeLogin))

	// The superseded code must no longer verify.
	err = svc.Verify(ctx, "a@x.com", first.Code, domain.PurposeLogin)
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestIssueRespectsResendCooldown(t *testing.T) {
	cfg := testVerificationConfig()
	cfg.ResendCooldown = time.Minute
	svc, _, _ := newTestVerificationService(cfg)
	ctx := context.Background()

	_, err := svc.Issue(ctx, "a@x.com", domain.ChannelTypeEmail, domain.PurposeLogin)
	require.NoError(t, err)

	_, err = svc.Issue(ctx, "a@x.com", domain.ChannelTypeEmail, domain.PurposeLogin)
	require.ErrorIs(t, err, ErrResendCooldown)
}

func TestIssueDeliveryRateLimited(t *testing.T) {
	svc, _, disp := newTestVerificationService(testVerificationConfig())
	disp.result = dispatcher.SendResult{Reason: dispatcher.ReasonRateLimited}

	_, err := svc.Issue(context.Background(), "a@x.com", domain.ChannelTypeEmail, domain.PurposeLogin)
	require.ErrorIs(t, err, ErrDeliveryRateLimited)
}

func TestVerifyRoundTrip(t *testing.T) {
	svc, _, _ := newTestVerificationService(testVerificationConfig())
	ctx := context.Background()

	out, err := svc.Issue(ctx, "a@x.com", domain.ChannelTypeEmail, domain.PurposeLogin)
	require.NoError(t, err)

	require.NoError(t, svc.Verify(ctx, "a@x.com", out.Code, domain.PurposeLogin))

	// A verified code is terminal; replaying it never accepts twice.
	err = svc.Verify(ctx, "a@x.com", out.Code, domain.PurposeLogin)
	require.ErrorIs(t, err, ErrCodeAlreadyUsed)
}

func TestVerifyWrongCodeExhaustsAttempts(t *testing.T) {
	svc, _, _ := newTestVerificationService(testVerificationConfig())
	ctx := context.Background()

	out, err := svc.Issue(ctx, "a@x.com", domain.ChannelTypeEmail, domain.PurposeLogin)
	require.NoError(t, err)

	wrong := "000000"
	if out.Code == wrong {
		wrong = "999999"
	}

	require.ErrorIs(t, svc.Verify(ctx, "a@x.com", wrong, domain.PurposeLogin), ErrInvalidCode)
	require.ErrorIs(t, svc.Verify(ctx, "a@x.com", wrong, domain.PurposeLogin), ErrInvalidCode)
	require.ErrorIs(t, svc.Verify(ctx, "a@x.com", wrong, domain.PurposeLogin), ErrMaxAttemptsExceeded)

	// Правильный код после исчерпания попыток уже не принимается.
	err = svc.Verify(ctx, "a@x.com", out.Code, domain.PurposeLogin)
	require.ErrorIs(t, err, ErrCodeAlreadyUsed)
}

func TestVerifyNeverIssued(t *testing.T) {
	svc, _, _ := newTestVerificationService(testVerificationConfig())

	err := svc.Verify(context.Background(), "nobody@x.com", "123456", domain.PurposeLogin)
	require.ErrorIs(t, err, ErrCodeNotFound)
}

func TestVerifyExpiredCode(t *testing.T) {
	svc, repo, _ := newTestVerificationService(testVerificationConfig())
	ctx := context.Background()

	id, err := uuid.NewV7()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, &domain.VerificationCode{
		ID:          id,
		Identifier:  "a@x.com",
		ChannelType: domain.ChannelTypeEmail,
		Code:        "123456",
		Purpose:     domain.PurposeLogin,
		ExpiresAt:   time.Now().Add(-time.Minute),
		SentAt:      time.Now().Add(-11 * time.Minute),
		CreatedAt:   time.Now().Add(-11 * time.Minute),
	}))

	err = svc.Verify(ctx, "a@x.com", "123456", domain.PurposeLogin)
	require.ErrorIs(t, err, ErrCodeExpired)
}

func TestCanResend(t *testing.T) {
	cfg := testVerificationConfig()
	cfg.ResendCooldown = time.Minute
	svc, repo, _ := newTestVerificationService(cfg)
	ctx := context.Background()

	status, err := svc.CanResend(ctx, "a@x.com", domain.ChannelTypeEmail, domain.PurposeLogin)
	require.NoError(t, err)
	require.True(t, status.Allowed, "no code history allows a send")

	cfg2 := cfg
	cfg2.ResendCooldown = 0
	first := newVerificationService(repo, otp.NewSecureGenerator(), newFakeDispatcher(), cfg2, zap.NewNop())
	_, err = first.Issue(ctx, "a@x.com", domain.ChannelTypeEmail, domain.PurposeLogin)
	require.NoError(t, err)

	status, err = svc.CanResend(ctx, "a@x.com", domain.ChannelTypeEmail, domain.PurposeLogin)
	require.NoError(t, err)
	require.False(t, status.Allowed)
	require.Greater(t, status.Wait, time.Duration(0))
}

func TestCleanup(t *testing.T) {
	svc, repo, _ := newTestVerificationService(testVerificationConfig())
	ctx := context.Background()

	expired, _ := uuid.NewV7()
	require.NoError(t, repo.Create(ctx, &domain.VerificationCode{
		ID:        expired,
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}))

	oldUsed, _ := uuid.NewV7()
	require.NoError(t, repo.Create(ctx, &domain.VerificationCode{
		ID:        oldUsed,
		IsUsed:    true,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}))

	fresh, _ := uuid.NewV7()
	require.NoError(t, repo.Create(ctx, &domain.VerificationCode{
		ID:        fresh,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	require.EqualValues(t, 2, svc.Cleanup(ctx))
	require.EqualValues(t, 0, svc.Cleanup(ctx))
}
