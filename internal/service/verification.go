package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/roadassist/backend/internal/config"
	"github.com/roadassist/backend/internal/dispatcher"
	"github.com/roadassist/backend/internal/domain"
	"github.com/roadassist/backend/internal/render"
	"github.com/roadassist/backend/internal/repository"
	"github.com/roadassist/backend/pkg/otp"
	"go.uber.org/zap"
)

type verificationService struct {
	codes      repository.VerificationCodes
	generator  otp.Generator
	dispatcher NotificationDispatcher
	config     config.VerificationConfig
	logger     *zap.Logger
}

func newVerificationService(
	codes repository.VerificationCodes,
	generator otp.Generator,
	notificationDispatcher NotificationDispatcher,
	cfg config.VerificationConfig,
	logger *zap.Logger,
) *verificationService {
	return &verificationService{
		codes:      codes,
		generator:  generator,
		dispatcher: notificationDispatcher,
		config:     cfg,
		logger:     logger,
	}
}

// Issue supersedes any active code for the tuple, persists a fresh one and
// hands it to the dispatcher. The code value is also returned to the caller;
// exposing it outside the delivery channel is a deployment decision.
func (s *verificationService) Issue(
	ctx context.Context,
	identifier string,
	channelType domain.ChannelType,
	purpose domain.VerificationPurpose,
) (*IssueOutput, error) {
	if status, err := s.CanResend(ctx, identifier, channelType, purpose); err != nil {
		return nil, err
	} else if !status.Allowed {
		return nil, ErrResendCooldown
	}

	// Invalidate before insert so two active codes can never coexist for the
	// tuple, even against a concurrent verify.
	if _, err := s.codes.InvalidateActive(ctx, identifier, channelType, purpose); err != nil {
		return nil, fmt.Errorf("invalidate active codes failed: %w", err)
	}

	codeValue, err := s.generator.RandomCode(s.config.CodeLength)
	if err != nil {
		return nil, fmt.Errorf("generate verification code failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate code id failed: %w", err)
	}

	now := time.Now()
	code := &domain.VerificationCode{
		ID:          id,
		Identifier:  identifier,
		ChannelType: channelType,
		Code:        codeValue,
		Purpose:     purpose,
		ExpiresAt:   now.Add(s.config.CodeTTL),
		SentAt:      now,
		CreatedAt:   now,
	}

	if err := s.codes.Create(ctx, code); err != nil {
		return nil, fmt.Errorf("create verification code failed: %w", err)
	}

	res := s.dispatcher.Send(ctx, dispatcher.SendInput{
		Channel:   deliveryChannel(channelType),
		Recipient: identifier,
		Template:  templateForPurpose(purpose),
		Data: map[string]string{
			"code":        codeValue,
			"ttl_minutes": strconv.Itoa(int(s.config.CodeTTL.Minutes())),
		},
		Priority: priorityForPurpose(purpose),
	})

	if !res.Accepted && !res.Queued {
		// The code stays persisted; the caller decides whether to retry after
		// the cooldown.
		switch res.Reason {
		case dispatcher.ReasonRateLimited:
			return nil, ErrDeliveryRateLimited
		default:
			return nil, ErrChannelUnavailable
		}
	}

	s.logger.Info("verification code issued",
		zap.String("identifier", identifier),
		zap.String("purpose", string(purpose)),
		zap.String("channel_type", string(channelType)),
		zap.Bool("queued", res.Queued),
	)

	return &IssueOutput{
		Code:      codeValue,
		ExpiresAt: code.ExpiresAt,
		Queued:    res.Queued,
	}, nil
}

// Verify checks a submitted code against the active code for the identifier
// and purpose. A wrong guess against a live code is penalized with an attempt
// increment; the attempt that reaches the cap exhausts the code.
func (s *verificationService) Verify(
	ctx context.Context,
	identifier string,
	submittedCode string,
	purpose domain.VerificationPurpose,
) error {
	now := time.Now()

	active, err := s.codes.GetActive(ctx, identifier, purpose, now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.classifyInactive(ctx, identifier, purpose, now)
		}
		return fmt.Errorf("get active verification code failed: %w", err)
	}

	if active.Attempts >= s.config.MaxAttempts {
		if err := s.codes.MarkUsed(ctx, active.ID); err != nil {
			return fmt.Errorf("mark exhausted code used failed: %w", err)
		}
		return ErrMaxAttemptsExceeded
	}

	if active.Code != submittedCode {
		if err := s.codes.IncrementAttempts(ctx, active.ID, active.Attempts); err != nil {
			if errors.Is(err, domain.ErrNoRowsAffected) {
				// The code changed under us; the persisted state wins.
				return ErrInvalidCode
			}
			return fmt.Errorf("increment attempts failed: %w", err)
		}

		if active.Attempts+1 >= s.config.MaxAttempts {
			if err := s.codes.MarkUsed(ctx, active.ID); err != nil {
				return fmt.Errorf("mark exhausted code used failed: %w", err)
			}
			s.logger.Warn("verification code exhausted",
				zap.String("identifier", identifier),
				zap.String("purpose", string(purpose)),
			)
			return ErrMaxAttemptsExceeded
		}

		return ErrInvalidCode
	}

	if err := s.codes.MarkVerified(ctx, active.ID, now); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			// Lost the race with an invalidation or another verify.
			return ErrCodeAlreadyUsed
		}
		return fmt.Errorf("mark code verified failed: %w", err)
	}

	s.logger.Info("verification code accepted",
		zap.String("identifier", identifier),
		zap.String("purpose", string(purpose)),
	)

	return nil
}

// classifyInactive picks the rejection for an identifier with no active code,
// without revealing more than expired/used/never-issued.
func (s *verificationService) classifyInactive(
	ctx context.Context,
	identifier string,
	purpose domain.VerificationPurpose,
	now time.Time,
) error {
	latest, err := s.codes.GetLatest(ctx, identifier, purpose)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrCodeNotFound
		}
		return fmt.Errorf("get latest verification code failed: %w", err)
	}

	if latest.VerifiedAt != nil {
		return ErrCodeAlreadyUsed
	}
	if latest.Expired(now) {
		return ErrCodeExpired
	}

	return ErrCodeAlreadyUsed
}

func (s *verificationService) CanResend(
	ctx context.Context,
	identifier string,
	channelType domain.ChannelType,
	purpose domain.VerificationPurpose,
) (*ResendStatus, error) {
	last, err := s.codes.GetLastSent(ctx, identifier, channelType, purpose)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &ResendStatus{Allowed: true}, nil
		}
		return nil, fmt.Errorf("get last sent code failed: %w", err)
	}

	elapsed := time.Since(last.SentAt)
	if elapsed < s.config.ResendCooldown {
		return &ResendStatus{Wait: s.config.ResendCooldown - elapsed}, nil
	}

	return &ResendStatus{Allowed: true}, nil
}

// Cleanup removes stale codes. Failures are logged and reported as zero
// deletions; the sweep runs again on the next trigger.
func (s *verificationService) Cleanup(ctx context.Context) int64 {
	deleted, err := s.codes.DeleteStale(ctx, time.Now(), s.config.Retention)
	if err != nil {
		s.logger.Error("verification code cleanup failed", zap.Error(err))
		return 0
	}

	if deleted > 0 {
		s.logger.Info("verification codes cleaned up", zap.Int64("deleted", deleted))
	}

	return deleted
}

func deliveryChannel(channelType domain.ChannelType) domain.Channel {
	if channelType == domain.ChannelTypePhone {
		return domain.ChannelSMS
	}
	return domain.ChannelEmail
}

func priorityForPurpose(purpose domain.VerificationPurpose) domain.Priority {
	switch purpose {
	case domain.PurposeLogin, domain.PurposeRegistration, domain.PurposePasswordReset:
		return domain.PriorityHigh
	default:
		return domain.PriorityMedium
	}
}

func templateForPurpose(purpose domain.VerificationPurpose) render.TemplateID {
	switch purpose {
	case domain.PurposeRegistration:
		return render.TemplateRegistrationCode
	case domain.PurposeLogin:
		return render.TemplateLoginCode
	case domain.PurposePasswordReset:
		return render.TemplatePasswordResetCode
	default:
		return render.TemplateVerificationCode
	}
}
