package repository

import (
	"context"
	"time"

	"github.com/roadassist/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	VerificationCodes VerificationCodes
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		VerificationCodes: newVerificationCodeRepository(db),
	}
}

type VerificationCodes interface {
	Create(ctx context.Context, code *domain.VerificationCode) error
	// InvalidateActive marks every unused code for the tuple as used and
	// returns how many rows it touched.
	InvalidateActive(ctx context.Context, identifier string, channelType domain.ChannelType, purpose domain.VerificationPurpose) (int64, error)
	// GetActive returns the most recently created unused, unexpired code for
	// (identifier, purpose), or domain.ErrNotFound.
	GetActive(ctx context.Context, identifier string, purpose domain.VerificationPurpose, now time.Time) (*domain.VerificationCode, error)
	// GetLatest returns the most recently created code for (identifier, purpose)
	// regardless of status, or domain.ErrNotFound.
	GetLatest(ctx context.Context, identifier string, purpose domain.VerificationPurpose) (*domain.VerificationCode, error)
	// GetLastSent returns the most recently sent code for the full tuple
	// regardless of status, or domain.ErrNotFound.
	GetLastSent(ctx context.Context, identifier string, channelType domain.ChannelType, purpose domain.VerificationPurpose) (*domain.VerificationCode, error)
	// MarkVerified sets is_used and verified_at only while the code is still
	// unused; returns domain.ErrNoRowsAffected if a concurrent writer won.
	MarkVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error
	// MarkUsed sets is_used regardless of verification state.
	MarkUsed(ctx context.Context, id uuid.UUID) error
	// IncrementAttempts bumps the attempt counter from the expected value only
	// while the code is unused; returns domain.ErrNoRowsAffected on a lost race.
	IncrementAttempts(ctx context.Context, id uuid.UUID, expectedAttempts int) error
	// DeleteStale removes expired codes and used codes older than the retention
	// horizon, returning the number of deleted rows.
	DeleteStale(ctx context.Context, now time.Time, retention time.Duration) (int64, error)
}
