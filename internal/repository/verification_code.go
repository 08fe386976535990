package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/roadassist/backend/internal/domain"
)

type verificationCodeRepository struct {
	db *sqlx.DB
}

func newVerificationCodeRepository(db *sqlx.DB) *verificationCodeRepository {
	return &verificationCodeRepository{
		db: db,
	}
}

func (r *verificationCodeRepository) Create(ctx context.Context, code *domain.VerificationCode) error {
	const op = "repository.verificationCode.Create"

	const query = `
    INSERT INTO verification_codes (id, identifier, channel_type, code, purpose, is_used, attempts, expires_at, sent_at)
    VALUES (uuid_to_bin(:id), :identifier, :channel_type, :code, :purpose, :is_used, :attempts, :expires_at, :sent_at)
    `

	res, err := r.db.NamedExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("%s: insert verification code failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

func (r *verificationCodeRepository) InvalidateActive(
	ctx context.Context,
	identifier string,
	channelType domain.ChannelType,
	purpose domain.VerificationPurpose,
) (int64, error) {
	const op = "repository.verificationCode.InvalidateActive"

	const query = `
    UPDATE verification_codes
    SET is_used = TRUE
    WHERE identifier = ? AND channel_type = ? AND purpose = ? AND is_used = FALSE
    `

	res, err := r.db.ExecContext(ctx, query, identifier, channelType, purpose)
	if err != nil {
		return 0, fmt.Errorf("%s: invalidate verification codes failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows, nil
}

func (r *verificationCodeRepository) GetActive(
	ctx context.Context,
	identifier string,
	purpose domain.VerificationPurpose,
	now time.Time,
) (*domain.VerificationCode, error) {
	const op = "repository.verificationCode.GetActive"

	const query = `
    SELECT id, identifier, channel_type, code, purpose, is_used, attempts, expires_at, sent_at, verified_at, created_at
    FROM verification_codes
    WHERE identifier = ? AND purpose = ? AND is_used = FALSE AND expires_at > ?
    ORDER BY created_at DESC
    LIMIT 1
    `

	var code domain.VerificationCode
	if err := r.db.GetContext(ctx, &code, query, identifier, purpose, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select verification code failed: %w", op, err)
	}

	return &code, nil
}

func (r *verificationCodeRepository) GetLatest(
	ctx context.Context,
	identifier string,
	purpose domain.VerificationPurpose,
) (*domain.VerificationCode, error) {
	const op = "repository.verificationCode.GetLatest"

	const query = `
    SELECT id, identifier, channel_type, code, purpose, is_used, attempts, expires_at, sent_at, verified_at, created_at
    FROM verification_codes
    WHERE identifier = ? AND purpose = ?
    ORDER BY created_at DESC
    LIMIT 1
    `

	var code domain.VerificationCode
	if err := r.db.GetContext(ctx, &code, query, identifier, purpose); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select verification code failed: %w", op, err)
	}

	return &code, nil
}

func (r *verificationCodeRepository) GetLastSent(
	ctx context.Context,
	identifier string,
	channelType domain.ChannelType,
	purpose domain.VerificationPurpose,
) (*domain.VerificationCode, error) {
	const op = "repository.verificationCode.GetLastSent"

	const query = `
    SELECT id, identifier, channel_type, code, purpose, is_used, attempts, expires_at, sent_at, verified_at, created_at
    FROM verification_codes
    WHERE identifier = ? AND channel_type = ? AND purpose = ?
    ORDER BY sent_at DESC
    LIMIT 1
    `

	var code domain.VerificationCode
	if err := r.db.GetContext(ctx, &code, query, identifier, channelType, purpose); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select verification code failed: %w", op, err)
	}

	return &code, nil
}

func (r *verificationCodeRepository) MarkVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error {
	const op = "repository.verificationCode.MarkVerified"

	const query = `
    UPDATE verification_codes
    SET is_used = TRUE, verified_at = ?
    WHERE id = uuid_to_bin(?) AND is_used = FALSE
    `

	res, err := r.db.ExecContext(ctx, query, verifiedAt, id)
	if err != nil {
		return fmt.Errorf("%s: update verification code failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *verificationCodeRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	const op = "repository.verificationCode.MarkUsed"

	const query = `
    UPDATE verification_codes
    SET is_used = TRUE
    WHERE id = uuid_to_bin(?)
    `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: update verification code failed: %w", op, err)
	}

	return nil
}

func (r *verificationCodeRepository) IncrementAttempts(ctx context.Context, id uuid.UUID, expectedAttempts int) error {
	const op = "repository.verificationCode.IncrementAttempts"

	const query = `
    UPDATE verification_codes
    SET attempts = attempts + 1
    WHERE id = uuid_to_bin(?) AND attempts = ? AND is_used = FALSE
    `

	res, err := r.db.ExecContext(ctx, query, id, expectedAttempts)
	if err != nil {
		return fmt.Errorf("%s: update verification code failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *verificationCodeRepository) DeleteStale(ctx context.Context, now time.Time, retention time.Duration) (int64, error) {
	const op = "repository.verificationCode.DeleteStale"

	const query = `
    DELETE FROM verification_codes
    WHERE expires_at < ? OR (is_used = TRUE AND created_at < ?)
    `

	res, err := r.db.ExecContext(ctx, query, now, now.Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("%s: delete verification codes failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows, nil
}
