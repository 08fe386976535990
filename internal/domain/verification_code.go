package domain

import (
	"time"

	"github.com/google/uuid"
)

type ChannelType string

const (
	ChannelTypePhone ChannelType = "phone"
	ChannelTypeEmail ChannelType = "email"
)

func (c ChannelType) Valid() bool {
	return c == ChannelTypePhone || c == ChannelTypeEmail
}

type VerificationPurpose string

const (
	PurposeRegistration      VerificationPurpose = "registration"
	PurposeLogin             VerificationPurpose = "login"
	PurposePasswordReset     VerificationPurpose = "password_reset"
	PurposePhoneVerification VerificationPurpose = "phone_verification"
	PurposeEmailVerification VerificationPurpose = "email_verification"
)

func (p VerificationPurpose) Valid() bool {
	switch p {
	case PurposeRegistration, PurposeLogin, PurposePasswordReset,
		PurposePhoneVerification, PurposeEmailVerification:
		return true
	}
	return false
}

type VerificationCode struct {
	ID          uuid.UUID           `db:"id"`
	Identifier  string              `db:"identifier"`
	ChannelType ChannelType         `db:"channel_type"`
	Code        string              `db:"code"`
	Purpose     VerificationPurpose `db:"purpose"`
	IsUsed      bool                `db:"is_used"`
	Attempts    int                 `db:"attempts"`
	ExpiresAt   time.Time           `db:"expires_at"`
	SentAt      time.Time           `db:"sent_at"`
	VerifiedAt  *time.Time          `db:"verified_at"`
	CreatedAt   time.Time           `db:"created_at"`
}

// Active reports whether the code can still be matched against a submitted value.
func (v *VerificationCode) Active(now time.Time) bool {
	return !v.IsUsed && now.Before(v.ExpiresAt)
}

func (v *VerificationCode) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}
