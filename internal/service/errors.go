package service

import "errors"

var (
	ErrInvalidCode         = errors.New("invalid verification code")
	ErrCodeExpired         = errors.New("verification code expired")
	ErrCodeAlreadyUsed     = errors.New("verification code already used")
	ErrCodeNotFound        = errors.New("verification code not found")
	ErrMaxAttemptsExceeded = errors.New("max verification attempts exceeded")
	ErrResendCooldown      = errors.New("resend cooldown not elapsed")
	ErrDeliveryRateLimited = errors.New("delivery rate limited")
	ErrChannelUnavailable  = errors.New("delivery channel unavailable")

	ErrUnknownEvent = errors.New("unknown notification event")
)
