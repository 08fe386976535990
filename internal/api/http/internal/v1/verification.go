package v1

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roadassist/backend/internal/domain"
	"github.com/roadassist/backend/internal/service"
)

type issueCodeRequest struct {
	Identifier  string `json:"identifier" binding:"required,min=3,max=254"`
	ChannelType string `json:"channel_type" binding:"required,oneof=phone email"`
	Purpose     string `json:"purpose" binding:"required,oneof=registration login password_reset phone_verification email_verification"`
}

type issueCodeResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
	Queued    bool      `json:"queued"`
} // @name IssueCodeResponse

// @Summary Issue a verification code
// @Tags verification
// @Accept json
// @Produce json
// @Param input body issueCodeRequest true "issue request"
// @Success 200 {object} issueCodeResponse
// @Failure 400 {object} ErrorStruct
// @Router /v1/verification/issue [post]
func (h *Handler) issueCode(c *gin.Context) {
	var req issueCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	out, err := h.services.Verification.Issue(
		c.Request.Context(),
		req.Identifier,
		domain.ChannelType(req.ChannelType),
		domain.VerificationPurpose(req.Purpose),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResendCooldown):
			errorResponse(c, ResendCooldownCode)
		case errors.Is(err, service.ErrDeliveryRateLimited):
			errorResponse(c, DeliveryRateLimitedCode)
		case errors.Is(err, service.ErrChannelUnavailable):
			errorResponse(c, ChannelUnavailableCode)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	// The raw code is delivered over the channel only, never echoed back.
	c.JSON(http.StatusOK, issueCodeResponse{
		ExpiresAt: out.ExpiresAt,
		Queued:    out.Queued,
	})
}

type verifyCodeRequest struct {
	Identifier string `json:"identifier" binding:"required,min=3,max=254"`
	Code       string `json:"code" binding:"required,min=4,max=10,number"`
	Purpose    string `json:"purpose" binding:"required,oneof=registration login password_reset phone_verification email_verification"`
}

type verifyCodeResponse struct {
	Verified bool `json:"verified"`
} // @name VerifyCodeResponse

// @Summary Verify a submitted code
// @Tags verification
// @Accept json
// @Produce json
// @Param input body verifyCodeRequest true "verify request"
// @Success 200 {object} verifyCodeResponse
// @Failure 400 {object} ErrorStruct
// @Router /v1/verification/verify [post]
func (h *Handler) verifyCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err := h.services.Verification.Verify(
		c.Request.Context(),
		req.Identifier,
		req.Code,
		domain.VerificationPurpose(req.Purpose),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			errorResponse(c, InvalidCodeCode)
		case errors.Is(err, service.ErrCodeExpired):
			errorResponse(c, CodeExpiredCode)
		case errors.Is(err, service.ErrCodeAlreadyUsed):
			errorResponse(c, CodeAlreadyUsedCode)
		case errors.Is(err, service.ErrCodeNotFound):
			errorResponse(c, CodeNotFoundCode)
		case errors.Is(err, service.ErrMaxAttemptsExceeded):
			errorResponse(c, MaxAttemptsExceededCode)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, verifyCodeResponse{Verified: true})
}

type resendStatusRequest struct {
	Identifier  string `form:"identifier" binding:"required,min=3,max=254"`
	ChannelType string `form:"channel_type" binding:"required,oneof=phone email"`
	Purpose     string `form:"purpose" binding:"required,oneof=registration login password_reset phone_verification email_verification"`
}

type resendStatusResponse struct {
	Allowed     bool `json:"allowed"`
	WaitSeconds int  `json:"wait_seconds,omitempty"`
} // @name ResendStatusResponse

// @Summary Check whether a code can be resent
// @Tags verification
// @Produce json
// @Param identifier query string true "identifier"
// @Param channel_type query string true "phone or email"
// @Param purpose query string true "code purpose"
// @Success 200 {object} resendStatusResponse
// @Failure 400 {object} ErrorStruct
// @Router /v1/verification/resend-status [get]
func (h *Handler) resendStatus(c *gin.Context) {
	var req resendStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	status, err := h.services.Verification.CanResend(
		c.Request.Context(),
		req.Identifier,
		domain.ChannelType(req.ChannelType),
		domain.VerificationPurpose(req.Purpose),
	)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resendStatusResponse{
		Allowed:     status.Allowed,
		WaitSeconds: int(math.Ceil(status.Wait.Seconds())),
	})
}
