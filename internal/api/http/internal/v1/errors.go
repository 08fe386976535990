package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	InvalidCodeCode            = 2001
	InvalidCodeMessage         = "invalid verification code"
	CodeExpiredCode            = 2002
	CodeExpiredMessage         = "verification code expired"
	CodeAlreadyUsedCode        = 2003
	CodeAlreadyUsedMessage     = "verification code already used"
	CodeNotFoundCode           = 2004
	CodeNotFoundMessage        = "verification code not found"
	MaxAttemptsExceededCode    = 2005
	MaxAttemptsExceededMessage = "max verification attempts exceeded"
	ResendCooldownCode         = 2006
	ResendCooldownMessage      = "please wait before requesting another code"
	DeliveryRateLimitedCode    = 2007
	DeliveryRateLimitedMessage = "delivery rate limited, please wait"
	ChannelUnavailableCode     = 2008
	ChannelUnavailableMessage  = "delivery channel unavailable"
	UnknownEventCode           = 2009
	UnknownEventMessage        = "unknown notification event"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case InvalidCodeCode:
		errorStruct.ErrorCode = InvalidCodeCode
		errorStruct.ErrorMessage = InvalidCodeMessage
	case CodeExpiredCode:
		errorStruct.ErrorCode = CodeExpiredCode
		errorStruct.ErrorMessage = CodeExpiredMessage
	case CodeAlreadyUsedCode:
		errorStruct.ErrorCode = CodeAlreadyUsedCode
		errorStruct.ErrorMessage = CodeAlreadyUsedMessage
	case CodeNotFoundCode:
		errorStruct.ErrorCode = CodeNotFoundCode
		errorStruct.ErrorMessage = CodeNotFoundMessage
	case MaxAttemptsExceededCode:
		errorStruct.ErrorCode = MaxAttemptsExceededCode
		errorStruct.ErrorMessage = MaxAttemptsExceededMessage
	case ResendCooldownCode:
		errorStruct.ErrorCode = ResendCooldownCode
		errorStruct.ErrorMessage = ResendCooldownMessage
	case DeliveryRateLimitedCode:
		errorStruct.ErrorCode = DeliveryRateLimitedCode
		errorStruct.ErrorMessage = DeliveryRateLimitedMessage
	case ChannelUnavailableCode:
		errorStruct.ErrorCode = ChannelUnavailableCode
		errorStruct.ErrorMessage = ChannelUnavailableMessage
	case UnknownEventCode:
		errorStruct.ErrorCode = UnknownEventCode
		errorStruct.ErrorMessage = UnknownEventMessage
	}

	return errorStruct
}
