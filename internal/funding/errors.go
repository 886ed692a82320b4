package funding

// Code classifies a commitment failure for the caller. Every error that
// crosses the coordinator boundary carries exactly one of these.
type Code int

const (
	CodeInvalidMarket Code = iota + 1
	CodeUnconfiguredEngine
	CodeInvalidBalance
	CodeBelowMinimumBalance
	CodeAboveMaximumBalance
	CodeChannelAlreadySufficient
	CodeInsufficientOutboundChannel
	CodeInsufficientInboundChannel
	CodeFundingError
	CodeRelayerError
)

func (c Code) String() string {
	switch c {
	case CodeInvalidMarket:
		return "INVALID_MARKET"
	case CodeUnconfiguredEngine:
		return "UNCONFIGURED_ENGINE"
	case CodeInvalidBalance:
		return "INVALID_BALANCE"
	case CodeBelowMinimumBalance:
		return "BELOW_MINIMUM_BALANCE"
	case CodeAboveMaximumBalance:
		return "ABOVE_MAXIMUM_BALANCE"
	case CodeChannelAlreadySufficient:
		return "CHANNEL_ALREADY_SUFFICIENT"
	case CodeInsufficientOutboundChannel:
		return "INSUFFICIENT_OUTBOUND_CHANNEL"
	case CodeInsufficientInboundChannel:
		return "INSUFFICIENT_INBOUND_CHANNEL"
	case CodeFundingError:
		return "FUNDING_ERROR"
	case CodeRelayerError:
		return "RELAYER_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Error is a classified, user-facing commitment failure. Partial is true
// when the local outbound channel was opened before the failure occurred;
// such state is not rolled back and needs operator reconciliation.
type Error struct {
	Code    Code
	Message string
	Partial bool
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func wrapError(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

func partialError(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Partial: true,
		cause:   cause,
	}
}
