package bungie

import "fmt"

// Kind classifies the way a request into the Bungie API, or the data it
// returned, failed. Kind is what callers branch on; the wrapped error, if
// any, carries the underlying detail.
type Kind int

const (
	// KindTransport covers network failures, timeouts, and TLS errors.
	KindTransport Kind = iota
	// KindParse covers JSON decoding failures or an unexpected shape.
	KindParse
	// KindAPIUnavailable maps envelope ErrorCode 5.
	KindAPIUnavailable
	// KindParameterParse maps envelope ErrorCode 7.
	KindParameterParse
	// KindInvalidParameters maps envelope ErrorCode 18.
	KindInvalidParameters
	// KindPrivacy maps envelope ErrorCode 1665.
	KindPrivacy
	// KindKeyMissing maps envelope ErrorCode 2102.
	KindKeyMissing
	// KindAPIStatus is the generic envelope failure for any other non-1 code.
	KindAPIStatus
	// KindResponseMissing signals a successful envelope with no Response body.
	KindResponseMissing
	// KindBungieNameNotFound signals an empty SearchDestinyPlayer result.
	KindBungieNameNotFound
	// KindUnknownEnumValue signals an upstream integer outside any mapped set.
	KindUnknownEnumValue
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	case KindAPIUnavailable:
		return "api_unavailable"
	case KindParameterParse:
		return "parameter_parse"
	case KindInvalidParameters:
		return "invalid_parameters"
	case KindPrivacy:
		return "privacy"
	case KindKeyMissing:
		return "key_missing"
	case KindAPIStatus:
		return "api_status"
	case KindResponseMissing:
		return "response_missing"
	case KindBungieNameNotFound:
		return "bungie_name_not_found"
	case KindUnknownEnumValue:
		return "unknown_enum_value"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced by this package. Components branch
// on Kind; Unwrap exposes the underlying cause for errors.Is/errors.As.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bungie: %s: %s: %s", e.Kind, e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("bungie: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// errorKindForCode maps an envelope ErrorCode to its Kind per the status
// table described in the HTTP Client component.
func errorKindForCode(code int) (Kind, bool) {
	switch code {
	case 1:
		return 0, false
	case 5:
		return KindAPIUnavailable, true
	case 7:
		return KindParameterParse, true
	case 18:
		return KindInvalidParameters, true
	case 1665:
		return KindPrivacy, true
	case 2102:
		return KindKeyMissing, true
	default:
		return KindAPIStatus, true
	}
}
