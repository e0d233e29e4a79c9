package domain

import "errors"

var ErrNotFound = errors.New("not found")

// Live data source failures. Adapters wrap these with %w so the search
// service can report why it fell back.
var (
	ErrTransport = errors.New("live source: transport failure")
	ErrStatus    = errors.New("live source: unexpected status")
	ErrDecode    = errors.New("live source: undecodable response")
	ErrContract  = errors.New("live source: response violates contract")
)

// ReasonFor maps a data source error to the reason reported to callers.
func ReasonFor(err error) FallbackReason {
	switch {
	case errors.Is(err, ErrTransport):
		return ReasonTransport
	case errors.Is(err, ErrStatus):
		return ReasonStatus
	case errors.Is(err, ErrDecode):
		return ReasonDecode
	case errors.Is(err, ErrContract):
		return ReasonContract
	default:
		return ReasonUnknown
	}
}
