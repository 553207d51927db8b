package providers

import (
	"errors"
	"fmt"
)

// PublicMessage is the only failure text shown to end users during sign-in.
// Error details are for operators and belong in logs and telemetry.
const PublicMessage = "sign-in failed"

// Kind classifies a client failure.
type Kind int

// Error kinds
const (
	// KindUnknown is reported for errors not produced by a provider client.
	KindUnknown Kind = iota

	// KindConfiguration: missing or invalid client ID, secret or redirect URL.
	KindConfiguration

	// KindNetwork: transport failure reaching the provider.
	KindNetwork

	// KindUpstreamRejected: the provider returned an explicit error
	// (invalid code, expired token, denied scope).
	KindUpstreamRejected

	// KindMalformed: the provider's success response lacks an expected field
	// or cannot be parsed. Unverified email addresses are reported as malformed.
	KindMalformed
)

// String returns the kind name used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindNetwork:
		return "network"
	case KindUpstreamRejected:
		return "upstream_rejected"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching on the error kind.
var (
	ErrConfiguration    = errors.New("configuration error")
	ErrNetwork          = errors.New("network error")
	ErrUpstreamRejected = errors.New("upstream rejected")
	ErrMalformed        = errors.New("malformed provider response")
)

// ErrEmptyCode is wrapped in an upstream-rejected *Error when an empty
// authorization code is passed to ExchangeCodeForToken. Real clients reject it
// without contacting the provider.
var ErrEmptyCode = errors.New("authorization code is empty")

// Operation names used in errors, logs and telemetry.
const (
	OpAuthorizationURL = "authorization_url"
	OpExchangeCode     = "exchange_code"
	OpFetchEmail       = "fetch_email"
	OpFetchFullName    = "fetch_full_name"
)

// Error is a classified provider client failure.
// Description and Err never carry authorization codes or access tokens.
type Error struct {
	Kind        Kind
	Provider    Provider
	Op          string
	Status      int // HTTP status from the provider, 0 if none
	Description string
	Err         error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Provider != "" {
		msg = string(e.Provider) + ": " + msg
	}
	if e.Op != "" {
		msg += " during " + e.Op
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Description != "" {
		msg += ": " + e.Description
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels, so errors.Is(err, ErrNetwork) works on any
// wrapped *Error of that kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConfiguration:
		return e.Kind == KindConfiguration
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrUpstreamRejected:
		return e.Kind == KindUpstreamRejected
	case ErrMalformed:
		return e.Kind == KindMalformed
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusOf returns the provider HTTP status recorded in err's chain, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// ConfigurationError wraps err as a configuration failure for the given provider operation.
func ConfigurationError(p Provider, op string, err error) *Error {
	return &Error{Kind: KindConfiguration, Provider: p, Op: op, Err: err}
}

// EmptyCodeError returns the error for an empty authorization code at provider p.
func EmptyCodeError(p Provider) error {
	return &Error{Kind: KindUpstreamRejected, Provider: p, Op: OpExchangeCode, Err: ErrEmptyCode}
}
