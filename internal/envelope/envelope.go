// Package envelope defines the uniform result shape returned to every caller
// and the single translation point from internal errors to that shape.
package envelope

import (
	"errors"

	"github.com/emeritus-labs/emeritus-bridge/internal/emeritus"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error kinds reported in the envelope.
const (
	KindValidation     = "ValidationError"
	KindUpstream       = "UpstreamError"
	KindNetwork        = "NetworkError"
	KindAuthentication = "AuthenticationError"
	KindInternal       = "InternalError"
)

// Envelope is the only shape returned to callers: exactly one of Data (on
// success) or Error (on failure) is populated.
type Envelope struct {
	Status string  `json:"status"`
	Data   any     `json:"data,omitempty"`
	Error  *Detail `json:"error,omitempty"`
}

// Detail describes a failed call.
type Detail struct {
	Kind           string `json:"kind"`
	Message        string `json:"message"`
	UpstreamStatus int    `json:"upstreamStatus,omitempty"`
	UpstreamCode   int    `json:"upstreamCode,omitempty"`
}

// Success wraps a handler result value.
func Success(data any) Envelope {
	return Envelope{Status: StatusSuccess, Data: data}
}

// Error builds an error envelope with an explicit kind. Used by the inbound
// surfaces for failures that never reach a handler (authentication, routing).
func Error(kind, message string) Envelope {
	return Envelope{Status: StatusError, Error: &Detail{Kind: kind, Message: message}}
}

// Failure translates any error raised during a call into the envelope shape.
// Raw transport errors never leak: unknown error types are reported as
// InternalError with their message only.
func Failure(err error) Envelope {
	detail := &Detail{Kind: KindInternal, Message: err.Error()}

	var validationErr *emeritus.ValidationError
	var upstreamErr *emeritus.UpstreamError
	var networkErr *emeritus.NetworkError
	switch {
	case errors.As(err, &validationErr):
		detail.Kind = KindValidation
		detail.Message = validationErr.Message
	case errors.As(err, &upstreamErr):
		detail.Kind = KindUpstream
		detail.Message = upstreamErr.Message
		detail.UpstreamStatus = upstreamErr.Status
		detail.UpstreamCode = upstreamErr.Code
	case errors.As(err, &networkErr):
		detail.Kind = KindNetwork
	}

	return Envelope{Status: StatusError, Error: detail}
}
