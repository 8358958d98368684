package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/emeritus-labs/emeritus-bridge/internal/emeritus"
)

// Option defines a function type used to configure an instance of the Handler struct.
type Option func(*Handler)

// WithLogger sets the logger for the Handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithContext sets the context for the Handler.
func WithContext(ctx context.Context) Option {
	return func(h *Handler) {
		h.ctx = ctx
	}
}

// WithCredentials sets the static Emeritus credential set. The user ID and
// secret are overwritten when the credential provider mode is 'ssm'.
func WithCredentials(creds emeritus.Credentials) Option {
	return func(h *Handler) {
		h.creds = creds
	}
}

// WithAuthMode selects the credential provider. Supported values are 'static' and 'ssm'.
func WithAuthMode(mode string) Option {
	return func(h *Handler) {
		h.authMode = mode
	}
}

// WithSSMKey sets the SSM parameter key holding the credential pair.
func WithSSMKey(key string) Option {
	return func(h *Handler) {
		h.ssmKey = key
	}
}

// WithTimeout sets the per-request timeout for upstream calls.
func WithTimeout(timeout time.Duration) Option {
	return func(h *Handler) {
		h.timeout = timeout
	}
}

// WithAuditBucket enables S3 audit uploads for auditable operations.
func WithAuditBucket(bucket string) Option {
	return func(h *Handler) {
		h.auditBucket = bucket
	}
}
