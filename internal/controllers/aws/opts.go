package aws

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// WithLogger sets the logger for the Controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithContext sets the context for the Controller.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

// WithConfig sets a pre-loaded AWS configuration on the Controller.
func WithConfig(cfg *aws.Config) Option {
	return func(c *Controller) {
		c.config = cfg
	}
}
