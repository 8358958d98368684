// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Runtime modes of the application.
const (
	ModeService     = "service"
	ModeMCP         = "mcp"
	ModeLambdaHTTP  = "lambda-http"
	ModeLambdaEvent = "lambda-event"
)

// Credential provider modes for the Emeritus API.
const (
	AuthModeStatic = "static"
	AuthModeSSM    = "ssm"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Emeritus is a struct that contains the upstream API configuration.
	Emeritus emeritus
	// Auth is a struct that contains the inbound authentication configuration.
	Auth auth
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Lambda is a struct that contains the configuration for the lambda mode.
	Lambda lambda
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"service"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
	// S3 is a struct that contains the configuration for S3 audit uploads.
	S3 struct {
		Audit struct {
			BucketName string `yaml:"bucketName,omitempty"`
			Enabled    bool   `yaml:"enabled,omitempty"`
		} `yaml:"audit,omitempty"`
	} `yaml:"s3,omitempty"`
}

type emeritus struct {
	// Host is the Emeritus API host URL.
	Host string `yaml:"host,omitempty"`
	// UserID is the Emeritus account user ID used for signing.
	UserID string `yaml:"userId,omitempty"`
	// APISecret is the shared secret used for signing. Ignored when AuthMode is 'ssm'.
	APISecret string `yaml:"apiSecret,omitempty"`
	// AuthMode selects the credential provider. Supported values are 'static' and 'ssm'.
	AuthMode string `yaml:"authMode,omitempty" default:"static"`
	// SSMKey is the SSM parameter holding the credential pair when AuthMode is 'ssm'.
	SSMKey string `yaml:"ssmKey,omitempty"`
	// Timeout is the per-request timeout for upstream calls.
	Timeout time.Duration `yaml:"timeout,omitempty" default:"30s"`
}

type auth struct {
	// BearerKey is the static key required on inbound requests. Empty disables the check.
	BearerKey string `yaml:"bearerKey,omitempty"`
}

type service struct {
	Addr    string        `yaml:"addr,omitempty"`
	Port    string        `yaml:"port,omitempty" default:"8080"`
	Timeout time.Duration `yaml:"timeout,omitempty" default:"5s"`
}

type lambda struct {
	PayloadType string `yaml:"payloadType,omitempty" default:"api-gateway-v2"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&Emeritus),
		defaults.Set(&Auth),
		defaults.Set(&Service),
		defaults.Set(&Lambda),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global   global   `yaml:"global,omitempty"`
		Emeritus emeritus `yaml:"emeritus,omitempty"`
		Auth     auth     `yaml:"auth,omitempty"`
		Service  service  `yaml:"service,omitempty"`
		Lambda   lambda   `yaml:"lambda,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	Emeritus = a.Emeritus
	Auth = a.Auth
	Service = a.Service
	Lambda = a.Lambda

	return nil
}
