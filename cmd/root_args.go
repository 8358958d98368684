package cmd

import (
	"time"

	"github.com/emeritus-labs/emeritus-bridge/internal/config"
	"github.com/emeritus-labs/emeritus-bridge/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'service', 'mcp', 'lambda-http' and 'lambda-event'",
		Short:       helpers.Ptr("m"),
	},
	&config.Emeritus.Host: {
		Name:        "emeritus-host",
		Description: "The Emeritus API host URL",
	},
	&config.Emeritus.UserID: {
		Name:        "emeritus-user-id",
		Description: "The Emeritus account user ID used for request signing",
	},
	&config.Emeritus.APISecret: {
		Name:        "emeritus-api-secret",
		Description: "The Emeritus API secret used for request signing. Ignored when the auth mode is 'ssm'",
		Hidden:      true,
	},
	&config.Emeritus.AuthMode: {
		Name:        "emeritus-auth-mode",
		Description: "Credential provider. Supported values are 'static' and 'ssm'.",
		Short:       helpers.Ptr("A"),
	},
	&config.Emeritus.SSMKey: {
		Name:        "emeritus-ssm-key",
		Description: "The SSM parameter key to use when fetching the Emeritus credential pair",
	},
	&config.Auth.BearerKey: {
		Name:        "auth-bearer-key",
		Description: "The bearer key required on inbound requests. If not specified, no validation is performed",
		Hidden:      true,
	},
	&config.Global.S3.Audit.BucketName: {
		Name:        "audit-s3-bucket",
		Description: "The S3 bucket to use when uploading audit records",
		Env:         helpers.Ptr("AUDIT_S3_BUCKET"),
	},
	&config.Service.Addr: {
		Name:        "service-host-addr",
		Description: "The address to serve the service on (default all interfaces in dual-stack mode)",
		Short:       helpers.Ptr("H"),
	},
	&config.Service.Port: {
		Name:        "service-host-port",
		Description: "The port to serve the service on",
		Short:       helpers.Ptr("p"),
	},
	&config.Lambda.PayloadType: {
		Name:        "lambda-payload-type",
		Description: "The payload type to expect when running in Lambda mode. Supported values are 'api-gateway-v1', 'api-gateway-v2' and 'lambda-url'",
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
	&config.Global.S3.Audit.Enabled: {
		Name:        "audit-s3-upload",
		Description: "Enable S3 upload of audit records",
		Env:         helpers.Ptr("AUDIT_S3_UPLOAD"),
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Emeritus.Timeout: {
		Name:        "emeritus-timeout",
		Description: "The per-request timeout for upstream Emeritus calls",
	},
	&config.Service.Timeout: {
		Name:        "service-io-timeout",
		Description: "The timeout for I/O operations",
		Short:       helpers.Ptr("t"),
	},
}
