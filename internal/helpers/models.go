package helpers

import (
	"github.com/aws/aws-lambda-go/events"
)

// Request is the inbound Lambda payload shape. API Gateway v2 is the richest
// of the supported payloads; the runtime downgrades the response shape when a
// different payload type is configured.
type Request = events.APIGatewayV2HTTPRequest
