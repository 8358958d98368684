// Package runtime exposes the bridge handler over the supported inbound
// surfaces: a plain HTTP server, AWS Lambda behind API Gateway or a Lambda
// URL, and direct Lambda invocations.
package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/emeritus-labs/emeritus-bridge/internal/emeritus"
	"github.com/emeritus-labs/emeritus-bridge/internal/envelope"
	"github.com/emeritus-labs/emeritus-bridge/internal/handler"
	"github.com/emeritus-labs/emeritus-bridge/internal/helpers"
	"github.com/emeritus-labs/emeritus-bridge/internal/models"
	"github.com/emeritus-labs/emeritus-bridge/internal/validation"
	"github.com/google/uuid"
)

// Option defines a function type used to configure a Runtime instance.
type Option func(*Runtime)

// WithLogger sets the logger for the Runtime.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithBearerKey sets the inbound bearer key. A nil or empty key disables the check.
func WithBearerKey(key *validation.BearerKey) Option {
	return func(r *Runtime) {
		r.bearerKey = key
	}
}

// WithLambdaPayloadType sets the Lambda response payload shape.
func WithLambdaPayloadType(payloadType string) Option {
	return func(r *Runtime) {
		r.lambdaPayloadType = payloadType
	}
}

// Runtime routes inbound requests onto the operation registry and writes the
// normalised envelope back in the shape the transport expects.
type Runtime struct {
	*handler.Handler
	logger            *slog.Logger
	bearerKey         *validation.BearerKey
	lambdaPayloadType string
	routes            map[string]handler.Operation
	paths             map[string]bool
}

// NewRuntime creates a new runtime instance for the given handler.
func NewRuntime(hdl *handler.Handler, opts ...Option) *Runtime {
	_inst := &Runtime{Handler: hdl}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.lambdaPayloadType == "" {
		_inst.lambdaPayloadType = "api-gateway-v2"
	}

	_inst.routes = make(map[string]handler.Operation)
	_inst.paths = make(map[string]bool)
	for _, op := range hdl.Operations() {
		_inst.routes[op.Method+" "+op.Path] = op
		_inst.paths[op.Path] = true
	}
	return _inst
}

// process is the single path every inbound request takes: authenticate,
// route, bind arguments, invoke, shape the response.
func (r *Runtime) process(ctx context.Context, req models.Request) models.Response {
	logger := r.logger.With(slog.String("requestId", uuid.NewString()))
	logger.Debug("processing request...", slog.String("method", req.Method), slog.String("path", req.Path))

	if err := r.bearerKey.ValidateRequest(req.Headers["authorization"]); err != nil {
		logger.Warn("rejecting unauthenticated request", slog.Any("error", err))
		return respond(http.StatusUnauthorized, envelope.Error(envelope.KindAuthentication, err.Error()))
	}

	op, found := r.routes[req.Method+" "+req.Path]
	if !found {
		if r.paths[req.Path] {
			logger.Debug("rejecting request...", "reason", "method not allowed", slog.String("method", req.Method))
			return respond(http.StatusMethodNotAllowed,
				envelope.Error(envelope.KindValidation, fmt.Sprintf("method %s not allowed for %s", req.Method, req.Path)))
		}
		logger.Debug("rejecting request...", "reason", "unknown path")
		return respond(http.StatusNotFound, envelope.Error(envelope.KindValidation, "unknown operation path: "+req.Path))
	}

	args, err := buildArgs(op, req)
	if err != nil {
		logger.Warn("rejecting malformed request", slog.Any("error", err))
		return respond(http.StatusBadRequest, envelope.Failure(err))
	}

	logger.Debug("invoking operation...", slog.String("operation", op.Name))
	result := r.Invoke(ctx, op.Name, args)
	return respond(statusFor(result), result)
}

// buildArgs maps the transport request onto the flat argument set: query
// parameters for GET operations (coerced per the declared input types), the
// JSON body for POST operations.
func buildArgs(op handler.Operation, req models.Request) (handler.Args, error) {
	if op.Method != http.MethodGet {
		if strings.TrimSpace(req.Body) == "" {
			return handler.Args{}, nil
		}
		var args handler.Args
		if err := json.Unmarshal([]byte(req.Body), &args); err != nil {
			return nil, &emeritus.ValidationError{Message: "malformed JSON body: " + err.Error()}
		}
		return args, nil
	}

	args := handler.Args{}
	for _, input := range op.Inputs {
		raw, found := req.Query[input.Name]
		if !found || raw == "" {
			continue
		}
		switch input.Type {
		case handler.TypeInteger:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, &emeritus.ValidationError{Message: input.Name + ": must be an integer"}
			}
			args[input.Name] = n
		case handler.TypeBoolean:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, &emeritus.ValidationError{Message: input.Name + ": must be a boolean"}
			}
			args[input.Name] = b
		default:
			args[input.Name] = raw
		}
	}
	return args, nil
}

func respond(statusCode int, env envelope.Envelope) models.Response {
	body, _ := json.Marshal(env)
	return models.Response{
		Body:       string(body),
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func statusFor(env envelope.Envelope) int {
	if env.Status == envelope.StatusSuccess {
		return http.StatusOK
	}
	switch env.Error.Kind {
	case envelope.KindValidation:
		return http.StatusBadRequest
	case envelope.KindUpstream:
		return http.StatusBadGateway
	case envelope.KindNetwork:
		return http.StatusGatewayTimeout
	case envelope.KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ServeHTTP is the HTTP handler for the runtime.
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("method", req.Method), slog.Any("path", req.URL.Path))

	headers := make(map[string]string)
	for k, v := range req.Header {
		headers[strings.ToLower(k)] = v[0]
	}
	query := make(map[string]string)
	for k, v := range req.URL.Query() {
		query[k] = v[0]
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(respond(http.StatusInternalServerError,
			envelope.Error(envelope.KindInternal, "failed to read request body")), resp)
		return
	}

	result := r.process(req.Context(), models.Request{
		Method:  req.Method,
		Path:    req.URL.Path,
		Body:    string(body),
		Headers: headers,
		Query:   query,
	})
	helpers.RespondHTTP(result, resp)
}

// Lambda is the Lambda handler for API Gateway and Lambda URL payloads.
func (r *Runtime) Lambda(ctx context.Context, req helpers.Request) (response any, err error) {
	r.logger.Info("received API Gateway request")

	// Lower-case incoming headers for compatibility purposes
	headers := make(map[string]string)
	for k, v := range req.Headers {
		headers[strings.ToLower(k)] = v
	}

	result := r.process(ctx, models.Request{
		Method:  req.RequestContext.HTTP.Method,
		Path:    req.RawPath,
		Body:    req.Body,
		Headers: headers,
		Query:   req.QueryStringParameters,
	})

	switch r.lambdaPayloadType {
	case "api-gateway-v1":
		return events.APIGatewayProxyResponse{
			Body:       result.Body,
			StatusCode: result.StatusCode,
			Headers:    result.Headers,
		}, nil
	case "api-gateway-v2":
		return events.APIGatewayV2HTTPResponse{
			Body:       result.Body,
			StatusCode: result.StatusCode,
			Headers:    result.Headers,
		}, nil
	case "lambda-url":
		return events.LambdaFunctionURLResponse{
			Body:       result.Body,
			StatusCode: result.StatusCode,
			Headers:    result.Headers,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported lambda payload type: %s", r.lambdaPayloadType)
	}
}

// InvocationEvent is the payload shape of a direct Lambda invocation.
type InvocationEvent struct {
	Operation string       `json:"operation"`
	Arguments handler.Args `json:"arguments"`
}

// LambdaForEvent is the Lambda handler for direct invocations: the invoke
// permission is the authentication boundary, so no bearer check applies.
func (r *Runtime) LambdaForEvent(ctx context.Context, event InvocationEvent) (envelope.Envelope, error) {
	r.logger.Info("received direct invocation", slog.String("operation", event.Operation))
	return r.Invoke(ctx, event.Operation, event.Arguments), nil
}
