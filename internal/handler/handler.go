// Package handler implements the bridge operations: a table-driven registry
// mapping operation names onto Emeritus API paths, with per-operation input
// validation performed before any network call.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/emeritus-labs/emeritus-bridge/internal/config"
	"github.com/emeritus-labs/emeritus-bridge/internal/controllers/aws"
	"github.com/emeritus-labs/emeritus-bridge/internal/emeritus"
	"github.com/emeritus-labs/emeritus-bridge/internal/envelope"
	"github.com/emeritus-labs/emeritus-bridge/internal/helpers"
	"github.com/pkg/errors"
)

// Args carries the flat argument set of a single operation call, regardless
// of the surface it arrived on (REST body, query parameters, MCP tool call,
// or direct Lambda invocation).
type Args map[string]any

// Handler dispatches operation calls to the Emeritus API. It holds no
// per-call state: every invocation is an independent request/response cycle
// sharing only the client's connection pool.
type Handler struct {
	ctx           context.Context
	logger        *slog.Logger
	client        *emeritus.Client
	awsController *aws.Controller
	creds         emeritus.Credentials
	authMode      string
	ssmKey        string
	timeout       time.Duration
	auditBucket   string
	ops           map[string]Operation
}

// New creates a Handler. When the credential provider mode is 'ssm', the
// Emeritus credential pair is fetched from SSM Parameter Store before the
// client is constructed; malformed or missing credentials fail here, never at
// call time.
func New(options ...Option) (*Handler, error) {
	_inst := &Handler{}
	for _, opt := range options {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.ctx == nil {
		_inst.ctx = context.Background()
	}
	if _inst.authMode == "" {
		_inst.authMode = config.AuthModeStatic
	}

	if _inst.authMode == config.AuthModeSSM || _inst.auditBucket != "" {
		awsCtl, err := aws.NewController(
			aws.WithLogger(_inst.logger.With("component", "aws-controller")),
			aws.WithContext(_inst.ctx))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create AWS controller")
		}
		_inst.awsController = awsCtl
	}

	if _inst.authMode == config.AuthModeSSM {
		if err := _inst.retrieveCredentials(); err != nil {
			return nil, errors.Wrap(err, "failed to retrieve Emeritus credentials")
		}
	}

	client, err := emeritus.NewClient(_inst.creds,
		emeritus.WithLogger(_inst.logger.With("component", "emeritus-client")),
		emeritus.WithTimeout(_inst.timeout))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create the Emeritus client")
	}
	_inst.client = client
	_inst.ops = registry()

	return _inst, nil
}

// retrieveCredentials loads the credential pair from SSM. The parameter value
// is a JSON document: {"user_id": "...", "api_secret": "..."}.
func (h *Handler) retrieveCredentials() error {
	if h.ssmKey == "" {
		return errors.New("credential provider mode is 'ssm' but no SSM key is configured")
	}
	secret, err := h.awsController.GetSecret(h.ssmKey, true)
	if err != nil {
		return err
	}
	var pair struct {
		UserID    string `json:"user_id"`
		APISecret string `json:"api_secret"`
	}
	if err := json.Unmarshal([]byte(*secret), &pair); err != nil {
		return errors.Wrap(err, "failed to decode the SSM credential pair")
	}
	h.creds.UserID = pair.UserID
	h.creds.Secret = pair.APISecret
	return nil
}

// Operations returns the operation registry in stable (name) order.
func (h *Handler) Operations() []Operation {
	ops := make([]Operation, 0, len(h.ops))
	for _, op := range h.ops {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// Invoke executes a single named operation: validate, one upstream round
// trip, normalise. The returned envelope is the only shape handed to callers;
// errors never propagate past this point.
func (h *Handler) Invoke(ctx context.Context, name string, args Args) envelope.Envelope {
	op, ok := h.ops[name]
	if !ok {
		return envelope.Failure(&emeritus.ValidationError{Message: fmt.Sprintf("unknown operation: %s", name)})
	}
	logger := h.logger.With(slog.String("operation", name))

	payload, err := op.bind(args)
	if err != nil {
		logger.Warn("rejecting invalid arguments", slog.Any("error", err))
		return envelope.Failure(err)
	}

	var data json.RawMessage
	switch op.Method {
	case http.MethodGet:
		data, err = h.client.Get(ctx, op.Path, payload.query)
	case http.MethodPost:
		data, err = h.client.Post(ctx, op.Path, payload.body)
	default:
		return envelope.Failure(errors.Errorf("unsupported method %s for operation %s", op.Method, name))
	}
	if err != nil {
		logger.Warn("upstream call failed", slog.Any("error", err))
		return envelope.Failure(err)
	}

	h.audit(op, payload)
	logger.Debug("operation complete")
	return envelope.Success(data)
}

// audit uploads the accepted payload of auditable operations to S3. Upload
// failures are logged, never surfaced: the upstream call already succeeded.
func (h *Handler) audit(op Operation, payload *payload) {
	if !op.Audit || h.awsController == nil || h.auditBucket == "" {
		return
	}
	encoded, err := json.Marshal(payload.body)
	if err != nil {
		return
	}
	if err := h.awsController.PutAuditRecord(op.Name, h.auditBucket, encoded); err != nil {
		h.logger.Warn("failed to upload audit record", slog.Any("error", err))
	}
}

// payload is the bound, validated outcome of an operation's arguments: query
// parameters for GET operations, a JSON body for POST operations.
type payload struct {
	query url.Values
	body  any
}

// decodeArgs maps the flat argument set onto a typed request model. Shape
// mismatches (wrong types, unparseable values) are validation errors.
func decodeArgs(args Args, v any) error {
	encoded, err := json.Marshal(args)
	if err != nil {
		return &emeritus.ValidationError{Message: "malformed arguments: " + err.Error()}
	}
	if err := json.Unmarshal(encoded, v); err != nil {
		return &emeritus.ValidationError{Message: "malformed arguments: " + err.Error()}
	}
	return nil
}

type bodyRequest interface {
	Validate() error
}

type queryRequest interface {
	Validate() error
	query() url.Values
}

// bindBody decodes and validates the arguments of a POST operation.
func bindBody[T bodyRequest](args Args) (*payload, error) {
	var req T
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, &emeritus.ValidationError{Message: err.Error()}
	}
	return &payload{body: req}, nil
}

// bindQuery decodes and validates the arguments of a GET operation.
func bindQuery[T queryRequest](args Args) (*payload, error) {
	var req T
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, &emeritus.ValidationError{Message: err.Error()}
	}
	return &payload{query: req.query()}, nil
}
