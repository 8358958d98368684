package handler

// Input field types, mirroring JSON Schema primitives. Used for tool schema
// generation and query-parameter coercion.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
)

// Input describes one declared argument of an operation.
type Input struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Operation maps one named bridge operation onto its upstream path: the
// declared inputs, the validating binder, and the HTTP shape of the call.
// Handlers never interpret business semantics beyond shape validation.
type Operation struct {
	Name        string
	Description string
	Method      string
	Path        string
	Inputs      []Input
	// Audit marks operations whose accepted payloads are uploaded to the
	// audit bucket when one is configured.
	Audit bool

	bind func(Args) (*payload, error)
}

func registry() map[string]Operation {
	ops := make(map[string]Operation)
	for _, group := range [][]Operation{
		userOperations(),
		tagOperations(),
		orderOperations(),
		leadsOperations(),
	} {
		for _, op := range group {
			ops[op.Name] = op
		}
	}
	return ops
}
