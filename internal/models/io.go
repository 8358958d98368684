// Package models provides the transport-agnostic request and response shapes
// shared by the HTTP and Lambda surfaces.
package models

// Request represents an incoming client request, normalised away from its
// transport: headers are lower-cased, query parameters flattened.
type Request struct {
	Method  string
	Path    string
	Body    string
	Headers map[string]string
	Query   map[string]string
}

// Response defines the structure for an outbound response containing a body,
// headers, and a status code. The body carries the envelope JSON.
type Response struct {
	Body       string
	Headers    map[string]string
	StatusCode int
}
