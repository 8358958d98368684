// Package helpers provides small shared utilities: pointer helpers, string
// helpers, a noop logger, and the HTTP response writer.
package helpers

// Ptr returns a pointer to the value passed as an argument. If the value is nil, it returns a nil pointer.
func Ptr[T any](v T) *T {
	if any(v) == nil {
		return nil
	}
	return &v
}
