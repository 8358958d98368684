package helpers

import (
	"net/http"

	"github.com/emeritus-labs/emeritus-bridge/internal/models"
)

// RespondHTTP writes a processed response to the given http.ResponseWriter.
// The body is expected to already carry the normalised envelope JSON.
func RespondHTTP(response models.Response, rw http.ResponseWriter) {
	for k, v := range response.Headers {
		rw.Header().Set(k, v)
	}
	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	rw.WriteHeader(statusCode)
	_, _ = rw.Write([]byte(response.Body))
}
