package helpers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emeritus-labs/emeritus-bridge/internal/helpers"
	"github.com/emeritus-labs/emeritus-bridge/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRespondHTTP(t *testing.T) {
	testCases := []struct {
		Name     string
		Response models.Response
		Expected struct {
			StatusCode int
			Body       string
			Header     string
		}
	}{
		{
			Name: "with_populated_response",
			Response: models.Response{
				StatusCode: http.StatusOK,
				Body:       `{"status":"success"}`,
				Headers:    map[string]string{"Content-Type": "application/json"},
			},
			Expected: struct {
				StatusCode int
				Body       string
				Header     string
			}{
				StatusCode: http.StatusOK,
				Body:       `{"status":"success"}`,
				Header:     "application/json",
			},
		},
		{
			Name: "with_error_status",
			Response: models.Response{
				StatusCode: http.StatusBadGateway,
				Body:       `{"status":"error"}`,
				Headers:    map[string]string{"Content-Type": "application/json"},
			},
			Expected: struct {
				StatusCode int
				Body       string
				Header     string
			}{
				StatusCode: http.StatusBadGateway,
				Body:       `{"status":"error"}`,
				Header:     "application/json",
			},
		},
		{
			Name:     "with_empty_response",
			Response: models.Response{},
			Expected: struct {
				StatusCode int
				Body       string
				Header     string
			}{
				StatusCode: http.StatusOK,
				Body:       "",
				Header:     "",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rw := httptest.NewRecorder()

			helpers.RespondHTTP(tc.Response, rw)

			assert.Equal(t, tc.Expected.StatusCode, rw.Code)
			assert.Equal(t, tc.Expected.Header, rw.Header().Get("Content-Type"))
			assert.Equal(t, tc.Expected.Body, rw.Body.String())
		})
	}
}
