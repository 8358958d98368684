package emeritus_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/emeritus-labs/emeritus-bridge/internal/emeritus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = emeritus.Credentials{UserID: "u-1", Secret: "s3cret"}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...emeritus.Option) *emeritus.Client {
	t.Helper()
	creds := testCreds
	creds.Host = srv.URL
	client, err := emeritus.NewClient(creds, opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient_RejectsMissingCredentials(t *testing.T) {
	testCases := []struct {
		Name  string
		Creds emeritus.Credentials
	}{
		{
			Name:  "missing_host",
			Creds: emeritus.Credentials{UserID: "u-1", Secret: "s3cret"},
		},
		{
			Name:  "missing_user_id",
			Creds: emeritus.Credentials{Host: "https://crm.example.com", Secret: "s3cret"},
		},
		{
			Name:  "missing_secret",
			Creds: emeritus.Credentials{Host: "https://crm.example.com", UserID: "u-1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := emeritus.NewClient(tc.Creds)
			assert.Error(t, err)
		})
	}
}

func TestClient_SignsEveryRequest(t *testing.T) {
	now := time.Unix(1700000000, 0)
	var captured http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		_, _ = w.Write([]byte(`{"code":0,"msg":"ok","data":{}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, emeritus.WithClock(func() time.Time { return now }))
	_, err := client.Get(context.Background(), "/api/v5/entity/profile/fetch", url.Values{"user_id": []string{"42"}})
	require.NoError(t, err)

	expected := emeritus.Sign(testCreds, now)
	assert.Equal(t, expected[emeritus.HeaderUserID], captured.Get(emeritus.HeaderUserID))
	assert.Equal(t, expected[emeritus.HeaderTimestamp], captured.Get(emeritus.HeaderTimestamp))
	assert.Equal(t, expected[emeritus.HeaderSignature], captured.Get(emeritus.HeaderSignature))
	assert.Equal(t, "application/json", captured.Get("Content-Type"))
}

func TestClient_Get_PassesQueryThrough(t *testing.T) {
	var captured url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		_, _ = w.Write([]byte(`{"code":0,"msg":"ok","data":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.Get(context.Background(), "/api/v5/entity/order/list",
		url.Values{"user_id": []string{"42"}, "limit": []string{"10"}})
	require.NoError(t, err)

	assert.Equal(t, "42", captured.Get("user_id"))
	assert.Equal(t, "10", captured.Get("limit"))
}

func TestClient_UnwrapsUpstreamEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":0,"msg":"ok","data":{"user_id":"42"}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	data, err := client.Post(context.Background(), "/api/v5/entity/user/create", map[string]string{"mobile": "5551234"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":"42"}`, string(data))
}

func TestClient_ErrorClassification(t *testing.T) {
	testCases := []struct {
		Name           string
		Status         int
		Body           string
		ExpectUpstream bool
		ExpectedCode   int
	}{
		{
			Name:           "http_error_status",
			Status:         http.StatusNotFound,
			Body:           "not found",
			ExpectUpstream: true,
		},
		{
			Name:           "business_error_code",
			Status:         http.StatusOK,
			Body:           `{"code":1002,"msg":"user not found","data":null}`,
			ExpectUpstream: true,
			ExpectedCode:   1002,
		},
		{
			Name:           "malformed_envelope",
			Status:         http.StatusOK,
			Body:           `<html>gateway error</html>`,
			ExpectUpstream: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.Status)
				_, _ = w.Write([]byte(tc.Body))
			}))
			defer srv.Close()

			client := newTestClient(t, srv)
			_, err := client.Get(context.Background(), "/api/v5/entity/order/fetch", nil)
			require.Error(t, err)

			var upstreamErr *emeritus.UpstreamError
			assert.ErrorAs(t, err, &upstreamErr)
			assert.Equal(t, tc.Status, upstreamErr.Status)
			if tc.ExpectedCode != 0 {
				assert.Equal(t, tc.ExpectedCode, upstreamErr.Code)
			}
		})
	}
}

func TestClient_UnreachableHostIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := newTestClient(t, srv)
	_, err := client.Get(context.Background(), "/api/v5/entity/profile/fetch", nil)
	require.Error(t, err)

	var netErr *emeritus.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestClient_TimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"code":0,"msg":"ok","data":{}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, emeritus.WithTimeout(20*time.Millisecond))
	_, err := client.Get(context.Background(), "/api/v5/entity/profile/fetch", nil)
	require.Error(t, err)

	var netErr *emeritus.NetworkError
	assert.ErrorAs(t, err, &netErr)
}
