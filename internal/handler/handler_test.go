package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/emeritus-labs/emeritus-bridge/internal/emeritus"
	"github.com/emeritus-labs/emeritus-bridge/internal/envelope"
	"github.com/emeritus-labs/emeritus-bridge/internal/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, srv *httptest.Server) *handler.Handler {
	t.Helper()
	hdl, err := handler.New(
		handler.WithCredentials(emeritus.Credentials{
			Host:   srv.URL,
			UserID: "u-1",
			Secret: "s3cret",
		}),
		handler.WithContext(context.Background()))
	require.NoError(t, err)
	return hdl
}

func upstreamOK(data string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":0,"msg":"ok","data":` + data + `}`))
	}
}

func TestInvoke_ValidationHappensBeforeAnyNetworkCall(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		upstreamOK(`{}`)(w, r)
	}))
	defer srv.Close()
	hdl := newTestHandler(t, srv)

	testCases := []struct {
		Name      string
		Operation string
		Args      handler.Args
	}{
		{
			Name:      "create_user_without_identifier",
			Operation: "create_user",
			Args:      handler.Args{"source": "landing-page"},
		},
		{
			Name:      "create_user_with_invalid_email",
			Operation: "create_user",
			Args:      handler.Args{"email": "not-an-email"},
		},
		{
			Name:      "fetch_user_profile_without_user_id",
			Operation: "fetch_user_profile",
			Args:      handler.Args{},
		},
		{
			Name:      "update_user_email_with_invalid_email",
			Operation: "update_user_email",
			Args:      handler.Args{"user_id": "42", "email": "nope"},
		},
		{
			Name:      "assign_user_tag_without_tag_id",
			Operation: "assign_user_tag",
			Args:      handler.Args{"user_id": "42"},
		},
		{
			Name:      "list_orders_with_negative_limit",
			Operation: "list_orders",
			Args:      handler.Args{"limit": -1},
		},
		{
			Name:      "list_orders_with_oversized_limit",
			Operation: "list_orders",
			Args:      handler.Args{"limit": 1001},
		},
		{
			Name:      "import_leads_with_empty_batch",
			Operation: "import_leads",
			Args:      handler.Args{"leads_data": []any{}},
		},
		{
			Name:      "import_leads_with_unidentifiable_record",
			Operation: "import_leads",
			Args:      handler.Args{"leads_data": []any{map[string]any{"name": "anonymous"}}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			env := hdl.Invoke(context.Background(), tc.Operation, tc.Args)

			assert.Equal(t, envelope.StatusError, env.Status)
			if assert.NotNil(t, env.Error) {
				assert.Equal(t, envelope.KindValidation, env.Error.Kind)
			}
			assert.Zero(t, calls.Load(), "no upstream call may be made for invalid input")
		})
	}
}

func TestInvoke_UnknownOperation(t *testing.T) {
	srv := httptest.NewServer(upstreamOK(`{}`))
	defer srv.Close()
	hdl := newTestHandler(t, srv)

	env := hdl.Invoke(context.Background(), "delete_everything", handler.Args{})

	assert.Equal(t, envelope.StatusError, env.Status)
	if assert.NotNil(t, env.Error) {
		assert.Equal(t, envelope.KindValidation, env.Error.Kind)
		assert.Contains(t, env.Error.Message, "unknown operation")
	}
}

func TestInvoke_CreateUser(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v5/entity/user/create", r.URL.Path)
		upstreamOK(`{"user_id":"42"}`)(w, r)
	}))
	defer srv.Close()
	hdl := newTestHandler(t, srv)

	env := hdl.Invoke(context.Background(), "create_user", handler.Args{
		"mobile": "5551234",
		"source": "landing-page",
	})

	require.Equal(t, envelope.StatusSuccess, env.Status)
	data, ok := env.Data.(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"user_id":"42"}`, string(data))
	assert.Equal(t, "5551234", captured["mobile"])
	assert.Equal(t, "landing-page", captured["source"])
	assert.NotContains(t, captured, "email", "blank optional fields are omitted")
}

func TestInvoke_FetchUserProfile_QueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v5/entity/profile/fetch", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("user_id"))
		upstreamOK(`{"user_id":"42","name":"Ada"}`)(w, r)
	}))
	defer srv.Close()
	hdl := newTestHandler(t, srv)

	env := hdl.Invoke(context.Background(), "fetch_user_profile", handler.Args{"user_id": "42"})
	assert.Equal(t, envelope.StatusSuccess, env.Status)
}

func TestInvoke_ListOrders_PaginationPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "42", q.Get("user_id"))
		assert.Equal(t, "paid", q.Get("status"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "20", q.Get("offset"))
		upstreamOK(`[]`)(w, r)
	}))
	defer srv.Close()
	hdl := newTestHandler(t, srv)

	env := hdl.Invoke(context.Background(), "list_orders", handler.Args{
		"user_id": "42",
		"status":  "paid",
		"limit":   10,
		"offset":  20,
	})
	assert.Equal(t, envelope.StatusSuccess, env.Status)
}

func TestInvoke_UpstreamFailures(t *testing.T) {
	testCases := []struct {
		Name           string
		Handler        http.HandlerFunc
		ExpectedKind   string
		ExpectedStatus int
		ExpectedCode   int
	}{
		{
			Name: "http_404",
			Handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "not found", http.StatusNotFound)
			},
			ExpectedKind:   envelope.KindUpstream,
			ExpectedStatus: http.StatusNotFound,
		},
		{
			Name: "business_error_code",
			Handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code":2001,"msg":"order not found","data":null}`))
			},
			ExpectedKind:   envelope.KindUpstream,
			ExpectedStatus: http.StatusOK,
			ExpectedCode:   2001,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			srv := httptest.NewServer(tc.Handler)
			defer srv.Close()
			hdl := newTestHandler(t, srv)

			env := hdl.Invoke(context.Background(), "fetch_order", handler.Args{"order_id": "o-1"})

			assert.Equal(t, envelope.StatusError, env.Status)
			if assert.NotNil(t, env.Error) {
				assert.Equal(t, tc.ExpectedKind, env.Error.Kind)
				assert.Equal(t, tc.ExpectedStatus, env.Error.UpstreamStatus)
				assert.Equal(t, tc.ExpectedCode, env.Error.UpstreamCode)
			}
		})
	}
}

func TestInvoke_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(upstreamOK(`{}`))
	hdl := newTestHandler(t, srv)
	srv.Close() // connection refused from here on

	env := hdl.Invoke(context.Background(), "fetch_order", handler.Args{"order_id": "o-1"})

	assert.Equal(t, envelope.StatusError, env.Status)
	if assert.NotNil(t, env.Error) {
		assert.Equal(t, envelope.KindNetwork, env.Error.Kind)
	}
}

func TestInvoke_ImportLeads_PreservesRecordOrder(t *testing.T) {
	var captured struct {
		Leads  []map[string]any `json:"leads_data"`
		Source string           `json:"source"`
	}
	results := `{"imported":2,"failed":1,"results":[` +
		`{"status":"success"},{"status":"success"},{"status":"failed","reason":"duplicate"}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		upstreamOK(results)(w, r)
	}))
	defer srv.Close()
	hdl := newTestHandler(t, srv)

	env := hdl.Invoke(context.Background(), "import_leads", handler.Args{
		"leads_data": []any{
			map[string]any{"user_id": "u-1", "note": "first"},
			map[string]any{"area_code": "44", "mobile": "5550001", "note": "second"},
			map[string]any{"user_id": "u-3", "note": "third"},
		},
		"source": "campaign-7",
	})

	require.Equal(t, envelope.StatusSuccess, env.Status)
	require.Len(t, captured.Leads, 3)
	assert.Equal(t, "first", captured.Leads[0]["note"])
	assert.Equal(t, "second", captured.Leads[1]["note"])
	assert.Equal(t, "third", captured.Leads[2]["note"])
	assert.Equal(t, "campaign-7", captured.Source)

	// per-record upstream outcomes pass through untouched, in input order
	data, ok := env.Data.(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, results, string(data))
}

func TestOperations_RegistryIsCompleteAndSorted(t *testing.T) {
	srv := httptest.NewServer(upstreamOK(`{}`))
	defer srv.Close()
	hdl := newTestHandler(t, srv)

	ops := hdl.Operations()
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Name)
		assert.NotEmpty(t, op.Description, "operation %s has no description", op.Name)
		assert.NotEmpty(t, op.Path, "operation %s has no path", op.Name)
		assert.Contains(t, []string{http.MethodGet, http.MethodPost}, op.Method)
	}

	assert.True(t, sort.StringsAreSorted(names))
	assert.ElementsMatch(t, []string{
		"create_user",
		"fetch_user_profile",
		"update_user_owner",
		"update_user_pool",
		"update_user_email",
		"fetch_user_contact",
		"create_tag_group",
		"list_tag_groups",
		"update_tag_group",
		"activate_tag_group",
		"deactivate_tag_group",
		"assign_user_tag",
		"list_user_tags",
		"fetch_order",
		"list_orders",
		"list_order_financials",
		"import_leads",
	}, names)
}
