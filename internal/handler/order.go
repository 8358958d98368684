package handler

import (
	"net/http"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// pagination carries the shared limit/offset parameters of the list
// operations. Zero values are omitted from the upstream query.
type pagination struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

func (p pagination) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Limit, validation.Min(0), validation.Max(1000)),
		validation.Field(&p.Offset, validation.Min(0)),
	)
}

func (p pagination) query() url.Values {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	return q
}

// orderRef identifies a single order.
type orderRef struct {
	OrderID string `json:"order_id"`
}

func (r orderRef) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OrderID, validation.Required),
	)
}

func (r orderRef) query() url.Values {
	return url.Values{"order_id": []string{r.OrderID}}
}

type listOrdersRequest struct {
	pagination
	UserID string `json:"user_id,omitempty"`
	Status string `json:"status,omitempty"`
}

func (r listOrdersRequest) Validate() error {
	return r.pagination.Validate()
}

func (r listOrdersRequest) query() url.Values {
	q := r.pagination.query()
	if r.UserID != "" {
		q.Set("user_id", r.UserID)
	}
	if r.Status != "" {
		q.Set("status", r.Status)
	}
	return q
}

type listOrderFinancialsRequest struct {
	pagination
	OrderID string `json:"order_id,omitempty"`
}

func (r listOrderFinancialsRequest) Validate() error {
	return r.pagination.Validate()
}

func (r listOrderFinancialsRequest) query() url.Values {
	q := r.pagination.query()
	if r.OrderID != "" {
		q.Set("order_id", r.OrderID)
	}
	return q
}

func orderOperations() []Operation {
	return []Operation{
		{
			Name:        "fetch_order",
			Description: "Fetch order details",
			Method:      http.MethodGet,
			Path:        "/api/v5/entity/order/fetch",
			Inputs: []Input{
				{Name: "order_id", Type: TypeString, Description: "Order ID to fetch", Required: true},
			},
			bind: bindQuery[orderRef],
		},
		{
			Name:        "list_orders",
			Description: "List orders with optional filtering",
			Method:      http.MethodGet,
			Path:        "/api/v5/entity/order/list",
			Inputs: []Input{
				{Name: "user_id", Type: TypeString, Description: "Filter orders by user ID"},
				{Name: "status", Type: TypeString, Description: "Filter orders by status"},
				{Name: "limit", Type: TypeInteger, Description: "Maximum number of orders to return (1-1000)"},
				{Name: "offset", Type: TypeInteger, Description: "Number of orders to skip"},
			},
			bind: bindQuery[listOrdersRequest],
		},
		{
			Name:        "list_order_financials",
			Description: "List order financial records",
			Method:      http.MethodGet,
			Path:        "/api/v5/entity/order/financial/list",
			Inputs: []Input{
				{Name: "order_id", Type: TypeString, Description: "Filter financial records by order ID"},
				{Name: "limit", Type: TypeInteger, Description: "Maximum number of records to return (1-1000)"},
				{Name: "offset", Type: TypeInteger, Description: "Number of records to skip"},
			},
			bind: bindQuery[listOrderFinancialsRequest],
		},
	}
}
