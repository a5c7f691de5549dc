package oraclemock

import (
	"context"

	"po-financing-backend/internal/domain/order"
)

// Client is a function-backed mock for order.Oracle.
type Client struct {
	FetchFn func(ctx context.Context, id int64) (*order.PurchaseOrder, error)
}

func (m *Client) FetchPurchaseOrder(ctx context.Context, id int64) (*order.PurchaseOrder, error) {
	if m.FetchFn != nil {
		return m.FetchFn(ctx, id)
	}
	return nil, order.ErrNotFound
}
