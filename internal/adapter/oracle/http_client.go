package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"po-financing-backend/internal/domain/order"
)

// HTTPClient reads purchase orders from the ledger gateway. One lookup per
// call, no caching, no retries; any failure (unknown id, timeout, bad
// payload) surfaces as order.ErrNotFound per the oracle contract.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) FetchPurchaseOrder(ctx context.Context, id int64) (*order.PurchaseOrder, error) {
	url := fmt.Sprintf("%s/purchase-orders/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", order.ErrNotFound, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ledger unreachable: %v", order.ErrNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: id %d", order.ErrNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ledger returned %d", order.ErrNotFound, resp.StatusCode)
	}

	var po order.PurchaseOrder
	if err := json.NewDecoder(resp.Body).Decode(&po); err != nil {
		return nil, fmt.Errorf("%w: bad ledger payload: %v", order.ErrNotFound, err)
	}
	if po.Amount <= 0 {
		return nil, fmt.Errorf("%w: ledger payload has non-positive amount", order.ErrNotFound)
	}
	return &po, nil
}
