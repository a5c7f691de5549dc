package oracle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"po-financing-backend/internal/domain/order"
)

// MemoryClient is an in-process oracle for standalone and test runs.
type MemoryClient struct {
	mu     sync.RWMutex
	orders map[int64]order.PurchaseOrder
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{orders: make(map[int64]order.PurchaseOrder)}
}

func (m *MemoryClient) Seed(pos ...order.PurchaseOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, po := range pos {
		m.orders[po.ID] = po
	}
}

// SeedDemo loads a small purchase-order book so the service is usable
// without a ledger gateway.
func (m *MemoryClient) SeedDemo(now time.Time) {
	day := int64(86400)
	m.Seed(
		order.PurchaseOrder{
			ID: 1, Buyer: "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
			Vendor: "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
			Amount: 12_500, DeliveryDate: now.Unix() + 21*day,
			GoodsCategory: order.CategoryElectronics, Status: "Open",
		},
		order.PurchaseOrder{
			ID: 2, Buyer: "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
			Vendor: "0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc",
			Amount: 4_800, DeliveryDate: now.Unix() + 45*day,
			GoodsCategory: order.CategoryTextiles, Status: "Open",
		},
		order.PurchaseOrder{
			ID: 3, Buyer: "0x90f79bf6eb2c4f870365e785982e1f101e93b906",
			Vendor: "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
			Amount: 30_000, DeliveryDate: now.Unix() + 7*day,
			GoodsCategory: order.CategoryConstruction, Status: "Open",
		},
	)
}

func (m *MemoryClient) FetchPurchaseOrder(ctx context.Context, id int64) (*order.PurchaseOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", order.ErrNotFound, err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	po, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", order.ErrNotFound, id)
	}
	return &po, nil
}
