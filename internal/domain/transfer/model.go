package transfer

import (
	"time"

	"storeops/internal/core/id"
	"storeops/internal/core/types"
	"storeops/internal/domain"
)

// ItemRequest is one line of a transfer to create.
type ItemRequest struct {
	ProductID id.Ref         `json:"productId"`
	Quantity  types.Quantity `json:"quantity"`
}

// CreateRequest is the wire payload for POST stock-transfers.
type CreateRequest struct {
	FromStoreID id.Ref        `json:"fromStoreId"`
	ToStoreID   id.Ref        `json:"toStoreId"`
	Items       []ItemRequest `json:"items"`
	Notes       string        `json:"notes"`
}

// Item is a transfer line as recorded by the backend.
type Item struct {
	ProductID   id.Ref         `json:"productId"`
	ProductName string         `json:"productName,omitempty"`
	SKU         string         `json:"sku,omitempty"`
	Unit        string         `json:"unit,omitempty"`
	Quantity    types.Quantity `json:"quantity"`
	UnitPrice   types.Money    `json:"unitPrice"`
	TotalPrice  types.Money    `json:"totalPrice"`
}

// Transfer is an immutable, server-recorded stock movement between stores.
type Transfer struct {
	ID            id.Ref       `json:"id"`
	TransferCode  string       `json:"transferCode"`
	FromStoreID   id.Ref       `json:"fromStoreId"`
	FromStoreName string       `json:"fromStoreName,omitempty"`
	ToStoreID     id.Ref       `json:"toStoreId"`
	ToStoreName   string       `json:"toStoreName,omitempty"`
	Items         []Item       `json:"items,omitempty"`
	Status        string       `json:"status"`
	Notes         string       `json:"notes,omitempty"`
	MovementType  MovementType `json:"movementType,omitempty"`
	TotalValue    types.Money  `json:"totalValue"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// Classification pairs the locally computed movement type with the one the
// backend echoed back, if any.
type Classification struct {
	Advisory  MovementType `json:"advisory"`
	Confirmed MovementType `json:"confirmed,omitempty"`
	Mismatch  bool         `json:"mismatch"`
}

// Effective returns the backend's classification when present, else the advisory one.
func (c Classification) Effective() MovementType {
	if c.Confirmed != "" {
		return c.Confirmed
	}
	return c.Advisory
}

// CreateResult is returned after a transfer is accepted by the backend.
type CreateResult struct {
	Transfer       Transfer       `json:"transfer"`
	Classification Classification `json:"classification"`
	// SnapshotStale is set when the post-submission snapshot refresh failed.
	SnapshotStale bool `json:"snapshotStale"`
}

// HistoryPage is one page of transfer history.
type HistoryPage struct {
	Items      []Transfer        `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

// Invoice is a downloaded transfer invoice document.
type Invoice struct {
	Filename    string
	ContentType string
	Body        []byte
}

// StockLevel is the available quantity of one product at a store.
type StockLevel struct {
	ProductID   id.Ref         `json:"productId"`
	ProductName string         `json:"productName,omitempty"`
	SKU         string         `json:"sku,omitempty"`
	Unit        string         `json:"unit,omitempty"`
	Available   types.Quantity `json:"availableQuantity"`
}
