// Package indent reads replenishment indents from the backend and maps their
// lifecycle status onto what the console may show and do.
package indent

import (
	"time"

	"storeops/internal/core/id"
	"storeops/internal/core/types"
	"storeops/internal/domain"
)

// Status is the backend-owned lifecycle state of an indent.
type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	// StatusStockedIn is reported by some backend versions instead of completed.
	StatusStockedIn Status = "stocked_in"
)

// IsTerminal reports whether no further transition is expected.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusStockedIn:
		return true
	}
	return false
}

// Item is one ordered line of an indent. Immutable.
type Item struct {
	ProductID       id.Ref         `json:"productId"`
	ProductName     string         `json:"productName,omitempty"`
	SKU             string         `json:"sku,omitempty"`
	OrderedQuantity types.Quantity `json:"orderedQuantity"`
	Unit            string         `json:"unit"`
}

// Indent is a replenishment request raised against a store.
type Indent struct {
	ID        id.Ref    `json:"id"`
	Code      string    `json:"code"`
	StoreID   id.Ref    `json:"storeId,omitempty"`
	Status    Status    `json:"status"`
	Items     []Item    `json:"items"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FindItem returns the line for productID.
func (i *Indent) FindItem(productID id.Ref) (Item, bool) {
	for _, it := range i.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return Item{}, false
}

// ListFilter narrows an indent listing.
type ListFilter struct {
	Status Status
	domain.PageRequest
}

// ListPage is one page of indents as returned by the backend.
type ListPage struct {
	Items      []Indent          `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}
