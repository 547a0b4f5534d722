package dto

import (
	"storeops/internal/core/id"
	"storeops/internal/core/types"
	"storeops/internal/domain/transfer"
)

// ClassifyQuery asks for the movement type towards a destination store.
type ClassifyQuery struct {
	ToStoreID id.Ref `form:"toStoreId" binding:"required"`
}

// CreateTransferRequest is the console transfer form.
// The source store is always the session store.
type CreateTransferRequest struct {
	ToStoreID id.Ref                `json:"toStoreId" binding:"required"`
	Items     []TransferItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes     string                `json:"notes,omitempty"`
}

// TransferItemRequest is one product line of a transfer.
type TransferItemRequest struct {
	ProductID id.Ref         `json:"productId" binding:"required"`
	Quantity  types.Quantity `json:"quantity"`
}

// ToDomain converts the request to a transfer request.
func (r CreateTransferRequest) ToDomain() transfer.CreateRequest {
	items := make([]transfer.ItemRequest, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, transfer.ItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return transfer.CreateRequest{
		ToStoreID: r.ToStoreID,
		Items:     items,
		Notes:     r.Notes,
	}
}

// StockLevelsResponse is the available stock snapshot of the session store.
type StockLevelsResponse struct {
	StoreID  id.Ref                `json:"storeId"`
	LoadedAt string                `json:"loadedAt"`
	Levels   []transfer.StockLevel `json:"data"`
}
