// Package asset manages store assets: requests for fixtures and equipment
// that are received into the store over one or more stock-in actions.
package asset

import (
	"time"

	"storeops/internal/core/id"
	"storeops/internal/core/types"
	"storeops/internal/domain"
)

// Status of a store asset.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// StoreAsset is an asset requested for a store.
type StoreAsset struct {
	ID                 id.Ref         `json:"id"`
	AssetCode          string         `json:"assetCode"`
	Name               string         `json:"name"`
	Category           string         `json:"category,omitempty"`
	Status             Status         `json:"status"`
	RequestedQuantity  types.Quantity `json:"requestedQuantity"`
	ReceivedQuantity   types.Quantity `json:"receivedQuantity"`
	Value              types.Money    `json:"value"`
	Tax                types.Money    `json:"tax"`
	Condition          string         `json:"condition,omitempty"`
	BillDocumentBase64 string         `json:"billDocumentBase64,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
}

// CanEdit reports whether the asset may be updated or deleted.
func (a *StoreAsset) CanEdit() bool {
	return a.Status == StatusPending
}

// Remaining is the quantity still to be received.
func (a *StoreAsset) Remaining() types.Quantity {
	return a.RequestedQuantity.Sub(a.ReceivedQuantity).Max(0)
}

// Input is the create/update payload.
type Input struct {
	AssetCode          string         `json:"assetCode,omitempty"`
	Name               string         `json:"name"`
	Category           string         `json:"category,omitempty"`
	RequestedQuantity  types.Quantity `json:"requestedQuantity"`
	Value              types.Money    `json:"value"`
	Tax                types.Money    `json:"tax"`
	Condition          string         `json:"condition,omitempty"`
	BillDocumentBase64 string         `json:"billDocumentBase64,omitempty"`
	Notes              string         `json:"notes,omitempty"`
}

// StockInRequest records a received quantity against an asset.
type StockInRequest struct {
	ReceivedQuantity types.Quantity `json:"receivedQuantity"`
}

// Page is one page of assets.
type Page struct {
	Items      []StoreAsset      `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}
