// Package transfer provides cross-store stock movements: classification,
// creation against a cached available-stock snapshot, and history.
package transfer

import (
	"storeops/internal/domain/store"
)

// MovementType is the commercial nature of a stock movement between stores.
type MovementType string

const (
	MovementStockTransfer MovementType = "stock_transfer"
	MovementSale          MovementType = "sale"
)

// Classify decides whether goods moving from a store of kind source to a store
// of kind dest are an internal transfer or an inter-entity sale.
// Only own -> franchise is a sale; every other pairing is a transfer.
//
// The result is advisory for labeling. The backend derives its own
// classification when the transfer is written.
func Classify(source, dest store.Kind) MovementType {
	if source == store.KindOwn && dest == store.KindFranchise {
		return MovementSale
	}
	return MovementStockTransfer
}
