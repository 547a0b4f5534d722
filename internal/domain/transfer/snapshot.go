package transfer

import (
	"time"

	"storeops/internal/core/id"
	"storeops/internal/core/types"
)

// Snapshot is a point-in-time copy of available stock at the source store.
// It only catches obvious overdrafts within one console session; concurrent
// transfers from other sessions are caught by the backend.
type Snapshot struct {
	StoreID  id.Ref
	LoadedAt time.Time
	levels   map[id.Ref]StockLevel
}

// NewSnapshot indexes stock levels by product.
func NewSnapshot(storeID id.Ref, levels []StockLevel, loadedAt time.Time) *Snapshot {
	m := make(map[id.Ref]StockLevel, len(levels))
	for _, l := range levels {
		m[l.ProductID] = l
	}
	return &Snapshot{StoreID: storeID, LoadedAt: loadedAt, levels: m}
}

// Available returns the cached available quantity; unknown products have none.
func (s *Snapshot) Available(productID id.Ref) types.Quantity {
	if s == nil {
		return 0
	}
	return s.levels[productID].Available
}

// Levels returns the cached levels.
func (s *Snapshot) Levels() []StockLevel {
	if s == nil {
		return nil
	}
	out := make([]StockLevel, 0, len(s.levels))
	for _, l := range s.levels {
		out = append(out, l)
	}
	return out
}
