// Package quantity enforces the numeric invariants of stock-in capture:
// received quantities against ordered quantities, damaged quantities against
// their bound, and size/type limits of attachments sent as base64 payloads.
//
// Everything here is pure and runs before any backend call.
package quantity

import (
	"storeops/internal/core/apperror"
	"storeops/internal/core/types"
)

// Violated bounds reported in INVALID_QUANTITY errors.
const (
	BoundNotPositive    = "must be positive"
	BoundExceedsOrdered = "exceeds ordered"
)

// ValidateReceivedQuantity succeeds iff 0 < received <= ordered.
func ValidateReceivedQuantity(ordered, received types.Quantity) error {
	if !received.IsPositive() {
		return apperror.NewInvalidQuantity(BoundNotPositive).
			WithDetail("received", received.String())
	}
	if received > ordered {
		return apperror.NewInvalidQuantity(BoundExceedsOrdered).
			WithDetail("ordered", ordered.String()).
			WithDetail("received", received.String())
	}
	return nil
}

// ClampDamagedQuantity returns min(max(0, entered), bound).
func ClampDamagedQuantity(entered, bound types.Quantity) types.Quantity {
	return Clamp(entered, bound).Value
}

// Clamped is the outcome of clamping a user-entered damaged quantity.
// Adjusted is set when Value differs from Entered, so the console can show
// an "adjusted" notice instead of silently replacing the input.
type Clamped struct {
	Entered  types.Quantity `json:"entered"`
	Value    types.Quantity `json:"value"`
	Bound    types.Quantity `json:"bound"`
	Adjusted bool           `json:"adjusted"`
}

// Clamp bounds entered to [0, bound]. A negative bound is treated as 0.
func Clamp(entered, bound types.Quantity) Clamped {
	bound = bound.Max(0)
	v := entered.Max(0).Min(bound)
	return Clamped{
		Entered:  entered,
		Value:    v,
		Bound:    bound,
		Adjusted: v != entered,
	}
}
