package ledger

import "storeops/internal/core/types"

// Violation is a summary row whose closing stock does not equal
// opening + inward - outward.
type Violation struct {
	Key      string         `json:"key"`
	Expected types.Quantity `json:"expected"`
	Closing  types.Quantity `json:"closing"`
}

// CheckIdentity reports whether r satisfies the ledger identity.
func CheckIdentity(r SummaryRow) (Violation, bool) {
	expected := r.Opening.Add(r.Inward).Sub(r.Outward)
	if expected == r.Closing {
		return Violation{}, true
	}
	return Violation{Key: r.Key(), Expected: expected, Closing: r.Closing}, false
}

// CheckRows returns every violation in rows. Rows are never corrected.
func CheckRows(rows []SummaryRow) []Violation {
	var out []Violation
	for _, r := range rows {
		if v, ok := CheckIdentity(r); !ok {
			out = append(out, v)
		}
	}
	return out
}
