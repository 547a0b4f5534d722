package ledger

import (
	"sort"

	"storeops/internal/core/id"
	"storeops/internal/core/types"
)

// VisibleTotals sums the displayed rows only. It differs from the backend's
// window totals whenever a page or filter hides rows.
func VisibleTotals(rows []SummaryRow) Totals {
	var t Totals
	for _, r := range rows {
		t.add(r)
	}
	return t
}

// BalancedRecord is an audit record with the product's balance after it.
type BalancedRecord struct {
	AuditRecord
	Balance types.Quantity `json:"balance"`
	// Seeded is false when no opening stock was known for the product and the
	// balance starts from zero.
	Seeded bool `json:"seeded"`
}

// RunningBalances computes a per-product running balance over records in
// chronological order, starting from openings. The result keeps the input order.
func RunningBalances(records []AuditRecord, openings map[id.Ref]types.Quantity) []BalancedRecord {
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return records[order[a]].RecordedAt.Before(records[order[b]].RecordedAt)
	})

	type running struct {
		balance types.Quantity
		seeded  bool
	}
	state := make(map[id.Ref]running, len(openings))
	out := make([]BalancedRecord, len(records))
	for _, i := range order {
		rec := records[i]
		st, ok := state[rec.ProductID]
		if !ok {
			st.balance, st.seeded = openings[rec.ProductID]
		}
		st.balance = st.balance.Add(rec.signed())
		state[rec.ProductID] = st
		out[i] = BalancedRecord{AuditRecord: rec, Balance: st.balance, Seeded: st.seeded}
	}
	return out
}

// openingsFor returns the rollup openings when page starts the window: the
// first page of a chronological listing, or a page holding the whole window.
// Any other page would need the movements of earlier pages, so its balances
// are left unseeded.
func openingsFor(page *AuditPage, r *Rollup) map[id.Ref]types.Quantity {
	if page == nil || r == nil {
		return nil
	}
	p := page.Pagination
	if p.Page > 1 {
		return nil
	}
	whole := p.TotalPages == 1 || (p.Total > 0 && p.Total <= len(page.Records))
	if !whole && !chronological(page.Records) {
		return nil
	}
	return r.openings()
}

func chronological(records []AuditRecord) bool {
	for i := 1; i < len(records); i++ {
		if records[i].RecordedAt.Before(records[i-1].RecordedAt) {
			return false
		}
	}
	return true
}
