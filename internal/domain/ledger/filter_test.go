package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeops/internal/core/id"
	"storeops/internal/core/types"
	"storeops/internal/domain"
)

var auditFixture = []AuditRecord{
	{ID: "a1", ProductID: "11", ProductName: "Basmati Rice", SKU: "RICE-5", TransactionType: TransactionInward,
		Quantity: types.NewQuantity(25), RecordedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		ReferenceType: "indent", ReferenceID: "IND-0042"},
	{ID: "a2", ProductID: "11", ProductName: "Basmati Rice", SKU: "RICE-5", TransactionType: TransactionOutward,
		Quantity: types.NewQuantityFromFloat64(12.5), RecordedAt: time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC),
		ReferenceType: "sale", ReferenceID: "INV-981"},
	{ID: "a3", ProductID: "12", ProductName: "Sunflower Oil", SKU: "OIL-1", TransactionType: TransactionOutward,
		Quantity: types.NewQuantity(4), RecordedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		ReferenceType: "stock_transfer", ReferenceID: "ST-0007"},
}

func TestFilterAudit(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []id.Ref
	}{
		{"empty filter keeps all", Filter{}, []id.Ref{"a1", "a2", "a3"}},
		{"product substring", Filter{Product: "  RICE "}, []id.Ref{"a1", "a2"}},
		{"sku", Filter{SKU: "oil"}, []id.Ref{"a3"}},
		{"transaction type", Filter{TransactionType: "outward"}, []id.Ref{"a2", "a3"}},
		{"reference id", Filter{Reference: "ind-00"}, []id.Ref{"a1"}},
		{"reference type", Filter{Reference: "transfer"}, []id.Ref{"a3"}},
		{"combined", Filter{Product: "rice", TransactionType: "in"}, []id.Ref{"a1"}},
		{"no match", Filter{SKU: "milk"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []id.Ref
			for _, a := range FilterAudit(auditFixture, tt.filter) {
				got = append(got, a.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunningBalances(t *testing.T) {
	openings := map[id.Ref]types.Quantity{"11": types.NewQuantity(40)}

	out := RunningBalances(auditFixture, openings)
	require.Len(t, out, 3)

	assert.Equal(t, types.NewQuantity(65), out[0].Balance)
	assert.True(t, out[0].Seeded)
	assert.Equal(t, types.NewQuantityFromFloat64(52.5), out[1].Balance)

	// no opening known for product 12
	assert.Equal(t, types.NewQuantity(-4), out[2].Balance)
	assert.False(t, out[2].Seeded)
}

func TestRunningBalances_ChronologicalRegardlessOfInputOrder(t *testing.T) {
	reversed := []AuditRecord{auditFixture[1], auditFixture[0]}
	out := RunningBalances(reversed, map[id.Ref]types.Quantity{"11": types.NewQuantity(40)})

	assert.Equal(t, id.Ref("a2"), out[0].ID)
	assert.Equal(t, types.NewQuantityFromFloat64(52.5), out[0].Balance)
	assert.Equal(t, types.NewQuantity(65), out[1].Balance)
}

func TestOpeningsFor(t *testing.T) {
	rollup := &Rollup{Summaries: []RollupSummary{{ProductID: "11", Opening: types.NewQuantity(100)}}}
	early := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	ascending := []AuditRecord{
		{ProductID: "11", TransactionType: TransactionInward, Quantity: types.NewQuantity(50), RecordedAt: early},
		{ProductID: "11", TransactionType: TransactionOutward, Quantity: types.NewQuantity(10), RecordedAt: early.Add(time.Hour)},
	}
	descending := []AuditRecord{ascending[1], ascending[0]}

	tests := []struct {
		name    string
		records []AuditRecord
		page    domain.Pagination
		rollup  *Rollup
		seeded  bool
		balance int64
	}{
		{"first page ascending", ascending, domain.Pagination{Page: 1, Total: 40, TotalPages: 2}, rollup, true, 140},
		{"later page", ascending, domain.Pagination{Page: 2, Total: 40, TotalPages: 2}, rollup, false, 40},
		{"first page newest first", descending, domain.Pagination{Page: 1, Total: 40, TotalPages: 2}, rollup, false, 40},
		{"whole window newest first", descending, domain.Pagination{Page: 1, Total: 2, TotalPages: 1}, rollup, true, 140},
		{"no rollup", ascending, domain.Pagination{Page: 1, Total: 2, TotalPages: 1}, nil, false, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := &AuditPage{Records: tt.records, Pagination: tt.page}
			out := RunningBalances(page.Records, openingsFor(page, tt.rollup))

			last := out[0]
			for _, b := range out {
				if b.RecordedAt.After(last.RecordedAt) {
					last = b
				}
			}
			assert.Equal(t, tt.seeded, last.Seeded)
			assert.Equal(t, types.NewQuantity(tt.balance), last.Balance)
		})
	}
}
