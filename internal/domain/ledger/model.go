// Package ledger aggregates the store stock ledger: per-product per-day
// summary rows, the movement audit trail and the opening/closing rollup,
// fetched for a date window and filtered locally.
package ledger

import (
	"time"

	"storeops/internal/core/id"
	"storeops/internal/core/types"
	"storeops/internal/domain"
)

// TransactionType is the direction of a stock movement.
type TransactionType string

const (
	TransactionInward  TransactionType = "inward"
	TransactionOutward TransactionType = "outward"
)

// Totals are quantity and value aggregates over a set of summary rows.
type Totals struct {
	Opening      types.Quantity `json:"opening"`
	Inward       types.Quantity `json:"inward"`
	Outward      types.Quantity `json:"outward"`
	StockIn      types.Quantity `json:"stockIn"`
	StockOut     types.Quantity `json:"stockOut"`
	Closing      types.Quantity `json:"closing"`
	OpeningValue types.Money    `json:"openingValue"`
	InwardValue  types.Money    `json:"inwardValue"`
	OutwardValue types.Money    `json:"outwardValue"`
	ClosingValue types.Money    `json:"closingValue"`
}

// add accumulates r into t.
func (t *Totals) add(r SummaryRow) {
	t.Opening = t.Opening.Add(r.Opening)
	t.Inward = t.Inward.Add(r.Inward)
	t.Outward = t.Outward.Add(r.Outward)
	t.StockIn = t.StockIn.Add(r.StockIn)
	t.StockOut = t.StockOut.Add(r.StockOut)
	t.Closing = t.Closing.Add(r.Closing)
	t.OpeningValue = t.OpeningValue.Add(r.OpeningValue)
	t.InwardValue = t.InwardValue.Add(r.InwardValue)
	t.OutwardValue = t.OutwardValue.Add(r.OutwardValue)
	t.ClosingValue = t.ClosingValue.Add(r.ClosingValue)
}

// SummaryRow is the stock position of one product on one day.
// The backend guarantees Closing == Opening + Inward - Outward.
type SummaryRow struct {
	ProductID    id.Ref         `json:"productId"`
	ProductName  string         `json:"productName"`
	SKU          string         `json:"sku,omitempty"`
	Date         string         `json:"date"`
	Unit         string         `json:"unit"`
	Opening      types.Quantity `json:"openingStock"`
	Inward       types.Quantity `json:"inward"`
	Outward      types.Quantity `json:"outward"`
	StockIn      types.Quantity `json:"stockIn"`
	StockOut     types.Quantity `json:"stockOut"`
	Closing      types.Quantity `json:"closingStock"`
	OpeningValue types.Money    `json:"openingValue"`
	InwardValue  types.Money    `json:"inwardValue"`
	OutwardValue types.Money    `json:"outwardValue"`
	ClosingValue types.Money    `json:"closingValue"`
}

// Key identifies the row for drill-down caching.
func (r SummaryRow) Key() string {
	return RowKey(r.ProductID, r.Date)
}

// SummaryPage is one page of summary rows. Totals, when present, cover the whole window.
type SummaryPage struct {
	Rows       []SummaryRow      `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
	Totals     *Totals           `json:"totals,omitempty"`
}

// AuditRecord is one stock movement. Read-only.
type AuditRecord struct {
	ID              id.Ref          `json:"id,omitempty"`
	ProductID       id.Ref          `json:"productId"`
	ProductName     string          `json:"productName,omitempty"`
	SKU             string          `json:"sku,omitempty"`
	TransactionType TransactionType `json:"transactionType"`
	Quantity        types.Quantity  `json:"quantity"`
	Unit            string          `json:"unit"`
	TotalPrice      types.Money     `json:"totalPrice"`
	RecordedAt      time.Time       `json:"recordedAt"`
	ReferenceType   string          `json:"referenceType,omitempty"`
	ReferenceID     string          `json:"referenceId,omitempty"`
	Remarks         string          `json:"remarks,omitempty"`
}

// signed returns the quantity with outward movements negated.
func (a AuditRecord) signed() types.Quantity {
	if a.TransactionType == TransactionOutward {
		return a.Quantity.Neg()
	}
	return a.Quantity
}

// AuditPage is one page of the audit trail.
type AuditPage struct {
	Records    []AuditRecord     `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

// RollupSummary is the window opening/closing position of one product.
type RollupSummary struct {
	ProductID   id.Ref         `json:"productId"`
	ProductName string         `json:"productName,omitempty"`
	Unit        string         `json:"unit,omitempty"`
	Opening     types.Quantity `json:"openingStock"`
	Inward      types.Quantity `json:"inward"`
	Outward     types.Quantity `json:"outward"`
	Closing     types.Quantity `json:"closingStock"`
}

// Rollup is the opening/closing rollup over the window.
type Rollup struct {
	Totals    Totals          `json:"totals"`
	Summaries []RollupSummary `json:"summaries"`
}

// openings indexes rollup opening stock by product.
func (r *Rollup) openings() map[id.Ref]types.Quantity {
	if r == nil {
		return nil
	}
	out := make(map[id.Ref]types.Quantity, len(r.Summaries))
	for _, s := range r.Summaries {
		out[s.ProductID] = s.Opening
	}
	return out
}

// SaleLine is one sale of the drilled-down product.
type SaleLine struct {
	InvoiceNo    string         `json:"invoiceNo,omitempty"`
	Date         string         `json:"date,omitempty"`
	CustomerName string         `json:"customerName,omitempty"`
	Quantity     types.Quantity `json:"quantity"`
	Unit         string         `json:"unit,omitempty"`
	UnitPrice    types.Money    `json:"unitPrice"`
	Total        types.Money    `json:"total"`
}

// InvoiceRef is an invoice touching the drilled-down product.
type InvoiceRef struct {
	ID        id.Ref      `json:"id"`
	InvoiceNo string      `json:"invoiceNo,omitempty"`
	Date      string      `json:"date,omitempty"`
	Total     types.Money `json:"total"`
}

// SalesDetail is the per-product drill-down of a summary row.
type SalesDetail struct {
	SalesDetails []SaleLine   `json:"salesDetails"`
	Invoices     []InvoiceRef `json:"invoices"`
}
