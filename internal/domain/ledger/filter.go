package ledger

import "strings"

// Filter narrows the displayed rows locally. Matching is case-insensitive substring.
type Filter struct {
	Product         string `json:"product,omitempty" form:"product"`
	SKU             string `json:"sku,omitempty" form:"sku"`
	TransactionType string `json:"transactionType,omitempty" form:"transactionType"`
	Reference       string `json:"reference,omitempty" form:"reference"`
}

// Normalize trims and lower-cases every term.
func (f Filter) Normalize() Filter {
	return Filter{
		Product:         norm(f.Product),
		SKU:             norm(f.SKU),
		TransactionType: norm(f.TransactionType),
		Reference:       norm(f.Reference),
	}
}

// IsZero reports whether no term is set.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func has(field, term string) bool {
	return term == "" || strings.Contains(strings.ToLower(field), term)
}

// MatchSummary applies the product and SKU terms to a summary row.
// Transaction type and reference do not exist on summary rows and are ignored.
// f must be normalized.
func (f Filter) MatchSummary(r SummaryRow) bool {
	return has(r.ProductName, f.Product) && has(r.SKU, f.SKU)
}

// MatchAudit applies every term to an audit record. Reference matches
// either the reference type or the reference id. f must be normalized.
func (f Filter) MatchAudit(a AuditRecord) bool {
	if !has(a.ProductName, f.Product) || !has(a.SKU, f.SKU) {
		return false
	}
	if !has(string(a.TransactionType), f.TransactionType) {
		return false
	}
	if f.Reference == "" {
		return true
	}
	return has(a.ReferenceType, f.Reference) || has(a.ReferenceID, f.Reference)
}

// FilterSummary returns the rows of page matching f.
func FilterSummary(rows []SummaryRow, f Filter) []SummaryRow {
	f = f.Normalize()
	out := make([]SummaryRow, 0, len(rows))
	for _, r := range rows {
		if f.MatchSummary(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterAudit returns the records matching f.
func FilterAudit(records []AuditRecord, f Filter) []AuditRecord {
	f = f.Normalize()
	out := make([]AuditRecord, 0, len(records))
	for _, a := range records {
		if f.MatchAudit(a) {
			out = append(out, a)
		}
	}
	return out
}
