package dto

import (
	"storeops/internal/domain"
	"storeops/internal/domain/ledger"
)

// LedgerWindowRequest moves the ledger to a new date window.
type LedgerWindowRequest struct {
	FromDate string `json:"fromDate" binding:"required"`
	ToDate   string `json:"toDate" binding:"required"`
	Page     int    `json:"page,omitempty" binding:"omitempty,min=1"`
	Limit    int    `json:"limit,omitempty" binding:"omitempty,min=1,max=100"`
}

// ToWindow parses and validates the window.
func (r LedgerWindowRequest) ToWindow() (ledger.Window, error) {
	return ledger.ParseWindow(r.FromDate, r.ToDate, domain.PageRequest{Page: r.Page, Limit: r.Limit})
}

// LedgerPageRequest changes the page of the current window.
type LedgerPageRequest struct {
	Page  int `json:"page" binding:"required,min=1"`
	Limit int `json:"limit,omitempty" binding:"omitempty,min=1,max=100"`
}

// ToDomain converts the request to a page request.
func (r LedgerPageRequest) ToDomain() domain.PageRequest {
	return domain.PageRequest{Page: r.Page, Limit: r.Limit}
}

// LedgerFilterRequest replaces the local ledger filter.
type LedgerFilterRequest struct {
	Product         string `json:"product,omitempty"`
	SKU             string `json:"sku,omitempty"`
	TransactionType string `json:"transactionType,omitempty"`
	Reference       string `json:"reference,omitempty"`
}

// ToFilter converts the request to a ledger filter.
func (r LedgerFilterRequest) ToFilter() ledger.Filter {
	return ledger.Filter{
		Product:         r.Product,
		SKU:             r.SKU,
		TransactionType: r.TransactionType,
		Reference:       r.Reference,
	}
}

// DrillDownRequest names a summary row by its key.
type DrillDownRequest struct {
	Key string `json:"key" form:"key" binding:"required"`
}

// DrillDownResponse is the sales detail of one summary row.
type DrillDownResponse struct {
	Key    string              `json:"key"`
	Detail *ledger.SalesDetail `json:"detail"`
}
