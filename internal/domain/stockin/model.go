// Package stockin captures received and damaged quantities and builds the two
// stock-in submissions the backend accepts: indent-linked and manual.
package stockin

import (
	"storeops/internal/core/id"
	"storeops/internal/core/types"
	"storeops/internal/domain/indent"
	"storeops/internal/domain/quantity"
)

// IndentItem is one line of an indent-linked submission.
type IndentItem struct {
	ProductID          id.Ref          `json:"productId"`
	ReceivedQuantity   types.Quantity  `json:"receivedQuantity"`
	DamagedQuantity    *types.Quantity `json:"damagedQuantity,omitempty"`
	DamagedImageBase64 string          `json:"damagedImageBase64,omitempty"`
}

// IndentRequest is the indent-linked stock-in payload. It always carries indentId.
type IndentRequest struct {
	IndentID id.Ref       `json:"indentId"`
	Items    []IndentItem `json:"items"`
}

// ManualItem is one row of a manual submission.
type ManualItem struct {
	ProductID          id.Ref          `json:"productId"`
	Quantity           types.Quantity  `json:"quantity"`
	Unit               string          `json:"unit"`
	DamagedQuantity    *types.Quantity `json:"damagedQuantity,omitempty"`
	DamagedImageBase64 string          `json:"damagedImageBase64,omitempty"`
}

// ManualRequest is the manual stock-in payload. It has no indentId field at all,
// so an encoded manual request can never carry that key.
type ManualRequest struct {
	StoreID        id.Ref       `json:"storeId"`
	IsDamagedGoods bool         `json:"isDamagedGoods"`
	Items          []ManualItem `json:"items"`
}

// Receipt is the backend acknowledgement of a stock-in.
type Receipt struct {
	ID      id.Ref `json:"id,omitempty"`
	Code    string `json:"code,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// Product is an entry of the store product catalog offered to manual rows.
type Product struct {
	ID   id.Ref `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku,omitempty"`
	Unit string `json:"unit,omitempty"`
}

// LineInput is one line as edited in the console.
// For indent-linked drafts Quantity is the received quantity; nil keeps the ordered default.
type LineInput struct {
	ProductID       id.Ref          `json:"productId"`
	Quantity        *types.Quantity `json:"quantity,omitempty"`
	Unit            string          `json:"unit,omitempty"`
	DamagedQuantity *types.Quantity `json:"damagedQuantity,omitempty"`
	DamagedReason   string          `json:"damagedReason,omitempty"`
	DamagedImage    string          `json:"damagedImage,omitempty"`
}

// IndentInput is an indent-linked draft as posted by the console.
type IndentInput struct {
	IndentID     id.Ref      `json:"indentId"`
	DamagedGoods bool        `json:"damagedGoods"`
	Items        []LineInput `json:"items"`
}

// ManualInput is a manual draft as posted by the console.
type ManualInput struct {
	DamagedGoods bool        `json:"damagedGoods"`
	Rows         []LineInput `json:"rows"`
}

// Notice reports a damaged quantity that was clamped to its bound.
type Notice struct {
	LineNo    int    `json:"lineNo"`
	ProductID id.Ref `json:"productId"`
	quantity.Clamped
}

// IndentPlan is a validated indent-linked submission and its notices.
type IndentPlan struct {
	Request IndentRequest `json:"request"`
	Notices []Notice      `json:"notices"`
}

// ManualPlan is a validated manual submission and its notices.
type ManualPlan struct {
	Request ManualRequest `json:"request"`
	Notices []Notice      `json:"notices"`
}

// IndentResult is the outcome of an accepted indent-linked stock-in.
// Indent is re-read from the backend after submission; nil if that read failed.
type IndentResult struct {
	Receipt        Receipt      `json:"receipt"`
	IdempotencyKey string       `json:"idempotencyKey"`
	Notices        []Notice     `json:"notices"`
	Indent         *indent.View `json:"indent,omitempty"`
}

// ManualResult is the outcome of an accepted manual stock-in.
type ManualResult struct {
	Receipt        Receipt  `json:"receipt"`
	IdempotencyKey string   `json:"idempotencyKey"`
	Notices        []Notice `json:"notices"`
}
