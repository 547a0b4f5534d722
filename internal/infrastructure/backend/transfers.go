package backend

import (
	"context"
	"fmt"
	"mime"
	"net/http"

	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/domain"
	"storeops/internal/domain/transfer"
)

var _ transfer.Repository = (*Client)(nil)

// ListStockLevels implements transfer.Repository.
func (c *Client) ListStockLevels(ctx context.Context, sess *appctx.Session) ([]transfer.StockLevel, error) {
	var levels []transfer.StockLevel
	if err := c.getObject(ctx, sess, "transfers.stock_levels", storePath(sess, "stock-levels"), "levels", nil, &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

// CreateTransfer implements transfer.Repository.
func (c *Client) CreateTransfer(ctx context.Context, sess *appctx.Session, req transfer.CreateRequest) (*transfer.Transfer, error) {
	var created transfer.Transfer
	if err := c.sendObject(ctx, sess, "transfers.create", http.MethodPost, storePath(sess, "stock-transfers"), "transfer", req, nil, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListTransfers implements transfer.Repository.
func (c *Client) ListTransfers(ctx context.Context, sess *appctx.Session, page domain.PageRequest) (*transfer.HistoryPage, error) {
	var out transfer.HistoryPage
	if err := c.getJSON(ctx, sess, "transfers.list", storePath(sess, "stock-transfers"), pageQuery(page), &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []transfer.Transfer{}
	}
	return &out, nil
}

// GetTransfer implements transfer.Repository.
func (c *Client) GetTransfer(ctx context.Context, sess *appctx.Session, transferID id.Ref) (*transfer.Transfer, error) {
	var t transfer.Transfer
	if err := c.getObject(ctx, sess, "transfers.get", storePath(sess, "stock-transfers", transferID.String()), "transfer", nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTransferInvoice implements transfer.Repository. The body is returned as is.
func (c *Client) GetTransferInvoice(ctx context.Context, sess *appctx.Session, transferID id.Ref) (*transfer.Invoice, error) {
	resp, err := c.do(ctx, sess, request{
		op:      "transfers.invoice",
		method:  http.MethodGet,
		path:    storePath(sess, "stock-transfers", transferID.String(), "invoice"),
		headers: map[string]string{"Accept": "application/pdf, */*"},
	})
	if err != nil {
		return nil, err
	}

	contentType := resp.header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	filename := fmt.Sprintf("transfer-%s-invoice.pdf", transferID)
	if _, params, err := mime.ParseMediaType(resp.header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		filename = params["filename"]
	}

	return &transfer.Invoice{Filename: filename, ContentType: contentType, Body: resp.body}, nil
}
