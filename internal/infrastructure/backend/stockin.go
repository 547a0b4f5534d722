package backend

import (
	"context"
	"net/http"

	appctx "storeops/internal/core/context"
	"storeops/internal/domain/stockin"
)

var _ stockin.Repository = (*Client)(nil)

// SubmitIndentStockIn implements stockin.Repository.
func (c *Client) SubmitIndentStockIn(ctx context.Context, sess *appctx.Session, req stockin.IndentRequest, idempotencyKey string) (*stockin.Receipt, error) {
	var receipt stockin.Receipt
	err := c.sendObject(ctx, sess, "stockin.indent", http.MethodPost,
		storePath(sess, "indents", req.IndentID.String(), "stock-in"), "stockIn",
		req, map[string]string{HeaderIdempotencyKey: idempotencyKey}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// SubmitManualStockIn implements stockin.Repository.
func (c *Client) SubmitManualStockIn(ctx context.Context, sess *appctx.Session, req stockin.ManualRequest, idempotencyKey string) (*stockin.Receipt, error) {
	var receipt stockin.Receipt
	err := c.sendObject(ctx, sess, "stockin.manual", http.MethodPost,
		storePath(sess, "stock-in"), "stockIn",
		req, map[string]string{HeaderIdempotencyKey: idempotencyKey}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ListProducts implements stockin.Repository.
func (c *Client) ListProducts(ctx context.Context, sess *appctx.Session) ([]stockin.Product, error) {
	var products []stockin.Product
	if err := c.getObject(ctx, sess, "products.list", storePath(sess, "products"), "products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
