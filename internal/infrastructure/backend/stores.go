package backend

import (
	"context"
	"net/http"

	appctx "storeops/internal/core/context"
	"storeops/internal/domain/store"
)

var _ store.Repository = (*Client)(nil)

// ListStores implements store.Repository.
func (c *Client) ListStores(ctx context.Context, sess *appctx.Session) ([]store.Store, error) {
	resp, err := c.do(ctx, sess, request{op: "stores.list", method: http.MethodGet, path: "/stores"})
	if err != nil {
		return nil, err
	}
	var stores []store.Store
	if err := decode("stores.list", unwrap(resp.body, "stores"), &stores); err != nil {
		return nil, err
	}
	return stores, nil
}
