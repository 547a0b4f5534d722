package backend

import (
	"context"
	"net/http"

	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/domain"
	"storeops/internal/domain/asset"
)

var _ asset.Repository = (*Client)(nil)

// ListAssets implements asset.Repository.
func (c *Client) ListAssets(ctx context.Context, sess *appctx.Session, page domain.PageRequest) (*asset.Page, error) {
	var out asset.Page
	if err := c.getJSON(ctx, sess, "assets.list", storePath(sess, "assets"), pageQuery(page), &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []asset.StoreAsset{}
	}
	return &out, nil
}

// GetAsset implements asset.Repository.
func (c *Client) GetAsset(ctx context.Context, sess *appctx.Session, assetID id.Ref) (*asset.StoreAsset, error) {
	var a asset.StoreAsset
	if err := c.getObject(ctx, sess, "assets.get", storePath(sess, "assets", assetID.String()), "asset", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAsset implements asset.Repository.
func (c *Client) CreateAsset(ctx context.Context, sess *appctx.Session, in asset.Input) (*asset.StoreAsset, error) {
	var a asset.StoreAsset
	if err := c.sendObject(ctx, sess, "assets.create", http.MethodPost, storePath(sess, "assets"), "asset", in, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAsset implements asset.Repository.
func (c *Client) UpdateAsset(ctx context.Context, sess *appctx.Session, assetID id.Ref, in asset.Input) (*asset.StoreAsset, error) {
	var a asset.StoreAsset
	if err := c.sendObject(ctx, sess, "assets.update", http.MethodPut, storePath(sess, "assets", assetID.String()), "asset", in, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAsset implements asset.Repository.
func (c *Client) DeleteAsset(ctx context.Context, sess *appctx.Session, assetID id.Ref) error {
	return c.sendJSON(ctx, sess, "assets.delete", http.MethodDelete, storePath(sess, "assets", assetID.String()), nil, nil, nil)
}

// StockInAsset implements asset.Repository.
func (c *Client) StockInAsset(ctx context.Context, sess *appctx.Session, assetID id.Ref, req asset.StockInRequest) (*asset.StoreAsset, error) {
	var a asset.StoreAsset
	err := c.sendObject(ctx, sess, "assets.stock_in", http.MethodPost,
		storePath(sess, "assets", assetID.String(), "stock-in"), "asset", req, nil, &a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
