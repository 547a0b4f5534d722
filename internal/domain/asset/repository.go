package asset

import (
	"context"

	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/domain"
)

// Repository is the backend store of assets.
type Repository interface {
	ListAssets(ctx context.Context, sess *appctx.Session, page domain.PageRequest) (*Page, error)
	GetAsset(ctx context.Context, sess *appctx.Session, assetID id.Ref) (*StoreAsset, error)
	CreateAsset(ctx context.Context, sess *appctx.Session, in Input) (*StoreAsset, error)
	UpdateAsset(ctx context.Context, sess *appctx.Session, assetID id.Ref, in Input) (*StoreAsset, error)
	DeleteAsset(ctx context.Context, sess *appctx.Session, assetID id.Ref) error
	StockInAsset(ctx context.Context, sess *appctx.Session, assetID id.Ref, req StockInRequest) (*StoreAsset, error)
}
