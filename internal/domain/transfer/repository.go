package transfer

import (
	"context"

	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/domain"
	"storeops/internal/domain/store"
)

// Repository is the backend port for stock transfers.
type Repository interface {
	ListStockLevels(ctx context.Context, sess *appctx.Session) ([]StockLevel, error)
	CreateTransfer(ctx context.Context, sess *appctx.Session, req CreateRequest) (*Transfer, error)
	ListTransfers(ctx context.Context, sess *appctx.Session, page domain.PageRequest) (*HistoryPage, error)
	GetTransfer(ctx context.Context, sess *appctx.Session, transferID id.Ref) (*Transfer, error)
	GetTransferInvoice(ctx context.Context, sess *appctx.Session, transferID id.Ref) (*Invoice, error)
}

// StoreResolver resolves store IDs to stores (implemented by store.Directory).
type StoreResolver interface {
	Resolve(ctx context.Context, sess *appctx.Session, storeID id.Ref) (store.Store, error)
}
