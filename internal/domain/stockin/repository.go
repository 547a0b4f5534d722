package stockin

import (
	"context"

	appctx "storeops/internal/core/context"
)

// Repository submits stock-ins to the backend. idempotencyKey is unique per submission.
type Repository interface {
	SubmitIndentStockIn(ctx context.Context, sess *appctx.Session, req IndentRequest, idempotencyKey string) (*Receipt, error)
	SubmitManualStockIn(ctx context.Context, sess *appctx.Session, req ManualRequest, idempotencyKey string) (*Receipt, error)
	ListProducts(ctx context.Context, sess *appctx.Session) ([]Product, error)
}
