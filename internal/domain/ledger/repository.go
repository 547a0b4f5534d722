package ledger

import (
	"context"

	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
)

// Repository reads the three ledger models and the per-row drill-down.
type Repository interface {
	FetchSummary(ctx context.Context, sess *appctx.Session, w Window) (*SummaryPage, error)
	FetchAudit(ctx context.Context, sess *appctx.Session, w Window) (*AuditPage, error)
	FetchRollup(ctx context.Context, sess *appctx.Session, w Window) (*Rollup, error)
	FetchSalesDetail(ctx context.Context, sess *appctx.Session, productID id.Ref, fromDate, toDate string) (*SalesDetail, error)
}
