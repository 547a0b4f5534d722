package backend

import (
	"context"
	"net/url"
	"strconv"

	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/domain/ledger"
)

var _ ledger.Repository = (*Client)(nil)

func windowQuery(sess *appctx.Session, w ledger.Window, paged bool) url.Values {
	q := url.Values{}
	q.Set("fromDate", w.FromDate())
	q.Set("toDate", w.ToDate())
	q.Set("storeId", sess.StoreID)
	if paged {
		q.Set("page", strconv.Itoa(w.Page))
		q.Set("limit", strconv.Itoa(w.Limit))
	}
	return q
}

// FetchSummary implements ledger.Repository.
func (c *Client) FetchSummary(ctx context.Context, sess *appctx.Session, w ledger.Window) (*ledger.SummaryPage, error) {
	var page ledger.SummaryPage
	if err := c.getJSON(ctx, sess, "ledger.summary", storePath(sess, "stock-summary"), windowQuery(sess, w, true), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FetchAudit implements ledger.Repository.
func (c *Client) FetchAudit(ctx context.Context, sess *appctx.Session, w ledger.Window) (*ledger.AuditPage, error) {
	var page ledger.AuditPage
	if err := c.getJSON(ctx, sess, "ledger.audit", storePath(sess, "stock-audit"), windowQuery(sess, w, true), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FetchRollup implements ledger.Repository.
func (c *Client) FetchRollup(ctx context.Context, sess *appctx.Session, w ledger.Window) (*ledger.Rollup, error) {
	var rollup ledger.Rollup
	if err := c.getJSON(ctx, sess, "ledger.rollup", storePath(sess, "stock-rollup"), windowQuery(sess, w, false), &rollup); err != nil {
		return nil, err
	}
	return &rollup, nil
}

// FetchSalesDetail implements ledger.Repository.
func (c *Client) FetchSalesDetail(ctx context.Context, sess *appctx.Session, productID id.Ref, fromDate, toDate string) (*ledger.SalesDetail, error) {
	q := url.Values{}
	q.Set("storeId", sess.StoreID)
	q.Set("fromDate", fromDate)
	q.Set("toDate", toDate)

	var detail ledger.SalesDetail
	path := storePath(sess, "products", productID.String(), "sales-detail")
	if err := c.getJSON(ctx, sess, "ledger.sales_detail", path, q, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
