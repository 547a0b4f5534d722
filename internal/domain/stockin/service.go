package stockin

import (
	"context"

	"github.com/google/uuid"

	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/domain/indent"
	"storeops/internal/domain/quantity"
	"storeops/pkg/logger"
)

// IndentSource gates and re-reads indents.
type IndentSource interface {
	ForStockIn(ctx context.Context, sess *appctx.Session, indentID id.Ref) (*indent.Indent, error)
	Get(ctx context.Context, sess *appctx.Session, indentID id.Ref) (*indent.View, error)
}

// Service rebuilds console drafts, validates them in full and submits them.
// Each draft results in exactly one backend request; there is no retry.
type Service struct {
	repo    Repository
	indents IndentSource
	limits  quantity.Limits
	newKey  func() string
}

// NewService creates a stock-in service.
func NewService(repo Repository, indents IndentSource, limits quantity.Limits) *Service {
	return &Service{
		repo:    repo,
		indents: indents,
		limits:  limits,
		newKey:  uuid.NewString,
	}
}

// PrepareIndent validates an indent-linked draft without submitting it.
func (s *Service) PrepareIndent(ctx context.Context, sess *appctx.Session, in IndentInput) (*IndentPlan, error) {
	ind, err := s.indents.ForStockIn(ctx, sess, in.IndentID)
	if err != nil {
		return nil, err
	}
	draft := NewIndentDraft(ind, s.limits)
	if err := draft.Apply(in); err != nil {
		return nil, err
	}
	return draft.Build()
}

// SubmitIndent validates and submits an indent-linked stock-in, then
// re-reads the indent so the console shows the backend's resulting status.
func (s *Service) SubmitIndent(ctx context.Context, sess *appctx.Session, in IndentInput) (*IndentResult, error) {
	plan, err := s.PrepareIndent(ctx, sess, in)
	if err != nil {
		return nil, err
	}

	key := s.newKey()
	receipt, err := s.repo.SubmitIndentStockIn(ctx, sess, plan.Request, key)
	if err != nil {
		logger.Warn(ctx, "indent stock-in rejected",
			"indent_id", plan.Request.IndentID,
			"idempotency_key", key,
			"error", err,
		)
		return nil, err
	}

	result := &IndentResult{Receipt: *receipt, IdempotencyKey: key, Notices: plan.Notices}
	if view, err := s.indents.Get(ctx, sess, plan.Request.IndentID); err != nil {
		logger.Warn(ctx, "indent re-read after stock-in failed", "indent_id", plan.Request.IndentID, "error", err)
	} else {
		result.Indent = view
	}

	logger.Info(ctx, "indent stock-in submitted",
		"indent_id", plan.Request.IndentID,
		"items", len(plan.Request.Items),
		"adjusted", len(plan.Notices),
	)
	return result, nil
}

// PrepareManual validates a manual draft without submitting it.
// The store is always the session's store.
func (s *Service) PrepareManual(ctx context.Context, sess *appctx.Session, in ManualInput) (*ManualPlan, error) {
	catalog, err := s.catalogIndex(ctx, sess, in)
	if err != nil {
		return nil, err
	}
	draft := NewManualDraft(id.Ref(sess.StoreID), s.limits)
	if err := draft.Apply(in, catalog); err != nil {
		return nil, err
	}
	return draft.Build()
}

// SubmitManual validates and submits a manual stock-in.
func (s *Service) SubmitManual(ctx context.Context, sess *appctx.Session, in ManualInput) (*ManualResult, error) {
	plan, err := s.PrepareManual(ctx, sess, in)
	if err != nil {
		return nil, err
	}

	key := s.newKey()
	receipt, err := s.repo.SubmitManualStockIn(ctx, sess, plan.Request, key)
	if err != nil {
		logger.Warn(ctx, "manual stock-in rejected", "idempotency_key", key, "error", err)
		return nil, err
	}

	logger.Info(ctx, "manual stock-in submitted",
		"items", len(plan.Request.Items),
		"damaged", plan.Request.IsDamagedGoods,
		"adjusted", len(plan.Notices),
	)
	return &ManualResult{Receipt: *receipt, IdempotencyKey: key, Notices: plan.Notices}, nil
}

// RowOptions is the selectable product list of one manual row.
type RowOptions struct {
	Row     int      `json:"row"`
	Options []Option `json:"options"`
}

// ManualOptions returns, for each row of in, the products it may select.
// Rows are loaded without validation so incomplete drafts still get options.
func (s *Service) ManualOptions(ctx context.Context, sess *appctx.Session, in ManualInput) ([]RowOptions, error) {
	catalog, err := s.repo.ListProducts(ctx, sess)
	if err != nil {
		return nil, err
	}

	draft := NewManualDraft(id.Ref(sess.StoreID), s.limits)
	for _, li := range in.Rows {
		i := draft.AddRow()
		if id.IsNil(li.ProductID) {
			continue
		}
		// a duplicate row keeps no selection and sees the same list as an empty row
		_ = draft.SelectProduct(i, Product{ID: li.ProductID})
	}

	out := make([]RowOptions, 0, len(in.Rows))
	for i := range in.Rows {
		opts, err := draft.Options(i, catalog)
		if err != nil {
			return nil, err
		}
		out = append(out, RowOptions{Row: i + 1, Options: opts})
	}
	return out, nil
}

// Products returns the store product catalog.
func (s *Service) Products(ctx context.Context, sess *appctx.Session) ([]Product, error) {
	return s.repo.ListProducts(ctx, sess)
}

// catalogIndex loads the catalog only when some row lacks a unit.
func (s *Service) catalogIndex(ctx context.Context, sess *appctx.Session, in ManualInput) (map[id.Ref]Product, error) {
	need := false
	for _, li := range in.Rows {
		if li.Unit == "" && !id.IsNil(li.ProductID) {
			need = true
			break
		}
	}
	if !need {
		return nil, nil
	}
	products, err := s.repo.ListProducts(ctx, sess)
	if err != nil {
		return nil, err
	}
	idx := make(map[id.Ref]Product, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx, nil
}
