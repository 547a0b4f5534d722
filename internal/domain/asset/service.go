package asset

import (
	"context"
	"strings"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/domain"
	"storeops/internal/domain/quantity"
	"storeops/pkg/logger"
)

// BoundExceedsRemaining names the violated bound of an over-receipt.
const BoundExceedsRemaining = "exceeds remaining"

// Service validates asset changes locally and forwards them to the backend.
type Service struct {
	repo   Repository
	limits quantity.Limits
}

// NewService creates an asset service.
func NewService(repo Repository, limits quantity.Limits) *Service {
	return &Service{repo: repo, limits: limits}
}

// List returns a page of assets.
func (s *Service) List(ctx context.Context, sess *appctx.Session, page domain.PageRequest) (*Page, error) {
	return s.repo.ListAssets(ctx, sess, page.Normalize())
}

// Get returns one asset.
func (s *Service) Get(ctx context.Context, sess *appctx.Session, assetID id.Ref) (*StoreAsset, error) {
	return s.repo.GetAsset(ctx, sess, assetID)
}

// Create validates and creates an asset.
func (s *Service) Create(ctx context.Context, sess *appctx.Session, in Input) (*StoreAsset, error) {
	in = normalize(in)
	if err := s.validate(in); err != nil {
		return nil, err
	}
	created, err := s.repo.CreateAsset(ctx, sess, in)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "asset created", "asset_id", created.ID, "asset_code", created.AssetCode)
	return created, nil
}

// Update changes a pending asset.
func (s *Service) Update(ctx context.Context, sess *appctx.Session, assetID id.Ref, in Input) (*StoreAsset, error) {
	if _, err := s.editable(ctx, sess, assetID, "update"); err != nil {
		return nil, err
	}
	in = normalize(in)
	if err := s.validate(in); err != nil {
		return nil, err
	}
	return s.repo.UpdateAsset(ctx, sess, assetID, in)
}

// Delete removes a pending asset.
func (s *Service) Delete(ctx context.Context, sess *appctx.Session, assetID id.Ref) error {
	if _, err := s.editable(ctx, sess, assetID, "delete"); err != nil {
		return err
	}
	if err := s.repo.DeleteAsset(ctx, sess, assetID); err != nil {
		return err
	}
	logger.Info(ctx, "asset deleted", "asset_id", assetID)
	return nil
}

// StockIn records a received quantity. The total received never exceeds the requested quantity.
func (s *Service) StockIn(ctx context.Context, sess *appctx.Session, assetID id.Ref, req StockInRequest) (*StoreAsset, error) {
	a, err := s.editable(ctx, sess, assetID, "stock in")
	if err != nil {
		return nil, err
	}
	if !req.ReceivedQuantity.IsPositive() {
		return nil, apperror.NewInvalidQuantity(quantity.BoundNotPositive).
			WithDetail("field", "receivedQuantity")
	}
	if remaining := a.Remaining(); req.ReceivedQuantity > remaining {
		return nil, apperror.NewInvalidQuantity(BoundExceedsRemaining).
			WithDetail("remaining", remaining.Float64()).
			WithDetail("requested", a.RequestedQuantity.Float64())
	}
	return s.repo.StockInAsset(ctx, sess, assetID, req)
}

func (s *Service) editable(ctx context.Context, sess *appctx.Session, assetID id.Ref, action string) (*StoreAsset, error) {
	if id.IsNil(assetID) {
		return nil, apperror.NewValidation("asset id is required")
	}
	a, err := s.repo.GetAsset(ctx, sess, assetID)
	if err != nil {
		return nil, err
	}
	if !a.CanEdit() {
		return nil, apperror.NewInvalidStatus("asset", string(a.Status), action)
	}
	return a, nil
}

func normalize(in Input) Input {
	in.AssetCode = strings.TrimSpace(in.AssetCode)
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Condition = strings.TrimSpace(in.Condition)
	in.BillDocumentBase64 = strings.TrimSpace(in.BillDocumentBase64)
	return in
}

func (s *Service) validate(in Input) error {
	if in.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if !in.RequestedQuantity.IsPositive() {
		return apperror.NewInvalidQuantity(quantity.BoundNotPositive).WithDetail("field", "requestedQuantity")
	}
	if in.Value.IsNegative() {
		return apperror.NewValidation("value must not be negative").WithDetail("field", "value")
	}
	if in.Tax.IsNegative() {
		return apperror.NewValidation("tax must not be negative").WithDetail("field", "tax")
	}
	if in.BillDocumentBase64 != "" {
		err := quantity.ValidateDataURL(in.BillDocumentBase64, quantity.DocumentMIMETypes, s.limits.BillDocumentMaxBytes)
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("field", "billDocumentBase64")
			}
			return err
		}
	}
	return nil
}
