package auth

import (
	"context"
	"time"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/domain/store"
	"storeops/pkg/logger"
)

// StoreResolver resolves a store of the directory.
type StoreResolver interface {
	Resolve(ctx context.Context, sess *appctx.Session, storeID id.Ref) (store.Store, error)
}

// SwitchResult is a re-issued session token.
type SwitchResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	Store     store.Store `json:"store"`
}

// Service authenticates console requests and re-scopes sessions to another store.
type Service struct {
	tokens *TokenService
	stores StoreResolver
}

// NewService creates an auth service.
func NewService(tokens *TokenService, stores StoreResolver) *Service {
	return &Service{tokens: tokens, stores: stores}
}

// Authenticate validates a bearer token.
func (s *Service) Authenticate(tokenString string) (*appctx.Session, error) {
	if tokenString == "" {
		return nil, apperror.NewUnauthorized("missing session token")
	}
	sess, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid or expired session token").WithCause(err)
	}
	return sess, nil
}

// SwitchStore issues a token for the same user and session scoped to storeID.
// The store must be visible in the directory for the current session.
func (s *Service) SwitchStore(ctx context.Context, sess *appctx.Session, storeID id.Ref) (*SwitchResult, error) {
	if id.IsNil(storeID) {
		return nil, apperror.NewValidation("store is required").WithDetail("field", "storeId")
	}
	st, err := s.stores.Resolve(ctx, sess, storeID)
	if err != nil {
		return nil, err
	}

	next := *sess
	next.StoreID = st.ID.String()
	next.StoreKind = string(st.Kind)

	token, expiresAt, err := s.tokens.Issue(next)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "session store switched", "from_store_id", sess.StoreID, "to_store_id", next.StoreID)
	return &SwitchResult{Token: token, ExpiresAt: expiresAt, Store: st}, nil
}
