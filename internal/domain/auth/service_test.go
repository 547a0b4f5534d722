package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/domain/store"
)

type fakeStores map[id.Ref]store.Store

func (f fakeStores) Resolve(_ context.Context, _ *appctx.Session, storeID id.Ref) (store.Store, error) {
	if s, ok := f[storeID]; ok {
		return s, nil
	}
	return store.Store{}, apperror.NewNotFound("store", storeID.String())
}

func TestService_Authenticate(t *testing.T) {
	tokens := NewTokenService(DefaultTokenConfig("s"))
	svc := NewService(tokens, fakeStores{})

	_, err := svc.Authenticate("")
	assert.True(t, apperror.HasCode(err, apperror.CodeUnauthorized))

	_, err = svc.Authenticate("bogus")
	assert.True(t, apperror.HasCode(err, apperror.CodeUnauthorized))

	token, _, err := tokens.Issue(appctx.Session{UserID: "u1", StoreID: "7"})
	require.NoError(t, err)
	sess, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "7", sess.StoreID)
}

func TestService_SwitchStore(t *testing.T) {
	tokens := NewTokenService(DefaultTokenConfig("s"))
	svc := NewService(tokens, fakeStores{"9": {ID: "9", Name: "Franchise North", Kind: store.KindFranchise}})
	sess := &appctx.Session{SessionID: "sid-1", UserID: "u1", StoreID: "7", StoreKind: "own", Token: "bt"}

	res, err := svc.SwitchStore(context.Background(), sess, "9")
	require.NoError(t, err)

	next, err := tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "9", next.StoreID)
	assert.Equal(t, "franchise", next.StoreKind)
	assert.Equal(t, "sid-1", next.SessionID)
	assert.Equal(t, "bt", next.Token)
	assert.Equal(t, "7", sess.StoreID)

	_, err = svc.SwitchStore(context.Background(), sess, "404")
	assert.True(t, apperror.IsNotFound(err))
}
