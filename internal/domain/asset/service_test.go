package asset

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/core/types"
	"storeops/internal/domain"
	"storeops/internal/domain/quantity"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListAssets(ctx context.Context, sess *appctx.Session, page domain.PageRequest) (*Page, error) {
	args := m.Called(ctx, sess, page)
	return args.Get(0).(*Page), args.Error(1)
}

func (m *MockRepository) GetAsset(ctx context.Context, sess *appctx.Session, assetID id.Ref) (*StoreAsset, error) {
	args := m.Called(ctx, sess, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StoreAsset), args.Error(1)
}

func (m *MockRepository) CreateAsset(ctx context.Context, sess *appctx.Session, in Input) (*StoreAsset, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StoreAsset), args.Error(1)
}

func (m *MockRepository) UpdateAsset(ctx context.Context, sess *appctx.Session, assetID id.Ref, in Input) (*StoreAsset, error) {
	args := m.Called(ctx, sess, assetID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StoreAsset), args.Error(1)
}

func (m *MockRepository) DeleteAsset(ctx context.Context, sess *appctx.Session, assetID id.Ref) error {
	return m.Called(ctx, sess, assetID).Error(0)
}

func (m *MockRepository) StockInAsset(ctx context.Context, sess *appctx.Session, assetID id.Ref, req StockInRequest) (*StoreAsset, error) {
	args := m.Called(ctx, sess, assetID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StoreAsset), args.Error(1)
}

var sess = &appctx.Session{StoreID: "7"}

func pdfDataURL(size int) string {
	raw := make([]byte, size)
	copy(raw, "%PDF-1.4\n")
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(raw)
}

func TestService_Create_Validation(t *testing.T) {
	valid := Input{Name: "Chiller", RequestedQuantity: types.NewQuantity(2), Value: types.MustMoney("45000")}

	tests := []struct {
		name     string
		mutate   func(*Input)
		wantCode string
	}{
		{"missing name", func(in *Input) { in.Name = "  " }, apperror.CodeValidation},
		{"zero quantity", func(in *Input) { in.RequestedQuantity = 0 }, apperror.CodeInvalidQuantity},
		{"negative tax", func(in *Input) { in.Tax = types.MustMoney("-1") }, apperror.CodeValidation},
		{"bare base64 bill", func(in *Input) { in.BillDocumentBase64 = "JVBERi0xLjQ=" }, apperror.CodeValidation},
		{"unsupported bill", func(in *Input) { in.BillDocumentBase64 = "data:text/plain;base64,aGVsbG8=" }, apperror.CodeUnsupportedMedia},
		{"oversized bill", func(in *Input) { in.BillDocumentBase64 = pdfDataURL(int(quantity.DefaultBillDocumentMaxBytes) + 3) }, apperror.CodeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, quantity.DefaultLimits())
			in := valid
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), sess, in)
			assert.True(t, apperror.HasCode(err, tt.wantCode), "got %v", err)
			repo.AssertNotCalled(t, "CreateAsset", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_WithBill(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, quantity.DefaultLimits())
	bill := pdfDataURL(1024)

	repo.On("CreateAsset", mock.Anything, sess, mock.MatchedBy(func(in Input) bool {
		return in.BillDocumentBase64 == bill && in.Name == "Chiller"
	})).Return(&StoreAsset{ID: "9", AssetCode: "AST-9", Status: StatusPending}, nil)

	a, err := svc.Create(context.Background(), sess, Input{
		Name: " Chiller ", RequestedQuantity: types.NewQuantity(1), BillDocumentBase64: bill,
	})
	require.NoError(t, err)
	assert.Equal(t, "AST-9", a.AssetCode)
}

func TestService_EditGatedByStatus(t *testing.T) {
	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, quantity.DefaultLimits())
			repo.On("GetAsset", mock.Anything, sess, id.Ref("9")).Return(&StoreAsset{ID: "9", Status: status}, nil)

			_, err := svc.Update(context.Background(), sess, "9", Input{Name: "x", RequestedQuantity: types.NewQuantity(1)})
			assert.True(t, apperror.HasCode(err, apperror.CodeInvalidStatus))

			err = svc.Delete(context.Background(), sess, "9")
			assert.True(t, apperror.HasCode(err, apperror.CodeInvalidStatus))

			_, err = svc.StockIn(context.Background(), sess, "9", StockInRequest{ReceivedQuantity: types.NewQuantity(1)})
			assert.True(t, apperror.HasCode(err, apperror.CodeInvalidStatus))

			repo.AssertNotCalled(t, "UpdateAsset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "DeleteAsset", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_StockInBoundedByRemaining(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, quantity.DefaultLimits())
	pending := &StoreAsset{
		ID: "9", Status: StatusPending,
		RequestedQuantity: types.NewQuantity(5), ReceivedQuantity: types.NewQuantity(3),
	}
	repo.On("GetAsset", mock.Anything, sess, id.Ref("9")).Return(pending, nil)

	_, err := svc.StockIn(context.Background(), sess, "9", StockInRequest{ReceivedQuantity: types.NewQuantity(3)})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, BoundExceedsRemaining, appErr.Details["bound"])
	assert.Equal(t, 2.0, appErr.Details["remaining"])

	_, err = svc.StockIn(context.Background(), sess, "9", StockInRequest{})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidQuantity))

	repo.On("StockInAsset", mock.Anything, sess, id.Ref("9"), StockInRequest{ReceivedQuantity: types.NewQuantity(2)}).
		Return(&StoreAsset{ID: "9", Status: StatusCompleted, ReceivedQuantity: types.NewQuantity(5)}, nil)

	a, err := svc.StockIn(context.Background(), sess, "9", StockInRequest{ReceivedQuantity: types.NewQuantity(2)})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, a.Status)
}

func TestStoreAsset_Remaining(t *testing.T) {
	a := StoreAsset{RequestedQuantity: types.NewQuantity(2), ReceivedQuantity: types.NewQuantity(3)}
	assert.True(t, a.Remaining().IsZero())
}
