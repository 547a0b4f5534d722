package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storeops/internal/domain/store"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		source store.Kind
		dest   store.Kind
		want   MovementType
	}{
		{store.KindOwn, store.KindOwn, MovementStockTransfer},
		{store.KindOwn, store.KindFranchise, MovementSale},
		{store.KindFranchise, store.KindOwn, MovementStockTransfer},
		{store.KindFranchise, store.KindFranchise, MovementStockTransfer},
		{store.Kind("warehouse"), store.KindFranchise, MovementStockTransfer},
		{store.KindOwn, store.Kind(""), MovementStockTransfer},
	}

	for _, tt := range tests {
		t.Run(string(tt.source)+"->"+string(tt.dest), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.source, tt.dest))
		})
	}
}

func TestClassification_Effective(t *testing.T) {
	assert.Equal(t, MovementSale, Classification{Advisory: MovementSale}.Effective())
	assert.Equal(t, MovementStockTransfer,
		Classification{Advisory: MovementSale, Confirmed: MovementStockTransfer}.Effective())
}
