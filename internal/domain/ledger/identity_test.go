package ledger

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeops/internal/core/types"
)

func loadSummaryFixture(t *testing.T) *SummaryPage {
	t.Helper()
	raw, err := os.ReadFile("testdata/summary.json")
	require.NoError(t, err)
	var page SummaryPage
	require.NoError(t, json.Unmarshal(raw, &page))
	return &page
}

func TestFixtureRowsSatisfyIdentity(t *testing.T) {
	page := loadSummaryFixture(t)
	require.Len(t, page.Rows, 3)

	for _, r := range page.Rows {
		t.Run(r.Key(), func(t *testing.T) {
			_, ok := CheckIdentity(r)
			assert.True(t, ok)
			assert.Equal(t, r.Closing, r.Opening.Add(r.Inward).Sub(r.Outward))
		})
	}
	assert.Empty(t, CheckRows(page.Rows))
}

func TestCheckIdentity_Violation(t *testing.T) {
	r := SummaryRow{
		ProductID: "5", Date: "2024-03-01",
		Opening: types.NewQuantity(10), Inward: types.NewQuantity(2), Outward: types.NewQuantity(1),
		Closing: types.NewQuantity(12),
	}
	v, ok := CheckIdentity(r)
	assert.False(t, ok)
	assert.Equal(t, "5|2024-03-01", v.Key)
	assert.Equal(t, types.NewQuantity(11), v.Expected)
	assert.Len(t, CheckRows([]SummaryRow{r}), 1)
}

func TestVisibleTotalsDifferFromWindowTotals(t *testing.T) {
	page := loadSummaryFixture(t)

	visible := VisibleTotals(FilterSummary(page.Rows, Filter{Product: "oil"}))
	assert.Equal(t, types.NewQuantity(10), visible.Opening)
	assert.Equal(t, types.NewQuantity(6), visible.Closing)
	assert.Equal(t, "900", visible.ClosingValue.String())

	require.NotNil(t, page.Totals)
	assert.NotEqual(t, page.Totals.Closing, visible.Closing)
	assert.Equal(t, VisibleTotals(page.Rows).Closing, page.Totals.Closing)
}
