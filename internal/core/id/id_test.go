package id

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRef_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Ref
	}{
		{name: "number", in: `42`, want: "42"},
		{name: "string", in: `"P-42"`, want: "P-42"},
		{name: "null", in: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Ref
			require.NoError(t, json.Unmarshal([]byte(tt.in), &r))
			assert.Equal(t, tt.want, r)
		})
	}
}

func TestRef_MarshalAsString(t *testing.T) {
	out, err := json.Marshal(struct {
		ProductID Ref `json:"productId"`
	}{ProductID: "42"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"productId":"42"}`, string(out))
}

func TestParse_RejectsBlank(t *testing.T) {
	_, err := Parse("   ")
	assert.Error(t, err)
}
