package controller

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shopkeep/internal/catalog"
)

func TestParseWhole(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"12", 12, false},
		{" 12 ", 12, false},
		{"$12", 12, false},
		{"12.00", 12, false},
		{"12.5", 0, true},
		{"", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := parseWhole(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestSplitImages(t *testing.T) {
	got := SplitImages("https://a, https://b\nhttps://c  ,")
	assert.Equal(t, []string{"https://a", "https://b", "https://c"}, got)
	assert.Empty(t, SplitImages("  "))
}

func TestFormFromProductRoundTrips(t *testing.T) {
	p := catalog.Product{ID: 4, Title: "Lamp", Price: decimal.NewFromInt(40), Description: "bright"}
	patch, err := FormFromProduct(p).Patch()
	require.NoError(t, err)
	require.NotNil(t, patch.Price)
	assert.Equal(t, 40, *patch.Price)
	assert.Equal(t, "Lamp", *patch.Title)
	assert.Equal(t, "bright", *patch.Description)
}

func TestUpdateFormBlankFieldsOmitted(t *testing.T) {
	patch, err := UpdateForm{Title: "  "}.Patch()
	require.NoError(t, err)
	assert.True(t, patch.Empty())

	_, err = UpdateForm{Price: "cheap"}.Patch()
	assert.True(t, catalog.IsValidationError(err))
}
