package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemsJSON_RoundTripPreservesOrder(t *testing.T) {
	items := ItemsJSON{
		{Description: "Consulting", Quantity: 10, UnitPrice: decimal.RequireFromString("150.00")},
		{Description: "Hosting", Quantity: 2, UnitPrice: decimal.RequireFromString("49.99")},
		{Description: "Support", Quantity: 1, UnitPrice: decimal.RequireFromString("0")},
	}

	value, err := items.Value()
	require.NoError(t, err)

	var scanned ItemsJSON
	require.NoError(t, scanned.Scan(value))

	require.Len(t, scanned, len(items))
	for i := range items {
		assert.Equal(t, items[i].Description, scanned[i].Description)
		assert.Equal(t, items[i].Quantity, scanned[i].Quantity)
		assert.True(t, items[i].UnitPrice.Equal(scanned[i].UnitPrice))
	}
}

func TestItemsJSON_ScanNil(t *testing.T) {
	var scanned ItemsJSON
	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}

func TestItemsJSON_NilValueEncodesEmptyList(t *testing.T) {
	var items ItemsJSON

	value, err := items.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}
