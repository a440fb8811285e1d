package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRow(overrides map[string]string) map[string]string {
	row := map[string]string{
		"_row":               "2",
		ColumnSKU:            "ABC1",
		ColumnBrandName:      "Acme",
		ColumnProductName:    "Candle",
		ColumnQuantity:       "3",
		ColumnWholesalePrice: "$14.70",
		ColumnRetailPrice:    "$29.40",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func TestOrderLinesFromRowsParsesTypedLines(t *testing.T) {
	lines, err := OrderLinesFromRows([]map[string]string{
		orderRow(nil),
		orderRow(map[string]string{"_row": "3", ColumnSKU: " XYZ9 ", ColumnQuantity: "1"}),
	})

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "ABC1", lines[0].SKU)
	assert.Equal(t, "Acme", lines[0].BrandName)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "$14.70", lines[0].WholesalePrice, "prices stay raw until the parsing stage")
	assert.Equal(t, 2, lines[0].Row)
	// Cell whitespace is trimmed on identifier columns
	assert.Equal(t, "XYZ9", lines[1].SKU)
}

func TestOrderLinesFromRowsReportsMissingColumns(t *testing.T) {
	row := orderRow(nil)
	delete(row, ColumnSKU)
	delete(row, ColumnWholesalePrice)

	_, err := OrderLinesFromRows([]map[string]string{row})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{ColumnSKU, ColumnWholesalePrice}, verr.MissingColumns)
}

func TestOrderLinesFromRowsQuantityColumnOptional(t *testing.T) {
	row := orderRow(nil)
	delete(row, ColumnQuantity)

	lines, err := OrderLinesFromRows([]map[string]string{row})

	require.NoError(t, err)
	require.Len(t, lines, 1)
	// Zero here; reconciliation defaults it to 1
	assert.Equal(t, 0, lines[0].Quantity)
}

func TestOrderLinesFromRowsRejectsNonIntegerQuantity(t *testing.T) {
	_, err := OrderLinesFromRows([]map[string]string{
		orderRow(map[string]string{ColumnQuantity: "three"}),
		orderRow(map[string]string{"_row": "3", ColumnQuantity: "-2"}),
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.RowErrors, 2)
	assert.Equal(t, ErrCodeLineRejected, verr.RowErrors[0].Code)
	assert.Equal(t, 2, verr.RowErrors[0].Row)
	assert.Equal(t, 3, verr.RowErrors[1].Row)
}

func TestOrderLinesFromRowsEmptyQuantityCellAllowed(t *testing.T) {
	lines, err := OrderLinesFromRows([]map[string]string{
		orderRow(map[string]string{ColumnQuantity: "  "}),
	})

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 0, lines[0].Quantity)
}

func TestOrderLinesFromRowsEmptyInput(t *testing.T) {
	_, err := OrderLinesFromRows(nil)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, RequiredOrderColumns, verr.MissingColumns)
}

func TestFirstBrandName(t *testing.T) {
	assert.Equal(t, "Acme", FirstBrandName([]OrderLine{{BrandName: " Acme "}}))
	assert.Equal(t, "Unknown Supplier", FirstBrandName([]OrderLine{{BrandName: "  "}}))
	assert.Equal(t, "Unknown Supplier", FirstBrandName(nil))
}
