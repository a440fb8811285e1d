package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Column names expected in the wholesale order document. Headers are matched
// after lowercasing and trimming, the same normalization the import parsers
// apply.
const (
	ColumnSKU            = "sku"
	ColumnBrandName      = "brand name"
	ColumnProductName    = "product name"
	ColumnQuantity       = "quantity"
	ColumnWholesalePrice = "wholesale price"
	ColumnRetailPrice    = "retail price"
)

// RequiredOrderColumns are the columns that must be present before any
// mutation is attempted. Quantity is deliberately not required: orders without
// a quantity column default every line to 1 at reconciliation time.
var RequiredOrderColumns = []string{
	ColumnSKU,
	ColumnBrandName,
	ColumnProductName,
	ColumnWholesalePrice,
	ColumnRetailPrice,
}

// OrderLine is one parsed line of the external wholesale order.
// Parsed once from the order document and immutable thereafter; prices stay in
// their original currency-string form ("$14.70") until the pipeline stage that
// owns their parsing policy.
type OrderLine struct {
	SKU            string `json:"sku"`
	BrandName      string `json:"brandName"`
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	WholesalePrice string `json:"wholesalePrice"`
	RetailPrice    string `json:"retailPrice"`
	Row            int    `json:"row"`
}

// ValidationError reports a hard precondition failure on the order document.
// It aborts the run before any mutation.
type ValidationError struct {
	MissingColumns []string
	RowErrors      []LineError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.MissingColumns) > 0 {
		parts = append(parts, "missing required columns: "+strings.Join(e.MissingColumns, ", "))
	}
	for _, re := range e.RowErrors {
		parts = append(parts, fmt.Sprintf("row %d: %s", re.Row, re.Message))
	}
	return "invalid order document: " + strings.Join(parts, "; ")
}

// LineError describes a failure scoped to a single order or stock-order line
type LineError struct {
	Row       int    `json:"row,omitempty"`
	SKU       string `json:"sku,omitempty"`
	ProductID string `json:"productId,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Error codes carried on LineError
const (
	ErrCodePriceParse    = "PRICE_PARSE_ERROR"
	ErrCodeCreateFailed  = "CREATE_FAILED"
	ErrCodeLineRejected  = "LINE_REJECTED"
	ErrCodeMissingEntity = "MISSING_ENTITY"
)

// OrderLinesFromRows converts generic header-keyed rows (as produced by the
// CSV/XLSX parsers) into typed order lines. Returns a ValidationError when a
// required column is absent from the header set or a quantity cell is not an
// integer; parsing never silently drops or defaults a malformed row.
func OrderLinesFromRows(rows []map[string]string) ([]OrderLine, error) {
	if len(rows) == 0 {
		return nil, &ValidationError{MissingColumns: RequiredOrderColumns}
	}

	var missing []string
	for _, col := range RequiredOrderColumns {
		if _, ok := rows[0][col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{MissingColumns: missing}
	}

	_, hasQuantity := rows[0][ColumnQuantity]

	lines := make([]OrderLine, 0, len(rows))
	var rowErrs []LineError
	for _, row := range rows {
		rowNum, _ := strconv.Atoi(row["_row"])
		line := OrderLine{
			SKU:            strings.TrimSpace(row[ColumnSKU]),
			BrandName:      strings.TrimSpace(row[ColumnBrandName]),
			ProductName:    strings.TrimSpace(row[ColumnProductName]),
			WholesalePrice: row[ColumnWholesalePrice],
			RetailPrice:    row[ColumnRetailPrice],
			Row:            rowNum,
		}
		if hasQuantity {
			raw := strings.TrimSpace(row[ColumnQuantity])
			if raw != "" {
				qty, err := strconv.Atoi(raw)
				if err != nil || qty < 0 {
					rowErrs = append(rowErrs, LineError{
						Row:     rowNum,
						SKU:     line.SKU,
						Code:    ErrCodeLineRejected,
						Message: fmt.Sprintf("quantity %q is not a non-negative integer", raw),
					})
					continue
				}
				line.Quantity = qty
			}
		}
		lines = append(lines, line)
	}

	if len(rowErrs) > 0 {
		return nil, &ValidationError{RowErrors: rowErrs}
	}
	return lines, nil
}

// FirstBrandName returns the brand name from the first order line. The
// pipeline assumes a single supplier per run, so this one name drives both
// supplier and brand resolution.
func FirstBrandName(lines []OrderLine) string {
	if len(lines) == 0 {
		return "Unknown Supplier"
	}
	name := strings.TrimSpace(lines[0].BrandName)
	if name == "" {
		return "Unknown Supplier"
	}
	return name
}
