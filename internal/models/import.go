package models

// ImportColumn describes one column of the order import template
type ImportColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Example     string `json:"example"`
}

// ImportTemplate describes the expected shape of an order document
type ImportTemplate struct {
	Columns []ImportColumn `json:"columns"`
}

// ImportFormat identifies a supported order document format
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// OrderImportTemplate returns the template for wholesale order documents
func OrderImportTemplate() ImportTemplate {
	return ImportTemplate{
		Columns: []ImportColumn{
			{Name: "SKU", Description: "Supplier's product code, unique within the order's brand", Required: true, Type: "string", Example: "ABC1"},
			{Name: "Brand Name", Description: "Brand of the product; one brand per order", Required: true, Type: "string", Example: "Acme"},
			{Name: "Product Name", Description: "Display name used when the product must be created", Required: true, Type: "string", Example: "Acme Candle 8oz"},
			{Name: "Quantity", Description: "Units ordered; defaults to 1 when the column is absent", Required: false, Type: "integer", Example: "6"},
			{Name: "Wholesale Price", Description: "Unit cost as a currency string", Required: true, Type: "currency", Example: "$14.70"},
			{Name: "Retail Price", Description: "Suggested retail as a currency string", Required: true, Type: "currency", Example: "$29.40"},
		},
	}
}
