package models

// EntityRef is a lightweight reference to a named catalog entity (supplier or
// brand) as embedded in product payloads.
type EntityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Supplier represents a supplier record in the POS catalog
type Supplier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Brand represents a brand record in the POS catalog
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogProduct represents a product record in the POS catalog.
// SupplierCode is the supplier's external SKU; together with the brand name it
// identifies a product within one reconciliation run (not enforced globally by
// the catalog, only assumed by the matcher).
type CatalogProduct struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	SupplierCode      string     `json:"supplier_code"`
	SupplyPrice       float64    `json:"supply_price,omitempty"`
	PriceExcludingTax float64    `json:"price_excluding_tax,omitempty"`
	Brand             *EntityRef `json:"brand,omitempty"`
	Supplier          *EntityRef `json:"supplier,omitempty"`
}

// BrandName returns the denormalized brand display name, or "" when the
// product has no brand attached.
func (p CatalogProduct) BrandName() string {
	if p.Brand == nil {
		return ""
	}
	return p.Brand.Name
}

// InventoryRecord represents an inventory level row from the POS catalog
type InventoryRecord struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	OutletID      string  `json:"outlet_id"`
	CurrentAmount float64 `json:"current_amount"`
	ReorderPoint  float64 `json:"reorder_point,omitempty"`
	ReorderAmount float64 `json:"reorder_amount,omitempty"`
	AverageCost   float64 `json:"average_cost,omitempty"`
}

// MatchedLine joins an order line to the catalog product it matched.
// The quantity and prices on the order line travel with the match so they are
// never re-derived downstream.
type MatchedLine struct {
	Product CatalogProduct
	Line    OrderLine
}

// ReconciledLine is the canonical unit fed to stock-order submission.
// It erases the matched/created distinction: ProductID is either an existing
// catalog id or one assigned during creation.
type ReconciledLine struct {
	ProductID    string  `json:"productId"`
	SupplierCode string  `json:"supplierCode"`
	Quantity     int     `json:"quantity"`
	UnitCost     float64 `json:"unitCost"`
	BrandName    string  `json:"brandName"`
}

// StockOrder represents a stock order (consignment) shell in the POS system
type StockOrder struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OutletID   string `json:"outlet_id"`
	SupplierID string `json:"supplier_id"`
	Type       string `json:"type"`
	Status     string `json:"status"`
}

// StockOrderLine is a single line item posted to a stock order
type StockOrderLine struct {
	ProductID string  `json:"product_id"`
	Count     int     `json:"count"`
	Cost      float64 `json:"cost"`
}
