package services

import (
	"github.com/sirupsen/logrus"

	"stock-order-service/internal/models"
)

// Reconciler merges matched and newly created products into a single
// quantity-annotated line set for stock-order submission.
type Reconciler struct {
	log *logrus.Logger
}

// NewReconciler creates a new reconciler
func NewReconciler(log *logrus.Logger) *Reconciler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reconciler{log: log}
}

// Merge unifies matched and created lines into reconciled lines.
//
// Quantity policy: a matched line keeps the quantity from its original order
// line, never the catalog's unrelated inventory count; a created line keeps
// its own quantity, defaulting to 1 when the order carried none. Unit cost of
// matched lines is cleaned leniently from the order's wholesale price string
// (an unparseable catalog-era price warns and degrades to zero rather than
// failing the line). Rows without a product id are dropped.
func (r *Reconciler) Merge(matched []models.MatchedLine, created []models.ReconciledLine) []models.ReconciledLine {
	out := make([]models.ReconciledLine, 0, len(matched)+len(created))

	for _, m := range matched {
		if m.Product.ID == "" {
			r.log.WithField("sku", m.Line.SKU).Warn("Dropping matched row without a product id")
			continue
		}
		qty := m.Line.Quantity
		if qty == 0 {
			qty = 1
		}
		out = append(out, models.ReconciledLine{
			ProductID:    m.Product.ID,
			SupplierCode: m.Product.SupplierCode,
			Quantity:     qty,
			UnitCost:     CleanPrice(m.Line.WholesalePrice, r.log),
			BrandName:    m.Line.BrandName,
		})
	}

	for _, c := range created {
		if c.ProductID == "" {
			r.log.WithField("sku", c.SupplierCode).Warn("Dropping created row without a product id")
			continue
		}
		if c.Quantity == 0 {
			c.Quantity = 1
		}
		out = append(out, c)
	}

	return out
}
