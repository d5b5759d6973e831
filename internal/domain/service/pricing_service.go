package service

import (
	"invoicer/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// PricingService derives line and invoice totals from items. Decimal
// arithmetic keeps currency-like sums free of floating-point drift.
type PricingService interface {
	// ItemTotal returns quantity x unit price. Negative quantity or unit
	// price is rejected with ErrInvalidItem.
	ItemTotal(item entity.Item) (decimal.Decimal, error)

	// InvoiceTotal sums the per-item totals over the ordered sequence.
	// An empty sequence totals zero.
	InvoiceTotal(items []entity.Item) (decimal.Decimal, error)
}
