// Package pricing implements the domain's PricingService with decimal arithmetic.
package pricing

import (
	"github.com/shopspring/decimal"

	"invoicer/internal/domain/entity"
	domainerrors "invoicer/internal/domain/errors"
	"invoicer/internal/domain/service"
)

// calculator derives per-item and invoice totals. decimal.Decimal keeps the
// sums exact regardless of item count.
type calculator struct{}

// NewCalculator is the constructor for calculator.
// It returns the implementation as a service.PricingService interface.
func NewCalculator() service.PricingService {
	return &calculator{}
}

// ItemTotal returns quantity x unit price for a single line item.
// Negative quantity or unit price fails with ErrInvalidItem.
func (c *calculator) ItemTotal(item entity.Item) (decimal.Decimal, error) {
	if item.Quantity < 0 {
		return decimal.Zero, domainerrors.ErrInvalidItem.WrapMessage("quantity must not be negative")
	}
	if item.UnitPrice.IsNegative() {
		return decimal.Zero, domainerrors.ErrInvalidItem.WrapMessage("unit price must not be negative")
	}

	return item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)), nil
}

// InvoiceTotal sums the per-item totals over the ordered sequence.
func (c *calculator) InvoiceTotal(items []entity.Item) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		lineTotal, err := c.ItemTotal(item)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(lineTotal)
	}

	return total, nil
}
