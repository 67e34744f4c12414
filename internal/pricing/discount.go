// Package pricing implements the discount calculator. All currency
// math uses fixed-point decimals so repeated percentage application
// never accumulates binary floating point drift.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/smartfc/football-center/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Quote is the result of applying a discount code to an amount.
type Quote struct {
	OriginalAmount     decimal.Decimal `json:"original_amount"`
	DiscountCode       string          `json:"discount_code"`
	DiscountPercentage uint32          `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	FinalAmount        decimal.Decimal `json:"final_amount"`
}

// Apply computes the discounted amount for the given code. The caller
// resolves the code to a Discount first; a nil or inactive discount
// fails with ErrInvalidCode, a non-positive amount with
// ErrInvalidAmount. Amounts are rounded to two decimal places, the
// precision of the stored price columns.
func Apply(d *model.Discount, amount decimal.Decimal) (Quote, error) {
	if d == nil || !d.Active {
		return Quote{}, model.ErrInvalidCode
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return Quote{}, model.ErrInvalidAmount
	}
	pct := decimal.NewFromInt(int64(d.Percentage))
	discount := amount.Mul(pct).Div(hundred).Round(2)
	return Quote{
		OriginalAmount:     amount,
		DiscountCode:       d.Code,
		DiscountPercentage: d.Percentage,
		DiscountAmount:     discount,
		FinalAmount:        amount.Sub(discount),
	}, nil
}
