package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/smartfc/football-center/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestApply(t *testing.T) {
	welcome10 := &model.Discount{Code: "WELCOME10", Percentage: 10, Active: true}
	inactive := &model.Discount{Code: "OLD20", Percentage: 20, Active: false}

	tests := []struct {
		name         string
		discount     *model.Discount
		amount       decimal.Decimal
		wantErr      error
		wantDiscount string
		wantFinal    string
	}{
		{"ten percent off 100", welcome10, dec("100.00"), nil, "10.00", "90.00"},
		{"rounds half up", welcome10, dec("0.05"), nil, "0.01", "0.04"},
		{"full discount", &model.Discount{Code: "FREE", Percentage: 100, Active: true}, dec("59.99"), nil, "59.99", "0.00"},
		{"zero percent", &model.Discount{Code: "NOOP", Percentage: 0, Active: true}, dec("42.00"), nil, "0.00", "42.00"},
		{"nil discount", nil, dec("100.00"), model.ErrInvalidCode, "", ""},
		{"inactive discount", inactive, dec("100.00"), model.ErrInvalidCode, "", ""},
		{"zero amount", welcome10, decimal.Zero, model.ErrInvalidAmount, "", ""},
		{"negative amount", welcome10, dec("-5.00"), model.ErrInvalidAmount, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Apply(tt.discount, tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !q.DiscountAmount.Equal(dec(tt.wantDiscount)) {
				t.Errorf("DiscountAmount = %s, want %s", q.DiscountAmount, tt.wantDiscount)
			}
			if !q.FinalAmount.Equal(dec(tt.wantFinal)) {
				t.Errorf("FinalAmount = %s, want %s", q.FinalAmount, tt.wantFinal)
			}
			if !q.OriginalAmount.Equal(tt.amount) {
				t.Errorf("OriginalAmount = %s, want %s", q.OriginalAmount, tt.amount)
			}
		})
	}
}

// Discount plus final amount must reconstruct the original exactly.
// Binary floats would drift here; decimals must not.
func TestApplyAmountsAddUp(t *testing.T) {
	d := &model.Discount{Code: "SPRING15", Percentage: 15, Active: true}
	for _, amount := range []string{"0.01", "9.99", "33.33", "100.00", "12345.67"} {
		q, err := Apply(d, dec(amount))
		if err != nil {
			t.Fatalf("Apply(%s) failed: %v", amount, err)
		}
		sum := q.DiscountAmount.Add(q.FinalAmount)
		if !sum.Equal(dec(amount)) {
			t.Errorf("discount %s + final %s = %s, want %s",
				q.DiscountAmount, q.FinalAmount, sum, amount)
		}
	}
}
