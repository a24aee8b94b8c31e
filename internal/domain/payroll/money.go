package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money formats an amount as a left-justified 15-wide field with two decimals.
// Rounding is half-up on the shortest decimal form of the float, so 1.005
// renders as 1.01 rather than the binary-exact 1.00.
func Money(amount float64) string {
	return fmt.Sprintf("%-15s", Amount(amount))
}

// Amount is Money without padding.
func Amount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
