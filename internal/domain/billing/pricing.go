package billing

import "github.com/shopspring/decimal"

// CalculatePayable converts a base selling price, contract type and discount
// into the final payable amount: base * surcharge - discount, floored at zero.
// Inputs are expected non-negative; the caller coerces invalid numbers to zero.
func CalculatePayable(basePrice decimal.Decimal, contractType ContractType, discount decimal.Decimal) decimal.Decimal {
	payable := basePrice.Mul(contractType.SurchargeMultiplier()).Sub(discount)
	if payable.IsNegative() {
		return decimal.Zero
	}
	return payable.Round(2)
}
