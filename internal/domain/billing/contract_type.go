package billing

import "github.com/shopspring/decimal"

// ContractType represents the payment plan agreed with the customer
type ContractType string

const (
	// ContractOrder is a single-payment-on-order sale ("Encomenda")
	ContractOrder ContractType = "ORDER"
	// ContractTwoInstallments spreads payment over two installments
	ContractTwoInstallments ContractType = "TWO_INSTALLMENTS"
	// ContractThreeInstallments spreads payment over three installments
	ContractThreeInstallments ContractType = "THREE_INSTALLMENTS"
)

// IsValid checks if the contract type is known
func (c ContractType) IsValid() bool {
	switch c {
	case ContractOrder, ContractTwoInstallments, ContractThreeInstallments:
		return true
	}
	return false
}

// String returns the string representation of ContractType
func (c ContractType) String() string {
	return string(c)
}

// SurchargeMultiplier returns the factor applied to the base price
// to compensate for deferred payment
func (c ContractType) SurchargeMultiplier() decimal.Decimal {
	switch c {
	case ContractTwoInstallments:
		return decimal.NewFromFloat(1.07)
	case ContractThreeInstallments:
		return decimal.NewFromFloat(1.15)
	default:
		return decimal.NewFromInt(1)
	}
}
