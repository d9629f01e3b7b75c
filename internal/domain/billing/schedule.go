package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// planLine describes one installment of a payment plan as a share of the
// payable amount due a number of calendar days after the issue date
type planLine struct {
	share decimal.Decimal
	days  int
	label string
}

// installmentPlan returns the payment plan for a contract type
func installmentPlan(contractType ContractType) []planLine {
	switch contractType {
	case ContractTwoInstallments:
		return []planLine{
			{share: decimal.NewFromFloat(0.20), days: 0, label: "Initial"},
			{share: decimal.NewFromFloat(0.40), days: 30, label: "1st installment"},
			{share: decimal.NewFromFloat(0.40), days: 60, label: "Final"},
		}
	case ContractThreeInstallments:
		return []planLine{
			{share: decimal.NewFromFloat(0.25), days: 0, label: "Initial"},
			{share: decimal.NewFromFloat(0.25), days: 30, label: "1st installment"},
			{share: decimal.NewFromFloat(0.25), days: 60, label: "2nd installment"},
			{share: decimal.NewFromFloat(0.25), days: 90, label: "Final"},
		}
	default:
		return []planLine{
			{share: decimal.NewFromFloat(0.80), days: 0, label: "Initial"},
			{share: decimal.NewFromFloat(0.20), days: 30, label: "Final"},
		}
	}
}

// GenerateSchedule derives the dated installment schedule for a payable amount.
// Due dates use calendar-day addition, so month and year boundaries roll over.
// The last line absorbs the rounding remainder so the lines always sum to the
// payable amount exactly.
func GenerateSchedule(documentID uuid.UUID, payable decimal.Decimal, contractType ContractType, issueDate time.Time) []Installment {
	plan := installmentPlan(contractType)
	now := time.Now()

	installments := make([]Installment, len(plan))
	allocated := decimal.Zero
	for idx, line := range plan {
		amount := payable.Mul(line.share).Round(2)
		if idx == len(plan)-1 {
			amount = payable.Sub(allocated)
		}
		allocated = allocated.Add(amount)

		installments[idx] = Installment{
			ID:         uuid.New(),
			DocumentID: documentID,
			Ordinal:    idx + 1,
			Label:      line.label,
			DueDate:    issueDate.AddDate(0, 0, line.days),
			Amount:     amount,
			Status:     InstallmentPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}
	return installments
}
