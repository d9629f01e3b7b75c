package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchedule_OrderPlan(t *testing.T) {
	documentID := uuid.New()
	issueDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	payable := decimal.NewFromInt(100000)

	installments := GenerateSchedule(documentID, payable, ContractOrder, issueDate)
	require.Len(t, installments, 2)

	assert.True(t, decimal.NewFromInt(80000).Equal(installments[0].Amount))
	assert.True(t, decimal.NewFromInt(20000).Equal(installments[1].Amount))
	assert.Equal(t, issueDate, installments[0].DueDate)
	assert.Equal(t, issueDate.AddDate(0, 0, 30), installments[1].DueDate)
}

func TestGenerateSchedule_TwoInstallmentsPlan(t *testing.T) {
	documentID := uuid.New()
	issueDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	// 100000 base at the two-installment surcharge
	payable := decimal.NewFromInt(107000)

	installments := GenerateSchedule(documentID, payable, ContractTwoInstallments, issueDate)
	require.Len(t, installments, 3)

	assert.True(t, decimal.NewFromInt(21400).Equal(installments[0].Amount))
	assert.True(t, decimal.NewFromInt(42800).Equal(installments[1].Amount))
	assert.True(t, decimal.NewFromInt(42800).Equal(installments[2].Amount))

	assert.Equal(t, issueDate, installments[0].DueDate)
	assert.Equal(t, issueDate.AddDate(0, 0, 30), installments[1].DueDate)
	assert.Equal(t, issueDate.AddDate(0, 0, 60), installments[2].DueDate)
}

func TestGenerateSchedule_ThreeInstallmentsPlan(t *testing.T) {
	documentID := uuid.New()
	issueDate := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	payable := decimal.NewFromInt(115000)

	installments := GenerateSchedule(documentID, payable, ContractThreeInstallments, issueDate)
	require.Len(t, installments, 4)

	for _, inst := range installments {
		assert.True(t, decimal.NewFromInt(28750).Equal(inst.Amount))
	}
	assert.Equal(t, issueDate.AddDate(0, 0, 90), installments[3].DueDate)
}

func TestGenerateSchedule_LastLineAbsorbsRounding(t *testing.T) {
	documentID := uuid.New()
	issueDate := time.Now()
	payable := decimal.RequireFromString("333.33")

	installments := GenerateSchedule(documentID, payable, ContractOrder, issueDate)
	require.Len(t, installments, 2)

	// 80% of 333.33 rounds to 266.66; the final line gets the difference
	assert.True(t, decimal.RequireFromString("266.66").Equal(installments[0].Amount))
	assert.True(t, decimal.RequireFromString("66.67").Equal(installments[1].Amount))

	sum := decimal.Zero
	for _, inst := range installments {
		sum = sum.Add(inst.Amount)
	}
	assert.True(t, payable.Equal(sum), "installments must sum to the payable amount")
}

func TestGenerateSchedule_SumsExactlyForAwkwardAmounts(t *testing.T) {
	issueDate := time.Now()
	amounts := []string{"0.01", "1", "99.99", "1000.01", "123456.78"}
	contracts := []ContractType{ContractOrder, ContractTwoInstallments, ContractThreeInstallments}

	for _, raw := range amounts {
		for _, contractType := range contracts {
			payable := decimal.RequireFromString(raw)
			installments := GenerateSchedule(uuid.New(), payable, contractType, issueDate)

			sum := decimal.Zero
			for _, inst := range installments {
				sum = sum.Add(inst.Amount)
			}
			assert.True(t, payable.Equal(sum),
				"%s %s: expected sum %s, got %s", contractType, raw, payable, sum)
		}
	}
}

func TestGenerateSchedule_DueDatesRollOverMonthEnd(t *testing.T) {
	documentID := uuid.New()
	issueDate := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	installments := GenerateSchedule(documentID, decimal.NewFromInt(1000), ContractTwoInstallments, issueDate)
	require.Len(t, installments, 3)

	assert.Equal(t, time.Date(2027, 1, 30, 0, 0, 0, 0, time.UTC), installments[1].DueDate)
	assert.Equal(t, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), installments[2].DueDate)
}

func TestGenerateSchedule_InitialState(t *testing.T) {
	documentID := uuid.New()
	installments := GenerateSchedule(documentID, decimal.NewFromInt(500), ContractThreeInstallments, time.Now())

	for idx, inst := range installments {
		assert.Equal(t, idx+1, inst.Ordinal)
		assert.Equal(t, documentID, inst.DocumentID)
		assert.Equal(t, InstallmentPending, inst.Status)
		assert.Nil(t, inst.PaidAt)
		assert.Nil(t, inst.ReceiptNumber)
		assert.NotEqual(t, uuid.Nil, inst.ID)
	}
}
