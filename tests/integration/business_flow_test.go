package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	billingapp "github.com/revenda/backend/internal/application/billing"
	inventoryapp "github.com/revenda/backend/internal/application/inventory"
	reportapp "github.com/revenda/backend/internal/application/report"
	settlementapp "github.com/revenda/backend/internal/application/settlement"
	"github.com/revenda/backend/internal/domain/billing"
	"github.com/revenda/backend/internal/domain/inventory"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/revenda/backend/internal/infrastructure/event"
	"github.com/revenda/backend/internal/infrastructure/persistence"
)

// flowSetup wires the full service graph over a real sqlite database, the
// same way cmd/server does it.
type flowSetup struct {
	Documents *billingapp.DocumentService
	Payments  *settlementapp.PaymentService
	Catalog   *inventoryapp.CatalogService
	Reports   *reportapp.ReportService
}

func newFlowSetup(t *testing.T) *flowSetup {
	t.Helper()

	db := newTestDB(t)

	docRepo := persistence.NewGormDocumentRepository(db.DB)
	itemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	bus := event.NewInMemoryEventBus(zap.NewNop())

	documents := billingapp.NewDocumentService(docRepo, itemRepo)
	documents.SetEventPublisher(bus)
	documents.SetTransactionManager(txManager)

	payments := settlementapp.NewPaymentService(receiptRepo, docRepo)
	payments.SetEventPublisher(bus)
	payments.SetTransactionManager(txManager)

	catalog := inventoryapp.NewCatalogService(itemRepo)
	catalog.SetEventPublisher(bus)

	reports := reportapp.NewReportService(docRepo, receiptRepo, itemRepo)
	bus.Subscribe(reports, reports.EventTypes()...)

	return &flowSetup{
		Documents: documents,
		Payments:  payments,
		Catalog:   catalog,
		Reports:   reports,
	}
}

func (s *flowSetup) registerItem(t *testing.T, brand, model string, cost int64) uuid.UUID {
	t.Helper()

	item, err := s.Catalog.Register(context.Background(), inventoryapp.RegisterItemRequest{
		DeviceType: "smartphone",
		Brand:      brand,
		Model:      model,
		Storage:    "256GB",
		Color:      "Black",
		Condition:  inventory.ConditionNew,
		TotalCost:  decimal.NewFromInt(cost),
	})
	require.NoError(t, err)
	return item.ID
}

// TestSaleLifecycle walks a sale from stock registration through proforma,
// conversion, payment and reversal, checking reservations and report
// aggregates at each step.
func TestSaleLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newFlowSetup(t)

	phoneA := s.registerItem(t, "Samsung", "Galaxy S24", 70000)
	phoneB := s.registerItem(t, "Apple", "iPhone 15", 90000)

	// Quote phone A on a two-installment plan. A proforma never reserves.
	proforma, err := s.Documents.Issue(ctx, billingapp.IssueDocumentRequest{
		CustomerName:     "Maria dos Santos",
		CustomerIDNumber: "004512367LA041",
		CustomerPhone:    "+244 923 111 222",
		ItemID:           phoneA,
		ContractType:     billing.ContractTwoInstallments,
		BasePrice:        decimal.NewFromInt(100000),
		Discount:         decimal.Zero,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), proforma.Number)
	assert.Equal(t, billing.KindProforma, proforma.Kind)
	assert.True(t, decimal.NewFromInt(107000).Equal(proforma.PayableAmount))
	require.Len(t, proforma.Installments, 3)
	assert.True(t, decimal.NewFromInt(21400).Equal(proforma.Installments[0].Amount))
	assert.True(t, decimal.NewFromInt(42800).Equal(proforma.Installments[1].Amount))
	assert.True(t, decimal.NewFromInt(42800).Equal(proforma.Installments[2].Amount))

	available, err := s.Catalog.ListAvailable(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, available, 2, "a proforma must not reserve its item")

	// Sell phone B outright. Finals start their own numbering sequence.
	orderSale, err := s.Documents.Issue(ctx, billingapp.IssueDocumentRequest{
		CustomerName:     "Joaquim Manuel",
		CustomerIDNumber: "001234567LA038",
		CustomerPhone:    "+244 912 333 444",
		ItemID:           phoneB,
		ContractType:     billing.ContractOrder,
		BasePrice:        decimal.NewFromInt(120000),
		Discount:         decimal.Zero,
		IsFinal:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), orderSale.Number)
	assert.Equal(t, billing.KindFinal, orderSale.Kind)
	assert.True(t, decimal.NewFromInt(120000).Equal(orderSale.PayableAmount))
	require.Len(t, orderSale.Installments, 2)
	assert.True(t, decimal.NewFromInt(96000).Equal(orderSale.Installments[0].Amount))
	assert.True(t, decimal.NewFromInt(24000).Equal(orderSale.Installments[1].Amount))

	// Convert the proforma. The final gets the next final number and the
	// proforma stays behind, marked converted.
	final, err := s.Documents.ConvertToFinal(ctx, proforma.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), final.Number)
	assert.Equal(t, billing.KindFinal, final.Kind)

	retained, err := s.Documents.GetByID(ctx, proforma.ID)
	require.NoError(t, err)
	assert.True(t, retained.ConvertedToFinal)

	_, err = s.Documents.ConvertToFinal(ctx, proforma.ID)
	assert.ErrorIs(t, err, shared.ErrAlreadyConverted)

	available, err = s.Catalog.ListAvailable(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, available, "both items are now tied to finals")

	summary, err := s.Reports.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "227000.00 AOA", summary.Revenue.String())
	assert.Equal(t, "0.00 AOA", summary.Collected.String())
	assert.Equal(t, int64(2), summary.FinalDocuments)
	assert.Equal(t, int64(1), summary.Proformas)
	assert.Equal(t, int64(2), summary.ItemsReserved)
	assert.Equal(t, int64(0), summary.ItemsInStock)

	// Collect the entrada on the installment sale and the order payment.
	receipt1, err := s.Payments.ConfirmPayment(ctx, final.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), receipt1.Number)
	assert.True(t, decimal.NewFromInt(21400).Equal(receipt1.Amount))
	assert.Equal(t, final.Number, receipt1.DocumentNumber)
	assert.Equal(t, "Maria dos Santos", receipt1.CustomerName)

	receipt2, err := s.Payments.ConfirmPayment(ctx, orderSale.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), receipt2.Number)
	assert.True(t, decimal.NewFromInt(96000).Equal(receipt2.Amount))

	_, err = s.Payments.ConfirmPayment(ctx, final.ID, 1)
	assert.ErrorIs(t, err, shared.ErrAlreadyPaid)

	summary, err = s.Reports.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "117400.00 AOA", summary.Collected.String())
	assert.Equal(t, "109600.00 AOA", summary.Outstanding.String())
	assert.Equal(t, int64(2), summary.Receipts)

	// Reverse the order payment. The installment reopens and the aggregates
	// drop back, proving the cache was invalidated by the event.
	require.NoError(t, s.Payments.ReverseReceipt(ctx, receipt2.ID))

	reopened, err := s.Documents.GetByID(ctx, orderSale.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", reopened.Installments[0].Status)
	assert.Nil(t, reopened.Installments[0].ReceiptNumber)

	summary, err = s.Reports.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "21400.00 AOA", summary.Collected.String())
	assert.Equal(t, int64(1), summary.Receipts)

	// Reserved stock cannot be removed while a final references it.
	err = s.Catalog.Remove(ctx, phoneA)
	assert.ErrorIs(t, err, shared.ErrItemReserved)

	// Deleting the order sale releases phone B back to the catalog.
	require.NoError(t, s.Documents.Delete(ctx, orderSale.ID))

	available, err = s.Catalog.ListAvailable(ctx, nil)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, phoneB, available[0].ID)

	require.NoError(t, s.Catalog.Remove(ctx, phoneB))
}

// TestReceiptNumbersNeverReused confirms a fresh number is allocated when a
// reversed installment is paid again.
func TestReceiptNumbersNeverReused(t *testing.T) {
	ctx := context.Background()
	s := newFlowSetup(t)

	itemID := s.registerItem(t, "Xiaomi", "Redmi Note 13", 45000)

	sale, err := s.Documents.Issue(ctx, billingapp.IssueDocumentRequest{
		CustomerName:     "Ana Paula Neto",
		CustomerIDNumber: "007654321LA012",
		CustomerPhone:    "+244 931 555 666",
		ItemID:           itemID,
		ContractType:     billing.ContractOrder,
		BasePrice:        decimal.NewFromInt(60000),
		Discount:         decimal.NewFromInt(5000),
		IsFinal:          true,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(55000).Equal(sale.PayableAmount))

	first, err := s.Payments.ConfirmPayment(ctx, sale.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Number)

	require.NoError(t, s.Payments.ReverseReceipt(ctx, first.ID))

	second, err := s.Payments.ConfirmPayment(ctx, sale.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Number, "reversed numbers must not be reused")
}

// TestEditFlipFinalizesInPlace covers the edit path where ticking "final"
// on a proforma finalizes the same document instead of creating a copy.
func TestEditFlipFinalizesInPlace(t *testing.T) {
	ctx := context.Background()
	s := newFlowSetup(t)

	itemID := s.registerItem(t, "Huawei", "P60 Pro", 80000)

	proforma, err := s.Documents.Issue(ctx, billingapp.IssueDocumentRequest{
		CustomerName:     "Domingos Ferreira",
		CustomerIDNumber: "009876543LA055",
		CustomerPhone:    "+244 945 777 888",
		ItemID:           itemID,
		ContractType:     billing.ContractThreeInstallments,
		BasePrice:        decimal.NewFromInt(100000),
		Discount:         decimal.Zero,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(115000).Equal(proforma.PayableAmount))
	require.Len(t, proforma.Installments, 4)

	flipped, err := s.Documents.Update(ctx, proforma.ID, billingapp.UpdateDocumentRequest{
		CustomerName:     "Domingos Ferreira",
		CustomerIDNumber: "009876543LA055",
		CustomerPhone:    "+244 945 777 888",
		ItemID:           itemID,
		ContractType:     billing.ContractThreeInstallments,
		BasePrice:        decimal.NewFromInt(100000),
		Discount:         decimal.Zero,
		IsFinal:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, proforma.ID, flipped.ID)
	assert.Equal(t, billing.KindFinal, flipped.Kind)
	assert.Equal(t, int64(1), flipped.Number, "finalizing allocates from the final sequence")
	assert.False(t, flipped.ConvertedToFinal)

	item, err := s.Catalog.GetByID(ctx, itemID)
	require.NoError(t, err)
	assert.True(t, item.Reserved)
}
