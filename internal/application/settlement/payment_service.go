package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/revenda/backend/internal/domain/billing"
	"github.com/revenda/backend/internal/domain/settlement"
	"github.com/revenda/backend/internal/domain/shared"
)

// PaymentService is the payment ledger: it confirms installment payments by
// creating receipts, and reverses mistaken confirmations by deleting them.
// Receipt and installment are always updated together so the 1:1 link
// between a paid installment and its receipt never breaks.
type PaymentService struct {
	receiptRepo    settlement.ReceiptRepository
	docRepo        billing.DocumentRepository
	eventPublisher shared.EventPublisher
	txManager      shared.TransactionManager
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(receiptRepo settlement.ReceiptRepository, docRepo billing.DocumentRepository) *PaymentService {
	return &PaymentService{
		receiptRepo: receiptRepo,
		docRepo:     docRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetTransactionManager sets the transaction manager that makes the
// receipt/installment pair atomic
func (s *PaymentService) SetTransactionManager(txManager shared.TransactionManager) {
	s.txManager = txManager
}

// inTransaction runs fn through the transaction manager when one is
// configured, directly otherwise
func (s *PaymentService) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txManager == nil {
		return fn(ctx)
	}
	return s.txManager.WithinTransaction(ctx, fn)
}

// ConfirmPayment settles one pending installment of a document: a receipt
// with the next receipt number is created with customer and product
// snapshots, and the installment flips to paid with the payment date and
// receipt link.
func (s *PaymentService) ConfirmPayment(ctx context.Context, documentID uuid.UUID, installmentOrdinal int) (*ReceiptResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	inst, err := doc.Installment(installmentOrdinal)
	if err != nil {
		return nil, err
	}
	if inst.IsPaid() {
		return nil, shared.ErrAlreadyPaid
	}

	number, err := s.receiptRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	paidAt := time.Now()
	receipt, err := settlement.NewReceipt(
		number,
		doc.ID,
		doc.Number,
		inst.Ordinal,
		inst.Label,
		doc.CustomerName,
		doc.CustomerIDNumber,
		doc.CustomerPhone,
		doc.Product.Description(),
		inst.Amount,
		paidAt,
	)
	if err != nil {
		return nil, err
	}

	if err := doc.ConfirmInstallment(installmentOrdinal, number, paidAt); err != nil {
		return nil, err
	}

	if err := s.inTransaction(ctx, func(txCtx context.Context) error {
		if err := s.receiptRepo.Save(txCtx, receipt); err != nil {
			return err
		}
		return s.docRepo.Save(txCtx, doc)
	}); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, receipt)

	response := ToReceiptResponse(receipt)
	return &response, nil
}

// ReverseReceipt deletes a receipt and reverts the linked installment to
// pending, clearing its payment date and receipt link. A later confirmation
// allocates a fresh receipt number; numbers are never reused.
func (s *PaymentService) ReverseReceipt(ctx context.Context, receiptID uuid.UUID) error {
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return err
	}

	doc, err := s.docRepo.FindByID(ctx, receipt.DocumentID)
	if err != nil {
		return err
	}
	if err := doc.RevertInstallment(receipt.InstallmentOrdinal); err != nil {
		return err
	}

	if err := s.inTransaction(ctx, func(txCtx context.Context) error {
		if err := s.receiptRepo.Delete(txCtx, receipt.ID); err != nil {
			return err
		}
		return s.docRepo.Save(txCtx, doc)
	}); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, settlement.NewReceiptReversedEvent(receipt))
	}

	return nil
}

// GetByID retrieves a receipt by ID
func (s *PaymentService) GetByID(ctx context.Context, receiptID uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	response := ToReceiptResponse(receipt)
	return &response, nil
}

// List retrieves receipts with filtering and pagination
func (s *PaymentService) List(ctx context.Context, filter ReceiptListFilter) ([]ReceiptResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "number"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	if filter.DocumentID != nil {
		receipts, err := s.receiptRepo.FindByDocument(ctx, *filter.DocumentID)
		if err != nil {
			return nil, 0, err
		}
		responses := make([]ReceiptResponse, len(receipts))
		for idx := range receipts {
			responses[idx] = ToReceiptResponse(&receipts[idx])
		}
		return responses, int64(len(responses)), nil
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	receipts, err := s.receiptRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.receiptRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReceiptResponse, len(receipts))
	for idx := range receipts {
		responses[idx] = ToReceiptResponse(&receipts[idx])
	}
	return responses, total, nil
}

// publishEvents publishes and clears an aggregate's pending domain events
func (s *PaymentService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}
