package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	settlementapp "github.com/revenda/backend/internal/application/settlement"
)

// ReceiptHandler handles receipt-related API endpoints
type ReceiptHandler struct {
	BaseHandler
	paymentService *settlementapp.PaymentService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(paymentService *settlementapp.PaymentService) *ReceiptHandler {
	return &ReceiptHandler{
		paymentService: paymentService,
	}
}

// RegisterRoutes registers receipt routes. The confirm route lives under
// documents because it is addressed by document and installment ordinal.
func (h *ReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/receipts")
	{
		receipts.GET("", h.List)
		receipts.GET("/:id", h.GetByID)
		receipts.DELETE("/:id", h.Delete)
	}

	rg.POST("/documents/:id/installments/:ordinal/confirm", h.ConfirmInstallment)
}

// ConfirmInstallment confirms payment of one installment, issuing a receipt
func (h *ReceiptHandler) ConfirmInstallment(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	ordinal, err := strconv.Atoi(c.Param("ordinal"))
	if err != nil || ordinal <= 0 {
		h.BadRequest(c, "Invalid installment ordinal")
		return
	}

	receipt, err := h.paymentService.ConfirmPayment(c.Request.Context(), documentID, ordinal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// GetByID retrieves a receipt by its ID
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	receipt, err := h.paymentService.GetByID(c.Request.Context(), receiptID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// List retrieves receipts with pagination and optional document filtering
func (h *ReceiptHandler) List(c *gin.Context) {
	req := listRequestFromQuery(c)

	filter := settlementapp.ReceiptListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	if docParam := c.Query("document_id"); docParam != "" {
		documentID, err := uuid.Parse(docParam)
		if err != nil {
			h.BadRequest(c, "Invalid document ID format")
			return
		}
		filter.DocumentID = &documentID
	}

	receipts, total, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, receipts, total, req.Page, req.PageSize)
}

// Delete reverses a receipt, reverting its installment to pending
func (h *ReceiptHandler) Delete(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	if err := h.paymentService.ReverseReceipt(c.Request.Context(), receiptID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
