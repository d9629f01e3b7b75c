package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	billingapp "github.com/revenda/backend/internal/application/billing"
	"github.com/revenda/backend/internal/domain/billing"
	"github.com/revenda/backend/internal/interfaces/http/middleware"
)

// DocumentHandler handles document-related API endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *billingapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *billingapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// RegisterRoutes registers document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	{
		documents.GET("", h.List)
		documents.GET("/:id", h.GetByID)
		documents.POST("", h.Issue)
		documents.PUT("/:id", h.Update)
		documents.DELETE("/:id", h.Delete)
		documents.POST("/:id/convert", h.Convert)
	}
}

// IssueDocumentRequest represents a request to issue a new document
type IssueDocumentRequest struct {
	CustomerName     string  `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerIDNumber string  `json:"customer_id_number" binding:"max=50"`
	CustomerPhone    string  `json:"customer_phone" binding:"max=30"`
	ItemID           string  `json:"item_id" binding:"required,uuid"`
	ContractType     string  `json:"contract_type" binding:"required,oneof=ORDER TWO_INSTALLMENTS THREE_INSTALLMENTS"`
	BasePrice        float64 `json:"base_price" binding:"required,gt=0"`
	Discount         float64 `json:"discount" binding:"gte=0"`
	IsFinal          bool    `json:"is_final"`
}

// UpdateDocumentRequest represents a request to update a document.
// Setting is_final on a proforma finalizes it in place.
type UpdateDocumentRequest struct {
	CustomerName     string  `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerIDNumber string  `json:"customer_id_number" binding:"max=50"`
	CustomerPhone    string  `json:"customer_phone" binding:"max=30"`
	ItemID           string  `json:"item_id" binding:"required,uuid"`
	ContractType     string  `json:"contract_type" binding:"required,oneof=ORDER TWO_INSTALLMENTS THREE_INSTALLMENTS"`
	BasePrice        float64 `json:"base_price" binding:"required,gt=0"`
	Discount         float64 `json:"discount" binding:"gte=0"`
	IsFinal          bool    `json:"is_final"`
}

// Issue creates a new proforma or final document
func (h *DocumentHandler) Issue(c *gin.Context) {
	var req IssueDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	appReq := billingapp.IssueDocumentRequest{
		CustomerName:     req.CustomerName,
		CustomerIDNumber: req.CustomerIDNumber,
		CustomerPhone:    req.CustomerPhone,
		ItemID:           itemID,
		ContractType:     billing.ContractType(req.ContractType),
		BasePrice:        decimal.NewFromFloat(req.BasePrice),
		Discount:         decimal.NewFromFloat(req.Discount),
		IsFinal:          req.IsFinal,
	}

	doc, err := h.documentService.Issue(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, doc)
}

// GetByID retrieves a document by its ID
func (h *DocumentHandler) GetByID(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// List retrieves documents with pagination and optional kind filtering
func (h *DocumentHandler) List(c *gin.Context) {
	req := listRequestFromQuery(c)

	filter := billingapp.DocumentListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	if kindParam := c.Query("kind"); kindParam != "" {
		kind := billing.DocumentKind(kindParam)
		if !kind.IsValid() {
			h.BadRequest(c, "Invalid document kind")
			return
		}
		filter.Kind = &kind
	}

	docs, total, err := h.documentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, docs, total, req.Page, req.PageSize)
}

// Update edits a document
func (h *DocumentHandler) Update(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	appReq := billingapp.UpdateDocumentRequest{
		CustomerName:     req.CustomerName,
		CustomerIDNumber: req.CustomerIDNumber,
		CustomerPhone:    req.CustomerPhone,
		ItemID:           itemID,
		ContractType:     billing.ContractType(req.ContractType),
		BasePrice:        decimal.NewFromFloat(req.BasePrice),
		Discount:         decimal.NewFromFloat(req.Discount),
		IsFinal:          req.IsFinal,
	}

	doc, err := h.documentService.Update(c.Request.Context(), documentID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// Convert turns a proforma into a final document, retaining the proforma
func (h *DocumentHandler) Convert(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	doc, err := h.documentService.ConvertToFinal(c.Request.Context(), documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, doc)
}

// Delete removes a document and releases the item reservation when no other
// final document holds it
func (h *DocumentHandler) Delete(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), documentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
