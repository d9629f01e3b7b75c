package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	inventoryapp "github.com/revenda/backend/internal/application/inventory"
	"github.com/revenda/backend/internal/domain/inventory"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/revenda/backend/internal/interfaces/http/middleware"
)

// InventoryHandler handles inventory-related API endpoints
type InventoryHandler struct {
	BaseHandler
	catalogService *inventoryapp.CatalogService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(catalogService *inventoryapp.CatalogService) *InventoryHandler {
	return &InventoryHandler{
		catalogService: catalogService,
	}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/inventory/items")
	{
		items.GET("", h.List)
		items.GET("/available", h.ListAvailable)
		items.GET("/:id", h.GetByID)
		items.POST("", h.Register)
		items.DELETE("/:id", h.Delete)
	}
}

// RegisterItemRequest represents a request to register a device in stock
type RegisterItemRequest struct {
	DeviceType string  `json:"device_type" binding:"required,min=1,max=50"`
	Brand      string  `json:"brand" binding:"required,min=1,max=100"`
	Model      string  `json:"model" binding:"required,min=1,max=100"`
	Storage    string  `json:"storage" binding:"max=50"`
	Color      string  `json:"color" binding:"max=50"`
	Condition  string  `json:"condition" binding:"required"`
	Specs      string  `json:"specs" binding:"max=2000"`
	TotalCost  float64 `json:"total_cost" binding:"gte=0"`
}

// Register adds a device to the stock
func (h *InventoryHandler) Register(c *gin.Context) {
	var req RegisterItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	condition := inventory.DeviceCondition(req.Condition)
	if !condition.IsValid() {
		h.BadRequest(c, "Invalid device condition")
		return
	}

	item, err := h.catalogService.Register(c.Request.Context(), inventoryapp.RegisterItemRequest{
		DeviceType: req.DeviceType,
		Brand:      req.Brand,
		Model:      req.Model,
		Storage:    req.Storage,
		Color:      req.Color,
		Condition:  condition,
		Specs:      req.Specs,
		TotalCost:  decimal.NewFromFloat(req.TotalCost),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// List retrieves all inventory items with pagination
func (h *InventoryHandler) List(c *gin.Context) {
	req := listRequestFromQuery(c)

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  make(map[string]interface{}),
	}

	if reserved := c.Query("reserved"); reserved != "" {
		filter.Filters["reserved"] = reserved == "true"
	}

	items, total, err := h.catalogService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, req.Page, req.PageSize)
}

// ListAvailable retrieves the unreserved items. The include_item query
// parameter additionally returns that item even when reserved, for edit
// screens that must keep showing the document's current device.
func (h *InventoryHandler) ListAvailable(c *gin.Context) {
	var includeItemID *uuid.UUID
	if includeParam := c.Query("include_item"); includeParam != "" {
		itemID, err := uuid.Parse(includeParam)
		if err != nil {
			h.BadRequest(c, "Invalid item ID format")
			return
		}
		includeItemID = &itemID
	}

	items, err := h.catalogService.ListAvailable(c.Request.Context(), includeItemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// GetByID retrieves a single inventory item
func (h *InventoryHandler) GetByID(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.catalogService.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Delete removes an unreserved item from the stock
func (h *InventoryHandler) Delete(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.catalogService.Remove(c.Request.Context(), itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
