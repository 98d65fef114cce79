package handler

import (
	"context"

	appinventory "github.com/distributor/backend/internal/application/inventory"
	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler handles store stock endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *appinventory.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *appinventory.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// AdjustStockRequest represents the body of POST /inventory/adjust
type AdjustStockRequest struct {
	StoreID       string `json:"store_id" binding:"required,uuid"`
	ProductID     string `json:"product_id" binding:"required,uuid"`
	Type          string `json:"type" binding:"required,oneof=in out"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	SalesPersonID string `json:"sales_person_id" binding:"omitempty,uuid"`
	Notes         string `json:"notes" binding:"max=1000"`
}

// SetReorderLevelRequest represents the body of PUT /inventory/store/:id/product/:product_id/reorder-level
type SetReorderLevelRequest struct {
	ReorderLevel *int `json:"reorder_level" binding:"required,min=0"`
}

// ListInventoryQuery represents the query of GET /inventory
type ListInventoryQuery struct {
	dto.ListRequest
	StoreID   string `form:"store_id" binding:"omitempty,uuid"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	LowStock  string `form:"low_stock" binding:"omitempty,oneof=true false"`
}

// LowStockQuery represents the query of GET /inventory/low-stock
type LowStockQuery struct {
	StoreID string `form:"store_id" binding:"omitempty,uuid"`
}

// ListTransactionsQuery represents the query of GET /inventory/transactions
type ListTransactionsQuery struct {
	dto.ListRequest
	StoreID   string `form:"store_id" binding:"omitempty,uuid"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
}

// List godoc
// @Summary      List stock rows
// @Tags         inventory
// @Produce      json
// @Param        page       query int    false "Page number"
// @Param        page_size  query int    false "Page size"
// @Param        store_id   query string false "Store ID"
// @Param        product_id query string false "Product ID"
// @Param        low_stock  query bool   false "Only rows at or below their reorder level"
// @Success      200 {object} dto.Response{data=[]appinventory.InventoryResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}

	var q ListInventoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	q.Normalize()

	filter := appinventory.InventoryListFilter{Page: q.Page, PageSize: q.PageSize}
	filter.StoreID, _ = parseOptionalUUID(q.StoreID)
	filter.ProductID, _ = parseOptionalUUID(q.ProductID)
	if low, _ := parseOptionalBool(q.LowStock); low != nil {
		filter.LowStock = *low
	}

	rows, total, err := h.inventoryService.ListInventory(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, rows, total, q.Page, q.PageSize)
}

// LowStock godoc
// @Summary      List stock rows at or below their reorder level
// @Tags         inventory
// @Produce      json
// @Param        store_id query string false "Store ID"
// @Success      200 {object} dto.Response{data=appinventory.LowStockResponse}
// @Security     BearerAuth
// @Router       /inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}

	var q LowStockQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	storeID, _ := parseOptionalUUID(q.StoreID)

	result, err := h.inventoryService.LowStock(c.Request.Context(), tenantID, storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ByStore godoc
// @Summary      List the stock of one store
// @Tags         inventory
// @Produce      json
// @Param        id        path  string true  "Store ID"
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} dto.Response{data=[]appinventory.InventoryResponse,meta=dto.Meta}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/store/{id} [get]
func (h *InventoryHandler) ByStore(c *gin.Context) {
	h.listBy(c, h.inventoryService.ListByStore)
}

// ByProduct godoc
// @Summary      List the stock of one product across stores
// @Tags         inventory
// @Produce      json
// @Param        id        path  string true  "Product ID"
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} dto.Response{data=[]appinventory.InventoryResponse,meta=dto.Meta}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/product/{id} [get]
func (h *InventoryHandler) ByProduct(c *gin.Context) {
	h.listBy(c, h.inventoryService.ListByProduct)
}

type listByFunc func(ctx context.Context, tenantID, id uuid.UUID, page, pageSize int) ([]appinventory.InventoryResponse, int64, error)

func (h *InventoryHandler) listBy(c *gin.Context, list listByFunc) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var q dto.ListRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	q.Normalize()

	rows, total, err := list(c.Request.Context(), tenantID, id, q.Page, q.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, rows, total, q.Page, q.PageSize)
}

// Adjust godoc
// @Summary      Record a manual stock movement at a store
// @Description  Stock never goes below zero; a shortfall is rejected with INSUFFICIENT_STOCK
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string             false "Idempotency key"
// @Param        request         body   AdjustStockRequest true  "Movement"
// @Success      201 {object} dto.Response{data=appinventory.AdjustStockResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	storeID, _ := uuid.Parse(req.StoreID)
	productID, _ := uuid.Parse(req.ProductID)
	salesPersonID, _ := parseOptionalUUID(req.SalesPersonID)

	result, err := h.inventoryService.AdjustStock(c.Request.Context(), tenantID, actor, appinventory.AdjustStockRequest{
		StoreID:       storeID,
		ProductID:     productID,
		Type:          inventory.MovementType(req.Type),
		Quantity:      req.Quantity,
		SalesPersonID: salesPersonID,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// SetReorderLevel godoc
// @Summary      Change the low-stock threshold of a product at a store
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id         path string                 true "Store ID"
// @Param        product_id path string                 true "Product ID"
// @Param        request    body SetReorderLevelRequest true "Threshold"
// @Success      200 {object} dto.Response{data=appinventory.InventoryResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/store/{id}/product/{product_id}/reorder-level [put]
func (h *InventoryHandler) SetReorderLevel(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	storeID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := h.pathID(c, "product_id")
	if !ok {
		return
	}

	var req SetReorderLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.inventoryService.SetReorderLevel(c.Request.Context(), tenantID, actor, appinventory.SetReorderLevelRequest{
		StoreID:      storeID,
		ProductID:    productID,
		ReorderLevel: *req.ReorderLevel,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Transactions godoc
// @Summary      List stock ledger entries, newest first
// @Tags         inventory
// @Produce      json
// @Param        page       query int    false "Page number"
// @Param        page_size  query int    false "Page size"
// @Param        store_id   query string false "Store ID"
// @Param        product_id query string false "Product ID"
// @Success      200 {object} dto.Response{data=[]appinventory.StockTransactionResponse}
// @Security     BearerAuth
// @Router       /inventory/transactions [get]
func (h *InventoryHandler) Transactions(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}

	var q ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	q.Normalize()

	filter := appinventory.StockTransactionFilter{Page: q.Page, PageSize: q.PageSize}
	filter.StoreID, _ = parseOptionalUUID(q.StoreID)
	filter.ProductID, _ = parseOptionalUUID(q.ProductID)

	entries, err := h.inventoryService.ListTransactions(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
