package handler

import (
	"context"

	appinventory "github.com/distributor/backend/internal/application/inventory"
	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransferHandler handles inter-store transfer endpoints
type TransferHandler struct {
	BaseHandler
	transferService *appinventory.TransferService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(transferService *appinventory.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// CreateTransferRequest represents the body of POST /transfers
type CreateTransferRequest struct {
	FromStoreID string `json:"from_store_id" binding:"required,uuid"`
	ToStoreID   string `json:"to_store_id" binding:"required,uuid"`
	ProductID   string `json:"product_id" binding:"required,uuid"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	Notes       string `json:"notes" binding:"max=1000"`
}

// ListTransfersQuery represents the query of GET /transfers
type ListTransfersQuery struct {
	dto.ListRequest
	Status      string `form:"status" binding:"omitempty,oneof=pending in_transit completed cancelled"`
	FromStoreID string `form:"from_store_id" binding:"omitempty,uuid"`
	ToStoreID   string `form:"to_store_id" binding:"omitempty,uuid"`
	ProductID   string `form:"product_id" binding:"omitempty,uuid"`
}

// List godoc
// @Summary      List transfers, newest request first
// @Tags         transfers
// @Produce      json
// @Param        page          query int    false "Page number"
// @Param        page_size     query int    false "Page size"
// @Param        status        query string false "pending, in_transit, completed or cancelled"
// @Param        from_store_id query string false "Source store ID"
// @Param        to_store_id   query string false "Destination store ID"
// @Param        product_id    query string false "Product ID"
// @Success      200 {object} dto.Response{data=[]appinventory.TransferResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /transfers [get]
func (h *TransferHandler) List(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}

	var q ListTransfersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	q.Normalize()

	filter := appinventory.TransferListFilter{Page: q.Page, PageSize: q.PageSize}
	if q.Status != "" {
		status := inventory.TransferStatus(q.Status)
		filter.Status = &status
	}
	filter.FromStoreID, _ = parseOptionalUUID(q.FromStoreID)
	filter.ToStoreID, _ = parseOptionalUUID(q.ToStoreID)
	filter.ProductID, _ = parseOptionalUUID(q.ProductID)

	transfers, total, err := h.transferService.ListTransfers(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, transfers, total, q.Page, q.PageSize)
}

// Get godoc
// @Summary      Get a transfer
// @Tags         transfers
// @Produce      json
// @Param        id path string true "Transfer ID"
// @Success      200 {object} dto.Response{data=appinventory.TransferResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /transfers/{id} [get]
func (h *TransferHandler) Get(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.transferService.GetTransfer(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create godoc
// @Summary      Request a stock transfer between two stores
// @Description  The source store must hold the quantity when the request is made
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string                false "Idempotency key"
// @Param        request         body   CreateTransferRequest true  "Transfer"
// @Success      201 {object} dto.Response{data=appinventory.TransferResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /transfers [post]
func (h *TransferHandler) Create(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	fromStoreID, _ := uuid.Parse(req.FromStoreID)
	toStoreID, _ := uuid.Parse(req.ToStoreID)
	productID, _ := uuid.Parse(req.ProductID)

	result, err := h.transferService.CreateTransfer(c.Request.Context(), tenantID, actor, appinventory.CreateTransferRequest{
		FromStoreID: fromStoreID,
		ToStoreID:   toStoreID,
		ProductID:   productID,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Approve godoc
// @Summary      Approve a pending transfer and put it in transit
// @Tags         transfers
// @Produce      json
// @Param        id path string true "Transfer ID"
// @Success      200 {object} dto.Response{data=appinventory.TransferResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /transfers/{id}/approve [put]
func (h *TransferHandler) Approve(c *gin.Context) {
	h.transition(c, h.transferService.ApproveTransfer)
}

// Complete godoc
// @Summary      Complete a transfer in transit
// @Description  Moves the stock out of the source store and into the destination in one transaction
// @Tags         transfers
// @Produce      json
// @Param        id path string true "Transfer ID"
// @Success      200 {object} dto.Response{data=appinventory.TransferResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /transfers/{id}/complete [put]
func (h *TransferHandler) Complete(c *gin.Context) {
	h.transition(c, h.transferService.CompleteTransfer)
}

// Cancel godoc
// @Summary      Cancel a transfer that has not completed
// @Tags         transfers
// @Produce      json
// @Param        id path string true "Transfer ID"
// @Success      200 {object} dto.Response{data=appinventory.TransferResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /transfers/{id}/cancel [put]
func (h *TransferHandler) Cancel(c *gin.Context) {
	h.transition(c, h.transferService.CancelTransfer)
}

type transitionFunc func(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID) (*appinventory.TransferResponse, error)

func (h *TransferHandler) transition(c *gin.Context, move transitionFunc) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := move(c.Request.Context(), tenantID, actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
