package handler

import (
	appinventory "github.com/distributor/backend/internal/application/inventory"
	"github.com/distributor/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// StoreHandler handles store endpoints
type StoreHandler struct {
	BaseHandler
	storeService *appinventory.StoreService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *appinventory.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// CreateStoreRequest represents the body of POST /stores
type CreateStoreRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Location    string `json:"location" binding:"required,min=1,max=500"`
	ManagerID   string `json:"manager_id" binding:"omitempty,uuid"`
	PhoneNumber string `json:"phone_number" binding:"max=50"`
}

// UpdateStoreRequest represents the body of PUT /stores/:id
type UpdateStoreRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Location    *string `json:"location" binding:"omitempty,min=1,max=500"`
	ManagerID   string  `json:"manager_id" binding:"omitempty,uuid"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=50"`
	IsActive    *bool   `json:"is_active"`
}

// ListStoresQuery represents the query of GET /stores
type ListStoresQuery struct {
	dto.ListRequest
	Search   string `form:"search" binding:"max=100"`
	IsActive string `form:"is_active" binding:"omitempty,oneof=true false"`
}

// List godoc
// @Summary      List stores
// @Tags         stores
// @Produce      json
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Param        search    query string false "Name or location"
// @Param        is_active query bool   false "Active flag"
// @Success      200 {object} dto.Response{data=[]appinventory.StoreResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /stores [get]
func (h *StoreHandler) List(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}

	var q ListStoresQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	q.Normalize()

	filter := appinventory.StoreListFilter{Page: q.Page, PageSize: q.PageSize, Search: q.Search}
	filter.IsActive, _ = parseOptionalBool(q.IsActive)

	stores, total, err := h.storeService.ListStores(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, stores, total, q.Page, q.PageSize)
}

// Get godoc
// @Summary      Get a store
// @Tags         stores
// @Produce      json
// @Param        id path string true "Store ID"
// @Success      200 {object} dto.Response{data=appinventory.StoreResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /stores/{id} [get]
func (h *StoreHandler) Get(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.storeService.GetStore(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create godoc
// @Summary      Open a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        request body CreateStoreRequest true "Store"
// @Success      201 {object} dto.Response{data=appinventory.StoreResponse}
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /stores [post]
func (h *StoreHandler) Create(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	managerID, _ := parseOptionalUUID(req.ManagerID)

	result, err := h.storeService.CreateStore(c.Request.Context(), tenantID, actor, appinventory.CreateStoreRequest{
		Name:        req.Name,
		Location:    req.Location,
		ManagerID:   managerID,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Update godoc
// @Summary      Update a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        id      path string             true "Store ID"
// @Param        request body UpdateStoreRequest true "Changes"
// @Success      200 {object} dto.Response{data=appinventory.StoreResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /stores/{id} [put]
func (h *StoreHandler) Update(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	managerID, _ := parseOptionalUUID(req.ManagerID)

	result, err := h.storeService.UpdateStore(c.Request.Context(), tenantID, actor, id, appinventory.UpdateStoreRequest{
		Name:        req.Name,
		Location:    req.Location,
		ManagerID:   managerID,
		PhoneNumber: req.PhoneNumber,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Deactivate a store
// @Tags         stores
// @Produce      json
// @Param        id path string true "Store ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /stores/{id} [delete]
func (h *StoreHandler) Delete(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.storeService.DeactivateStore(c.Request.Context(), tenantID, actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Store deactivated"})
}
