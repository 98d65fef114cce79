package handler

import (
	appcatalog "github.com/distributor/backend/internal/application/catalog"
	"github.com/distributor/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest represents the body of POST /products
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	SKU         string  `json:"sku" binding:"required,min=1,max=50"`
	Category    string  `json:"category" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=2000"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
	ImageURL    string  `json:"image_url" binding:"omitempty,url,max=2048"`
}

// UpdateProductRequest represents the body of PUT /products/:id
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=200"`
	SKU         *string  `json:"sku" binding:"omitempty,min=1,max=50"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	UnitPrice   *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,max=2048"`
	IsActive    *bool    `json:"is_active"`
}

// ListProductsQuery represents the query of GET /products
type ListProductsQuery struct {
	dto.ListRequest
	Search   string `form:"search" binding:"max=100"`
	Category string `form:"category" binding:"max=100"`
	IsActive string `form:"is_active" binding:"omitempty,oneof=true false"`
}

// List godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Param        search    query string false "Name or SKU"
// @Param        category  query string false "Category"
// @Param        is_active query bool   false "Active flag"
// @Success      200 {object} dto.Response{data=[]appcatalog.ProductResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}

	var q ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	q.Normalize()

	filter := appcatalog.ProductListFilter{
		Page:     q.Page,
		PageSize: q.PageSize,
		Search:   q.Search,
		Category: q.Category,
	}
	filter.IsActive, _ = parseOptionalBool(q.IsActive)

	products, total, err := h.productService.ListProducts(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, q.Page, q.PageSize)
}

// Get godoc
// @Summary      Get a product with its stock per store
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=appcatalog.ProductResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.productService.GetProduct(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create godoc
// @Summary      Add a product to the catalog
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body CreateProductRequest true "Product"
// @Success      201 {object} dto.Response{data=appcatalog.ProductResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	price, err := toAmount(req.UnitPrice)
	if err != nil {
		h.FieldError(c, "unit_price", err.Error())
		return
	}

	result, err := h.productService.CreateProduct(c.Request.Context(), tenantID, actor, appcatalog.CreateProductRequest{
		Name:        req.Name,
		SKU:         req.SKU,
		Category:    req.Category,
		Description: req.Description,
		UnitPrice:   price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Update godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Product ID"
// @Param        request body UpdateProductRequest true "Changes"
// @Success      200 {object} dto.Response{data=appcatalog.ProductResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var price *decimal.Decimal
	if req.UnitPrice != nil {
		p, err := toAmount(*req.UnitPrice)
		if err != nil {
			h.FieldError(c, "unit_price", err.Error())
			return
		}
		price = &p
	}

	result, err := h.productService.UpdateProduct(c.Request.Context(), tenantID, actor, id, appcatalog.UpdateProductRequest{
		Name:        req.Name,
		SKU:         req.SKU,
		Category:    req.Category,
		Description: req.Description,
		UnitPrice:   price,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Deactivate a product
// @Description  Products are kept for the stock ledger and only marked inactive
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeactivateProduct(c.Request.Context(), tenantID, actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Product deactivated"})
}
