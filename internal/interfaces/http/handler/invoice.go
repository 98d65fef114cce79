package handler

import (
	appinvoice "github.com/distributor/backend/internal/application/invoice"
	"github.com/distributor/backend/internal/domain/invoice"
	"github.com/distributor/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *appinvoice.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *appinvoice.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateInvoiceRequest represents the body of POST /invoices
type CreateInvoiceRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	SalesPersonID string  `json:"sales_person_id" binding:"omitempty,uuid"`
	QRCode        string  `json:"qr_code" binding:"max=2048"`
	ImageURL      string  `json:"image_url" binding:"omitempty,url,max=2048"`
}

// ListInvoicesQuery represents the query of GET /invoices
type ListInvoicesQuery struct {
	dto.ListRequest
	Status        string `form:"status" binding:"omitempty,oneof=pending approved cleared rejected"`
	SalesPersonID string `form:"sales_person_id" binding:"omitempty,uuid"`
	Reconciled    string `form:"reconciled" binding:"omitempty,oneof=true false"`
}

// UpdateInvoiceStatusRequest represents the body of PUT /invoices/:id/status
type UpdateInvoiceStatusRequest struct {
	Status          string `json:"status" binding:"required,oneof=approved rejected"`
	RejectionReason string `json:"rejection_reason" binding:"max=1000"`
}

// RecordInvoicePaymentRequest represents the body of POST /invoices/:id/payments
type RecordInvoicePaymentRequest struct {
	PaymentAmount   float64 `json:"payment_amount" binding:"required,gt=0"`
	PaymentMethod   string  `json:"payment_method" binding:"required,oneof=cash bank_transfer cheque mobile_money"`
	ReferenceNumber string  `json:"reference_number" binding:"max=100"`
	PaymentDate     string  `json:"payment_date"`
	Notes           string  `json:"notes" binding:"max=1000"`
}

// ReconcileInvoiceRequest represents the optional body of PUT /invoices/:id/reconcile
type ReconcileInvoiceRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// List godoc
// @Summary      List invoices
// @Description  Salespeople only see their own invoices
// @Tags         invoices
// @Produce      json
// @Param        page            query int    false "Page number"
// @Param        page_size       query int    false "Page size"
// @Param        status          query string false "pending, approved, cleared or rejected"
// @Param        sales_person_id query string false "Salesperson ID"
// @Param        reconciled      query bool   false "Reconciliation flag"
// @Success      200 {object} dto.Response{data=[]appinvoice.InvoiceResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}

	var q ListInvoicesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	q.Normalize()

	filter := appinvoice.InvoiceListFilter{Page: q.Page, PageSize: q.PageSize}
	if q.Status != "" {
		status := invoice.InvoiceStatus(q.Status)
		filter.Status = &status
	}
	filter.SalesPersonID, _ = parseOptionalUUID(q.SalesPersonID)
	filter.Reconciled, _ = parseOptionalBool(q.Reconciled)

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), tenantID, actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, q.Page, q.PageSize)
}

// Reconciliation godoc
// @Summary      List invoices awaiting reconciliation
// @Description  Approved invoices that have not been reconciled, oldest first
// @Tags         invoices
// @Produce      json
// @Success      200 {object} dto.Response{data=[]appinvoice.InvoiceResponse}
// @Security     BearerAuth
// @Router       /invoices/reconciliation [get]
func (h *InvoiceHandler) Reconciliation(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListForReconciliation(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoices)
}

// Get godoc
// @Summary      Get an invoice with its payments
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} dto.Response{data=appinvoice.InvoiceResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.invoiceService.GetInvoice(c.Request.Context(), tenantID, actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create godoc
// @Summary      Raise an invoice
// @Description  Supervisors and the CEO must name the salesperson
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body CreateInvoiceRequest true "Invoice"
// @Success      201 {object} dto.Response{data=appinvoice.InvoiceResponse}
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	amount, err := toAmount(req.Amount)
	if err != nil {
		h.FieldError(c, "amount", err.Error())
		return
	}
	salesPersonID, _ := parseOptionalUUID(req.SalesPersonID)

	result, err := h.invoiceService.CreateInvoice(c.Request.Context(), tenantID, actor, appinvoice.CreateInvoiceRequest{
		Amount:        amount,
		SalesPersonID: salesPersonID,
		QRCode:        req.QRCode,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// UpdateStatus godoc
// @Summary      Approve or reject a pending invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Invoice ID"
// @Param        request body UpdateInvoiceStatusRequest true "Decision"
// @Success      200 {object} dto.Response{data=appinvoice.InvoiceResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id}/status [put]
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.invoiceService.UpdateStatus(c.Request.Context(), tenantID, actor, id, appinvoice.UpdateStatusRequest{
		Status:          appinvoice.StatusAction(req.Status),
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordPayment godoc
// @Summary      Record a payment against an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id              path   string                      true  "Invoice ID"
// @Param        Idempotency-Key header string                      false "Idempotency key"
// @Param        request         body   RecordInvoicePaymentRequest true  "Payment"
// @Success      201 {object} dto.Response{data=appinvoice.RecordPaymentResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req RecordInvoicePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	amount, err := toAmount(req.PaymentAmount)
	if err != nil {
		h.FieldError(c, "payment_amount", err.Error())
		return
	}
	paymentDate, err := parseOptionalDate(req.PaymentDate)
	if err != nil {
		h.FieldError(c, "payment_date", err.Error())
		return
	}

	result, err := h.invoiceService.RecordPayment(c.Request.Context(), tenantID, actor, id, appinvoice.RecordPaymentRequest{
		PaymentAmount:   amount,
		PaymentMethod:   invoice.PaymentMethod(req.PaymentMethod),
		ReferenceNumber: req.ReferenceNumber,
		PaymentDate:     paymentDate,
		Notes:           req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Reconcile godoc
// @Summary      Reconcile an approved invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path string                  true  "Invoice ID"
// @Param        request body ReconcileInvoiceRequest false "Notes"
// @Success      200 {object} dto.Response{data=appinvoice.InvoiceResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id}/reconcile [put]
func (h *InvoiceHandler) Reconcile(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req ReconcileInvoiceRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	result, err := h.invoiceService.Reconcile(c.Request.Context(), tenantID, actor, id, appinvoice.ReconcileRequest{
		Notes: req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete a pending invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), tenantID, actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Invoice deleted"})
}
