package handler

import (
	"time"

	appdebt "github.com/distributor/backend/internal/application/debt"
	"github.com/distributor/backend/internal/domain/debt"
	"github.com/distributor/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DebtHandler handles debt and payment plan endpoints
type DebtHandler struct {
	BaseHandler
	debtService *appdebt.DebtService
}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler(debtService *appdebt.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// CreateDebtRequest represents the body of POST /debts
type CreateDebtRequest struct {
	SalesPersonID string  `json:"sales_person_id" binding:"required,uuid"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	DueDate       string  `json:"due_date" binding:"required"`
	InvoiceID     string  `json:"invoice_id" binding:"omitempty,uuid"`
	Notes         string  `json:"notes" binding:"max=1000"`
}

// ListDebtsQuery represents the query of GET /debts
type ListDebtsQuery struct {
	dto.ListRequest
	Status        string `form:"status" binding:"omitempty,oneof=pending paid"`
	SalesPersonID string `form:"sales_person_id" binding:"omitempty,uuid"`
}

// CreatePaymentPlanRequest represents the body of POST /debts/:id/payment-plan
type CreatePaymentPlanRequest struct {
	InstallmentAmount float64 `json:"installment_amount" binding:"required,gt=0"`
	Frequency         string  `json:"frequency" binding:"required,oneof=daily weekly monthly"`
	StartDate         string  `json:"start_date" binding:"required"`
	EndDate           string  `json:"end_date" binding:"required"`
}

// UpdatePlanStatusRequest represents the body of PUT /debts/:id/payment-plan/status
type UpdatePlanStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active completed defaulted"`
}

// RecordDebtPaymentRequest represents the body of POST /debts/:id/payment
type RecordDebtPaymentRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	PaymentDate string  `json:"payment_date"`
	Notes       string  `json:"notes" binding:"max=1000"`
}

// List godoc
// @Summary      List debts
// @Description  Salespeople only see their own debts
// @Tags         debts
// @Produce      json
// @Param        page            query int    false "Page number"
// @Param        page_size       query int    false "Page size"
// @Param        status          query string false "pending or paid"
// @Param        sales_person_id query string false "Salesperson ID"
// @Success      200 {object} dto.Response{data=[]appdebt.DebtResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /debts [get]
func (h *DebtHandler) List(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}

	var q ListDebtsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	q.Normalize()

	filter := appdebt.DebtListFilter{Page: q.Page, PageSize: q.PageSize}
	if q.Status != "" {
		status := debt.DebtStatus(q.Status)
		filter.Status = &status
	}
	// binding already checked the format
	filter.SalesPersonID, _ = parseOptionalUUID(q.SalesPersonID)

	debts, total, err := h.debtService.ListDebts(c.Request.Context(), tenantID, actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, debts, total, q.Page, q.PageSize)
}

// Overdue godoc
// @Summary      List overdue debts
// @Tags         debts
// @Produce      json
// @Param        as_of query string false "Reference date, defaults to today"
// @Success      200 {object} dto.Response{data=[]appdebt.DebtResponse}
// @Security     BearerAuth
// @Router       /debts/overdue [get]
func (h *DebtHandler) Overdue(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}

	asOf, ok := h.asOf(c)
	if !ok {
		return
	}

	debts, err := h.debtService.ListOverdue(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debts)
}

// BySalesperson godoc
// @Summary      List a salesperson's debts
// @Tags         debts
// @Produce      json
// @Param        id path string true "Salesperson ID"
// @Success      200 {object} dto.Response{data=[]appdebt.DebtResponse}
// @Failure      403 {object} dto.Response
// @Security     BearerAuth
// @Router       /debts/salesperson/{id} [get]
func (h *DebtHandler) BySalesperson(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	salesPersonID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	debts, err := h.debtService.ListBySalesperson(c.Request.Context(), tenantID, actor, salesPersonID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debts)
}

// Create godoc
// @Summary      Record a debt
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        request body CreateDebtRequest true "Debt"
// @Success      201 {object} dto.Response{data=appdebt.DebtResponse}
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /debts [post]
func (h *DebtHandler) Create(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	amount, err := toAmount(req.Amount)
	if err != nil {
		h.FieldError(c, "amount", err.Error())
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		h.FieldError(c, "due_date", err.Error())
		return
	}
	salesPersonID, _ := parseOptionalUUID(req.SalesPersonID)
	invoiceID, _ := parseOptionalUUID(req.InvoiceID)

	result, err := h.debtService.CreateDebt(c.Request.Context(), tenantID, actor, appdebt.CreateDebtRequest{
		SalesPersonID: *salesPersonID,
		Amount:        amount,
		DueDate:       dueDate,
		InvoiceID:     invoiceID,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get godoc
// @Summary      Get a debt
// @Tags         debts
// @Produce      json
// @Param        id path string true "Debt ID"
// @Success      200 {object} dto.Response{data=appdebt.DebtResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /debts/{id} [get]
func (h *DebtHandler) Get(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	debtID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.debtService.GetDebt(c.Request.Context(), tenantID, actor, debtID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CreatePlan godoc
// @Summary      Schedule a debt in installments
// @Tags         payment-plans
// @Accept       json
// @Produce      json
// @Param        id              path   string                   true  "Debt ID"
// @Param        Idempotency-Key header string                   false "Idempotency key"
// @Param        request         body   CreatePaymentPlanRequest true  "Plan"
// @Success      201 {object} dto.Response{data=appdebt.PaymentPlanResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /debts/{id}/payment-plan [post]
func (h *DebtHandler) CreatePlan(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	debtID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req CreatePaymentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	installment, err := toAmount(req.InstallmentAmount)
	if err != nil {
		h.FieldError(c, "installment_amount", err.Error())
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		h.FieldError(c, "start_date", err.Error())
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		h.FieldError(c, "end_date", err.Error())
		return
	}

	result, err := h.debtService.CreatePaymentPlan(c.Request.Context(), tenantID, actor, debtID, appdebt.CreatePaymentPlanRequest{
		InstallmentAmount: installment,
		Frequency:         debt.Frequency(req.Frequency),
		StartDate:         startDate,
		EndDate:           endDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetPlan godoc
// @Summary      Get the payment plan of a debt
// @Tags         payment-plans
// @Produce      json
// @Param        id path string true "Debt ID"
// @Success      200 {object} dto.Response{data=appdebt.PaymentPlanResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /debts/{id}/payment-plan [get]
func (h *DebtHandler) GetPlan(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	debtID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.debtService.GetPaymentPlan(c.Request.Context(), tenantID, actor, debtID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdatePlanStatus godoc
// @Summary      Change the status of a debt's payment plan
// @Tags         payment-plans
// @Accept       json
// @Produce      json
// @Param        id      path string                  true "Debt ID"
// @Param        request body UpdatePlanStatusRequest true "Status"
// @Success      200 {object} dto.Response{data=appdebt.PaymentPlanResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /debts/{id}/payment-plan/status [put]
func (h *DebtHandler) UpdatePlanStatus(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}
	debtID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req UpdatePlanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.debtService.UpdatePaymentPlanStatus(c.Request.Context(), tenantID, debtID, debt.PlanStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordPayment godoc
// @Summary      Record a payment against a debt
// @Description  Reduces the outstanding amount and allocates the payment over the active plan's installments, oldest first
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        id              path   string                   true  "Debt ID"
// @Param        Idempotency-Key header string                   false "Idempotency key"
// @Param        request         body   RecordDebtPaymentRequest true  "Payment"
// @Success      200 {object} dto.Response{data=appdebt.RecordDebtPaymentResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /debts/{id}/payment [post]
func (h *DebtHandler) RecordPayment(c *gin.Context) {
	tenantID, actor, ok := h.principal(c)
	if !ok {
		return
	}
	debtID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req RecordDebtPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	amount, err := toAmount(req.Amount)
	if err != nil {
		h.FieldError(c, "amount", err.Error())
		return
	}
	paymentDate, err := parseOptionalDate(req.PaymentDate)
	if err != nil {
		h.FieldError(c, "payment_date", err.Error())
		return
	}

	result, err := h.debtService.RecordPayment(c.Request.Context(), tenantID, actor, debtID, appdebt.RecordDebtPaymentRequest{
		Amount:      amount,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// MarkOverdue godoc
// @Summary      Flag past-due installments as overdue
// @Tags         payment-plans
// @Produce      json
// @Param        as_of query string false "Reference date, defaults to today"
// @Success      200 {object} dto.Response{data=appdebt.MarkOverdueResult}
// @Security     BearerAuth
// @Router       /payment-plans/mark-overdue [post]
func (h *DebtHandler) MarkOverdue(c *gin.Context) {
	tenantID, _, ok := h.principal(c)
	if !ok {
		return
	}

	asOf, ok := h.asOf(c)
	if !ok {
		return
	}

	result, err := h.debtService.MarkOverdueInstallments(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *DebtHandler) asOf(c *gin.Context) (time.Time, bool) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now().UTC(), true
	}
	t, err := parseDate(raw)
	if err != nil {
		h.FieldError(c, "as_of", err.Error())
		return time.Time{}, false
	}
	return t, true
}
