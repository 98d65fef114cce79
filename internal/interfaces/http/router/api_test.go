package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appcatalog "github.com/distributor/backend/internal/application/catalog"
	appdebt "github.com/distributor/backend/internal/application/debt"
	appidentity "github.com/distributor/backend/internal/application/identity"
	appinventory "github.com/distributor/backend/internal/application/inventory"
	appinvoice "github.com/distributor/backend/internal/application/invoice"
	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/infrastructure/auth"
	"github.com/distributor/backend/internal/infrastructure/cache"
	"github.com/distributor/backend/internal/infrastructure/config"
	"github.com/distributor/backend/internal/infrastructure/persistence"
	"github.com/distributor/backend/internal/interfaces/http/dto"
	"github.com/distributor/backend/internal/interfaces/http/handler"
	"github.com/distributor/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
)

const testPassword = "correct-horse-battery"

type apiEnv struct {
	t        *testing.T
	engine   *gin.Engine
	jwt      *auth.JWTService
	tenantID uuid.UUID
	users    map[identity.Role]*identity.User
	tokens   map[identity.Role]string
}

// newAPIEnv wires the whole stack over an in-memory SQLite database
func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	log := zap.NewNop()

	db, err := persistence.Open(sqlite.Open(":memory:"), &config.DatabaseConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}, log)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars!!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "dms-test",
	})

	userRepo := persistence.NewGormUserRepository(db.DB)
	debtService := appdebt.NewDebtService(
		persistence.NewGormDebtRepository(db.DB),
		persistence.NewGormPaymentPlanRepository(db.DB),
		persistence.NewGormDebtTransactionScope(db.DB),
		log,
	)
	invoiceService := appinvoice.NewInvoiceService(
		persistence.NewGormInvoiceRepository(db.DB),
		persistence.NewGormInvoicePaymentRepository(db.DB),
		persistence.NewGormInvoiceTransactionScope(db.DB),
		log,
	)

	productRepo := persistence.NewGormProductRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	inventoryRepo := persistence.NewGormStoreInventoryRepository(db.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	productService := appcatalog.NewProductService(productRepo, inventoryRepo, log)
	storeService := appinventory.NewStoreService(storeRepo, userRepo, log)
	inventoryService := appinventory.NewInventoryService(
		storeRepo,
		inventoryRepo,
		persistence.NewGormStockTransactionRepository(db.DB),
		productRepo,
		inventoryScope,
		log,
	)
	transferService := appinventory.NewTransferService(
		persistence.NewGormTransferRepository(db.DB),
		storeRepo,
		inventoryRepo,
		productRepo,
		inventoryScope,
		log,
	)

	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	engine, err := NewEngine(Handlers{
		Auth:      handler.NewAuthHandler(appidentity.NewAuthService(userRepo, jwtService, log)),
		Debt:      handler.NewDebtHandler(debtService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Product:   handler.NewProductHandler(productService),
		Store:     handler.NewStoreHandler(storeService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Transfer:  handler.NewTransferHandler(transferService),
		System:    handler.NewSystemHandler(db, "test"),
	}, Options{
		Logger:           log,
		TokenValidator:   jwtService,
		IdempotencyStore: store,
		IdempotencyTTL:   time.Hour,
		CORS:             middleware.DefaultCORSConfig(),
		MaxBodySize:      1 << 20,
	})
	require.NoError(t, err)

	env := &apiEnv{
		t:        t,
		engine:   engine,
		jwt:      jwtService,
		tenantID: uuid.New(),
		users:    make(map[identity.Role]*identity.User),
		tokens:   make(map[identity.Role]string),
	}
	for _, role := range []identity.Role{identity.RoleSalesperson, identity.RoleSupervisor, identity.RoleCEO} {
		u, err := identity.NewUser(env.tenantID, string(role)+" user", string(role)+"@example.com", testPassword, role)
		require.NoError(t, err)
		require.NoError(t, userRepo.Save(context.Background(), u))
		env.users[role] = u

		token, err := jwtService.GenerateAccessToken(auth.GenerateTokenInput{
			TenantID: env.tenantID,
			UserID:   u.ID,
			Email:    u.Email,
			Name:     u.Name,
			Role:     role.String(),
		})
		require.NoError(t, err)
		env.tokens[role] = token.Token
	}
	return env
}

type request struct {
	method  string
	path    string
	body    any
	role    identity.Role
	headers map[string]string
}

func (e *apiEnv) do(r request) *httptest.ResponseRecorder {
	e.t.Helper()
	var body bytes.Buffer
	if r.body != nil {
		require.NoError(e.t, json.NewEncoder(&body).Encode(r.body))
	}
	req := httptest.NewRequest(r.method, r.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if r.role != "" {
		req.Header.Set("Authorization", "Bearer "+e.tokens[r.role])
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// data decodes a success envelope into out
func (e *apiEnv) data(w *httptest.ResponseRecorder, status int, out any) {
	e.t.Helper()
	require.Equal(e.t, status, w.Code, w.Body.String())
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(e.t, resp.Success)
	if out != nil {
		require.NoError(e.t, json.Unmarshal(resp.Data, out))
	}
}

func (e *apiEnv) errorInfo(w *httptest.ResponseRecorder, status int) dto.ErrorInfo {
	e.t.Helper()
	require.Equal(e.t, status, w.Code, w.Body.String())
	var resp dto.Response
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(e.t, resp.Success)
	require.NotNil(e.t, resp.Error)
	return *resp.Error
}

func (e *apiEnv) createDebt(amount float64) string {
	e.t.Helper()
	var d struct {
		ID string `json:"id"`
	}
	e.data(e.do(request{
		method: http.MethodPost,
		path:   "/api/v1/debts",
		role:   identity.RoleSupervisor,
		body: map[string]any{
			"sales_person_id": e.users[identity.RoleSalesperson].ID.String(),
			"amount":          amount,
			"due_date":        "2025-03-31",
		},
	}), http.StatusCreated, &d)
	return d.ID
}

func TestAPI_Health(t *testing.T) {
	env := newAPIEnv(t)

	for _, path := range []string{"/health", "/api/v1/health"} {
		var body handler.HealthResponse
		w := env.do(request{method: http.MethodGet, path: path})
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "ok", body.Database)
	}
}

func TestAPI_Login(t *testing.T) {
	env := newAPIEnv(t)

	t.Run("valid credentials", func(t *testing.T) {
		var result appidentity.LoginResult
		env.data(env.do(request{
			method: http.MethodPost,
			path:   "/api/v1/auth/login",
			body:   map[string]string{"email": "CEO@example.com", "password": testPassword},
		}), http.StatusOK, &result)

		assert.Equal(t, "Bearer", result.TokenType)
		claims, err := env.jwt.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleCEO.String(), claims.Role)
		assert.Equal(t, env.tenantID.String(), claims.TenantID)
	})

	t.Run("wrong password", func(t *testing.T) {
		info := env.errorInfo(env.do(request{
			method: http.MethodPost,
			path:   "/api/v1/auth/login",
			body:   map[string]string{"email": "ceo@example.com", "password": "not-the-password"},
		}), http.StatusUnauthorized)
		assert.Equal(t, dto.ErrCodeInvalidCredentials, info.Code)
	})

	t.Run("malformed email", func(t *testing.T) {
		info := env.errorInfo(env.do(request{
			method: http.MethodPost,
			path:   "/api/v1/auth/login",
			body:   map[string]string{"email": "nope", "password": testPassword},
		}), http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodeValidation, info.Code)
		require.Len(t, info.Details, 1)
		assert.Equal(t, "email", info.Details[0].Field)
	})
}

func TestAPI_RequiresToken(t *testing.T) {
	env := newAPIEnv(t)

	info := env.errorInfo(env.do(request{method: http.MethodGet, path: "/api/v1/debts"}), http.StatusUnauthorized)
	assert.Equal(t, dto.ErrCodeUnauthorized, info.Code)
	assert.NotEmpty(t, info.RequestID)
}

func TestAPI_RoleGates(t *testing.T) {
	env := newAPIEnv(t)
	debtID := env.createDebt(100)

	tests := []struct {
		name   string
		method string
		path   string
		role   identity.Role
	}{
		{"salesperson cannot create debts", http.MethodPost, "/api/v1/debts", identity.RoleSalesperson},
		{"salesperson cannot list overdue", http.MethodGet, "/api/v1/debts/overdue", identity.RoleSalesperson},
		{"salesperson cannot record debt payments", http.MethodPost, "/api/v1/debts/" + debtID + "/payment", identity.RoleSalesperson},
		{"salesperson cannot create plans", http.MethodPost, "/api/v1/debts/" + debtID + "/payment-plan", identity.RoleSalesperson},
		{"salesperson cannot sweep overdue", http.MethodPost, "/api/v1/payment-plans/mark-overdue", identity.RoleSalesperson},
		{"salesperson cannot reconcile", http.MethodGet, "/api/v1/invoices/reconciliation", identity.RoleSalesperson},
		{"supervisor cannot delete invoices", http.MethodDelete, "/api/v1/invoices/" + uuid.NewString(), identity.RoleSupervisor},
		{"salesperson cannot open stores", http.MethodPost, "/api/v1/stores", identity.RoleSalesperson},
		{"supervisor cannot deactivate stores", http.MethodDelete, "/api/v1/stores/" + uuid.NewString(), identity.RoleSupervisor},
		{"salesperson cannot request transfers", http.MethodPost, "/api/v1/transfers", identity.RoleSalesperson},
		{"salesperson cannot complete transfers", http.MethodPut, "/api/v1/transfers/" + uuid.NewString() + "/complete", identity.RoleSalesperson},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := env.errorInfo(env.do(request{method: tt.method, path: tt.path, role: tt.role, body: map[string]any{}}), http.StatusForbidden)
			assert.Equal(t, dto.ErrCodeForbidden, info.Code)
		})
	}
}

func TestAPI_DebtValidation(t *testing.T) {
	env := newAPIEnv(t)
	salesPersonID := env.users[identity.RoleSalesperson].ID.String()

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"missing amount", map[string]any{"sales_person_id": salesPersonID, "due_date": "2025-01-31"}, "amount"},
		{"negative amount", map[string]any{"sales_person_id": salesPersonID, "amount": -5, "due_date": "2025-01-31"}, "amount"},
		{"three decimals", map[string]any{"sales_person_id": salesPersonID, "amount": 10.005, "due_date": "2025-01-31"}, "amount"},
		{"bad sales person", map[string]any{"sales_person_id": "abc", "amount": 10, "due_date": "2025-01-31"}, "sales_person_id"},
		{"bad date", map[string]any{"sales_person_id": salesPersonID, "amount": 10, "due_date": "31/01/2025"}, "due_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := env.errorInfo(env.do(request{
				method: http.MethodPost,
				path:   "/api/v1/debts",
				role:   identity.RoleCEO,
				body:   tt.body,
			}), http.StatusBadRequest)
			assert.Equal(t, dto.ErrCodeValidation, info.Code)
			require.NotEmpty(t, info.Details)
			assert.Equal(t, tt.field, info.Details[0].Field)
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/debts", bytes.NewBufferString("{"))
		req.Header.Set("Authorization", "Bearer "+env.tokens[identity.RoleCEO])
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)
		info := env.errorInfo(w, http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodeInvalidJSON, info.Code)
	})
}

func TestAPI_DebtPaymentPlanFlow(t *testing.T) {
	env := newAPIEnv(t)
	debtID := env.createDebt(300)

	var plan appdebt.PaymentPlanResponse
	env.data(env.do(request{
		method: http.MethodPost,
		path:   "/api/v1/debts/" + debtID + "/payment-plan",
		role:   identity.RoleSupervisor,
		body: map[string]any{
			"installment_amount": 100,
			"frequency":          "monthly",
			"start_date":         "2025-01-31",
			"end_date":           "2025-03-31",
		},
	}), http.StatusCreated, &plan)
	require.Len(t, plan.Installments, 3)
	assert.Equal(t, "2025-02-28", plan.Installments[1].DueDate)
	assert.Equal(t, "active", plan.Status)

	t.Run("second active plan is rejected", func(t *testing.T) {
		info := env.errorInfo(env.do(request{
			method: http.MethodPost,
			path:   "/api/v1/debts/" + debtID + "/payment-plan",
			role:   identity.RoleSupervisor,
			body: map[string]any{
				"installment_amount": 50,
				"frequency":          "weekly",
				"start_date":         "2025-01-01",
				"end_date":           "2025-06-01",
			},
		}), http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodeActivePlanExists, info.Code)
	})

	var payment appdebt.RecordDebtPaymentResponse
	env.data(env.do(request{
		method:  http.MethodPost,
		path:    "/api/v1/debts/" + debtID + "/payment",
		role:    identity.RoleSupervisor,
		body:    map[string]any{"amount": 150, "payment_date": "2025-02-01"},
		headers: map[string]string{middleware.IdempotencyKeyHeader: "pay-1"},
	}), http.StatusOK, &payment)

	assert.Equal(t, "150", payment.Debt.Amount.String())
	assert.Equal(t, "pending", payment.Debt.Status)
	require.Len(t, payment.Allocations, 2)
	assert.True(t, payment.Allocations[0].FullyPaid)
	assert.False(t, payment.Allocations[1].FullyPaid)
	assert.Equal(t, "50", payment.Allocations[1].Amount.String())
	assert.True(t, payment.UnallocatedAmount.IsZero())

	t.Run("replayed idempotency key is rejected", func(t *testing.T) {
		info := env.errorInfo(env.do(request{
			method:  http.MethodPost,
			path:    "/api/v1/debts/" + debtID + "/payment",
			role:    identity.RoleSupervisor,
			body:    map[string]any{"amount": 150},
			headers: map[string]string{middleware.IdempotencyKeyHeader: "pay-1"},
		}), http.StatusConflict)
		assert.Equal(t, dto.ErrCodeDuplicateRequest, info.Code)
	})

	t.Run("overpayment is rejected", func(t *testing.T) {
		info := env.errorInfo(env.do(request{
			method: http.MethodPost,
			path:   "/api/v1/debts/" + debtID + "/payment",
			role:   identity.RoleSupervisor,
			body:   map[string]any{"amount": 150.01},
		}), http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodePaymentExceedsDebt, info.Code)
	})

	t.Run("salesperson reads own plan", func(t *testing.T) {
		var got appdebt.PaymentPlanResponse
		env.data(env.do(request{
			method: http.MethodGet,
			path:   "/api/v1/debts/" + debtID + "/payment-plan",
			role:   identity.RoleSalesperson,
		}), http.StatusOK, &got)
		assert.Equal(t, "paid", got.Installments[0].Status)
		assert.Equal(t, "50", got.Installments[1].PaidAmount.String())
	})

	t.Run("mark overdue sweep", func(t *testing.T) {
		var result appdebt.MarkOverdueResult
		env.data(env.do(request{
			method: http.MethodPost,
			path:   "/api/v1/payment-plans/mark-overdue?as_of=2025-03-01",
			role:   identity.RoleCEO,
		}), http.StatusOK, &result)
		assert.Equal(t, "2025-03-01", result.AsOf)
		assert.Equal(t, 1, result.InstallmentsMarked)
	})

	env.data(env.do(request{
		method: http.MethodPost,
		path:   "/api/v1/debts/" + debtID + "/payment",
		role:   identity.RoleCEO,
		body:   map[string]any{"amount": 150},
	}), http.StatusOK, &payment)
	assert.Equal(t, "paid", payment.Debt.Status)
	require.NotNil(t, payment.PaymentPlan)
	assert.Equal(t, "completed", payment.PaymentPlan.Status)
}

func TestAPI_PaymentAgainstDefaultedPlan(t *testing.T) {
	env := newAPIEnv(t)
	debtID := env.createDebt(300)

	env.data(env.do(request{
		method: http.MethodPost,
		path:   "/api/v1/debts/" + debtID + "/payment-plan",
		role:   identity.RoleSupervisor,
		body: map[string]any{
			"installment_amount": 100,
			"frequency":          "monthly",
			"start_date":         "2025-01-31",
			"end_date":           "2025-03-31",
		},
	}), http.StatusCreated, nil)

	var defaulted appdebt.PaymentPlanResponse
	env.data(env.do(request{
		method: http.MethodPut,
		path:   "/api/v1/debts/" + debtID + "/payment-plan/status",
		role:   identity.RoleSupervisor,
		body:   map[string]any{"status": "defaulted"},
	}), http.StatusOK, &defaulted)
	require.Equal(t, "defaulted", defaulted.Status)

	var payment appdebt.RecordDebtPaymentResponse
	env.data(env.do(request{
		method: http.MethodPost,
		path:   "/api/v1/debts/" + debtID + "/payment",
		role:   identity.RoleSupervisor,
		body:   map[string]any{"amount": 100, "payment_date": "2025-02-10"},
	}), http.StatusOK, &payment)

	require.NotEmpty(t, payment.Allocations)
	assert.True(t, payment.Allocations[0].FullyPaid)
	assert.True(t, payment.UnallocatedAmount.IsZero())
	require.NotNil(t, payment.PaymentPlan)
	assert.Equal(t, "defaulted", payment.PaymentPlan.Status)
	assert.Equal(t, "paid", payment.PaymentPlan.Installments[0].Status)
	assert.Equal(t, "pending", payment.PaymentPlan.Installments[1].Status)

	var plan appdebt.PaymentPlanResponse
	env.data(env.do(request{
		method: http.MethodGet,
		path:   "/api/v1/debts/" + debtID + "/payment-plan",
		role:   identity.RoleSupervisor,
	}), http.StatusOK, &plan)
	assert.Equal(t, "paid", plan.Installments[0].Status)
	assert.Equal(t, "100", plan.Installments[0].PaidAmount.String())
}

func TestAPI_DebtScoping(t *testing.T) {
	env := newAPIEnv(t)
	debtID := env.createDebt(100)

	var list []appdebt.DebtResponse
	env.data(env.do(request{method: http.MethodGet, path: "/api/v1/debts", role: identity.RoleSalesperson}), http.StatusOK, &list)
	require.Len(t, list, 1)
	assert.Equal(t, debtID, list[0].ID.String())

	t.Run("other salesperson id is forbidden", func(t *testing.T) {
		info := env.errorInfo(env.do(request{
			method: http.MethodGet,
			path:   "/api/v1/debts/salesperson/" + uuid.NewString(),
			role:   identity.RoleSalesperson,
		}), http.StatusForbidden)
		assert.Equal(t, dto.ErrCodeForbidden, info.Code)
	})

	t.Run("unknown debt is not found", func(t *testing.T) {
		info := env.errorInfo(env.do(request{
			method: http.MethodGet,
			path:   "/api/v1/debts/" + uuid.NewString(),
			role:   identity.RoleCEO,
		}), http.StatusNotFound)
		assert.Equal(t, dto.ErrCodeNotFound, info.Code)
	})

	t.Run("overdue list", func(t *testing.T) {
		var overdue []appdebt.DebtResponse
		env.data(env.do(request{
			method: http.MethodGet,
			path:   "/api/v1/debts/overdue?as_of=2025-04-01",
			role:   identity.RoleSupervisor,
		}), http.StatusOK, &overdue)
		require.Len(t, overdue, 1)
		assert.True(t, overdue[0].IsOverdue)
	})
}

func TestAPI_InvoiceFlow(t *testing.T) {
	env := newAPIEnv(t)

	var inv appinvoice.InvoiceResponse
	env.data(env.do(request{
		method: http.MethodPost,
		path:   "/api/v1/invoices",
		role:   identity.RoleSalesperson,
		body:   map[string]any{"amount": 500, "qr_code": "QR-1"},
	}), http.StatusCreated, &inv)
	assert.Equal(t, env.users[identity.RoleSalesperson].ID, inv.SalesPersonID)
	assert.Regexp(t, `^INV-\d{6}-00001$`, inv.InvoiceNumber)
	id := inv.ID.String()

	t.Run("supervisor must name the salesperson", func(t *testing.T) {
		info := env.errorInfo(env.do(request{
			method: http.MethodPost,
			path:   "/api/v1/invoices",
			role:   identity.RoleSupervisor,
			body:   map[string]any{"amount": 10},
		}), http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodeSalesPersonRequired, info.Code)
	})

	env.data(env.do(request{
		method: http.MethodPut,
		path:   "/api/v1/invoices/" + id + "/status",
		role:   identity.RoleSupervisor,
		body:   map[string]any{"status": "approved"},
	}), http.StatusOK, &inv)
	assert.Equal(t, "approved", inv.Status)

	var paid appinvoice.RecordPaymentResponse
	env.data(env.do(request{
		method:  http.MethodPost,
		path:    "/api/v1/invoices/" + id + "/payments",
		role:    identity.RoleSupervisor,
		body:    map[string]any{"payment_amount": 200, "payment_method": "mobile_money", "reference_number": "MM-77"},
		headers: map[string]string{middleware.IdempotencyKeyHeader: "inv-pay-1"},
	}), http.StatusCreated, &paid)
	assert.Equal(t, "300", paid.Invoice.Balance.String())
	assert.Equal(t, "MM-77", paid.Payment.ReferenceNumber)

	t.Run("payment above balance", func(t *testing.T) {
		info := env.errorInfo(env.do(request{
			method: http.MethodPost,
			path:   "/api/v1/invoices/" + id + "/payments",
			role:   identity.RoleSupervisor,
			body:   map[string]any{"payment_amount": 300.5, "payment_method": "cash"},
		}), http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodePaymentExceedsBalance, info.Code)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		info := env.errorInfo(env.do(request{
			method: http.MethodPost,
			path:   "/api/v1/invoices/" + id + "/payments",
			role:   identity.RoleSupervisor,
			body:   map[string]any{"payment_amount": 1, "payment_method": "barter"},
		}), http.StatusBadRequest)
		assert.Equal(t, "payment_method", info.Details[0].Field)
	})

	var queue []appinvoice.InvoiceResponse
	env.data(env.do(request{method: http.MethodGet, path: "/api/v1/invoices/reconciliation", role: identity.RoleCEO}), http.StatusOK, &queue)
	require.Len(t, queue, 1)

	env.data(env.do(request{
		method: http.MethodPut,
		path:   "/api/v1/invoices/" + id + "/reconcile",
		role:   identity.RoleCEO,
		body:   map[string]any{"notes": "matched bank statement"},
	}), http.StatusOK, &inv)
	assert.True(t, inv.Reconciled)

	env.data(env.do(request{method: http.MethodGet, path: "/api/v1/invoices/reconciliation", role: identity.RoleCEO}), http.StatusOK, &queue)
	assert.Empty(t, queue)

	t.Run("approved invoice cannot be deleted", func(t *testing.T) {
		info := env.errorInfo(env.do(request{method: http.MethodDelete, path: "/api/v1/invoices/" + id, role: identity.RoleCEO}), http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodeInvoiceNotDeletable, info.Code)
	})

	t.Run("list filters", func(t *testing.T) {
		var list []appinvoice.InvoiceResponse
		env.data(env.do(request{
			method: http.MethodGet,
			path:   "/api/v1/invoices?reconciled=true&status=approved",
			role:   identity.RoleSalesperson,
		}), http.StatusOK, &list)
		assert.Len(t, list, 1)

		info := env.errorInfo(env.do(request{
			method: http.MethodGet,
			path:   "/api/v1/invoices?status=lost",
			role:   identity.RoleSalesperson,
		}), http.StatusBadRequest)
		assert.Equal(t, "status", info.Details[0].Field)
	})
}

func TestAPI_DeletePendingInvoice(t *testing.T) {
	env := newAPIEnv(t)

	var inv appinvoice.InvoiceResponse
	env.data(env.do(request{
		method: http.MethodPost,
		path:   "/api/v1/invoices",
		role:   identity.RoleCEO,
		body:   map[string]any{"amount": 42.5, "sales_person_id": env.users[identity.RoleSalesperson].ID.String()},
	}), http.StatusCreated, &inv)

	env.data(env.do(request{method: http.MethodDelete, path: "/api/v1/invoices/" + inv.ID.String(), role: identity.RoleCEO}), http.StatusOK, nil)

	info := env.errorInfo(env.do(request{method: http.MethodGet, path: "/api/v1/invoices/" + inv.ID.String(), role: identity.RoleCEO}), http.StatusNotFound)
	assert.Equal(t, dto.ErrCodeNotFound, info.Code)
}

func (e *apiEnv) createID(path string, body map[string]any) string {
	e.t.Helper()
	var out struct {
		ID string `json:"id"`
	}
	e.data(e.do(request{method: http.MethodPost, path: path, role: identity.RoleSupervisor, body: body}), http.StatusCreated, &out)
	return out.ID
}

func (e *apiEnv) adjust(storeID, productID, kind string, quantity int) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.do(request{
		method: http.MethodPost,
		path:   "/api/v1/inventory/adjust",
		role:   identity.RoleSupervisor,
		body: map[string]any{
			"store_id":   storeID,
			"product_id": productID,
			"type":       kind,
			"quantity":   quantity,
		},
	})
}

func TestAPI_StockAdjustments(t *testing.T) {
	env := newAPIEnv(t)
	storeID := env.createID("/api/v1/stores", map[string]any{"name": "Central", "location": "Main Street 1"})
	productID := env.createID("/api/v1/products", map[string]any{"name": "Cola 330ml", "sku": "COLA-330", "category": "Beverages", "unit_price": 1.25})

	var moved appinventory.AdjustStockResponse
	env.data(env.adjust(storeID, productID, "in", 40), http.StatusCreated, &moved)
	assert.Equal(t, 0, moved.PreviousStock)
	assert.Equal(t, 40, moved.NewStock)

	env.data(env.adjust(storeID, productID, "out", 15), http.StatusCreated, &moved)
	assert.Equal(t, 25, moved.NewStock)
	assert.Equal(t, "out", moved.Transaction.Type)

	t.Run("shortfall is rejected and stock is unchanged", func(t *testing.T) {
		info := env.errorInfo(env.adjust(storeID, productID, "out", 26), http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodeInsufficientStock, info.Code)

		var rows []appinventory.InventoryResponse
		env.data(env.do(request{
			method: http.MethodGet,
			path:   "/api/v1/inventory/store/" + storeID,
			role:   identity.RoleSalesperson,
		}), http.StatusOK, &rows)
		require.Len(t, rows, 1)
		assert.Equal(t, 25, rows[0].QuantityInStock)
	})

	t.Run("zero quantity fails validation", func(t *testing.T) {
		env.errorInfo(env.adjust(storeID, productID, "in", 0), http.StatusBadRequest)
	})

	t.Run("salespeople cannot adjust", func(t *testing.T) {
		w := env.do(request{
			method: http.MethodPost,
			path:   "/api/v1/inventory/adjust",
			role:   identity.RoleSalesperson,
			body:   map[string]any{"store_id": storeID, "product_id": productID, "type": "in", "quantity": 1},
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	var ledger []appinventory.StockTransactionResponse
	env.data(env.do(request{
		method: http.MethodGet,
		path:   "/api/v1/inventory/transactions?store_id=" + storeID,
		role:   identity.RoleSupervisor,
	}), http.StatusOK, &ledger)
	assert.Len(t, ledger, 2)

	var product appcatalog.ProductResponse
	env.data(env.do(request{
		method: http.MethodGet,
		path:   "/api/v1/products/" + productID,
		role:   identity.RoleSalesperson,
	}), http.StatusOK, &product)
	require.NotNil(t, product.TotalStock)
	assert.Equal(t, 25, *product.TotalStock)
}

func TestAPI_TransferFlow(t *testing.T) {
	env := newAPIEnv(t)
	fromID := env.createID("/api/v1/stores", map[string]any{"name": "Central", "location": "Main Street 1"})
	toID := env.createID("/api/v1/stores", map[string]any{"name": "Harbour", "location": "Dock Road 4"})
	productID := env.createID("/api/v1/products", map[string]any{"name": "Cola 330ml", "sku": "COLA-330", "category": "Beverages", "unit_price": 1.25})
	env.data(env.adjust(fromID, productID, "in", 30), http.StatusCreated, nil)

	t.Run("same store is rejected", func(t *testing.T) {
		info := env.errorInfo(env.do(request{
			method: http.MethodPost,
			path:   "/api/v1/transfers",
			role:   identity.RoleSupervisor,
			body:   map[string]any{"from_store_id": fromID, "to_store_id": fromID, "product_id": productID, "quantity": 5},
		}), http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodeSameStoreTransfer, info.Code)
	})

	t.Run("more than the source holds is rejected", func(t *testing.T) {
		info := env.errorInfo(env.do(request{
			method: http.MethodPost,
			path:   "/api/v1/transfers",
			role:   identity.RoleSupervisor,
			body:   map[string]any{"from_store_id": fromID, "to_store_id": toID, "product_id": productID, "quantity": 31},
		}), http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodeInsufficientStock, info.Code)
	})

	var transfer appinventory.TransferResponse
	env.data(env.do(request{
		method: http.MethodPost,
		path:   "/api/v1/transfers",
		role:   identity.RoleSupervisor,
		body:   map[string]any{"from_store_id": fromID, "to_store_id": toID, "product_id": productID, "quantity": 12},
	}), http.StatusCreated, &transfer)
	assert.Equal(t, "pending", transfer.Status)
	assert.NotEmpty(t, transfer.TransferNumber)

	info := env.errorInfo(env.do(request{
		method: http.MethodPut,
		path:   "/api/v1/transfers/" + transfer.ID.String() + "/complete",
		role:   identity.RoleSupervisor,
	}), http.StatusBadRequest)
	assert.Equal(t, dto.ErrCodeInvalidState, info.Code)

	env.data(env.do(request{
		method: http.MethodPut,
		path:   "/api/v1/transfers/" + transfer.ID.String() + "/approve",
		role:   identity.RoleSupervisor,
	}), http.StatusOK, &transfer)
	assert.Equal(t, "in_transit", transfer.Status)

	env.data(env.do(request{
		method: http.MethodPut,
		path:   "/api/v1/transfers/" + transfer.ID.String() + "/complete",
		role:   identity.RoleCEO,
	}), http.StatusOK, &transfer)
	assert.Equal(t, "completed", transfer.Status)
	require.NotNil(t, transfer.CompletedDate)

	var rows []appinventory.InventoryResponse
	env.data(env.do(request{
		method: http.MethodGet,
		path:   "/api/v1/inventory/product/" + productID,
		role:   identity.RoleSalesperson,
	}), http.StatusOK, &rows)
	stock := make(map[string]int, len(rows))
	for _, row := range rows {
		stock[row.StoreID.String()] = row.QuantityInStock
	}
	assert.Equal(t, map[string]int{fromID: 18, toID: 12}, stock)

	info = env.errorInfo(env.do(request{
		method: http.MethodPut,
		path:   "/api/v1/transfers/" + transfer.ID.String() + "/cancel",
		role:   identity.RoleSupervisor,
	}), http.StatusBadRequest)
	assert.Equal(t, dto.ErrCodeInvalidState, info.Code)
}

func TestAPI_CatalogRoleGates(t *testing.T) {
	env := newAPIEnv(t)
	productID := env.createID("/api/v1/products", map[string]any{"name": "Cola 330ml", "sku": "COLA-330", "category": "Beverages", "unit_price": 1.25})

	w := env.do(request{
		method: http.MethodPost,
		path:   "/api/v1/products",
		role:   identity.RoleSupervisor,
		body:   map[string]any{"name": "Cola again", "sku": "COLA-330", "category": "Beverages", "unit_price": 1},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(request{method: http.MethodDelete, path: "/api/v1/products/" + productID, role: identity.RoleSupervisor})
	assert.Equal(t, http.StatusForbidden, w.Code)

	env.data(env.do(request{method: http.MethodDelete, path: "/api/v1/products/" + productID, role: identity.RoleCEO}), http.StatusOK, nil)

	var product appcatalog.ProductResponse
	env.data(env.do(request{method: http.MethodGet, path: "/api/v1/products/" + productID, role: identity.RoleSalesperson}), http.StatusOK, &product)
	assert.False(t, product.IsActive)
}
