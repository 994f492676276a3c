package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"supportforge/internal/adapter/http/handlers/mocks"
	"supportforge/internal/domain/entities"
	"supportforge/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func invoiceRouter(h *InvoiceHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/invoices", h.CreateInvoice)
	r.GET("/v1/invoices", h.ListInvoices)
	r.GET("/v1/invoices/totals/:status", h.GetStatusTotal)
	r.GET("/v1/invoices/number/:number", h.GetInvoiceByNumber)
	r.GET("/v1/invoices/:id", h.GetInvoice)
	r.PATCH("/v1/invoices/:id/status", h.SetInvoiceStatus)
	r.PUT("/v1/invoices/:id/items", h.ReplaceInvoiceItems)
	return r
}

func sampleInvoice() entities.Invoice {
	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	return entities.Invoice{
		ID:       "inv-1",
		Number:   "INV-202608-1234",
		ClientID: "client-1",
		Amount:   decimal.RequireFromString("1050.00"),
		Status:   entities.InvoiceStatusPending,
		DueDate:  due,
		Items: []entities.InvoiceItem{
			{Description: "Design work", Quantity: 2, UnitPrice: decimal.RequireFromString("150.00")},
			{Description: "Development", Quantity: 10, UnitPrice: decimal.RequireFromString("75.00")},
		},
		CreatedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}
}

func TestInvoiceHandler_CreateInvoice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in usecase.CreateInvoiceInput) (usecase.InvoiceResult, error) {
				if in.ClientID != "client-1" {
					t.Fatalf("expected client-1, got %q", in.ClientID)
				}
				if len(in.Items) != 2 {
					t.Fatalf("expected 2 items, got %d", len(in.Items))
				}
				if !in.Items[0].UnitPrice.Equal(decimal.RequireFromString("150.00")) {
					t.Fatalf("unexpected unit price %s", in.Items[0].UnitPrice)
				}
				return usecase.InvoiceResult{Invoice: sampleInvoice(), NotificationSent: true}, nil
			})

		body := `{
			"client_id": "client-1",
			"due_date": "2026-09-30T00:00:00Z",
			"notify": true,
			"items": [
				{"description": "Design work", "quantity": 2, "unit_price": "150.00"},
				{"description": "Development", "quantity": 10, "unit_price": 75}
			]
		}`
		req := httptest.NewRequest(http.MethodPost, "/v1/invoices", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if got["amount"] != "1050.00" {
			t.Fatalf("expected amount 1050.00, got %v", got["amount"])
		}
		if got["number"] != "INV-202608-1234" {
			t.Fatalf("unexpected number %v", got["number"])
		}
		if got["notification_sent"] != true {
			t.Fatalf("expected notification_sent true, got %v", got["notification_sent"])
		}
	})

	t.Run("validation error from usecase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(usecase.InvoiceResult{}, usecase.ErrValidation)

		body := `{"client_id": "client-1", "due_date": "2026-09-30T00:00:00Z", "items": []}`
		req := httptest.NewRequest(http.MethodPost, "/v1/invoices", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown client maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(usecase.InvoiceResult{}, usecase.ErrClientNotFound)

		body := `{"client_id": "ghost", "due_date": "2026-09-30T00:00:00Z", "items": [{"description": "x", "quantity": 1, "unit_price": 1}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/invoices", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("number exhaustion maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(usecase.InvoiceResult{}, usecase.ErrNumberExhausted)

		body := `{"client_id": "client-1", "due_date": "2026-09-30T00:00:00Z", "items": [{"description": "x", "quantity": 1, "unit_price": 1}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/invoices", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if got["code"] != "NUMBER_GENERATION_EXHAUSTED" {
			t.Fatalf("unexpected error code %v", got["code"])
		}
	})
}

func TestInvoiceHandler_GetInvoice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		uc.EXPECT().GetByID(gomock.Any(), "inv-1").Return(sampleInvoice(), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices/inv-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		// Read endpoints never expose the notification flag.
		if _, present := got["notification_sent"]; present {
			t.Fatal("notification_sent must be omitted on reads")
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		uc.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.Invoice{}, usecase.ErrInvoiceNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices/ghost", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestInvoiceHandler_GetInvoiceByNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIInvoiceUseCase(ctrl)
	r := invoiceRouter(NewInvoiceHandler(uc))

	uc.EXPECT().GetByNumber(gomock.Any(), "INV-202608-1234").Return(sampleInvoice(), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/invoices/number/INV-202608-1234", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if got["id"] != "inv-1" {
		t.Fatalf("unexpected id %v", got["id"])
	}
}

func TestInvoiceHandler_ListInvoices(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("filters forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		uc.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in usecase.ListInvoicesInput) (entities.InvoicePage, error) {
				if in.Status != "paid" || in.ClientID != "client-1" || in.Limit != 10 {
					t.Fatalf("unexpected list input %+v", in)
				}
				return entities.InvoicePage{Invoices: []entities.Invoice{sampleInvoice()}}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices?status=paid&client_id=client-1&limit=10", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid status filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		uc.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(entities.InvoicePage{}, usecase.ErrInvalidStatus)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices?status=archived", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestInvoiceHandler_SetInvoiceStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		req := httptest.NewRequest(http.MethodPatch, "/v1/invoices/inv-1/status", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("paid transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		paidAt := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
		paid := sampleInvoice()
		paid.Status = entities.InvoiceStatusPaid
		paid.PaidDate = &paidAt

		uc.EXPECT().SetStatus(gomock.Any(), "inv-1", "paid", gomock.Nil()).
			Return(usecase.InvoiceResult{Invoice: paid}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/invoices/inv-1/status", bytes.NewBufferString(`{"status":"paid"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if got["status"] != "paid" {
			t.Fatalf("expected paid status, got %v", got["status"])
		}
		if got["paid_date"] == nil {
			t.Fatal("expected paid_date in response")
		}
	})

	t.Run("cancelled invoice maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		uc.EXPECT().SetStatus(gomock.Any(), "inv-1", "paid", gomock.Nil()).
			Return(usecase.InvoiceResult{}, usecase.ErrInvoiceCancelled)

		req := httptest.NewRequest(http.MethodPatch, "/v1/invoices/inv-1/status", bytes.NewBufferString(`{"status":"paid"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestInvoiceHandler_ReplaceInvoiceItems(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("replaced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		updated := sampleInvoice()
		updated.Items = []entities.InvoiceItem{
			{Description: "Revised scope", Quantity: 4, UnitPrice: decimal.RequireFromString("200.00")},
		}
		updated.Amount = decimal.RequireFromString("800.00")

		uc.EXPECT().ReplaceItems(gomock.Any(), "inv-1", gomock.Any()).Return(updated, nil)

		body := `{"items": [{"description": "Revised scope", "quantity": 4, "unit_price": "200.00"}]}`
		req := httptest.NewRequest(http.MethodPut, "/v1/invoices/inv-1/items", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if got["amount"] != "800.00" {
			t.Fatalf("expected recomputed amount 800.00, got %v", got["amount"])
		}
	})

	t.Run("empty set maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		uc.EXPECT().ReplaceItems(gomock.Any(), "inv-1", gomock.Any()).
			Return(entities.Invoice{}, usecase.ErrValidation)

		req := httptest.NewRequest(http.MethodPut, "/v1/invoices/inv-1/items", bytes.NewBufferString(`{"items": []}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestInvoiceHandler_GetStatusTotal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("total returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		uc.EXPECT().TotalByStatus(gomock.Any(), "pending").Return(decimal.RequireFromString("3220.5"), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices/totals/pending", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if got["total"] != "3220.50" {
			t.Fatalf("expected total 3220.50, got %v", got["total"])
		}
		if got["status"] != "pending" {
			t.Fatalf("expected status pending, got %v", got["status"])
		}
	})

	t.Run("invalid status maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := invoiceRouter(NewInvoiceHandler(uc))

		uc.EXPECT().TotalByStatus(gomock.Any(), "archived").Return(decimal.Zero, usecase.ErrInvalidStatus)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices/totals/archived", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestMapInvoiceError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", usecase.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid status", usecase.ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
		{"client not found", usecase.ErrClientNotFound, http.StatusNotFound, "CLIENT_NOT_FOUND"},
		{"invoice not found", usecase.ErrInvoiceNotFound, http.StatusNotFound, "INVOICE_NOT_FOUND"},
		{"cancelled", usecase.ErrInvoiceCancelled, http.StatusConflict, "INVOICE_CANCELLED"},
		{"number exhausted", usecase.ErrNumberExhausted, http.StatusInternalServerError, "NUMBER_GENERATION_EXHAUSTED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := mapInvoiceError(tc.err)
			if appErr.HTTPStatus != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, appErr.HTTPStatus)
			}
			if appErr.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, appErr.Code)
			}
		})
	}
}
