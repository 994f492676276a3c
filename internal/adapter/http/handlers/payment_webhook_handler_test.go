package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"supportforge/internal/adapter/http/handlers/mocks"
	"supportforge/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func webhookRouter(h *PaymentWebhookHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/payments/webhook", h.HandleWebhook)
	return r
}

func TestPaymentWebhookHandler_HandleWebhook(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("payment id from data.id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentWebhookUseCase(ctrl)
		r := webhookRouter(NewPaymentWebhookHandler(uc))

		uc.EXPECT().Process(gomock.Any(), "12345").
			Return(usecase.WebhookResult{InvoiceID: "inv-1", Applied: true}, nil)

		body := `{"action": "payment.updated", "type": "payment", "data": {"id": "12345"}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook", bytes.NewBufferString(body))
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
		if got["applied"] != true || got["invoice_id"] != "inv-1" {
			t.Fatalf("unexpected response %v", got)
		}
	})

	t.Run("payment id from query string", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentWebhookUseCase(ctrl)
		r := webhookRouter(NewPaymentWebhookHandler(uc))

		uc.EXPECT().Process(gomock.Any(), "67890").
			Return(usecase.WebhookResult{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook?id=67890", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("missing payment id maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentWebhookUseCase(ctrl)
		r := webhookRouter(NewPaymentWebhookHandler(uc))

		uc.EXPECT().Process(gomock.Any(), "").
			Return(usecase.WebhookResult{}, usecase.ErrValidation)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("gateway unavailable maps to 503", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentWebhookUseCase(ctrl)
		r := webhookRouter(NewPaymentWebhookHandler(uc))

		uc.EXPECT().Process(gomock.Any(), "12345").
			Return(usecase.WebhookResult{}, usecase.ErrPaymentGatewayUnavailable)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook?id=12345", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})
}
