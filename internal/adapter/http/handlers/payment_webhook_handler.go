package handlers

import (
	"errors"
	"net/http"

	request "supportforge/internal/adapter/http/dto/request"
	response "supportforge/internal/adapter/http/dto/response"
	"supportforge/internal/usecase"
	"supportforge/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentWebhookHandler receives Mercado Pago payment notifications.

type PaymentWebhookHandler struct {
	usecase usecase.IPaymentWebhookUseCase
}

func NewPaymentWebhookHandler(uc usecase.IPaymentWebhookUseCase) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{usecase: uc}
}

// HandleWebhook godoc
//
//	@Summary	Process a provider payment notification
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Param		event	body	request.PaymentWebhookRequest	true	"provider event"
//	@Success	200	{object}	response.PaymentWebhookResponse
//	@Router		/payments/webhook [post]
func (h *PaymentWebhookHandler) HandleWebhook(c *gin.Context) {
	var payload request.PaymentWebhookRequest
	// Some provider notifications come with an empty body and the id in the
	// query string; tolerate both shapes.
	_ = c.ShouldBindJSON(&payload)

	paymentID := payload.ResolvePaymentID()
	if paymentID == "" {
		paymentID = c.Query("id")
	}

	res, err := h.usecase.Process(c.Request.Context(), paymentID)
	if err != nil {
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.PaymentWebhookResponse{
		InvoiceID: res.InvoiceID,
		Applied:   res.Applied,
	})
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentGatewayUnavailable):
		return pkg.NewDomainErrorSimple("PAYMENT_GATEWAY_UNAVAILABLE", "Payment gateway not configured", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
