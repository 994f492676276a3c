package routes

import (
	"supportforge/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathInvoices = "/invoices"
	PathClients  = "/clients"
	PathPayments = "/payments"
)

func addBillingRoutes(rg *gin.RouterGroup, invoiceHandler *handlers.InvoiceHandler, clientHandler *handlers.ClientHandler, webhookHandler *handlers.PaymentWebhookHandler) {
	invoices := rg.Group(PathInvoices)
	{
		invoices.POST("", invoiceHandler.CreateInvoice)
		invoices.GET("", invoiceHandler.ListInvoices)
		// static segments before :id so they win the route match
		invoices.GET("/totals/:status", invoiceHandler.GetStatusTotal)
		invoices.GET("/number/:number", invoiceHandler.GetInvoiceByNumber)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.PATCH("/:id/status", invoiceHandler.SetInvoiceStatus)
		invoices.PUT("/:id/items", invoiceHandler.ReplaceInvoiceItems)
	}

	clients := rg.Group(PathClients)
	{
		clients.POST("", clientHandler.CreateClient)
		clients.GET("", clientHandler.ListClients)
		clients.GET("/:id", clientHandler.GetClient)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/webhook", webhookHandler.HandleWebhook)
	}
}
