package routes

import (
	"context"
	"os"
	"strconv"

	_ "supportforge/docs" // swagger docs, generated by swag
	"supportforge/internal/adapter/http/handlers"
	"supportforge/internal/adapter/persistence/repository"
	"supportforge/internal/infrastructure/database"
	"supportforge/internal/infrastructure/notifications"
	"supportforge/internal/infrastructure/payments"
	"supportforge/internal/logger"
	"supportforge/internal/usecase"
	"supportforge/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const defaultPort = 8080

// Run wires dependencies and starts the server.
func Run() {
	log := logger.WithComponent("routes")

	setMiddlewares()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	port := defaultPort
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}
	if err := router.Run(":" + strconv.Itoa(port)); err != nil {
		log.Fatal().Err(err).Msg("failed to start the application")
	}
}

func getRoutes() {
	log := logger.WithComponent("routes")
	ddb := database.ConnectDynamoDB()

	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb)
	clientRepo := repository.NewClientDynamoRepository(ddb)

	var notifier interfaces.INotificationGateway
	if isEmailMockEnabled() {
		notifier = notifications.NewLogMailer()
	} else {
		mailer, err := notifications.NewSESMailer(context.Background())
		if err != nil {
			log.Warn().Err(err).Msg("email notifier not configured, falling back to mock")
			notifier = notifications.NewLogMailer()
		} else {
			notifier = mailer
		}
	}

	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, clientRepo, notifier)
	clientUseCase := usecase.NewClientUseCase(clientRepo)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Warn().Err(err).Msg("payment gateway not configured, webhook endpoint will reject events")
	} else {
		paymentGateway = mpGateway
	}
	webhookUseCase := usecase.NewPaymentWebhookUseCase(paymentGateway, invoiceUseCase)

	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase)
	clientHandler := handlers.NewClientHandler(clientUseCase)
	webhookHandler := handlers.NewPaymentWebhookHandler(webhookUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBillingRoutes(v1, invoiceHandler, clientHandler, webhookHandler)
}

func setMiddlewares() {
	log := logger.WithComponent("http")
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Msg("recovered from panic")
		c.AbortWithStatus(500)
	}))
}

func isEmailMockEnabled() bool {
	switch os.Getenv("EMAIL_MOCK") {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
