package main

import (
	_ "supportforge/docs"
	"supportforge/internal/adapter/http/routes"
	"supportforge/internal/logger"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Support Forge Billing API
// @version         1.0
// @description     Invoice lifecycle service (clients, invoices, payments) backed by DynamoDB.

// @contact.name   Support Forge
// @contact.email  dev@supportforge.example

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	if err := logger.Setup(); err != nil {
		panic(err)
	}
	routes.Run()
}
