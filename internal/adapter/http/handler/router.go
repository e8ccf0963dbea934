package handler

import (
	"cryptoledger/internal/adapter/http/middleware"
	"cryptoledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Assets         map[string]AssetDeps
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep: verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	accountHandler := NewAccountHandler(deps.Assets)
	transferHandler := NewTransferHandler(deps.Assets)
	networkHandler := NewNetworkHandler(deps.Assets)

	v1 := r.Group("/api/v1")
	asset := v1.Group("/:asset")
	{
		accounts := asset.Group("/accounts")
		{
			accounts.POST("", accountHandler.CreateAccount)
			accounts.GET("", accountHandler.ListAccounts)
			accounts.GET("/:id", accountHandler.GetAccount)
			accounts.POST("/:id/addresses", accountHandler.CreateAddress)
			accounts.GET("/:id/transactions", accountHandler.ListTransactions)
		}

		asset.POST("/transfers", transferHandler.Transfer)
		asset.POST("/withdrawals", transferHandler.Withdraw)
		asset.POST("/sends", transferHandler.Send)
		asset.POST("/transactions/:id/processed", transferHandler.MarkProcessed)

		asset.POST("/walletnotify", networkHandler.WalletNotify)
		asset.GET("/broadcasts/ambiguous", networkHandler.ListAmbiguousBroadcasts)
	}

	return r
}
