// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/cart"
	"github.com/your-org/pharmacy-pos/internal/domain/heldsale"
	"github.com/your-org/pharmacy-pos/internal/domain/printing"
	"github.com/your-org/pharmacy-pos/internal/domain/product"
	"github.com/your-org/pharmacy-pos/internal/domain/receipt"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
	"github.com/your-org/pharmacy-pos/internal/infrastructure/services/orders"
	"github.com/your-org/pharmacy-pos/internal/infrastructure/services/rewards"
	"github.com/your-org/pharmacy-pos/internal/infrastructure/services/salesync"
	"github.com/your-org/pharmacy-pos/internal/interfaces/http/handlers"
	"github.com/your-org/pharmacy-pos/internal/interfaces/http/middleware"
	"github.com/your-org/pharmacy-pos/internal/pkg/pdf"
	"gorm.io/gorm"
)

// SetupRoutes wires the register API. Called once at startup; everything
// stateful (printer link, transaction states, disabled print tiers) lives in
// the services built here.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	// Shared services
	sessions := cart.NewSessionStore(redisClient, cfg)
	products := product.NewService(db, cfg)
	ordersClient := orders.NewClient(cfg)

	heldSales := heldsale.NewService(heldsale.NewGormRepository(db), sessions)

	encoder := receipt.NewEncoder(cfg)
	hardware := printing.NewHardwareTransport(cfg, logger)
	dispatcher := printing.NewDispatcher(logger,
		hardware,
		printing.NewBackendTransport(cfg),
		printing.NewFallbackTransport(),
	)
	printer := printing.NewPrinterService(encoder, dispatcher)

	coordinator := sale.NewCoordinator(
		sale.NewGormCache(db),
		cfg,
		sessions,
		salesync.NewClient(cfg),
		rewards.NewClient(cfg),
		ordersClient,
		printer,
		logger,
	)

	// Handlers
	registerHandler := handlers.NewRegisterHandler(sessions, products, ordersClient, cfg)
	heldSaleHandler := handlers.NewHeldSaleHandler(heldSales, sessions)
	checkoutHandler := handlers.NewCheckoutHandler(coordinator, sessions)
	printHandler := handlers.NewPrintHandler(hardware, dispatcher, coordinator, pdf.NewService(cfg), cfg)
	productHandler := handlers.NewProductHandler(products)

	// Every register endpoint requires a signed-on cashier.
	authed := rg.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))

	register := authed.Group("/register")
	{
		register.GET("/session", registerHandler.GetSession)
		register.DELETE("/session", registerHandler.ClearCart)
		register.POST("/items", registerHandler.AddItem)
		register.PUT("/lines/:index", registerHandler.UpdateLine)
		register.PUT("/discount", registerHandler.SetDiscount)
		register.POST("/orders/:id/load", registerHandler.LoadPickupOrder)

		register.POST("/hold", heldSaleHandler.Hold)
		register.GET("/held", heldSaleHandler.List)
		register.POST("/held/:id/resume", heldSaleHandler.Resume)
		register.DELETE("/held/:id", heldSaleHandler.Delete)
	}

	checkout := authed.Group("/checkout")
	{
		checkout.GET("/state", checkoutHandler.State)
		checkout.POST("/begin", checkoutHandler.Begin)
		checkout.POST("/cancel", checkoutHandler.Cancel)
		checkout.POST("/complete", checkoutHandler.Complete)
		checkout.POST("/new-sale", checkoutHandler.NewSale)
	}

	printGroup := authed.Group("/print")
	{
		printGroup.GET("/status", printHandler.Status)
		printGroup.POST("/connect", printHandler.Connect)
		printGroup.POST("/disconnect", printHandler.Disconnect)
	}

	sales := authed.Group("/sales")
	{
		sales.POST("/:receipt_number/reprint", printHandler.Reprint)
		sales.GET("/:receipt_number/pdf", printHandler.ReceiptPDF)
	}

	productsGroup := authed.Group("/products")
	{
		productsGroup.GET("/search", productHandler.Search)
		productsGroup.GET("/:id", productHandler.Get)
	}
}
