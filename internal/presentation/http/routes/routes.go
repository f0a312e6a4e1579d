package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/phonehub-pos/internal/config"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/handler"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/middleware"
	"github.com/sangkips/phonehub-pos/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Session  *handler.SessionHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Report   *handler.ReportHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager  *utils.JWTManager
	RateLimiter *middleware.OperatorRateLimiter
	Cfg         *config.Config
	Logger      *zap.Logger
	// SessionCount reports live sessions on /health. Optional.
	SessionCount func() int
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"backend": deps.Cfg.Backend.Mode,
		}
		if deps.SessionCount != nil {
			body["sessions"] = deps.SessionCount()
		}
		c.JSON(http.StatusOK, body)
	})

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerSessionRoutes(protected, h)
		registerReportRoutes(protected, h)
		registerPrinterRoutes(protected, h)
	}

	return router
}

func registerSessionRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.POST("/sessions", h.Session.Create)

	sessions := rg.Group("/sessions/:id")
	{
		sessions.GET("", h.Session.Get)
		sessions.DELETE("", h.Session.Delete)
		sessions.GET("/transactions", h.Session.Transactions)
		sessions.GET("/receipt", h.Session.Receipt)
		sessions.POST("/receipt/print", h.Printer.PrintReceipt)
		sessions.GET("/reports/today", h.Report.SessionToday)

		sessions.POST("/catalog/sync", h.Catalog.Sync)
		sessions.GET("/catalog", h.Catalog.List)
		sessions.GET("/catalog/groups", h.Catalog.Groups)

		sessions.POST("/cart/items", h.Cart.AddItem)
		sessions.PUT("/cart/items/:category/:item_id", h.Cart.UpdateQuantity)
		sessions.DELETE("/cart/items/:category/:item_id", h.Cart.RemoveItem)
		sessions.DELETE("/cart", h.Cart.Clear)
		sessions.PUT("/discount", h.Cart.SetDiscount)
		sessions.PUT("/tax", h.Cart.SetTax)
		sessions.PUT("/customer", h.Cart.SetCustomer)

		sessions.POST("/checkout", h.Checkout.Initiate)
		sessions.POST("/checkout/confirm", h.Checkout.Confirm)
		sessions.POST("/checkout/cancel", h.Checkout.Cancel)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/reports/summary", h.Report.Summary)
}

func registerPrinterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/printer/status", h.Printer.GetStatus)
	rg.POST("/printer/test", h.Printer.TestPrint)
}
