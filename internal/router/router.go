package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PedroArthur06/revenue-aggregator/internal/config"
	"github.com/PedroArthur06/revenue-aggregator/internal/handler"
	"github.com/PedroArthur06/revenue-aggregator/internal/middleware"
	"github.com/PedroArthur06/revenue-aggregator/internal/model"
	"github.com/PedroArthur06/revenue-aggregator/internal/service"
	"github.com/PedroArthur06/revenue-aggregator/internal/snapshot"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Store
func New(cfg *config.Config, svc service.ClosingService, store snapshot.Store, catalog *model.Catalog) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMin, time.Minute))

	closingH := handler.NewClosingHandler(svc)

	r.GET("/health", handler.Health(store))
	r.GET("/v1/catalog", handler.Catalog(catalog))

	closing := r.Group("/v1/closing")
	{
		closing.GET("", closingH.Current)
		closing.PUT("/date", closingH.SetDate)
		closing.PUT("/opening-balance", closingH.SetOpeningBalance)

		closing.POST("/vouchers", closingH.AddVoucherRow)
		closing.PUT("/vouchers/:index", closingH.UpdateVoucherRow)
		closing.DELETE("/vouchers/:index", closingH.RemoveVoucherRow)

		closing.POST("/misc", closingH.AddMiscRow)
		closing.PUT("/misc/:id", closingH.UpdateMiscRow)
		closing.DELETE("/misc/:id", closingH.RemoveMiscRow)

		closing.POST("/expenses", closingH.AddExpenseRow)
		closing.PUT("/expenses/:id", closingH.UpdateExpenseRow)
		closing.DELETE("/expenses/:id", closingH.RemoveExpenseRow)

		closing.PUT("/channels/:channel", closingH.SetChannel)

		closing.GET("/summary", closingH.Summary)
		closing.POST("/reset", closingH.Reset)
	}

	return r
}
