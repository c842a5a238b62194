// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yongcha/internal/http/handlers"
	"yongcha/internal/http/middleware"
	"yongcha/internal/modules/affiliation"
	"yongcha/internal/modules/dispatch"
	"yongcha/internal/modules/driver"
	"yongcha/internal/modules/fees"
	"yongcha/internal/modules/settlement"
)

type RouterDeps struct {
	Fees         *fees.Service
	Resolver     *fees.Resolver
	Settlements  *settlement.Service
	Drivers      *driver.Service
	Affiliations *affiliation.Service
	Dispatch     dispatch.Source
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	feeHandler := handlers.NewFeeHandler(deps.Fees)
	r.GET("/api/fees", feeHandler.List)
	r.POST("/api/fees", feeHandler.Save)
	r.POST("/api/fees/bulk", feeHandler.BulkSave)
	r.POST("/api/fees/:id/archive", feeHandler.Archive)
	r.DELETE("/api/fees/:id", feeHandler.Delete)

	settlementHandler := handlers.NewSettlementHandler(deps.Settlements)
	r.GET("/api/settlements", settlementHandler.List)
	r.POST("/api/settlements", settlementHandler.Save)
	r.DELETE("/api/settlements/:id", settlementHandler.Delete)

	driverHandler := handlers.NewDriverHandler(deps.Drivers)
	r.GET("/api/drivers", driverHandler.List)
	r.POST("/api/drivers", driverHandler.Save)
	r.DELETE("/api/drivers/:id", driverHandler.Delete)

	affiliationHandler := handlers.NewAffiliationHandler(deps.Affiliations)
	r.GET("/api/affiliations", affiliationHandler.List)
	r.POST("/api/affiliations", affiliationHandler.Save)
	r.DELETE("/api/affiliations/:id", affiliationHandler.Delete)

	summaryHandler := handlers.NewSummaryHandler(deps.Dispatch, deps.Drivers, deps.Settlements, deps.Resolver)
	r.GET("/api/summary", summaryHandler.Summary)
	r.POST("/api/quote", summaryHandler.Quote)

	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
