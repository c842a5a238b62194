// README: Entry point; loads config, wires module services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"yongcha/internal/config"
	httptransport "yongcha/internal/http"
	"yongcha/internal/infra"
	"yongcha/internal/modules/affiliation"
	"yongcha/internal/modules/dispatch"
	"yongcha/internal/modules/driver"
	"yongcha/internal/modules/fees"
	"yongcha/internal/modules/settlement"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	feeCache := fees.NewCache(redisClient, time.Duration(cfg.Billing.FeeCacheTTLSeconds)*time.Second)
	feeStore := fees.NewStore(dbPool)
	feeSvc := fees.NewService(feeStore, feeCache)
	resolver := fees.NewResolver(fees.NewCachedTableSource(feeSvc, feeCache), cfg.Billing)

	settlementSvc := settlement.NewService(settlement.NewStore(dbPool))
	driverSvc := driver.NewService(driver.NewStore(dbPool))
	affiliationSvc := affiliation.NewService(affiliation.NewStore(dbPool))
	dispatchStore := dispatch.NewStore(dbPool)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Fees:         feeSvc,
		Resolver:     resolver,
		Settlements:  settlementSvc,
		Drivers:      driverSvc,
		Affiliations: affiliationSvc,
		Dispatch:     dispatchStore,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
