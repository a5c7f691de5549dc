package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	httpadp "po-financing-backend/internal/adapter/http"
	"po-financing-backend/internal/adapter/middleware"
	"po-financing-backend/internal/adapter/model"
	"po-financing-backend/internal/adapter/oracle"
	"po-financing-backend/internal/adapter/repository/mysql"
	"po-financing-backend/internal/config"
	"po-financing-backend/internal/domain/loan"
	"po-financing-backend/internal/domain/order"
	"po-financing-backend/internal/domain/risk"
	"po-financing-backend/internal/infrastructure/cache"
	"po-financing-backend/internal/infrastructure/db"
	"po-financing-backend/internal/notify"
	"po-financing-backend/internal/usecase/financing"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	// loan store
	var (
		gdb *gorm.DB
		err error
	)
	if cfg.DBDriver == "sqlite" {
		gdb, err = db.OpenSQLite(cfg.SQLitePath)
	} else {
		gdb, err = db.OpenGorm(cfg.MySQLDSN())
	}
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := gdb.AutoMigrate(&loan.Record{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	repo := mysql.NewLoanRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	// ledger oracle
	var orc order.Oracle
	if cfg.LedgerURL == "" {
		mem := oracle.NewMemoryClient()
		mem.SeedDemo(time.Now().UTC())
		orc = mem
		log.Println("warning: LEDGER_URL not set, using in-memory purchase-order book")
	} else {
		orc = oracle.NewHTTPClient(cfg.LedgerURL, time.Duration(cfg.LedgerTimeoutSecs)*time.Second)
	}

	// credit model: absence degrades scoring, it does not stop the service
	var mdl risk.Model
	if lin, err := model.Load(cfg.ModelPath); err != nil {
		log.Printf("warning: credit model not loaded, scoring degraded: %v", err)
	} else {
		mdl = lin
	}
	scorer := risk.NewScorer(mdl)

	hub := notify.NewHub(cfg.HubQueueSize)
	uc := financing.NewUsecase(orc, scorer, repo, guow, hub)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover(), echomw.CORS())

	if rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB); err != nil {
		log.Printf("warning: redis unavailable, idempotency disabled: %v", err)
	} else {
		e.Use(middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	}

	h := httpadp.NewHandler()
	ph := httpadp.NewPOHandler(uc)
	lh := httpadp.NewLoanHandler(uc)
	wh := httpadp.NewWSHandler(hub)

	// routes
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.GET("/purchase-orders/:po_id", ph.GetPurchaseOrder)
	e.POST("/request-loan/:po_id", lh.RequestLoan)
	e.GET("/loans", lh.ListLoans)
	e.POST("/repay-loan/:loan_id", lh.RepayLoan)
	e.GET("/stats", lh.Stats)
	e.GET("/ws", wh.Subscribe)

	addr := ":" + cfg.AppPort
	go func() {
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
