package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bankdash/bank-system/internal/adapter/http/controller"
	"github.com/bankdash/bank-system/internal/adapter/http/middleware"
	"github.com/bankdash/bank-system/internal/adapter/http/router"
	"github.com/bankdash/bank-system/internal/adapter/repository/postgres"
	"github.com/bankdash/bank-system/internal/adapter/storage"
	"github.com/bankdash/bank-system/internal/auth"
	"github.com/bankdash/bank-system/internal/config"
	"github.com/bankdash/bank-system/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		cancel()
		log.Fatalf("open database: %v", err)
	}

	if err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		cancel()
		log.Fatalf("run migrations: %v", err)
	}
	cancel()
	log.Println("migrations completed successfully")

	images, err := storage.NewImageStore(cfg.UploadsDir)
	if err != nil {
		log.Fatalf("init image store: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	numbers := services.NewAccountNumberGenerator(accountRepo)

	userService := services.NewUserService(userRepo, numbers, tokens)
	ledgerService := services.NewLedgerService(ledgerRepo, accountRepo)
	dashboardService := services.NewDashboardService(accountRepo, transactionRepo)
	reportService := services.NewReportService(transactionRepo)
	profileService := services.NewProfileService(userRepo, profileRepo, images)

	mux := router.New(
		middleware.Auth(tokens),
		controller.NewAuthController(userService),
		controller.NewAccountController(ledgerService, dashboardService),
		controller.NewTransactionController(transactionRepo, reportService),
		controller.NewProfileController(profileService),
	)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("bank system listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	_ = db.Close()
}
