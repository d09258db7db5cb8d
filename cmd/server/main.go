package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "equiprent-backend/internal/api/http"
	"equiprent-backend/internal/config"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository/postgres"
	"equiprent-backend/internal/security"
	"equiprent-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Equiprent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	clientSvc := service.NewClientService(store.ClientRepository)
	stockSvc := service.NewStockService(store.StockCategoryRepository, store.StockItemRepository)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.StockCategoryRepository,
		store.ClientRepository,
	)
	returnSvc := service.NewReturnService(
		store.ReturnRepository,
		store.RentalRepository,
		store.ClientRepository,
		emailSvc,
	)
	ledgerSvc := service.NewLedgerService(
		store.RentalRepository,
		store.PaymentRepository,
		store.ClientRepository,
	)
	paymentSvc := service.NewPaymentService(store.PaymentRepository, store.ClientRepository)
	invoiceSvc := service.NewInvoiceService(
		store.InvoiceRepository,
		store.RentalRepository,
		store.StockCategoryRepository,
		store.ClientRepository,
		emailSvc,
		cfg.Billing.InvoiceDueDays,
	)

	// Initialize HTTP handlers and router
	handlers := httpapi.NewHandlers(
		authSvc,
		clientSvc,
		ledgerSvc,
		stockSvc,
		rentalSvc,
		returnSvc,
		invoiceSvc,
		paymentSvc,
		cfg.Billing.TaxRatePercent,
	)
	router := httpapi.NewRouter(handlers, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
