// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "investrack/internal/api"
	"investrack/internal/api/handler"
	"investrack/internal/config"
	"investrack/internal/repository"
	"investrack/internal/repository/postgres"
	"investrack/internal/service"
	"investrack/internal/storage"
	"investrack/internal/util"
	"investrack/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	InvestorRepository  repository.InvestorRepository
	ManagerRepository   repository.ManagerRepository
	PortfolioRepository repository.PortfolioRepository
	PaymentRepository   repository.PaymentRepository
	FeeRepository       repository.VerificationFeeRepository
	ReferralRepository  repository.ReferralRepository
	WalletRepository    repository.CryptoWalletRepository

	// Services
	PortfolioService service.PortfolioService
	PaymentService   service.PaymentService
	FeeService       service.FeeService
	ReferralService  service.ReferralService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	util.InitLogger()
	app.Logger = util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	app.InvestorRepository = postgres.NewInvestorRepository(app.DB)
	app.ManagerRepository = postgres.NewManagerRepository(app.DB)
	app.PortfolioRepository = postgres.NewPortfolioRepository(app.DB)
	app.PaymentRepository = postgres.NewPaymentRepository(app.DB)
	app.FeeRepository = postgres.NewVerificationFeeRepository(app.DB)
	app.ReferralRepository = postgres.NewReferralRepository(app.DB)
	app.WalletRepository = postgres.NewCryptoWalletRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	receipts, err := storage.NewReceiptStore(app.Config.ReceiptDir)
	if err != nil {
		return fmt.Errorf("failed to initialize receipt store: %w", err)
	}

	provisioner := service.NewCryptoWalletProvisioner(app.WalletRepository)

	app.PortfolioService = service.NewPortfolioService(
		app.DB, // DBTxBeginner
		app.DB, // DBExecutor
		app.InvestorRepository,
		app.ManagerRepository,
		app.PortfolioRepository,
		app.PaymentRepository,
		app.FeeRepository,
		app.WalletRepository,
		provisioner,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.PaymentService = service.NewPaymentService(
		app.DB,
		app.DB,
		app.PaymentRepository,
		app.PortfolioRepository,
		app.FeeRepository,
		app.InvestorRepository,
		app.ReferralRepository,
		receipts,
		app.Config.ReferralBonusPercent,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.FeeService = service.NewFeeService(
		app.DB,
		app.DB,
		app.FeeRepository,
		app.PaymentRepository,
		app.InvestorRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.ReferralService = service.NewReferralService(
		app.DB,
		app.DB,
		app.ReferralRepository,
		app.InvestorRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	investmentHandler := handler.NewInvestmentHandler(app.PortfolioService, app.Logger)
	paymentHandler := handler.NewPaymentHandler(app.PaymentService, app.Logger)
	feeHandler := handler.NewFeeHandler(app.FeeService, app.Logger)
	referralHandler := handler.NewReferralHandler(app.ReferralService, app.Logger)
	app.HTTPHandler = router.NewRouter(investmentHandler, paymentHandler, feeHandler, referralHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
