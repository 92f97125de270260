// Package http assembles the HTTP interface: repositories, use cases, the
// settlement engine, handlers and routes, behind one container.
package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ledgerUsecases "tonpay/internal/application/ledger/usecases"
	obligationUsecases "tonpay/internal/application/obligations/usecases"
	"tonpay/internal/application/settlement"
	"tonpay/internal/domain/bill"
	"tonpay/internal/domain/gift"
	"tonpay/internal/domain/invoice"
	"tonpay/internal/domain/ledger"
	"tonpay/internal/domain/merchant"
	"tonpay/internal/infrastructure/auth"
	"tonpay/internal/infrastructure/cache"
	"tonpay/internal/infrastructure/config"
	"tonpay/internal/infrastructure/database"
	"tonpay/internal/infrastructure/metrics"
	"tonpay/internal/infrastructure/pubsub"
	"tonpay/internal/infrastructure/repository"
	"tonpay/internal/infrastructure/repository/memory"
	"tonpay/internal/interfaces/http/handlers"
	"tonpay/internal/interfaces/http/middleware"
	"tonpay/internal/interfaces/http/routes"
	"tonpay/internal/shared/db"
	"tonpay/internal/shared/logger"
)

// Container wires the whole HTTP surface together.
type Container struct {
	cfg    *config.Config
	log    logger.Interface
	engine *gin.Engine
}

type repositorySet struct {
	wallets      ledger.WalletRepository
	transactions ledger.TransactionRepository
	invoices     invoice.Repository
	bills        bill.Repository
	gifts        gift.Repository
	merchants    merchant.Repository
	txRunner     settlement.TxRunner
}

// NewContainer builds repositories for the configured driver, the settlement
// engine and every handler, and assembles the gin engine.
func NewContainer(cfg *config.Config, log logger.Interface) (*Container, error) {
	repos, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := buildNotifier(cfg, log)
	if err != nil {
		return nil, err
	}

	settlementEngine := settlement.NewEngine(
		repos.invoices,
		repos.bills,
		repos.gifts,
		repos.merchants,
		repos.wallets,
		repos.transactions,
		repos.txRunner,
		notifier,
		metrics.NewRecorder(),
		log,
	)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	telegramValidator := auth.NewTelegramValidator(cfg.Auth.Telegram.BotToken, cfg.Auth.Telegram.AuthMaxAgeSeconds)

	connectWalletUC := ledgerUsecases.NewConnectWalletUseCase(repos.wallets, log)
	getWalletUC := ledgerUsecases.NewGetWalletUseCase(repos.wallets)
	sendUC := ledgerUsecases.NewSendUseCase(repos.wallets, repos.transactions, repos.txRunner, notifier, log)
	listTransactionsUC := ledgerUsecases.NewListTransactionsUseCase(repos.transactions)

	createInvoiceUC := obligationUsecases.NewCreateInvoiceUseCase(repos.invoices, log)
	createBillUC := obligationUsecases.NewCreateBillSplitUseCase(repos.bills, log)
	createGiftUC := obligationUsecases.NewCreateGiftUseCase(repos.gifts, log)
	createMerchantUC := obligationUsecases.NewCreateMerchantPaymentUseCase(repos.merchants, log)
	getObligationsUC := obligationUsecases.NewGetObligationsUseCase(repos.invoices, repos.bills, repos.gifts, repos.merchants)
	cancelUC := obligationUsecases.NewCancelObligationUseCase(settlementEngine, log)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	authHandler := handlers.NewAuthHandler(telegramValidator, jwtService, log)
	walletHandler := handlers.NewWalletHandler(connectWalletUC, getWalletUC, jwtService, log)
	transactionHandler := handlers.NewTransactionHandler(sendUC, listTransactionsUC, log)
	invoiceHandler := handlers.NewInvoiceHandler(createInvoiceUC, getObligationsUC, cancelUC, settlementEngine, log)
	billHandler := handlers.NewBillHandler(createBillUC, getObligationsUC, cancelUC, settlementEngine, log)
	giftHandler := handlers.NewGiftHandler(createGiftUC, getObligationsUC, settlementEngine, log)
	merchantHandler := handlers.NewMerchantHandler(createMerchantUC, getObligationsUC, settlementEngine, log)

	gin.SetMode(ginMode(cfg.Server.Mode))
	registerValidations()
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	engine.Use(middleware.Metrics())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupAuthRoutes(engine, &routes.AuthRouteConfig{
		AuthHandler: authHandler,
	})
	routes.SetupLedgerRoutes(engine, &routes.LedgerRouteConfig{
		WalletHandler:      walletHandler,
		TransactionHandler: transactionHandler,
		AuthMiddleware:     authMiddleware,
	})
	routes.SetupObligationRoutes(engine, &routes.ObligationRouteConfig{
		InvoiceHandler:  invoiceHandler,
		BillHandler:     billHandler,
		GiftHandler:     giftHandler,
		MerchantHandler: merchantHandler,
		AuthMiddleware:  authMiddleware,
	})

	return &Container{cfg: cfg, log: log, engine: engine}, nil
}

// Engine returns the assembled gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

func buildRepositories(cfg *config.Config) (*repositorySet, error) {
	switch cfg.Database.Driver {
	case "memory":
		store := memory.NewStore()
		return &repositorySet{
			wallets:      memory.NewWalletRepository(store),
			transactions: memory.NewTransactionRepository(store),
			invoices:     memory.NewInvoiceRepository(store),
			bills:        memory.NewBillRepository(store),
			gifts:        memory.NewGiftRepository(store),
			merchants:    memory.NewMerchantPaymentRepository(store),
			txRunner:     store,
		}, nil
	case "mysql", "sqlite":
		gdb := database.Get()
		if gdb == nil {
			return nil, fmt.Errorf("database not initialized for driver %s", cfg.Database.Driver)
		}
		return &repositorySet{
			wallets:      repository.NewWalletRepository(gdb),
			transactions: repository.NewTransactionRepository(gdb),
			invoices:     repository.NewInvoiceRepository(gdb),
			bills:        repository.NewBillRepository(gdb),
			gifts:        repository.NewGiftRepository(gdb),
			merchants:    repository.NewMerchantPaymentRepository(gdb),
			txRunner:     db.NewTransactionManager(gdb),
		}, nil
	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
}

func buildNotifier(cfg *config.Config, log logger.Interface) (settlement.Notifier, error) {
	if !cfg.Redis.Enabled {
		return settlement.NoopNotifier{}, nil
	}

	client, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, err
	}
	return pubsub.NewRedisNotifier(client, log), nil
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}
